package env

import (
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads variables from a .env file at ENV_PATH, or defaultPath
// when ENV_PATH is unset. A missing file is an error only in local mode
// (env "local" or empty); elsewhere variables come from the process.
func LoadDotEnv(env string, defaultPath string) error {
	envPath := os.Getenv("ENV_PATH")
	if envPath == "" {
		slog.Debug("ENV_PATH is not set, using default path", "defaultPath", defaultPath)
		envPath = defaultPath
	}

	if err := godotenv.Load(envPath); err != nil {
		if env == "local" || env == "" {
			return err
		}
		slog.Debug("Skipping .env ...", "path", envPath)
	}

	return nil
}

// Get returns the value of key, or fallback when it is unset or empty.
func Get(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
