package server

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/rag-eval/pkg/config/env"
	"github.com/DjordjeVuckovic/rag-eval/pkg/utils"
)

const DefaultPort = "8080"

type Config struct {
	Port        string
	UseHttp2    bool
	CorsOrigins []string
}

// LoadConfig reads PORT, USE_HTTP2 and CORS_ORIGINS, loading dotEnvPath
// first when it exists.
func LoadConfig(dotEnvPath string) (*Config, error) {
	if err := env.LoadDotEnv(os.Getenv("ENV"), dotEnvPath); err != nil {
		slog.Info("Skipping .env ...", "error", err)
	}
	return configFromEnv()
}

func configFromEnv() (*Config, error) {
	useHttp2 := os.Getenv("USE_HTTP2") == "true"

	port := os.Getenv("PORT")
	if port == "" {
		port = DefaultPort
	}

	if err := validatePort(port); err != nil {
		return nil, fmt.Errorf("invalid port: %w", err)
	}

	origins := utils.SplitNonEmpty(os.Getenv("CORS_ORIGINS"), ",")
	if len(origins) == 0 {
		origins = []string{"*"}
	}

	return &Config{
		Port:        port,
		UseHttp2:    useHttp2,
		CorsOrigins: origins,
	}, nil
}

func validatePort(port string) error {
	portNum, err := strconv.Atoi(port)

	if err != nil {
		return errors.New("port must be a number")
	}

	if portNum < 1 || portNum > 65535 {
		return errors.New("port must be between 1 and 65535")
	}

	return nil
}
