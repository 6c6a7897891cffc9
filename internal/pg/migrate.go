package pg

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"sort"
)

// Migrate runs every *.up.sql file of migrations in name order. The scripts
// are idempotent, so Migrate is safe to call on every start.
func Migrate(ctx context.Context, pool *ConnectionPool, migrations fs.FS) error {
	files, err := fs.Glob(migrations, "migrations/*.up.sql")
	if err != nil {
		return fmt.Errorf("list migrations: %w", err)
	}
	sort.Strings(files)

	for _, f := range files {
		script, err := fs.ReadFile(migrations, f)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", f, err)
		}
		if _, err := pool.conn.Exec(ctx, string(script)); err != nil {
			return fmt.Errorf("apply migration %s: %w", f, err)
		}
		slog.Debug("Applied migration", "file", f)
	}

	return nil
}
