package sqlstore

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"log/slog"
	"sync"

	"github.com/pressly/goose/v3"
)

//go:embed migrations
var migrationsFS embed.FS

// MigrationTableName is the table goose records applied versions in.
const MigrationTableName = "schema_migrations"

// goose keeps its configuration in package globals.
var gooseMu sync.Mutex

// Migrate runs a goose command ("up", "down", "status", "version", "reset")
// against db using the dialect's embedded migrations.
func Migrate(ctx context.Context, db *sql.DB, d Dialect, command string, args ...string) error {
	gooseMu.Lock()
	defer gooseMu.Unlock()

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(&slogGooseLogger{})
	goose.SetTableName(MigrationTableName)

	if err := goose.SetDialect(d.gooseDialect); err != nil {
		return fmt.Errorf("failed to set migration dialect: %w", err)
	}

	if err := goose.RunContext(ctx, command, db, d.migrationsDir, args...); err != nil {
		return fmt.Errorf("migration %q failed: %w", command, err)
	}
	return nil
}

// MigrateUp applies every pending migration.
func MigrateUp(ctx context.Context, db *sql.DB, d Dialect) error {
	return Migrate(ctx, db, d, "up")
}

// slogGooseLogger forwards goose output to slog.
type slogGooseLogger struct{}

func (l *slogGooseLogger) Printf(format string, v ...interface{}) {
	slog.Info(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}

// Fatalf logs at error level and does not exit; goose returns the error to
// the caller as well.
func (l *slogGooseLogger) Fatalf(format string, v ...interface{}) {
	slog.Error(fmt.Sprintf(format, v...), slog.String("component", "migrations"))
}
