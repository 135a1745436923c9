package migrate

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"path"

	"github.com/angelmondragon/favorites-catalog/pkg/config"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/pressly/goose/v3"
)

//go:embed migrations/postgres/*.sql migrations/sqlite/*.sql
var migrationsFS embed.FS

const baseDir = "migrations"

// DirFor returns the embedded migrations directory for a goose dialect.
func DirFor(dialect string) (string, error) {
	switch dialect {
	case db.DialectPostgres:
		return path.Join(baseDir, "postgres"), nil
	case db.DialectSQLite:
		return path.Join(baseDir, "sqlite"), nil
	}
	return "", fmt.Errorf("no migrations for dialect %q", dialect)
}

// Up applies every pending embedded migration for the dialect.
func Up(ctx context.Context, sqlDB *sql.DB, dialect string) error {
	if sqlDB == nil {
		return fmt.Errorf("db is required")
	}
	dir, err := DirFor(dialect)
	if err != nil {
		return err
	}

	goose.SetBaseFS(migrationsFS)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect(dialect); err != nil {
		return fmt.Errorf("set goose dialect: %w", err)
	}

	if err := goose.UpContext(ctx, sqlDB, dir); err != nil {
		return fmt.Errorf("goose up: %w", err)
	}
	return nil
}

// Version reports the schema version currently recorded in the database.
func Version(ctx context.Context, sqlDB *sql.DB, dialect string) (int64, error) {
	goose.SetBaseFS(migrationsFS)
	if err := goose.SetDialect(dialect); err != nil {
		return 0, fmt.Errorf("set goose dialect: %w", err)
	}
	return goose.GetDBVersionContext(ctx, sqlDB)
}

// Apply runs Up against the client's connection and logs the resulting version.
func Apply(ctx context.Context, logg *logger.Logger, client *db.Client) error {
	sqlDB, err := client.SQL()
	if err != nil {
		return fmt.Errorf("extracting sql.DB: %w", err)
	}

	if err := Up(ctx, sqlDB, client.Dialect()); err != nil {
		return err
	}

	if logg != nil {
		version, err := Version(ctx, sqlDB, client.Dialect())
		if err != nil {
			return fmt.Errorf("reading schema version: %w", err)
		}
		logg.Info(logg.WithField(ctx, "schema_version", version), "schema up to date")
	}
	return nil
}

// MaybeRun applies the schema when the auto-migrate flag is enabled.
func MaybeRun(ctx context.Context, cfg *config.Config, logg *logger.Logger, client *db.Client) error {
	if !cfg.FeatureFlags.AutoMigrate {
		return nil
	}
	return Apply(ctx, logg, client)
}
