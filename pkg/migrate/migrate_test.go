package migrate

import (
	"context"
	"fmt"
	"io/fs"
	"regexp"
	"strings"
	"testing"

	"github.com/angelmondragon/favorites-catalog/pkg/config"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var migrationNameRe = regexp.MustCompile(`^(\d{14})_[a-z0-9_]+\.sql$`)

func openSQLite(t *testing.T) *db.Client {
	t.Helper()
	client, err := db.New(context.Background(), config.DBConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	return client
}

func TestEmbeddedMigrationsAreWellFormed(t *testing.T) {
	for _, dialect := range []string{db.DialectPostgres, db.DialectSQLite} {
		dir, err := DirFor(dialect)
		require.NoError(t, err)

		entries, err := fs.ReadDir(migrationsFS, dir)
		require.NoError(t, err)
		require.Len(t, entries, 3, "dialect %s", dialect)

		seen := map[string]string{}
		for _, entry := range entries {
			m := migrationNameRe.FindStringSubmatch(entry.Name())
			require.NotNil(t, m, "invalid migration filename %q", entry.Name())
			if prev, ok := seen[m[1]]; ok {
				t.Fatalf("duplicate version %s in %s and %s", m[1], prev, entry.Name())
			}
			seen[m[1]] = entry.Name()

			data, err := fs.ReadFile(migrationsFS, dir+"/"+entry.Name())
			require.NoError(t, err)
			assert.Contains(t, string(data), "-- +goose Up")
			assert.Contains(t, string(data), "-- +goose Down")
		}
	}
}

func TestDialectsShareVersions(t *testing.T) {
	pgEntries, err := fs.ReadDir(migrationsFS, "migrations/postgres")
	require.NoError(t, err)
	sqliteEntries, err := fs.ReadDir(migrationsFS, "migrations/sqlite")
	require.NoError(t, err)

	require.Equal(t, len(pgEntries), len(sqliteEntries))
	for i := range pgEntries {
		assert.Equal(t, pgEntries[i].Name(), sqliteEntries[i].Name())
	}
}

func TestPostgresFavoritesMigrationContainsConstraints(t *testing.T) {
	data, err := fs.ReadFile(migrationsFS, "migrations/postgres/20250301120200_create_favorites.sql")
	require.NoError(t, err)
	content := string(data)

	checks := []string{
		"CREATE TABLE IF NOT EXISTS favorite_planets",
		"FOREIGN KEY (user_id) REFERENCES users(id) ON DELETE CASCADE",
		"FOREIGN KEY (planet_id) REFERENCES planets(id) ON DELETE RESTRICT",
		"FOREIGN KEY (character_id) REFERENCES characters(id) ON DELETE RESTRICT",
		"DROP TABLE IF EXISTS favorite_planets",
	}
	for _, sub := range checks {
		if !strings.Contains(content, sub) {
			t.Errorf("missing expected statement %q", sub)
		}
	}
}

func TestDirForUnknownDialect(t *testing.T) {
	_, err := DirFor("mysql")
	require.Error(t, err)
}

func TestApplyCreatesSchemaAndIsIdempotent(t *testing.T) {
	client := openSQLite(t)
	ctx := context.Background()

	require.NoError(t, Apply(ctx, logger.Nop(), client))
	require.NoError(t, Apply(ctx, logger.Nop(), client))

	sqlDB, err := client.SQL()
	require.NoError(t, err)
	version, err := Version(ctx, sqlDB, client.Dialect())
	require.NoError(t, err)
	assert.Equal(t, int64(20250301120200), version)

	for _, table := range []string{"users", "planets", "characters", "favorite_planets", "favorite_characters"} {
		assert.True(t, client.DB().Migrator().HasTable(table), "expected table %s", table)
	}
}

func TestMaybeRunHonoursFlag(t *testing.T) {
	client := openSQLite(t)
	ctx := context.Background()

	cfg := &config.Config{}
	require.NoError(t, MaybeRun(ctx, cfg, nil, client))
	assert.False(t, client.DB().Migrator().HasTable("users"))

	cfg.FeatureFlags.AutoMigrate = true
	require.NoError(t, MaybeRun(ctx, cfg, nil, client))
	assert.True(t, client.DB().Migrator().HasTable("users"))
}
