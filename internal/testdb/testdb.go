// Package testdb opens throwaway sqlite databases carrying the real schema.
package testdb

import (
	"context"
	"fmt"
	"testing"

	"github.com/angelmondragon/favorites-catalog/pkg/config"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	"github.com/angelmondragon/favorites-catalog/pkg/migrate"
	"github.com/google/uuid"
)

// Config returns an isolated in-memory sqlite configuration with foreign keys on.
func Config() config.DBConfig {
	return config.DBConfig{
		Driver:       config.DriverSQLite,
		DSN:          fmt.Sprintf("file:%s?mode=memory&cache=shared&_foreign_keys=on", uuid.NewString()),
		MaxOpenConns: 1,
		MaxIdleConns: 1,
	}
}

// Open returns a migrated client that is closed when the test ends.
func Open(t testing.TB) *db.Client {
	t.Helper()

	ctx := context.Background()
	client, err := db.New(ctx, Config(), nil, nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	t.Cleanup(func() { _ = client.Close() })

	if err := migrate.Apply(ctx, nil, client); err != nil {
		t.Fatalf("apply schema: %v", err)
	}
	return client
}
