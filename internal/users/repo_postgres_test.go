//go:build db

package users

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/angelmondragon/favorites-catalog/pkg/config"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	"github.com/angelmondragon/favorites-catalog/pkg/migrate"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openPostgres(t *testing.T) *db.Client {
	t.Helper()
	dsn := os.Getenv(config.EnvDBDSN)
	if dsn == "" {
		t.Skipf("%s not set", config.EnvDBDSN)
	}

	ctx := context.Background()
	client, err := db.New(ctx, config.DBConfig{Driver: config.DriverPostgres, DSN: dsn, MaxOpenConns: 4, MaxIdleConns: 2}, nil, nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })
	require.NoError(t, migrate.Apply(ctx, nil, client))
	return client
}

func TestPostgresDuplicateEmailIsUniqueViolation(t *testing.T) {
	client := openPostgres(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()
	email := uuid.NewString() + "@example.com"

	created, err := repo.Create(ctx, newUser(email))
	require.NoError(t, err)
	t.Cleanup(func() { _ = repo.Delete(context.Background(), created.ID) })

	_, err = repo.Create(ctx, newUser(email))
	require.Error(t, err)

	var pgErr *pgconn.PgError
	require.True(t, errors.As(err, &pgErr), "expected pgconn error, got %T", err)
	assert.Equal(t, "23505", pgErr.Code)
	assert.Equal(t, "users_email_key", pgErr.ConstraintName)
	assert.True(t, db.IsUniqueViolation(err))
}
