package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/angelmondragon/favorites-catalog/internal/testdb"
	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return password, nil }

func TestInspectKinds(t *testing.T) {
	client := testdb.Open(t)
	svc, err := newServices(client, plainHasher{}, nil)
	require.NoError(t, err)
	ctx := context.Background()

	planet := &models.Planet{Name: "Tatooine"}
	require.NoError(t, client.DB().Create(planet).Error)
	user := &models.User{Email: "a@example.com", Password: "x", FirstName: "A", LastName: "B", IsActive: true}
	require.NoError(t, client.DB().Create(user).Error)
	require.NoError(t, client.DB().Create(&models.FavoritePlanet{UserID: user.ID, PlanetID: planet.ID}).Error)

	out, err := svc.inspect(ctx, "favorites", user.ID, pagination.Params{})
	require.NoError(t, err)
	encoded, err := json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"planets":[{"id":1,"user_id":1,"planet":{"id":1,"name":"Tatooine","climate":null,"terrain":null,"population":null}}],"characters":[]}`,
		string(encoded))

	out, err = svc.inspect(ctx, "planets", 0, pagination.Params{Limit: 10})
	require.NoError(t, err)
	encoded, err = json.Marshal(out)
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"items":[{"id":1,"name":"Tatooine","climate":null,"terrain":null,"population":null}],"next_cursor":""}`,
		string(encoded))

	_, err = svc.inspect(ctx, "character", 7, pagination.Params{})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestInspectRejectsBadArguments(t *testing.T) {
	client := testdb.Open(t)
	svc, err := newServices(client, plainHasher{}, nil)
	require.NoError(t, err)

	_, err = svc.inspect(context.Background(), "planet", 0, pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	_, err = svc.inspect(context.Background(), "moons", 1, pagination.Params{})
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestLogFailureIncludesStorageDiagnostics(t *testing.T) {
	buf := &bytes.Buffer{}
	logg := logger.New(logger.Options{ServiceName: "inspect", Output: buf})
	err := fmt.Errorf("remove planet: %w", &pgconn.PgError{
		Code:           "23503",
		ConstraintName: "favorite_planets_planet_id_fkey",
		TableName:      "favorite_planets",
		Message:        "update or delete violates foreign key constraint",
	})

	logFailure(context.Background(), logg, "inspect failed", err)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "inspect failed", entry["message"])
	assert.Equal(t, "23503", entry["pg_code"])
	assert.Equal(t, "favorite_planets_planet_id_fkey", entry["pg_constraint"])
	assert.Equal(t, "favorite_planets", entry["pg_table"])
	assert.Contains(t, entry["error_message"], "remove planet")
}
