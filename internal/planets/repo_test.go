package planets

import (
	"context"
	"testing"

	"github.com/angelmondragon/favorites-catalog/internal/testdb"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestRepositoryCreateAndFind(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	created, err := repo.Create(ctx, CreatePlanetDTO{
		Name:       "Tatooine",
		Climate:    strPtr("arid"),
		Terrain:    strPtr("desert"),
		Population: int64Ptr(200000),
	})
	require.NoError(t, err)
	assert.Equal(t, uint(1), created.ID)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created, found)

	_, err = repo.FindByID(ctx, 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryCreateWithoutOptionalFields(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())

	created, err := repo.Create(context.Background(), CreatePlanetDTO{Name: "Dagobah"})
	require.NoError(t, err)

	found, err := repo.FindByID(context.Background(), created.ID)
	require.NoError(t, err)
	assert.Nil(t, found.Climate)
	assert.Nil(t, found.Terrain)
	assert.Nil(t, found.Population)
}

func TestRepositoryListPaginates(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	for _, name := range []string{"Tatooine", "Alderaan", "Yavin IV", "Hoth", "Dagobah"} {
		_, err := repo.Create(ctx, CreatePlanetDTO{Name: name})
		require.NoError(t, err)
	}

	first, next, err := repo.List(ctx, "", 2)
	require.NoError(t, err)
	require.Len(t, first, 2)
	assert.Equal(t, "Tatooine", first[0].Name)
	assert.NotEmpty(t, next)

	second, next, err := repo.List(ctx, next, 2)
	require.NoError(t, err)
	require.Len(t, second, 2)
	assert.Equal(t, "Yavin IV", second[0].Name)

	last, next, err := repo.List(ctx, next, 2)
	require.NoError(t, err)
	require.Len(t, last, 1)
	assert.Equal(t, "Dagobah", last[0].Name)
	assert.Empty(t, next)

	_, _, err = repo.List(ctx, "%%%", 2)
	assert.Error(t, err)
}

func TestRepositoryUpdate(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	created, err := repo.Create(ctx, CreatePlanetDTO{Name: "Bespin", Climate: strPtr("temperate"), Terrain: strPtr("gas giant")})
	require.NoError(t, err)

	updated, err := repo.Update(ctx, created.ID, UpdatePlanetDTO{Population: int64Ptr(6000000), Unset: []string{"climate"}})
	require.NoError(t, err)
	assert.Nil(t, updated.Climate)
	assert.Equal(t, "gas giant", *updated.Terrain)
	assert.Equal(t, int64(6000000), *updated.Population)

	unchanged, err := repo.Update(ctx, created.ID, UpdatePlanetDTO{})
	require.NoError(t, err)
	assert.Equal(t, updated, unchanged)

	_, err = repo.Update(ctx, 404, UpdatePlanetDTO{Name: strPtr("ghost")})
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteNullsHomePlanet(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	planet, err := repo.Create(ctx, CreatePlanetDTO{Name: "Stewjon"})
	require.NoError(t, err)

	character := &models.Character{Name: "Obi-Wan Kenobi", HomePlanetID: &planet.ID}
	require.NoError(t, client.DB().Create(character).Error)

	require.NoError(t, repo.Delete(ctx, planet.ID))

	var reloaded models.Character
	require.NoError(t, client.DB().First(&reloaded, character.ID).Error)
	assert.Nil(t, reloaded.HomePlanetID)

	assert.ErrorIs(t, repo.Delete(ctx, planet.ID), gorm.ErrRecordNotFound)
}

func TestRepositoryDeleteRestrictedByFavorites(t *testing.T) {
	client := testdb.Open(t)
	repo := NewRepository(client.DB())
	ctx := context.Background()

	planet, err := repo.Create(ctx, CreatePlanetDTO{Name: "Coruscant"})
	require.NoError(t, err)

	user := &models.User{Email: "fan@example.com", Password: "x", FirstName: "Fan", LastName: "Boy", IsActive: true}
	require.NoError(t, client.DB().Create(user).Error)
	require.NoError(t, client.DB().Create(&models.FavoritePlanet{UserID: user.ID, PlanetID: planet.ID}).Error)

	err = repo.Delete(ctx, planet.ID)
	require.Error(t, err)
	assert.True(t, db.IsForeignKeyViolation(err), "expected fk violation, got %v", err)

	_, err = repo.FindByID(ctx, planet.ID)
	assert.NoError(t, err)
}
