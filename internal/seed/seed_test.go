package seed

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/angelmondragon/favorites-catalog/internal/characters"
	"github.com/angelmondragon/favorites-catalog/internal/testdb"
	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/multierr"
)

func TestLoadCatalogFile(t *testing.T) {
	client := testdb.Open(t)
	f, err := os.Open("testdata/catalog.json")
	require.NoError(t, err)
	defer f.Close()

	summary, err := Load(context.Background(), client, f, nil)
	require.NoError(t, err)
	assert.Equal(t, Summary{Planets: 4, Characters: 4}, summary)

	homed, err := characters.NewRepository(client.DB()).ListByHomePlanet(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, homed, 1)
	assert.Equal(t, "Luke Skywalker", homed[0].Name)

	var yoda models.Character
	require.NoError(t, client.DB().Where("name = ?", "Yoda").First(&yoda).Error)
	assert.Nil(t, yoda.HomePlanetID)

	var r2 models.Character
	require.NoError(t, client.DB().Preload("HomePlanet").Where("name = ?", "R2-D2").First(&r2).Error)
	require.NotNil(t, r2.HomePlanet)
	assert.Equal(t, "Naboo", r2.HomePlanet.Name)
}

func TestParseReportsEveryProblem(t *testing.T) {
	input := `{
		"planets": [
			{"name": ""},
			{"name": "Hoth"},
			{"name": "hoth"}
		],
		"characters": [
			{"name": "Han Solo", "home_planet": "Corellia"},
			{"name": "` + strings.Repeat("x", 101) + `"}
		]
	}`

	_, err := Parse(strings.NewReader(input))
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	assert.Equal(t, map[string]int{"problems": 4}, typed.Details())
	assert.Len(t, multierr.Errors(typed.Unwrap()), 4)
	assert.Contains(t, err.Error(), `unknown home planet "Corellia"`)
	assert.Contains(t, err.Error(), `duplicate planet name "hoth"`)
}

func TestParseRejectsUnknownFields(t *testing.T) {
	_, err := Parse(strings.NewReader(`{"planets":[{"name":"Hoth","moons":3}]}`))
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))
}

func TestLoadInsertsNothingOnInvalidCatalog(t *testing.T) {
	client := testdb.Open(t)
	input := `{"planets":[{"name":"Tatooine"}],"characters":[{"name":"Han Solo","home_planet":"Corellia"}]}`

	_, err := Load(context.Background(), client, strings.NewReader(input), nil)
	require.Error(t, err)

	var count int64
	require.NoError(t, client.DB().Model(&models.Planet{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestLoadRollsBackOnInsertFailure(t *testing.T) {
	client := testdb.Open(t)
	require.NoError(t, client.DB().Exec("DROP TABLE favorite_characters").Error)
	require.NoError(t, client.DB().Exec("DROP TABLE characters").Error)

	input := `{"planets":[{"name":"Tatooine"}],"characters":[{"name":"Luke Skywalker","home_planet":"Tatooine"}]}`
	_, err := Load(context.Background(), client, strings.NewReader(input), nil)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `insert character "Luke Skywalker"`)

	var count int64
	require.NoError(t, client.DB().Model(&models.Planet{}).Count(&count).Error)
	assert.Zero(t, count)
}
