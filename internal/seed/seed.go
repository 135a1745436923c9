// Package seed loads a reference catalog of planets and characters.
package seed

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/angelmondragon/favorites-catalog/internal/characters"
	"github.com/angelmondragon/favorites-catalog/internal/planets"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
	"go.uber.org/multierr"
	"gorm.io/gorm"
)

// Catalog is the on-disk shape of a seed file.
type Catalog struct {
	Planets    []planets.CreatePlanetDTO `json:"planets"`
	Characters []CharacterRecord         `json:"characters"`
}

// CharacterRecord names its home planet instead of referencing it by id.
// The name must match a planet in the same catalog.
type CharacterRecord struct {
	Name       string   `json:"name"`
	Gender     *string  `json:"gender"`
	BirthYear  *string  `json:"birth_year"`
	Height     *float64 `json:"height"`
	Mass       *float64 `json:"mass"`
	HomePlanet *string  `json:"home_planet"`
}

// Summary reports what a load inserted.
type Summary struct {
	Planets    int `json:"planets"`
	Characters int `json:"characters"`
}

func (r CharacterRecord) toDTO(homePlanetID *uint) characters.CreateCharacterDTO {
	return characters.CreateCharacterDTO{
		Name:         r.Name,
		Gender:       r.Gender,
		BirthYear:    r.BirthYear,
		Height:       r.Height,
		Mass:         r.Mass,
		HomePlanetID: homePlanetID,
	}
}

// Parse decodes a catalog and validates every record, reporting all problems
// together.
func Parse(r io.Reader) (*Catalog, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var catalog Catalog
	if err := dec.Decode(&catalog); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "decode catalog")
	}
	if err := catalog.Validate(); err != nil {
		return nil, err
	}
	return &catalog, nil
}

// Validate checks each record against the storage constraints and resolves
// home planet names.
func (c *Catalog) Validate() error {
	var errs error

	names := make(map[string]struct{}, len(c.Planets))
	for i, planet := range c.Planets {
		if err := validators.Struct(planet); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("planets[%d]: %w", i, err))
			continue
		}
		key := planetKey(planet.Name)
		if _, dup := names[key]; dup {
			errs = multierr.Append(errs, fmt.Errorf("planets[%d]: duplicate planet name %q", i, planet.Name))
			continue
		}
		names[key] = struct{}{}
	}

	for i, character := range c.Characters {
		if err := validators.Struct(character.toDTO(nil)); err != nil {
			errs = multierr.Append(errs, fmt.Errorf("characters[%d]: %w", i, err))
		}
		if character.HomePlanet == nil {
			continue
		}
		if _, ok := names[planetKey(*character.HomePlanet)]; !ok {
			errs = multierr.Append(errs, fmt.Errorf("characters[%d]: unknown home planet %q", i, *character.HomePlanet))
		}
	}

	if errs != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, errs, "invalid catalog").
			WithDetails(map[string]int{"problems": len(multierr.Errors(errs))})
	}
	return nil
}

// Load parses the catalog and inserts it in a single transaction. Nothing is
// written when any record is invalid or any insert fails.
func Load(ctx context.Context, client *db.Client, r io.Reader, logg *logger.Logger) (Summary, error) {
	if logg == nil {
		logg = logger.Nop()
	}

	catalog, err := Parse(r)
	if err != nil {
		return Summary{}, err
	}

	planetRepo := planets.NewRepository(client.DB())
	characterRepo := characters.NewRepository(client.DB())

	var summary Summary
	err = client.WithTx(ctx, func(tx *gorm.DB) error {
		var txErr error
		summary, txErr = insert(ctx, planetRepo.WithTx(tx), characterRepo.WithTx(tx), catalog)
		return txErr
	})
	if err != nil {
		return Summary{}, err
	}

	ctx = logg.WithFields(ctx, map[string]any{
		"planets":    summary.Planets,
		"characters": summary.Characters,
	})
	logg.Info(ctx, "catalog seeded")
	return summary, nil
}

func insert(ctx context.Context, planetRepo *planets.Repository, characterRepo *characters.Repository, catalog *Catalog) (Summary, error) {
	ids := make(map[string]uint, len(catalog.Planets))
	for _, in := range catalog.Planets {
		planet, err := planetRepo.Create(ctx, in)
		if err != nil {
			return Summary{}, fmt.Errorf("insert planet %q: %w", in.Name, err)
		}
		ids[planetKey(in.Name)] = planet.ID
	}

	for _, record := range catalog.Characters {
		var homePlanetID *uint
		if record.HomePlanet != nil {
			id := ids[planetKey(*record.HomePlanet)]
			homePlanetID = &id
		}
		if _, err := characterRepo.Create(ctx, record.toDTO(homePlanetID)); err != nil {
			return Summary{}, fmt.Errorf("insert character %q: %w", record.Name, err)
		}
	}

	return Summary{Planets: len(catalog.Planets), Characters: len(catalog.Characters)}, nil
}

func planetKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
