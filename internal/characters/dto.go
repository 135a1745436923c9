package characters

import (
	"github.com/angelmondragon/favorites-catalog/internal/planets"
	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
)

// CharacterDTO is the serialized character. The home planet is embedded in
// full, or null when the character has none (or it was not loaded).
type CharacterDTO struct {
	ID         uint               `json:"id"`
	Name       string             `json:"name"`
	Gender     *string            `json:"gender"`
	BirthYear  *string            `json:"birth_year"`
	Height     *float64           `json:"height"`
	Mass       *float64           `json:"mass"`
	HomePlanet *planets.PlanetDTO `json:"home_planet"`
}

// CreateCharacterDTO holds the data required to persist a new character.
type CreateCharacterDTO struct {
	Name         string   `json:"name" validate:"required,max=100"`
	Gender       *string  `json:"gender" validate:"omitempty,max=20"`
	BirthYear    *string  `json:"birth_year" validate:"omitempty,max=10"`
	Height       *float64 `json:"height"`
	Mass         *float64 `json:"mass"`
	HomePlanetID *uint    `json:"home_planet_id"`
}

// UpdateCharacterDTO carries a partial update. Nil fields stay untouched;
// columns listed in Unset are set to NULL.
type UpdateCharacterDTO struct {
	Name         *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Gender       *string  `json:"gender" validate:"omitempty,max=20"`
	BirthYear    *string  `json:"birth_year" validate:"omitempty,max=10"`
	Height       *float64 `json:"height"`
	Mass         *float64 `json:"mass"`
	HomePlanetID *uint    `json:"home_planet_id"`
	Unset        []string `json:"unset" validate:"dive,oneof=gender birth_year height mass home_planet_id"`
}

// FromModel serializes a character, embedding its home planet through the
// planet serializer. A nil character serializes to nil.
func FromModel(c *models.Character) *CharacterDTO {
	if c == nil {
		return nil
	}
	return &CharacterDTO{
		ID:         c.ID,
		Name:       c.Name,
		Gender:     clone(c.Gender),
		BirthYear:  clone(c.BirthYear),
		Height:     clone(c.Height),
		Mass:       clone(c.Mass),
		HomePlanet: planets.FromModel(c.HomePlanet),
	}
}

func (c CreateCharacterDTO) ToModel() *models.Character {
	return &models.Character{
		Name:         c.Name,
		Gender:       clone(c.Gender),
		BirthYear:    clone(c.BirthYear),
		Height:       clone(c.Height),
		Mass:         clone(c.Mass),
		HomePlanetID: clone(c.HomePlanetID),
	}
}

func (u UpdateCharacterDTO) assignments() map[string]any {
	changes := map[string]any{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Gender != nil {
		changes["gender"] = *u.Gender
	}
	if u.BirthYear != nil {
		changes["birth_year"] = *u.BirthYear
	}
	if u.Height != nil {
		changes["height"] = *u.Height
	}
	if u.Mass != nil {
		changes["mass"] = *u.Mass
	}
	if u.HomePlanetID != nil {
		changes["home_planet_id"] = *u.HomePlanetID
	}
	return changes
}

// Changes returns the column assignments the update implies, with every
// column in Unset mapped to NULL.
func (u UpdateCharacterDTO) Changes() map[string]any {
	changes := u.assignments()
	for _, column := range u.Unset {
		changes[column] = nil
	}
	return changes
}

// Validate rejects a column that is both assigned and listed in Unset.
func (u UpdateCharacterDTO) Validate() error {
	return validators.UnsetConflicts(u.assignments(), u.Unset)
}

func clone[T any](v *T) *T {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
