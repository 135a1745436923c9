package planets

import (
	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
)

// PlanetDTO is the serialized planet. Field order and names are the public
// payload contract; unset optional fields render as null.
type PlanetDTO struct {
	ID         uint    `json:"id"`
	Name       string  `json:"name"`
	Climate    *string `json:"climate"`
	Terrain    *string `json:"terrain"`
	Population *int64  `json:"population"`
}

// CreatePlanetDTO holds the data required to persist a new planet.
type CreatePlanetDTO struct {
	Name       string  `json:"name" validate:"required,max=100"`
	Climate    *string `json:"climate" validate:"omitempty,max=100"`
	Terrain    *string `json:"terrain" validate:"omitempty,max=100"`
	Population *int64  `json:"population"`
}

// UpdatePlanetDTO carries a partial update. Nil fields stay untouched;
// columns listed in Unset are set to NULL.
type UpdatePlanetDTO struct {
	Name       *string  `json:"name" validate:"omitnil,min=1,max=100"`
	Climate    *string  `json:"climate" validate:"omitempty,max=100"`
	Terrain    *string  `json:"terrain" validate:"omitempty,max=100"`
	Population *int64   `json:"population"`
	Unset      []string `json:"unset" validate:"dive,oneof=climate terrain population"`
}

// FromModel serializes a planet. A nil planet serializes to nil.
func FromModel(p *models.Planet) *PlanetDTO {
	if p == nil {
		return nil
	}
	return &PlanetDTO{
		ID:         p.ID,
		Name:       p.Name,
		Climate:    cloneString(p.Climate),
		Terrain:    cloneString(p.Terrain),
		Population: cloneInt64(p.Population),
	}
}

func (c CreatePlanetDTO) ToModel() *models.Planet {
	return &models.Planet{
		Name:       c.Name,
		Climate:    cloneString(c.Climate),
		Terrain:    cloneString(c.Terrain),
		Population: cloneInt64(c.Population),
	}
}

func (u UpdatePlanetDTO) assignments() map[string]any {
	changes := map[string]any{}
	if u.Name != nil {
		changes["name"] = *u.Name
	}
	if u.Climate != nil {
		changes["climate"] = *u.Climate
	}
	if u.Terrain != nil {
		changes["terrain"] = *u.Terrain
	}
	if u.Population != nil {
		changes["population"] = *u.Population
	}
	return changes
}

// Changes returns the column assignments the update implies, with every
// column in Unset mapped to NULL.
func (u UpdatePlanetDTO) Changes() map[string]any {
	changes := u.assignments()
	for _, column := range u.Unset {
		changes[column] = nil
	}
	return changes
}

// Validate rejects a column that is both assigned and listed in Unset.
func (u UpdatePlanetDTO) Validate() error {
	return validators.UnsetConflicts(u.assignments(), u.Unset)
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}

func cloneInt64(v *int64) *int64 {
	if v == nil {
		return nil
	}
	out := *v
	return &out
}
