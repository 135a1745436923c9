package favorites

import (
	"github.com/angelmondragon/favorites-catalog/internal/characters"
	"github.com/angelmondragon/favorites-catalog/internal/planets"
	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
)

// FavoritePlanetDTO embeds the full planet; the owner stays a raw id.
type FavoritePlanetDTO struct {
	ID     uint               `json:"id"`
	UserID uint               `json:"user_id"`
	Planet *planets.PlanetDTO `json:"planet"`
}

// FavoriteCharacterDTO embeds the full character, home planet included.
type FavoriteCharacterDTO struct {
	ID        uint                     `json:"id"`
	UserID    uint                     `json:"user_id"`
	Character *characters.CharacterDTO `json:"character"`
}

// UserFavoritesDTO groups everything a user has favorited.
type UserFavoritesDTO struct {
	Planets    []FavoritePlanetDTO    `json:"planets"`
	Characters []FavoriteCharacterDTO `json:"characters"`
}

// AddPlanetDTO links a user to a planet.
type AddPlanetDTO struct {
	UserID   uint `json:"user_id" validate:"required"`
	PlanetID uint `json:"planet_id" validate:"required"`
}

// AddCharacterDTO links a user to a character.
type AddCharacterDTO struct {
	UserID      uint `json:"user_id" validate:"required"`
	CharacterID uint `json:"character_id" validate:"required"`
}

// FromPlanetModel serializes a favorite planet through the planet
// serializer. A nil favorite serializes to nil.
func FromPlanetModel(f *models.FavoritePlanet) *FavoritePlanetDTO {
	if f == nil {
		return nil
	}
	return &FavoritePlanetDTO{
		ID:     f.ID,
		UserID: f.UserID,
		Planet: planets.FromModel(f.Planet),
	}
}

// FromCharacterModel serializes a favorite character through the character
// serializer. A nil favorite serializes to nil.
func FromCharacterModel(f *models.FavoriteCharacter) *FavoriteCharacterDTO {
	if f == nil {
		return nil
	}
	return &FavoriteCharacterDTO{
		ID:        f.ID,
		UserID:    f.UserID,
		Character: characters.FromModel(f.Character),
	}
}

// ToModel builds the row to insert.
func (d AddPlanetDTO) ToModel() *models.FavoritePlanet {
	return &models.FavoritePlanet{UserID: d.UserID, PlanetID: d.PlanetID}
}

// ToModel builds the row to insert.
func (d AddCharacterDTO) ToModel() *models.FavoriteCharacter {
	return &models.FavoriteCharacter{UserID: d.UserID, CharacterID: d.CharacterID}
}
