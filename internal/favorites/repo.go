package favorites

import (
	"context"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	"gorm.io/gorm"
)

const (
	planetAssoc        = "Planet"
	characterAssoc     = "Character"
	characterHomeAssoc = "Character.HomePlanet"
)

// Repository persists favorite planets and favorite characters. Reads
// preload the favorited entity so it can be serialized in full.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a favorites repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// AddPlanet records a favorite planet. Unknown users or planets fail with
// the storage foreign key error. Duplicates are accepted.
func (r *Repository) AddPlanet(ctx context.Context, dto AddPlanetDTO) (*models.FavoritePlanet, error) {
	favorite := dto.ToModel()
	if err := r.db.WithContext(ctx).Omit(planetAssoc).Create(favorite).Error; err != nil {
		return nil, err
	}
	return r.FindPlanetFavorite(ctx, favorite.ID)
}

// AddCharacter records a favorite character.
func (r *Repository) AddCharacter(ctx context.Context, dto AddCharacterDTO) (*models.FavoriteCharacter, error) {
	favorite := dto.ToModel()
	if err := r.db.WithContext(ctx).Omit(characterAssoc).Create(favorite).Error; err != nil {
		return nil, err
	}
	return r.FindCharacterFavorite(ctx, favorite.ID)
}

// FindPlanetFavorite loads one favorite planet with its planet preloaded.
// A missing row fails with gorm.ErrRecordNotFound.
func (r *Repository) FindPlanetFavorite(ctx context.Context, id uint) (*models.FavoritePlanet, error) {
	var favorite models.FavoritePlanet
	if err := r.db.WithContext(ctx).Preload(planetAssoc).First(&favorite, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &favorite, nil
}

// FindCharacterFavorite loads one favorite character with the character and
// its home planet preloaded.
func (r *Repository) FindCharacterFavorite(ctx context.Context, id uint) (*models.FavoriteCharacter, error) {
	var favorite models.FavoriteCharacter
	err := r.db.WithContext(ctx).
		Preload(characterAssoc).
		Preload(characterHomeAssoc).
		First(&favorite, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &favorite, nil
}

// ListPlanetsByUser returns the user's favorite planets oldest first.
func (r *Repository) ListPlanetsByUser(ctx context.Context, userID uint) ([]models.FavoritePlanet, error) {
	var rows []models.FavoritePlanet
	err := r.db.WithContext(ctx).
		Preload(planetAssoc).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// ListCharactersByUser returns the user's favorite characters oldest first.
func (r *Repository) ListCharactersByUser(ctx context.Context, userID uint) ([]models.FavoriteCharacter, error) {
	var rows []models.FavoriteCharacter
	err := r.db.WithContext(ctx).
		Preload(characterAssoc).
		Preload(characterHomeAssoc).
		Where("user_id = ?", userID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// PlanetFavoriteExists reports whether the user already favorited the planet.
func (r *Repository) PlanetFavoriteExists(ctx context.Context, userID, planetID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FavoritePlanet{}).
		Where("user_id = ? AND planet_id = ?", userID, planetID).
		Count(&count).Error
	return count > 0, err
}

// CharacterFavoriteExists reports whether the user already favorited the character.
func (r *Repository) CharacterFavoriteExists(ctx context.Context, userID, characterID uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.FavoriteCharacter{}).
		Where("user_id = ? AND character_id = ?", userID, characterID).
		Count(&count).Error
	return count > 0, err
}

// RemovePlanet deletes a favorite planet by id. A missing row fails with
// gorm.ErrRecordNotFound.
func (r *Repository) RemovePlanet(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.FavoritePlanet{}, id)
}

// RemoveCharacter deletes a favorite character by id.
func (r *Repository) RemoveCharacter(ctx context.Context, id uint) error {
	return deleteByID(r.db.WithContext(ctx), &models.FavoriteCharacter{}, id)
}

func deleteByID(db *gorm.DB, model any, id uint) error {
	res := db.Delete(model, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
