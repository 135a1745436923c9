package characters

import (
	"context"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"gorm.io/gorm"
)

const homePlanetAssoc = "HomePlanet"

// Repository exposes character persistence operations. Reads preload the
// home planet so serialization can embed it.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a characters repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a character. A home planet id that does not exist fails
// with the storage foreign key error.
func (r *Repository) Create(ctx context.Context, dto CreateCharacterDTO) (*models.Character, error) {
	character := dto.ToModel()
	if err := r.db.WithContext(ctx).Omit(homePlanetAssoc).Create(character).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, character.ID)
}

// FindByID loads a character and its home planet.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Character, error) {
	var character models.Character
	if err := r.db.WithContext(ctx).Preload(homePlanetAssoc).First(&character, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &character, nil
}

// List returns characters ordered by id, starting after the cursor.
func (r *Repository) List(ctx context.Context, cursor string, limit int) ([]models.Character, string, error) {
	decoded, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).Model(&models.Character{}).Preload(homePlanetAssoc)
	if decoded != nil {
		query = query.Where("id > ?", decoded.ID)
	}

	var rows []models.Character
	if err := query.Order("id ASC").Limit(pagination.LimitWithBuffer(limit)).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	rows, next := pagination.Trim(rows, limit, func(c models.Character) uint { return c.ID })
	return rows, next, nil
}

// ListByHomePlanet returns every character homed on the planet.
func (r *Repository) ListByHomePlanet(ctx context.Context, planetID uint) ([]models.Character, error) {
	var rows []models.Character
	err := r.db.WithContext(ctx).
		Preload(homePlanetAssoc).
		Where("home_planet_id = ?", planetID).
		Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Update applies the partial update and returns the reloaded character.
func (r *Repository) Update(ctx context.Context, id uint, dto UpdateCharacterDTO) (*models.Character, error) {
	changes := dto.Changes()
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&models.Character{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the character. Favorites pointing at it make the delete fail.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Character{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
