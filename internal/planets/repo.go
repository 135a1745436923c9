package planets

import (
	"context"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"gorm.io/gorm"
)

// Repository exposes planet persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a planets repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// WithTx returns a repository bound to the given transaction.
func (r *Repository) WithTx(tx *gorm.DB) *Repository {
	return &Repository{db: tx}
}

// Create inserts a new planet and returns the persisted model.
func (r *Repository) Create(ctx context.Context, dto CreatePlanetDTO) (*models.Planet, error) {
	planet := dto.ToModel()
	if err := r.db.WithContext(ctx).Create(planet).Error; err != nil {
		return nil, err
	}
	return planet, nil
}

// FindByID loads a planet by id.
func (r *Repository) FindByID(ctx context.Context, id uint) (*models.Planet, error) {
	var planet models.Planet
	if err := r.db.WithContext(ctx).First(&planet, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &planet, nil
}

// List returns planets ordered by id, starting after the cursor.
func (r *Repository) List(ctx context.Context, cursor string, limit int) ([]models.Planet, string, error) {
	decoded, err := pagination.ParseCursor(cursor)
	if err != nil {
		return nil, "", err
	}

	query := r.db.WithContext(ctx).Model(&models.Planet{})
	if decoded != nil {
		query = query.Where("id > ?", decoded.ID)
	}

	var rows []models.Planet
	if err := query.Order("id ASC").Limit(pagination.LimitWithBuffer(limit)).Find(&rows).Error; err != nil {
		return nil, "", err
	}

	rows, next := pagination.Trim(rows, limit, func(p models.Planet) uint { return p.ID })
	return rows, next, nil
}

// Update applies the partial update and returns the reloaded planet.
func (r *Repository) Update(ctx context.Context, id uint, dto UpdatePlanetDTO) (*models.Planet, error) {
	changes := dto.Changes()
	if len(changes) == 0 {
		return r.FindByID(ctx, id)
	}

	res := r.db.WithContext(ctx).Model(&models.Planet{}).Where("id = ?", id).Updates(changes)
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindByID(ctx, id)
}

// Delete removes the planet. Characters homed there keep existing with a NULL
// home planet; favorites pointing at it make the delete fail.
func (r *Repository) Delete(ctx context.Context, id uint) error {
	res := r.db.WithContext(ctx).Delete(&models.Planet{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
