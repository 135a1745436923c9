package characters

import (
	"context"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
)

type characterRepository interface {
	Create(ctx context.Context, dto CreateCharacterDTO) (*models.Character, error)
	FindByID(ctx context.Context, id uint) (*models.Character, error)
	List(ctx context.Context, cursor string, limit int) ([]models.Character, string, error)
	ListByHomePlanet(ctx context.Context, planetID uint) ([]models.Character, error)
	Update(ctx context.Context, id uint, dto UpdateCharacterDTO) (*models.Character, error)
	Delete(ctx context.Context, id uint) error
}

// Service exposes character operations returning serialized characters.
type Service interface {
	Create(ctx context.Context, input CreateCharacterDTO) (*CharacterDTO, error)
	Get(ctx context.Context, id uint) (*CharacterDTO, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[CharacterDTO], error)
	ListByHomePlanet(ctx context.Context, planetID uint) ([]CharacterDTO, error)
	Update(ctx context.Context, id uint, input UpdateCharacterDTO) (*CharacterDTO, error)
	Delete(ctx context.Context, id uint) error
}

type service struct {
	repo characterRepository
	logg *logger.Logger
}

// NewService builds a character service.
func NewService(repo characterRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "character repository is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) Create(ctx context.Context, input CreateCharacterDTO) (*CharacterDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	character, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithEntity(ctx, "characters", character.ID), "character created")
	return FromModel(character), nil
}

func (s *service) Get(ctx context.Context, id uint) (*CharacterDTO, error) {
	character, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromModel(character), nil
}

func (s *service) List(ctx context.Context, params pagination.Params) (pagination.Page[CharacterDTO], error) {
	rows, next, err := s.repo.List(ctx, params.Cursor, params.Limit)
	if err != nil {
		return pagination.Page[CharacterDTO]{}, err
	}
	return pagination.Page[CharacterDTO]{Items: serializeAll(rows), NextCursor: next}, nil
}

func (s *service) ListByHomePlanet(ctx context.Context, planetID uint) ([]CharacterDTO, error) {
	rows, err := s.repo.ListByHomePlanet(ctx, planetID)
	if err != nil {
		return nil, err
	}
	return serializeAll(rows), nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdateCharacterDTO) (*CharacterDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	character, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithField(s.logg.WithEntity(ctx, "characters", id), "changed_fields", len(input.Changes()))
	s.logg.Info(ctx, "character updated")
	return FromModel(character), nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithEntity(ctx, "characters", id), "character deleted")
	return nil
}

func serializeAll(rows []models.Character) []CharacterDTO {
	items := make([]CharacterDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return items
}
