package favorites

import (
	"context"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
)

type favoritesRepository interface {
	AddPlanet(ctx context.Context, dto AddPlanetDTO) (*models.FavoritePlanet, error)
	AddCharacter(ctx context.Context, dto AddCharacterDTO) (*models.FavoriteCharacter, error)
	FindPlanetFavorite(ctx context.Context, id uint) (*models.FavoritePlanet, error)
	FindCharacterFavorite(ctx context.Context, id uint) (*models.FavoriteCharacter, error)
	ListPlanetsByUser(ctx context.Context, userID uint) ([]models.FavoritePlanet, error)
	ListCharactersByUser(ctx context.Context, userID uint) ([]models.FavoriteCharacter, error)
	PlanetFavoriteExists(ctx context.Context, userID, planetID uint) (bool, error)
	CharacterFavoriteExists(ctx context.Context, userID, characterID uint) (bool, error)
	RemovePlanet(ctx context.Context, id uint) error
	RemoveCharacter(ctx context.Context, id uint) error
}

// Service exposes favorite operations returning serialized favorites.
type Service interface {
	AddPlanet(ctx context.Context, input AddPlanetDTO) (*FavoritePlanetDTO, error)
	AddCharacter(ctx context.Context, input AddCharacterDTO) (*FavoriteCharacterDTO, error)
	GetPlanet(ctx context.Context, id uint) (*FavoritePlanetDTO, error)
	GetCharacter(ctx context.Context, id uint) (*FavoriteCharacterDTO, error)
	ListByUser(ctx context.Context, userID uint) (*UserFavoritesDTO, error)
	HasPlanet(ctx context.Context, userID, planetID uint) (bool, error)
	HasCharacter(ctx context.Context, userID, characterID uint) (bool, error)
	RemovePlanet(ctx context.Context, id uint) error
	RemoveCharacter(ctx context.Context, id uint) error
}

type service struct {
	repo favoritesRepository
	logg *logger.Logger
}

// NewService builds a favorites service.
func NewService(repo favoritesRepository, logg *logger.Logger) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "favorites repository is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	return &service{repo: repo, logg: logg}, nil
}

func (s *service) AddPlanet(ctx context.Context, input AddPlanetDTO) (*FavoritePlanetDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	favorite, err := s.repo.AddPlanet(ctx, input)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithFields(s.logg.WithUserID(ctx, input.UserID), map[string]any{"planet_id": input.PlanetID})
	s.logg.Info(ctx, "planet favorited")
	return FromPlanetModel(favorite), nil
}

func (s *service) AddCharacter(ctx context.Context, input AddCharacterDTO) (*FavoriteCharacterDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	favorite, err := s.repo.AddCharacter(ctx, input)
	if err != nil {
		return nil, err
	}
	ctx = s.logg.WithFields(s.logg.WithUserID(ctx, input.UserID), map[string]any{"character_id": input.CharacterID})
	s.logg.Info(ctx, "character favorited")
	return FromCharacterModel(favorite), nil
}

func (s *service) GetPlanet(ctx context.Context, id uint) (*FavoritePlanetDTO, error) {
	favorite, err := s.repo.FindPlanetFavorite(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromPlanetModel(favorite), nil
}

func (s *service) GetCharacter(ctx context.Context, id uint) (*FavoriteCharacterDTO, error) {
	favorite, err := s.repo.FindCharacterFavorite(ctx, id)
	if err != nil {
		return nil, err
	}
	return FromCharacterModel(favorite), nil
}

// ListByUser collects the user's favorites. An unknown user yields two
// empty lists rather than an error.
func (s *service) ListByUser(ctx context.Context, userID uint) (*UserFavoritesDTO, error) {
	planetRows, err := s.repo.ListPlanetsByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	characterRows, err := s.repo.ListCharactersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	out := &UserFavoritesDTO{
		Planets:    make([]FavoritePlanetDTO, 0, len(planetRows)),
		Characters: make([]FavoriteCharacterDTO, 0, len(characterRows)),
	}
	for i := range planetRows {
		out.Planets = append(out.Planets, *FromPlanetModel(&planetRows[i]))
	}
	for i := range characterRows {
		out.Characters = append(out.Characters, *FromCharacterModel(&characterRows[i]))
	}
	return out, nil
}

func (s *service) HasPlanet(ctx context.Context, userID, planetID uint) (bool, error) {
	return s.repo.PlanetFavoriteExists(ctx, userID, planetID)
}

func (s *service) HasCharacter(ctx context.Context, userID, characterID uint) (bool, error) {
	return s.repo.CharacterFavoriteExists(ctx, userID, characterID)
}

func (s *service) RemovePlanet(ctx context.Context, id uint) error {
	if err := s.repo.RemovePlanet(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithEntity(ctx, "favorite_planets", id), "planet unfavorited")
	return nil
}

func (s *service) RemoveCharacter(ctx context.Context, id uint) error {
	if err := s.repo.RemoveCharacter(ctx, id); err != nil {
		return err
	}
	s.logg.Info(s.logg.WithEntity(ctx, "favorite_characters", id), "character unfavorited")
	return nil
}
