package planets

import (
	"context"
	"time"

	"github.com/angelmondragon/favorites-catalog/pkg/db/models"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"github.com/angelmondragon/favorites-catalog/pkg/validators"
)

type planetRepository interface {
	Create(ctx context.Context, dto CreatePlanetDTO) (*models.Planet, error)
	FindByID(ctx context.Context, id uint) (*models.Planet, error)
	List(ctx context.Context, cursor string, limit int) ([]models.Planet, string, error)
	Update(ctx context.Context, id uint, dto UpdatePlanetDTO) (*models.Planet, error)
	Delete(ctx context.Context, id uint) error
}

// Service exposes planet operations returning serialized planets.
type Service interface {
	Create(ctx context.Context, input CreatePlanetDTO) (*PlanetDTO, error)
	Get(ctx context.Context, id uint) (*PlanetDTO, error)
	List(ctx context.Context, params pagination.Params) (pagination.Page[PlanetDTO], error)
	Update(ctx context.Context, id uint, input UpdatePlanetDTO) (*PlanetDTO, error)
	Delete(ctx context.Context, id uint) error
}

// Cache stores serialized planets. Cache failures never fail a call; they are
// logged and storage is used instead.
type Cache interface {
	GetJSON(ctx context.Context, key string, dest any) (bool, error)
	SetJSON(ctx context.Context, key string, value any, ttl time.Duration) error
	SetJSONIfAbsent(ctx context.Context, key string, value any, ttl time.Duration) (bool, error)
	Del(ctx context.Context, keys ...string) error
	PlanetKey(id uint) string
}

// Option customizes the service.
type Option func(*service)

// WithCache serves Get from cache. Update overwrites the cached entry with the
// fresh planet and Delete evicts it; Get only fills a missing entry so a slow
// read never replaces what an update wrote.
func WithCache(cache Cache, ttl time.Duration) Option {
	return func(s *service) {
		s.cache = cache
		s.cacheTTL = ttl
	}
}

type service struct {
	repo     planetRepository
	logg     *logger.Logger
	cache    Cache
	cacheTTL time.Duration
}

// NewService builds a planet service. Storage errors from the repository are
// returned unchanged.
func NewService(repo planetRepository, logg *logger.Logger, opts ...Option) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "planet repository is required")
	}
	if logg == nil {
		logg = logger.Nop()
	}
	svc := &service{repo: repo, logg: logg}
	for _, opt := range opts {
		opt(svc)
	}
	return svc, nil
}

func (s *service) Create(ctx context.Context, input CreatePlanetDTO) (*PlanetDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	planet, err := s.repo.Create(ctx, input)
	if err != nil {
		return nil, err
	}
	s.logg.Info(s.logg.WithEntity(ctx, "planets", planet.ID), "planet created")
	return FromModel(planet), nil
}

func (s *service) Get(ctx context.Context, id uint) (*PlanetDTO, error) {
	if s.cache != nil {
		var cached PlanetDTO
		found, err := s.cache.GetJSON(ctx, s.cache.PlanetKey(id), &cached)
		if err != nil {
			s.logg.Warn(s.logg.WithField(s.logg.WithEntity(ctx, "planets", id), "error", err.Error()), "planet cache read failed")
		}
		if found {
			s.logg.Debug(s.logg.WithEntity(ctx, "planets", id), "planet served from cache")
			return &cached, nil
		}
	}

	planet, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := FromModel(planet)

	if s.cache != nil {
		if _, err := s.cache.SetJSONIfAbsent(ctx, s.cache.PlanetKey(id), dto, s.cacheTTL); err != nil {
			s.logg.Warn(s.logg.WithField(s.logg.WithEntity(ctx, "planets", id), "error", err.Error()), "planet cache fill failed")
		}
	}
	return dto, nil
}

// refresh replaces the cached entry after a write. When the write fails the
// entry is evicted instead.
func (s *service) refresh(ctx context.Context, dto *PlanetDTO) {
	if s.cache == nil {
		return
	}
	if err := s.cache.SetJSON(ctx, s.cache.PlanetKey(dto.ID), dto, s.cacheTTL); err != nil {
		s.logg.Warn(s.logg.WithField(s.logg.WithEntity(ctx, "planets", dto.ID), "error", err.Error()), "planet cache write failed")
		s.evict(ctx, dto.ID)
	}
}

func (s *service) evict(ctx context.Context, id uint) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Del(ctx, s.cache.PlanetKey(id)); err != nil {
		s.logg.Warn(s.logg.WithField(s.logg.WithEntity(ctx, "planets", id), "error", err.Error()), "planet cache evict failed")
	}
}

func (s *service) List(ctx context.Context, params pagination.Params) (pagination.Page[PlanetDTO], error) {
	rows, next, err := s.repo.List(ctx, params.Cursor, params.Limit)
	if err != nil {
		return pagination.Page[PlanetDTO]{}, err
	}
	items := make([]PlanetDTO, 0, len(rows))
	for i := range rows {
		items = append(items, *FromModel(&rows[i]))
	}
	return pagination.Page[PlanetDTO]{Items: items, NextCursor: next}, nil
}

func (s *service) Update(ctx context.Context, id uint, input UpdatePlanetDTO) (*PlanetDTO, error) {
	if err := validators.Struct(input); err != nil {
		return nil, err
	}
	planet, err := s.repo.Update(ctx, id, input)
	if err != nil {
		return nil, err
	}
	dto := FromModel(planet)
	s.refresh(ctx, dto)
	ctx = s.logg.WithField(s.logg.WithEntity(ctx, "planets", id), "changed_fields", len(input.Changes()))
	s.logg.Info(ctx, "planet updated")
	return dto, nil
}

func (s *service) Delete(ctx context.Context, id uint) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return err
	}
	s.evict(ctx, id)
	s.logg.Info(s.logg.WithEntity(ctx, "planets", id), "planet deleted")
	return nil
}
