package main

import (
	"context"

	"github.com/angelmondragon/favorites-catalog/internal/characters"
	"github.com/angelmondragon/favorites-catalog/internal/favorites"
	"github.com/angelmondragon/favorites-catalog/internal/planets"
	"github.com/angelmondragon/favorites-catalog/internal/users"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"github.com/angelmondragon/favorites-catalog/pkg/security"
)

type services struct {
	planets    planets.Service
	characters characters.Service
	users      users.Service
	favorites  favorites.Service
}

func newServices(client *db.Client, hasher security.Hasher, logg *logger.Logger, planetOpts ...planets.Option) (*services, error) {
	conn := client.DB()

	planetService, err := planets.NewService(planets.NewRepository(conn), logg, planetOpts...)
	if err != nil {
		return nil, err
	}
	characterService, err := characters.NewService(characters.NewRepository(conn), logg)
	if err != nil {
		return nil, err
	}
	userService, err := users.NewService(users.NewRepository(conn), hasher, logg)
	if err != nil {
		return nil, err
	}
	favoriteService, err := favorites.NewService(favorites.NewRepository(conn), logg)
	if err != nil {
		return nil, err
	}

	return &services{
		planets:    planetService,
		characters: characterService,
		users:      userService,
		favorites:  favoriteService,
	}, nil
}

// inspect returns the serialized value for the requested kind.
func (s *services) inspect(ctx context.Context, kind string, id uint, page pagination.Params) (any, error) {
	switch kind {
	case "planets":
		return s.planets.List(ctx, page)
	case "characters":
		return s.characters.List(ctx, page)
	case "users":
		return s.users.List(ctx, page)
	}

	if id == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "missing -id")
	}

	switch kind {
	case "planet":
		return s.planets.Get(ctx, id)
	case "character":
		return s.characters.Get(ctx, id)
	case "user":
		return s.users.Get(ctx, id)
	case "favorites":
		return s.favorites.ListByUser(ctx, id)
	default:
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "unknown -kind value: "+kind)
	}
}

// logFailure logs err with its flattened chain and any storage diagnostics.
func logFailure(ctx context.Context, logg *logger.Logger, msg string, err error) {
	logg.Error(logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), msg, err)
}
