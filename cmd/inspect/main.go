package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/favorites-catalog/internal/planets"
	"github.com/angelmondragon/favorites-catalog/pkg/config"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/migrate"
	"github.com/angelmondragon/favorites-catalog/pkg/pagination"
	"github.com/angelmondragon/favorites-catalog/pkg/redis"
	"github.com/angelmondragon/favorites-catalog/pkg/security"
	"github.com/joho/godotenv"
)

func main() {
	ctx := context.Background()
	logg := logger.New(logger.Options{ServiceName: "inspect", Output: os.Stderr})

	_ = godotenv.Load()

	kind := flag.String("kind", "", "what to print: planet|character|user|favorites|planets|characters|users")
	id := flag.Uint("id", 0, "entity id (user id for -kind=favorites)")
	limit := flag.Int("limit", pagination.DefaultLimit, "page size for list kinds")
	cursor := flag.String("cursor", "", "cursor returned by a previous list page")
	flag.Parse()

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "inspect",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
		Output:      os.Stderr,
	})
	ctx = logg.WithFields(ctx, map[string]any{"env": cfg.App.Env, "kind": *kind})

	dbClient, err := db.New(ctx, cfg.DB, logg, nil)
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	requireResource(ctx, logg, "schema", migrate.MaybeRun(ctx, cfg, logg, dbClient))

	var planetOpts []planets.Option
	if cfg.Redis.Enabled() {
		cache, err := redis.New(ctx, cfg.Redis, logg)
		requireResource(ctx, logg, "redis", err)
		defer cache.Close()
		planetOpts = append(planetOpts, planets.WithCache(cache, cfg.Redis.CacheTTL))
	}

	services, err := newServices(dbClient, security.NewArgonHasher(cfg.Password), logg, planetOpts...)
	requireResource(ctx, logg, "services", err)

	out, err := services.inspect(ctx, *kind, *id, pagination.Params{Limit: *limit, Cursor: *cursor})
	if err != nil {
		if pkgerrors.IsCode(err, pkgerrors.CodeValidation) {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		logFailure(ctx, logg, "inspect failed", err)
		os.Exit(1)
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(out); err != nil {
		logg.Error(ctx, "encode output", err)
		os.Exit(1)
	}
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
