package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/angelmondragon/favorites-catalog/internal/seed"
	"github.com/angelmondragon/favorites-catalog/pkg/config"
	"github.com/angelmondragon/favorites-catalog/pkg/db"
	pkgerrors "github.com/angelmondragon/favorites-catalog/pkg/errors"
	"github.com/angelmondragon/favorites-catalog/pkg/logger"
	"github.com/angelmondragon/favorites-catalog/pkg/metrics"
	"github.com/angelmondragon/favorites-catalog/pkg/migrate"
	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	ctx := context.Background()
	// bootstrap logger early (then re-init after config load)
	logg := logger.New(logger.Options{ServiceName: "seed"})

	_ = godotenv.Load()

	file := flag.String("file", "", "catalog JSON file with planets and characters")
	flag.Parse()

	if *file == "" {
		fmt.Fprintln(os.Stderr, "missing -file")
		os.Exit(2)
	}

	cfg, err := config.Load()
	requireResource(ctx, logg, "config", err)

	logg = logger.New(logger.Options{
		ServiceName: "seed",
		Level:       logger.ParseLevel(cfg.App.LogLevel),
		Format:      cfg.App.LogFormat,
		WarnStack:   cfg.App.LogWarnStack,
	})
	ctx = logg.WithFields(ctx, map[string]any{
		"env":    cfg.App.Env,
		"driver": cfg.DB.Driver,
		"file":   *file,
	})

	registry := prometheus.NewRegistry()
	dbClient, err := db.New(ctx, cfg.DB, logg, metrics.NewStorageMetrics(registry))
	requireResource(ctx, logg, "database", err)
	defer dbClient.Close()

	// the catalog cannot load without tables, so the schema is applied
	// regardless of the auto-migrate flag
	requireResource(ctx, logg, "schema", migrate.Apply(ctx, logg, dbClient))

	f, err := os.Open(*file)
	requireResource(ctx, logg, "catalog file", err)
	defer f.Close()

	summary, err := seed.Load(ctx, dbClient, f, logg)
	if err != nil {
		logg.Error(logg.WithFields(ctx, pkgerrors.Dump(err).Fields()), "seed failed", err)
		os.Exit(1)
	}

	if statements, err := metrics.StatementTotal(registry); err == nil {
		ctx = logg.WithField(ctx, "statements", statements)
	}
	logg.Info(ctx, "seed complete")
	fmt.Printf("seeded %d planets and %d characters\n", summary.Planets, summary.Characters)
}

func requireResource(ctx context.Context, logg *logger.Logger, resource string, err error) {
	if err == nil {
		return
	}
	logg.Error(ctx, fmt.Sprintf("resource not working: %s", resource), err)
	os.Exit(1)
}
