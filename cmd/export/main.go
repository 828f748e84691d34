// Package main provides the one-shot batch exporter: load the trip
// source, build the aggregate bundle, and write it as a single JSON
// file for static hosting.
package main

import (
	"context"
	"os"

	"github.com/rs/zerolog"

	"github.com/pedalpulse/pedalpulse/internal/bundle"
	"github.com/pedalpulse/pedalpulse/internal/config"
	"github.com/pedalpulse/pedalpulse/internal/database"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// Version is set at compile time via ldflags.
var Version = "dev"

func main() {
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", "pedalpulse-export").
		Str("version", Version).
		Logger()

	cfg := config.Load()
	ctx := context.Background()

	var source trip.Source
	if cfg.UsePostgres {
		dbConfig := database.ConfigFromEnv()
		pool, err := database.Connect(ctx, dbConfig)
		if err != nil {
			log.Fatal().Err(err).Msg("failed to connect to database")
		}
		defer pool.Close()
		source = trip.NewPostgresRepository(pool)
	} else {
		source = trip.NewCSVSource(cfg.TripDataPath)
	}

	raws, err := source.Load(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load trip data")
	}

	b := bundle.Build(raws, bundle.BuildConfig{
		SampleThreshold: cfg.SampleThreshold,
		SampleSeed:      cfg.SampleSeed,
		Logger:          log,
	})

	if err := bundle.Export(b, cfg.ExportPath); err != nil {
		log.Fatal().Err(err).Msg("failed to write bundle")
	}

	log.Info().
		Int("trip_count", b.TripCount).
		Str("path", cfg.ExportPath).
		Msg("bundle exported")
}
