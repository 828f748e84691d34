// Package main provides the entrypoint for the PedalPulse API server.
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"

	"github.com/pedalpulse/pedalpulse/internal/api"
	"github.com/pedalpulse/pedalpulse/internal/api/middleware"
	"github.com/pedalpulse/pedalpulse/internal/auth"
	"github.com/pedalpulse/pedalpulse/internal/bundle"
	"github.com/pedalpulse/pedalpulse/internal/config"
	"github.com/pedalpulse/pedalpulse/internal/database"
	"github.com/pedalpulse/pedalpulse/internal/telemetry"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// Version and BuildTime are set at compile time via ldflags.
var (
	Version   = "dev"
	BuildTime = "unknown"
)

func main() {
	const serviceName = "pedalpulse-api"

	// Setup structured logging
	log := zerolog.New(os.Stdout).
		With().
		Timestamp().
		Str("service", serviceName).
		Str("version", Version).
		Logger()

	log.Info().
		Str("build_time", BuildTime).
		Msg("starting PedalPulse API")

	cfg := config.Load()

	// Initialize OpenTelemetry
	ctx := context.Background()

	tp, err := telemetry.Init(ctx, telemetry.Config{
		ServiceName:    serviceName,
		ServiceVersion: Version,
		Environment:    cfg.Environment,
		OTLPEndpoint:   cfg.OTLPEndpoint,
		Enabled:        cfg.TelemetryEnabled,
	})
	if err != nil {
		log.Fatal().Err(err).Msg("failed to initialize telemetry")
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := tp.Shutdown(shutdownCtx); shutdownErr != nil {
			log.Error().Err(shutdownErr).Msg("failed to shutdown telemetry")
		}
	}()

	if cfg.TelemetryEnabled {
		log.Info().
			Str("otlp_endpoint", cfg.OTLPEndpoint).
			Msg("OpenTelemetry initialized")
	}

	// Initialize metrics
	metrics, err := middleware.NewMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize metrics")
		os.Exit(1) //nolint:gocritic // intentional exit, telemetry cleanup is best-effort
	}

	pipelineMetrics, err := middleware.NewPipelineMetrics()
	if err != nil {
		log.Error().Err(err).Msg("failed to initialize pipeline metrics")
		os.Exit(1)
	}

	// Pick the trip source: warehouse table or the CSV dump.
	var source trip.Source
	if cfg.UsePostgres {
		dbConfig := database.ConfigFromEnv()
		pool, connErr := database.Connect(ctx, dbConfig)
		if connErr != nil {
			log.Fatal().Err(connErr).Msg("failed to connect to database")
		}
		defer pool.Close()
		log.Info().
			Str("host", dbConfig.Host).
			Int("port", dbConfig.Port).
			Str("database", dbConfig.Database).
			Msg("database connected")
		source = trip.NewPostgresRepository(pool)
	} else {
		log.Info().Str("path", cfg.TripDataPath).Msg("using CSV trip source")
		source = trip.NewCSVSource(cfg.TripDataPath)
	}

	buildCfg := bundle.BuildConfig{
		SampleThreshold: cfg.SampleThreshold,
		SampleSeed:      cfg.SampleSeed,
		Logger:          log,
	}
	store := bundle.NewStore(func(ctx context.Context) (*bundle.Bundle, error) {
		start := time.Now()
		raws, loadErr := source.Load(ctx)
		if loadErr != nil {
			pipelineMetrics.RecordBuild("api", time.Since(start), 0, 0, loadErr)
			return nil, loadErr
		}
		built := bundle.Build(raws, buildCfg)
		pipelineMetrics.RecordBuild("api", time.Since(start), len(raws), built.TripCount, nil)
		return built, nil
	})

	// Prime the bundle before accepting traffic; a source that cannot
	// load at boot is fatal.
	b, err := store.Get(ctx)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load trip data")
	}
	log.Info().Int("trip_count", b.TripCount).Msg("aggregate bundle primed")

	if cfg.AdminSigningKey == "" {
		log.Warn().Msg("ADMIN_SIGNING_KEY not set - admin endpoints will reject all tokens")
	}
	tokenService := auth.NewTokenService(auth.TokenConfig{
		SigningKey: cfg.AdminSigningKey,
	})

	// Create router with configuration
	router := api.NewRouter(api.RouterConfig{
		Version:      Version,
		BuildTime:    BuildTime,
		Logger:       log,
		ServiceName:  serviceName,
		Metrics:      metrics,
		TokenService: tokenService,
		Store:        store,
	})

	// Create HTTP server
	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Info().
			Str("addr", server.Addr).
			Msg("server listening")

		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("shutting down server")

	// Graceful shutdown with timeout
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("server forced to shutdown")
		os.Exit(1)
	}

	log.Info().Msg("server stopped")
}
