// Package worker provides background job processing for PedalPulse.
package worker

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/pedalpulse/pedalpulse/internal/bundle"
	"github.com/pedalpulse/pedalpulse/internal/dataset"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// IngestJob downloads a published monthly trip archive, runs the
// analytics pipeline over it, and writes the aggregate bundle to the
// export path the dashboard serves from.
type IngestJob struct {
	fetcher    *dataset.Fetcher
	buildCfg   bundle.BuildConfig
	exportPath string
	logger     zerolog.Logger
}

// IngestJobConfig holds configuration for creating an IngestJob.
type IngestJobConfig struct {
	Fetcher    *dataset.Fetcher
	BuildCfg   bundle.BuildConfig
	ExportPath string
	Logger     zerolog.Logger
}

// NewIngestJob creates a new ingest job processor.
func NewIngestJob(cfg IngestJobConfig) *IngestJob {
	return &IngestJob{
		fetcher:    cfg.Fetcher,
		buildCfg:   cfg.BuildCfg,
		exportPath: cfg.ExportPath,
		logger:     cfg.Logger,
	}
}

// IngestResult contains the result of one ingest run.
type IngestResult struct {
	Month     string
	CSVPath   string
	RawRows   int
	TripCount int
	Duration  time.Duration
}

// Run fetches the archive for month (formatted YYYYMM), builds the
// bundle, and exports it.
func (j *IngestJob) Run(ctx context.Context, month string) (*IngestResult, error) {
	start := time.Now()

	csvPath, err := j.fetcher.Fetch(ctx, month)
	if err != nil {
		return nil, fmt.Errorf("fetch dataset %s: %w", month, err)
	}

	raws, err := trip.NewCSVSource(csvPath).Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("load dataset %s: %w", month, err)
	}

	cfg := j.buildCfg
	cfg.Logger = j.logger
	b := bundle.Build(raws, cfg)

	if err := bundle.Export(b, j.exportPath); err != nil {
		return nil, fmt.Errorf("export bundle: %w", err)
	}

	result := &IngestResult{
		Month:     month,
		CSVPath:   csvPath,
		RawRows:   len(raws),
		TripCount: b.TripCount,
		Duration:  time.Since(start),
	}

	j.logger.Info().
		Str("month", month).
		Int("raw_rows", result.RawRows).
		Int("trip_count", result.TripCount).
		Dur("duration", result.Duration).
		Str("export_path", j.exportPath).
		Msg("dataset ingest completed")

	return result, nil
}
