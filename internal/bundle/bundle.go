// Package bundle assembles the full set of dashboard aggregates from
// one batch of raw trips and holds the per-process result cache.
package bundle

import (
	"github.com/rs/zerolog"

	"github.com/pedalpulse/pedalpulse/internal/analytics"
	"github.com/pedalpulse/pedalpulse/internal/sample"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// Duration window for the duration-statistics pass, in minutes. Wider
// than the general cleaning cap on purpose: the distribution output
// keeps long rides up to a full day.
const (
	statsMinDuration = 1.0
	statsMaxDuration = 1440.0
)

// Bundle is the complete output of one pipeline run. Every field is a
// plain numeric/string structure; chart-specific shaping is the
// front-end's job.
type Bundle struct {
	HourlyTrips     []analytics.HourCount           `json:"hourly_trips"`
	DailyUsage      []analytics.DayHourUserCount    `json:"daily_usage"`
	Heatmap         analytics.Pivot                 `json:"heatmap"`
	DurationStats   []analytics.DurationStats       `json:"duration_stats"`
	StationRankings []analytics.RankedStation       `json:"station_rankings"`
	RouteRankings   []analytics.RankedRoute         `json:"route_rankings"`
	ViolinData      map[string]map[string][]float64 `json:"violin_data"`
	Stations        []analytics.StationSummary      `json:"station_data"`

	// TripCount is the size of the working set the aggregates were
	// computed over (after cleaning and optional sampling).
	TripCount int `json:"trip_count"`
}

// BuildConfig tunes one pipeline run. Zero values use the sampler
// defaults and a ranking depth of analytics.TopK.
type BuildConfig struct {
	SampleThreshold int
	SampleSeed      int64
	TopK            int
	Logger          zerolog.Logger
}

// Build runs the whole pipeline: normalize, optionally downsample,
// then aggregate. An input that cleans down to nothing produces empty
// and zero-filled structures rather than an error.
func Build(raw []trip.RawTrip, cfg BuildConfig) *Bundle {
	topK := cfg.TopK
	if topK == 0 {
		topK = analytics.TopK
	}

	clean := trip.Normalize(raw)
	working := sample.Stratified(clean, sample.Config{
		Threshold: cfg.SampleThreshold,
		Seed:      cfg.SampleSeed,
	})

	// Duration statistics run over the unsampled set with the wide
	// duration window, independently of the working set.
	statsSet := trip.NormalizeWindow(raw, statsMinDuration, statsMaxDuration)

	cfg.Logger.Info().
		Int("raw_rows", len(raw)).
		Int("clean_rows", len(clean)).
		Int("working_rows", len(working)).
		Int("stats_rows", len(statsSet)).
		Msg("trip pipeline normalized")

	return &Bundle{
		HourlyTrips:     analytics.HourlyTotals(working),
		DailyUsage:      analytics.DailyUsage(working),
		Heatmap:         analytics.DayHourPivot(working),
		DurationStats:   analytics.DurationStatistics(statsSet),
		StationRankings: analytics.TopStations(working, topK),
		RouteRankings:   analytics.TopRoutes(working, topK),
		ViolinData:      analytics.DurationsByPeriod(working),
		Stations:        analytics.StationGeocodes(working),
		TripCount:       len(working),
	}
}
