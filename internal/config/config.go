// Package config loads service configuration from the environment,
// with optional .env file support for local development.
package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds everything the binaries read from the environment.
type Config struct {
	// Port the HTTP surface listens on.
	Port string

	// Environment tag for logs and telemetry (development, production).
	Environment string

	// TripDataPath is the CSV dump the pipeline reads when the
	// Postgres source is not enabled.
	TripDataPath string

	// UsePostgres switches the trip source to the warehouse table.
	UsePostgres bool

	// SampleThreshold and SampleSeed tune the stratified sampler.
	SampleThreshold int
	SampleSeed      int64

	// ExportPath is where cmd/export and the worker write the bundle.
	ExportPath string

	// AdminSigningKey signs the admin bearer tokens.
	AdminSigningKey string

	// DatasetBaseURL overrides the public dump bucket (tests, mirrors).
	DatasetBaseURL string

	// DatasetDir receives downloaded CSVs.
	DatasetDir string

	// PubSubProjectID and PubSubSubscription configure the worker
	// trigger. Empty project disables the subscriber.
	PubSubProjectID    string
	PubSubSubscription string

	// OTLPEndpoint and TelemetryEnabled configure OpenTelemetry.
	OTLPEndpoint     string
	TelemetryEnabled bool
}

// Load reads configuration from the environment. A .env file in the
// working directory is merged in first when present; real environment
// variables win.
func Load() Config {
	_ = godotenv.Load()

	return Config{
		Port:               envOrDefault("APP_PORT", "8080"),
		Environment:        envOrDefault("APP_ENV", "development"),
		TripDataPath:       envOrDefault("TRIP_DATA_PATH", "tripdata.csv"),
		UsePostgres:        envBool("TRIP_SOURCE_POSTGRES"),
		SampleThreshold:    envInt("SAMPLE_THRESHOLD", 10000),
		SampleSeed:         int64(envInt("SAMPLE_SEED", 42)),
		ExportPath:         envOrDefault("EXPORT_PATH", "static/data.json"),
		AdminSigningKey:    envOrDefault("ADMIN_SIGNING_KEY", ""),
		DatasetBaseURL:     envOrDefault("DATASET_BASE_URL", ""),
		DatasetDir:         envOrDefault("DATASET_DIR", "data"),
		PubSubProjectID:    envOrDefault("PUBSUB_PROJECT_ID", ""),
		PubSubSubscription: envOrDefault("PUBSUB_SUBSCRIPTION", "dataset-published"),
		OTLPEndpoint:       envOrDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "localhost:4317"),
		TelemetryEnabled:   envBool("OTEL_ENABLED"),
	}
}

func envOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func envInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func envBool(key string) bool {
	return os.Getenv(key) == "true"
}
