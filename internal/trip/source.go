package trip

import "context"

// Source yields the complete set of raw trips for one pipeline run.
// Implementations: CSVSource for the public monthly dumps,
// PostgresRepository for warehouse-backed deployments.
type Source interface {
	Load(ctx context.Context) ([]RawTrip, error)
}
