package trip

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// pgTimestampLayout matches the dump format so that warehouse rows and
// CSV rows go through the identical normalization path.
const pgTimestampLayout = "2006-01-02 15:04:05.999"

// PostgresRepository loads raw trips from a warehouse table instead of
// a CSV drop. The table mirrors the dump columns; nullable columns
// stay nullable so that the normalizer remains the single place where
// invalid rows are filtered.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a Postgres-backed trip source.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Load reads every trip row ordered by start time, pinning the
// first-seen semantics downstream components rely on.
func (r *PostgresRepository) Load(ctx context.Context) ([]RawTrip, error) {
	query := `
		SELECT
			ride_id, started_at, ended_at,
			start_station_name, end_station_name,
			start_lat, start_lng, end_lat, end_lng,
			member_casual
		FROM trips
		ORDER BY started_at, ride_id
	`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query trips: %w", err)
	}
	defer rows.Close()

	var trips []RawTrip
	for rows.Next() {
		var (
			rideID       string
			startedAt    *time.Time
			endedAt      *time.Time
			startStation *string
			endStation   *string
			startLat     *float64
			startLng     *float64
			endLat       *float64
			endLng       *float64
			userType     string
		)

		if err := rows.Scan(
			&rideID, &startedAt, &endedAt,
			&startStation, &endStation,
			&startLat, &startLng, &endLat, &endLng,
			&userType,
		); err != nil {
			return nil, fmt.Errorf("scan trip row: %w", err)
		}

		trips = append(trips, RawTrip{
			RideID:           rideID,
			StartedAt:        formatTimestamp(startedAt),
			EndedAt:          formatTimestamp(endedAt),
			StartStationName: stringOrEmpty(startStation),
			EndStationName:   stringOrEmpty(endStation),
			StartLat:         startLat,
			StartLng:         startLng,
			EndLat:           endLat,
			EndLng:           endLng,
			UserType:         userType,
		})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate trip rows: %w", err)
	}
	return trips, nil
}

func formatTimestamp(t *time.Time) string {
	if t == nil {
		return ""
	}
	return t.Format(pgTimestampLayout)
}

func stringOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
