package trip

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
)

// ErrMissingColumn is returned when the source header lacks a required column.
var ErrMissingColumn = errors.New("missing required column")

// Column names of the public trip dump format.
const (
	colRideID           = "ride_id"
	colStartedAt        = "started_at"
	colEndedAt          = "ended_at"
	colStartStationName = "start_station_name"
	colEndStationName   = "end_station_name"
	colStartLat         = "start_lat"
	colStartLng         = "start_lng"
	colEndLat           = "end_lat"
	colEndLng           = "end_lng"
	colUserType         = "member_casual"
)

var requiredColumns = []string{
	colRideID, colStartedAt, colEndedAt,
	colStartStationName, colEndStationName,
	colStartLat, colStartLng, colEndLat, colEndLng,
	colUserType,
}

// CSVSource loads raw trips from a trip dump on disk.
type CSVSource struct {
	Path string
}

// NewCSVSource creates a Source reading the dump at path.
func NewCSVSource(path string) *CSVSource {
	return &CSVSource{Path: path}
}

// Load reads the whole file. File-level problems (missing file, bad
// header, inconsistent field counts) are fatal; per-row value problems
// are left for the normalizer to filter.
func (s *CSVSource) Load(_ context.Context) ([]RawTrip, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("open trip data: %w", err)
	}
	defer f.Close()

	trips, err := ReadCSV(f)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", s.Path, err)
	}
	return trips, nil
}

// ReadCSV parses a header-keyed trip dump. Column order is not
// assumed; extra columns are ignored.
func ReadCSV(r io.Reader) ([]RawTrip, error) {
	cr := csv.NewReader(r)
	cr.ReuseRecord = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		index[name] = i
	}
	for _, name := range requiredColumns {
		if _, ok := index[name]; !ok {
			return nil, fmt.Errorf("%w: %s", ErrMissingColumn, name)
		}
	}

	var trips []RawTrip
	for {
		record, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}

		trips = append(trips, RawTrip{
			RideID:           record[index[colRideID]],
			StartedAt:        record[index[colStartedAt]],
			EndedAt:          record[index[colEndedAt]],
			StartStationName: record[index[colStartStationName]],
			EndStationName:   record[index[colEndStationName]],
			StartLat:         parseCoord(record[index[colStartLat]]),
			StartLng:         parseCoord(record[index[colStartLng]]),
			EndLat:           parseCoord(record[index[colEndLat]]),
			EndLng:           parseCoord(record[index[colEndLng]]),
			UserType:         record[index[colUserType]],
		})
	}
	return trips, nil
}

// parseCoord treats empty and unparseable coordinate cells alike as
// missing, which the normalizer then drops.
func parseCoord(s string) *float64 {
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return nil
	}
	return &v
}
