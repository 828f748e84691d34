package analytics

import (
	"math"

	"github.com/pedalpulse/pedalpulse/internal/station"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// StationSummary is one station's map entry: its canonical display
// name, a representative coordinate, and the number of trips starting
// there.
type StationSummary struct {
	Name  string  `json:"name"`
	Lat   float64 `json:"lat"`
	Lng   float64 `json:"lng"`
	Trips int     `json:"trips"`
}

// StationGeocodes summarizes each distinct start station in the
// working set. The first-seen coordinate wins; docks do not move, and
// later rows reporting slightly different GPS readings for the same
// name must not overwrite the stored pair. Coordinates are rounded to
// 4 decimal places. Output follows first-appearance order of the raw
// station name in the input.
func StationGeocodes(trips []trip.CleanTrip) []StationSummary {
	type entry struct {
		lat   float64
		lng   float64
		trips int
	}

	entries := make(map[string]*entry)
	var order []string
	for _, t := range trips {
		e, seen := entries[t.StartStationName]
		if !seen {
			e = &entry{lat: t.StartLat, lng: t.StartLng}
			entries[t.StartStationName] = e
			order = append(order, t.StartStationName)
		}
		e.trips++
	}

	out := make([]StationSummary, 0, len(order))
	for _, name := range order {
		e := entries[name]
		out = append(out, StationSummary{
			Name:  station.CanonicalName(name),
			Lat:   round4(e.lat),
			Lng:   round4(e.lng),
			Trips: e.trips,
		})
	}
	return out
}

func round4(v float64) float64 {
	return math.Round(v*1e4) / 1e4
}
