package analytics

import (
	"sort"

	"github.com/pedalpulse/pedalpulse/internal/station"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// TopK is the ranking depth for stations and routes.
const TopK = 10

// RankedStation is one entry of the station popularity ranking.
type RankedStation struct {
	Name  string `json:"name"`
	Trips int    `json:"trips"`
}

// RankedRoute is one entry of the route popularity ranking. Label is
// the canonicalized "{start} → {end}" display string.
type RankedRoute struct {
	Start string `json:"start"`
	End   string `json:"end"`
	Label string `json:"route"`
	Trips int    `json:"trips"`
}

// TopStations counts trips per start station and returns the k most
// popular, count descending. Ties keep the order in which the station
// was first seen in the working set, pinned by the stable sort over
// the first-seen grouping.
func TopStations(trips []trip.CleanTrip, k int) []RankedStation {
	counts := make(map[string]int)
	var order []string
	for _, t := range trips {
		if _, seen := counts[t.StartStationName]; !seen {
			order = append(order, t.StartStationName)
		}
		counts[t.StartStationName]++
	}

	ranked := make([]RankedStation, 0, len(order))
	for _, name := range order {
		ranked = append(ranked, RankedStation{Name: name, Trips: counts[name]})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Trips > ranked[j].Trips
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	for i := range ranked {
		ranked[i].Name = station.CanonicalName(ranked[i].Name)
	}
	return ranked
}

type routeKey struct {
	start string
	end   string
}

// TopRoutes counts trips per ordered (start, end) station pair and
// returns the k most popular with the same first-seen tie-break rule
// as TopStations.
func TopRoutes(trips []trip.CleanTrip, k int) []RankedRoute {
	counts := make(map[routeKey]int)
	var order []routeKey
	for _, t := range trips {
		key := routeKey{start: t.StartStationName, end: t.EndStationName}
		if _, seen := counts[key]; !seen {
			order = append(order, key)
		}
		counts[key]++
	}

	ranked := make([]RankedRoute, 0, len(order))
	for _, key := range order {
		ranked = append(ranked, RankedRoute{
			Start: key.start,
			End:   key.end,
			Trips: counts[key],
		})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Trips > ranked[j].Trips
	})

	if len(ranked) > k {
		ranked = ranked[:k]
	}
	for i := range ranked {
		ranked[i].Start = station.CanonicalName(ranked[i].Start)
		ranked[i].End = station.CanonicalName(ranked[i].End)
		ranked[i].Label = ranked[i].Start + " → " + ranked[i].End
	}
	return ranked
}
