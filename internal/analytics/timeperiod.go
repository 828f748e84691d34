package analytics

import "github.com/pedalpulse/pedalpulse/internal/trip"

// Time-of-day periods for the duration distribution series.
const (
	PeriodMorning   = "Morning"
	PeriodAfternoon = "Afternoon"
	PeriodEvening   = "Evening"
	PeriodNight     = "Night"
)

// Periods in display order.
var Periods = []string{PeriodMorning, PeriodAfternoon, PeriodEvening, PeriodNight}

// PeriodForHour maps an hour of day onto its period. Night covers
// 22:00 through 04:59.
func PeriodForHour(hour int) string {
	switch {
	case hour >= 5 && hour < 12:
		return PeriodMorning
	case hour >= 12 && hour < 17:
		return PeriodAfternoon
	case hour >= 17 && hour < 22:
		return PeriodEvening
	default:
		return PeriodNight
	}
}

// DurationsByPeriod collects raw trip durations grouped by time period
// and user type, the feed for the duration distribution plot. Every
// period and both user types are present even when empty.
func DurationsByPeriod(trips []trip.CleanTrip) map[string]map[string][]float64 {
	out := make(map[string]map[string][]float64, len(Periods))
	for _, p := range Periods {
		out[p] = map[string][]float64{
			string(trip.UserTypeMember): {},
			string(trip.UserTypeCasual): {},
		}
	}

	for _, t := range trips {
		period := PeriodForHour(t.Hour)
		ut := string(t.UserType)
		out[period][ut] = append(out[period][ut], t.DurationMinutes)
	}
	return out
}
