package trip

import "time"

// Duration window for the general working set, in minutes. Trips
// shorter than a minute are dock re-racks and test rides; trips past
// three hours are overwhelmingly unreturned bikes.
const (
	MinDurationMinutes = 1.0
	MaxDurationMinutes = 180.0
)

// timestampLayouts are the accepted source timestamp formats. The
// public dumps switched to fractional seconds partway through, so both
// are tolerated.
var timestampLayouts = []string{
	"2006-01-02 15:04:05.999",
	"2006-01-02 15:04:05",
	time.RFC3339,
}

func parseTimestamp(s string) (time.Time, bool) {
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// Normalize validates raw rows into CleanTrips using the standard
// duration window. Rows failing any check are dropped silently; input
// order is preserved.
func Normalize(raws []RawTrip) []CleanTrip {
	return NormalizeWindow(raws, MinDurationMinutes, MaxDurationMinutes)
}

// NormalizeWindow is Normalize with an explicit duration window in
// minutes. The duration-statistics output uses a wider window (up to
// a full day) than the general working set, so the window is a
// parameter rather than a constant.
func NormalizeWindow(raws []RawTrip, minMinutes, maxMinutes float64) []CleanTrip {
	clean := make([]CleanTrip, 0, len(raws))
	for _, raw := range raws {
		ct, ok := normalizeOne(raw, minMinutes, maxMinutes)
		if !ok {
			continue
		}
		clean = append(clean, ct)
	}
	return clean
}

func normalizeOne(raw RawTrip, minMinutes, maxMinutes float64) (CleanTrip, bool) {
	startedAt, ok := parseTimestamp(raw.StartedAt)
	if !ok {
		return CleanTrip{}, false
	}
	endedAt, ok := parseTimestamp(raw.EndedAt)
	if !ok {
		return CleanTrip{}, false
	}

	duration := endedAt.Sub(startedAt).Seconds() / 60
	if duration < minMinutes || duration > maxMinutes {
		return CleanTrip{}, false
	}

	userType, ok := ParseUserType(raw.UserType)
	if !ok {
		return CleanTrip{}, false
	}

	if raw.StartStationName == "" || raw.EndStationName == "" {
		return CleanTrip{}, false
	}
	if raw.StartLat == nil || raw.StartLng == nil || raw.EndLat == nil || raw.EndLng == nil {
		return CleanTrip{}, false
	}

	return CleanTrip{
		RideID:           raw.RideID,
		StartedAt:        startedAt,
		EndedAt:          endedAt,
		StartStationName: raw.StartStationName,
		EndStationName:   raw.EndStationName,
		StartLat:         *raw.StartLat,
		StartLng:         *raw.StartLng,
		EndLat:           *raw.EndLat,
		EndLng:           *raw.EndLng,
		UserType:         userType,
		DurationMinutes:  duration,
		Hour:             startedAt.Hour(),
		DayOfWeek:        dayName(startedAt.Weekday()),
	}, true
}
