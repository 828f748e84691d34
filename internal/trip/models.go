// Package trip defines the trip record types and the normalization
// boundary that turns raw dump rows into validated, typed records.
package trip

import "time"

// UserType is the rider classification carried on every trip row.
type UserType string

// Recognized user types. Rows carrying anything else are dropped
// during normalization.
const (
	UserTypeMember UserType = "member"
	UserTypeCasual UserType = "casual"
)

// ParseUserType validates a raw user-type tag.
func ParseUserType(s string) (UserType, bool) {
	switch UserType(s) {
	case UserTypeMember:
		return UserTypeMember, true
	case UserTypeCasual:
		return UserTypeCasual, true
	}
	return "", false
}

// DayOrder is the canonical weekday ordering used by every grouped
// output. Index 0 is Monday.
var DayOrder = [7]string{
	"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday", "Sunday",
}

// DayIndex returns the position of a canonical day name in DayOrder,
// or -1 for an unrecognized name.
func DayIndex(day string) int {
	for i, d := range DayOrder {
		if d == day {
			return i
		}
	}
	return -1
}

// dayName maps time.Weekday (Sunday=0) onto the canonical names.
func dayName(wd time.Weekday) string {
	if wd == time.Sunday {
		return DayOrder[6]
	}
	return DayOrder[int(wd)-1]
}

// RawTrip is one row of the source dump exactly as read, before any
// validation. Timestamps stay as strings so that unparseable values
// can be dropped at the normalization boundary instead of failing the
// whole read. Missing coordinates are nil.
type RawTrip struct {
	RideID           string
	StartedAt        string
	EndedAt          string
	StartStationName string
	EndStationName   string
	StartLat         *float64
	StartLng         *float64
	EndLat           *float64
	EndLng           *float64
	UserType         string
}

// CleanTrip is a fully validated trip. Every field is non-null, the
// duration is inside the configured window, and the derived time
// features are populated. Instances are immutable after normalization.
type CleanTrip struct {
	RideID           string
	StartedAt        time.Time
	EndedAt          time.Time
	StartStationName string
	EndStationName   string
	StartLat         float64
	StartLng         float64
	EndLat           float64
	EndLng           float64
	UserType         UserType

	// Derived during normalization.
	DurationMinutes float64
	Hour            int
	DayOfWeek       string
}
