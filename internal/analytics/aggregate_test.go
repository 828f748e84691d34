package analytics_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpulse/pedalpulse/internal/analytics"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

// tripAt builds a minimal clean trip for aggregation tests.
func tripAt(day string, hour int, userType trip.UserType, duration float64) trip.CleanTrip {
	return trip.CleanTrip{
		StartedAt:        time.Date(2025, 1, 6, hour, 0, 0, 0, time.UTC),
		StartStationName: "A",
		EndStationName:   "B",
		UserType:         userType,
		DurationMinutes:  duration,
		Hour:             hour,
		DayOfWeek:        day,
	}
}

func TestHourlyTotals_AllHoursPresent(t *testing.T) {
	trips := []trip.CleanTrip{
		tripAt("Monday", 8, trip.UserTypeMember, 20),
		tripAt("Monday", 8, trip.UserTypeCasual, 5),
		tripAt("Tuesday", 17, trip.UserTypeMember, 12),
	}

	got := analytics.HourlyTotals(trips)
	require.Len(t, got, 24)

	for h, hc := range got {
		assert.Equal(t, h, hc.Hour)
	}
	assert.Equal(t, 2, got[8].Trips)
	assert.Equal(t, 1, got[17].Trips)
	assert.Equal(t, 0, got[0].Trips)
}

func TestHourlyTotals_EmptyInput(t *testing.T) {
	got := analytics.HourlyTotals(nil)
	require.Len(t, got, 24)
	for _, hc := range got {
		assert.Zero(t, hc.Trips)
	}
}

func TestDailyUsage_GroupingAndOrder(t *testing.T) {
	trips := []trip.CleanTrip{
		tripAt("Sunday", 9, trip.UserTypeCasual, 15),
		tripAt("Monday", 8, trip.UserTypeMember, 20),
		tripAt("Monday", 8, trip.UserTypeMember, 25),
		tripAt("Monday", 8, trip.UserTypeCasual, 30),
	}

	got := analytics.DailyUsage(trips)
	require.Len(t, got, 3)

	// Monday rows first regardless of input order, member before casual.
	assert.Equal(t, analytics.DayHourUserCount{DayOfWeek: "Monday", Hour: 8, UserType: trip.UserTypeMember, Trips: 2}, got[0])
	assert.Equal(t, analytics.DayHourUserCount{DayOfWeek: "Monday", Hour: 8, UserType: trip.UserTypeCasual, Trips: 1}, got[1])
	assert.Equal(t, analytics.DayHourUserCount{DayOfWeek: "Sunday", Hour: 9, UserType: trip.UserTypeCasual, Trips: 1}, got[2])
}

func TestDailyUsage_OmitsZeroCombinations(t *testing.T) {
	got := analytics.DailyUsage([]trip.CleanTrip{tripAt("Friday", 23, trip.UserTypeMember, 10)})
	require.Len(t, got, 1)
	assert.Equal(t, "Friday", got[0].DayOfWeek)
}

func TestDayHourPivot_Shape(t *testing.T) {
	trips := []trip.CleanTrip{
		tripAt("Monday", 0, trip.UserTypeMember, 10),
		tripAt("Sunday", 23, trip.UserTypeCasual, 10),
		tripAt("Sunday", 23, trip.UserTypeMember, 10),
	}

	got := analytics.DayHourPivot(trips)

	require.Len(t, got.Days, 7)
	assert.Equal(t, "Monday", got.Days[0])
	assert.Equal(t, "Sunday", got.Days[6])
	require.Len(t, got.Hours, 24)
	require.Len(t, got.Counts, 7)
	for _, row := range got.Counts {
		require.Len(t, row, 24)
		for _, n := range row {
			assert.GreaterOrEqual(t, n, 0)
		}
	}

	assert.Equal(t, 1, got.Counts[0][0])
	assert.Equal(t, 2, got.Counts[6][23])
	assert.Equal(t, 0, got.Counts[3][12])
}

func TestDayHourPivot_EmptyWorkingSet(t *testing.T) {
	got := analytics.DayHourPivot(nil)
	require.Len(t, got.Counts, 7)
	for _, row := range got.Counts {
		for _, n := range row {
			assert.Zero(t, n)
		}
	}
}
