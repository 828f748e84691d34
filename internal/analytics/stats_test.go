package analytics_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpulse/pedalpulse/internal/analytics"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

func statTrips(userType trip.UserType, hour int, durations ...float64) []trip.CleanTrip {
	trips := make([]trip.CleanTrip, 0, len(durations))
	for _, d := range durations {
		trips = append(trips, tripAt("Monday", hour, userType, d))
	}
	return trips
}

func TestDurationStatistics_GroupGating(t *testing.T) {
	// Nine identical trips: below the gate, no output.
	nine := statTrips(trip.UserTypeMember, 8, 10, 10, 10, 10, 10, 10, 10, 10, 10)
	assert.Empty(t, analytics.DurationStatistics(nine))

	// A tenth identical trip makes the group appear with count=10.
	ten := append(nine, tripAt("Monday", 8, trip.UserTypeMember, 10))
	got := analytics.DurationStatistics(ten)
	require.Len(t, got, 1)
	assert.Equal(t, 10, got[0].Count)
	assert.Equal(t, trip.UserTypeMember, got[0].UserType)
	assert.Equal(t, 8, got[0].Hour)
}

func TestDurationStatistics_Values(t *testing.T) {
	// 1..11 minutes: known mean, quartiles, and sample std.
	trips := statTrips(trip.UserTypeCasual, 14, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11)

	got := analytics.DurationStatistics(trips)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, 11, s.Count)
	assert.InDelta(t, 6.0, s.Mean, 1e-9)
	assert.InDelta(t, 1.0, s.Min, 1e-9)
	assert.InDelta(t, 3.5, s.Q1, 1e-9)
	assert.InDelta(t, 6.0, s.Median, 1e-9)
	assert.InDelta(t, 8.5, s.Q3, 1e-9)
	assert.InDelta(t, 11.0, s.Max, 1e-9)
	assert.InDelta(t, 5.0, s.IQR, 1e-9)
	require.NotNil(t, s.Std)
	assert.InDelta(t, 3.3166247903554, *s.Std, 1e-9) // sqrt(11)
}

func TestDurationStatistics_GroupsSplitByUserTypeAndHour(t *testing.T) {
	var trips []trip.CleanTrip
	trips = append(trips, statTrips(trip.UserTypeMember, 8, 5, 5, 5, 5, 5, 5, 5, 5, 5, 5)...)
	trips = append(trips, statTrips(trip.UserTypeCasual, 8, 9, 9, 9, 9, 9, 9, 9, 9, 9, 9)...)
	trips = append(trips, statTrips(trip.UserTypeMember, 9, 7, 7, 7, 7, 7, 7, 7, 7, 7, 7)...)

	got := analytics.DurationStatistics(trips)
	require.Len(t, got, 3)

	// Member groups first, hours ascending, then casual.
	assert.Equal(t, trip.UserTypeMember, got[0].UserType)
	assert.Equal(t, 8, got[0].Hour)
	assert.Equal(t, trip.UserTypeMember, got[1].UserType)
	assert.Equal(t, 9, got[1].Hour)
	assert.Equal(t, trip.UserTypeCasual, got[2].UserType)
}

func TestDurationStats_StdSerializesAsNullWhenUndefined(t *testing.T) {
	s := analytics.DurationStats{UserType: trip.UserTypeMember, Count: 1, Mean: 5}

	data, err := json.Marshal(s)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"std":null`)
}

func TestPercentile_LinearInterpolation(t *testing.T) {
	sorted := []float64{1, 2, 3, 4}

	assert.InDelta(t, 1.0, analytics.Percentile(sorted, 0), 1e-9)
	assert.InDelta(t, 1.75, analytics.Percentile(sorted, 0.25), 1e-9)
	assert.InDelta(t, 2.5, analytics.Percentile(sorted, 0.5), 1e-9)
	assert.InDelta(t, 3.25, analytics.Percentile(sorted, 0.75), 1e-9)
	assert.InDelta(t, 4.0, analytics.Percentile(sorted, 1), 1e-9)
}

func TestPercentile_SingleElement(t *testing.T) {
	assert.InDelta(t, 7.0, analytics.Percentile([]float64{7}, 0.5), 1e-9)
}
