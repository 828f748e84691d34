package analytics_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpulse/pedalpulse/internal/analytics"
	"github.com/pedalpulse/pedalpulse/internal/trip"
)

func rideFrom(stationName string, lat, lng float64) trip.CleanTrip {
	return trip.CleanTrip{
		StartStationName: stationName,
		EndStationName:   "End",
		StartLat:         lat,
		StartLng:         lng,
		UserType:         trip.UserTypeMember,
		DurationMinutes:  10,
		Hour:             8,
		DayOfWeek:        "Monday",
	}
}

func TestStationGeocodes_FirstCoordinateWins(t *testing.T) {
	trips := []trip.CleanTrip{
		rideFrom("Central Square at Mass Ave", 42.36551, -71.10361),
		// Same station, slightly different GPS reading later on.
		rideFrom("Central Square at Mass Ave", 42.36570, -71.10390),
		rideFrom("Central Square at Mass Ave", 42.36590, -71.10320),
	}

	got := analytics.StationGeocodes(trips)
	require.Len(t, got, 1)

	s := got[0]
	assert.Equal(t, "Central Square", s.Name)
	assert.Equal(t, 42.3655, s.Lat)
	assert.Equal(t, -71.1036, s.Lng)
	assert.Equal(t, 3, s.Trips)
}

func TestStationGeocodes_RoundsToFourDecimals(t *testing.T) {
	got := analytics.StationGeocodes([]trip.CleanTrip{
		rideFrom("Kendall", 42.123456789, -71.987654321),
	})
	require.Len(t, got, 1)
	assert.Equal(t, 42.1235, got[0].Lat)
	assert.Equal(t, -71.9877, got[0].Lng)
}

func TestStationGeocodes_FirstAppearanceOrder(t *testing.T) {
	trips := []trip.CleanTrip{
		rideFrom("Zeta", 1, 1),
		rideFrom("Alpha", 2, 2),
		rideFrom("Zeta", 1, 1),
		rideFrom("Mid", 3, 3),
	}

	got := analytics.StationGeocodes(trips)
	require.Len(t, got, 3)
	assert.Equal(t, "Zeta", got[0].Name)
	assert.Equal(t, "Alpha", got[1].Name)
	assert.Equal(t, "Mid", got[2].Name)
	assert.Equal(t, 2, got[0].Trips)
}

func TestStationGeocodes_Empty(t *testing.T) {
	assert.Empty(t, analytics.StationGeocodes(nil))
}
