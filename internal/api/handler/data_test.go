package handler_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpulse/pedalpulse/internal/analytics"
	"github.com/pedalpulse/pedalpulse/internal/api/handler"
	"github.com/pedalpulse/pedalpulse/internal/bundle"
)

func testStore(b *bundle.Bundle, err error) *bundle.Store {
	return bundle.NewStore(func(context.Context) (*bundle.Bundle, error) {
		return b, err
	})
}

func testBundle() *bundle.Bundle {
	return &bundle.Bundle{
		HourlyTrips: []analytics.HourCount{{Hour: 8, Trips: 2}},
		Stations: []analytics.StationSummary{
			{Name: "Central Square", Lat: 42.3654, Lng: -71.1037, Trips: 2},
		},
		TripCount: 2,
	}
}

func TestData_ReturnsBundle(t *testing.T) {
	h := handler.NewDataHandler(testStore(testBundle(), nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/data", http.NoBody)
	rec := httptest.NewRecorder()

	h.Data(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(2), body["trip_count"])
	assert.Contains(t, body, "hourly_trips")
	assert.Contains(t, body, "station_data")
}

func TestData_LoadFailure(t *testing.T) {
	h := handler.NewDataHandler(testStore(nil, errors.New("source unreachable")))

	req := httptest.NewRequest(http.MethodGet, "/v1/data", http.NoBody)
	rec := httptest.NewRecorder()

	h.Data(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}

func TestStations_ReturnsStationList(t *testing.T) {
	h := handler.NewDataHandler(testStore(testBundle(), nil))

	req := httptest.NewRequest(http.MethodGet, "/v1/stations", http.NoBody)
	rec := httptest.NewRecorder()

	h.Stations(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var stations []analytics.StationSummary
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &stations))
	require.Len(t, stations, 1)
	assert.Equal(t, "Central Square", stations[0].Name)
	assert.Equal(t, 2, stations[0].Trips)
}

func TestStations_LoadFailure(t *testing.T) {
	h := handler.NewDataHandler(testStore(nil, errors.New("source unreachable")))

	req := httptest.NewRequest(http.MethodGet, "/v1/stations", http.NoBody)
	rec := httptest.NewRecorder()

	h.Stations(rec, req)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}
