package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pedalpulse/pedalpulse/internal/api"
	"github.com/pedalpulse/pedalpulse/internal/api/models"
	"github.com/pedalpulse/pedalpulse/internal/auth"
	"github.com/pedalpulse/pedalpulse/internal/bundle"
)

func testRouter(t *testing.T) (http.Handler, *auth.TokenService) {
	t.Helper()

	tokens := auth.NewTokenService(auth.TokenConfig{
		SigningKey: "test-secret-key-for-testing-only",
	})

	store := bundle.NewStore(func(context.Context) (*bundle.Bundle, error) {
		return &bundle.Bundle{TripCount: 42}, nil
	})

	router := api.NewRouter(api.RouterConfig{
		Version:      "test",
		Logger:       zerolog.Nop(),
		TokenService: tokens,
		Store:        store,
	})
	return router, tokens
}

func TestRouter_Health(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/ops/health", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.NotEmpty(t, rec.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", rec.Header().Get("X-Content-Type-Options"))
}

func TestRouter_Data(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/data", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, float64(42), body["trip_count"])
}

func TestRouter_AdminRebuildRequiresToken(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/rebuild", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	var problem models.Problem
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	assert.Equal(t, http.StatusUnauthorized, problem.Status)
	assert.Equal(t, "/v1/admin/rebuild", problem.Instance)
}

func TestRouter_AdminRebuildWithToken(t *testing.T) {
	router, tokens := testRouter(t)

	token, err := tokens.Generate("ops")
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/v1/admin/rebuild", http.NoBody)
	req.Header.Set("Authorization", "Bearer "+token)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "rebuilt")
}

func TestRouter_UnknownRoute(t *testing.T) {
	router, _ := testRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/v1/nope", http.NoBody)
	rec := httptest.NewRecorder()

	router.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/problem+json", rec.Header().Get("Content-Type"))
}
