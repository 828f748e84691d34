package handler

import (
	"net/http"

	"github.com/pedalpulse/pedalpulse/internal/api/models"
	"github.com/pedalpulse/pedalpulse/internal/api/response"
	"github.com/pedalpulse/pedalpulse/internal/bundle"
)

// OpsHandler handles operational endpoints.
type OpsHandler struct {
	version   string
	buildTime string
	store     *bundle.Store
}

// NewOpsHandler creates a new OpsHandler.
func NewOpsHandler(version, buildTime string, store *bundle.Store) *OpsHandler {
	return &OpsHandler{
		version:   version,
		buildTime: buildTime,
		store:     store,
	}
}

// HealthCheck handles GET /v1/ops/health - liveness check.
func (h *OpsHandler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	health := models.Health{
		Status: "ok",
		Details: map[string]interface{}{
			"version":   h.version,
			"buildTime": h.buildTime,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}

// ReadinessCheck handles GET /v1/ops/ready - readiness check. The
// service is ready once the aggregate bundle has loaded; the bundle is
// primed during boot, so this is a cache hit in steady state.
func (h *OpsHandler) ReadinessCheck(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Get(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "trip data has not loaded")
		return
	}
	health := models.Health{
		Status: "ok",
		Details: map[string]interface{}{
			"tripCount": b.TripCount,
		},
	}
	response.JSON(w, r, http.StatusOK, health)
}
