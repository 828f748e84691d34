package handler

import (
	"net/http"

	"github.com/rs/zerolog"

	"github.com/pedalpulse/pedalpulse/internal/api/middleware"
	"github.com/pedalpulse/pedalpulse/internal/api/response"
	"github.com/pedalpulse/pedalpulse/internal/bundle"
)

// AdminHandler handles operator endpoints.
type AdminHandler struct {
	store *bundle.Store
	log   zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(store *bundle.Store, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{store: store, log: log}
}

// rebuildResponse is the body returned by a successful rebuild.
type rebuildResponse struct {
	Status    string `json:"status"`
	TripCount int    `json:"trip_count"`
}

// Rebuild handles POST /v1/admin/rebuild - reload the trip source and
// swap in a freshly computed bundle. Runs synchronously; the previous
// bundle keeps serving until the new one is ready.
func (h *AdminHandler) Rebuild(w http.ResponseWriter, r *http.Request) {
	operator := middleware.GetOperator(r.Context())

	b, err := h.store.Rebuild(r.Context())
	if err != nil {
		h.log.Error().
			Err(err).
			Str("operator", operator).
			Msg("bundle rebuild failed")
		response.InternalError(w, r, "bundle rebuild failed")
		return
	}

	h.log.Info().
		Str("operator", operator).
		Int("trip_count", b.TripCount).
		Msg("bundle rebuilt")

	response.JSON(w, r, http.StatusOK, rebuildResponse{
		Status:    "rebuilt",
		TripCount: b.TripCount,
	})
}
