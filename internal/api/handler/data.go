// Package handler provides HTTP handlers for the PedalPulse API.
package handler

import (
	"net/http"

	"github.com/pedalpulse/pedalpulse/internal/api/response"
	"github.com/pedalpulse/pedalpulse/internal/bundle"
)

// DataHandler serves the precomputed dashboard aggregates.
type DataHandler struct {
	store *bundle.Store
}

// NewDataHandler creates a new DataHandler.
func NewDataHandler(store *bundle.Store) *DataHandler {
	return &DataHandler{store: store}
}

// Data handles GET /v1/data - the full aggregate bundle.
func (h *DataHandler) Data(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Get(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "trip data is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, b)
}

// Stations handles GET /v1/stations - station coordinates and counts.
func (h *DataHandler) Stations(w http.ResponseWriter, r *http.Request) {
	b, err := h.store.Get(r.Context())
	if err != nil {
		response.ServiceUnavailable(w, r, "trip data is unavailable")
		return
	}
	response.JSON(w, r, http.StatusOK, b.Stations)
}
