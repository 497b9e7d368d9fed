package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/garagem-conectada/garagem-api/internal/db"
	"github.com/garagem-conectada/garagem-api/internal/models"
)

// GarageHandler serves the garage content endpoints: maintenance tips,
// featured vehicles and offered services.
type GarageHandler struct {
	garage db.GarageCollection
}

// NewGarageHandler creates a new garage content handler.
func NewGarageHandler(garage db.GarageCollection) *GarageHandler {
	return &GarageHandler{garage: garage}
}

// Tips returns the general maintenance tips.
func (h *GarageHandler) Tips(w http.ResponseWriter, r *http.Request) {
	tips, err := h.garage.FindTips(r.Context(), "")
	if err != nil {
		respondStoreError(w, err, "list tips")
		return
	}
	respondJSON(w, http.StatusOK, tips)
}

// TipsByKind returns the tips for one vehicle kind; 404 when the kind is
// unknown or has no tips.
func (h *GarageHandler) TipsByKind(w http.ResponseWriter, r *http.Request) {
	kind := models.Kind(chi.URLParam(r, "kind"))
	if !models.IsValidKind(kind) {
		respondError(w, http.StatusNotFound, "no tips for this vehicle kind")
		return
	}

	tips, err := h.garage.FindTips(r.Context(), kind)
	if err != nil {
		respondStoreError(w, err, "list tips by kind")
		return
	}
	if len(tips) == 0 {
		respondError(w, http.StatusNotFound, "no tips for this vehicle kind")
		return
	}
	respondJSON(w, http.StatusOK, tips)
}

// Featured returns the showcase vehicles.
func (h *GarageHandler) Featured(w http.ResponseWriter, r *http.Request) {
	featured, err := h.garage.FindFeaturedVehicles(r.Context())
	if err != nil {
		respondStoreError(w, err, "list featured vehicles")
		return
	}
	respondJSON(w, http.StatusOK, featured)
}

// Services returns the advertised workshop services.
func (h *GarageHandler) Services(w http.ResponseWriter, r *http.Request) {
	services, err := h.garage.FindOfferedServices(r.Context())
	if err != nil {
		respondStoreError(w, err, "list offered services")
		return
	}
	respondJSON(w, http.StatusOK, services)
}
