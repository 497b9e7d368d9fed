package handlers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/garagem-conectada/garagem-api/internal/db"
	"github.com/garagem-conectada/garagem-api/internal/middleware"
	"github.com/garagem-conectada/garagem-api/internal/models"
)

// MaintenanceHandler handles the maintenance sub-resource of a vehicle.
type MaintenanceHandler struct {
	vehicles     db.VehicleCollection
	maintenances db.MaintenanceCollection
}

// NewMaintenanceHandler creates a new maintenance handler.
func NewMaintenanceHandler(vehicles db.VehicleCollection, maintenances db.MaintenanceCollection) *MaintenanceHandler {
	return &MaintenanceHandler{vehicles: vehicles, maintenances: maintenances}
}

// flexNumber accepts a JSON number or a numeric string; maintenance forms
// submit cost either way.
type flexNumber string

func (n *flexNumber) UnmarshalJSON(b []byte) error {
	*n = flexNumber(strings.Trim(string(b), `"`))
	return nil
}

type maintenanceRequest struct {
	ServiceType string     `json:"service_type"`
	Date        string     `json:"date"`
	Cost        flexNumber `json:"cost"`
	Mileage     *float64   `json:"mileage"`
	Description string     `json:"description"`
}

// visibleVehicle resolves the vehicle in the URL for reads, visible to the
// owner and to shared-with users, and writes the error response itself when
// it cannot.
func (h *MaintenanceHandler) visibleVehicle(w http.ResponseWriter, r *http.Request) (*models.Vehicle, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return nil, false
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondStoreError(w, err, "resolve vehicle")
		return nil, false
	}
	return vehicle, true
}

// ownedVehicle resolves the vehicle in the URL for writes. Sharing grants
// read access only, so this matches the owner and nobody else.
func (h *MaintenanceHandler) ownedVehicle(w http.ResponseWriter, r *http.Request) (*models.Vehicle, bool) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return nil, false
	}

	vehicle, err := h.vehicles.FindOwnedVehicleByID(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondStoreError(w, err, "resolve vehicle")
		return nil, false
	}
	return vehicle, true
}

// Create records a maintenance entry for a vehicle. Input is parsed with the
// strict constructor: incomplete or malformed data is a 400, not a silently
// defaulted record.
func (h *MaintenanceHandler) Create(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	var req maintenanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.ServiceType == "" || req.Date == "" || req.Cost == "" {
		respondError(w, http.StatusBadRequest, "incomplete data", "service_type, date and cost are required")
		return
	}
	if req.Mileage != nil && *req.Mileage < 0 {
		respondError(w, http.StatusBadRequest, "validation error", "mileage must not be negative")
		return
	}

	record, err := models.ParseMaintenance(req.Date, req.ServiceType, string(req.Cost), req.Description)
	if err != nil {
		respondFieldError(w, err)
		return
	}
	record.VehicleID = vehicle.ID
	record.Mileage = req.Mileage

	created, err := h.maintenances.InsertMaintenance(r.Context(), record)
	if err != nil {
		respondStoreError(w, err, "create maintenance")
		return
	}
	respondJSON(w, http.StatusCreated, created)
}

// List returns a vehicle's maintenance records sorted by date descending.
func (h *MaintenanceHandler) List(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.visibleVehicle(w, r)
	if !ok {
		return
	}

	records, err := h.maintenances.FindMaintenanceByVehicle(r.Context(), vehicle.ID.Hex())
	if err != nil {
		respondStoreError(w, err, "list maintenance")
		return
	}
	respondJSON(w, http.StatusOK, records)
}

// Update applies a partial update to a maintenance record.
func (h *MaintenanceHandler) Update(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	var req maintenanceRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	// Each provided field goes through the same strict parsing as create, so
	// a record can never be patched into a state create would reject.
	patch := bson.M{}
	if req.ServiceType != "" {
		serviceType, err := models.ParseServiceType(req.ServiceType)
		if err != nil {
			respondFieldError(w, err)
			return
		}
		patch["service_type"] = serviceType
	}
	if req.Date != "" {
		date, err := models.ParseDate(req.Date)
		if err != nil {
			respondFieldError(w, err)
			return
		}
		patch["date"] = date
	}
	if req.Cost != "" {
		cost, err := models.ParseCost(string(req.Cost))
		if err != nil {
			respondFieldError(w, err)
			return
		}
		patch["cost"] = cost
	}
	if req.Mileage != nil {
		if *req.Mileage < 0 {
			respondError(w, http.StatusBadRequest, "validation error", "mileage must not be negative")
			return
		}
		patch["mileage"] = *req.Mileage
	}
	if req.Description != "" {
		patch["description"] = strings.TrimSpace(req.Description)
	}
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "validation error", "no fields to update")
		return
	}

	record, err := h.maintenances.UpdateMaintenance(r.Context(), vehicle.ID.Hex(), chi.URLParam(r, "mid"), patch)
	if err != nil {
		respondStoreError(w, err, "update maintenance")
		return
	}
	respondJSON(w, http.StatusOK, record)
}

// Delete removes a maintenance record.
func (h *MaintenanceHandler) Delete(w http.ResponseWriter, r *http.Request) {
	vehicle, ok := h.ownedVehicle(w, r)
	if !ok {
		return
	}

	if err := h.maintenances.DeleteMaintenance(r.Context(), vehicle.ID.Hex(), chi.URLParam(r, "mid")); err != nil {
		respondStoreError(w, err, "delete maintenance")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "maintenance deleted"})
}
