package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.mongodb.org/mongo-driver/bson"

	"github.com/garagem-conectada/garagem-api/internal/db"
	"github.com/garagem-conectada/garagem-api/internal/middleware"
	"github.com/garagem-conectada/garagem-api/internal/models"
)

// VehicleHandler handles the vehicle CRUD and sharing endpoints.
type VehicleHandler struct {
	vehicles db.VehicleCollection
	users    db.UserCollection
}

// NewVehicleHandler creates a new vehicle handler.
func NewVehicleHandler(vehicles db.VehicleCollection, users db.UserCollection) *VehicleHandler {
	return &VehicleHandler{vehicles: vehicles, users: users}
}

type vehicleRequest struct {
	Kind         string   `json:"kind"`
	Plate        string   `json:"plate"`
	Model        string   `json:"model"`
	Color        string   `json:"color"`
	ImageURL     string   `json:"image_url"`
	Doors        *int     `json:"doors"`
	Axles        *int     `json:"axles"`
	LoadCapacity *float64 `json:"load_capacity"`
	TurboOn      *bool    `json:"turbo_on"`
	CurrentLoad  *float64 `json:"current_load"`
	EngineOn     *bool    `json:"engine_on"`
	Speed        *float64 `json:"speed"`
}

// vehicleResponse carries the vehicle plus its derived display status.
type vehicleResponse struct {
	models.Vehicle
	Status string `json:"status"`
}

func toResponse(v models.Vehicle) vehicleResponse {
	return vehicleResponse{Vehicle: v, Status: v.ComputeStatus()}
}

// List returns every vehicle owned by or shared with the caller, with
// history.
func (h *VehicleHandler) List(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	vehicles, err := h.vehicles.FindVehiclesByOwner(r.Context(), claims.UserID)
	if err != nil {
		respondStoreError(w, err, "list vehicles")
		return
	}

	resp := make([]vehicleResponse, 0, len(vehicles))
	for _, v := range vehicles {
		resp = append(resp, toResponse(v))
	}
	respondJSON(w, http.StatusOK, resp)
}

// Get returns a single vehicle by id.
func (h *VehicleHandler) Get(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	vehicle, err := h.vehicles.FindVehicleByID(r.Context(), chi.URLParam(r, "id"), claims.UserID)
	if err != nil {
		respondStoreError(w, err, "get vehicle")
		return
	}
	respondJSON(w, http.StatusOK, toResponse(*vehicle))
}

// Create registers a new vehicle for the caller.
func (h *VehicleHandler) Create(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	var req vehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	kind := models.Kind(req.Kind)
	if !models.IsValidKind(kind) {
		respondError(w, http.StatusBadRequest, "validation error", "kind must be one of car, sports_car, truck")
		return
	}
	plate := models.NormalizePlate(req.Plate)
	if plate == "" {
		respondError(w, http.StatusBadRequest, "validation error", "plate is required")
		return
	}
	if req.Model == "" {
		respondError(w, http.StatusBadRequest, "validation error", "model is required")
		return
	}

	vehicle := models.Vehicle{
		OwnerID:  claims.UserID,
		Kind:     kind,
		Plate:    plate,
		Model:    req.Model,
		Color:    req.Color,
		ImageURL: req.ImageURL,
	}
	// Exactly one per-kind field group is populated.
	switch kind {
	case models.KindCar:
		vehicle.Doors = req.Doors
	case models.KindSportsCar:
		vehicle.Doors = req.Doors
		vehicle.TurboOn = req.TurboOn
	case models.KindTruck:
		vehicle.Axles = req.Axles
		vehicle.LoadCapacity = req.LoadCapacity
		vehicle.CurrentLoad = req.CurrentLoad
	}
	if req.EngineOn != nil {
		vehicle.EngineOn = *req.EngineOn
	}
	if req.Speed != nil {
		vehicle.Speed = *req.Speed
	}

	created, err := h.vehicles.InsertVehicle(r.Context(), vehicle)
	if err != nil {
		respondStoreError(w, err, "create vehicle")
		return
	}
	respondJSON(w, http.StatusCreated, toResponse(created))
}

// Update applies a partial update to an owned vehicle.
func (h *VehicleHandler) Update(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	var req vehicleRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	patch := bson.M{}
	if req.Kind != "" {
		if !models.IsValidKind(models.Kind(req.Kind)) {
			respondError(w, http.StatusBadRequest, "validation error", "kind must be one of car, sports_car, truck")
			return
		}
		patch["kind"] = req.Kind
	}
	if req.Plate != "" {
		plate := models.NormalizePlate(req.Plate)
		if plate == "" {
			respondError(w, http.StatusBadRequest, "validation error", "plate must not be blank")
			return
		}
		patch["plate"] = plate
	}
	if req.Model != "" {
		patch["model"] = req.Model
	}
	if req.Color != "" {
		patch["color"] = req.Color
	}
	if req.ImageURL != "" {
		patch["image_url"] = req.ImageURL
	}
	if req.Doors != nil {
		patch["doors"] = *req.Doors
	}
	if req.Axles != nil {
		patch["axles"] = *req.Axles
	}
	if req.LoadCapacity != nil {
		patch["load_capacity"] = *req.LoadCapacity
	}
	if req.TurboOn != nil {
		patch["turbo_on"] = *req.TurboOn
	}
	if req.CurrentLoad != nil {
		patch["current_load"] = *req.CurrentLoad
	}
	if req.EngineOn != nil {
		patch["engine_on"] = *req.EngineOn
	}
	if req.Speed != nil {
		patch["speed"] = *req.Speed
	}
	if len(patch) == 0 {
		respondError(w, http.StatusBadRequest, "validation error", "no fields to update")
		return
	}

	vehicle, err := h.vehicles.UpdateVehicle(r.Context(), chi.URLParam(r, "id"), claims.UserID, patch)
	if err != nil {
		respondStoreError(w, err, "update vehicle")
		return
	}
	respondJSON(w, http.StatusOK, toResponse(*vehicle))
}

// Delete removes an owned vehicle and its maintenance history.
func (h *VehicleHandler) Delete(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	if err := h.vehicles.DeleteVehicle(r.Context(), chi.URLParam(r, "id"), claims.UserID); err != nil {
		respondStoreError(w, err, "delete vehicle")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "vehicle deleted"})
}

// Share grants another user, looked up by email, read access to an owned
// vehicle.
func (h *VehicleHandler) Share(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.GetUserFromContext(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "user context not found")
		return
	}

	var req struct {
		Email string `json:"email"`
	}
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Email == "" {
		respondError(w, http.StatusBadRequest, "validation error", "email is required")
		return
	}

	target, err := h.users.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusNotFound, "user not found")
			return
		}
		respondStoreError(w, err, "share vehicle")
		return
	}
	if target.ID.Hex() == claims.UserID {
		respondError(w, http.StatusBadRequest, "validation error", "cannot share a vehicle with yourself")
		return
	}

	if err := h.vehicles.ShareVehicle(r.Context(), chi.URLParam(r, "id"), claims.UserID, target.ID.Hex()); err != nil {
		respondStoreError(w, err, "share vehicle")
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "vehicle shared"})
}
