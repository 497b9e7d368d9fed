package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/garagem-conectada/garagem-api/internal/db"
	"github.com/garagem-conectada/garagem-api/internal/models"
)

// errorResponse is the JSON error body: {"error": ..., "details": ...}.
type errorResponse struct {
	Error   string `json:"error"`
	Details string `json:"details,omitempty"`
}

func respondJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			log.WithError(err).Error("failed to encode response")
		}
	}
}

func respondError(w http.ResponseWriter, status int, msg string, details ...string) {
	resp := errorResponse{Error: msg}
	if len(details) > 0 {
		resp.Details = details[0]
	}
	respondJSON(w, status, resp)
}

// respondStoreError maps persistence errors onto the HTTP taxonomy:
// not found -> 404, duplicate unique key -> 409, anything else -> 500.
func respondStoreError(w http.ResponseWriter, err error, op string) {
	switch {
	case errors.Is(err, db.ErrNotFound):
		respondError(w, http.StatusNotFound, "not found")
	case errors.Is(err, db.ErrDuplicatePlate):
		respondError(w, http.StatusConflict, "plate already registered")
	case errors.Is(err, db.ErrDuplicateEmail):
		respondError(w, http.StatusConflict, "email already registered")
	default:
		log.WithError(err).Errorf("%s failed", op)
		respondError(w, http.StatusInternalServerError, "internal server error")
	}
}

// respondFieldError turns a strict-parse failure into a 400 with the
// offending field in the details.
func respondFieldError(w http.ResponseWriter, err error) {
	var fe *models.FieldError
	if errors.As(err, &fe) {
		respondError(w, http.StatusBadRequest, "validation error", fe.Error())
		return
	}
	respondError(w, http.StatusBadRequest, "validation error", err.Error())
}

func decodeJSON(w http.ResponseWriter, r *http.Request, v interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respondError(w, http.StatusBadRequest, "invalid JSON")
		return false
	}
	return true
}
