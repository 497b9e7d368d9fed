package handlers

import (
	"errors"
	"net/http"

	"github.com/garagem-conectada/garagem-api/internal/auth"
	"github.com/garagem-conectada/garagem-api/internal/db"
	"github.com/garagem-conectada/garagem-api/internal/models"
)

// AuthHandler handles registration and login.
type AuthHandler struct {
	authService    *auth.Service
	userCollection db.UserCollection
}

// NewAuthHandler creates a new authentication handler.
func NewAuthHandler(authService *auth.Service, userCollection db.UserCollection) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		userCollection: userCollection,
	}
}

// Register creates a user account and returns a bearer token.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req models.RegisterRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Name == "" {
		respondError(w, http.StatusBadRequest, "validation error", "name is required")
		return
	}
	if err := h.authService.ValidateEmail(req.Email); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}
	if err := h.authService.ValidatePassword(req.Password); err != nil {
		respondError(w, http.StatusBadRequest, "validation error", err.Error())
		return
	}

	passwordHash, err := h.authService.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to hash password")
		return
	}

	// Email uniqueness is enforced by the store's unique index; a racing
	// duplicate registration surfaces here as a conflict.
	user, err := h.userCollection.InsertUser(r.Context(), models.User{
		Name:         req.Name,
		Email:        models.NormalizeEmail(req.Email),
		PasswordHash: passwordHash,
	})
	if err != nil {
		respondStoreError(w, err, "register")
		return
	}

	token, err := h.authService.GenerateToken(&user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusCreated, models.LoginResponse{Token: token, User: user})
}

// Login authenticates a user and returns a bearer token.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if req.Email == "" || req.Password == "" {
		respondError(w, http.StatusBadRequest, "validation error", "email and password are required")
		return
	}

	user, err := h.userCollection.FindUserByEmail(r.Context(), req.Email)
	if err != nil {
		if errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusUnauthorized, "invalid credentials")
			return
		}
		respondStoreError(w, err, "login")
		return
	}

	if !h.authService.CheckPassword(req.Password, user.PasswordHash) {
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.authService.GenerateToken(user)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "failed to generate token")
		return
	}

	respondJSON(w, http.StatusOK, models.LoginResponse{Token: token, User: *user})
}
