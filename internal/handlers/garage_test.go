package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/garagem-conectada/garagem-api/internal/models"
)

func TestTips(t *testing.T) {
	env := newTestEnv(t)

	env.garage.On("FindTips", mock.Anything, models.Kind("")).Return([]models.Tip{
		{Text: "Check tire pressure monthly"},
		{Text: "Rotate tires every 10,000 km"},
	}, nil)

	rec := doJSON(t, env, http.MethodGet, "/api/tips", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	var tips []models.Tip
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &tips))
	assert.Len(t, tips, 2)
}

func TestTipsByKind(t *testing.T) {
	env := newTestEnv(t)

	env.garage.On("FindTips", mock.Anything, models.KindSportsCar).Return([]models.Tip{
		{Kind: models.KindSportsCar, Text: "Let the turbo cool down before shutting off"},
	}, nil)

	rec := doJSON(t, env, http.MethodGet, "/api/tips/sports_car", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "turbo")
}

func TestTipsByKind_UnknownKind(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodGet, "/api/tips/hovercraft", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "no tips for this vehicle kind")
	env.garage.AssertNotCalled(t, "FindTips", mock.Anything, mock.Anything)
}

func TestTipsByKind_NoTips(t *testing.T) {
	env := newTestEnv(t)

	env.garage.On("FindTips", mock.Anything, models.KindTruck).Return([]models.Tip{}, nil)

	rec := doJSON(t, env, http.MethodGet, "/api/tips/truck", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestFeatured(t *testing.T) {
	env := newTestEnv(t)

	env.garage.On("FindFeaturedVehicles", mock.Anything).Return([]models.FeaturedVehicle{
		{Model: "Kombi", Year: 1975, Highlight: "Fully restored classic"},
	}, nil)

	rec := doJSON(t, env, http.MethodGet, "/api/garage/featured", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kombi")
}

func TestServices(t *testing.T) {
	env := newTestEnv(t)

	env.garage.On("FindOfferedServices", mock.Anything).Return([]models.OfferedService{
		{Name: "Oil change", EstimatedPrice: "R$ 150,00"},
	}, nil)

	rec := doJSON(t, env, http.MethodGet, "/api/garage/services", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Oil change")
}

func TestHealth(t *testing.T) {
	env := newTestEnv(t)

	rec := doJSON(t, env, http.MethodGet, "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "ok")
}
