package handlers

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/garagem-conectada/garagem-api/internal/auth"
	"github.com/garagem-conectada/garagem-api/internal/db"
	"github.com/garagem-conectada/garagem-api/internal/middleware"
	"github.com/garagem-conectada/garagem-api/internal/models"
)

// MockUserCollection is a mock implementation of db.UserCollection.
type MockUserCollection struct {
	mock.Mock
}

func (m *MockUserCollection) InsertUser(ctx context.Context, user models.User) (models.User, error) {
	args := m.Called(ctx, user)
	return args.Get(0).(models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByID(ctx context.Context, id string) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) FindUserByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserCollection) UpdateUser(ctx context.Context, id string, user models.User) error {
	args := m.Called(ctx, id, user)
	return args.Error(0)
}

func (m *MockUserCollection) DeleteUser(ctx context.Context, id string) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockVehicleCollection is a mock implementation of db.VehicleCollection.
type MockVehicleCollection struct {
	mock.Mock
}

func (m *MockVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	args := m.Called(ctx, vehicle)
	return args.Get(0).(models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehiclesByOwner(ctx context.Context, ownerID string) ([]models.Vehicle, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindVehicleByID(ctx context.Context, id, ownerID string) (*models.Vehicle, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) FindOwnedVehicleByID(ctx context.Context, id, ownerID string) (*models.Vehicle, error) {
	args := m.Called(ctx, id, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) UpdateVehicle(ctx context.Context, id, ownerID string, patch bson.M) (*models.Vehicle, error) {
	args := m.Called(ctx, id, ownerID, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Vehicle), args.Error(1)
}

func (m *MockVehicleCollection) DeleteVehicle(ctx context.Context, id, ownerID string) error {
	args := m.Called(ctx, id, ownerID)
	return args.Error(0)
}

func (m *MockVehicleCollection) ShareVehicle(ctx context.Context, id, ownerID, userID string) error {
	args := m.Called(ctx, id, ownerID, userID)
	return args.Error(0)
}

// MockMaintenanceCollection is a mock implementation of
// db.MaintenanceCollection.
type MockMaintenanceCollection struct {
	mock.Mock
}

func (m *MockMaintenanceCollection) InsertMaintenance(ctx context.Context, record models.Maintenance) (models.Maintenance, error) {
	args := m.Called(ctx, record)
	return args.Get(0).(models.Maintenance), args.Error(1)
}

func (m *MockMaintenanceCollection) FindMaintenanceByVehicle(ctx context.Context, vehicleID string) ([]models.Maintenance, error) {
	args := m.Called(ctx, vehicleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Maintenance), args.Error(1)
}

func (m *MockMaintenanceCollection) UpdateMaintenance(ctx context.Context, vehicleID, id string, patch bson.M) (*models.Maintenance, error) {
	args := m.Called(ctx, vehicleID, id, patch)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Maintenance), args.Error(1)
}

func (m *MockMaintenanceCollection) DeleteMaintenance(ctx context.Context, vehicleID, id string) error {
	args := m.Called(ctx, vehicleID, id)
	return args.Error(0)
}

// MockGarageCollection is a mock implementation of db.GarageCollection.
type MockGarageCollection struct {
	mock.Mock
}

func (m *MockGarageCollection) FindTips(ctx context.Context, kind models.Kind) ([]models.Tip, error) {
	args := m.Called(ctx, kind)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.Tip), args.Error(1)
}

func (m *MockGarageCollection) FindFeaturedVehicles(ctx context.Context) ([]models.FeaturedVehicle, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.FeaturedVehicle), args.Error(1)
}

func (m *MockGarageCollection) FindOfferedServices(ctx context.Context) ([]models.OfferedService, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.OfferedService), args.Error(1)
}

var _ db.UserCollection = (*MockUserCollection)(nil)
var _ db.VehicleCollection = (*MockVehicleCollection)(nil)
var _ db.MaintenanceCollection = (*MockMaintenanceCollection)(nil)
var _ db.GarageCollection = (*MockGarageCollection)(nil)

// testEnv bundles the router, mocks and an authenticated user for handler
// tests.
type testEnv struct {
	router chi.Router
	token  string
	userID string

	users        *MockUserCollection
	vehicles     *MockVehicleCollection
	maintenances *MockMaintenanceCollection
	garage       *MockGarageCollection
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users:        new(MockUserCollection),
		vehicles:     new(MockVehicleCollection),
		maintenances: new(MockMaintenanceCollection),
		garage:       new(MockGarageCollection),
	}

	authService := auth.NewService("test-secret", time.Hour)
	env.router = NewRouter(
		NewAuthHandler(authService, env.users),
		NewVehicleHandler(env.vehicles, env.users),
		NewMaintenanceHandler(env.vehicles, env.maintenances),
		NewGarageHandler(env.garage),
		middleware.NewAuthMiddleware(authService),
		middleware.NewRateLimitMiddleware(),
	)

	user := &models.User{ID: primitive.NewObjectID(), Email: "owner@example.com"}
	token, err := authService.GenerateToken(user)
	require.NoError(t, err)
	env.token = token
	env.userID = user.ID.Hex()

	return env
}

func (e *testEnv) authorize(req *http.Request) *http.Request {
	req.Header.Set("Authorization", "Bearer "+e.token)
	return req
}
