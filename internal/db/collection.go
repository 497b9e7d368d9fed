package db

import (
	"context"

	"go.mongodb.org/mongo-driver/bson"

	"github.com/garagem-conectada/garagem-api/internal/models"
)

// UserCollection defines the interface for user database operations.
type UserCollection interface {
	InsertUser(ctx context.Context, user models.User) (models.User, error)
	FindUserByID(ctx context.Context, id string) (*models.User, error)
	FindUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, user models.User) error
	DeleteUser(ctx context.Context, id string) error
}

// VehicleCollection defines the interface for vehicle database operations.
// Reads are scoped to the owner plus anyone the vehicle was shared with;
// writes match the owner only.
type VehicleCollection interface {
	InsertVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error)
	FindVehiclesByOwner(ctx context.Context, ownerID string) ([]models.Vehicle, error)
	FindVehicleByID(ctx context.Context, id, ownerID string) (*models.Vehicle, error)
	FindOwnedVehicleByID(ctx context.Context, id, ownerID string) (*models.Vehicle, error)
	UpdateVehicle(ctx context.Context, id, ownerID string, patch bson.M) (*models.Vehicle, error)
	DeleteVehicle(ctx context.Context, id, ownerID string) error
	ShareVehicle(ctx context.Context, id, ownerID, userID string) error
}

// MaintenanceCollection defines the interface for maintenance database
// operations, always scoped by vehicle.
type MaintenanceCollection interface {
	InsertMaintenance(ctx context.Context, record models.Maintenance) (models.Maintenance, error)
	FindMaintenanceByVehicle(ctx context.Context, vehicleID string) ([]models.Maintenance, error)
	UpdateMaintenance(ctx context.Context, vehicleID, id string, patch bson.M) (*models.Maintenance, error)
	DeleteMaintenance(ctx context.Context, vehicleID, id string) error
}

// GarageCollection defines the interface for the garage content collections
// (tips, featured vehicles, offered services).
type GarageCollection interface {
	FindTips(ctx context.Context, kind models.Kind) ([]models.Tip, error)
	FindFeaturedVehicles(ctx context.Context) ([]models.FeaturedVehicle, error)
	FindOfferedServices(ctx context.Context) ([]models.OfferedService, error)
}
