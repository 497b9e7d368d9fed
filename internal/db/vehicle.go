package db

import (
	"context"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garagem-conectada/garagem-api/internal/models"
)

// MongoVehicleCollection implements VehicleCollection for MongoDB. It also
// holds the maintenance collection so that deleting a vehicle can cascade to
// its history.
type MongoVehicleCollection struct {
	Vehicles     *mongo.Collection
	Maintenances *mongo.Collection
}

// ownerScope matches vehicles the given user owns or that were shared with
// them.
func ownerScope(ownerID string) bson.M {
	return bson.M{"$or": bson.A{
		bson.M{"owner_id": ownerID},
		bson.M{"shared_with": ownerID},
	}}
}

// InsertVehicle inserts a vehicle record. A plate already registered by any
// user is rejected with ErrDuplicatePlate via the unique index.
func (c *MongoVehicleCollection) InsertVehicle(ctx context.Context, vehicle models.Vehicle) (models.Vehicle, error) {
	vehicle.Plate = models.NormalizePlate(vehicle.Plate)
	vehicle.CreatedAt = time.Now()
	vehicle.UpdatedAt = time.Now()

	res, err := c.Vehicles.InsertOne(ctx, vehicle)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return models.Vehicle{}, ErrDuplicatePlate
		}
		return models.Vehicle{}, fmt.Errorf("insert vehicle: %w", err)
	}
	vehicle.ID = res.InsertedID.(primitive.ObjectID)
	return vehicle, nil
}

// FindVehiclesByOwner returns every vehicle owned by or shared with the
// user, each reconstructed from its raw document and carrying its
// maintenance history sorted by date descending. Documents with an unknown
// kind discriminator are dropped.
func (c *MongoVehicleCollection) FindVehiclesByOwner(ctx context.Context, ownerID string) ([]models.Vehicle, error) {
	cursor, err := c.Vehicles.Find(ctx, ownerScope(ownerID))
	if err != nil {
		return nil, fmt.Errorf("find vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var raws []models.RawVehicle
	if err := cursor.All(ctx, &raws); err != nil {
		return nil, fmt.Errorf("decode vehicles: %w", err)
	}

	vehicles := make([]models.Vehicle, 0, len(raws))
	for _, raw := range raws {
		v := models.ReconstructVehicle(raw)
		if v == nil {
			continue
		}
		history, err := c.findHistory(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		v.History = history
		vehicles = append(vehicles, *v)
	}
	return vehicles, nil
}

// FindVehicleByID finds a vehicle by id, visible to the owner and to anyone
// the vehicle was shared with.
func (c *MongoVehicleCollection) FindVehicleByID(ctx context.Context, id, ownerID string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	filter := ownerScope(ownerID)
	filter["_id"] = objectID
	return c.findOne(ctx, filter)
}

// FindOwnedVehicleByID finds a vehicle by id, matching the owner only.
// Sharing grants read access; write paths resolve the vehicle through this so
// a shared-with user can never touch another owner's records.
func (c *MongoVehicleCollection) FindOwnedVehicleByID(ctx context.Context, id, ownerID string) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}
	return c.findOne(ctx, bson.M{"_id": objectID, "owner_id": ownerID})
}

func (c *MongoVehicleCollection) findOne(ctx context.Context, filter bson.M) (*models.Vehicle, error) {
	var raw models.RawVehicle
	if err := c.Vehicles.FindOne(ctx, filter).Decode(&raw); err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("find vehicle: %w", err)
	}

	v := models.ReconstructVehicle(raw)
	if v == nil {
		return nil, ErrNotFound
	}
	history, err := c.findHistory(ctx, v.ID)
	if err != nil {
		return nil, err
	}
	v.History = history
	return v, nil
}

// UpdateVehicle applies a partial update to an owned vehicle and returns the
// updated document.
func (c *MongoVehicleCollection) UpdateVehicle(ctx context.Context, id, ownerID string, patch bson.M) (*models.Vehicle, error) {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	if plate, ok := patch["plate"].(string); ok {
		patch["plate"] = models.NormalizePlate(plate)
	}
	patch["updated_at"] = time.Now()

	update := bson.M{"$set": patch}
	if kind, ok := patch["kind"].(string); ok {
		if stale := staleKindFields(models.Kind(kind), patch); len(stale) > 0 {
			update["$unset"] = stale
		}
	}

	res, err := c.Vehicles.UpdateOne(ctx,
		bson.M{"_id": objectID, "owner_id": ownerID},
		update)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return nil, ErrDuplicatePlate
		}
		return nil, fmt.Errorf("update vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return nil, ErrNotFound
	}
	return c.FindVehicleByID(ctx, id, ownerID)
}

// kindFields lists the per-kind field group each kind is allowed to carry.
var kindFields = map[models.Kind][]string{
	models.KindCar:       {"doors"},
	models.KindSportsCar: {"doors", "turbo_on"},
	models.KindTruck:     {"axles", "load_capacity", "current_load"},
}

// staleKindFields returns the per-kind fields to clear when a vehicle changes
// kind: everything outside the new kind's group, except fields the same patch
// sets explicitly. Exactly one group may remain populated in the document.
func staleKindFields(kind models.Kind, patch bson.M) bson.M {
	keep := make(map[string]bool)
	for _, f := range kindFields[kind] {
		keep[f] = true
	}

	stale := bson.M{}
	for _, fields := range kindFields {
		for _, f := range fields {
			if keep[f] {
				continue
			}
			if _, ok := patch[f]; ok {
				continue
			}
			stale[f] = ""
		}
	}
	return stale
}

// DeleteVehicle deletes an owned vehicle and cascades to every maintenance
// record under it.
func (c *MongoVehicleCollection) DeleteVehicle(ctx context.Context, id, ownerID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := c.Vehicles.DeleteOne(ctx, bson.M{"_id": objectID, "owner_id": ownerID})
	if err != nil {
		return fmt.Errorf("delete vehicle: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}

	deleted, err := c.Maintenances.DeleteMany(ctx, bson.M{"vehicle_id": objectID})
	if err != nil {
		return fmt.Errorf("cascade delete maintenance: %w", err)
	}
	log.WithFields(log.Fields{"vehicle_id": id, "records": deleted.DeletedCount}).
		Debug("cascaded vehicle delete to maintenance history")
	return nil
}

// ShareVehicle grants another user read access to an owned vehicle. Sharing
// twice with the same user is a no-op.
func (c *MongoVehicleCollection) ShareVehicle(ctx context.Context, id, ownerID, userID string) error {
	objectID, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := c.Vehicles.UpdateOne(ctx,
		bson.M{"_id": objectID, "owner_id": ownerID},
		bson.M{
			"$addToSet": bson.M{"shared_with": userID},
			"$set":      bson.M{"updated_at": time.Now()},
		})
	if err != nil {
		return fmt.Errorf("share vehicle: %w", err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (c *MongoVehicleCollection) findHistory(ctx context.Context, vehicleID primitive.ObjectID) ([]models.Maintenance, error) {
	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Maintenances.Find(ctx, bson.M{"vehicle_id": vehicleID}, opts)
	if err != nil {
		return nil, fmt.Errorf("find maintenance history: %w", err)
	}
	defer cursor.Close(ctx)

	var history []models.Maintenance
	if err := cursor.All(ctx, &history); err != nil {
		return nil, fmt.Errorf("decode maintenance history: %w", err)
	}
	return history, nil
}
