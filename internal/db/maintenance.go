package db

import (
	"context"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/garagem-conectada/garagem-api/internal/models"
)

// MongoMaintenanceCollection implements MaintenanceCollection for MongoDB.
type MongoMaintenanceCollection struct {
	Collection *mongo.Collection
}

// InsertMaintenance inserts a maintenance record for a vehicle.
func (c *MongoMaintenanceCollection) InsertMaintenance(ctx context.Context, record models.Maintenance) (models.Maintenance, error) {
	record.CreatedAt = time.Now()
	record.UpdatedAt = time.Now()

	res, err := c.Collection.InsertOne(ctx, record)
	if err != nil {
		return models.Maintenance{}, fmt.Errorf("insert maintenance: %w", err)
	}
	record.ID = res.InsertedID.(primitive.ObjectID)
	return record, nil
}

// FindMaintenanceByVehicle returns the vehicle's records sorted by date
// descending, the display order.
func (c *MongoMaintenanceCollection) FindMaintenanceByVehicle(ctx context.Context, vehicleID string) ([]models.Maintenance, error) {
	vid, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, ErrNotFound
	}

	opts := options.Find().SetSort(bson.D{{Key: "date", Value: -1}})
	cursor, err := c.Collection.Find(ctx, bson.M{"vehicle_id": vid}, opts)
	if err != nil {
		return nil, fmt.Errorf("find maintenance: %w", err)
	}
	defer cursor.Close(ctx)

	var records []models.Maintenance
	if err := cursor.All(ctx, &records); err != nil {
		return nil, fmt.Errorf("decode maintenance: %w", err)
	}
	return records, nil
}

// UpdateMaintenance applies a partial update to one of the vehicle's records
// and returns the updated document.
func (c *MongoMaintenanceCollection) UpdateMaintenance(ctx context.Context, vehicleID, id string, patch bson.M) (*models.Maintenance, error) {
	vid, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return nil, ErrNotFound
	}
	mid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return nil, ErrNotFound
	}

	patch["updated_at"] = time.Now()
	var record models.Maintenance
	err = c.Collection.FindOneAndUpdate(ctx,
		bson.M{"_id": mid, "vehicle_id": vid},
		bson.M{"$set": patch},
		options.FindOneAndUpdate().SetReturnDocument(options.After),
	).Decode(&record)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("update maintenance: %w", err)
	}
	return &record, nil
}

// DeleteMaintenance deletes one of the vehicle's records.
func (c *MongoMaintenanceCollection) DeleteMaintenance(ctx context.Context, vehicleID, id string) error {
	vid, err := primitive.ObjectIDFromHex(vehicleID)
	if err != nil {
		return ErrNotFound
	}
	mid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}

	res, err := c.Collection.DeleteOne(ctx, bson.M{"_id": mid, "vehicle_id": vid})
	if err != nil {
		return fmt.Errorf("delete maintenance: %w", err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}
