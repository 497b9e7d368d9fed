package db

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/garagem-conectada/garagem-api/internal/models"
)

// MongoGarageCollection implements GarageCollection over the garage content
// collections.
type MongoGarageCollection struct {
	Tips     *mongo.Collection
	Featured *mongo.Collection
	Services *mongo.Collection
}

// FindTips returns general tips when kind is empty, otherwise the tips for
// the given vehicle kind.
func (c *MongoGarageCollection) FindTips(ctx context.Context, kind models.Kind) ([]models.Tip, error) {
	filter := bson.M{"kind": bson.M{"$in": bson.A{nil, ""}}}
	if kind != "" {
		filter = bson.M{"kind": kind}
	}

	cursor, err := c.Tips.Find(ctx, filter)
	if err != nil {
		return nil, fmt.Errorf("find tips: %w", err)
	}
	defer cursor.Close(ctx)

	var tips []models.Tip
	if err := cursor.All(ctx, &tips); err != nil {
		return nil, fmt.Errorf("decode tips: %w", err)
	}
	return tips, nil
}

// FindFeaturedVehicles returns the showcase vehicles.
func (c *MongoGarageCollection) FindFeaturedVehicles(ctx context.Context) ([]models.FeaturedVehicle, error) {
	cursor, err := c.Featured.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find featured vehicles: %w", err)
	}
	defer cursor.Close(ctx)

	var featured []models.FeaturedVehicle
	if err := cursor.All(ctx, &featured); err != nil {
		return nil, fmt.Errorf("decode featured vehicles: %w", err)
	}
	return featured, nil
}

// FindOfferedServices returns the advertised workshop services.
func (c *MongoGarageCollection) FindOfferedServices(ctx context.Context) ([]models.OfferedService, error) {
	cursor, err := c.Services.Find(ctx, bson.M{})
	if err != nil {
		return nil, fmt.Errorf("find offered services: %w", err)
	}
	defer cursor.Close(ctx)

	var services []models.OfferedService
	if err := cursor.All(ctx, &services); err != nil {
		return nil, fmt.Errorf("decode offered services: %w", err)
	}
	return services, nil
}
