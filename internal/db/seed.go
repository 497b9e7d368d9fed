package db

import (
	"context"
	"fmt"

	log "github.com/sirupsen/logrus"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/garagem-conectada/garagem-api/internal/models"
)

// Seed populates the garage content collections when they are empty. It is
// idempotent: non-empty collections are left untouched.
func Seed(ctx context.Context, database *mongo.Database) error {
	if err := seedTips(ctx, database.Collection("tips")); err != nil {
		return err
	}
	if err := seedFeatured(ctx, database.Collection("featured_vehicles")); err != nil {
		return err
	}
	return seedServices(ctx, database.Collection("offered_services"))
}

func seedTips(ctx context.Context, coll *mongo.Collection) error {
	count, err := coll.CountDocuments(ctx, map[string]any{})
	if err != nil {
		return fmt.Errorf("count tips: %w", err)
	}
	if count > 0 {
		return nil
	}

	tips := []any{
		models.Tip{Text: "Check the engine oil level regularly."},
		models.Tip{Text: "Calibrate the tires weekly to the recommended pressure."},
		models.Tip{Text: "Check the coolant level in the radiator."},
		models.Tip{Text: "Test the brakes in a safe place before a long trip."},
		models.Tip{Kind: models.KindCar, Text: "Rotate the tires every 10,000 km for even wear."},
		models.Tip{Kind: models.KindCar, Text: "Replace the engine air filter as specified in the manual."},
		models.Tip{Kind: models.KindSportsCar, Text: "Inspect high-performance tires for wear more often."},
		models.Tip{Kind: models.KindSportsCar, Text: "Use only the synthetic oil grade recommended by the manufacturer."},
		models.Tip{Kind: models.KindTruck, Text: "Inspect the air brake system daily before departure."},
		models.Tip{Kind: models.KindTruck, Text: "Check the condition and lubrication of the fifth wheel."},
	}
	if _, err := coll.InsertMany(ctx, tips); err != nil {
		return fmt.Errorf("seed tips: %w", err)
	}
	log.Info("seeded maintenance tips")
	return nil
}

func seedFeatured(ctx context.Context, coll *mongo.Collection) error {
	count, err := coll.CountDocuments(ctx, map[string]any{})
	if err != nil {
		return fmt.Errorf("count featured vehicles: %w", err)
	}
	if count > 0 {
		return nil
	}

	featured := []any{
		models.FeaturedVehicle{Model: "Maverick Hybrid", Year: 2024, Highlight: "Economy and style", ImageURL: "/img/maverick.png"},
		models.FeaturedVehicle{Model: "ID.Buzz", Year: 2025, Highlight: "Nostalgia, electrified", ImageURL: "/img/idbuzz.png"},
		models.FeaturedVehicle{Model: "Mustang Mach-E", Year: 2024, Highlight: "The legend, fully electric", ImageURL: "/img/mach-e.png"},
	}
	if _, err := coll.InsertMany(ctx, featured); err != nil {
		return fmt.Errorf("seed featured vehicles: %w", err)
	}
	log.Info("seeded featured vehicles")
	return nil
}

func seedServices(ctx context.Context, coll *mongo.Collection) error {
	count, err := coll.CountDocuments(ctx, map[string]any{})
	if err != nil {
		return fmt.Errorf("count offered services: %w", err)
	}
	if count > 0 {
		return nil
	}

	services := []any{
		models.OfferedService{Name: "Full electronic diagnostics", Description: "Scan of every electronic system in the vehicle.", EstimatedPrice: "R$ 250,00"},
		models.OfferedService{Name: "3D alignment and balancing", Description: "Straight steering and longer tire life.", EstimatedPrice: "R$ 180,00"},
		models.OfferedService{Name: "Premium oil and filter change", Description: "Synthetic oils and high performance filters.", EstimatedPrice: "R$ 450,00"},
		models.OfferedService{Name: "Air conditioning sanitization", Description: "Removes fungi, mites and bacteria from the cabin air.", EstimatedPrice: "R$ 150,00"},
	}
	if _, err := coll.InsertMany(ctx, services); err != nil {
		return fmt.Errorf("seed offered services: %w", err)
	}
	log.Info("seeded offered services")
	return nil
}
