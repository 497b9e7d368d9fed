package main

import (
	"context"
	"net/http"
	"os"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/garagem-conectada/garagem-api/internal/auth"
	"github.com/garagem-conectada/garagem-api/internal/config"
	"github.com/garagem-conectada/garagem-api/internal/db"
	"github.com/garagem-conectada/garagem-api/internal/handlers"
	"github.com/garagem-conectada/garagem-api/internal/middleware"
)

func main() {
	log.SetFormatter(&log.JSONFormatter{})
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.SetLevel(log.DebugLevel)
	}

	cfg := config.Load()

	client, err := db.ConnectMongo(cfg.MongoURI)
	if err != nil {
		log.WithError(err).Fatal("failed to connect to MongoDB")
	}
	defer client.Disconnect(context.Background())
	log.Info("connected to MongoDB")

	database := client.Database(cfg.MongoDB)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := db.EnsureIndexes(ctx, database); err != nil {
		log.WithError(err).Fatal("failed to create indexes")
	}
	if err := db.Seed(ctx, database); err != nil {
		log.WithError(err).Fatal("failed to seed garage content")
	}

	users := &db.MongoUserCollection{Collection: database.Collection("users")}
	vehicles := &db.MongoVehicleCollection{
		Vehicles:     database.Collection("vehicles"),
		Maintenances: database.Collection("maintenances"),
	}
	maintenances := &db.MongoMaintenanceCollection{Collection: database.Collection("maintenances")}
	garage := &db.MongoGarageCollection{
		Tips:     database.Collection("tips"),
		Featured: database.Collection("featured_vehicles"),
		Services: database.Collection("offered_services"),
	}

	authService := auth.NewService(cfg.JWTSecret, cfg.JWTExpiry)

	router := handlers.NewRouter(
		handlers.NewAuthHandler(authService, users),
		handlers.NewVehicleHandler(vehicles, users),
		handlers.NewMaintenanceHandler(vehicles, maintenances),
		handlers.NewGarageHandler(garage),
		middleware.NewAuthMiddleware(authService),
		middleware.NewRateLimitMiddleware(),
	)

	log.WithField("port", cfg.Port).Info("HTTP server listening")
	if err := http.ListenAndServe(":"+cfg.Port, router); err != nil {
		log.WithError(err).Fatal("server stopped")
	}
}
