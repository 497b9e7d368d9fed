package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/garagem-conectada/garagem-api/internal/middleware"
)

// NewRouter wires all handlers into the HTTP routing tree. Registration and
// login are public (behind the rate limiter); everything under /api requires
// a bearer token.
func NewRouter(
	authHandler *AuthHandler,
	vehicleHandler *VehicleHandler,
	maintenanceHandler *MaintenanceHandler,
	garageHandler *GarageHandler,
	authMW *middleware.AuthMiddleware,
	rateMW *middleware.RateLimitMiddleware,
) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestLogger)

	r.Get("/health", Health)

	r.Group(func(r chi.Router) {
		r.Use(rateMW.RateLimit(20, 60))
		r.Post("/users/register", authHandler.Register)
		r.Post("/users/login", authHandler.Login)
	})

	r.Route("/api", func(r chi.Router) {
		r.Use(authMW.Authenticate)

		r.Route("/vehicles", func(r chi.Router) {
			r.Get("/", vehicleHandler.List)
			r.Post("/", vehicleHandler.Create)

			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", vehicleHandler.Get)
				r.Put("/", vehicleHandler.Update)
				r.Delete("/", vehicleHandler.Delete)
				r.Post("/share", vehicleHandler.Share)

				r.Route("/maintenances", func(r chi.Router) {
					r.Get("/", maintenanceHandler.List)
					r.Post("/", maintenanceHandler.Create)
					r.Put("/{mid}", maintenanceHandler.Update)
					r.Delete("/{mid}", maintenanceHandler.Delete)
				})
			})
		})

		r.Get("/tips", garageHandler.Tips)
		r.Get("/tips/{kind}", garageHandler.TipsByKind)
		r.Route("/garage", func(r chi.Router) {
			r.Get("/featured", garageHandler.Featured)
			r.Get("/services", garageHandler.Services)
		})
	})

	return r
}

// Health reports service liveness.
func Health(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
