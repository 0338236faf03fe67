package routes

import (
	"airport-booking/skyport/internal/api"
	"airport-booking/skyport/internal/middleware"

	"github.com/go-chi/chi/v5"
)

// RegisterAPIRoutes registers all API v1 routes and handlers.
// Reads need any valid token; writes to reference data need an admin.
func RegisterAPIRoutes(r chi.Router, handlers *api.Handlers, deps *api.Dependencies, limiter *middleware.RateLimiter) {

	r.Route("/api/v1", func(v1 chi.Router) {
		v1.Use(limiter.RateLimitMiddleware)

		// Public routes
		v1.Post("/user/register", handlers.RegisterUser())
		v1.Post("/user/token", handlers.IssueToken())

		v1.Group(func(authed chi.Router) {
			authed.Use(middleware.AuthMiddleware(deps.Services.Tokens))

			authed.Get("/user/me", handlers.Me())
			authed.Post("/user/logout", handlers.Logout())

			authed.Get("/airports", handlers.ListAirports())
			authed.Get("/airports/{id}", handlers.GetAirport())
			authed.Get("/airplane-types", handlers.ListAirplaneTypes())
			authed.Get("/airplane-types/{id}", handlers.GetAirplaneType())
			authed.Get("/airplanes", handlers.ListAirplanes())
			authed.Get("/airplanes/{id}", handlers.GetAirplane())
			authed.Get("/routes", handlers.ListRoutes())
			authed.Get("/routes/{id}", handlers.GetRoute())
			authed.Get("/crew", handlers.ListCrew())
			authed.Get("/crew/{id}", handlers.GetCrewMember())
			authed.Get("/flights", handlers.ListFlights())
			authed.Get("/flights/{id}", handlers.GetFlight())

			authed.Get("/orders", handlers.ListOrders())
			authed.Get("/orders/{id}", handlers.GetOrder())
			authed.Post("/orders", handlers.CreateOrder())

			// Admin-only group
			authed.Group(func(admin chi.Router) {
				admin.Use(middleware.IsAdminMiddleware())

				admin.Post("/airports", handlers.CreateAirport())
				admin.Put("/airports/{id}", handlers.UpdateAirport())
				admin.Delete("/airports/{id}", handlers.DeleteAirport())
				admin.Post("/admin/airports/import", handlers.ImportAirports())

				admin.Post("/airplane-types", handlers.CreateAirplaneType())
				admin.Put("/airplane-types/{id}", handlers.UpdateAirplaneType())
				admin.Delete("/airplane-types/{id}", handlers.DeleteAirplaneType())

				admin.Post("/airplanes", handlers.CreateAirplane())
				admin.Put("/airplanes/{id}", handlers.UpdateAirplane())
				admin.Delete("/airplanes/{id}", handlers.DeleteAirplane())

				admin.Post("/routes", handlers.CreateRoute())
				admin.Put("/routes/{id}", handlers.UpdateRoute())
				admin.Delete("/routes/{id}", handlers.DeleteRoute())

				admin.Post("/crew", handlers.CreateCrewMember())
				admin.Put("/crew/{id}", handlers.UpdateCrewMember())
				admin.Delete("/crew/{id}", handlers.DeleteCrewMember())

				admin.Post("/flights", handlers.CreateFlight())
				admin.Put("/flights/{id}", handlers.UpdateFlight())
				admin.Delete("/flights/{id}", handlers.DeleteFlight())

				admin.Delete("/orders/{id}", handlers.DeleteOrder())
				admin.Get("/admin/stats", handlers.BookingStats())
			})
		})
	})
}
