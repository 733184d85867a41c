package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/phoenix-adventures/trip-service/internal/api/http/handlers"
	"github.com/phoenix-adventures/trip-service/internal/auth"
	"github.com/phoenix-adventures/trip-service/internal/domain"
)

// RouteConfig bundles dependencies for route registration.
type RouteConfig struct {
	Health                  *handlers.HealthHandler
	Users                   *handlers.UsersHandler
	Trips                   *handlers.TripsHandler
	CustomizedTrips         *handlers.CustomizedTripsHandler
	UserResources           *handlers.ResourcesHandler
	TripResources           *handlers.ResourcesHandler
	CustomizedTripResources *handlers.ResourcesHandler
	ReceiptResources        *handlers.ResourcesHandler
	AuthMiddleware          *auth.AuthMiddleware
	RateLimiter             fiber.Handler
}

// RegisterRoutes wires HTTP routes.
func RegisterRoutes(app *fiber.App, cfg RouteConfig) {
	app.Get("/health/live", cfg.Health.Live)
	app.Get("/health/ready", cfg.Health.Ready)

	api := app.Group("/api/v1")
	if cfg.RateLimiter != nil {
		api.Use(cfg.RateLimiter)
	}

	requireAuth := cfg.AuthMiddleware.Handle
	adminOnly := auth.RequireRole(domain.RoleAdmin)
	userOnly := auth.RequireRole(domain.RoleUser)

	users := api.Group("/users")
	users.Post("/signup", cfg.Users.Signup)
	users.Post("/login", cfg.Users.Login)
	users.Post("/forgotPassword", cfg.Users.ForgotPassword)
	users.Patch("/resetPassword/:token", cfg.Users.ResetPassword)
	users.Patch("/updateMyPassword", requireAuth, cfg.Users.UpdateMyPassword)
	users.Get("/myAccount", requireAuth, cfg.Users.MyAccount)
	users.Patch("/myAccount", requireAuth, cfg.Users.UpdateMyAccount)
	users.Delete("/myAccount", requireAuth, cfg.Users.DeleteMyAccount)
	users.Get("/", requireAuth, adminOnly, cfg.UserResources.List)
	users.Get("/:id", requireAuth, adminOnly, cfg.UserResources.Get)
	users.Patch("/:id", requireAuth, adminOnly, cfg.UserResources.Update)
	users.Delete("/:id", requireAuth, adminOnly, cfg.UserResources.Delete)

	trips := api.Group("/trips")
	trips.Get("/", cfg.Trips.List)
	trips.Post("/", requireAuth, adminOnly, cfg.Trips.Create)
	trips.Post("/images-upload/:id", requireAuth, adminOnly, cfg.Trips.UploadImages)
	trips.Get("/receipts/:id", requireAuth, adminOnly, cfg.Trips.Receipts)
	trips.Post("/receipts/:id", requireAuth, userOnly, cfg.Trips.UploadReceipt)
	trips.Get("/:id", requireAuth, cfg.Trips.Get)
	trips.Post("/:id", requireAuth, userOnly, cfg.Trips.Apply)
	trips.Patch("/:id", requireAuth, adminOnly, cfg.TripResources.Update)
	trips.Delete("/:id", requireAuth, adminOnly, cfg.TripResources.Delete)

	cusTrips := api.Group("/cus-trips", requireAuth)
	cusTrips.Post("/", userOnly, cfg.CustomizedTrips.Create)
	cusTrips.Get("/", adminOnly, cfg.CustomizedTrips.ListPending)
	cusTrips.Get("/my-cust-trips", userOnly, cfg.CustomizedTrips.ListMine)
	cusTrips.Post("/admin-response/:id", adminOnly, cfg.CustomizedTrips.AdminRespond)
	cusTrips.Post("/user-response/:id", userOnly, cfg.CustomizedTrips.UserRespond)
	cusTrips.Get("/receipts/:id", adminOnly, cfg.CustomizedTrips.Receipts)
	cusTrips.Post("/receipts/:id", userOnly, cfg.CustomizedTrips.UploadReceipt)
	cusTrips.Get("/:id", cfg.CustomizedTrips.Get)
	cusTrips.Patch("/:id", adminOnly, cfg.CustomizedTripResources.Update)
	cusTrips.Delete("/:id", adminOnly, cfg.CustomizedTripResources.Delete)

	receipts := api.Group("/receipts", requireAuth, adminOnly)
	receipts.Get("/", cfg.ReceiptResources.List)
	receipts.Get("/:id", cfg.ReceiptResources.Get)
	receipts.Delete("/:id", cfg.ReceiptResources.Delete)
}
