package http

import (
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"

	"github.com/phoenix-adventures/trip-service/internal/api/http/handlers"
	"github.com/phoenix-adventures/trip-service/internal/auth"
)

func newRoutedApp() *fiber.App {
	app := fiber.New()
	RegisterRoutes(app, RouteConfig{
		Health:                  handlers.NewHealthHandler("test", "test", nil, nil),
		Users:                   handlers.NewUsersHandler(nil, nil),
		Trips:                   handlers.NewTripsHandler(nil, nil),
		CustomizedTrips:         handlers.NewCustomizedTripsHandler(nil, nil),
		UserResources:           handlers.NewResourcesHandler(nil),
		TripResources:           handlers.NewResourcesHandler(nil),
		CustomizedTripResources: handlers.NewResourcesHandler(nil),
		ReceiptResources:        handlers.NewResourcesHandler(nil),
		AuthMiddleware:          auth.NewAuthMiddleware(nil, nil),
	})
	return app
}

func routeSet(app *fiber.App) map[string]bool {
	routes := map[string]bool{}
	for _, r := range app.GetRoutes(true) {
		routes[r.Method+" "+r.Path] = true
	}
	return routes
}

func TestNegotiationResponseRoutesArePost(t *testing.T) {
	routes := routeSet(newRoutedApp())

	assert.True(t, routes["POST /api/v1/cus-trips/admin-response/:id"])
	assert.True(t, routes["POST /api/v1/cus-trips/user-response/:id"])
	assert.False(t, routes["PATCH /api/v1/cus-trips/admin-response/:id"])
	assert.False(t, routes["PATCH /api/v1/cus-trips/user-response/:id"])
}

func TestAdminResourceRoutes(t *testing.T) {
	routes := routeSet(newRoutedApp())

	assert.True(t, routes["PATCH /api/v1/cus-trips/:id"])
	assert.True(t, routes["DELETE /api/v1/cus-trips/:id"])
	assert.True(t, routes["GET /api/v1/receipts/"] || routes["GET /api/v1/receipts"])
	assert.True(t, routes["GET /api/v1/receipts/:id"])
	assert.True(t, routes["DELETE /api/v1/receipts/:id"])
}

func TestTripDetailRequiresAuthentication(t *testing.T) {
	app := newRoutedApp()

	for _, r := range app.GetRoutes(true) {
		if r.Method == fiber.MethodGet && r.Path == "/api/v1/trips/:id" {
			assert.Greater(t, len(r.Handlers), 1, "expected an auth guard ahead of the handler")
			return
		}
	}
	t.Fatal("GET /api/v1/trips/:id not registered")
}
