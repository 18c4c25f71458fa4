package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/places/api/http/handlers"
	"github.com/artem13815/places/pkg/apperr"
	"github.com/artem13815/places/pkg/upload"
)

// Deps are the handlers and middleware Register mounts.
type Deps struct {
	Users   *handlers.UsersHandler
	Places  *handlers.PlacesHandler
	Health  *handlers.HealthHandler
	AuthMW  fiber.Handler
	Uploads *upload.Store
}

// ErrRouteNotFound answers every unmatched route.
var ErrRouteNotFound = apperr.NotFound("Could not find this route")

// Register wires all HTTP routes onto given Fiber app.
func Register(app *fiber.App, d Deps) {
	app.Static("/uploads/images", d.Uploads.Dir())

	api := app.Group("/api")

	// Health and readiness endpoints for probes/monitoring
	if d.Health != nil {
		api.Get("/health", d.Health.Health)
		api.Get("/ready", d.Health.Ready)
	}

	users := api.Group("/users")
	users.Get("/", d.Users.List)
	users.Post("/signup", upload.Single(d.Uploads, "image"), d.Users.Signup)
	users.Post("/login", d.Users.Login)

	places := api.Group("/places")
	places.Get("/user/:uid", d.Places.GetByUserID)
	places.Get("/:pid", d.Places.GetByID)
	places.Post("/", d.AuthMW, upload.Single(d.Uploads, "image"), d.Places.Create)
	places.Patch("/:pid", d.AuthMW, d.Places.Update)
	places.Delete("/:pid", d.AuthMW, d.Places.Delete)
}

// RegisterFallback must run after every other route.
func RegisterFallback(app *fiber.App) {
	app.Use(func(c *fiber.Ctx) error {
		return ErrRouteNotFound
	})
}
