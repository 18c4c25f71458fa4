package http

import (
	"github.com/goccy/go-json"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/artem13815/places/api/http/presenter"
	"github.com/artem13815/places/pkg/metrics"
)

// multipart framing on top of the largest accepted image
const bodyOverhead = 1 << 20

// NewApp builds the Fiber app with the shared middleware chain.
// maxUploadBytes <= 0 means uploads are not size checked.
func NewApp(maxUploadBytes int64) *fiber.App {
	cfg := fiber.Config{
		AppName:      "places",
		ErrorHandler: presenter.ErrorHandler,
		JSONEncoder:  json.Marshal,
		JSONDecoder:  json.Unmarshal,
	}
	// no upload limit keeps Fiber's default body limit
	if maxUploadBytes > 0 {
		cfg.BodyLimit = int(maxUploadBytes) + bodyOverhead
	}
	app := fiber.New(cfg)

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, X-Requested-With, Content-Type, Accept, Authorization",
		AllowMethods: "GET, POST, PATCH, DELETE",
	}))
	app.Use(AccessLog())
	app.Use(metrics.Middleware())

	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	return app
}
