// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"errors"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/artem13815/places/pkg/apperr"
)

var (
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_http_requests_total",
		Help: "HTTP requests by method, route and status.",
	}, []string{"method", "route", "status"})

	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "places_http_request_duration_seconds",
		Help:    "HTTP request latency by method and route.",
		Buckets: prometheus.DefBuckets,
	}, []string{"method", "route"})

	// GeocodeRequests counts geocoder calls by outcome: ok, not_found, error.
	GeocodeRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "places_geocode_requests_total",
		Help: "Geocoding provider calls by outcome.",
	}, []string{"outcome"})

	// ImageCleanupFailures counts uploaded files that could not be removed.
	ImageCleanupFailures = promauto.NewCounter(prometheus.CounterOpts{
		Name: "places_image_cleanup_failures_total",
		Help: "Uploaded images that could not be removed from disk.",
	})
)

// Middleware records request count and latency. The route label is the
// matched route pattern, so path parameters do not explode cardinality.
func Middleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		route := c.Route().Path
		status := c.Response().StatusCode()
		var fe *fiber.Error
		if ae, ok := apperr.As(err); ok {
			status = ae.Status()
		} else if errors.As(err, &fe) {
			status = fe.Code
		} else if err != nil {
			status = fiber.StatusInternalServerError
		}
		HTTPRequests.WithLabelValues(c.Method(), route, strconv.Itoa(status)).Inc()
		HTTPDuration.WithLabelValues(c.Method(), route).Observe(time.Since(start).Seconds())
		return err
	}
}
