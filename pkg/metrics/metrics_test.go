package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/places/pkg/apperr"
)

func TestMiddleware_CountsByRouteAndStatus(t *testing.T) {
	app := fiber.New()
	app.Use(Middleware())
	app.Get("/api/places/:pid", func(c *fiber.Ctx) error {
		if c.Params("pid") == "missing" {
			return apperr.NotFound("Could not find a place for the provided id.")
		}
		return c.SendStatus(http.StatusOK)
	})

	okBefore := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/places/:pid", "200"))
	nfBefore := testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/places/:pid", "404"))

	for _, path := range []string{"/api/places/a", "/api/places/b", "/api/places/missing"} {
		_, err := app.Test(httptest.NewRequest(http.MethodGet, path, nil), -1)
		require.NoError(t, err)
	}

	assert.Equal(t, okBefore+2, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/places/:pid", "200")))
	assert.Equal(t, nfBefore+1, testutil.ToFloat64(HTTPRequests.WithLabelValues("GET", "/api/places/:pid", "404")))
}
