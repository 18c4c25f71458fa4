package jwt

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/artem13815/places/api/http/presenter"
)

func newProtectedApp(reached *bool) *fiber.App {
	app := fiber.New(fiber.Config{ErrorHandler: presenter.ErrorHandler})
	app.Use(NewAuthMiddleware(NewVerifier(testSecret, "places-service")))
	handler := func(c *fiber.Ctx) error {
		*reached = true
		return c.JSON(fiber.Map{"userId": c.Locals("userId"), "email": c.Locals("email")})
	}
	app.Post("/api/places", handler)
	app.Options("/api/places", func(c *fiber.Ctx) error {
		*reached = true
		return c.SendStatus(http.StatusNoContent)
	})
	return app
}

func TestAuthMiddleware_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{name: "missing header", header: ""},
		{name: "no scheme", header: "abc.def.ghi"},
		{name: "wrong scheme", header: "Basic dXNlcjpwYXNz"},
		{name: "empty token", header: "Bearer   "},
		{name: "garbage token", header: "Bearer abc.def.ghi"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reached := false
			app := newProtectedApp(&reached)
			req := httptest.NewRequest(http.MethodPost, "/api/places", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}

			resp, err := app.Test(req, -1)
			require.NoError(t, err)

			assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
			assert.False(t, reached, "handler must not run")
		})
	}
}

func TestAuthMiddleware_AcceptsBearer(t *testing.T) {
	reached := false
	app := newProtectedApp(&reached)
	user := testUser()
	token, err := NewGenerator(testSecret, "places-service", time.Hour).Generate(context.Background(), user)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/api/places", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.True(t, reached)
}

func TestAuthMiddleware_SkipsPreflight(t *testing.T) {
	reached := false
	app := newProtectedApp(&reached)

	resp, err := app.Test(httptest.NewRequest(http.MethodOptions, "/api/places", nil), -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
	assert.True(t, reached)
}
