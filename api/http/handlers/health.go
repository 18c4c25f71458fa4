package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/artem13815/places/api/http/presenter"
	"github.com/artem13815/places/pkg/health"
)

// HealthHandler serves liveness and readiness probes.
type HealthHandler struct{ svc health.ReadinessUseCase }

func NewHealthHandler(svc health.ReadinessUseCase) *HealthHandler { return &HealthHandler{svc: svc} }

// Health: basic liveness check.
// @Summary Liveness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]string
// @Router  /health [get]
func (h *HealthHandler) Health(c *fiber.Ctx) error {
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ok"})
}

// Ready: readiness check of the database and the image directory.
// @Summary Readiness probe
// @Tags    health
// @Produce json
// @Success 200 {object} map[string]any
// @Failure 503 {object} map[string]any
// @Router  /ready [get]
func (h *HealthHandler) Ready(c *fiber.Ctx) error {
	ctx, cancel := context.WithTimeout(c.Context(), 2*time.Second)
	defer cancel()
	report, err := h.svc.Ready(ctx)
	if err != nil {
		return presenter.JSON(c, http.StatusServiceUnavailable, fiber.Map{
			"status": "not_ready",
			"checks": report,
		})
	}
	return presenter.JSON(c, http.StatusOK, fiber.Map{"status": "ready", "checks": report})
}
