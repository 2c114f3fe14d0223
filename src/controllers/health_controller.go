package controllers

import (
	"context"
	"time"

	"flux-backend/src/models"

	"github.com/gofiber/fiber/v2"
)

// Pinger is anything that can report store connectivity.
type Pinger interface {
	Ping(ctx context.Context) error
}

type HealthController struct {
	store     Pinger
	startedAt time.Time
}

func NewHealthController(store Pinger, startedAt time.Time) *HealthController {
	return &HealthController{store: store, startedAt: startedAt}
}

// Root godoc
// @Summary      Liveness probe
// @Description  Answers every method so platform HEAD/GET probes succeed.
// @Tags         health
// @Produce      json
// @Success      200  {object}  models.StatusResponse
// @Router       / [get]
func (hc *HealthController) Root(c *fiber.Ctx) error {
	return c.JSON(models.StatusResponse{
		Status:  "ok",
		Message: "FLUX backend is running",
	})
}

// Healthz godoc
// @Summary      Health check
// @Description  Reports store connectivity and process uptime in seconds.
// @Tags         health
// @Produce      json
// @Success      200  {object}  models.HealthResponse
// @Router       /healthz [get]
func (hc *HealthController) Healthz(c *fiber.Ctx) error {
	db := "connected"
	if err := hc.store.Ping(c.UserContext()); err != nil {
		db = "disconnected"
	}
	return c.JSON(models.HealthResponse{
		Status: "ok",
		DB:     db,
		Uptime: time.Since(hc.startedAt).Seconds(),
	})
}
