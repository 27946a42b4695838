package handler

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portfolioapi/internal/model"
	"portfolioapi/internal/service"
)

const (
	healthOK       = "ok"
	healthDegraded = "degraded"
	healthDown     = "down"
)

type healthSummary struct {
	Healthy   int `json:"healthy"`
	Unhealthy int `json:"unhealthy"`
	Total     int `json:"total"`
}

type healthResponse struct {
	Status    string          `json:"status"`
	Timestamp time.Time       `json:"timestamp"`
	Databases map[string]bool `json:"databases"`
	Summary   healthSummary   `json:"summary"`
}

func healthStatus(h model.DatabaseHealth) string {
	switch h.Healthy() {
	case h.Total():
		return healthOK
	case 0:
		return healthDown
	default:
		return healthDegraded
	}
}

// HealthCheck reports the composite liveness of the backing stores. It
// answers 200 even when stores are down; only a failure of the check
// itself yields 500.
//
// @Summary Composite store health
// @Success 200 {object} healthResponse
// @Failure 500 {object} errorPayload
// @Router /api/health [get]
func HealthCheck(svc service.HealthService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		h, err := svc.Check(c.UserContext())
		if err != nil {
			log.Error("health check failed", zap.Error(err))
			return writeError(c, fiber.StatusInternalServerError, "Health check failed")
		}
		for store, msg := range h.Errors {
			log.Warn("store unhealthy", zap.String("store", store), zap.String("error", msg))
		}
		healthy := h.Healthy()
		return c.JSON(healthResponse{
			Status:    healthStatus(h),
			Timestamp: h.CheckedAt,
			Databases: h.Stores,
			Summary: healthSummary{
				Healthy:   healthy,
				Unhealthy: h.Total() - healthy,
				Total:     h.Total(),
			},
		})
	}
}

// LivenessProbe answers 200 as long as the process serves requests.
func LivenessProbe() fiber.Handler {
	return func(c *fiber.Ctx) error {
		return c.SendStatus(fiber.StatusOK)
	}
}
