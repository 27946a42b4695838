package handler

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portfolioapi/internal/content"
	"portfolioapi/internal/http/middleware"
	"portfolioapi/internal/service"
)

// ContentGetter returns validated static content by name.
type ContentGetter interface {
	Get(ctx context.Context, name string) (any, error)
}

// PageViewTracker accepts page views without blocking.
type PageViewTracker interface {
	Dispatch(ev service.PageViewEvent) bool
}

// GetContent serves one static content document and records a page view
// for it in the background.
//
// @Summary Static content
// @Param name path string true "profile, projects, timeline, skills or certifications"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} errorPayload
// @Router /api/content/{name} [get]
func GetContent(cache ContentGetter, tracker PageViewTracker, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		name := c.Params("name")
		v, err := cache.Get(c.UserContext(), name)
		if err != nil {
			if errors.Is(err, content.ErrUnknownContent) {
				return writeError(c, fiber.StatusNotFound, "Content not found")
			}
			return respondError(c, log, err)
		}

		if tracker != nil {
			// Result intentionally ignored: tracking must never affect the response.
			_ = tracker.Dispatch(service.PageViewEvent{
				Path:      "/content/" + name,
				UserAgent: c.Get(fiber.HeaderUserAgent),
				IP:        middleware.ClientIPFromCtx(c),
			})
		}
		return c.JSON(fiber.Map{name: v})
	}
}
