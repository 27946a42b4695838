package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portfolioapi/internal/http/middleware"
	"portfolioapi/internal/model"
	"portfolioapi/internal/service"
)

const (
	analyticsTypePopularPages = "popular-pages"
	eventPageView             = "page_view"
)

type popularPagesResponse struct {
	PopularPages []model.PageCount `json:"popularPages"`
}

type analyticsEventRequest struct {
	Event string `json:"event"`
	Path  string `json:"path"`
}

type recordPageViewResponse struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Result  *model.PageView `json:"result"`
}

// GetAnalytics serves analytics aggregations.
//
// @Summary Analytics queries
// @Param type query string true "popular-pages"
// @Param limit query int false "maximum entries, default 10"
// @Success 200 {object} popularPagesResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/analytics [get]
func GetAnalytics(svc service.AnalyticsService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if c.Query("type") != analyticsTypePopularPages {
			return writeError(c, fiber.StatusBadRequest, "Invalid analytics type. Use: popular-pages")
		}
		pages, err := svc.PopularPages(c.UserContext(), service.ParseLimit(c.Query("limit")))
		if err != nil {
			return respondError(c, log, err)
		}
		return c.JSON(popularPagesResponse{PopularPages: pages})
	}
}

// PostAnalytics records an analytics event.
//
// @Summary Record a page view
// @Accept json
// @Param body body analyticsEventRequest true "event must be page_view"
// @Success 200 {object} recordPageViewResponse
// @Failure 400 {object} errorPayload
// @Failure 429 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/analytics [post]
func PostAnalytics(svc service.AnalyticsService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req analyticsEventRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid JSON body")
		}
		if req.Event != eventPageView {
			return writeError(c, fiber.StatusBadRequest, "Invalid event type. Use: page_view")
		}

		pv, err := svc.RecordPageView(c.UserContext(), req.Path, c.Get(fiber.HeaderUserAgent), middleware.ClientIPFromCtx(c))
		if err != nil {
			return respondError(c, log, err)
		}
		return c.JSON(recordPageViewResponse{Success: true, Message: "Page view recorded", Result: pv})
	}
}
