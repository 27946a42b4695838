package handler

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"portfolioapi/internal/service"
)

// Deps carries everything the routes need.
type Deps struct {
	Projects  service.ProjectService
	Analytics service.AnalyticsService
	Comments  service.CommentService
	Health    service.HealthService
	Content   ContentGetter
	Tracker   PageViewTracker
	// WriteLimit guards POST endpoints that anonymous visitors can call.
	// Nil disables limiting.
	WriteLimit fiber.Handler
	// Gatherer backs /metrics. Nil disables the endpoint.
	Gatherer prometheus.Gatherer
	Log      *zap.Logger
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, d Deps) {
	log := d.Log
	if log == nil {
		log = zap.NewNop()
	}
	limit := d.WriteLimit
	if limit == nil {
		limit = func(c *fiber.Ctx) error { return c.Next() }
	}

	app.Get("/healthz", LivenessProbe())
	if d.Gatherer != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	api := app.Group("/api")
	api.Get("/projects", GetProjects(d.Projects, log))
	api.Post("/projects", PostProjects(d.Projects, log))
	api.Get("/analytics", GetAnalytics(d.Analytics, log))
	api.Post("/analytics", limit, PostAnalytics(d.Analytics, log))
	api.Get("/comments", GetComments(d.Comments, log))
	api.Post("/comments", limit, PostComments(d.Comments, log))
	api.Get("/health", HealthCheck(d.Health, log))
	api.Get("/content/:name", GetContent(d.Content, d.Tracker, log))
}
