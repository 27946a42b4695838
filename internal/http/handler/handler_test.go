package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"portfolioapi/internal/apperror"
	"portfolioapi/internal/content"
	"portfolioapi/internal/http/middleware"
	"portfolioapi/internal/model"
	"portfolioapi/internal/service"
	serviceMocks "portfolioapi/internal/service/mocks"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(d Deps) *fiber.App {
	// app.Test connections come from 0.0.0.0, trusted here as the proxy.
	app := fiber.New(middleware.TrustProxies(fiber.Config{ErrorHandler: ErrorHandler(zap.NewNop())}, []string{"0.0.0.0"}))
	app.Use(middleware.RequestID())
	app.Use(middleware.ClientIP())
	RegisterRoutes(app, d)
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, target string, body any) (*http.Response, map[string]any) {
	t.Helper()
	var r io.Reader
	if body != nil {
		switch b := body.(type) {
		case string:
			r = bytes.NewBufferString(b)
		default:
			raw, err := json.Marshal(b)
			require.NoError(t, err)
			r = bytes.NewReader(raw)
		}
	}
	req := httptest.NewRequest(method, target, r)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req)
	require.NoError(t, err)

	var out map[string]any
	raw, _ := io.ReadAll(resp.Body)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &out), string(raw))
	}
	return resp, out
}

func TestLivenessProbe(t *testing.T) {
	app := fiber.New()
	app.Get("/healthz", LivenessProbe())

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestGetProjects(t *testing.T) {
	t.Run("featured", func(t *testing.T) {
		svc := new(serviceMocks.MockProjectService)
		svc.On("GetFeatured", mock.Anything).Return([]model.Project{
			{Slug: "a", Featured: true}, {Slug: "b", Featured: true},
		}, nil)
		app := newTestApp(Deps{Projects: svc})

		resp, body := doJSON(t, app, http.MethodGet, "/api/projects?type=featured", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		projects := body["projects"].([]any)
		require.Len(t, projects, 2)
		for _, p := range projects {
			assert.Equal(t, true, p.(map[string]any)["featured"])
		}
		svc.AssertNotCalled(t, "GetAll", mock.Anything)
	})

	t.Run("default lists all and tolerates unknown params", func(t *testing.T) {
		svc := new(serviceMocks.MockProjectService)
		svc.On("GetAll", mock.Anything).Return(nil, nil)
		app := newTestApp(Deps{Projects: svc})

		resp, body := doJSON(t, app, http.MethodGet, "/api/projects?foo=bar", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, []any{}, body["projects"])
	})

	t.Run("store error is sanitized", func(t *testing.T) {
		svc := new(serviceMocks.MockProjectService)
		svc.On("GetAll", mock.Anything).Return(nil, apperror.NewStoreUnavailable("mongodb", errors.New("server selection timeout at 10.0.0.5")))
		app := newTestApp(Deps{Projects: svc})

		resp, body := doJSON(t, app, http.MethodGet, "/api/projects?type=all", nil)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, map[string]any{"error": "Internal server error"}, body)
	})
}

func TestPostProjects(t *testing.T) {
	t.Run("increment views", func(t *testing.T) {
		svc := new(serviceMocks.MockProjectService)
		svc.On("IncrementViews", mock.Anything, "app").Return(&model.Project{Slug: "app", ViewCount: 3}, nil)
		app := newTestApp(Deps{Projects: svc})

		resp, body := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{"action": "increment_views", "slug": "app"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, "View count incremented", body["message"])
		assert.EqualValues(t, 3, body["project"].(map[string]any)["viewCount"])
	})

	t.Run("increment unknown slug", func(t *testing.T) {
		svc := new(serviceMocks.MockProjectService)
		svc.On("IncrementViews", mock.Anything, "nope").Return(nil, apperror.NewNotFound("project", "nope"))
		app := newTestApp(Deps{Projects: svc})

		resp, body := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{"action": "increment_views", "slug": "nope"})
		assert.Equal(t, http.StatusNotFound, resp.StatusCode)
		assert.Equal(t, `project "nope" not found`, body["error"])
	})

	t.Run("create", func(t *testing.T) {
		svc := new(serviceMocks.MockProjectService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in model.ProjectInput) bool {
			return in.Title == "T" && in.Year != nil && *in.Year == 2024 && len(in.Technologies) == 1
		})).Return(&model.Project{Slug: "t", Title: "T"}, nil)
		app := newTestApp(Deps{Projects: svc})

		resp, body := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{
			"action": "create", "title": "T", "description": "D", "technologies": []string{"Go"},
			"status": "planned", "year": 2024,
		})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "Project created successfully", body["message"])
		assert.Equal(t, "t", body["project"].(map[string]any)["slug"])
	})

	t.Run("create with missing fields", func(t *testing.T) {
		svc := new(serviceMocks.MockProjectService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperror.NewMissingFields("description", "year"))
		app := newTestApp(Deps{Projects: svc})

		resp, body := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{"action": "create", "title": "T"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields: description, year", body["error"])
	})

	t.Run("invalid action", func(t *testing.T) {
		app := newTestApp(Deps{Projects: new(serviceMocks.MockProjectService)})
		resp, body := doJSON(t, app, http.MethodPost, "/api/projects", map[string]any{"action": "delete"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid action. Use: increment_views, create", body["error"])
	})

	t.Run("malformed body", func(t *testing.T) {
		app := newTestApp(Deps{Projects: new(serviceMocks.MockProjectService)})
		resp, body := doJSON(t, app, http.MethodPost, "/api/projects", `{"action":`)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid JSON body", body["error"])
	})
}

func TestGetAnalytics(t *testing.T) {
	t.Run("unknown type", func(t *testing.T) {
		app := newTestApp(Deps{Analytics: new(serviceMocks.MockAnalyticsService)})
		resp, body := doJSON(t, app, http.MethodGet, "/api/analytics?type=unknown", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, map[string]any{"error": "Invalid analytics type. Use: popular-pages"}, body)
	})

	t.Run("unparseable limit falls back to default", func(t *testing.T) {
		svc := new(serviceMocks.MockAnalyticsService)
		svc.On("PopularPages", mock.Anything, 10).Return([]model.PageCount{{Path: "/", Views: 9}, {Path: "/blog", Views: 2}}, nil)
		app := newTestApp(Deps{Analytics: svc})

		resp, body := doJSON(t, app, http.MethodGet, "/api/analytics?type=popular-pages&limit=lots", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		pages := body["popularPages"].([]any)
		require.Len(t, pages, 2)
		assert.Equal(t, "/", pages[0].(map[string]any)["path"])
		svc.AssertExpectations(t)
	})

	t.Run("explicit limit", func(t *testing.T) {
		svc := new(serviceMocks.MockAnalyticsService)
		svc.On("PopularPages", mock.Anything, 3).Return([]model.PageCount{}, nil)
		app := newTestApp(Deps{Analytics: svc})

		resp, _ := doJSON(t, app, http.MethodGet, "/api/analytics?type=popular-pages&limit=3", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		svc.AssertExpectations(t)
	})
}

func TestPostAnalytics(t *testing.T) {
	t.Run("records with headers", func(t *testing.T) {
		svc := new(serviceMocks.MockAnalyticsService)
		svc.On("RecordPageView", mock.Anything, "/about", "test-agent", "203.0.113.9").
			Return(&model.PageView{ID: 1, Path: "/about"}, nil)
		app := newTestApp(Deps{Analytics: svc})

		req := httptest.NewRequest(http.MethodPost, "/api/analytics", bytes.NewBufferString(`{"event":"page_view","path":"/about"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("User-Agent", "test-agent")
		req.Header.Set("X-Forwarded-For", "203.0.113.9, 10.0.0.1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		var body recordPageViewResponse
		require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
		assert.True(t, body.Success)
		assert.Equal(t, "Page view recorded", body.Message)
		svc.AssertExpectations(t)
	})

	t.Run("invalid event", func(t *testing.T) {
		app := newTestApp(Deps{Analytics: new(serviceMocks.MockAnalyticsService)})
		resp, body := doJSON(t, app, http.MethodPost, "/api/analytics", map[string]any{"event": "click", "path": "/"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Invalid event type. Use: page_view", body["error"])
	})

	t.Run("missing path", func(t *testing.T) {
		svc := new(serviceMocks.MockAnalyticsService)
		svc.On("RecordPageView", mock.Anything, "", mock.Anything, mock.Anything).Return(nil, apperror.NewValidation("Path is required"))
		app := newTestApp(Deps{Analytics: svc})

		resp, body := doJSON(t, app, http.MethodPost, "/api/analytics", map[string]any{"event": "page_view"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Path is required", body["error"])
	})

	t.Run("rate limited", func(t *testing.T) {
		svc := new(serviceMocks.MockAnalyticsService)
		svc.On("RecordPageView", mock.Anything, "/", mock.Anything, mock.Anything).Return(&model.PageView{Path: "/"}, nil)
		app := newTestApp(Deps{Analytics: svc, WriteLimit: middleware.RateLimit(0.001, 1)})

		resp, _ := doJSON(t, app, http.MethodPost, "/api/analytics", map[string]any{"event": "page_view", "path": "/"})
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		resp, body := doJSON(t, app, http.MethodPost, "/api/analytics", map[string]any{"event": "page_view", "path": "/"})
		assert.Equal(t, http.StatusTooManyRequests, resp.StatusCode)
		assert.Equal(t, "Rate limit exceeded", body["error"])
	})
}

func TestComments(t *testing.T) {
	t.Run("missing postSlug", func(t *testing.T) {
		app := newTestApp(Deps{Comments: new(serviceMocks.MockCommentService)})
		resp, body := doJSON(t, app, http.MethodGet, "/api/comments", nil)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "postSlug is required", body["error"])
	})

	t.Run("post forwards client ip", func(t *testing.T) {
		svc := new(serviceMocks.MockCommentService)
		svc.On("Create", mock.Anything, mock.MatchedBy(func(in model.CommentInput) bool {
			return in.IPAddress == "198.51.100.1" && in.PostSlug == "p1"
		})).Return(&model.Comment{ID: 1, PostSlug: "p1", IPAddress: "198.51.100.1", Replies: []model.Comment{}}, nil)
		app := newTestApp(Deps{Comments: svc})

		req := httptest.NewRequest(http.MethodPost, "/api/comments", bytes.NewBufferString(`{"postSlug":"p1","authorName":"A","commentText":"hi"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("X-Forwarded-For", "198.51.100.1")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, http.StatusOK, resp.StatusCode)

		raw, _ := io.ReadAll(resp.Body)
		assert.NotContains(t, string(raw), "198.51.100.1", "ip is never exposed")
		assert.Contains(t, string(raw), "awaiting moderation")
	})

	t.Run("post validation error", func(t *testing.T) {
		svc := new(serviceMocks.MockCommentService)
		svc.On("Create", mock.Anything, mock.Anything).Return(nil, apperror.NewMissingFields("authorName"))
		app := newTestApp(Deps{Comments: svc})

		resp, body := doJSON(t, app, http.MethodPost, "/api/comments", map[string]any{"postSlug": "p1", "commentText": "x"})
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
		assert.Equal(t, "Missing required fields: authorName", body["error"])
	})
}

func TestHealthCheck(t *testing.T) {
	t.Run("one store down", func(t *testing.T) {
		svc := new(serviceMocks.MockHealthService)
		svc.On("Check", mock.Anything).Return(model.DatabaseHealth{
			Stores:    map[string]bool{"postgres": true, "mongodb": false, "sqlite": true},
			Errors:    map[string]string{"mongodb": "connection refused"},
			CheckedAt: time.Now(),
		}, nil)
		app := newTestApp(Deps{Health: svc})

		resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
		assert.Equal(t, http.StatusOK, resp.StatusCode)
		assert.Equal(t, "degraded", body["status"])
		assert.NotEmpty(t, body["timestamp"])
		assert.Equal(t, map[string]any{"postgres": true, "mongodb": false, "sqlite": true}, body["databases"])
		assert.Equal(t, map[string]any{"healthy": 2.0, "unhealthy": 1.0, "total": 3.0}, body["summary"])
		assert.NotContains(t, body, "errors")
	})

	t.Run("all healthy", func(t *testing.T) {
		svc := new(serviceMocks.MockHealthService)
		svc.On("Check", mock.Anything).Return(model.DatabaseHealth{Stores: map[string]bool{"postgres": true}}, nil)
		app := newTestApp(Deps{Health: svc})

		_, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
		assert.Equal(t, "ok", body["status"])
	})

	t.Run("machinery failure", func(t *testing.T) {
		svc := new(serviceMocks.MockHealthService)
		svc.On("Check", mock.Anything).Return(model.DatabaseHealth{}, service.ErrNoProbes)
		app := newTestApp(Deps{Health: svc})

		resp, body := doJSON(t, app, http.MethodGet, "/api/health", nil)
		assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
		assert.Equal(t, "Health check failed", body["error"])
	})
}

type stubContent map[string]any

func (s stubContent) Get(_ context.Context, name string) (any, error) {
	if v, ok := s[name]; ok {
		return v, nil
	}
	return nil, content.ErrUnknownContent
}

type stubTracker struct{ events []service.PageViewEvent }

func (s *stubTracker) Dispatch(ev service.PageViewEvent) bool {
	s.events = append(s.events, ev)
	return true
}

func TestGetContent(t *testing.T) {
	tracker := &stubTracker{}
	app := newTestApp(Deps{
		Content: stubContent{"skills": []content.Skill{{Name: "Go", Category: "languages", Level: 5}}},
		Tracker: tracker,
	})

	resp, body := doJSON(t, app, http.MethodGet, "/api/content/skills", nil)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	require.Len(t, body["skills"], 1)
	require.Len(t, tracker.events, 1)
	assert.Equal(t, "/content/skills", tracker.events[0].Path)

	resp, body = doJSON(t, app, http.MethodGet, "/api/content/secrets", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Content not found", body["error"])
	assert.Len(t, tracker.events, 1)
}

func TestErrorHandler(t *testing.T) {
	app := newTestApp(Deps{})

	resp, body := doJSON(t, app, http.MethodGet, "/api/nowhere", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "Not found", body["error"])
	assert.NotEmpty(t, resp.Header.Get(middleware.RequestIDHeader))
}

func TestMetricsEndpoint(t *testing.T) {
	reg := prometheus.NewRegistry()
	c := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "test"})
	reg.MustRegister(c)
	c.Inc()
	app := newTestApp(Deps{Gatherer: reg})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	raw, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(raw), "probe_total 1")
}
