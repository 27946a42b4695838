package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portfolioapi/internal/model"
	"portfolioapi/internal/service"
)

const (
	actionIncrementViews = "increment_views"
	actionCreate         = "create"
)

type projectsResponse struct {
	Projects []model.Project `json:"projects"`
}

type projectActionRequest struct {
	Action string `json:"action"`
	model.ProjectInput
}

type incrementViewsResponse struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Project *model.Project `json:"project"`
}

type createProjectResponse struct {
	Project *model.Project `json:"project"`
	Message string         `json:"message"`
}

// GetProjects lists projects.
//
// @Summary List projects
// @Param type query string false "featured or all"
// @Success 200 {object} projectsResponse
// @Failure 500 {object} errorPayload
// @Router /api/projects [get]
func GetProjects(svc service.ProjectService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var (
			out []model.Project
			err error
		)
		if c.Query("type") == "featured" {
			out, err = svc.GetFeatured(c.UserContext())
		} else {
			out, err = svc.GetAll(c.UserContext())
		}
		if err != nil {
			return respondError(c, log, err)
		}
		if out == nil {
			out = []model.Project{}
		}
		return c.JSON(projectsResponse{Projects: out})
	}
}

// PostProjects creates a project or increments its view counter.
//
// @Summary Create a project or count a view
// @Accept json
// @Param body body projectActionRequest true "action: create or increment_views"
// @Success 200 {object} createProjectResponse
// @Failure 400 {object} errorPayload
// @Failure 404 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/projects [post]
func PostProjects(svc service.ProjectService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var req projectActionRequest
		if err := c.BodyParser(&req); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid JSON body")
		}

		switch req.Action {
		case actionIncrementViews:
			p, err := svc.IncrementViews(c.UserContext(), req.Slug)
			if err != nil {
				return respondError(c, log, err)
			}
			return c.JSON(incrementViewsResponse{Success: true, Message: "View count incremented", Project: p})
		case actionCreate:
			p, err := svc.Create(c.UserContext(), req.ProjectInput)
			if err != nil {
				return respondError(c, log, err)
			}
			return c.JSON(createProjectResponse{Project: p, Message: "Project created successfully"})
		default:
			return writeError(c, fiber.StatusBadRequest, "Invalid action. Use: increment_views, create")
		}
	}
}
