package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portfolioapi/internal/http/middleware"
	"portfolioapi/internal/model"
	"portfolioapi/internal/service"
)

type commentsResponse struct {
	Comments []model.Comment `json:"comments"`
}

type createCommentResponse struct {
	Comment *model.Comment `json:"comment"`
	Message string         `json:"message"`
}

// GetComments returns the threaded, approved comments of a post.
//
// @Summary List comments of a post
// @Param postSlug query string true "post slug"
// @Success 200 {object} commentsResponse
// @Failure 400 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/comments [get]
func GetComments(svc service.CommentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		slug := c.Query("postSlug")
		if slug == "" {
			return writeError(c, fiber.StatusBadRequest, "postSlug is required")
		}
		out, err := svc.GetByPost(c.UserContext(), slug)
		if err != nil {
			return respondError(c, log, err)
		}
		return c.JSON(commentsResponse{Comments: out})
	}
}

// PostComments submits a comment.
//
// @Summary Submit a comment
// @Accept json
// @Param body body model.CommentInput true "comment"
// @Success 200 {object} createCommentResponse
// @Failure 400 {object} errorPayload
// @Failure 429 {object} errorPayload
// @Failure 500 {object} errorPayload
// @Router /api/comments [post]
func PostComments(svc service.CommentService, log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in model.CommentInput
		if err := c.BodyParser(&in); err != nil {
			return writeError(c, fiber.StatusBadRequest, "Invalid JSON body")
		}
		in.IPAddress = middleware.ClientIPFromCtx(c)

		cm, err := svc.Create(c.UserContext(), in)
		if err != nil {
			return respondError(c, log, err)
		}
		msg := "Comment submitted and awaiting moderation"
		if cm.IsApproved {
			msg = "Comment posted successfully"
		}
		return c.JSON(createCommentResponse{Comment: cm, Message: msg})
	}
}
