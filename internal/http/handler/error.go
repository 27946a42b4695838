package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"portfolioapi/internal/apperror"
	"portfolioapi/internal/http/middleware"
)

// errorPayload is the body of every error response.
type errorPayload struct {
	Error string `json:"error"`
}

const internalErrorMessage = "Internal server error"

// writeError writes {"error": message} with status.
func writeError(c *fiber.Ctx, status int, message string) error {
	return c.Status(status).JSON(errorPayload{Error: message})
}

// respondError maps a service error onto a status and a safe message.
// Store and unexpected errors are logged in full and answered generically.
func respondError(c *fiber.Ctx, log *zap.Logger, err error) error {
	switch {
	case apperror.IsValidation(err):
		return writeError(c, fiber.StatusBadRequest, err.Error())
	case apperror.IsNotFound(err):
		return writeError(c, fiber.StatusNotFound, err.Error())
	}

	log.Error("request failed",
		zap.String("request_id", middleware.RequestIDFromCtx(c)),
		zap.String("method", c.Method()),
		zap.String("path", c.Path()),
		zap.Error(err),
	)
	return writeError(c, fiber.StatusInternalServerError, internalErrorMessage)
}

// ErrorHandler returns a Fiber global error handler producing the same
// error body as the handlers.
func ErrorHandler(log *zap.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if !errors.As(err, &fe) {
			return respondError(c, log, err)
		}

		switch fe.Code {
		case fiber.StatusBadRequest:
			return writeError(c, fe.Code, "Bad request")
		case fiber.StatusNotFound:
			return writeError(c, fe.Code, "Not found")
		case fiber.StatusMethodNotAllowed:
			return writeError(c, fe.Code, "Method not allowed")
		case fiber.StatusRequestEntityTooLarge:
			return writeError(c, fe.Code, "Request body too large")
		}
		if fe.Code < fiber.StatusInternalServerError {
			return writeError(c, fe.Code, fe.Message)
		}
		log.Error("request failed", zap.String("path", c.Path()), zap.Error(err))
		return writeError(c, fe.Code, internalErrorMessage)
	}
}
