package handler

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/histcollect/histcollect/internal/middleware"
	apperrors "github.com/histcollect/histcollect/internal/pkg/errors"
)

// ErrorResponse represents a standardized error response.
type ErrorResponse struct {
	Error   string            `json:"error"`
	Message string            `json:"message"`
	Code    string            `json:"code,omitempty"`
	Details map[string]string `json:"details,omitempty"`
}

// IDDecoder turns external id tokens back into internal ids
type IDDecoder interface {
	DecodeID(token string) (int64, error)
}

// errorResponse creates a standardized JSON error response.
func errorResponse(c *fiber.Ctx, statusCode int, message string) error {
	return c.Status(statusCode).JSON(ErrorResponse{
		Error:   errorName(statusCode),
		Message: message,
	})
}

func errorName(statusCode int) string {
	switch statusCode {
	case fiber.StatusBadRequest:
		return "Bad Request"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusForbidden:
		return "Forbidden"
	case fiber.StatusNotFound:
		return "Not Found"
	case fiber.StatusConflict:
		return "Conflict"
	case fiber.StatusInternalServerError:
		return "Internal Server Error"
	}
	return "Error"
}

// handleError maps an application error to its response. Server-side
// failures are logged and reported; their messages are not exposed.
func handleError(c *fiber.Ctx, logger *zap.Logger, err error) error {
	appErr := apperrors.GetAppError(err)
	if appErr == nil || appErr.StatusCode >= fiber.StatusInternalServerError {
		logger.Error("request failed",
			zap.Error(err),
			zap.String("request_id", middleware.GetRequestID(c)),
			zap.String("path", c.Path()),
		)
		middleware.CaptureError(c, err)

		resp := ErrorResponse{
			Error:   errorName(fiber.StatusInternalServerError),
			Message: "An unexpected error occurred",
		}
		if appErr != nil {
			resp.Code = appErr.Code
		}
		return c.Status(fiber.StatusInternalServerError).JSON(resp)
	}

	return c.Status(appErr.StatusCode).JSON(ErrorResponse{
		Error:   errorName(appErr.StatusCode),
		Message: appErr.Message,
		Code:    appErr.Code,
		Details: appErr.Details,
	})
}

// decodeParam decodes the encoded id in route parameter name
func decodeParam(c *fiber.Ctx, ids IDDecoder, name string) (int64, error) {
	token := c.Params(name)
	id, err := ids.DecodeID(token)
	if err != nil {
		return 0, apperrors.BadRequest("malformed id").
			WithDetail("param", name).
			WithError(err)
	}
	return id, nil
}
