package dto

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/histcollect/histcollect/internal/validator"
)

// RequestError is a malformed or invalid request, rendered as a 400
type RequestError struct {
	Kind    string
	Message string
	Errors  validator.ValidationErrors
}

// Error implements the error interface
func (e *RequestError) Error() string {
	if len(e.Errors) > 0 {
		return e.Message + ": " + e.Errors.Error()
	}
	return e.Message
}

// ParseAndValidate parses the request body into the given struct and validates it.
// A failure is returned as a *RequestError; see WriteError.
func ParseAndValidate(c *fiber.Ctx, v any) error {
	if err := c.BodyParser(v); err != nil {
		return &RequestError{Kind: "Bad Request", Message: "Invalid request body: " + err.Error()}
	}
	return validate(v)
}

// ParseQueryAndValidate parses the query string into the given struct and validates it
func ParseQueryAndValidate(c *fiber.Ctx, v any) error {
	if err := c.QueryParser(v); err != nil {
		return &RequestError{Kind: "Bad Request", Message: "Invalid query parameters: " + err.Error()}
	}
	return validate(v)
}

func validate(v any) error {
	err := validator.Validate(v)
	if err == nil {
		return nil
	}
	var validationErrors validator.ValidationErrors
	if errors.As(err, &validationErrors) {
		return &RequestError{Kind: "Validation Error", Message: "Request validation failed", Errors: validationErrors}
	}
	return &RequestError{Kind: "Bad Request", Message: err.Error()}
}

// WriteError writes the 400 response for a parse or validation failure.
// Other errors are returned unchanged.
func WriteError(c *fiber.Ctx, err error) error {
	var reqErr *RequestError
	if !errors.As(err, &reqErr) {
		return err
	}

	body := fiber.Map{
		"error":   reqErr.Kind,
		"message": reqErr.Message,
	}
	if len(reqErr.Errors) > 0 {
		body["errors"] = reqErr.Errors
	}
	return c.Status(fiber.StatusBadRequest).JSON(body)
}
