package main

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func TestErrorHandler(t *testing.T) {
	core, logs := observer.New(zap.ErrorLevel)
	app := fiber.New(fiber.Config{ErrorHandler: errorHandler(zap.New(core))})
	app.Get("/boom", func(c *fiber.Ctx) error { return errors.New("disk on fire") })

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/nowhere", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, 0, logs.Len())

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/boom", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "request error", logs.All()[0].Message)
}
