package main

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// registerRoutes registers all HTTP routes
func registerRoutes(app *fiber.App, deps *Dependencies) {
	h := deps.Handlers // Shorthand for handlers

	// Probes, metrics and documentation (no auth required)
	h.Health.RegisterRoutes(app)
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	h.Docs.RegisterRoutes(app)

	api := app.Group("/api")
	h.HDCA.RegisterRoutes(api, deps.AuthMiddleware)
}
