package testutil

import (
	"github.com/gofiber/fiber/v2"

	"github.com/histcollect/histcollect/internal/domain"
	"github.com/histcollect/histcollect/internal/middleware"
)

// TestUserMiddleware authenticates every request as user.
func TestUserMiddleware(user *domain.User) fiber.Handler {
	return func(c *fiber.Ctx) error {
		middleware.SetUser(c, user)
		return c.Next()
	}
}
