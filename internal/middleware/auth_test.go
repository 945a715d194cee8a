package middleware

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/histcollect/histcollect/internal/config"
	"github.com/histcollect/histcollect/internal/domain"
)

var testJWTConfig = config.JWTConfig{
	Secret: "test-secret",
	Issuer: "collections",
	Leeway: time.Second,
}

func signToken(t *testing.T, method jwt.SigningMethod, secret string, claims Claims) string {
	t.Helper()
	token, err := jwt.NewWithClaims(method, claims).SignedString([]byte(secret))
	require.NoError(t, err)
	return token
}

func validClaims() Claims {
	return Claims{
		UserID: 12,
		Email:  "user@example.org",
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    "collections",
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}
}

func TestAuthMiddleware_ParseToken(t *testing.T) {
	m := NewAuthMiddleware(testJWTConfig)

	t.Run("valid token", func(t *testing.T) {
		claims := validClaims()
		claims.Admin = true
		user, err := m.ParseToken(signToken(t, jwt.SigningMethodHS256, "test-secret", claims))
		require.NoError(t, err)
		assert.Equal(t, &domain.User{ID: 12, Email: "user@example.org", Admin: true}, user)
	})

	tests := []struct {
		name   string
		secret string
		mutate func(*Claims)
	}{
		{name: "wrong secret", secret: "other-secret"},
		{name: "expired", secret: "test-secret", mutate: func(c *Claims) {
			c.ExpiresAt = jwt.NewNumericDate(time.Now().Add(-time.Hour))
		}},
		{name: "wrong issuer", secret: "test-secret", mutate: func(c *Claims) {
			c.Issuer = "someone-else"
		}},
		{name: "missing user id", secret: "test-secret", mutate: func(c *Claims) {
			c.UserID = 0
		}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			claims := validClaims()
			if tt.mutate != nil {
				tt.mutate(&claims)
			}
			_, err := m.ParseToken(signToken(t, jwt.SigningMethodHS256, tt.secret, claims))
			assert.Error(t, err)
		})
	}

	t.Run("garbage", func(t *testing.T) {
		_, err := m.ParseToken("not-a-token")
		assert.Error(t, err)
	})
}

func TestAuthMiddleware_RequireJWT(t *testing.T) {
	m := NewAuthMiddleware(testJWTConfig)
	app := fiber.New()
	var seen *domain.User
	app.Get("/test", m.RequireJWT(), func(c *fiber.Ctx) error {
		seen, _ = GetUser(c)
		return c.SendStatus(fiber.StatusOK)
	})

	t.Run("no header", func(t *testing.T) {
		resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("invalid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer nope")
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
	})

	t.Run("valid token", func(t *testing.T) {
		req := httptest.NewRequest("GET", "/test", nil)
		req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS256, "test-secret", validClaims()))
		resp, err := app.Test(req)
		require.NoError(t, err)
		assert.Equal(t, fiber.StatusOK, resp.StatusCode)
		require.NotNil(t, seen)
		assert.Equal(t, int64(12), seen.ID)
	})
}

func TestAuthMiddleware_OptionalAuth(t *testing.T) {
	m := NewAuthMiddleware(testJWTConfig)
	app := fiber.New()
	var authenticated bool
	app.Get("/test", m.OptionalAuth(), func(c *fiber.Ctx) error {
		_, authenticated = GetUser(c)
		return c.SendStatus(fiber.StatusOK)
	})

	resp, err := app.Test(httptest.NewRequest("GET", "/test", nil))
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.False(t, authenticated)

	req := httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, jwt.SigningMethodHS512, "test-secret", validClaims()))
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.True(t, authenticated)

	req = httptest.NewRequest("GET", "/test", nil)
	req.Header.Set("Authorization", "Bearer broken")
	resp, err = app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
}
