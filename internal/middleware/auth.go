package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"

	"github.com/histcollect/histcollect/internal/config"
	"github.com/histcollect/histcollect/internal/domain"
)

const localUser = "user"

// Claims are the bearer token claims identifying a user
type Claims struct {
	UserID int64  `json:"uid"`
	Email  string `json:"email,omitempty"`
	Admin  bool   `json:"admin,omitempty"`
	jwt.RegisteredClaims
}

// AuthMiddleware authenticates requests with HMAC-signed bearer tokens
type AuthMiddleware struct {
	secret []byte
	parser *jwt.Parser
}

// NewAuthMiddleware creates a new auth middleware
func NewAuthMiddleware(cfg config.JWTConfig) *AuthMiddleware {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg(), jwt.SigningMethodHS384.Alg(), jwt.SigningMethodHS512.Alg()}),
		jwt.WithLeeway(cfg.Leeway),
	}
	if cfg.Issuer != "" {
		opts = append(opts, jwt.WithIssuer(cfg.Issuer))
	}

	return &AuthMiddleware{
		secret: []byte(cfg.Secret),
		parser: jwt.NewParser(opts...),
	}
}

// ParseToken validates a token and returns the user it identifies
func (m *AuthMiddleware) ParseToken(tokenString string) (*domain.User, error) {
	claims := &Claims{}
	_, err := m.parser.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}
	if claims.UserID <= 0 {
		return nil, errors.New("invalid token: missing user id")
	}

	return &domain.User{
		ID:    claims.UserID,
		Email: claims.Email,
		Admin: claims.Admin,
	}, nil
}

// RequireJWT rejects requests without a valid bearer token
func (m *AuthMiddleware) RequireJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Authorization header required",
			})
		}

		user, err := m.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
		}

		SetUser(c, user)
		return c.Next()
	}
}

// OptionalAuth sets the user when a valid token is present and otherwise
// continues anonymously. A present but invalid token is still rejected.
func (m *AuthMiddleware) OptionalAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := extractBearerToken(c)
		if token == "" {
			return c.Next()
		}

		user, err := m.ParseToken(token)
		if err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error":   "Unauthorized",
				"message": "Invalid or expired token",
			})
		}

		SetUser(c, user)
		return c.Next()
	}
}

// extractBearerToken extracts the token from the Authorization header
func extractBearerToken(c *fiber.Ctx) string {
	auth := c.Get(fiber.HeaderAuthorization)
	if token, ok := strings.CutPrefix(auth, "Bearer "); ok {
		return strings.TrimSpace(token)
	}
	return ""
}

// GetUser gets the authenticated user from context
func GetUser(c *fiber.Ctx) (*domain.User, bool) {
	user, ok := c.Locals(localUser).(*domain.User)
	return user, ok && user != nil
}

// SetUser stores the authenticated user in context
func SetUser(c *fiber.Ctx, user *domain.User) {
	c.Locals(localUser, user)
}
