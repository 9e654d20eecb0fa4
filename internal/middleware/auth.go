package middleware

import (
	"context"
	"strings"

	"brotech_admin/internal/session"
	"brotech_admin/pkg/utils/jwt"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	LocalsClaims   = "user"
	LocalsIdentity = "identity"
)

type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*session.Identity, *jwt.Claims, error)
}

// AuthMiddleware Bearer token'ı doğrular ve operatörü request context'ine koyar
func AuthMiddleware(a Authenticator) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || strings.TrimSpace(token) == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Missing or malformed authorization header",
			})
		}

		id, claims, err := a.Authenticate(c.UserContext(), strings.TrimSpace(token))
		if err != nil {
			zap.L().Debug("authentication failed", zap.String("path", c.Path()), zap.Error(err))
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
				"error": "Your session is invalid or has expired. Please sign in again.",
			})
		}

		c.Locals(LocalsClaims, claims)
		c.Locals(LocalsIdentity, id)
		c.SetUserContext(session.WithIdentity(c.UserContext(), id))
		return c.Next()
	}
}

// Claims returns the token claims set by AuthMiddleware.
func Claims(c *fiber.Ctx) *jwt.Claims {
	claims, _ := c.Locals(LocalsClaims).(*jwt.Claims)
	return claims
}

// Identity returns the operator set by AuthMiddleware.
func Identity(c *fiber.Ctx) *session.Identity {
	id, _ := c.Locals(LocalsIdentity).(*session.Identity)
	return id
}
