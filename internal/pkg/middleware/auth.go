package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/matchpro/platform/internal/pkg/usercontext"
)

// HeaderAuthUser is set by the identity-aware gateway after it has verified
// the caller's session token.
const HeaderAuthUser = "X-Auth-User"

// RequireUser rejects requests without a gateway-authenticated user id and
// attaches the user context for downstream handlers.
func RequireUser() fiber.Handler {
	return func(c *fiber.Ctx) error {
		userID := strings.TrimSpace(c.Get(HeaderAuthUser))
		if userID == "" {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Missing authenticated user"})
		}
		if _, err := uuid.Parse(userID); err != nil {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "unauthorized", "message": "Invalid user id"})
		}

		usercontext.SetUserContext(c, usercontext.UserContext{
			UserID:          userID,
			IsAuthenticated: true,
		})
		return c.Next()
	}
}
