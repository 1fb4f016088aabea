package usercontext

import "github.com/gofiber/fiber/v2"

// ContextKey is the fiber.Ctx locals key holding the UserContext.
const ContextKey = "USER_CONTEXT"

// UserContext carries the gateway-authenticated identity through a request.
// The platform never authenticates requests itself; the identity provider in
// front of it does.
type UserContext struct {
	UserID          string
	IsAuthenticated bool
}

// GetUserContext returns the current request's user context, or a zero value
// for unauthenticated requests.
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(ContextKey).(UserContext); ok {
		return ctx
	}
	return UserContext{}
}

// SetUserContext attaches the user context to the request.
func SetUserContext(c *fiber.Ctx, ctx UserContext) {
	c.Locals(ContextKey, ctx)
}
