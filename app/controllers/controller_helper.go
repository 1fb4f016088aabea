package controllers

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"

	"github.com/matchpro/platform/internal/pkg/usercontext"
)

// HandlePing is the liveness probe for the API group.
func HandlePing(c *fiber.Ctx) error {
	return c.Status(fiber.StatusOK).JSON(fiber.Map{"message": "pong"})
}

// currentUserID returns the gateway-authenticated user id. The auth middleware
// guarantees it is set on protected routes.
func currentUserID(c *fiber.Ctx) string {
	return usercontext.GetUserContext(c).UserID
}

// queryInt parses an optional integer query parameter. A missing or empty
// parameter returns (nil, true); garbage returns ok=false.
func queryInt(c *fiber.Ctx, name string) (*int, bool) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return nil, false
	}
	return &v, true
}

// queryMulti collects every occurrence of a repeatable query parameter.
func queryMulti(c *fiber.Ctx, name string) []string {
	var values []string
	for _, v := range c.Context().QueryArgs().PeekMulti(name) {
		s := strings.TrimSpace(string(v))
		if s != "" {
			values = append(values, s)
		}
	}
	return values
}

// badRequest renders a client error, unwrapping validator messages into a
// field list when present.
func badRequest(c *fiber.Ctx, err error) error {
	var verrs validator.ValidationErrors
	if ok := isValidationError(err, &verrs); ok {
		fields := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, strings.ToLower(fe.Field()))
		}
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "invalid_request",
			"fields": fields,
		})
	}
	return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
		"error":   "invalid_request",
		"message": err.Error(),
	})
}

func isValidationError(err error, target *validator.ValidationErrors) bool {
	verrs, ok := err.(validator.ValidationErrors)
	if ok {
		*target = verrs
	}
	return ok
}
