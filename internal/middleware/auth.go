package middleware

import (
	"assetrail-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

const userLocal = "user"

// RequireAuth ensures a user is in the session. Returns 401 with standard error format if not.
func RequireAuth() fiber.Handler {
	return func(c *fiber.Ctx) error {
		user := c.Locals(userLocal)
		if user == nil {
			return response.Unauthorized(c, "Unauthorized")
		}
		// Attach auth context for handlers (same key)
		c.Locals("auth", user)
		return c.Next()
	}
}

// GetUser returns the session user from Locals (nil if not logged in).
func GetUser(c *fiber.Ctx) interface{} {
	return c.Locals(userLocal)
}

// GetActorAddress returns the session user's ledger address, empty when not
// logged in or when the session predates address support.
func GetActorAddress(c *fiber.Ctx) string {
	m, ok := c.Locals(userLocal).(map[string]interface{})
	if !ok {
		return ""
	}
	addr, _ := m["address"].(string)
	return addr
}
