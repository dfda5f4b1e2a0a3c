package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// SecurityHeaders sets the response headers appropriate for a JSON API that
// authenticates with cookies.
func SecurityHeaders() fiber.Handler {
	return func(c *fiber.Ctx) error {
		c.Set("X-Content-Type-Options", "nosniff")
		c.Set("X-Frame-Options", "DENY")
		c.Set("Referrer-Policy", "no-referrer")
		c.Set("Cache-Control", "no-store")
		return c.Next()
	}
}
