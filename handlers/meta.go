package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
)

// ServerTime returns the server's current time in UTC
func ServerTime(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"time": time.Now().UTC().Format(time.RFC3339),
	})
}
