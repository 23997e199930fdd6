package setup

import (
	"contact-book/app"
	"contact-book/handlers"

	"github.com/gofiber/fiber/v2"
)

// RegisterRoutes registers all application routes
func RegisterRoutes(fiberApp *fiber.App, application *app.App) {

	// Public routes
	fiberApp.Get("/health", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	fiberApp.Get("/api/time", handlers.ServerTime)

	// Contact API routes
	api := fiberApp.Group("/api")
	api.Get("/contacts", handlers.GetContacts(application))
	api.Post("/contacts", handlers.CreateContact(application))
	api.Put("/contacts/:id", handlers.UpdateContact(application))
	api.Delete("/contacts/:id", handlers.DeleteContact(application))
	api.Post("/contacts/:id/favorite", handlers.ToggleFavorite(application))
	api.Post("/contacts/import", handlers.ImportContacts(application))
}
