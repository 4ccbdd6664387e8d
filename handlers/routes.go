package handlers

import (
	"net/http"

	"github.com/mishrapravin114/developers-assessment/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
)

// SetupRoutes mounts the API on app. metrics may be nil to skip /metrics.
func SetupRoutes(app *fiber.App, metrics http.Handler) {
	app.Get("/healthz", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	if metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(metrics))
	}

	api := app.Group("/api/v1", middleware.RequireAuth)

	api.Get("/worklogs", ListWorklogs)
	api.Get("/worklogs/:id/amount", GetWorklogAmount)
	api.Get("/users/:id/remittances", GetUserRemittances)
	api.Post("/remittances/generate", middleware.RequireSuperuser, GenerateRemittances)
}
