// file: internals/route/base_routes.go
package routes

import (
	"github.com/gofiber/fiber/v2"
)

func BaseRoutes(app *fiber.App) {
	app.Get("/", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Sekolahku API berjalan 🚀",
		})
	})
}
