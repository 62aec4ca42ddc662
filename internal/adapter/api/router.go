package api

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
)

func SetupRouter(app *fiber.App, handler *GenerateHandler) {
	app.Use(logger.New())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "healthy",
			"version": os.Getenv("APP_VERSION"),
			"env":     os.Getenv("ENV"),
		})
	})

	v1 := app.Group("/v1")
	v1.Post("/generate", handler.HandleGenerate)
	v1.Post("/speech", handler.HandleSpeech)
	v1.Get("/media/:id", handler.HandleMedia)
}
