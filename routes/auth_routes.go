package routes

import (
	"github.com/gofiber/fiber/v2"

	"tourmarket/handlers"
	"tourmarket/middleware"
)

func AuthRoutes(app *fiber.App, h *handlers.AuthHandler) {
	api := app.Group("/api/v1")

	auth := api.Group("/auth")
	auth.Post("/telegram", h.TelegramAuth)
	auth.Post("/admin/login", h.AdminLogin)
	auth.Get("/me", middleware.Protected(), h.Me)
}
