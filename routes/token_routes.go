package routes

import (
	"github.com/gofiber/fiber/v2"

	"tourmarket/handlers"
	"tourmarket/middleware"
)

func TokenRoutes(app *fiber.App, h *handlers.TokenHandler) {
	api := app.Group("/api/v1")

	// Telegram posts payment updates here, no auth.
	api.Post("/payments/webhook", h.PaymentWebhook)

	tokens := api.Group("/tokens", middleware.Protected(), middleware.GuideRequired())
	tokens.Get("/packages", h.ListPackages)
	tokens.Post("/purchase", h.CreatePurchaseInvoice)
	tokens.Post("/spend", h.SpendTokens)
	tokens.Get("/balance", h.GetBalance)
	tokens.Get("/history", h.GetTransactionHistory)
}
