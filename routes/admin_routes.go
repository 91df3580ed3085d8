package routes

import (
	"github.com/gofiber/fiber/v2"

	"tourmarket/handlers"
	"tourmarket/middleware"
)

func AdminRoutes(app *fiber.App, h *handlers.AdminHandler) {
	api := app.Group("/api/v1")

	admin := api.Group("/admin", middleware.Protected(), middleware.AdminRequired())

	admin.Get("/change-requests/pending", h.GetPendingChangeRequests)
	admin.Put("/change-requests/:id", h.ProcessChangeRequest)

	admin.Get("/guides/pending", h.GetPendingGuideApprovals)
	admin.Put("/guides/:id/approval", h.UpdateGuideApprovalStatus)

	admin.Put("/programs/:id/approval", h.UpdateProgramApprovalStatus)
}
