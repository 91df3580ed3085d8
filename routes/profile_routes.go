package routes

import (
	"github.com/gofiber/fiber/v2"

	"tourmarket/handlers"
	"tourmarket/middleware"
)

func ProfileRoutes(app *fiber.App, profiles *handlers.ProfileHandler, reviews *handlers.ReviewHandler) {
	api := app.Group("/api/v1")

	guides := api.Group("/guides")
	guides.Post("/register", middleware.Protected(), profiles.RegisterGuide)

	me := guides.Group("/me", middleware.Protected(), middleware.GuideRequired())
	me.Get("", profiles.GetMyGuideProfile)
	me.Put("", profiles.UpdateGuideProfile)
	me.Get("/programs", profiles.GetMyGuidePrograms)

	// Public guide pages; registered after the static /me and /register paths.
	guides.Get("/:id/reviews", reviews.GetGuideReviews)
	guides.Get("/:id", profiles.GetGuideProfile)
}
