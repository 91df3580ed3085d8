package routes

import (
	"github.com/gofiber/fiber/v2"

	"tourmarket/handlers"
	"tourmarket/middleware"
)

func BookingRoutes(app *fiber.App, bookings *handlers.BookingHandler, reviews *handlers.ReviewHandler) {
	api := app.Group("/api/v1")

	booking := api.Group("/bookings", middleware.Protected())
	booking.Get("/me", bookings.GetMyBookings)
	booking.Post("", bookings.CreateBooking)
	booking.Get("/:id", bookings.GetBooking)
	booking.Put("/:id/status", bookings.UpdateBookingStatus)
	booking.Post("/:id/cancel", bookings.CancelBooking)

	booking.Post("/review", reviews.CreateReview)
}
