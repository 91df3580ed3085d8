package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourmarket/models"
	"tourmarket/services"
)

type BookingHandler struct {
	bookings *services.BookingService
	vouchers *services.VoucherService
}

func NewBookingHandler(bookings *services.BookingService, vouchers *services.VoucherService) *BookingHandler {
	return &BookingHandler{bookings: bookings, vouchers: vouchers}
}

type CreateBookingRequest struct {
	ProgramID      uuid.UUID  `json:"program_id" validate:"required"`
	StartDate      time.Time  `json:"start_date" validate:"required"`
	NumberOfPeople int        `json:"number_of_people" validate:"required,gt=0"`
	PricingTierID  *uuid.UUID `json:"pricing_tier_id"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required"`
}

func (h *BookingHandler) CreateBooking(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateBookingRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := h.bookings.CreateBooking(userID, services.CreateBookingInput{
		ProgramID:      req.ProgramID,
		StartDate:      req.StartDate,
		NumberOfPeople: req.NumberOfPeople,
		PricingTierID:  req.PricingTierID,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(booking)
}

func (h *BookingHandler) GetBooking(c *fiber.Ctx) error {
	userID, role, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	booking, err := h.bookings.GetBooking(bookingID, userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) GetMyBookings(c *fiber.Ctx) error {
	userID, role, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookings, err := h.bookings.GetUserBookings(userID, role)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bookings)
}

// UpdateBookingStatus transitions a booking. Confirmation triggers voucher
// generation in the background.
func (h *BookingHandler) UpdateBookingStatus(c *fiber.Ctx) error {
	userID, role, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	var req UpdateBookingStatusRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	booking, err := h.bookings.UpdateBookingStatus(bookingID, userID, role, req.Status)
	if err != nil {
		return serviceError(c, err)
	}

	if booking.Status == models.BookingStatusConfirmed {
		go h.vouchers.GenerateForBooking(booking.ID)
	}
	return c.JSON(booking)
}

func (h *BookingHandler) CancelBooking(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bookingID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid booking ID"})
	}

	if err := h.bookings.CancelBooking(bookingID, userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Booking cancelled successfully"})
}
