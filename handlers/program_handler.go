package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourmarket/services"
)

type ProgramHandler struct {
	programs *services.ProgramService
	auctions *services.AuctionService
}

func NewProgramHandler(programs *services.ProgramService, auctions *services.AuctionService) *ProgramHandler {
	return &ProgramHandler{programs: programs, auctions: auctions}
}

type CreateProgramRequest struct {
	Title        string                     `json:"title" validate:"required"`
	Description  string                     `json:"description"`
	BasePrice    float64                    `json:"base_price" validate:"required,gt=0"`
	DurationDays int                        `json:"duration_days"`
	BookingType  string                     `json:"booking_type"`
	Regions      []string                   `json:"regions"`
	Tags         []string                   `json:"tags"`
	Images       []string                   `json:"images"`
	Days         []services.ProgramDayInput `json:"days"`
}

func (h *ProgramHandler) ListPrograms(c *fiber.Ctx) error {
	programs, err := h.programs.ListPublishedPrograms()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(programs)
}

func (h *ProgramHandler) GetProgram(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program ID"})
	}
	program, err := h.programs.GetProgram(programID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(program)
}

func (h *ProgramHandler) CreateProgram(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateProgramRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	program, err := h.programs.CreateProgram(userID, services.CreateProgramInput{
		Title:        req.Title,
		Description:  req.Description,
		BasePrice:    req.BasePrice,
		DurationDays: req.DurationDays,
		BookingType:  req.BookingType,
		Regions:      req.Regions,
		Tags:         req.Tags,
		Images:       req.Images,
		Days:         req.Days,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(program)
}

// GetProgramAuctions lists the open auctions referencing a program.
func (h *ProgramHandler) GetProgramAuctions(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program ID"})
	}
	auctions, err := h.auctions.GetProgramAuctions(programID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(auctions)
}
