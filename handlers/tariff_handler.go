package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourmarket/services"
)

type TariffHandler struct {
	tariffs *services.TariffService
}

func NewTariffHandler(tariffs *services.TariffService) *TariffHandler {
	return &TariffHandler{tariffs: tariffs}
}

type CreateTariffRequest struct {
	Title          string  `json:"title" validate:"required"`
	Description    string  `json:"description"`
	MinPeople      int     `json:"min_people" validate:"required,gte=1"`
	MaxPeople      int     `json:"max_people" validate:"required,gte=1"`
	PricePerPerson float64 `json:"price_per_person" validate:"required,gt=0"`
}

type UpdateTariffRequest struct {
	Title          *string  `json:"title"`
	Description    *string  `json:"description"`
	MinPeople      *int     `json:"min_people"`
	MaxPeople      *int     `json:"max_people"`
	PricePerPerson *float64 `json:"price_per_person"`
	IsActive       *bool    `json:"is_active"`
}

func (h *TariffHandler) GetProgramTariffs(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program ID"})
	}
	tiers, err := h.tariffs.GetProgramTariffs(programID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tiers)
}

func (h *TariffHandler) CreateProgramTariff(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	programID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program ID"})
	}

	var req CreateTariffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tier, err := h.tariffs.CreateProgramTariff(programID, userID, services.CreateTariffInput{
		Title:          req.Title,
		Description:    req.Description,
		MinPeople:      req.MinPeople,
		MaxPeople:      req.MaxPeople,
		PricePerPerson: req.PricePerPerson,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(tier)
}

func (h *TariffHandler) UpdateProgramTariff(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	tariffID, err := uuid.Parse(c.Params("tariffId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tariff ID"})
	}

	var req UpdateTariffRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	tier, err := h.tariffs.UpdateProgramTariff(tariffID, userID, services.UpdateTariffInput{
		Title:          req.Title,
		Description:    req.Description,
		MinPeople:      req.MinPeople,
		MaxPeople:      req.MaxPeople,
		PricePerPerson: req.PricePerPerson,
		IsActive:       req.IsActive,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(tier)
}

func (h *TariffHandler) DeleteProgramTariff(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	tariffID, err := uuid.Parse(c.Params("tariffId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid tariff ID"})
	}

	if err := h.tariffs.DeleteProgramTariff(tariffID, userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Pricing tier deleted successfully"})
}
