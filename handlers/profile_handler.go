package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourmarket/models"
	"tourmarket/services"
)

type ProfileHandler struct {
	guides *services.GuideService
}

func NewProfileHandler(guides *services.GuideService) *ProfileHandler {
	return &ProfileHandler{guides: guides}
}

type RegisterGuideRequest struct {
	Bio         *string  `json:"bio"`
	PhoneNumber *string  `json:"phone_number"`
	Email       *string  `json:"email" validate:"omitempty,email"`
	Images      []string `json:"images"`
}

type UpdateGuideRequest struct {
	Bio            *string     `json:"bio"`
	NewImages      []string    `json:"new_images"`
	PhoneNumber    *string     `json:"phone_number"`
	Email          *string     `json:"email" validate:"omitempty,email"`
	IsActive       *bool       `json:"is_active"`
	ExistingImages []string    `json:"existing_images"`
	ProgramIDs     []uuid.UUID `json:"program_ids"`
	FirstName      *string     `json:"first_name"`
	LastName       *string     `json:"last_name"`
	Username       *string     `json:"username"`
}

func (h *ProfileHandler) RegisterGuide(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req RegisterGuideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	guide, err := h.guides.RegisterGuide(userID, services.RegisterGuideInput{
		Bio:         req.Bio,
		PhoneNumber: req.PhoneNumber,
		Email:       req.Email,
		Images:      req.Images,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"guide":   guide,
		"message": "Guide application submitted and pending admin approval.",
	})
}

// GetMyGuideProfile returns the caller's own guide profile.
func (h *ProfileHandler) GetMyGuideProfile(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	guide, err := h.guides.GetGuideProfile(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(guide)
}

// GetGuideProfile is the public guide page.
func (h *ProfileHandler) GetGuideProfile(c *fiber.Ctx) error {
	guideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid guide ID"})
	}
	guide, err := h.guides.GetGuideProfile(guideID)
	if err != nil || !guide.IsApproved {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Guide not found"})
	}
	return c.JSON(guide)
}

// UpdateGuideProfile applies a profile patch. Bio and newly uploaded images
// are routed through an admin change request; everything else lands
// immediately.
func (h *ProfileHandler) UpdateGuideProfile(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req UpdateGuideRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	// program_ids must be distinguishable between "absent" and "empty".
	var body map[string]interface{}
	_ = c.BodyParser(&body)
	_, hasProgramIDs := body["program_ids"]

	result, err := h.guides.UpdateGuide(userID, userID, services.GuideUpdateInput{
		Bio:            req.Bio,
		NewImages:      req.NewImages,
		PhoneNumber:    req.PhoneNumber,
		Email:          req.Email,
		IsActive:       req.IsActive,
		ExistingImages: req.ExistingImages,
		ProgramIDs:     req.ProgramIDs,
		HasProgramIDs:  hasProgramIDs,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Username:       req.Username,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(result)
}

// GetMyGuidePrograms lists the programs the guide has selected to offer.
func (h *ProfileHandler) GetMyGuidePrograms(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	guide, err := h.guides.GetGuideProfile(userID)
	if err != nil {
		return serviceError(c, err)
	}
	programs := guide.SelectedPrograms
	if programs == nil {
		programs = []*models.Program{}
	}
	return c.JSON(programs)
}
