package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourmarket/services"
)

type AdminHandler struct {
	guides   *services.GuideService
	programs *services.ProgramService
}

func NewAdminHandler(guides *services.GuideService, programs *services.ProgramService) *AdminHandler {
	return &AdminHandler{guides: guides, programs: programs}
}

type ProcessChangeRequestBody struct {
	Approve bool    `json:"approve"`
	Comment *string `json:"comment"`
}

type ApprovalBody struct {
	Approved bool `json:"approved"`
}

func (h *AdminHandler) GetPendingChangeRequests(c *fiber.Ctx) error {
	requests, err := h.guides.GetPendingChangeRequests()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(requests)
}

func (h *AdminHandler) ProcessChangeRequest(c *fiber.Ctx) error {
	requestID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request ID"})
	}

	var body ProcessChangeRequestBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	request, err := h.guides.ProcessChangeRequest(requestID, body.Approve, body.Comment)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(request)
}

func (h *AdminHandler) GetPendingGuideApprovals(c *fiber.Ctx) error {
	guides, err := h.guides.GetPendingGuideApprovals()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(guides)
}

func (h *AdminHandler) UpdateGuideApprovalStatus(c *fiber.Ctx) error {
	guideID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid guide ID"})
	}

	var body ApprovalBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	guide, err := h.guides.UpdateGuideApprovalStatus(guideID, body.Approved)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(guide)
}

func (h *AdminHandler) UpdateProgramApprovalStatus(c *fiber.Ctx) error {
	programID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid program ID"})
	}

	var body ApprovalBody
	if err := c.BodyParser(&body); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	program, err := h.programs.UpdateProgramApprovalStatus(programID, body.Approved)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(program)
}
