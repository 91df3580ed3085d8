package handlers

import (
	"log"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourmarket/payments"
	"tourmarket/services"
	"tourmarket/utils"
)

type TokenHandler struct {
	tokens *services.TokenService
}

func NewTokenHandler(tokens *services.TokenService) *TokenHandler {
	return &TokenHandler{tokens: tokens}
}

type PurchaseTokensRequest struct {
	PackageID uuid.UUID `json:"package_id" validate:"required"`
}

type SpendTokensRequest struct {
	Amount      int    `json:"amount" validate:"required,gt=0"`
	Description string `json:"description" validate:"required"`
}

// telegramPaymentUpdate is the slice of the bot webhook payload we care
// about.
type telegramPaymentUpdate struct {
	Message struct {
		SuccessfulPayment *struct {
			InvoicePayload string `json:"invoice_payload"`
		} `json:"successful_payment"`
	} `json:"message"`
}

func (h *TokenHandler) ListPackages(c *fiber.Ctx) error {
	packages, err := h.tokens.ListPackages()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(packages)
}

// CreatePurchaseInvoice returns a Telegram invoice link for a token package.
// Tokens are credited by the payment webhook, not here.
func (h *TokenHandler) CreatePurchaseInvoice(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req PurchaseTokensRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	pkg, err := h.tokens.GetPackage(req.PackageID)
	if err != nil {
		return serviceError(c, err)
	}

	payload := utils.GeneratePaymentPayload(userID, pkg.ID)
	link, err := payments.CreateTokenInvoiceLink(*pkg, payload)
	if err != nil {
		log.Printf("🔥 Failed to create invoice link: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create invoice"})
	}
	return c.JSON(fiber.Map{"invoice_link": link})
}

// PaymentWebhook receives bot updates and credits tokens on successful
// payments. Always answers 200 so Telegram stops retrying.
func (h *TokenHandler) PaymentWebhook(c *fiber.Ctx) error {
	var update telegramPaymentUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.SendStatus(fiber.StatusOK)
	}
	if update.Message.SuccessfulPayment == nil {
		return c.SendStatus(fiber.StatusOK)
	}

	parts := strings.Split(update.Message.SuccessfulPayment.InvoicePayload, ":")
	if len(parts) != 3 {
		log.Printf("⚠️ Malformed payment payload: %s", update.Message.SuccessfulPayment.InvoicePayload)
		return c.SendStatus(fiber.StatusOK)
	}

	guideID, err := uuid.Parse(parts[0])
	if err != nil {
		log.Printf("⚠️ Invalid guide ID in payment payload: %s", parts[0])
		return c.SendStatus(fiber.StatusOK)
	}
	packageID, err := uuid.Parse(parts[1])
	if err != nil {
		log.Printf("⚠️ Invalid package ID in payment payload: %s", parts[1])
		return c.SendStatus(fiber.StatusOK)
	}

	if _, err := h.tokens.PurchaseTokens(guideID, packageID); err != nil {
		log.Printf("🔥 Failed to credit tokens for guide %s: %v", guideID, err)
		return c.SendStatus(fiber.StatusOK)
	}
	return c.SendStatus(fiber.StatusOK)
}

func (h *TokenHandler) SpendTokens(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req SpendTokensRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	transaction, err := h.tokens.SpendTokens(userID, req.Amount, req.Description)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(transaction)
}

func (h *TokenHandler) GetBalance(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	balance, err := h.tokens.GetBalance(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"balance": balance})
}

func (h *TokenHandler) GetTransactionHistory(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	transactions, err := h.tokens.GetTransactionHistory(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(transactions)
}
