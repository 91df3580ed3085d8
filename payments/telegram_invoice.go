package payments

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	config "tourmarket/configs"
	"tourmarket/models"
)

// Telegram Bot Payments. Token packages are sold through invoice links the
// Mini App opens natively; successful payments come back on the bot webhook.

const telegramAPIBaseURL = "https://api.telegram.org"

type invoiceLinkRequest struct {
	Title         string         `json:"title"`
	Description   string         `json:"description"`
	Payload       string         `json:"payload"`
	ProviderToken string         `json:"provider_token,omitempty"`
	Currency      string         `json:"currency"`
	Prices        []labeledPrice `json:"prices"`
}

type labeledPrice struct {
	Label  string `json:"label"`
	Amount int    `json:"amount"` // smallest currency unit
}

type invoiceLinkResponse struct {
	Ok          bool   `json:"ok"`
	Result      string `json:"result"`
	Description string `json:"description"`
}

// CreateTokenInvoiceLink builds a Telegram invoice link for a token package.
// The payload carries "guideID:packageID" so the payment webhook can credit
// the right guide.
func CreateTokenInvoiceLink(pkg models.TokenPackage, payload string) (string, error) {
	currency := config.Config("PAYMENT_CURRENCY")
	if currency == "" {
		currency = "USD"
	}

	reqPayload := invoiceLinkRequest{
		Title:         pkg.Name,
		Description:   fmt.Sprintf("%d usage tokens", pkg.TokenAmount),
		Payload:       payload,
		ProviderToken: config.Config("TELEGRAM_PROVIDER_TOKEN"),
		Currency:      currency,
		Prices: []labeledPrice{
			{Label: pkg.Name, Amount: int(pkg.Price * 100)},
		},
	}

	body, err := json.Marshal(reqPayload)
	if err != nil {
		return "", fmt.Errorf("failed to marshal invoice payload: %v", err)
	}

	url := fmt.Sprintf("%s/bot%s/createInvoiceLink", telegramAPIBaseURL, config.Config("TELEGRAM_BOT_TOKEN"))
	req, err := http.NewRequest("POST", url, bytes.NewBuffer(body))
	if err != nil {
		return "", fmt.Errorf("failed to create invoice request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to send invoice request: %v", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read invoice response body: %v", err)
	}

	if resp.StatusCode != http.StatusOK {
		log.Printf("Telegram API error: %s", string(respBody))
		return "", fmt.Errorf("Telegram API returned non-200 status: %d", resp.StatusCode)
	}

	var invoiceResp invoiceLinkResponse
	if err := json.Unmarshal(respBody, &invoiceResp); err != nil {
		return "", fmt.Errorf("failed to unmarshal invoice response: %v", err)
	}
	if !invoiceResp.Ok {
		return "", fmt.Errorf("createInvoiceLink failed: %s", invoiceResp.Description)
	}

	log.Println("✅ Invoice link created for package:", pkg.Name)
	return invoiceResp.Result, nil
}
