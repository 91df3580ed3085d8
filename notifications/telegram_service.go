package notifications

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/google/uuid"

	config "tourmarket/configs"
	"tourmarket/repository"
)

// Notifier pushes a user-facing message. Delivery is best-effort: failures
// are logged and reported via the return value, never propagated.
type Notifier interface {
	Notify(userID uuid.UUID, message string) bool
}

type TelegramService struct {
	botToken string
	client   *http.Client
	users    repository.UserStore
}

var TelegramClient *TelegramService

func InitTelegramService(users repository.UserStore) Notifier {
	botToken := config.Config("TELEGRAM_BOT_TOKEN")
	if botToken == "" {
		log.Println("⚠️ Telegram notifications not configured. Missing TELEGRAM_BOT_TOKEN.")
		TelegramClient = nil
		return TelegramClient
	}

	TelegramClient = &TelegramService{
		botToken: botToken,
		client:   &http.Client{Timeout: 10 * time.Second},
		users:    users,
	}
	log.Println("✅ Telegram notification service initialized successfully.")
	return TelegramClient
}

type sendMessagePayload struct {
	ChatID string `json:"chat_id"`
	Text   string `json:"text"`
}

func (s *TelegramService) Notify(userID uuid.UUID, message string) bool {
	if s == nil {
		log.Println("Telegram service not configured, skipping notification")
		return false
	}

	user, err := s.users.GetUser(userID)
	if err != nil || user.TelegramID == nil {
		log.Printf("Cannot send notification: user %s not found or has no Telegram ID", userID)
		return false
	}

	payload, err := json.Marshal(sendMessagePayload{ChatID: *user.TelegramID, Text: message})
	if err != nil {
		log.Printf("Failed to encode Telegram payload: %v", err)
		return false
	}

	url := fmt.Sprintf("https://api.telegram.org/bot%s/sendMessage", s.botToken)
	resp, err := s.client.Post(url, "application/json", bytes.NewReader(payload))
	if err != nil {
		log.Printf("Error sending Telegram notification to user %s: %v", userID, err)
		return false
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		log.Printf("Telegram API returned non-200 status for user %s: %s", userID, resp.Status)
		return false
	}
	return true
}

// GuideApprovalMessage is the notification text for a guide approval decision.
func GuideApprovalMessage(approved bool) string {
	if approved {
		return "🎉 Congratulations! Your guide profile has been approved. You can now access all guide features."
	}
	return "❌ Your guide profile has been rejected. Please contact support for more information."
}
