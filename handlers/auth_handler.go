package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"net/url"
	"sort"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/crypto/bcrypt"

	"tourmarket/apperrors"
	config "tourmarket/configs"
	"tourmarket/models"
	"tourmarket/repository"
)

var validate = validator.New()

type AuthHandler struct {
	users repository.UserStore
}

func NewAuthHandler(users repository.UserStore) *AuthHandler {
	return &AuthHandler{users: users}
}

type TelegramAuthRequest struct {
	InitData string `json:"init_data" validate:"required"`
}

type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

type telegramUser struct {
	ID           int64  `json:"id"`
	FirstName    string `json:"first_name"`
	LastName     string `json:"last_name"`
	Username     string `json:"username"`
	LanguageCode string `json:"language_code"`
}

// validateInitData checks the Mini App init data signature against the bot
// token and returns the embedded Telegram user.
func validateInitData(initData, botToken string) (*telegramUser, error) {
	values, err := url.ParseQuery(initData)
	if err != nil {
		return nil, errors.New("malformed init data")
	}

	receivedHash := values.Get("hash")
	if receivedHash == "" {
		return nil, errors.New("init data is missing hash")
	}
	values.Del("hash")

	var pairs []string
	for key := range values {
		pairs = append(pairs, fmt.Sprintf("%s=%s", key, values.Get(key)))
	}
	sort.Strings(pairs)
	dataCheckString := strings.Join(pairs, "\n")

	secretKey := hmac.New(sha256.New, []byte("WebAppData"))
	secretKey.Write([]byte(botToken))

	mac := hmac.New(sha256.New, secretKey.Sum(nil))
	mac.Write([]byte(dataCheckString))
	expectedHash := hex.EncodeToString(mac.Sum(nil))

	if !hmac.Equal([]byte(expectedHash), []byte(receivedHash)) {
		return nil, errors.New("init data signature mismatch")
	}

	var user telegramUser
	if err := json.Unmarshal([]byte(values.Get("user")), &user); err != nil {
		return nil, errors.New("init data is missing user")
	}
	return &user, nil
}

func signToken(userID, role string) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"role":    role,
		"exp":     time.Now().Add(time.Hour * 72).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(config.Config("JWT_SECRET")))
}

// TelegramAuth logs a Telegram user in, creating a tourist account on first
// contact. Profile fields are refreshed from the init data on every login.
func (h *AuthHandler) TelegramAuth(c *fiber.Ctx) error {
	var req TelegramAuthRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	tgUser, err := validateInitData(req.InitData, config.Config("TELEGRAM_BOT_TOKEN"))
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": err.Error()})
	}

	telegramID := fmt.Sprintf("%d", tgUser.ID)
	user, err := h.users.GetUserByTelegramID(telegramID)
	if errors.Is(err, apperrors.ErrNotFound) {
		user = &models.User{
			TelegramID: &telegramID,
			FirstName:  tgUser.FirstName,
			Role:       models.RoleTourist,
			IsActive:   true,
		}
		if tgUser.LastName != "" {
			user.LastName = &tgUser.LastName
		}
		if tgUser.Username != "" {
			user.Username = &tgUser.Username
		}
		if tgUser.LanguageCode != "" {
			user.LanguageCode = &tgUser.LanguageCode
		}
		if err := h.users.CreateUser(user); err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create user"})
		}
	} else if err != nil {
		return serviceError(c, err)
	} else {
		firstName := tgUser.FirstName
		var lastName, username *string
		if tgUser.LastName != "" {
			lastName = &tgUser.LastName
		}
		if tgUser.Username != "" {
			username = &tgUser.Username
		}
		if err := h.users.UpdateUserProfile(user.ID, &firstName, lastName, username); err != nil {
			return serviceError(c, err)
		}
	}

	t, err := signToken(user.ID.String(), user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": t, "user": user})
}

// AdminLogin is the email/password entry point for staff accounts.
func (h *AuthHandler) AdminLogin(c *fiber.Ctx) error {
	var req AdminLoginRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	user, err := h.users.GetUserByEmail(req.Email)
	if err != nil || user.Password == nil || !user.IsStaff() {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}
	if err := bcrypt.CompareHashAndPassword([]byte(*user.Password), []byte(req.Password)); err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid email or password"})
	}

	t, err := signToken(user.ID.String(), user.Role)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to create token"})
	}
	return c.JSON(fiber.Map{"token": t})
}

// Me returns the authenticated user's account.
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	user, err := h.users.GetUser(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(user)
}
