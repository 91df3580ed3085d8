package handlers

import (
	fiberws "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	ws "tourmarket/websocket"
)

// WebsocketUpgrade gates the upgrade and stashes the identifiers the
// connection handler needs.
func WebsocketUpgrade(c *fiber.Ctx) error {
	if !fiberws.IsWebSocketUpgrade(c) {
		return fiber.ErrUpgradeRequired
	}

	token := c.Locals("user").(*jwt.Token)
	claims := token.Claims.(jwt.MapClaims)
	userID, err := uuid.Parse(claims["user_id"].(string))
	if err != nil {
		return fiber.ErrUnauthorized
	}

	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return fiber.ErrBadRequest
	}

	c.Locals("ws_user_id", userID)
	c.Locals("ws_auction_id", auctionID)
	return c.Next()
}

// AuctionFeed streams live bid events for one auction until the client
// disconnects.
var AuctionFeed = fiberws.New(func(conn *fiberws.Conn) {
	client := &ws.Client{
		UserID:    conn.Locals("ws_user_id").(uuid.UUID),
		AuctionID: conn.Locals("ws_auction_id").(uuid.UUID),
		Conn:      conn,
	}
	ws.Register <- client
	defer func() {
		ws.Unregister <- client
	}()

	for {
		if _, _, err := conn.ReadMessage(); err != nil {
			break
		}
	}
})
