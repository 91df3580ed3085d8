package websocket

import (
	"log"
	"sync"

	"github.com/gofiber/contrib/websocket"
	"github.com/google/uuid"
)

// Live auction feed. Clients subscribe to a single auction and receive
// bid-placed and auction-closed events as they happen.

type Client struct {
	UserID    uuid.UUID
	AuctionID uuid.UUID
	Conn      *websocket.Conn
}

type AuctionEvent struct {
	AuctionID uuid.UUID   `json:"auction_id"`
	Type      string      `json:"type"` // "bid_placed" or "auction_closed"
	Payload   interface{} `json:"payload,omitempty"`
}

var subscribers = make(map[uuid.UUID]map[uuid.UUID]*websocket.Conn)
var subscribersMu sync.RWMutex
var Register = make(chan *Client)
var Unregister = make(chan *Client)
var Broadcast = make(chan *AuctionEvent)

func RunHub() {
	for {
		select {
		case client := <-Register:
			log.Printf("Client %s subscribed to auction %s", client.UserID, client.AuctionID)
			subscribersMu.Lock()
			if subscribers[client.AuctionID] == nil {
				subscribers[client.AuctionID] = make(map[uuid.UUID]*websocket.Conn)
			}
			subscribers[client.AuctionID][client.UserID] = client.Conn
			subscribersMu.Unlock()
		case client := <-Unregister:
			log.Printf("Client %s unsubscribed from auction %s", client.UserID, client.AuctionID)
			subscribersMu.Lock()
			if conns, ok := subscribers[client.AuctionID]; ok {
				if conn, ok := conns[client.UserID]; ok && conn == client.Conn {
					delete(conns, client.UserID)
				}
				if len(conns) == 0 {
					delete(subscribers, client.AuctionID)
				}
			}
			subscribersMu.Unlock()
		case event := <-Broadcast:
			subscribersMu.RLock()
			var stale []uuid.UUID
			for userID, conn := range subscribers[event.AuctionID] {
				if err := conn.WriteJSON(event); err != nil {
					log.Printf("Error sending auction event to client %s: %v", userID, err)
					conn.Close()
					stale = append(stale, userID)
				}
			}
			subscribersMu.RUnlock()
			if len(stale) > 0 {
				subscribersMu.Lock()
				for _, userID := range stale {
					delete(subscribers[event.AuctionID], userID)
				}
				subscribersMu.Unlock()
			}
		}
	}
}
