package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"tourmarket/services"
	ws "tourmarket/websocket"
)

type AuctionHandler struct {
	auctions *services.AuctionService
}

func NewAuctionHandler(auctions *services.AuctionService) *AuctionHandler {
	return &AuctionHandler{auctions: auctions}
}

type CreateAuctionRequest struct {
	Title          string     `json:"title" validate:"required"`
	Description    string     `json:"description" validate:"required"`
	Location       string     `json:"location" validate:"required"`
	StartDate      time.Time  `json:"start_date" validate:"required"`
	NumberOfPeople int        `json:"number_of_people" validate:"required,gt=0"`
	Budget         *float64   `json:"budget"`
	ProgramID      *uuid.UUID `json:"program_id"`
	ExpiresAt      time.Time  `json:"expires_at" validate:"required"`
}

type UpdateAuctionRequest struct {
	Title          *string    `json:"title"`
	Description    *string    `json:"description"`
	Location       *string    `json:"location"`
	StartDate      *time.Time `json:"start_date"`
	NumberOfPeople *int       `json:"number_of_people"`
	Budget         *float64   `json:"budget"`
	ProgramID      *uuid.UUID `json:"program_id"`
	ClearProgram   bool       `json:"clear_program"`
	ExpiresAt      *time.Time `json:"expires_at"`
}

type CloseAuctionRequest struct {
	WinningBidID *uuid.UUID `json:"winning_bid_id"`
}

type PlaceBidRequest struct {
	Price       float64 `json:"price" validate:"required,gt=0"`
	Description string  `json:"description" validate:"required"`
}

func (h *AuctionHandler) ListActiveAuctions(c *fiber.Ctx) error {
	auctions, err := h.auctions.ListActiveAuctions()
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(auctions)
}

func (h *AuctionHandler) GetAuction(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid auction ID"})
	}
	auction, err := h.auctions.GetAuction(auctionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(auction)
}

func (h *AuctionHandler) CreateAuction(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}

	var req CreateAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	auction, err := h.auctions.CreateAuction(userID, services.CreateAuctionInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		StartDate:      req.StartDate,
		NumberOfPeople: req.NumberOfPeople,
		Budget:         req.Budget,
		ProgramID:      req.ProgramID,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(auction)
}

func (h *AuctionHandler) UpdateAuction(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid auction ID"})
	}

	var req UpdateAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	auction, err := h.auctions.UpdateAuction(auctionID, userID, services.UpdateAuctionInput{
		Title:          req.Title,
		Description:    req.Description,
		Location:       req.Location,
		StartDate:      req.StartDate,
		NumberOfPeople: req.NumberOfPeople,
		Budget:         req.Budget,
		ProgramID:      req.ProgramID,
		ClearProgram:   req.ClearProgram,
		ExpiresAt:      req.ExpiresAt,
	})
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(auction)
}

func (h *AuctionHandler) DeleteAuction(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid auction ID"})
	}

	if err := h.auctions.DeleteAuction(auctionID, userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Auction deleted successfully"})
}

func (h *AuctionHandler) CloseAuction(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid auction ID"})
	}

	var req CloseAuctionRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}

	auction, err := h.auctions.CloseAuction(auctionID, userID, req.WinningBidID)
	if err != nil {
		return serviceError(c, err)
	}

	ws.Broadcast <- &ws.AuctionEvent{AuctionID: auction.ID, Type: "auction_closed", Payload: auction}
	return c.JSON(auction)
}

func (h *AuctionHandler) PlaceBid(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid auction ID"})
	}

	var req PlaceBidRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Cannot parse JSON"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	bid, err := h.auctions.PlaceBid(auctionID, userID, services.PlaceBidInput{
		Price:       req.Price,
		Description: req.Description,
	})
	if err != nil {
		return serviceError(c, err)
	}

	ws.Broadcast <- &ws.AuctionEvent{AuctionID: auctionID, Type: "bid_placed", Payload: bid}
	return c.Status(fiber.StatusCreated).JSON(bid)
}

func (h *AuctionHandler) CancelBid(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bidID, err := uuid.Parse(c.Params("bidId"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid bid ID"})
	}

	if err := h.auctions.CancelBid(bidID, userID); err != nil {
		return serviceError(c, err)
	}
	return c.JSON(fiber.Map{"message": "Bid cancelled successfully"})
}

func (h *AuctionHandler) GetAuctionBids(c *fiber.Ctx) error {
	auctionID, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid auction ID"})
	}
	bids, err := h.auctions.GetAuctionBids(auctionID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bids)
}

// GetMyAuctions lists the auctions the caller created.
func (h *AuctionHandler) GetMyAuctions(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	auctions, err := h.auctions.GetAuctionsByCreator(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(auctions)
}

// GetMyBids lists the caller's bids across all auctions.
func (h *AuctionHandler) GetMyBids(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	bids, err := h.auctions.GetGuideBids(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(bids)
}

// GetBiddedAuctions lists the auctions the caller has bid on, open first.
func (h *AuctionHandler) GetBiddedAuctions(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	auctions, err := h.auctions.GetBiddedAuctions(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(auctions)
}

// GetHighestBids reports the current highest bid on each of the caller's open
// auctions.
func (h *AuctionHandler) GetHighestBids(c *fiber.Ctx) error {
	userID, _, err := currentUser(c)
	if err != nil {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid token"})
	}
	summaries, err := h.auctions.GetHighestBidPerAuction(userID)
	if err != nil {
		return serviceError(c, err)
	}
	return c.JSON(summaries)
}
