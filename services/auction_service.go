package services

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"tourmarket/apperrors"
	"tourmarket/models"
	"tourmarket/repository"
)

// AuctionService manages the auction lifecycle: creation and mutation while
// unbid, bid placement and cancellation, and closing with winner selection.
type AuctionService struct {
	auctions repository.AuctionStore
	programs repository.ProgramStore
}

func NewAuctionService(auctions repository.AuctionStore, programs repository.ProgramStore) *AuctionService {
	return &AuctionService{auctions: auctions, programs: programs}
}

type CreateAuctionInput struct {
	Title          string
	Description    string
	Location       string
	StartDate      time.Time
	NumberOfPeople int
	Budget         *float64
	ProgramID      *uuid.UUID
	ExpiresAt      time.Time
}

type UpdateAuctionInput struct {
	Title          *string
	Description    *string
	Location       *string
	StartDate      *time.Time
	NumberOfPeople *int
	Budget         *float64
	ProgramID      *uuid.UUID
	ClearProgram   bool
	ExpiresAt      *time.Time
}

type PlaceBidInput struct {
	Price       float64
	Description string
}

// AuctionBidSummary reports the current highest bid of one open auction.
type AuctionBidSummary struct {
	Auction    models.Auction `json:"auction"`
	HighestBid *models.Bid    `json:"highest_bid"`
	HasBids    bool           `json:"has_bids"`
	BidCount   int            `json:"bid_count"`
}

// checkAuctionProgram validates a program reference for an auction: it must
// exist and must not be configured direct-booking-only.
func (s *AuctionService) checkAuctionProgram(programID uuid.UUID) error {
	program, err := s.programs.GetProgram(programID)
	if err != nil {
		return err
	}
	if program.BookingType == models.BookingTypeDirectOnly {
		return apperrors.BadRequest("this program only allows direct booking, not auctions")
	}
	return nil
}

func (s *AuctionService) ListActiveAuctions() ([]models.Auction, error) {
	return s.auctions.ListActiveAuctions(time.Now())
}

func (s *AuctionService) GetAuction(id uuid.UUID) (*models.Auction, error) {
	return s.auctions.GetAuction(id)
}

func (s *AuctionService) CreateAuction(creatorID uuid.UUID, input CreateAuctionInput) (*models.Auction, error) {
	if input.Title == "" || input.Description == "" || input.Location == "" ||
		input.StartDate.IsZero() || input.NumberOfPeople <= 0 || input.ExpiresAt.IsZero() {
		return nil, apperrors.BadRequest("missing required fields for auction creation")
	}
	if !input.ExpiresAt.After(time.Now()) {
		return nil, apperrors.BadRequest("expiration date must be in the future")
	}
	if input.ProgramID != nil {
		if err := s.checkAuctionProgram(*input.ProgramID); err != nil {
			return nil, err
		}
	}

	auction := models.Auction{
		CreatorID:      creatorID,
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		StartDate:      input.StartDate,
		NumberOfPeople: input.NumberOfPeople,
		Budget:         input.Budget,
		ProgramID:      input.ProgramID,
		Status:         models.AuctionStatusOpen,
		ExpiresAt:      input.ExpiresAt,
	}
	if err := s.auctions.CreateAuction(&auction); err != nil {
		return nil, err
	}
	return &auction, nil
}

// UpdateAuction applies a patch to an auction the caller owns. Permitted only
// while the auction is OPEN with zero bids; those preconditions are re-checked
// by the store inside the write transaction.
func (s *AuctionService) UpdateAuction(id, creatorID uuid.UUID, input UpdateAuctionInput) (*models.Auction, error) {
	auction, err := s.auctions.GetAuction(id)
	if err != nil || auction.CreatorID != creatorID {
		return nil, apperrors.NotFound("auction not found or you are not authorized to update it")
	}
	if len(auction.Bids) > 0 {
		return nil, apperrors.BadRequest("cannot update auction once bids have been placed")
	}
	if auction.Status != models.AuctionStatusOpen {
		return nil, apperrors.BadRequest("cannot update auction with status %s", auction.Status)
	}

	if input.ExpiresAt != nil && !input.ExpiresAt.After(time.Now()) {
		return nil, apperrors.BadRequest("expiration date must be in the future")
	}
	if input.ProgramID != nil {
		if err := s.checkAuctionProgram(*input.ProgramID); err != nil {
			return nil, err
		}
	}

	return s.auctions.UpdateAuction(id, repository.AuctionPatch{
		Title:          input.Title,
		Description:    input.Description,
		Location:       input.Location,
		StartDate:      input.StartDate,
		NumberOfPeople: input.NumberOfPeople,
		Budget:         input.Budget,
		ProgramID:      input.ProgramID,
		ClearProgram:   input.ClearProgram,
		ExpiresAt:      input.ExpiresAt,
	})
}

func (s *AuctionService) DeleteAuction(id, creatorID uuid.UUID) error {
	auction, err := s.auctions.GetAuction(id)
	if err != nil || auction.CreatorID != creatorID {
		return apperrors.NotFound("auction not found or you are not authorized to delete it")
	}
	if len(auction.Bids) > 0 {
		return apperrors.BadRequest("cannot delete auction once bids have been placed")
	}
	if auction.Status != models.AuctionStatusOpen {
		return apperrors.BadRequest("cannot delete auction with status %s", auction.Status)
	}
	return s.auctions.DeleteAuction(id)
}

// CloseAuction moves the auction to CLOSED. When winningBidID is given that
// bid must belong to the auction and is marked accepted; all sibling bids
// stay unaccepted.
func (s *AuctionService) CloseAuction(id, creatorID uuid.UUID, winningBidID *uuid.UUID) (*models.Auction, error) {
	auction, err := s.auctions.GetAuction(id)
	if err != nil || auction.CreatorID != creatorID || auction.Status != models.AuctionStatusOpen {
		return nil, apperrors.NotFound("active auction not found or you are not authorized to close it")
	}
	return s.auctions.CloseAuction(id, winningBidID)
}

// PlaceBid records a guide's offer on an open, unexpired auction. A guide
// holds at most one bid per auction.
func (s *AuctionService) PlaceBid(auctionID, bidderID uuid.UUID, input PlaceBidInput) (*models.Bid, error) {
	if input.Price <= 0 || input.Description == "" {
		return nil, apperrors.BadRequest("price and description are required")
	}

	auction, err := s.auctions.GetAuction(auctionID)
	if err != nil || auction.Status != models.AuctionStatusOpen || auction.Expired(time.Now()) {
		return nil, apperrors.NotFound("active auction not found")
	}

	if _, err := s.auctions.GetBidByAuctionAndBidder(auctionID, bidderID); err == nil {
		return nil, apperrors.BadRequest("you already have a bid on this auction, update your existing bid instead")
	} else if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, err
	}

	bid := models.Bid{
		AuctionID:   auctionID,
		BidderID:    bidderID,
		Price:       input.Price,
		Description: input.Description,
	}
	if err := s.auctions.CreateBid(&bid); err != nil {
		return nil, err
	}
	return &bid, nil
}

// CancelBid removes the caller's bid while the parent auction is still open.
// No compensating logic runs if the cancelled bid was the current high bid.
func (s *AuctionService) CancelBid(bidID, bidderID uuid.UUID) error {
	bid, err := s.auctions.GetBid(bidID)
	if err != nil || bid.BidderID != bidderID {
		return apperrors.NotFound("bid not found or you are not authorized to cancel it")
	}
	if bid.Auction == nil || bid.Auction.Status != models.AuctionStatusOpen {
		return apperrors.BadRequest("cannot cancel bid on a closed auction")
	}
	return s.auctions.DeleteBid(bidID)
}

func (s *AuctionService) GetAuctionBids(auctionID uuid.UUID) ([]models.Bid, error) {
	if _, err := s.auctions.GetAuction(auctionID); err != nil {
		return nil, err
	}
	return s.auctions.ListBidsForAuction(auctionID)
}

func (s *AuctionService) GetGuideBids(bidderID uuid.UUID) ([]models.Bid, error) {
	return s.auctions.ListBidsByBidder(bidderID)
}

func (s *AuctionService) GetBiddedAuctions(bidderID uuid.UUID) ([]models.Auction, error) {
	return s.auctions.ListBiddedAuctions(bidderID)
}

func (s *AuctionService) GetAuctionsByCreator(creatorID uuid.UUID) ([]models.Auction, error) {
	return s.auctions.ListAuctionsByCreator(creatorID)
}

func (s *AuctionService) GetProgramAuctions(programID uuid.UUID) ([]models.Auction, error) {
	if _, err := s.programs.GetProgram(programID); err != nil {
		return nil, err
	}
	return s.auctions.ListProgramAuctions(programID, time.Now())
}

// GetHighestBidPerAuction reports, for every open auction owned by the
// creator, its highest bid and bid count.
func (s *AuctionService) GetHighestBidPerAuction(creatorID uuid.UUID) ([]AuctionBidSummary, error) {
	auctions, err := s.auctions.ListAuctionsByCreator(creatorID)
	if err != nil {
		return nil, err
	}

	summaries := []AuctionBidSummary{}
	for _, auction := range auctions {
		if auction.Status != models.AuctionStatusOpen {
			continue
		}
		summary := AuctionBidSummary{Auction: auction, BidCount: len(auction.Bids)}
		if len(auction.Bids) > 0 {
			highest := auction.Bids[0]
			summary.HighestBid = &highest
			summary.HasBids = true
		}
		summary.Auction.Bids = nil
		summaries = append(summaries, summary)
	}
	return summaries, nil
}
