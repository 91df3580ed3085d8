package repository

import (
	"time"

	"github.com/google/uuid"

	"tourmarket/models"
)

// AuctionPatch carries the updatable auction fields. Nil means "leave as is";
// ClearProgram detaches the program reference.
type AuctionPatch struct {
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

// GuidePatch carries directly-applied guide fields (the approval-gated bio
// and new images never travel through here).
type GuidePatch struct {
	PhoneNumber *string
	Email       *string
	IsActive    *bool
	Images      []string // reordering of existing images
}

// TierPatch carries the updatable pricing tier fields.
type TierPatch struct {
	Title          *string
	Description    *string
	MinPeople      *int
	MaxPeople      *int
	PricePerPerson *float64
	IsActive       *bool
}

type UserStore interface {
	CreateUser(u *models.User) error
	GetUser(id uuid.UUID) (*models.User, error)
	GetUserByTelegramID(telegramID string) (*models.User, error)
	GetUserByEmail(email string) (*models.User, error)
	UpdateUserProfile(id uuid.UUID, firstName, lastName, username *string) error
}

type GuideStore interface {
	CreateGuide(g *models.Guide) error
	GetGuide(userID uuid.UUID) (*models.Guide, error)
	ListPendingGuides() ([]models.Guide, error)
	UpdateGuideDirect(userID uuid.UUID, patch GuidePatch) error
	SetGuidePrograms(userID uuid.UUID, programIDs []uuid.UUID) error

	// SetGuideApproval flips Guide.IsApproved and the owning user's role in
	// one transaction.
	SetGuideApproval(userID uuid.UUID, approved bool) error

	CreateChangeRequest(r *models.GuideProfileChangeRequest) error
	GetChangeRequest(id uuid.UUID) (*models.GuideProfileChangeRequest, error)
	ListPendingChangeRequests() ([]models.GuideProfileChangeRequest, error)

	// ResolveChangeRequest moves a PENDING request to APPROVED or REJECTED and,
	// on approval, applies the bio replacement and image append to the guide in
	// the same transaction. Resolving a non-PENDING request fails BadRequest.
	ResolveChangeRequest(id uuid.UUID, approve bool, comment *string) (*models.GuideProfileChangeRequest, error)
}

type ProgramStore interface {
	CreateProgram(p *models.Program) error
	GetProgram(id uuid.UUID) (*models.Program, error)
	// GetBookableProgram returns the program only if it is active and
	// approved, with its pricing tiers loaded.
	GetBookableProgram(id uuid.UUID) (*models.Program, error)
	ListPublishedPrograms() ([]models.Program, error)
	CountPrograms(ids []uuid.UUID) (int64, error)
	SetProgramApproval(id uuid.UUID, approved bool) error
}

type AuctionStore interface {
	CreateAuction(a *models.Auction) error
	GetAuction(id uuid.UUID) (*models.Auction, error)
	ListActiveAuctions(now time.Time) ([]models.Auction, error)
	ListAuctionsByCreator(creatorID uuid.UUID) ([]models.Auction, error)
	ListBiddedAuctions(bidderID uuid.UUID) ([]models.Auction, error)
	ListProgramAuctions(programID uuid.UUID, now time.Time) ([]models.Auction, error)

	// UpdateAuction applies the patch only while the auction is OPEN and has
	// zero bids; both preconditions are re-checked inside the transaction.
	UpdateAuction(id uuid.UUID, patch AuctionPatch) (*models.Auction, error)
	// DeleteAuction removes the auction under the same preconditions.
	DeleteAuction(id uuid.UUID) error
	// CloseAuction sets status CLOSED and, when winningBidID is given, marks
	// exactly that bid accepted, in one transaction.
	CloseAuction(id uuid.UUID, winningBidID *uuid.UUID) (*models.Auction, error)
	// CloseExpiredAuctions flips OPEN auctions whose ExpiresAt has passed to
	// CLOSED and reports how many were affected.
	CloseExpiredAuctions(now time.Time) (int64, error)

	// CreateBid inserts a bid; a second active bid by the same bidder on the
	// same auction fails BadRequest via the composite uniqueness guarantee.
	CreateBid(b *models.Bid) error
	GetBid(id uuid.UUID) (*models.Bid, error)
	GetBidByAuctionAndBidder(auctionID, bidderID uuid.UUID) (*models.Bid, error)
	DeleteBid(id uuid.UUID) error
	ListBidsForAuction(auctionID uuid.UUID) ([]models.Bid, error)
	ListBidsByBidder(bidderID uuid.UUID) ([]models.Bid, error)
}

type BookingStore interface {
	CreateBooking(b *models.Booking) error
	GetBooking(id uuid.UUID) (*models.Booking, error)
	UpdateBookingStatus(id uuid.UUID, status string) error
	SetBookingVoucherURL(id uuid.UUID, url string) error
	ListBookingsByTourist(touristID uuid.UUID) ([]models.Booking, error)
	ListBookingsByGuide(guideID uuid.UUID) ([]models.Booking, error)
}

type TariffStore interface {
	ListTiers(programID uuid.UUID) ([]models.PricingTier, error)
	// CreateTier inserts the tier after re-checking inside the transaction
	// that it overlaps no existing tier of the program.
	CreateTier(t *models.PricingTier) error
	GetTier(id uuid.UUID) (*models.PricingTier, error)
	UpdateTier(id uuid.UUID, patch TierPatch) (*models.PricingTier, error)
	DeleteTier(id uuid.UUID) error
}

type TokenStore interface {
	ListTokenPackages() ([]models.TokenPackage, error)
	GetTokenPackage(id uuid.UUID) (*models.TokenPackage, error)
	// PurchaseTokens credits the guide balance and records the transaction
	// atomically.
	PurchaseTokens(guideID uuid.UUID, pkg models.TokenPackage) (*models.TokenTransaction, error)
	// SpendTokens debits the balance after checking sufficiency inside the
	// transaction.
	SpendTokens(guideID uuid.UUID, amount int, description string) (*models.TokenTransaction, error)
	ListTokenTransactions(guideID uuid.UUID) ([]models.TokenTransaction, error)
}

type ReviewStore interface {
	// CreateReview inserts the review and recomputes the guide's average
	// rating in one transaction; a second review for the same booking fails
	// BadRequest.
	CreateReview(r *models.Review) error
	ListReviewsByGuide(guideID uuid.UUID) ([]models.Review, error)
}

// Store is the full persistence gateway.
type Store interface {
	UserStore
	GuideStore
	ProgramStore
	AuctionStore
	BookingStore
	TariffStore
	TokenStore
	ReviewStore
}
