package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	AuctionStatusOpen   = "OPEN"
	AuctionStatusClosed = "CLOSED"
)

// Auction is a time-boxed open call for bids against a travel request. It is
// owned by its creator until closed; expiry is a query-time predicate over
// ExpiresAt, not a stored status.
type Auction struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	CreatorID uuid.UUID `gorm:"not null" json:"creator_id"`

	Title          string     `gorm:"size:255;not null" json:"title"`
	Description    string     `gorm:"type:text;not null" json:"description"`
	Location       string     `gorm:"size:255;not null" json:"location"`
	StartDate      time.Time  `gorm:"not null" json:"start_date"`
	NumberOfPeople int        `gorm:"not null" json:"number_of_people"`
	Budget         *float64   `gorm:"type:numeric(10,2)" json:"budget"`
	ProgramID      *uuid.UUID `json:"program_id"`

	Status    string    `gorm:"size:20;not null;default:'OPEN'" json:"status"`
	ExpiresAt time.Time `gorm:"not null" json:"expires_at"`

	Program *Program `gorm:"foreignkey:ProgramID" json:"program,omitempty"`
	Creator User     `gorm:"foreignkey:CreatorID" json:"creator,omitempty"`
	Bids    []Bid    `gorm:"foreignkey:AuctionID" json:"bids,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Expired reports whether the auction can no longer accept bids by time.
func (a *Auction) Expired(now time.Time) bool {
	return !now.Before(a.ExpiresAt)
}

// Bid is a guide's priced offer against an open auction. A guide holds at
// most one bid per auction, backed by a composite unique index.
type Bid struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	AuctionID uuid.UUID `gorm:"not null;uniqueIndex:idx_bids_auction_bidder" json:"auction_id"`
	BidderID  uuid.UUID `gorm:"not null;uniqueIndex:idx_bids_auction_bidder" json:"bidder_id"`

	Price       float64 `gorm:"type:numeric(10,2);not null" json:"price"`
	Description string  `gorm:"type:text;not null" json:"description"`
	IsAccepted  bool    `gorm:"default:false" json:"is_accepted"`

	Auction *Auction `gorm:"foreignkey:AuctionID" json:"auction,omitempty"`
	Bidder  User     `gorm:"foreignkey:BidderID" json:"bidder,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
