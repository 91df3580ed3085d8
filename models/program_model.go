package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingTypeDirectOnly  = "DIRECT_ONLY"
	BookingTypeAuctionOnly = "AUCTION_ONLY"
	BookingTypeBoth        = "BOTH"
)

type Program struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GuideID     uuid.UUID `gorm:"not null" json:"guide_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	BasePrice    float64  `gorm:"type:numeric(10,2);not null" json:"base_price"`
	DurationDays int      `gorm:"default:1" json:"duration_days"`
	BookingType  string   `gorm:"size:20;not null;default:'BOTH'" json:"booking_type"`
	Regions      []string `gorm:"serializer:json" json:"regions"`
	Tags         []string `gorm:"serializer:json" json:"tags"`
	Images       []string `gorm:"serializer:json" json:"images"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsApproved bool `gorm:"default:false" json:"is_approved"`

	Days         []ProgramDay  `gorm:"foreignkey:ProgramID" json:"days,omitempty"`
	PricingTiers []PricingTier `gorm:"foreignkey:ProgramID" json:"pricing_tiers,omitempty"`
	Guide        Guide         `gorm:"foreignkey:GuideID" json:"guide,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type ProgramDay struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProgramID   uuid.UUID `gorm:"not null" json:"program_id"`
	DayNumber   int       `gorm:"not null" json:"day_number"`
	Title       string    `gorm:"size:255" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	Points []ProgramPoint `gorm:"foreignkey:ProgramDayID" json:"points,omitempty"`
}

type ProgramPoint struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProgramDayID uuid.UUID `gorm:"not null" json:"program_day_id"`
	OrderNumber  int       `gorm:"not null" json:"order_number"`
	Title        string    `gorm:"size:255" json:"title"`
	Description  string    `gorm:"type:text" json:"description"`
	Latitude     *float64  `json:"latitude"`
	Longitude    *float64  `json:"longitude"`
}
