package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	BookingStatusPending   = "PENDING"
	BookingStatusConfirmed = "CONFIRMED"
	BookingStatusCancelled = "CANCELLED"
	BookingStatusCompleted = "COMPLETED"
)

type Booking struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProgramID uuid.UUID `gorm:"not null" json:"program_id"`
	TouristID uuid.UUID `gorm:"not null" json:"tourist_id"`

	StartDate      time.Time `gorm:"not null" json:"start_date"`
	NumberOfPeople int       `gorm:"not null" json:"number_of_people"`
	Status         string    `gorm:"size:20;not null;default:'PENDING'" json:"status"`

	PricingTierID  *uuid.UUID `json:"pricing_tier_id"`
	PricePerPerson float64    `gorm:"type:numeric(10,2);not null" json:"price_per_person"`
	TotalPrice     float64    `gorm:"type:numeric(10,2);not null" json:"total_price"`

	VoucherURL *string `gorm:"size:255" json:"voucher_url"`

	Program     Program      `gorm:"foreignkey:ProgramID" json:"program,omitempty"`
	Tourist     User         `gorm:"foreignkey:TouristID" json:"tourist,omitempty"`
	PricingTier *PricingTier `gorm:"foreignkey:PricingTierID" json:"pricing_tier,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
