package models

import (
	"time"

	"github.com/google/uuid"
)

// PricingTier maps a [MinPeople, MaxPeople] band to a per-person price for a
// program. Tiers of one program must not overlap.
type PricingTier struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	ProgramID   uuid.UUID `gorm:"not null" json:"program_id"`
	Title       string    `gorm:"size:255;not null" json:"title"`
	Description string    `gorm:"type:text" json:"description"`

	MinPeople      int     `gorm:"not null" json:"min_people"`
	MaxPeople      int     `gorm:"not null" json:"max_people"`
	PricePerPerson float64 `gorm:"type:numeric(10,2);not null" json:"price_per_person"`
	IsActive       bool    `gorm:"default:true" json:"is_active"`

	Program Program `gorm:"foreignkey:ProgramID" json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}

// Contains reports whether the tier covers the given group size.
func (t *PricingTier) Contains(numberOfPeople int) bool {
	return numberOfPeople >= t.MinPeople && numberOfPeople <= t.MaxPeople
}
