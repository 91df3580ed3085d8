package models

import (
	"time"

	"github.com/google/uuid"
)

type Review struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	BookingID uuid.UUID `gorm:"not null;unique" json:"booking_id"`
	TouristID uuid.UUID `gorm:"not null" json:"tourist_id"`
	GuideID   uuid.UUID `gorm:"not null" json:"guide_id"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"type:text" json:"comment"`

	Tourist User `gorm:"foreignkey:TouristID" json:"tourist,omitempty"`

	CreatedAt time.Time `json:"created_at"`
}
