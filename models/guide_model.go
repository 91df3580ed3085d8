package models

import (
	"time"

	"github.com/google/uuid"
)

type Guide struct {
	UserID      uuid.UUID `gorm:"primary_key" json:"user_id"`
	Bio         *string   `gorm:"type:text" json:"bio"`
	PhoneNumber *string   `gorm:"size:32" json:"phone_number"`
	Email       *string   `gorm:"size:255" json:"email"`
	Images      []string  `gorm:"serializer:json" json:"images"`

	IsActive   bool `gorm:"default:true" json:"is_active"`
	IsApproved bool `gorm:"default:false" json:"is_approved"`

	TokenBalance int     `gorm:"default:0" json:"token_balance"`
	AvgRating    float32 `gorm:"default:0" json:"avg_rating"`

	SelectedPrograms []*Program `gorm:"many2many:guide_programs;" json:"selected_programs,omitempty"`
	User             User       `gorm:"foreignkey:UserID" json:"user"`

	CreatedAt time.Time `json:"-"`
	UpdatedAt time.Time `json:"-"`
}
