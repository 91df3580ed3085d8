package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	ChangeStatusPending  = "PENDING"
	ChangeStatusApproved = "APPROVED"
	ChangeStatusRejected = "REJECTED"
)

const (
	ChangeTypeBio          = "BIO_UPDATE"
	ChangeTypeImages       = "IMAGES_UPDATE"
	ChangeTypeBioAndImages = "BIO_AND_IMAGES_UPDATE"
	ChangeTypeMultiple     = "MULTIPLE_CHANGES"
)

// GuideProfileChangeRequest holds a proposed bio/images change awaiting admin
// review. Once resolved it is never modified again.
type GuideProfileChangeRequest struct {
	ID         uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GuideID    uuid.UUID `gorm:"not null" json:"guide_id"`
	ChangeType string    `gorm:"size:30;not null" json:"change_type"`

	Bio    *string  `gorm:"type:text" json:"bio"`
	Images []string `gorm:"serializer:json" json:"images"`

	Status       string  `gorm:"size:20;not null;default:'PENDING'" json:"status"`
	AdminComment *string `gorm:"type:text" json:"admin_comment"`

	Guide Guide `gorm:"foreignkey:GuideID" json:"guide,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
