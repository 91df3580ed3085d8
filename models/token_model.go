package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	TokenTransactionPurchase = "PURCHASE"
	TokenTransactionSpend    = "SPEND"
)

// TokenPackage is a purchasable bundle of usage tokens for guides.
type TokenPackage struct {
	ID          uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	TokenAmount int       `gorm:"not null" json:"token_amount"`
	Price       float64   `gorm:"type:numeric(10,2);not null" json:"price"`
	IsActive    bool      `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"-"`
}

type TokenTransaction struct {
	ID      uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	GuideID uuid.UUID `gorm:"not null" json:"guide_id"`

	Type        string `gorm:"size:20;not null" json:"type"`
	Amount      int    `gorm:"not null" json:"amount"`
	Description string `gorm:"size:255" json:"description"`

	CreatedAt time.Time `json:"created_at"`
}
