package models

import (
	"time"

	"github.com/google/uuid"
)

const (
	RoleTourist    = "TOURIST"
	RoleGuide      = "GUIDE"
	RoleAdmin      = "ADMIN"
	RoleSuperAdmin = "SUPER_ADMIN"
)

type User struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()" json:"id"`
	TelegramID   *string   `gorm:"size:64;unique" json:"telegram_id"`
	FirstName    string    `gorm:"size:255;not null" json:"first_name"`
	LastName     *string   `gorm:"size:255" json:"last_name"`
	Username     *string   `gorm:"size:255" json:"username"`
	LanguageCode *string   `gorm:"size:10" json:"language_code"`

	Email    *string `gorm:"size:255;unique" json:"email"`
	Password *string `gorm:"size:255" json:"-"` // admin accounts only

	Role     string `gorm:"size:20;not null;default:'TOURIST'" json:"role"`
	IsActive bool   `gorm:"default:true" json:"is_active"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsStaff reports whether the user may access admin endpoints.
func (u *User) IsStaff() bool {
	return u.Role == RoleAdmin || u.Role == RoleSuperAdmin
}
