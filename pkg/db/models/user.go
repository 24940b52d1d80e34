package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

// User represents the canonical identity entity. Role is fixed at
// registration; the sponsor- and influencer-specific columns are nullable
// and only populated for the matching role.
type User struct {
	ID           uuid.UUID         `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	Username     string            `gorm:"type:text;not null;uniqueIndex:users_username_key"`
	Email        string            `gorm:"type:text;not null;uniqueIndex:users_email_key"`
	PasswordHash string            `gorm:"column:password_hash;not null"`
	Role         enums.AccountRole `gorm:"column:role;type:text;not null"`

	// Sponsor profile.
	CompanyName *string          `gorm:"column:company_name"`
	Industry    *string          `gorm:"column:industry"`
	Budget      *decimal.Decimal `gorm:"column:budget;type:numeric(12,2)"`

	// Influencer profile.
	Name     *string `gorm:"column:name"`
	Category *string `gorm:"column:category"`
	Niche    *string `gorm:"column:niche"`
	Reach    *int64  `gorm:"column:reach"`

	Flagged  bool `gorm:"column:flagged;not null;default:false"`
	Approved bool `gorm:"column:approved;not null;default:false"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
