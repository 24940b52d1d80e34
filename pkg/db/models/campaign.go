package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

// Campaign is a sponsor-owned advertising initiative. Deleting a campaign
// removes its ad requests through the declared foreign-key cascade; the
// campaigns service additionally issues the cascade inside its delete
// transaction so the behavior does not depend on the backing store.
type Campaign struct {
	ID          uuid.UUID                `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	UserID      uuid.UUID                `gorm:"column:user_id;type:uuid;not null;index:campaigns_user_id_idx"`
	Name        string                   `gorm:"type:text;not null"`
	Description string                   `gorm:"type:text;not null"`
	StartDate   time.Time                `gorm:"column:start_date;type:date;not null"`
	EndDate     time.Time                `gorm:"column:end_date;type:date;not null"`
	Budget      decimal.Decimal          `gorm:"column:budget;type:numeric(12,2);not null"`
	Visibility  enums.CampaignVisibility `gorm:"column:visibility;type:text;not null"`
	Flagged     bool                     `gorm:"column:flagged;not null;default:false"`

	AdRequests []AdRequest `gorm:"foreignKey:CampaignID;constraint:OnDelete:CASCADE"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (c *Campaign) BeforeCreate(_ *gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
