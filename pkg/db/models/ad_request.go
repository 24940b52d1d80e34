package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

// AdRequest is a negotiable offer from a sponsor's campaign to a specific
// influencer. Status follows the negotiation lifecycle; payment_amount may
// only change while the status still allows transitions.
type AdRequest struct {
	ID            uuid.UUID             `gorm:"type:uuid;default:gen_random_uuid();primaryKey"`
	CampaignID    uuid.UUID             `gorm:"column:campaign_id;type:uuid;not null;index:ad_requests_campaign_id_idx"`
	InfluencerID  uuid.UUID             `gorm:"column:influencer_id;type:uuid;not null;index:ad_requests_influencer_id_idx"`
	Requirements  string                `gorm:"type:text;not null"`
	PaymentAmount decimal.Decimal       `gorm:"column:payment_amount;type:numeric(12,2);not null"`
	Status        enums.AdRequestStatus `gorm:"column:status;type:text;not null;default:'pending'"`

	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`
}

func (a *AdRequest) BeforeCreate(_ *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
