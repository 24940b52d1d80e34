package adrequests

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

// AdRequestDTO is the transport shape for a negotiation row.
type AdRequestDTO struct {
	ID            uuid.UUID             `json:"id"`
	CampaignID    uuid.UUID             `json:"campaign_id"`
	InfluencerID  uuid.UUID             `json:"influencer_id"`
	Requirements  string                `json:"requirements"`
	PaymentAmount decimal.Decimal       `json:"payment_amount"`
	Status        enums.AdRequestStatus `json:"status"`
	CreatedAt     time.Time             `json:"created_at"`
	UpdatedAt     time.Time             `json:"updated_at"`
}

func FromModel(r *models.AdRequest) *AdRequestDTO {
	if r == nil {
		return nil
	}
	return &AdRequestDTO{
		ID:            r.ID,
		CampaignID:    r.CampaignID,
		InfluencerID:  r.InfluencerID,
		Requirements:  r.Requirements,
		PaymentAmount: r.PaymentAmount,
		Status:        r.Status,
		CreatedAt:     r.CreatedAt,
		UpdatedAt:     r.UpdatedAt,
	}
}

// CreateRequest is the payload a sponsor submits to open a negotiation.
type CreateRequest struct {
	CampaignID    uuid.UUID       `json:"campaign_id" validate:"required"`
	InfluencerID  uuid.UUID       `json:"influencer_id" validate:"required"`
	Requirements  string          `json:"requirements"`
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}

// NegotiateRequest carries the influencer's counter-offer amount.
type NegotiateRequest struct {
	PaymentAmount decimal.Decimal `json:"payment_amount"`
}
