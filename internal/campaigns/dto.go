package campaigns

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

const dateLayout = "2006-01-02"

// CampaignDTO is the full transport shape returned to campaign owners.
type CampaignDTO struct {
	ID          uuid.UUID                `json:"id"`
	UserID      uuid.UUID                `json:"user_id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	StartDate   string                   `json:"start_date"`
	EndDate     string                   `json:"end_date"`
	Budget      decimal.Decimal          `json:"budget"`
	Visibility  enums.CampaignVisibility `json:"visibility"`
	Flagged     bool                     `json:"flagged"`
	CreatedAt   time.Time                `json:"created_at"`
	UpdatedAt   time.Time                `json:"updated_at"`
}

// CampaignSummary is the compact listing shape served from the cache.
type CampaignSummary struct {
	ID          uuid.UUID                `json:"id"`
	Name        string                   `json:"name"`
	Description string                   `json:"description"`
	StartDate   string                   `json:"start_date"`
	EndDate     string                   `json:"end_date"`
	Budget      decimal.Decimal          `json:"budget"`
	Visibility  enums.CampaignVisibility `json:"visibility"`
}

// CreateCampaignRequest is the payload accepted when a sponsor creates a campaign.
type CreateCampaignRequest struct {
	Name        string                   `json:"name" validate:"required"`
	Description string                   `json:"description"`
	StartDate   string                   `json:"start_date" validate:"required"`
	EndDate     string                   `json:"end_date" validate:"required"`
	Budget      decimal.Decimal          `json:"budget" validate:"required"`
	Visibility  enums.CampaignVisibility `json:"visibility" validate:"required"`
}

// UpdateCampaignRequest carries the mutable campaign fields. Nil fields are left untouched.
type UpdateCampaignRequest struct {
	Name        *string                   `json:"name,omitempty"`
	Description *string                   `json:"description,omitempty"`
	StartDate   *string                   `json:"start_date,omitempty"`
	EndDate     *string                   `json:"end_date,omitempty"`
	Budget      *decimal.Decimal          `json:"budget,omitempty"`
	Visibility  *enums.CampaignVisibility `json:"visibility,omitempty"`
}

func FromModel(c *models.Campaign) *CampaignDTO {
	if c == nil {
		return nil
	}
	return &CampaignDTO{
		ID:          c.ID,
		UserID:      c.UserID,
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate.Format(dateLayout),
		EndDate:     c.EndDate.Format(dateLayout),
		Budget:      c.Budget,
		Visibility:  c.Visibility,
		Flagged:     c.Flagged,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   c.UpdatedAt,
	}
}

func SummaryFromModel(c *models.Campaign) CampaignSummary {
	return CampaignSummary{
		ID:          c.ID,
		Name:        c.Name,
		Description: c.Description,
		StartDate:   c.StartDate.Format(dateLayout),
		EndDate:     c.EndDate.Format(dateLayout),
		Budget:      c.Budget,
		Visibility:  c.Visibility,
	}
}
