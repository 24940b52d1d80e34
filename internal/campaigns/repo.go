package campaigns

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

// Repository defines persistence operations for campaign rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Campaign, error)
	ListAll(ctx context.Context) ([]models.Campaign, error)
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error)
	ListByVisibility(ctx context.Context, visibility enums.CampaignVisibility) ([]models.Campaign, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) error
	SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error
	DeleteAdRequests(ctx context.Context, campaignID uuid.UUID) error
	Delete(ctx context.Context, id uuid.UUID) error
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a campaigns repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, campaign *models.Campaign) (*models.Campaign, error) {
	if err := r.db.WithContext(ctx).Create(campaign).Error; err != nil {
		return nil, err
	}
	return campaign, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error) {
	var campaign models.Campaign
	if err := r.db.WithContext(ctx).First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

// FindByIDWithTx loads a campaign using the provided transaction.
func (r *repository) FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Campaign, error) {
	if tx == nil {
		tx = r.db
	}
	var campaign models.Campaign
	if err := tx.First(&campaign, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &campaign, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.Campaign, error) {
	var rows []models.Campaign
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	var rows []models.Campaign
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByVisibility(ctx context.Context, visibility enums.CampaignVisibility) ([]models.Campaign, error) {
	var rows []models.Campaign
	err := r.db.WithContext(ctx).
		Where("visibility = ?", visibility).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	return r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		Updates(updates).Error
}

func (r *repository) SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error {
	return r.db.WithContext(ctx).
		Model(&models.Campaign{}).
		Where("id = ?", id).
		UpdateColumn("flagged", flagged).Error
}

// DeleteAdRequests removes dependent rows explicitly so campaign deletion
// does not rely on the store honoring the declared cascade.
func (r *repository) DeleteAdRequests(ctx context.Context, campaignID uuid.UUID) error {
	return r.db.WithContext(ctx).
		Delete(&models.AdRequest{}, "campaign_id = ?", campaignID).Error
}

func (r *repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Campaign{}, "id = ?", id).Error
}
