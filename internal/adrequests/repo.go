package adrequests

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

// Repository defines persistence operations for ad request rows.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, request *models.AdRequest) (*models.AdRequest, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.AdRequest, error)
	ListAll(ctx context.Context) ([]models.AdRequest, error)
	ListByInfluencer(ctx context.Context, influencerID uuid.UUID) ([]models.AdRequest, error)
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.AdRequest, error)
	UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdRequestStatus) (bool, error)
	UpdateNegotiation(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error)
	CountByInfluencerAndStatus(ctx context.Context, influencerID uuid.UUID, status enums.AdRequestStatus) (int64, error)
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds an ad requests repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, request *models.AdRequest) (*models.AdRequest, error) {
	if err := r.db.WithContext(ctx).Create(request).Error; err != nil {
		return nil, err
	}
	return request, nil
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.AdRequest, error) {
	var request models.AdRequest
	if err := r.db.WithContext(ctx).First(&request, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &request, nil
}

func (r *repository) ListAll(ctx context.Context) ([]models.AdRequest, error) {
	var rows []models.AdRequest
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByInfluencer(ctx context.Context, influencerID uuid.UUID) ([]models.AdRequest, error) {
	var rows []models.AdRequest
	err := r.db.WithContext(ctx).
		Where("influencer_id = ?", influencerID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *repository) ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.AdRequest, error) {
	var rows []models.AdRequest
	err := r.db.WithContext(ctx).
		Where("campaign_id = ?", campaignID).
		Order("created_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// liveStatuses are the states a request may still transition out of. Status
// writes are conditional on them so a writer that lost a race against a
// terminal transition updates zero rows instead of overwriting it.
var liveStatuses = []enums.AdRequestStatus{
	enums.AdRequestStatusPending,
	enums.AdRequestStatusNegotiating,
}

// UpdateStatus moves a still-live request into the given state. It reports
// whether a row was updated; false means the request no longer exists or has
// already reached a terminal state.
func (r *repository) UpdateStatus(ctx context.Context, id uuid.UUID, status enums.AdRequestStatus) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AdRequest{}).
		Where("id = ? AND status IN ?", id, liveStatuses).
		UpdateColumn("status", status)
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

// UpdateNegotiation replaces the offer amount and re-enters the negotiating
// state, under the same live-status condition as UpdateStatus.
func (r *repository) UpdateNegotiation(ctx context.Context, id uuid.UUID, amount decimal.Decimal) (bool, error) {
	result := r.db.WithContext(ctx).
		Model(&models.AdRequest{}).
		Where("id = ? AND status IN ?", id, liveStatuses).
		UpdateColumns(map[string]any{
			"payment_amount": amount,
			"status":         enums.AdRequestStatusNegotiating,
		})
	if result.Error != nil {
		return false, result.Error
	}
	return result.RowsAffected > 0, nil
}

func (r *repository) CountByInfluencerAndStatus(ctx context.Context, influencerID uuid.UUID, status enums.AdRequestStatus) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.AdRequest{}).
		Where("influencer_id = ? AND status = ?", influencerID, status).
		Count(&count).Error
	if err != nil {
		return 0, err
	}
	return count, nil
}
