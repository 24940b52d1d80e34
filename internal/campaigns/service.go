package campaigns

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

// Service defines campaign operations beyond repository reads.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole enums.AccountRole, req CreateCampaignRequest) (*CampaignDTO, error)
	Update(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID, req UpdateCampaignRequest) (*CampaignDTO, error)
	Delete(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID) error
	Get(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID) (*CampaignDTO, error)
	ListPublic(ctx context.Context) ([]CampaignSummary, error)
	ListMine(ctx context.Context, actorID uuid.UUID) ([]CampaignDTO, error)
}

type service struct {
	repo  Repository
	tx    txRunner
	cache *Cache
}

// NewService builds a campaigns service with the required dependencies.
func NewService(repo Repository, tx txRunner, cache *Cache) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("campaigns repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if cache == nil {
		return nil, fmt.Errorf("campaign cache required")
	}
	return &service{repo: repo, tx: tx, cache: cache}, nil
}

func (s *service) Create(ctx context.Context, actorID uuid.UUID, actorRole enums.AccountRole, req CreateCampaignRequest) (*CampaignDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if actorRole != enums.AccountRoleSponsor {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only sponsors can create campaigns")
	}

	start, end, err := parseDateRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, err
	}
	if req.Budget.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget cannot be negative")
	}
	visibility := req.Visibility
	if visibility == "" {
		visibility = enums.CampaignVisibilityPublic
	}
	if !visibility.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visibility")
	}

	campaign := &models.Campaign{
		UserID:      actorID,
		Name:        req.Name,
		Description: req.Description,
		StartDate:   start,
		EndDate:     end,
		Budget:      req.Budget,
		Visibility:  visibility,
	}

	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		if _, err := s.repo.WithTx(tx).Create(ctx, campaign); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create campaign")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		return nil, err
	}
	return FromModel(campaign), nil
}

func (s *service) Update(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID, req UpdateCampaignRequest) (*CampaignDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if campaignID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign id required")
	}

	updates, err := buildUpdates(req)
	if err != nil {
		return nil, err
	}

	var updated *models.Campaign
	err = s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		campaign, err := repo.FindByID(ctx, campaignID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
		}
		if campaign.UserID != actorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "campaign does not belong to user")
		}

		if len(updates) > 0 {
			if err := repo.Update(ctx, campaignID, updates); err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update campaign")
			}
			campaign, err = repo.FindByID(ctx, campaignID)
			if err != nil {
				return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "reload campaign")
			}
		}
		updated = campaign
		return nil
	})
	if err != nil {
		return nil, err
	}

	if err := s.cache.Invalidate(ctx); err != nil {
		return nil, err
	}
	return FromModel(updated), nil
}

func (s *service) Delete(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if campaignID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "campaign id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		campaign, err := repo.FindByID(ctx, campaignID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
		}
		if campaign.UserID != actorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "campaign does not belong to user")
		}

		if err := repo.DeleteAdRequests(ctx, campaignID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete campaign ad requests")
		}
		if err := repo.Delete(ctx, campaignID); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "delete campaign")
		}
		return nil
	})
	if err != nil {
		return err
	}

	return s.cache.Invalidate(ctx)
}

func (s *service) Get(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID) (*CampaignDTO, error) {
	campaign, err := s.repo.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}
	if campaign.Visibility != enums.CampaignVisibilityPublic && campaign.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "campaign is private")
	}
	return FromModel(campaign), nil
}

// ListPublic serves the shared listing through the cache. The cache entry
// holds every campaign; visibility is filtered after the read so a miss and
// a hit return the same shape.
func (s *service) ListPublic(ctx context.Context) ([]CampaignSummary, error) {
	summaries, err := s.cache.Get(ctx)
	if err != nil {
		return nil, err
	}
	if summaries == nil {
		rows, err := s.repo.ListAll(ctx)
		if err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
		}
		summaries = make([]CampaignSummary, 0, len(rows))
		for i := range rows {
			summaries = append(summaries, SummaryFromModel(&rows[i]))
		}
		if err := s.cache.Set(ctx, summaries); err != nil {
			return nil, err
		}
	}

	public := make([]CampaignSummary, 0, len(summaries))
	for _, summary := range summaries {
		if summary.Visibility == enums.CampaignVisibilityPublic {
			public = append(public, summary)
		}
	}
	return public, nil
}

func (s *service) ListMine(ctx context.Context, actorID uuid.UUID) ([]CampaignDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListByOwner(ctx, actorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}
	dtos := make([]CampaignDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos, nil
}

func parseDateRange(startRaw, endRaw string) (time.Time, time.Time, error) {
	start, err := time.Parse(dateLayout, startRaw)
	if err != nil {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "start_date must be YYYY-MM-DD")
	}
	end, err := time.Parse(dateLayout, endRaw)
	if err != nil {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "end_date must be YYYY-MM-DD")
	}
	if end.Before(start) {
		return time.Time{}, time.Time{}, pkgerrors.New(pkgerrors.CodeValidation, "end_date cannot precede start_date")
	}
	return start, end, nil
}

func buildUpdates(req UpdateCampaignRequest) (map[string]any, error) {
	updates := map[string]any{}
	if req.Name != nil {
		if *req.Name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		updates["name"] = *req.Name
	}
	if req.Description != nil {
		updates["description"] = *req.Description
	}
	if req.StartDate != nil {
		start, err := time.Parse(dateLayout, *req.StartDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "start_date must be YYYY-MM-DD")
		}
		updates["start_date"] = start
	}
	if req.EndDate != nil {
		end, err := time.Parse(dateLayout, *req.EndDate)
		if err != nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "end_date must be YYYY-MM-DD")
		}
		updates["end_date"] = end
	}
	if req.Budget != nil {
		if req.Budget.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget cannot be negative")
		}
		updates["budget"] = *req.Budget
	}
	if req.Visibility != nil {
		if !req.Visibility.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid visibility")
		}
		updates["visibility"] = *req.Visibility
	}
	return updates, nil
}
