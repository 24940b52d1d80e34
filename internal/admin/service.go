package admin

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/internal/accounts"
	"github.com/lucasmedina/adbridge-backend/internal/adrequests"
	"github.com/lucasmedina/adbridge-backend/internal/campaigns"
	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
)

type accountsRepo interface {
	ListAll(ctx context.Context) ([]models.User, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error
	SetApproved(ctx context.Context, id uuid.UUID, approved bool) error
}

type campaignsRepo interface {
	ListAll(ctx context.Context) ([]models.Campaign, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	SetFlagged(ctx context.Context, id uuid.UUID, flagged bool) error
}

type requestsRepo interface {
	ListAll(ctx context.Context) ([]models.AdRequest, error)
}

type cacheInvalidator interface {
	Invalidate(ctx context.Context) error
}

// Service exposes the moderation surface reserved for admin accounts.
type Service interface {
	ListUsers(ctx context.Context) ([]accounts.UserDTO, error)
	ListCampaigns(ctx context.Context) ([]campaigns.CampaignDTO, error)
	ListAdRequests(ctx context.Context) ([]adrequests.AdRequestDTO, error)
	FlagUser(ctx context.Context, id uuid.UUID, flagged bool) error
	FlagCampaign(ctx context.Context, id uuid.UUID, flagged bool) error
	ApproveSponsor(ctx context.Context, id uuid.UUID, approved bool) error
}

type service struct {
	accounts  accountsRepo
	campaigns campaignsRepo
	requests  requestsRepo
	cache     cacheInvalidator
}

// ServiceParams bundles the dependencies for the moderation service.
type ServiceParams struct {
	Accounts  accountsRepo
	Campaigns campaignsRepo
	Requests  requestsRepo
	Cache     cacheInvalidator
}

// NewService builds the moderation service.
func NewService(params ServiceParams) (Service, error) {
	if params.Accounts == nil {
		return nil, errors.New("accounts repository is required")
	}
	if params.Campaigns == nil {
		return nil, errors.New("campaigns repository is required")
	}
	if params.Requests == nil {
		return nil, errors.New("ad requests repository is required")
	}
	if params.Cache == nil {
		return nil, errors.New("campaign cache is required")
	}
	return &service{
		accounts:  params.Accounts,
		campaigns: params.Campaigns,
		requests:  params.Requests,
		cache:     params.Cache,
	}, nil
}

func (s *service) ListUsers(ctx context.Context) ([]accounts.UserDTO, error) {
	rows, err := s.accounts.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list users")
	}
	out := make([]accounts.UserDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *accounts.FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListCampaigns(ctx context.Context) ([]campaigns.CampaignDTO, error) {
	rows, err := s.campaigns.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list campaigns")
	}
	out := make([]campaigns.CampaignDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *campaigns.FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) ListAdRequests(ctx context.Context) ([]adrequests.AdRequestDTO, error) {
	rows, err := s.requests.ListAll(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list ad requests")
	}
	out := make([]adrequests.AdRequestDTO, 0, len(rows))
	for i := range rows {
		out = append(out, *adrequests.FromModel(&rows[i]))
	}
	return out, nil
}

func (s *service) FlagUser(ctx context.Context, id uuid.UUID, flagged bool) error {
	if _, err := s.findUser(ctx, id); err != nil {
		return err
	}
	if err := s.accounts.SetFlagged(ctx, id, flagged); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flag user")
	}
	return nil
}

// FlagCampaign toggles the moderation flag and drops the cached listing so
// the flag is visible on the next read.
func (s *service) FlagCampaign(ctx context.Context, id uuid.UUID, flagged bool) error {
	if _, err := s.campaigns.FindByID(ctx, id); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load campaign")
	}
	if err := s.campaigns.SetFlagged(ctx, id, flagged); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "flag campaign")
	}
	if err := s.cache.Invalidate(ctx); err != nil {
		return err
	}
	return nil
}

func (s *service) ApproveSponsor(ctx context.Context, id uuid.UUID, approved bool) error {
	user, err := s.findUser(ctx, id)
	if err != nil {
		return err
	}
	if user.Role != enums.AccountRoleSponsor {
		return pkgerrors.New(pkgerrors.CodeValidation, "account is not a sponsor")
	}
	if err := s.accounts.SetApproved(ctx, id, approved); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "approve sponsor")
	}
	return nil
}

func (s *service) findUser(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.accounts.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "user not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load user")
	}
	return user, nil
}
