package adrequests

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type campaignFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.Campaign, error)
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.Campaign, error)
}

type accountFinder interface {
	FindByIDWithTx(tx *gorm.DB, id uuid.UUID) (*models.User, error)
}

// Service drives the negotiation lifecycle of ad requests.
type Service interface {
	Create(ctx context.Context, actorID uuid.UUID, actorRole enums.AccountRole, req CreateRequest) (*AdRequestDTO, error)
	Accept(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID) (*AdRequestDTO, error)
	Reject(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID) (*AdRequestDTO, error)
	Negotiate(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID, req NegotiateRequest) (*AdRequestDTO, error)
	ListForInfluencer(ctx context.Context, actorID uuid.UUID) ([]AdRequestDTO, error)
	ListForCampaign(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID) ([]AdRequestDTO, error)
}

type service struct {
	repo      Repository
	campaigns campaignFinder
	accounts  accountFinder
	tx        txRunner
}

// ServiceParams bundles the dependencies for the negotiation service.
type ServiceParams struct {
	Repo      Repository
	Campaigns campaignFinder
	Accounts  accountFinder
	Tx        txRunner
}

// NewService builds the negotiation service with the required dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.Repo == nil {
		return nil, fmt.Errorf("ad requests repository required")
	}
	if params.Campaigns == nil {
		return nil, fmt.Errorf("campaigns finder required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts finder required")
	}
	if params.Tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	return &service{
		repo:      params.Repo,
		campaigns: params.Campaigns,
		accounts:  params.Accounts,
		tx:        params.Tx,
	}, nil
}

// Create opens a pending negotiation from a sponsor's campaign toward an influencer.
func (s *service) Create(ctx context.Context, actorID uuid.UUID, actorRole enums.AccountRole, req CreateRequest) (*AdRequestDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if actorRole != enums.AccountRoleSponsor {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "only sponsors can create ad requests")
	}
	if req.CampaignID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign id required")
	}
	if req.InfluencerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "influencer id required")
	}
	if req.PaymentAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment_amount cannot be negative")
	}

	request := &models.AdRequest{
		CampaignID:    req.CampaignID,
		InfluencerID:  req.InfluencerID,
		Requirements:  req.Requirements,
		PaymentAmount: req.PaymentAmount,
		Status:        enums.AdRequestStatusPending,
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		campaign, err := s.campaigns.FindByIDWithTx(tx, req.CampaignID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
		}
		if campaign.UserID != actorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "campaign does not belong to user")
		}

		influencer, err := s.accounts.FindByIDWithTx(tx, req.InfluencerID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return pkgerrors.New(pkgerrors.CodeNotFound, "influencer not found")
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load influencer")
		}
		if influencer.Role != enums.AccountRoleInfluencer {
			return pkgerrors.New(pkgerrors.CodeNotFound, "influencer not found")
		}

		if _, err := s.repo.WithTx(tx).Create(ctx, request); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "create ad request")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(request), nil
}

// Accept moves a live negotiation into the accepted terminal state.
func (s *service) Accept(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID) (*AdRequestDTO, error) {
	return s.decide(ctx, actorID, requestID, enums.AdRequestStatusAccepted)
}

// Reject moves a live negotiation into the rejected terminal state.
func (s *service) Reject(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID) (*AdRequestDTO, error) {
	return s.decide(ctx, actorID, requestID, enums.AdRequestStatusRejected)
}

func (s *service) decide(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID, target enums.AdRequestStatus) (*AdRequestDTO, error) {
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ad request id required")
	}
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	var decided *models.AdRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request, err := loadRequest(ctx, repo, requestID)
		if err != nil {
			return err
		}
		if request.InfluencerID != actorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "ad request is not addressed to user")
		}
		if !request.Status.CanTransition() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("ad request already %s", request.Status))
		}

		updated, err := repo.UpdateStatus(ctx, requestID, target)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ad request status")
		}
		if !updated {
			return staleRequestConflict(ctx, repo, requestID)
		}
		request.Status = target
		decided = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(decided), nil
}

// Negotiate records a counter-offer. The request always re-enters the
// negotiating state, even when it already sits there.
func (s *service) Negotiate(ctx context.Context, actorID uuid.UUID, requestID uuid.UUID, req NegotiateRequest) (*AdRequestDTO, error) {
	if requestID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "ad request id required")
	}
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if req.PaymentAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "payment_amount cannot be negative")
	}

	var negotiated *models.AdRequest
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)
		request, err := loadRequest(ctx, repo, requestID)
		if err != nil {
			return err
		}
		if request.InfluencerID != actorID {
			return pkgerrors.New(pkgerrors.CodeForbidden, "ad request is not addressed to user")
		}
		if !request.Status.CanTransition() {
			return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("ad request already %s", request.Status))
		}

		updated, err := repo.UpdateNegotiation(ctx, requestID, req.PaymentAmount)
		if err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "update ad request offer")
		}
		if !updated {
			return staleRequestConflict(ctx, repo, requestID)
		}
		request.PaymentAmount = req.PaymentAmount
		request.Status = enums.AdRequestStatusNegotiating
		negotiated = request
		return nil
	})
	if err != nil {
		return nil, err
	}
	return FromModel(negotiated), nil
}

// ListForInfluencer returns the requests addressed to the acting influencer.
func (s *service) ListForInfluencer(ctx context.Context, actorID uuid.UUID) ([]AdRequestDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	rows, err := s.repo.ListByInfluencer(ctx, actorID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ad requests")
	}
	return toDTOs(rows), nil
}

// ListForCampaign returns a campaign's requests to its owning sponsor.
func (s *service) ListForCampaign(ctx context.Context, actorID uuid.UUID, campaignID uuid.UUID) ([]AdRequestDTO, error) {
	if actorID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}
	if campaignID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "campaign id required")
	}

	campaign, err := s.campaigns.FindByID(ctx, campaignID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "campaign not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load campaign")
	}
	if campaign.UserID != actorID {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "campaign does not belong to user")
	}

	rows, err := s.repo.ListByCampaign(ctx, campaignID)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list ad requests")
	}
	return toDTOs(rows), nil
}

// staleRequestConflict reports the state a conditional status write lost a
// race against. The re-read observes the concurrently committed row, so the
// conflict names the terminal state that won.
func staleRequestConflict(ctx context.Context, repo Repository, id uuid.UUID) error {
	current, err := loadRequest(ctx, repo, id)
	if err != nil {
		return err
	}
	return pkgerrors.New(pkgerrors.CodeStateConflict, fmt.Sprintf("ad request already %s", current.Status))
}

func loadRequest(ctx context.Context, repo Repository, id uuid.UUID) (*models.AdRequest, error) {
	request, err := repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "ad request not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load ad request")
	}
	return request, nil
}

func toDTOs(rows []models.AdRequest) []AdRequestDTO {
	dtos := make([]AdRequestDTO, 0, len(rows))
	for i := range rows {
		dtos = append(dtos, *FromModel(&rows[i]))
	}
	return dtos
}
