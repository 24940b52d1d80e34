package auth

import (
	"context"
	"errors"
	"strings"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/internal/accounts"
	"github.com/lucasmedina/adbridge-backend/pkg/config"
	"github.com/lucasmedina/adbridge-backend/pkg/db"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/security"
)

// RegisterSponsorRequest is the onboarding payload for a sponsor account.
type RegisterSponsorRequest struct {
	Username    string           `json:"username" validate:"required,min=3,max=64"`
	Email       string           `json:"email" validate:"required,email"`
	Password    string           `json:"password" validate:"required,min=8"`
	CompanyName string           `json:"company_name" validate:"required"`
	Industry    *string          `json:"industry,omitempty"`
	Budget      *decimal.Decimal `json:"budget,omitempty"`
}

// RegisterInfluencerRequest is the onboarding payload for an influencer account.
type RegisterInfluencerRequest struct {
	Username string  `json:"username" validate:"required,min=3,max=64"`
	Email    string  `json:"email" validate:"required,email"`
	Password string  `json:"password" validate:"required,min=8"`
	Name     string  `json:"name" validate:"required"`
	Category *string `json:"category,omitempty"`
	Niche    *string `json:"niche,omitempty"`
	Reach    *int64  `json:"reach,omitempty" validate:"omitempty,min=0"`
}

// RegisterService handles account onboarding transactions.
type RegisterService interface {
	RegisterSponsor(ctx context.Context, req RegisterSponsorRequest) (*RegisterResponse, error)
	RegisterInfluencer(ctx context.Context, req RegisterInfluencerRequest) (*RegisterResponse, error)
}

// RegisterServiceParams packages the dependencies for the registration flow.
type RegisterServiceParams struct {
	DB             *db.Client
	PasswordConfig config.PasswordConfig
}

type registerService struct {
	db          *db.Client
	passwordCfg config.PasswordConfig
}

// NewRegisterService builds a registration service with the provided dependencies.
func NewRegisterService(params RegisterServiceParams) (RegisterService, error) {
	if params.DB == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "database client required")
	}
	return &registerService{
		db:          params.DB,
		passwordCfg: params.PasswordConfig,
	}, nil
}

func (s *registerService) RegisterSponsor(ctx context.Context, req RegisterSponsorRequest) (*RegisterResponse, error) {
	if req.Budget != nil && req.Budget.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "budget cannot be negative")
	}
	company := strings.TrimSpace(req.CompanyName)
	if company == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "company_name is required")
	}

	return s.register(ctx, req.Username, req.Email, req.Password, accounts.CreateUserDTO{
		Role:        enums.AccountRoleSponsor,
		CompanyName: &company,
		Industry:    req.Industry,
		Budget:      req.Budget,
	})
}

func (s *registerService) RegisterInfluencer(ctx context.Context, req RegisterInfluencerRequest) (*RegisterResponse, error) {
	if req.Reach != nil && *req.Reach < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "reach cannot be negative")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}

	return s.register(ctx, req.Username, req.Email, req.Password, accounts.CreateUserDTO{
		Role:     enums.AccountRoleInfluencer,
		Name:     &name,
		Category: req.Category,
		Niche:    req.Niche,
		Reach:    req.Reach,
	})
}

// register normalizes identity fields, hashes credentials, and inserts the
// account inside one transaction so duplicate checks and the insert agree.
func (s *registerService) register(ctx context.Context, username, email, password string, dto accounts.CreateUserDTO) (*RegisterResponse, error) {
	dto.Username = strings.ToLower(strings.TrimSpace(username))
	dto.Email = strings.ToLower(strings.TrimSpace(email))
	if dto.Username == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "username is required")
	}
	if dto.Email == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "email is required")
	}

	passwordHash, err := security.HashPassword(password, s.passwordCfg)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "hash password")
	}
	dto.PasswordHash = passwordHash

	var resp *RegisterResponse
	err = s.db.WithTx(ctx, func(tx *gorm.DB) error {
		repo := accounts.NewRepository(tx)

		if _, err := repo.FindByEmail(ctx, dto.Email); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check email")
		}
		if _, err := repo.FindByUsername(ctx, dto.Username); err == nil {
			return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
		} else if !errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check username")
		}

		user, err := repo.Create(ctx, dto)
		if err != nil {
			if db.IsUniqueViolation(err, "users_email_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "email already registered")
			}
			if db.IsUniqueViolation(err, "users_username_key") {
				return pkgerrors.New(pkgerrors.CodeConflict, "username already taken")
			}
			return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create account")
		}

		resp = &RegisterResponse{User: accounts.FromModel(user)}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return resp, nil
}
