package accounts

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

// UserDTO is the transport shape that omits sensitive credentials.
type UserDTO struct {
	ID          uuid.UUID         `json:"id"`
	Username    string            `json:"username"`
	Email       string            `json:"email"`
	Role        enums.AccountRole `json:"role"`
	CompanyName *string           `json:"company_name,omitempty"`
	Industry    *string           `json:"industry,omitempty"`
	Budget      *decimal.Decimal  `json:"budget,omitempty"`
	Name        *string           `json:"name,omitempty"`
	Category    *string           `json:"category,omitempty"`
	Niche       *string           `json:"niche,omitempty"`
	Reach       *int64            `json:"reach,omitempty"`
	Flagged     bool              `json:"flagged"`
	Approved    bool              `json:"approved"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new account.
type CreateUserDTO struct {
	Username     string
	Email        string
	PasswordHash string
	Role         enums.AccountRole
	CompanyName  *string
	Industry     *string
	Budget       *decimal.Decimal
	Name         *string
	Category     *string
	Niche        *string
	Reach        *int64
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		Username:    u.Username,
		Email:       u.Email,
		Role:        u.Role,
		CompanyName: u.CompanyName,
		Industry:    u.Industry,
		Budget:      u.Budget,
		Name:        u.Name,
		Category:    u.Category,
		Niche:       u.Niche,
		Reach:       u.Reach,
		Flagged:     u.Flagged,
		Approved:    u.Approved,
		CreatedAt:   u.CreatedAt,
		UpdatedAt:   u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	return &models.User{
		Username:     c.Username,
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Role:         c.Role,
		CompanyName:  c.CompanyName,
		Industry:     c.Industry,
		Budget:       c.Budget,
		Name:         c.Name,
		Category:     c.Category,
		Niche:        c.Niche,
		Reach:        c.Reach,
		Approved:     true,
	}
}
