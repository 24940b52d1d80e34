package exports

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/mailer"
)

const dateLayout = "2006-01-02"

var csvHeader = []string{"Campaign ID", "Name", "Description", "Start Date", "End Date", "Budget", "Visibility"}

type accountFinder interface {
	FindByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

type campaignLister interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error)
}

// Service emails a sponsor their campaign portfolio as a CSV attachment.
type Service interface {
	ExportCampaigns(ctx context.Context, actorID uuid.UUID) error
}

type service struct {
	accounts  accountFinder
	campaigns campaignLister
	mail      mailer.Mailer
}

// ServiceParams bundles the dependencies for the export service.
type ServiceParams struct {
	Accounts  accountFinder
	Campaigns campaignLister
	Mailer    mailer.Mailer
}

// NewService builds a campaign export service.
func NewService(params ServiceParams) (Service, error) {
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts finder required")
	}
	if params.Campaigns == nil {
		return nil, fmt.Errorf("campaigns lister required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &service{
		accounts:  params.Accounts,
		campaigns: params.Campaigns,
		mail:      params.Mailer,
	}, nil
}

func (s *service) ExportCampaigns(ctx context.Context, actorID uuid.UUID) error {
	if actorID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeUnauthorized, "user identity missing")
	}

	sponsor, err := s.accounts.FindByID(ctx, actorID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "account not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "load account")
	}
	if sponsor.Role != enums.AccountRoleSponsor {
		return pkgerrors.New(pkgerrors.CodeForbidden, "only sponsors can export campaigns")
	}

	campaigns, err := s.campaigns.ListByOwner(ctx, sponsor.ID)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "list campaigns")
	}

	payload, err := renderCSV(campaigns)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "render csv")
	}

	filename := fmt.Sprintf("%s_campaigns.csv", sponsor.Username)
	err = s.mail.Send(ctx, mailer.Message{
		To:      sponsor.Email,
		Subject: "Your Campaigns CSV Export",
		Body:    fmt.Sprintf("Attached is the export of your %d campaign(s).", len(campaigns)),
		Attachments: []mailer.Attachment{
			{Filename: filename, ContentType: "text/csv", Data: payload},
		},
	})
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "send export email")
	}
	return nil
}

func renderCSV(campaigns []models.Campaign) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	if err := writer.Write(csvHeader); err != nil {
		return nil, err
	}
	for i := range campaigns {
		c := &campaigns[i]
		record := []string{
			c.ID.String(),
			c.Name,
			c.Description,
			c.StartDate.Format(dateLayout),
			c.EndDate.Format(dateLayout),
			c.Budget.String(),
			string(c.Visibility),
		}
		if err := writer.Write(record); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
