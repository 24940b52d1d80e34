package exports

import (
	"context"
	"encoding/csv"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/mailer"
)

type stubAccounts struct {
	users map[uuid.UUID]*models.User
}

func (s *stubAccounts) FindByID(_ context.Context, id uuid.UUID) (*models.User, error) {
	if user, ok := s.users[id]; ok {
		return user, nil
	}
	return nil, gorm.ErrRecordNotFound
}

type stubCampaigns struct {
	rows []models.Campaign
}

func (s *stubCampaigns) ListByOwner(_ context.Context, _ uuid.UUID) ([]models.Campaign, error) {
	return s.rows, nil
}

type recordingMailer struct {
	messages []mailer.Message
}

func (m *recordingMailer) Send(_ context.Context, msg mailer.Message) error {
	m.messages = append(m.messages, msg)
	return nil
}

func TestExportCampaignsBuildsAttachment(t *testing.T) {
	sponsorID := uuid.New()
	accountsStub := &stubAccounts{users: map[uuid.UUID]*models.User{
		sponsorID: {
			ID:       sponsorID,
			Username: "acme",
			Email:    "team@acme.com",
			Role:     enums.AccountRoleSponsor,
		},
	}}
	campaignsStub := &stubCampaigns{rows: []models.Campaign{
		{
			ID:          uuid.New(),
			UserID:      sponsorID,
			Name:        "Summer Splash",
			Description: "launch push",
			StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
			EndDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
			Budget:      decimal.NewFromInt(10000),
			Visibility:  enums.CampaignVisibilityPublic,
		},
	}}
	mail := &recordingMailer{}

	svc, err := NewService(ServiceParams{
		Accounts:  accountsStub,
		Campaigns: campaignsStub,
		Mailer:    mail,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	if err := svc.ExportCampaigns(context.Background(), sponsorID); err != nil {
		t.Fatalf("export: %v", err)
	}

	if len(mail.messages) != 1 {
		t.Fatalf("expected 1 message, got %d", len(mail.messages))
	}
	msg := mail.messages[0]
	if msg.To != "team@acme.com" {
		t.Fatalf("unexpected recipient %s", msg.To)
	}
	if len(msg.Attachments) != 1 || msg.Attachments[0].Filename != "acme_campaigns.csv" {
		t.Fatalf("unexpected attachments %+v", msg.Attachments)
	}

	records, err := csv.NewReader(strings.NewReader(string(msg.Attachments[0].Data))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("expected header plus 1 row, got %d records", len(records))
	}
	if records[0][1] != "Name" {
		t.Fatalf("unexpected header %v", records[0])
	}
	row := records[1]
	if row[1] != "Summer Splash" || row[3] != "2025-06-01" || row[6] != "public" {
		t.Fatalf("unexpected row %v", row)
	}
}

func TestExportCampaignsOnlyForSponsors(t *testing.T) {
	creatorID := uuid.New()
	accountsStub := &stubAccounts{users: map[uuid.UUID]*models.User{
		creatorID: {ID: creatorID, Username: "jess", Email: "jess@example.com", Role: enums.AccountRoleInfluencer},
	}}
	mail := &recordingMailer{}

	svc, err := NewService(ServiceParams{
		Accounts:  accountsStub,
		Campaigns: &stubCampaigns{},
		Mailer:    mail,
	})
	if err != nil {
		t.Fatalf("build service: %v", err)
	}

	err = svc.ExportCampaigns(context.Background(), creatorID)
	typed := pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}

	err = svc.ExportCampaigns(context.Background(), uuid.New())
	typed = pkgerrors.As(err)
	if typed == nil || typed.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found, got %v", err)
	}

	if len(mail.messages) != 0 {
		t.Fatalf("expected no mail sent, got %d", len(mail.messages))
	}
}
