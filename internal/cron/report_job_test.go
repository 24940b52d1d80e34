package cron

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
)

type fakeCampaignsRepo struct {
	byOwner map[uuid.UUID][]models.Campaign
	err     error
}

func (f *fakeCampaignsRepo) ListByOwner(_ context.Context, userID uuid.UUID) ([]models.Campaign, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byOwner[userID], nil
}

type fakeRequestsRepo struct {
	byCampaign map[uuid.UUID][]models.AdRequest
	err        error
}

func (f *fakeRequestsRepo) ListByCampaign(_ context.Context, campaignID uuid.UUID) ([]models.AdRequest, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.byCampaign[campaignID], nil
}

func TestReportJobMailsSponsorActivitySummary(t *testing.T) {
	sponsorID := uuid.New()
	campaignID := uuid.New()
	requestID := uuid.New()

	accounts := &fakeAccountsRepo{users: []models.User{
		{ID: sponsorID, Email: "brand@example.com", Role: enums.AccountRoleSponsor},
	}}
	campaigns := &fakeCampaignsRepo{byOwner: map[uuid.UUID][]models.Campaign{
		sponsorID: {{ID: campaignID, Name: "Summer Splash"}},
	}}
	requests := &fakeRequestsRepo{byCampaign: map[uuid.UUID][]models.AdRequest{
		campaignID: {{ID: requestID, Status: enums.AdRequestStatusNegotiating}},
	}}
	mail := &recordingMailer{}
	job := newReportJob(t, accounts, campaigns, requests, mail)
	job.now = func() time.Time { return time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}

	if len(mail.sent) != 1 {
		t.Fatalf("expected 1 email, got %d", len(mail.sent))
	}
	msg := mail.sent[0]
	if msg.To != "brand@example.com" {
		t.Fatalf("unexpected recipient %q", msg.To)
	}
	if msg.Subject != "Monthly Activity Report" {
		t.Fatalf("unexpected subject %q", msg.Subject)
	}
	if !strings.HasPrefix(msg.Body, "Monthly Activity Report\n\n") {
		t.Fatalf("unexpected body prefix: %q", msg.Body)
	}
	if !strings.Contains(msg.Body, "Campaign: Summer Splash\n") {
		t.Fatalf("campaign line missing: %q", msg.Body)
	}
	wantLine := "  - Ad Request: " + requestID.String() + ", Status: negotiating\n"
	if !strings.Contains(msg.Body, wantLine) {
		t.Fatalf("ad request line missing: %q", msg.Body)
	}
	if job.EmailsSent() != 1 {
		t.Fatalf("expected 1 email reported, got %d", job.EmailsSent())
	}
}

func TestReportJobSkipsOutsideFirstOfMonth(t *testing.T) {
	accounts := &fakeAccountsRepo{users: []models.User{
		{ID: uuid.New(), Email: "brand@example.com", Role: enums.AccountRoleSponsor},
	}}
	mail := &recordingMailer{}
	job := newReportJob(t, accounts, &fakeCampaignsRepo{}, &fakeRequestsRepo{}, mail)
	job.now = func() time.Time { return time.Date(2026, 3, 15, 9, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(mail.sent) != 0 {
		t.Fatalf("expected no emails on the 15th, got %d", len(mail.sent))
	}
}

func TestReportJobContinuesPastPerSponsorFailures(t *testing.T) {
	brokenID := uuid.New()
	okID := uuid.New()
	accounts := &fakeAccountsRepo{users: []models.User{
		{ID: brokenID, Email: "broken@example.com", Role: enums.AccountRoleSponsor},
		{ID: okID, Email: "ok@example.com", Role: enums.AccountRoleSponsor},
	}}
	campaigns := &fakeCampaignsRepo{byOwner: map[uuid.UUID][]models.Campaign{}}
	mail := &recordingMailer{errs: map[string]error{"broken@example.com": errors.New("smtp down")}}
	job := newReportJob(t, accounts, campaigns, &fakeRequestsRepo{}, mail)
	job.now = func() time.Time { return time.Date(2026, 4, 1, 9, 0, 0, 0, time.UTC) }

	if err := job.Run(context.Background()); err != nil {
		t.Fatalf("Run: %v", err)
	}
	if len(mail.sent) != 1 || mail.sent[0].To != "ok@example.com" {
		t.Fatalf("expected delivery to ok@example.com only, got %+v", mail.sent)
	}
}

func newReportJob(t *testing.T, accounts *fakeAccountsRepo, campaigns *fakeCampaignsRepo, requests *fakeRequestsRepo, mail *recordingMailer) *reportJob {
	t.Helper()
	jobIface, err := NewReportJob(ReportJobParams{
		Logger:    logger.New(logger.Options{ServiceName: "test"}),
		Accounts:  accounts,
		Campaigns: campaigns,
		Requests:  requests,
		Mailer:    mail,
	})
	if err != nil {
		t.Fatalf("NewReportJob: %v", err)
	}
	job, ok := jobIface.(*reportJob)
	if !ok {
		t.Fatalf("expected reportJob, got %T", jobIface)
	}
	return job
}
