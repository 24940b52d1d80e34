package cron

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
	"github.com/lucasmedina/adbridge-backend/pkg/mailer"
)

type reportCampaignsRepo interface {
	ListByOwner(ctx context.Context, userID uuid.UUID) ([]models.Campaign, error)
}

type reportRequestsRepo interface {
	ListByCampaign(ctx context.Context, campaignID uuid.UUID) ([]models.AdRequest, error)
}

// ReportJobParams configure the monthly sponsor activity report job.
type ReportJobParams struct {
	Logger    *logger.Logger
	Accounts  reminderAccountsRepo
	Campaigns reportCampaignsRepo
	Requests  reportRequestsRepo
	Mailer    mailer.Mailer

	// Now is injectable for tests. Defaults to time.Now.
	Now func() time.Time
}

// NewReportJob builds the job that mails each sponsor a monthly summary of
// their campaigns and the ad requests attached to them.
func NewReportJob(params ReportJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	if params.Campaigns == nil {
		return nil, fmt.Errorf("campaigns repository required")
	}
	if params.Requests == nil {
		return nil, fmt.Errorf("ad requests repository required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	if params.Now == nil {
		params.Now = time.Now
	}
	return &reportJob{
		logg:      params.Logger,
		accounts:  params.Accounts,
		campaigns: params.Campaigns,
		requests:  params.Requests,
		mail:      params.Mailer,
		now:       params.Now,
	}, nil
}

type reportJob struct {
	logg      *logger.Logger
	accounts  reminderAccountsRepo
	campaigns reportCampaignsRepo
	requests  reportRequestsRepo
	mail      mailer.Mailer
	now       func() time.Time

	emailsSent int
}

func (j *reportJob) Name() string { return "monthly-activity-reports" }

func (j *reportJob) EmailsSent() int { return j.emailsSent }

// Run mails every sponsor an activity report. The scheduler ticks daily, so
// the job gates itself to the first day of the month and is a no-op on any
// other date.
func (j *reportJob) Run(ctx context.Context) error {
	j.emailsSent = 0

	if j.now().UTC().Day() != 1 {
		return nil
	}

	sponsors, err := j.accounts.ListByRole(ctx, enums.AccountRoleSponsor)
	if err != nil {
		return fmt.Errorf("list sponsors: %w", err)
	}

	for i := range sponsors {
		sponsor := &sponsors[i]
		itemCtx := j.logg.WithField(ctx, "sponsor_id", sponsor.ID.String())

		body, err := j.buildReport(ctx, sponsor.ID)
		if err != nil {
			j.logg.Error(itemCtx, "build activity report", err)
			continue
		}

		msg := mailer.Message{
			To:      sponsor.Email,
			Subject: "Monthly Activity Report",
			Body:    body,
		}
		if err := j.mail.Send(ctx, msg); err != nil {
			j.logg.Error(itemCtx, "send activity report", err)
			continue
		}
		j.emailsSent++
	}

	j.logg.Info(j.logg.WithField(ctx, "emails_sent", j.emailsSent), "report batch complete")
	return nil
}

func (j *reportJob) buildReport(ctx context.Context, sponsorID uuid.UUID) (string, error) {
	campaigns, err := j.campaigns.ListByOwner(ctx, sponsorID)
	if err != nil {
		return "", fmt.Errorf("list campaigns: %w", err)
	}

	var report strings.Builder
	report.WriteString("Monthly Activity Report\n\n")
	for i := range campaigns {
		campaign := &campaigns[i]
		report.WriteString(fmt.Sprintf("Campaign: %s\n", campaign.Name))

		requests, err := j.requests.ListByCampaign(ctx, campaign.ID)
		if err != nil {
			return "", fmt.Errorf("list ad requests for campaign %s: %w", campaign.ID, err)
		}
		for k := range requests {
			request := &requests[k]
			report.WriteString(fmt.Sprintf("  - Ad Request: %s, Status: %s\n", request.ID, request.Status))
		}
	}
	return report.String(), nil
}
