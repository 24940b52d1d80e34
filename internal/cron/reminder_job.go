package cron

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
	"github.com/lucasmedina/adbridge-backend/pkg/mailer"
)

type reminderAccountsRepo interface {
	ListByRole(ctx context.Context, role enums.AccountRole) ([]models.User, error)
}

type reminderRequestsRepo interface {
	CountByInfluencerAndStatus(ctx context.Context, influencerID uuid.UUID, status enums.AdRequestStatus) (int64, error)
}

// ReminderJobParams configure the pending ad request reminder job.
type ReminderJobParams struct {
	Logger   *logger.Logger
	Accounts reminderAccountsRepo
	Requests reminderRequestsRepo
	Mailer   mailer.Mailer
}

// NewReminderJob builds the job that nudges influencers with pending requests.
func NewReminderJob(params ReminderJobParams) (Job, error) {
	if params.Logger == nil {
		return nil, fmt.Errorf("logger required")
	}
	if params.Accounts == nil {
		return nil, fmt.Errorf("accounts repository required")
	}
	if params.Requests == nil {
		return nil, fmt.Errorf("ad requests repository required")
	}
	if params.Mailer == nil {
		return nil, fmt.Errorf("mailer required")
	}
	return &reminderJob{
		logg:     params.Logger,
		accounts: params.Accounts,
		requests: params.Requests,
		mail:     params.Mailer,
	}, nil
}

type reminderJob struct {
	logg     *logger.Logger
	accounts reminderAccountsRepo
	requests reminderRequestsRepo
	mail     mailer.Mailer

	emailsSent int
}

func (j *reminderJob) Name() string { return "pending-request-reminders" }

func (j *reminderJob) EmailsSent() int { return j.emailsSent }

// Run emails every influencer who still has pending ad requests. A failure
// for one influencer is logged and never aborts the rest of the batch.
func (j *reminderJob) Run(ctx context.Context) error {
	j.emailsSent = 0

	influencers, err := j.accounts.ListByRole(ctx, enums.AccountRoleInfluencer)
	if err != nil {
		return fmt.Errorf("list influencers: %w", err)
	}

	for i := range influencers {
		influencer := &influencers[i]
		itemCtx := j.logg.WithField(ctx, "influencer_id", influencer.ID.String())

		pending, err := j.requests.CountByInfluencerAndStatus(ctx, influencer.ID, enums.AdRequestStatusPending)
		if err != nil {
			j.logg.Error(itemCtx, "count pending requests", err)
			continue
		}
		if pending == 0 {
			continue
		}

		msg := mailer.Message{
			To:      influencer.Email,
			Subject: "Daily Reminder",
			Body:    fmt.Sprintf("You have %d pending ad requests. Please review them.", pending),
		}
		if err := j.mail.Send(ctx, msg); err != nil {
			j.logg.Error(itemCtx, "send reminder email", err)
			continue
		}
		j.emailsSent++
	}

	j.logg.Info(j.logg.WithField(ctx, "emails_sent", j.emailsSent), "reminder batch complete")
	return nil
}
