package campaigns

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/db/models"
	"github.com/lucasmedina/adbridge-backend/pkg/enums"
)

func setupCampaignsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	campaigns := `
CREATE TABLE IF NOT EXISTS campaigns (
  id TEXT PRIMARY KEY,
  user_id TEXT NOT NULL,
  name TEXT NOT NULL,
  description TEXT NOT NULL DEFAULT '',
  start_date DATETIME NOT NULL,
  end_date DATETIME NOT NULL,
  budget TEXT NOT NULL,
  visibility TEXT NOT NULL DEFAULT 'public',
  flagged INTEGER NOT NULL DEFAULT 0,
  created_at DATETIME,
  updated_at DATETIME
);`
	adRequests := `
CREATE TABLE IF NOT EXISTS ad_requests (
  id TEXT PRIMARY KEY,
  campaign_id TEXT NOT NULL,
  influencer_id TEXT NOT NULL,
  requirements TEXT NOT NULL DEFAULT '',
  payment_amount TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending',
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(campaigns).Error)
	require.NoError(t, db.Exec(adRequests).Error)
	return db
}

func newCampaign(ownerID uuid.UUID, name string, visibility enums.CampaignVisibility) *models.Campaign {
	return &models.Campaign{
		UserID:      ownerID,
		Name:        name,
		Description: "launch push",
		StartDate:   time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:     time.Date(2025, 7, 1, 0, 0, 0, 0, time.UTC),
		Budget:      decimal.NewFromInt(10000),
		Visibility:  visibility,
	}
}

func TestRepositoryCreateFindList(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()
	owner := uuid.New()
	other := uuid.New()

	created, err := repo.Create(ctx, newCampaign(owner, "Summer Splash", enums.CampaignVisibilityPublic))
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)

	_, err = repo.Create(ctx, newCampaign(owner, "Quiet Launch", enums.CampaignVisibilityPrivate))
	require.NoError(t, err)
	_, err = repo.Create(ctx, newCampaign(other, "Rival Promo", enums.CampaignVisibilityPublic))
	require.NoError(t, err)

	found, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Summer Splash", found.Name)

	all, err := repo.ListAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	mine, err := repo.ListByOwner(ctx, owner)
	require.NoError(t, err)
	assert.Len(t, mine, 2)

	public, err := repo.ListByVisibility(ctx, enums.CampaignVisibilityPublic)
	require.NoError(t, err)
	assert.Len(t, public, 2)
}

func TestRepositoryUpdate(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newCampaign(uuid.New(), "Summer Splash", enums.CampaignVisibilityPublic))
	require.NoError(t, err)

	err = repo.Update(ctx, created.ID, map[string]any{
		"name":       "Autumn Splash",
		"visibility": enums.CampaignVisibilityPrivate,
	})
	require.NoError(t, err)

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Autumn Splash", reloaded.Name)
	assert.Equal(t, enums.CampaignVisibilityPrivate, reloaded.Visibility)
}

func TestRepositoryDeleteCascades(t *testing.T) {
	db := setupCampaignsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, newCampaign(uuid.New(), "Summer Splash", enums.CampaignVisibilityPublic))
	require.NoError(t, err)

	request := &models.AdRequest{
		ID:            uuid.New(),
		CampaignID:    created.ID,
		InfluencerID:  uuid.New(),
		Requirements:  "two posts",
		PaymentAmount: decimal.NewFromInt(500),
		Status:        enums.AdRequestStatusPending,
	}
	require.NoError(t, db.Create(request).Error)

	require.NoError(t, repo.DeleteAdRequests(ctx, created.ID))
	require.NoError(t, repo.Delete(ctx, created.ID))

	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)

	var remaining int64
	require.NoError(t, db.Model(&models.AdRequest{}).Where("campaign_id = ?", created.ID).Count(&remaining).Error)
	assert.Zero(t, remaining)
}
