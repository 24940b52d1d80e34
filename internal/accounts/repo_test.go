package accounts

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	"github.com/lucasmedina/adbridge-backend/pkg/pagination"
)

func setupAccountsTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:"), &gorm.Config{})
	require.NoError(t, err)

	users := `
CREATE TABLE IF NOT EXISTS users (
  id TEXT PRIMARY KEY,
  username TEXT NOT NULL UNIQUE,
  email TEXT NOT NULL UNIQUE,
  password_hash TEXT NOT NULL,
  role TEXT NOT NULL,
  company_name TEXT,
  industry TEXT,
  budget TEXT,
  name TEXT,
  category TEXT,
  niche TEXT,
  reach INTEGER,
  flagged INTEGER NOT NULL DEFAULT 0,
  approved INTEGER NOT NULL DEFAULT 1,
  created_at DATETIME,
  updated_at DATETIME
);`
	require.NoError(t, db.Exec(users).Error)
	return db
}

func seedSponsorDTO(username, email string) CreateUserDTO {
	company := "Acme Beverages"
	industry := "beverage"
	budget := decimal.NewFromInt(50000)
	return CreateUserDTO{
		Username:     username,
		Email:        email,
		PasswordHash: "hash",
		Role:         enums.AccountRoleSponsor,
		CompanyName:  &company,
		Industry:     &industry,
		Budget:       &budget,
	}
}

func TestRepositoryCreateAndFind(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	dto := seedSponsorDTO("acme", "acme@example.com")
	created, err := repo.Create(ctx, dto)
	require.NoError(t, err)
	require.NotEqual(t, uuid.Nil, created.ID)
	assert.True(t, created.Approved)

	byID, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "acme", byID.Username)

	byEmail, err := repo.FindByEmail(ctx, "acme@example.com")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byEmail.ID)

	byUsername, err := repo.FindByUsername(ctx, "acme")
	require.NoError(t, err)
	assert.Equal(t, created.ID, byUsername.ID)

	_, err = repo.FindByEmail(ctx, "missing@example.com")
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}

func TestRepositoryListByRole(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	_, err := repo.Create(ctx, seedSponsorDTO("acme", "acme@example.com"))
	require.NoError(t, err)

	name := "Jess"
	reach := int64(120000)
	_, err = repo.Create(ctx, CreateUserDTO{
		Username:     "jess",
		Email:        "jess@example.com",
		PasswordHash: "hash",
		Role:         enums.AccountRoleInfluencer,
		Name:         &name,
		Reach:        &reach,
	})
	require.NoError(t, err)

	influencers, err := repo.ListByRole(ctx, enums.AccountRoleInfluencer)
	require.NoError(t, err)
	require.Len(t, influencers, 1)
	assert.Equal(t, "jess", influencers[0].Username)

	sponsors, err := repo.ListByRole(ctx, enums.AccountRoleSponsor)
	require.NoError(t, err)
	require.Len(t, sponsors, 1)
}

func TestRepositoryListByRolePage(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	for _, username := range []string{"ana", "ben", "cal"} {
		name := username
		reach := int64(10000)
		_, err := repo.Create(ctx, CreateUserDTO{
			Username:     username,
			Email:        username + "@example.com",
			PasswordHash: "hash",
			Role:         enums.AccountRoleInfluencer,
			Name:         &name,
			Reach:        &reach,
		})
		require.NoError(t, err)
	}

	first, next, err := repo.ListByRolePage(ctx, enums.AccountRoleInfluencer, pagination.Params{Limit: 2})
	require.NoError(t, err)
	require.Len(t, first, 2)
	require.NotEmpty(t, next)

	second, last, err := repo.ListByRolePage(ctx, enums.AccountRoleInfluencer, pagination.Params{Limit: 2, Cursor: next})
	require.NoError(t, err)
	require.Len(t, second, 1)
	assert.Empty(t, last)

	seen := map[uuid.UUID]bool{}
	for _, u := range append(first, second...) {
		assert.False(t, seen[u.ID])
		seen[u.ID] = true
	}

	_, _, err = repo.ListByRolePage(ctx, enums.AccountRoleInfluencer, pagination.Params{Cursor: "not-a-cursor"})
	assert.Error(t, err)
}

func TestRepositoryModerationFlags(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, seedSponsorDTO("acme", "acme@example.com"))
	require.NoError(t, err)

	require.NoError(t, repo.SetFlagged(ctx, created.ID, true))
	require.NoError(t, repo.SetApproved(ctx, created.ID, false))

	reloaded, err := repo.FindByID(ctx, created.ID)
	require.NoError(t, err)
	assert.True(t, reloaded.Flagged)
	assert.False(t, reloaded.Approved)
}

func TestRepositoryDelete(t *testing.T) {
	db := setupAccountsTestDB(t)
	repo := NewRepository(db)
	ctx := context.Background()

	created, err := repo.Create(ctx, seedSponsorDTO("acme", "acme@example.com"))
	require.NoError(t, err)

	require.NoError(t, repo.Delete(ctx, created.ID))
	_, err = repo.FindByID(ctx, created.ID)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
