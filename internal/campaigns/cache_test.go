package campaigns

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/lucasmedina/adbridge-backend/pkg/enums"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
	"github.com/lucasmedina/adbridge-backend/pkg/redis"
)

func newTestCache(t *testing.T) (*Cache, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	client := redis.FromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	logg := logger.New(logger.Options{ServiceName: "campaigns-test"})
	return NewCache(client, logg, 0), mr
}

func sampleSummaries() []CampaignSummary {
	return []CampaignSummary{
		{
			ID:          uuid.New(),
			Name:        "Summer Splash",
			Description: "launch push",
			StartDate:   "2025-06-01",
			EndDate:     "2025-07-01",
			Budget:      decimal.NewFromInt(10000),
			Visibility:  enums.CampaignVisibilityPublic,
		},
		{
			ID:         uuid.New(),
			Name:       "Quiet Launch",
			StartDate:  "2025-08-01",
			EndDate:    "2025-09-01",
			Budget:     decimal.NewFromInt(2500),
			Visibility: enums.CampaignVisibilityPrivate,
		},
	}
}

func TestCacheMissThenHit(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)

	summaries := sampleSummaries()
	require.NoError(t, cache.Set(ctx, summaries))
	assert.True(t, mr.Exists("ab:cache:campaigns"))

	got, err = cache.Get(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, summaries[0].ID, got[0].ID)
	assert.Equal(t, "2025-06-01", got[0].StartDate)
}

func TestCacheInvalidate(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleSummaries()))
	require.NoError(t, cache.Invalidate(ctx))
	assert.False(t, mr.Exists("ab:cache:campaigns"))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestCacheCorruptEntryTreatedAsMiss(t *testing.T) {
	cache, mr := newTestCache(t)
	ctx := context.Background()

	require.NoError(t, mr.Set("ab:cache:campaigns", "{not json"))

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
	assert.False(t, mr.Exists("ab:cache:campaigns"))
}

func TestCacheTTLExpiry(t *testing.T) {
	mr := miniredis.RunT(t)
	client := redis.FromRedis(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	logg := logger.New(logger.Options{ServiceName: "campaigns-test"})
	cache := NewCache(client, logg, time.Minute)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, sampleSummaries()))
	mr.FastForward(2 * time.Minute)

	got, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Nil(t, got)
}
