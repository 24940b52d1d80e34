package campaigns

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	pkgerrors "github.com/lucasmedina/adbridge-backend/pkg/errors"
	"github.com/lucasmedina/adbridge-backend/pkg/logger"
	"github.com/lucasmedina/adbridge-backend/pkg/redis"
)

const cacheName = "campaigns"

// Cache is the read-through campaign listing cache. The cached payload holds
// every campaign regardless of visibility; callers filter after the fetch.
type Cache struct {
	redis *redis.Client
	logg  *logger.Logger
	ttl   time.Duration
}

// NewCache builds the campaign cache. A zero TTL means entries never expire
// and are only refreshed through Invalidate.
func NewCache(client *redis.Client, logg *logger.Logger, ttl time.Duration) *Cache {
	return &Cache{redis: client, logg: logg, ttl: ttl}
}

// Get returns the cached summaries, or nil with no error on a cache miss.
func (c *Cache) Get(ctx context.Context) ([]CampaignSummary, error) {
	raw, err := c.redis.Get(ctx, c.redis.CacheKey(cacheName))
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "read campaign cache")
	}

	var summaries []CampaignSummary
	if err := json.Unmarshal([]byte(raw), &summaries); err != nil {
		// A corrupt entry is treated as a miss so the caller repopulates it.
		c.logg.Error(ctx, "corrupt campaign cache entry, dropping", err)
		if delErr := c.Invalidate(ctx); delErr != nil {
			return nil, delErr
		}
		return nil, nil
	}
	return summaries, nil
}

// Set stores the full summary list under the shared cache key.
func (c *Cache) Set(ctx context.Context, summaries []CampaignSummary) error {
	payload, err := json.Marshal(summaries)
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "encode campaign cache")
	}
	if err := c.redis.Set(ctx, c.redis.CacheKey(cacheName), payload, c.ttl); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "write campaign cache")
	}
	return nil
}

// Invalidate drops the cached listing after a committed campaign write.
func (c *Cache) Invalidate(ctx context.Context) error {
	if err := c.redis.Del(ctx, c.redis.CacheKey(cacheName)); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "invalidate campaign cache")
	}
	return nil
}
