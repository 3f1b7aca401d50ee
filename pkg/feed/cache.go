package feed

import (
	"context"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/agentstation/stocksync/pkg/constants"
	"github.com/agentstation/stocksync/pkg/inventory"
	"github.com/agentstation/stocksync/pkg/logging"
)

// Cached keeps the records of a Provider for a TTL so repeated reads within
// one window do not download the archive again. The TTL must stay below the
// sync interval. Failed fetches are never cached.
type Cached struct {
	provider Provider
	store    *gocache.Cache
}

var _ Provider = (*Cached)(nil)

// NewCached wraps p with a TTL cache. A non-positive ttl uses constants.FeedCacheTTL.
func NewCached(p Provider, ttl time.Duration) *Cached {
	if ttl <= 0 {
		ttl = constants.FeedCacheTTL
	}
	return &Cached{
		provider: p,
		store:    gocache.New(ttl, constants.CacheCleanupInterval),
	}
}

// Name returns the wrapped provider's name.
func (c *Cached) Name() string {
	return c.provider.Name()
}

// Fetch returns cached records or fetches fresh ones.
func (c *Cached) Fetch(ctx context.Context) ([]inventory.Record, error) {
	key := c.provider.Name()
	if v, ok := c.store.Get(key); ok {
		records := v.([]inventory.Record)
		logging.FromContext(ctx).Debug().
			Str("feed", key).
			Int("records", len(records)).
			Msg("Using cached supplier feed")
		return records, nil
	}

	records, err := c.provider.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	c.store.Set(key, records, gocache.DefaultExpiration)
	return records, nil
}

// Invalidate drops the cached records.
func (c *Cached) Invalidate() {
	c.store.Flush()
}

// ItemCount returns the number of cached feeds.
func (c *Cached) ItemCount() int {
	return c.store.ItemCount()
}
