package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/bradfitz/gomemcache/memcache"
	gocache "github.com/patrickmn/go-cache"
	"github.com/zeebo/xxh3"

	"github.com/totegamma/jobtrack/internal/domain"
)

const (
	keyPrefix        = "jobtrack:dashboard:"
	generationPrefix = "jobtrack:dashgen:"

	// memcached reads expirations above 30 days as unix timestamps.
	maxRelativeExpiration = 60 * 60 * 24 * 30
)

// DashboardKey hashes the owner id into a fixed-width key that is always a
// valid memcached key.
func DashboardKey(ownerID string) string {
	return keyPrefix + strconv.FormatUint(xxh3.HashString(ownerID), 16)
}

func generationKey(ownerID string) string {
	return generationPrefix + strconv.FormatUint(xxh3.HashString(ownerID), 16)
}

func entryKey(ownerID string, generation uint64) string {
	return DashboardKey(ownerID) + ":" + strconv.FormatUint(generation, 10)
}

// expiration converts ttl to memcached seconds. Zero means never expire to
// memcached, so sub-second ttls round up to one.
func expiration(ttl time.Duration) int32 {
	seconds := int64(math.Ceil(ttl.Seconds()))
	if seconds < 1 {
		return 1
	}
	if seconds > maxRelativeExpiration {
		return maxRelativeExpiration
	}
	return int32(seconds)
}

// MemcacheDashboardCache shares dashboards between instances through memcached.
// Entries are keyed by the owner's generation; Invalidate bumps it so a
// dashboard computed before a write lands on a key nobody reads again.
type MemcacheDashboardCache struct {
	client *memcache.Client
	ttl    time.Duration
}

func NewMemcacheDashboardCache(client *memcache.Client, ttl time.Duration) *MemcacheDashboardCache {
	return &MemcacheDashboardCache{client: client, ttl: ttl}
}

func (c *MemcacheDashboardCache) Generation(ctx context.Context, ownerID string) uint64 {
	item, err := c.client.Get(generationKey(ownerID))
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			slog.WarnContext(
				ctx, "dashboard generation read failed",
				slog.String("error", err.Error()),
				slog.String("module", "cache"),
			)
		}
		return 0
	}
	generation, err := strconv.ParseUint(strings.TrimSpace(string(item.Value)), 10, 64)
	if err != nil {
		return 0
	}
	return generation
}

func (c *MemcacheDashboardCache) Get(ctx context.Context, ownerID string, generation uint64) (domain.Dashboard, bool) {
	item, err := c.client.Get(entryKey(ownerID, generation))
	if err != nil {
		if !errors.Is(err, memcache.ErrCacheMiss) {
			slog.WarnContext(
				ctx, "dashboard cache read failed",
				slog.String("error", err.Error()),
				slog.String("module", "cache"),
			)
		}
		return domain.Dashboard{}, false
	}

	var dashboard domain.Dashboard
	if err := json.Unmarshal(item.Value, &dashboard); err != nil {
		slog.WarnContext(
			ctx, "dashboard cache entry is corrupt",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
		return domain.Dashboard{}, false
	}
	return dashboard, true
}

func (c *MemcacheDashboardCache) Set(ctx context.Context, ownerID string, generation uint64, dashboard domain.Dashboard) {
	value, err := json.Marshal(dashboard)
	if err != nil {
		return
	}
	err = c.client.Set(&memcache.Item{
		Key:        entryKey(ownerID, generation),
		Value:      value,
		Expiration: expiration(c.ttl),
	})
	if err != nil {
		slog.WarnContext(
			ctx, "dashboard cache write failed",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

func (c *MemcacheDashboardCache) Invalidate(ctx context.Context, ownerID string) {
	key := generationKey(ownerID)
	_, err := c.client.Increment(key, 1)
	if errors.Is(err, memcache.ErrCacheMiss) {
		err = c.client.Add(&memcache.Item{Key: key, Value: []byte("1")})
		if errors.Is(err, memcache.ErrNotStored) {
			// another instance created it first
			_, err = c.client.Increment(key, 1)
		}
	}
	if err != nil {
		slog.WarnContext(
			ctx, "dashboard cache invalidation failed",
			slog.String("error", err.Error()),
			slog.String("module", "cache"),
		)
	}
}

// LocalDashboardCache keeps dashboards in process memory. Used when no
// memcached address is configured.
type LocalDashboardCache struct {
	cache *gocache.Cache
}

func NewLocalDashboardCache(ttl time.Duration) *LocalDashboardCache {
	return &LocalDashboardCache{
		cache: gocache.New(ttl, 2*ttl),
	}
}

func (c *LocalDashboardCache) Generation(ctx context.Context, ownerID string) uint64 {
	cached, found := c.cache.Get(generationKey(ownerID))
	if !found {
		return 0
	}
	generation, _ := cached.(uint64)
	return generation
}

func (c *LocalDashboardCache) Get(ctx context.Context, ownerID string, generation uint64) (domain.Dashboard, bool) {
	cached, found := c.cache.Get(entryKey(ownerID, generation))
	if !found {
		return domain.Dashboard{}, false
	}
	dashboard, ok := cached.(domain.Dashboard)
	return dashboard, ok
}

func (c *LocalDashboardCache) Set(ctx context.Context, ownerID string, generation uint64, dashboard domain.Dashboard) {
	c.cache.Set(entryKey(ownerID, generation), dashboard, gocache.DefaultExpiration)
}

func (c *LocalDashboardCache) Invalidate(ctx context.Context, ownerID string) {
	key := generationKey(ownerID)
	if _, err := c.cache.IncrementUint64(key, 1); err == nil {
		return
	}
	if err := c.cache.Add(key, uint64(1), gocache.NoExpiration); err != nil {
		c.cache.IncrementUint64(key, 1)
	}
}
