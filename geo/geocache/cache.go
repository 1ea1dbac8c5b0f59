package geocache

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"golang.org/x/sync/singleflight"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/pkg/logx"
)

// Observer receives cache and provider events. Implemented by the metrics
// package; a nil observer disables instrumentation.
type Observer interface {
	CacheLookup(tier, result string)
	ProviderCall(op string, err error)
}

// Config controls cache sizing, TTLs and the failure fallback.
type Config struct {
	LocalCapacity int
	LocalTTL      time.Duration
	StoreTTL      time.Duration
	FailedTTL     time.Duration
	// Fallback is the city-center coordinate stored on provider failure so
	// repeated failures do not repeatedly hit the provider.
	Fallback geo.Coordinates
}

// DefaultConfig returns the documented defaults: 1000-entry local tier with a
// 1h TTL, 24h durable TTL, 5m retry window for failed lookups.
func DefaultConfig() Config {
	return Config{
		LocalCapacity: 1000,
		LocalTTL:      time.Hour,
		StoreTTL:      24 * time.Hour,
		FailedTTL:     5 * time.Minute,
		Fallback:      geo.Coordinates{Lat: 48.8566, Lng: 2.3522},
	}
}

func (c Config) normalize() Config {
	d := DefaultConfig()
	if c.LocalCapacity <= 0 {
		c.LocalCapacity = d.LocalCapacity
	}
	if c.LocalTTL <= 0 {
		c.LocalTTL = d.LocalTTL
	}
	if c.StoreTTL <= 0 {
		c.StoreTTL = d.StoreTTL
	}
	if c.FailedTTL <= 0 {
		c.FailedTTL = d.FailedTTL
	}
	if c.Fallback.IsZero() {
		c.Fallback = d.Fallback
	}
	return c
}

// Stats is a point-in-time snapshot of cache counters.
type Stats struct {
	LocalHits        uint64 `json:"local_hits"`
	StoreHits        uint64 `json:"store_hits"`
	Misses           uint64 `json:"misses"`
	ProviderCalls    uint64 `json:"provider_calls"`
	ProviderFailures uint64 `json:"provider_failures"`
	Evictions        uint64 `json:"evictions"`
	LocalEntries     int    `json:"local_entries"`
}

// Cache is the two-tier geocode cache: a bounded in-process LRU in front of an
// optional shared durable store, with per-address request coalescing.
type Cache struct {
	cfg      Config
	local    *lruTier
	store    geo.CacheStore // nil degrades to in-process-only caching
	geocoder geo.Geocoder
	group    singleflight.Group
	observer Observer

	localHits        atomic.Uint64
	storeHits        atomic.Uint64
	misses           atomic.Uint64
	providerCalls    atomic.Uint64
	providerFailures atomic.Uint64
}

// New builds a cache over a geocoder and an optional durable store.
func New(geocoder geo.Geocoder, store geo.CacheStore, cfg Config, observer Observer) *Cache {
	cfg = cfg.normalize()
	return &Cache{
		cfg:      cfg,
		local:    newLRUTier(cfg.LocalCapacity, cfg.LocalTTL),
		store:    store,
		geocoder: geocoder,
		observer: observer,
	}
}

// Resolve returns coordinates for an address, consulting the local tier, then
// the durable store, then the provider. Provider failures yield a
// quality=FAILED result at the fallback coordinates instead of an error.
func (c *Cache) Resolve(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	normalized := geo.NormalizeAddress(address)
	if normalized == "" {
		return nil, geo.ErrEmptyAddress()
	}
	key := geo.CacheKey(normalized)

	if result, ok := c.local.get(key); ok {
		c.localHits.Add(1)
		c.observe("local", "hit")
		return result, nil
	}
	c.observe("local", "miss")

	if result := c.storeGet(ctx, key); result != nil {
		c.storeHits.Add(1)
		c.observe("store", "hit")
		c.local.put(key, result, c.localTTLFor(result))
		return result, nil
	}
	c.observe("store", "miss")
	c.misses.Add(1)

	// Coalesce concurrent lookups of the same address into one provider call.
	v, err, _ := c.group.Do(key, func() (any, error) {
		if result, ok := c.local.get(key); ok {
			return result, nil
		}
		return c.resolveFromProvider(ctx, normalized, key), nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*geo.GeocodeResult), nil
}

func (c *Cache) resolveFromProvider(ctx context.Context, normalized, key string) *geo.GeocodeResult {
	c.providerCalls.Add(1)
	result, err := c.geocoder.Geocode(ctx, normalized)
	if c.observer != nil {
		c.observer.ProviderCall("geocode", err)
	}
	if err != nil || result == nil {
		c.providerFailures.Add(1)
		logx.Warnf("geocoding failed for %q, caching fallback for %s: %v", normalized, c.cfg.FailedTTL, err)
		result = &geo.GeocodeResult{
			Address:  normalized,
			Location: c.cfg.Fallback,
			Quality:  geo.QualityFailed,
		}
	}
	result.Address = normalized
	result.CachedAt = time.Now()

	c.local.put(key, result, c.localTTLFor(result))
	c.storeSet(ctx, key, result)
	return result
}

// Put inserts a result directly, bypassing the provider.
func (c *Cache) Put(ctx context.Context, address string, result *geo.GeocodeResult) error {
	normalized := geo.NormalizeAddress(address)
	if normalized == "" {
		return geo.ErrEmptyAddress()
	}
	key := geo.CacheKey(normalized)
	result.Address = normalized
	if result.CachedAt.IsZero() {
		result.CachedAt = time.Now()
	}
	c.local.put(key, result, c.localTTLFor(result))
	c.storeSet(ctx, key, result)
	return nil
}

// Invalidate removes one address from both tiers.
func (c *Cache) Invalidate(ctx context.Context, address string) error {
	normalized := geo.NormalizeAddress(address)
	if normalized == "" {
		return geo.ErrEmptyAddress()
	}
	key := geo.CacheKey(normalized)
	c.local.remove(key)
	if c.store != nil {
		if err := c.store.Delete(ctx, key); err != nil {
			return geo.ErrStoreUnavailable(err)
		}
	}
	return nil
}

// Clear empties the in-process tier. Durable entries age out by TTL.
func (c *Cache) Clear() {
	c.local.clear()
}

// Stats returns a snapshot of the cache counters.
func (c *Cache) Stats() Stats {
	return Stats{
		LocalHits:        c.localHits.Load(),
		StoreHits:        c.storeHits.Load(),
		Misses:           c.misses.Load(),
		ProviderCalls:    c.providerCalls.Load(),
		ProviderFailures: c.providerFailures.Load(),
		Evictions:        c.local.evicted(),
		LocalEntries:     c.local.len(),
	}
}

func (c *Cache) localTTLFor(result *geo.GeocodeResult) time.Duration {
	if result.Quality == geo.QualityFailed {
		return c.cfg.FailedTTL
	}
	return c.cfg.LocalTTL
}

func (c *Cache) storeGet(ctx context.Context, key string) *geo.GeocodeResult {
	if c.store == nil {
		return nil
	}
	data, err := c.store.Get(ctx, key)
	if err != nil {
		if err != geo.ErrCacheMiss {
			logx.Warnf("durable cache read failed, falling through: %v", err)
		}
		return nil
	}
	var result geo.GeocodeResult
	if err := json.Unmarshal(data, &result); err != nil {
		logx.Warnf("corrupt durable cache entry %s: %v", key, err)
		return nil
	}
	return &result
}

func (c *Cache) storeSet(ctx context.Context, key string, result *geo.GeocodeResult) {
	if c.store == nil {
		return
	}
	ttl := c.cfg.StoreTTL
	if result.Quality == geo.QualityFailed {
		ttl = c.cfg.FailedTTL
	}
	data, err := json.Marshal(result)
	if err != nil {
		return
	}
	if err := c.store.Set(ctx, key, data, ttl); err != nil {
		logx.Warnf("durable cache write failed, continuing in-process only: %v", err)
	}
}

func (c *Cache) observe(tier, result string) {
	if c.observer != nil {
		c.observer.CacheLookup(tier, result)
	}
}
