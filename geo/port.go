package geo

import (
	"context"
	"time"
)

// Geocoder resolves a free-form address to coordinates. Implementations talk
// to a rate-limited provider; callers go through the cache, never directly.
type Geocoder interface {
	Geocode(ctx context.Context, address string) (*GeocodeResult, error)
}

// RouteProvider computes a route between two coordinates for one travel mode.
type RouteProvider interface {
	Route(ctx context.Context, origin, dest Coordinates, mode TravelMode) (*Route, error)
}

// CacheStore is the durable second cache tier: plain key→bytes with TTL.
// Get returns ErrCacheMiss for absent or expired keys. Absence of a store
// degrades the cache to in-process-only operation.
type CacheStore interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}
