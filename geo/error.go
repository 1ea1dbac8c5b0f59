package geo

import (
	"errors"
	"net/http"

	"github.com/compasshq/compass/pkg/errx"
)

var ErrRegistry = errx.NewRegistry("GEO")

// Error codes
var (
	CodeEmptyAddress      = ErrRegistry.Register("EMPTY_ADDRESS", errx.TypeValidation, http.StatusBadRequest, "Address is empty")
	CodeInvalidMode       = ErrRegistry.Register("INVALID_MODE", errx.TypeValidation, http.StatusBadRequest, "Unknown travel mode")
	CodeGeocodingFailed   = ErrRegistry.Register("GEOCODING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Geocoding provider failed")
	CodeRoutingFailed     = ErrRegistry.Register("ROUTING_FAILED", errx.TypeExternal, http.StatusBadGateway, "Routing provider failed")
	CodeProviderThrottled = ErrRegistry.Register("PROVIDER_THROTTLED", errx.TypeExternal, http.StatusTooManyRequests, "Provider rate limit reached")
	CodeStoreUnavailable  = ErrRegistry.Register("STORE_UNAVAILABLE", errx.TypeExternal, http.StatusServiceUnavailable, "Durable cache store unreachable")
)

// ErrCacheMiss is the sentinel returned by CacheStore implementations when a
// key is absent or expired.
var ErrCacheMiss = errors.New("geo: cache miss")

// Helper functions
func ErrEmptyAddress() *errx.Error {
	return ErrRegistry.New(CodeEmptyAddress)
}

func ErrInvalidMode(mode TravelMode) *errx.Error {
	return ErrRegistry.New(CodeInvalidMode).WithDetail("mode", string(mode))
}

func ErrGeocodingFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeGeocodingFailed, cause)
}

func ErrRoutingFailed(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeRoutingFailed, cause)
}

func ErrStoreUnavailable(cause error) *errx.Error {
	return ErrRegistry.NewWithCause(CodeStoreUnavailable, cause)
}
