package geoinfra

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sony/gobreaker/v2"
	"github.com/tidwall/gjson"
	"golang.org/x/time/rate"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/pkg/logx"
)

// MapsConfig configures the mapping provider client.
type MapsConfig struct {
	BaseURL     string
	APIKey      string
	Timeout     time.Duration
	RatePerSec  float64 // provider rate limit budget
	RateBurst   int
	BreakerName string
}

func (c MapsConfig) normalize() MapsConfig {
	if c.BaseURL == "" {
		c.BaseURL = "https://maps.googleapis.com"
	}
	if c.Timeout <= 0 {
		c.Timeout = 5 * time.Second
	}
	if c.RatePerSec <= 0 {
		c.RatePerSec = 10
	}
	if c.RateBurst <= 0 {
		c.RateBurst = 10
	}
	if c.BreakerName == "" {
		c.BreakerName = "maps-provider"
	}
	return c
}

// MapsClient talks to a Google-style geocoding/directions API. All calls are
// rate limited and pass through a circuit breaker so a degraded provider does
// not stall the whole engine.
type MapsClient struct {
	cfg     MapsConfig
	http    *resty.Client
	limiter *rate.Limiter
	breaker *gobreaker.CircuitBreaker[string]
}

// NewMapsClient builds a provider client implementing Geocoder and RouteProvider.
func NewMapsClient(cfg MapsConfig) *MapsClient {
	cfg = cfg.normalize()

	settings := gobreaker.Settings{
		Name:    cfg.BreakerName,
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			if counts.Requests < 5 {
				return false
			}
			return float64(counts.TotalFailures)/float64(counts.Requests) >= 0.6
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logx.Warnf("circuit breaker %s: %s -> %s", name, from.String(), to.String())
		},
	}

	return &MapsClient{
		cfg:     cfg,
		http:    resty.New().SetBaseURL(cfg.BaseURL).SetTimeout(cfg.Timeout),
		limiter: rate.NewLimiter(rate.Limit(cfg.RatePerSec), cfg.RateBurst),
		breaker: gobreaker.NewCircuitBreaker[string](settings),
	}
}

func (m *MapsClient) call(ctx context.Context, path string, params map[string]string) (string, error) {
	if err := m.limiter.Wait(ctx); err != nil {
		return "", err
	}
	return m.breaker.Execute(func() (string, error) {
		resp, err := m.http.R().
			SetContext(ctx).
			SetQueryParams(params).
			SetQueryParam("key", m.cfg.APIKey).
			Get(path)
		if err != nil {
			return "", err
		}
		if resp.StatusCode() != 200 {
			return "", fmt.Errorf("provider returned status %d", resp.StatusCode())
		}
		body := resp.String()
		if status := gjson.Get(body, "status").String(); status != "OK" && status != "ZERO_RESULTS" {
			return "", fmt.Errorf("provider status %s", status)
		}
		return body, nil
	})
}

// Geocode resolves an address to coordinates with a quality grade.
func (m *MapsClient) Geocode(ctx context.Context, address string) (*geo.GeocodeResult, error) {
	body, err := m.call(ctx, "/maps/api/geocode/json", map[string]string{
		"address": address,
	})
	if err != nil {
		return nil, geo.ErrGeocodingFailed(err)
	}

	first := gjson.Get(body, "results.0")
	if !first.Exists() {
		return nil, geo.ErrGeocodingFailed(fmt.Errorf("no results for %q", address))
	}

	return &geo.GeocodeResult{
		Address: address,
		Location: geo.Coordinates{
			Lat: first.Get("geometry.location.lat").Float(),
			Lng: first.Get("geometry.location.lng").Float(),
		},
		Quality: qualityFromLocationType(first.Get("geometry.location_type").String()),
	}, nil
}

// Route computes one mode's route between two coordinates. Traffic delay is
// only requested for driving.
func (m *MapsClient) Route(ctx context.Context, origin, dest geo.Coordinates, mode geo.TravelMode) (*geo.Route, error) {
	if !mode.IsValid() {
		return nil, geo.ErrInvalidMode(mode)
	}

	params := map[string]string{
		"origin":      fmt.Sprintf("%f,%f", origin.Lat, origin.Lng),
		"destination": fmt.Sprintf("%f,%f", dest.Lat, dest.Lng),
		"mode":        providerMode(mode),
	}
	if mode == geo.ModeDriving {
		params["departure_time"] = "now"
		params["traffic_model"] = "best_guess"
	}

	body, err := m.call(ctx, "/maps/api/directions/json", params)
	if err != nil {
		return nil, geo.ErrRoutingFailed(err)
	}

	leg := gjson.Get(body, "routes.0.legs.0")
	if !leg.Exists() {
		return nil, geo.ErrRoutingFailed(fmt.Errorf("no route for mode %s", mode))
	}

	duration := time.Duration(leg.Get("duration.value").Int()) * time.Second
	route := &geo.Route{
		Mode:     mode,
		Distance: leg.Get("distance.value").Float(),
		Duration: duration,
		Steps:    int(leg.Get("steps.#").Int()),
	}
	if mode == geo.ModeDriving {
		if inTraffic := leg.Get("duration_in_traffic.value"); inTraffic.Exists() {
			trafficked := time.Duration(inTraffic.Int()) * time.Second
			if trafficked > duration {
				route.TrafficDelay = trafficked - duration
			}
		}
	}
	return route, nil
}

func providerMode(mode geo.TravelMode) string {
	switch mode {
	case geo.ModeDriving:
		return "driving"
	case geo.ModeTransit:
		return "transit"
	case geo.ModeCycling:
		return "bicycling"
	default:
		return "walking"
	}
}

func qualityFromLocationType(locationType string) geo.GeocodeQuality {
	switch locationType {
	case "ROOFTOP":
		return geo.QualityExact
	case "RANGE_INTERPOLATED", "GEOMETRIC_CENTER":
		return geo.QualityApproximate
	default:
		return geo.QualityPartial
	}
}
