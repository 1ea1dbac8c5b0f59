package commute

import (
	"context"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/geo/geocache"
	"github.com/compasshq/compass/matching"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/compasshq/compass/pkg/logx"
)

// Compatibility is the evaluation of one candidate against one job address.
// The compatible set is always a subset of the candidate's selected modes.
type Compatibility struct {
	JobAddress      kernel.Address                `json:"job_address"`
	Routes          map[geo.TravelMode]*geo.Route `json:"routes"`
	CompatibleModes []geo.TravelMode              `json:"compatible_modes"`
	RecommendedMode geo.TravelMode                `json:"recommended_mode,omitempty"`
	Score           float64                       `json:"score"`
	// Degraded marks results built on failed-quality geocoding; their routes
	// start or end at fallback coordinates and should not be trusted.
	Degraded bool `json:"degraded,omitempty"`
}

// Evaluator determines which travel modes are time-compatible for a candidate
// and a job address. Addresses resolve through the geocode cache, never
// straight to the provider.
type Evaluator struct {
	cache  *geocache.Cache
	routes geo.RouteProvider
}

// NewEvaluator creates a commute evaluator.
func NewEvaluator(cache *geocache.Cache, routes geo.RouteProvider) *Evaluator {
	return &Evaluator{cache: cache, routes: routes}
}

// Evaluate computes per-mode routes between the candidate's home and the job
// address and marks each selected mode compatible iff its duration stays
// within the candidate's stated ceiling. The recommended mode is the fastest
// compatible one.
func (e *Evaluator) Evaluate(ctx context.Context, prefs matching.TransportPreferences, jobAddress kernel.Address) (*Compatibility, error) {
	if prefs.HomeAddress.IsEmpty() || jobAddress.IsEmpty() {
		return nil, geo.ErrEmptyAddress()
	}
	for _, mode := range prefs.Modes {
		if !mode.IsValid() {
			return nil, geo.ErrInvalidMode(mode)
		}
	}

	home, err := e.cache.Resolve(ctx, prefs.HomeAddress.String())
	if err != nil {
		return nil, err
	}
	work, err := e.cache.Resolve(ctx, jobAddress.String())
	if err != nil {
		return nil, err
	}

	result := &Compatibility{
		JobAddress: jobAddress,
		Routes:     make(map[geo.TravelMode]*geo.Route, len(prefs.Modes)),
		Degraded:   !home.IsUsable() || !work.IsUsable(),
	}

	var fastest *geo.Route
	for _, mode := range prefs.Modes {
		route, err := e.routes.Route(ctx, home.Location, work.Location, mode)
		if err != nil {
			logx.Debugf("route %s -> %s (%s) failed: %v", prefs.HomeAddress, jobAddress, mode, err)
			continue
		}
		result.Routes[mode] = route

		if route.DurationMinutes() <= prefs.MaxFor(mode) {
			result.CompatibleModes = append(result.CompatibleModes, mode)
			if fastest == nil || route.Duration < fastest.Duration {
				fastest = route
			}
		}
	}

	if fastest != nil {
		result.RecommendedMode = fastest.Mode
	}
	if len(prefs.Modes) > 0 {
		result.Score = float64(len(result.CompatibleModes)) / float64(len(prefs.Modes))
	}
	return result, nil
}

// FastestRoute returns the recommended mode's route, falling back to the
// fastest computed route when nothing was compatible.
func (c *Compatibility) FastestRoute() *geo.Route {
	if route, ok := c.Routes[c.RecommendedMode]; ok && c.RecommendedMode != "" {
		return route
	}
	var fastest *geo.Route
	for _, route := range c.Routes {
		if fastest == nil || route.Duration < fastest.Duration {
			fastest = route
		}
	}
	return fastest
}
