package geo

import "time"

// TravelMode is a commute transport mode.
type TravelMode string

const (
	ModeDriving TravelMode = "DRIVING"
	ModeTransit TravelMode = "TRANSIT"
	ModeCycling TravelMode = "CYCLING"
	ModeWalking TravelMode = "WALKING"
)

// KnownModes lists every supported travel mode.
var KnownModes = []TravelMode{ModeDriving, ModeTransit, ModeCycling, ModeWalking}

// IsValid reports whether the mode is one of the supported values.
func (m TravelMode) IsValid() bool {
	switch m {
	case ModeDriving, ModeTransit, ModeCycling, ModeWalking:
		return true
	default:
		return false
	}
}

// GeocodeQuality qualifies how trustworthy a resolved coordinate is.
type GeocodeQuality string

const (
	QualityExact       GeocodeQuality = "EXACT"
	QualityApproximate GeocodeQuality = "APPROXIMATE"
	QualityPartial     GeocodeQuality = "PARTIAL"
	QualityFailed      GeocodeQuality = "FAILED"
)

// Coordinates is a WGS84 lat/lng pair.
type Coordinates struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// IsZero reports whether the coordinates are unset.
func (c Coordinates) IsZero() bool {
	return c.Lat == 0 && c.Lng == 0
}

// GeocodeResult is a resolved address. Failed results are cache-managed with a
// short TTL and must never be treated as exact.
type GeocodeResult struct {
	Address  string         `json:"address"` // normalized form
	Location Coordinates    `json:"location"`
	Quality  GeocodeQuality `json:"quality"`
	CachedAt time.Time      `json:"cached_at"`
}

// IsUsable reports whether the coordinates can back a route computation.
func (g *GeocodeResult) IsUsable() bool {
	return g != nil && g.Quality != QualityFailed
}

// Route is one mode's path between two points. TrafficDelay is only populated
// for driving.
type Route struct {
	Mode         TravelMode    `json:"mode"`
	Distance     float64       `json:"distance_meters"`
	Duration     time.Duration `json:"duration"`
	TrafficDelay time.Duration `json:"traffic_delay,omitempty"`
	Steps        int           `json:"steps"`
}

// DurationMinutes returns the route duration rounded down to whole minutes.
func (r *Route) DurationMinutes() int {
	return int(r.Duration / time.Minute)
}
