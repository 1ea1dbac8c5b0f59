package commute

import (
	"fmt"
	"strings"
	"time"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/matching"
)

// LocationScore is the enriched commute quality: four sub-scores in [0,1], a
// weighted and adaptively scaled final score, and human-readable explanations.
type LocationScore struct {
	Time         float64  `json:"time"`
	Cost         float64  `json:"cost"`
	Comfort      float64  `json:"comfort"`
	Reliability  float64  `json:"reliability"`
	Final        float64  `json:"final"`
	Explanations []string `json:"explanations,omitempty"`
	Degraded     bool     `json:"degraded,omitempty"`
}

// Sub-score weights: time dominates, the rest share the remainder equally.
const (
	timeWeight        = 0.4
	costWeight        = 0.2
	comfortWeight     = 0.2
	reliabilityWeight = 0.2
)

// ScorerConfig holds the monthly cost model and telework bonus bounds.
type ScorerConfig struct {
	// DrivingCostPerKm covers fuel and wear per kilometer.
	DrivingCostPerKm float64
	// TransitMonthlyPass is the flat monthly transit pass price.
	TransitMonthlyPass float64
	// CyclingMonthly covers bike maintenance.
	CyclingMonthly float64
	// CostCeiling is the monthly cost at which the cost sub-score hits 0.
	CostCeiling float64
	// TeleworkBonusPerDay scales time/cost/comfort up per weekly telework day.
	TeleworkBonusPerDay float64
}

// DefaultScorerConfig returns the documented cost model: €0 → 1.0, €150+ → 0.0.
func DefaultScorerConfig() ScorerConfig {
	return ScorerConfig{
		DrivingCostPerKm:    0.20,
		TransitMonthlyPass:  75,
		CyclingMonthly:      10,
		CostCeiling:         150,
		TeleworkBonusPerDay: 0.05,
	}
}

func (c ScorerConfig) normalize() ScorerConfig {
	d := DefaultScorerConfig()
	if c.DrivingCostPerKm <= 0 {
		c.DrivingCostPerKm = d.DrivingCostPerKm
	}
	if c.TransitMonthlyPass <= 0 {
		c.TransitMonthlyPass = d.TransitMonthlyPass
	}
	if c.CyclingMonthly <= 0 {
		c.CyclingMonthly = d.CyclingMonthly
	}
	if c.CostCeiling <= 0 {
		c.CostCeiling = d.CostCeiling
	}
	if c.TeleworkBonusPerDay <= 0 {
		c.TeleworkBonusPerDay = d.TeleworkBonusPerDay
	}
	return c
}

// Scorer converts a commute evaluation into a composite 0-1 quality score.
type Scorer struct {
	cfg ScorerConfig
}

// NewScorer creates a location scorer.
func NewScorer(cfg ScorerConfig) *Scorer {
	return &Scorer{cfg: cfg.normalize()}
}

// Score grades a commute on time, cost, comfort and reliability, applies the
// telework bonus and the listening-reason factor, and clamps to [0,1]. A
// commute with no usable route data produces the fixed neutral result.
func (s *Scorer) Score(commute *Compatibility, prefs matching.TransportPreferences, listeningReason string) *LocationScore {
	if commute == nil || commute.Degraded || len(commute.Routes) == 0 {
		return neutralScore()
	}
	route := commute.FastestRoute()
	if route == nil {
		return neutralScore()
	}

	result := &LocationScore{
		Time:        timeScore(route.Duration),
		Cost:        s.costScore(route),
		Comfort:     comfortScore(route),
		Reliability: reliabilityScore(route),
	}

	monthly := s.monthlyCost(route)
	result.Explanations = append(result.Explanations,
		fmt.Sprintf("%s commute of %d min (%.1f km)", strings.ToLower(string(route.Mode)), route.DurationMinutes(), route.Distance/1000),
		fmt.Sprintf("estimated monthly cost €%.0f", monthly),
	)

	if prefs.TeleworkDays > 0 {
		days := prefs.TeleworkDays
		if days > 5 {
			days = 5
		}
		bonus := 1 + s.cfg.TeleworkBonusPerDay*float64(days)
		result.Time = clamp01(result.Time * bonus)
		result.Cost = clamp01(result.Cost * bonus)
		result.Comfort = clamp01(result.Comfort * bonus)
		result.Explanations = append(result.Explanations,
			fmt.Sprintf("%d telework days/week soften the commute", days))
	}

	final := timeWeight*result.Time +
		costWeight*result.Cost +
		comfortWeight*result.Comfort +
		reliabilityWeight*result.Reliability

	if factor := reasonFactor(listeningReason); factor != 1 {
		final *= factor
		result.Explanations = append(result.Explanations,
			fmt.Sprintf("weighting adjusted x%.1f for stated reason", factor))
	}
	result.Final = clamp01(final)
	return result
}

// neutralScore is the fixed degraded-mode result: 10 km assumed, every
// sub-score 0.6.
func neutralScore() *LocationScore {
	return &LocationScore{
		Time:         0.6,
		Cost:         0.6,
		Comfort:      0.6,
		Reliability:  0.6,
		Final:        0.6,
		Degraded:     true,
		Explanations: []string{"location data unavailable, neutral commute assumed (10 km)"},
	}
}

// timeScore is 1.0 up to 30 minutes and decreases linearly to 0 at 120.
func timeScore(duration time.Duration) float64 {
	minutes := duration.Minutes()
	if minutes <= 30 {
		return 1.0
	}
	return clamp01(1 - (minutes-30)/90)
}

func (s *Scorer) monthlyCost(route *geo.Route) float64 {
	const commutingDays = 21
	switch route.Mode {
	case geo.ModeDriving:
		return route.Distance / 1000 * 2 * commutingDays * s.cfg.DrivingCostPerKm
	case geo.ModeTransit:
		return s.cfg.TransitMonthlyPass
	case geo.ModeCycling:
		return s.cfg.CyclingMonthly
	default:
		return 0
	}
}

func (s *Scorer) costScore(route *geo.Route) float64 {
	return clamp01(1 - s.monthlyCost(route)/s.cfg.CostCeiling)
}

// comfortScore starts from a mode baseline and degrades for very long trips
// and transfer-heavy transit rides.
func comfortScore(route *geo.Route) float64 {
	var baseline float64
	switch route.Mode {
	case geo.ModeDriving:
		baseline = 0.9
	case geo.ModeTransit:
		baseline = 0.7
	case geo.ModeCycling:
		baseline = 0.5
	default:
		baseline = 0.4
	}
	if route.Duration > time.Hour {
		baseline -= 0.2
	}
	if route.Mode == geo.ModeTransit && route.Steps > 4 {
		baseline -= 0.1
	}
	return clamp01(baseline)
}

// reliabilityScore starts from a mode baseline and degrades with traffic delay.
func reliabilityScore(route *geo.Route) float64 {
	var baseline float64
	switch route.Mode {
	case geo.ModeDriving:
		baseline = 0.7
	case geo.ModeTransit:
		baseline = 0.8
	case geo.ModeCycling:
		baseline = 0.9
	default:
		baseline = 1.0
	}
	if route.Duration > 0 && route.TrafficDelay > 0 {
		ratio := route.TrafficDelay.Seconds() / route.Duration.Seconds()
		switch {
		case ratio > 0.2:
			baseline -= 0.3
		case ratio > 0.1:
			baseline -= 0.15
		}
	}
	return clamp01(baseline)
}

// reasonFactor is the adaptive boost/penalty keyed on the listening reason.
func reasonFactor(listeningReason string) float64 {
	cleaned := strings.ToLower(listeningReason)
	switch {
	case strings.Contains(cleaned, "commute") || strings.Contains(cleaned, "far from home"):
		return 2.0
	case strings.Contains(cleaned, "role") || strings.Contains(cleaned, "mismatch"):
		return 0.8
	default:
		return 1.0
	}
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
