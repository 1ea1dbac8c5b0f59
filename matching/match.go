package matching

import (
	"math"
	"time"

	"github.com/compasshq/compass/pkg/kernel"
)

// Alert explains why a score may be unreliable. Alerts accompany the result,
// they never block it.
type Alert string

const (
	AlertCriticalMismatch   Alert = "CRITICAL_MISMATCH"
	AlertSectoralPenalty    Alert = "SECTORAL_PENALTY"
	AlertDegradedData       Alert = "DEGRADED_DATA"
	AlertPerformanceWarning Alert = "PERFORMANCE_WARNING"
)

// Recommendation is the label derived from the total score.
type Recommendation string

const (
	RecommendationExcellent Recommendation = "EXCELLENT_MATCH"
	RecommendationGood      Recommendation = "GOOD_MATCH"
	RecommendationPossible  Recommendation = "POSSIBLE_MATCH"
	RecommendationNoMatch   Recommendation = "NO_MATCH"
)

// RecommendationFor maps a total score to its label.
func RecommendationFor(total float64) Recommendation {
	switch {
	case total >= 0.8:
		return RecommendationExcellent
	case total >= 0.6:
		return RecommendationGood
	case total >= 0.4:
		return RecommendationPossible
	default:
		return RecommendationNoMatch
	}
}

// NeutralScore is substituted when a component's inputs are missing on both
// sides. It signals "unknown", not "bad".
const NeutralScore = 0.5

// NeutralLocationScore is the documented degraded-mode location score used
// when the location subsystem fails entirely.
const NeutralLocationScore = 0.65

// ComponentScores holds one match's per-dimension scores, each in [0,1].
// All six are always present.
type ComponentScores struct {
	Semantic     float64 `json:"semantic"`
	Hierarchical float64 `json:"hierarchical"`
	Salary       float64 `json:"salary"`
	Experience   float64 `json:"experience"`
	Sector       float64 `json:"sector"`
	Location     float64 `json:"location"`
}

// Weights is the per-component weight vector. A valid vector sums to 1.0.
type Weights struct {
	Semantic     float64 `json:"semantic"`
	Hierarchical float64 `json:"hierarchical"`
	Salary       float64 `json:"salary"`
	Experience   float64 `json:"experience"`
	Sector       float64 `json:"sector"`
	Location     float64 `json:"location"`
}

// Sum returns the vector total.
func (w Weights) Sum() float64 {
	return w.Semantic + w.Hierarchical + w.Salary + w.Experience + w.Sector + w.Location
}

// IsNormalized reports whether the vector sums to 1.0 within 1e-6.
func (w Weights) IsNormalized() bool {
	return math.Abs(w.Sum()-1.0) <= 1e-6
}

// Apply computes the weighted total of a component vector.
func (w Weights) Apply(s ComponentScores) float64 {
	return s.Semantic*w.Semantic +
		s.Hierarchical*w.Hierarchical +
		s.Salary*w.Salary +
		s.Experience*w.Experience +
		s.Sector*w.Sector +
		s.Location*w.Location
}

// MatchResult is the final output of one candidate/job evaluation. It is
// created fresh per evaluation and has no persisted identity in the engine.
type MatchResult struct {
	ID             kernel.EvaluationID `json:"id"`
	CandidateID    kernel.CandidateID  `json:"candidate_id"`
	JobID          kernel.JobID        `json:"job_id"`
	Total          float64             `json:"total"`
	Components     ComponentScores     `json:"components"`
	Weights        Weights             `json:"weights"`
	Alerts         []Alert             `json:"alerts,omitempty"`
	Recommendation Recommendation      `json:"recommendation"`
	Elapsed        time.Duration       `json:"elapsed"`
}

// HasAlert reports whether the result carries a given alert.
func (m *MatchResult) HasAlert(alert Alert) bool {
	for _, a := range m.Alerts {
		if a == alert {
			return true
		}
	}
	return false
}
