package matchsrv

import (
	"strings"

	"github.com/compasshq/compass/matching"
)

// baseWeights is the default component weight vector. Every vector in this
// file must sum to exactly 1.0; the invariant is enforced by tests over the
// whole table.
var baseWeights = matching.Weights{
	Semantic:     0.30,
	Hierarchical: 0.15,
	Salary:       0.20,
	Experience:   0.15,
	Sector:       0.05,
	Location:     0.15,
}

// Canonical listening reasons. The listening reason is the candidate's stated
// motivation for job-seeking and biases the weight vector toward what they
// said they want to fix.
const (
	reasonCommute    = "commute_too_long"
	reasonPay        = "pay_too_low"
	reasonRole       = "role_mismatch"
	reasonGrowth     = "career_growth"
	reasonManagement = "management_conflict"
)

// reasonSynonyms folds free-text phrasings onto canonical reasons.
var reasonSynonyms = map[string]string{
	"commute too long":    reasonCommute,
	"long commute":        reasonCommute,
	"too far from home":   reasonCommute,
	"pay too low":         reasonPay,
	"salary too low":      reasonPay,
	"underpaid":           reasonPay,
	"role mismatch":       reasonRole,
	"wrong role":          reasonRole,
	"bored in role":       reasonRole,
	"career growth":       reasonGrowth,
	"no growth":           reasonGrowth,
	"no promotion":        reasonGrowth,
	"management conflict": reasonManagement,
	"bad manager":         reasonManagement,
}

// reasonWeights holds the per-reason override vectors. Unknown reasons keep
// the base vector unchanged.
var reasonWeights = map[string]matching.Weights{
	reasonCommute: {
		Semantic:     0.15,
		Hierarchical: 0.15,
		Salary:       0.20,
		Experience:   0.15,
		Sector:       0.05,
		Location:     0.30,
	},
	reasonPay: {
		Semantic:     0.15,
		Hierarchical: 0.15,
		Salary:       0.35,
		Experience:   0.15,
		Sector:       0.05,
		Location:     0.15,
	},
	reasonRole: {
		Semantic:     0.40,
		Hierarchical: 0.15,
		Salary:       0.15,
		Experience:   0.15,
		Sector:       0.05,
		Location:     0.10,
	},
	reasonGrowth: {
		Semantic:     0.15,
		Hierarchical: 0.25,
		Salary:       0.20,
		Experience:   0.20,
		Sector:       0.05,
		Location:     0.15,
	},
	reasonManagement: {
		Semantic:     0.20,
		Hierarchical: 0.20,
		Salary:       0.20,
		Experience:   0.15,
		Sector:       0.10,
		Location:     0.15,
	},
}

// CanonicalReason normalizes a free-text listening reason onto a canonical
// key, or returns the cleaned input when no synonym matches.
func CanonicalReason(reason string) string {
	cleaned := strings.Join(strings.Fields(strings.ToLower(strings.TrimSpace(reason))), " ")
	if canonical, ok := reasonSynonyms[cleaned]; ok {
		return canonical
	}
	return cleaned
}

// WeightsFor selects the weight vector for a listening reason.
func WeightsFor(reason string) matching.Weights {
	if override, ok := reasonWeights[CanonicalReason(reason)]; ok {
		return override
	}
	return baseWeights
}

// KnownReasons lists the canonical reasons with override vectors (for tests
// and diagnostics).
func KnownReasons() []string {
	reasons := make([]string, 0, len(reasonWeights))
	for r := range reasonWeights {
		reasons = append(reasons, r)
	}
	return reasons
}
