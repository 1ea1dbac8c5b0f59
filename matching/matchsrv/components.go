package matchsrv

import (
	"math"
	"strings"

	"github.com/compasshq/compass/matching"
	"github.com/compasshq/compass/pkg/kernel"
)

// semanticDefault is used when either side has no skill data at all.
const semanticDefault = 0.4

// semanticScore is the overlap ratio between candidate skills and the job's
// skill lists, weighted 70% required / 30% preferred.
func semanticScore(candidate []kernel.Skill, required, preferred []kernel.Skill) float64 {
	if len(candidate) == 0 || (len(required) == 0 && len(preferred) == 0) {
		return semanticDefault
	}

	have := make(map[string]struct{}, len(candidate))
	for _, skill := range candidate {
		have[normalizeSkill(skill)] = struct{}{}
	}

	requiredOverlap := overlapRatio(have, required)
	preferredOverlap := overlapRatio(have, preferred)

	switch {
	case len(required) == 0:
		return preferredOverlap
	case len(preferred) == 0:
		return requiredOverlap
	default:
		return 0.7*requiredOverlap + 0.3*preferredOverlap
	}
}

func overlapRatio(have map[string]struct{}, wanted []kernel.Skill) float64 {
	if len(wanted) == 0 {
		return 0
	}
	hits := 0
	for _, skill := range wanted {
		if _, ok := have[normalizeSkill(skill)]; ok {
			hits++
		}
	}
	return float64(hits) / float64(len(wanted))
}

func normalizeSkill(skill kernel.Skill) string {
	return strings.Join(strings.Fields(strings.ToLower(string(skill))), " ")
}

// salaryScore is a piecewise function of the relative gap between the
// candidate's target salary and the job's salary midpoint, symmetric in
// direction. Missing data on either side is neutral.
func salaryScore(candidate *matching.CandidateProfile, job *matching.JobRequisition) float64 {
	target := candidateTargetSalary(candidate)
	if target <= 0 || job.Salary.IsZero() {
		return matching.NeutralScore
	}
	midpoint := job.Salary.Midpoint()
	if midpoint <= 0 {
		return matching.NeutralScore
	}

	gap := math.Abs(target-midpoint) / midpoint
	switch {
	case gap <= 0.10:
		return 1.0
	case gap <= 0.20:
		return 0.8
	case gap <= 0.30:
		return 0.6
	case gap <= 0.50:
		return 0.4
	case gap <= 1.00:
		return 0.2
	default:
		return 0.1
	}
}

// candidateTargetSalary prefers the expected salary, falls back to the
// current one, and returns 0 when neither is stated.
func candidateTargetSalary(candidate *matching.CandidateProfile) float64 {
	if !candidate.ExpectedSalary.IsZero() {
		return candidate.ExpectedSalary.Midpoint()
	}
	if !candidate.CurrentSalary.IsZero() {
		return candidate.CurrentSalary.Midpoint()
	}
	return 0
}

// experienceScore grades candidate years against the job's requested band.
func experienceScore(years int, requested kernel.ExperienceRange) float64 {
	if requested.IsZero() {
		return matching.NeutralScore
	}
	if requested.Contains(years) {
		return 1.0
	}
	if years < requested.Min {
		if float64(years) >= 0.8*float64(requested.Min) {
			return 0.8
		}
		return 0.2
	}
	// over-qualified: tier by how far above the ceiling
	if requested.Max <= 0 {
		return 0.2
	}
	ratio := float64(years) / float64(requested.Max)
	switch {
	case ratio <= 1.5:
		return 0.7
	case ratio <= 2.0:
		return 0.5
	case ratio <= 2.5:
		return 0.3
	default:
		return 0.2
	}
}

// sectorGroup buckets free sector text by keyword matching.
type sectorGroup int

const (
	groupUnknown sectorGroup = iota
	groupFinance
	groupAccounting
	groupTech
	groupConsulting
)

var sectorKeywords = map[sectorGroup][]string{
	groupFinance:    {"finance", "financial", "banking", "bank", "insurance", "asset management"},
	groupAccounting: {"accounting", "accountancy", "audit", "bookkeeping"},
	groupTech:       {"tech", "software", "information technology", "it services", "digital"},
	groupConsulting: {"consulting", "consultancy", "advisory"},
}

func classifySector(sector kernel.Sector) sectorGroup {
	lower := strings.ToLower(string(sector))
	if lower == "it" {
		return groupTech
	}
	for group, keywords := range sectorKeywords {
		for _, keyword := range keywords {
			if strings.Contains(lower, keyword) {
				return group
			}
		}
	}
	return groupUnknown
}

// sectorScore grades sector affinity: identical 1.0, adjacent 0.6, the strict
// finance-vs-accounting pair 0.4, unrelated 0.2, missing data neutral.
func sectorScore(candidate, job kernel.Sector) float64 {
	candidateText := strings.TrimSpace(string(candidate))
	jobText := strings.TrimSpace(string(job))
	if candidateText == "" || jobText == "" {
		return matching.NeutralScore
	}
	if strings.EqualFold(candidateText, jobText) {
		return 1.0
	}

	cg, jg := classifySector(candidate), classifySector(job)
	switch {
	case cg == jg && cg != groupUnknown:
		return 1.0
	case isPair(cg, jg, groupFinance, groupAccounting):
		return 0.4
	case cg == groupConsulting || jg == groupConsulting:
		// consulting sits adjacent to every staffed group
		if cg != groupUnknown && jg != groupUnknown {
			return 0.6
		}
		return 0.2
	default:
		return 0.2
	}
}

// crossSectorIncompatible is the hard rule: tech against finance or
// accounting, in either direction, takes a multiplicative penalty.
func crossSectorIncompatible(candidate, job kernel.Sector) bool {
	cg, jg := classifySector(candidate), classifySector(job)
	return isPair(cg, jg, groupTech, groupFinance) || isPair(cg, jg, groupTech, groupAccounting)
}

func isPair(a, b, x, y sectorGroup) bool {
	return (a == x && b == y) || (a == y && b == x)
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
