package matchsrv

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/compasshq/compass/matching"
	"github.com/compasshq/compass/pkg/kernel"
)

func skills(names ...string) []kernel.Skill {
	out := make([]kernel.Skill, len(names))
	for i, n := range names {
		out[i] = kernel.Skill(n)
	}
	return out
}

func TestSemanticScore_Overlap(t *testing.T) {
	candidate := skills("Go", "SQL", "Kubernetes")

	// full required overlap, no preferred overlap
	score := semanticScore(candidate, skills("go", "sql"), skills("terraform"))
	assert.InDelta(t, 0.7, score, 1e-9)

	// half required, full preferred
	score = semanticScore(candidate, skills("go", "rust"), skills("kubernetes"))
	assert.InDelta(t, 0.7*0.5+0.3*1.0, score, 1e-9)
}

func TestSemanticScore_SingleListFallbacks(t *testing.T) {
	candidate := skills("go")

	assert.InDelta(t, 1.0, semanticScore(candidate, skills("go"), nil), 1e-9)
	assert.InDelta(t, 1.0, semanticScore(candidate, nil, skills("go")), 1e-9)
}

func TestSemanticScore_MissingDataIsDefault(t *testing.T) {
	assert.Equal(t, semanticDefault, semanticScore(nil, skills("go"), nil))
	assert.Equal(t, semanticDefault, semanticScore(skills("go"), nil, nil))
}

func TestSalaryScore_GapTiers(t *testing.T) {
	job := &matching.JobRequisition{Salary: kernel.SalaryRange{Min: 90000, Max: 110000}} // midpoint 100k

	tests := []struct {
		expected float64
		target   float64
	}{
		{1.0, 100000}, // exact
		{1.0, 108000}, // within 10%
		{0.8, 115000},
		{0.6, 125000},
		{0.4, 140000},
		{0.2, 180000},
		{0.1, 250000},
	}
	for _, tt := range tests {
		candidate := &matching.CandidateProfile{
			ExpectedSalary: kernel.SalaryRange{Min: tt.target, Max: tt.target},
		}
		assert.Equal(t, tt.expected, salaryScore(candidate, job), "target %v", tt.target)
	}
}

func TestSalaryScore_FallsBackToCurrentSalary(t *testing.T) {
	job := &matching.JobRequisition{Salary: kernel.SalaryRange{Min: 50000, Max: 50000}}
	candidate := &matching.CandidateProfile{
		CurrentSalary: kernel.SalaryRange{Min: 50000, Max: 50000},
	}
	assert.Equal(t, 1.0, salaryScore(candidate, job))
}

func TestSalaryScore_MissingDataIsNeutral(t *testing.T) {
	assert.Equal(t, matching.NeutralScore, salaryScore(&matching.CandidateProfile{}, &matching.JobRequisition{}))

	job := &matching.JobRequisition{Salary: kernel.SalaryRange{Min: 50000, Max: 60000}}
	assert.Equal(t, matching.NeutralScore, salaryScore(&matching.CandidateProfile{}, job))
}

func TestExperienceScore_Bands(t *testing.T) {
	band := kernel.ExperienceRange{Min: 3, Max: 6}

	assert.Equal(t, 1.0, experienceScore(4, band))
	assert.Equal(t, 1.0, experienceScore(3, band))
	assert.Equal(t, 1.0, experienceScore(6, band))

	// just under the floor (>= 80% of min) vs far under
	tall := kernel.ExperienceRange{Min: 5, Max: 8}
	assert.Equal(t, 0.8, experienceScore(4, tall))
	assert.Equal(t, 0.2, experienceScore(2, tall))
}

func TestExperienceScore_OverQualifiedTiers(t *testing.T) {
	band := kernel.ExperienceRange{Min: 2, Max: 4}

	assert.Equal(t, 0.7, experienceScore(6, band))  // 1.5x max
	assert.Equal(t, 0.5, experienceScore(8, band))  // 2x
	assert.Equal(t, 0.3, experienceScore(10, band)) // 2.5x
	assert.Equal(t, 0.2, experienceScore(15, band))
}

func TestExperienceScore_ZeroRangeIsNeutral(t *testing.T) {
	assert.Equal(t, matching.NeutralScore, experienceScore(5, kernel.ExperienceRange{}))
}

func TestSectorScore_Affinities(t *testing.T) {
	tests := []struct {
		candidate string
		job       string
		want      float64
	}{
		{"Corporate Banking", "Corporate Banking", 1.0}, // identical text
		{"Banking", "Insurance", 1.0},                   // same group
		{"Banking", "Audit", 0.4},                       // finance vs accounting
		{"Advisory", "Banking", 0.6},                    // consulting adjacency
		{"Banking", "Agriculture", 0.2},                 // unrelated
		{"", "Banking", matching.NeutralScore},          // missing data
	}
	for _, tt := range tests {
		got := sectorScore(kernel.Sector(tt.candidate), kernel.Sector(tt.job))
		assert.Equal(t, tt.want, got, "%q vs %q", tt.candidate, tt.job)
	}
}

func TestCrossSectorIncompatible(t *testing.T) {
	assert.True(t, crossSectorIncompatible("Software", "Banking"))
	assert.True(t, crossSectorIncompatible("Audit", "IT Services"))
	assert.False(t, crossSectorIncompatible("Banking", "Audit"))
	assert.False(t, crossSectorIncompatible("Software", "Digital"))
}
