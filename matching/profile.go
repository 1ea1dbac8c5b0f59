package matching

import (
	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/pkg/kernel"
)

// TransportPreferences describes how a candidate is willing to commute.
// MaxMinutes holds the candidate's stated ceiling per selected mode.
type TransportPreferences struct {
	HomeAddress  kernel.Address         `json:"home_address"`
	Modes        []geo.TravelMode       `json:"modes"`
	MaxMinutes   map[geo.TravelMode]int `json:"max_minutes"`
	TeleworkDays int                    `json:"telework_days"`
}

// MaxFor returns the stated commute ceiling for a mode, or a conservative
// default when the candidate selected the mode without a ceiling.
func (t TransportPreferences) MaxFor(mode geo.TravelMode) int {
	if minutes, ok := t.MaxMinutes[mode]; ok && minutes > 0 {
		return minutes
	}
	return 45
}

// CandidateProfile is a person seeking a role. Profiles are owned by the
// caller and never mutated during a match computation.
type CandidateProfile struct {
	ID              kernel.CandidateID   `json:"id"`
	Skills          []kernel.Skill       `json:"skills"`
	YearsExperience int                  `json:"years_experience"`
	ExpectedSalary  kernel.SalaryRange   `json:"expected_salary"` // zero = not stated
	CurrentSalary   kernel.SalaryRange   `json:"current_salary"`  // zero = not stated
	Sector          kernel.Sector        `json:"sector"`
	SeniorityText   string               `json:"seniority_text"`
	Transport       TransportPreferences `json:"transport"`
}

// Validate rejects structurally invalid input. Missing optional data is not
// an error; the scorer substitutes neutral defaults for it.
func (c *CandidateProfile) Validate() error {
	if c.YearsExperience < 0 {
		return ErrInvalidExperience().WithDetail("years", c.YearsExperience)
	}
	if !c.ExpectedSalary.IsValid() {
		return ErrInvalidSalary().WithDetail("field", "expected_salary")
	}
	if !c.CurrentSalary.IsValid() {
		return ErrInvalidSalary().WithDetail("field", "current_salary")
	}
	for _, mode := range c.Transport.Modes {
		if !mode.IsValid() {
			return ErrInvalidTransportMode(string(mode))
		}
	}
	return nil
}

// JobRequisition is an open position. Immutable during a match computation.
type JobRequisition struct {
	ID              kernel.JobID           `json:"id"`
	Title           string                 `json:"title"`
	RequiredSkills  []kernel.Skill         `json:"required_skills"`
	PreferredSkills []kernel.Skill         `json:"preferred_skills"`
	Salary          kernel.SalaryRange     `json:"salary"`     // zero = not stated
	Experience      kernel.ExperienceRange `json:"experience"` // zero = not stated
	Address         kernel.Address         `json:"address"`
	Sector          kernel.Sector          `json:"sector"`
	SeniorityText   string                 `json:"seniority_text"`
}

// Validate rejects structurally invalid input.
func (j *JobRequisition) Validate() error {
	if !j.Salary.IsValid() {
		return ErrInvalidSalary().WithDetail("field", "salary")
	}
	if !j.Experience.IsValid() {
		return ErrInvalidExperience().WithDetail("field", "experience")
	}
	return nil
}
