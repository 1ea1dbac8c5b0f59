package kernel

import "strings"

type Skill string

type Sector string

// Address is a free-form postal address as supplied by the caller.
type Address string

func (a Address) String() string { return string(a) }
func (a Address) IsEmpty() bool  { return strings.TrimSpace(string(a)) == "" }

// SalaryRange is an annual gross salary band in the caller's currency.
type SalaryRange struct {
	Min float64 `db:"salary_min" json:"min"`
	Max float64 `db:"salary_max" json:"max"`
}

// IsValid checks structural validity: non-negative bounds, min not above max.
func (s SalaryRange) IsValid() bool {
	return s.Min >= 0 && s.Max >= 0 && s.Min <= s.Max
}

// IsZero reports whether the range carries no information.
func (s SalaryRange) IsZero() bool {
	return s.Min == 0 && s.Max == 0
}

// Midpoint returns the center of the band.
func (s SalaryRange) Midpoint() float64 {
	return (s.Min + s.Max) / 2
}

// ExperienceRange is a required years-of-experience band.
type ExperienceRange struct {
	Min int `db:"experience_min" json:"min"`
	Max int `db:"experience_max" json:"max"`
}

// IsValid checks structural validity: non-negative bounds, min not above max.
func (e ExperienceRange) IsValid() bool {
	return e.Min >= 0 && e.Max >= 0 && e.Min <= e.Max
}

// IsZero reports whether the range carries no information.
func (e ExperienceRange) IsZero() bool {
	return e.Min == 0 && e.Max == 0
}

// Contains reports whether years falls inside the band.
func (e ExperienceRange) Contains(years int) bool {
	return years >= e.Min && years <= e.Max
}
