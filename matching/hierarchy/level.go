package hierarchy

import (
	"strings"

	"github.com/compasshq/compass/pkg/errx"
	"github.com/compasshq/compass/pkg/kernel"
)

// Level is an ordinal seniority classification. The integer value is the rank;
// the difference between two ranks is the hierarchical gap.
type Level int

const (
	LevelEntry Level = iota
	LevelJunior
	LevelSenior
	LevelManager
	LevelDirector
	LevelExecutive
)

// Levels lists all levels in ascending rank order.
var Levels = []Level{LevelEntry, LevelJunior, LevelSenior, LevelManager, LevelDirector, LevelExecutive}

var levelNames = map[Level]string{
	LevelEntry:     "ENTRY",
	LevelJunior:    "JUNIOR",
	LevelSenior:    "SENIOR",
	LevelManager:   "MANAGER",
	LevelDirector:  "DIRECTOR",
	LevelExecutive: "EXECUTIVE",
}

func (l Level) String() string {
	if name, ok := levelNames[l]; ok {
		return name
	}
	return "UNKNOWN"
}

// Rank returns the ordinal rank (0-5).
func (l Level) Rank() int { return int(l) }

// IsValid reports whether the level is one of the six known values.
func (l Level) IsValid() bool {
	return l >= LevelEntry && l <= LevelExecutive
}

// Gap returns the absolute rank difference with another level.
func (l Level) Gap(other Level) int {
	gap := l.Rank() - other.Rank()
	if gap < 0 {
		gap = -gap
	}
	return gap
}

// ParseLevel converts a string into a Level, rejecting unknown values.
func ParseLevel(s string) (Level, *errx.Error) {
	upper := strings.ToUpper(strings.TrimSpace(s))
	for level, name := range levelNames {
		if name == upper {
			return level, nil
		}
	}
	return LevelJunior, errInvalidLevel(upper)
}

// Classification is the result of classifying a seniority text blob.
// Confidence grows with the number of matched signals; a zero confidence means
// the silent JUNIOR default and must be surfaced by callers as low confidence.
type Classification struct {
	Level      Level               `json:"level"`
	Confidence float64             `json:"confidence"`
	Years      *int                `json:"years,omitempty"`
	Salary     *kernel.SalaryRange `json:"salary,omitempty"`
	Matched    []string            `json:"matched,omitempty"`
}

// IsDefault reports whether this is the no-signal fallback classification.
func (c Classification) IsDefault() bool {
	return c.Confidence == 0
}
