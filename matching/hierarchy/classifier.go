package hierarchy

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/compasshq/compass/pkg/kernel"
)

// Signal group weights. Title patterns dominate, domain keywords and
// responsibility phrases refine.
const (
	titleWeight          = 0.5
	keywordWeight        = 0.3
	responsibilityWeight = 0.2
)

// levelSignals is one level's signal table row. Title patterns are regexes
// scored as matched/not; keyword and responsibility groups are scored as the
// matched fraction of the group.
type levelSignals struct {
	level            Level
	titles           []*regexp.Regexp
	keywords         []string
	responsibilities []string
}

func compileAll(patterns ...string) []*regexp.Regexp {
	compiled := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		compiled = append(compiled, regexp.MustCompile(p))
	}
	return compiled
}

// signalTable is evaluated uniformly per level so new levels or signals stay
// additive.
var signalTable = []levelSignals{
	{
		level:            LevelEntry,
		titles:           compileAll(`\bintern(ship)?\b`, `\btrainee\b`, `\bapprentice\b`, `\bentry[- ]level\b`, `\bgraduate\b`),
		keywords:         []string{"internship", "graduate", "student", "first experience"},
		responsibilities: []string{"assisting", "learning", "shadowing", "supporting the team"},
	},
	{
		level:            LevelJunior,
		titles:           compileAll(`\bjunior\b`, `\bassociate\b`, `\bassistant\b`),
		keywords:         []string{"junior", "associate", "early career"},
		responsibilities: []string{"under supervision", "executing", "contributing", "day-to-day tasks"},
	},
	{
		level:            LevelSenior,
		titles:           compileAll(`\bsenior\b`, `\blead\b`, `\bprincipal\b`, `\bexpert\b`),
		keywords:         []string{"senior", "specialist", "expert", "autonomous"},
		responsibilities: []string{"mentoring", "designing", "reviewing", "technical ownership"},
	},
	{
		level:            LevelManager,
		titles:           compileAll(`\bmanager\b`, `\bhead of\b`, `\bsupervisor\b`, `\bteam lead\b`),
		keywords:         []string{"manager", "management", "budget", "team of"},
		responsibilities: []string{"managing a team", "hiring", "coordinating", "performance reviews"},
	},
	{
		level:            LevelDirector,
		titles:           compileAll(`\bdirector\b`, `\bvice president\b`, `\bvp\b`),
		keywords:         []string{"director", "strategy", "division", "p&l"},
		responsibilities: []string{"defining strategy", "governance", "multiple teams", "cross-department"},
	},
	{
		level:            LevelExecutive,
		titles:           compileAll(`\bchief\b`, `\bc[eofti]o\b`, `\bexecutive\b`, `\bpresident\b`, `\bfounder\b`, `\bpartner\b`, `\bmanaging director\b`),
		keywords:         []string{"executive", "c-level", "board", "shareholders", "group-level"},
		responsibilities: []string{"executive committee", "company strategy", "investor relations", "board of directors"},
	},
}

var (
	yearsPattern = regexp.MustCompile(`(\d{1,2})\s*(?:\+\s*)?(?:-\s*\d{1,2}\s*)?(?:years?|yrs?)\b`)
	// salary figures like "30-35k", "30k - 35k", "90k", "45000-55000"
	salaryRangeKPattern = regexp.MustCompile(`(\d{2,3})\s*k?\s*(?:-|–|to)\s*(\d{2,3})\s*k\b`)
	salarySingleKPtn    = regexp.MustCompile(`(\d{2,3})\s*k\b`)
	salaryRangeFullPtn  = regexp.MustCompile(`(\d{5,6})\s*(?:-|–|to)\s*(\d{5,6})`)
)

// Classifier classifies free seniority text into one of the six levels.
type Classifier struct{}

// NewClassifier returns a classifier over the static signal table.
func NewClassifier() *Classifier {
	return &Classifier{}
}

// Classify scores every level's signal groups against the text and picks the
// highest-confidence level, preferring the more conservative level on ties.
// Extracted years adjust the chosen level without overriding it; extracted
// salary is auxiliary data for later mismatch warnings only.
func (c *Classifier) Classify(text string, isJobPosting bool) Classification {
	lower := strings.ToLower(text)

	best := Classification{Level: LevelJunior, Confidence: 0}
	for _, row := range signalTable {
		confidence, matched := scoreRow(lower, row)
		// strict > keeps the lower level on equal confidence
		if confidence > best.Confidence {
			best = Classification{Level: row.level, Confidence: confidence, Matched: matched}
		}
	}

	years := extractYears(lower, isJobPosting)
	best.Salary = extractSalary(lower)

	if years != nil {
		best.Years = years
		if best.IsDefault() {
			best.Level = LevelJunior
		}
		best.Level = adjustForYears(best.Level, *years)
	}

	return best
}

func scoreRow(text string, row levelSignals) (float64, []string) {
	var confidence float64
	var matched []string

	for _, pattern := range row.titles {
		if pattern.MatchString(text) {
			confidence += titleWeight
			matched = append(matched, pattern.String())
			break
		}
	}
	confidence += groupFraction(text, row.keywords, &matched) * keywordWeight
	confidence += groupFraction(text, row.responsibilities, &matched) * responsibilityWeight

	if confidence > 1.0 {
		confidence = 1.0
	}
	return confidence, matched
}

func groupFraction(text string, group []string, matched *[]string) float64 {
	if len(group) == 0 {
		return 0
	}
	hits := 0
	for _, keyword := range group {
		if strings.Contains(text, keyword) {
			hits++
			*matched = append(*matched, keyword)
		}
	}
	return float64(hits) / float64(len(group))
}

// adjustForYears promotes or caps the detected level based on extracted
// experience: <2y caps at JUNIOR, 5-10y promotes one level, 10y+ promotes two,
// capped at EXECUTIVE.
func adjustForYears(level Level, years int) Level {
	switch {
	case years < 2:
		if level > LevelJunior {
			return LevelJunior
		}
		return level
	case years >= 10:
		return promote(level, 2)
	case years >= 5:
		return promote(level, 1)
	default:
		return level
	}
}

func promote(level Level, steps int) Level {
	promoted := Level(level.Rank() + steps)
	if promoted > LevelExecutive {
		return LevelExecutive
	}
	return promoted
}

// extractYears finds a years-of-experience figure. For job postings a range
// like "2-5 years" reads as its minimum, the requirement floor.
func extractYears(text string, isJobPosting bool) *int {
	match := yearsPattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	years, err := strconv.Atoi(match[1])
	if err != nil || years > 60 {
		return nil
	}
	_ = isJobPosting // the leading figure is the floor for both sides
	return &years
}

func extractSalary(text string) *kernel.SalaryRange {
	if m := salaryRangeKPattern.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		return &kernel.SalaryRange{Min: lo * 1000, Max: hi * 1000}
	}
	if m := salaryRangeFullPtn.FindStringSubmatch(text); m != nil {
		lo, _ := strconv.ParseFloat(m[1], 64)
		hi, _ := strconv.ParseFloat(m[2], 64)
		return &kernel.SalaryRange{Min: lo, Max: hi}
	}
	if m := salarySingleKPtn.FindStringSubmatch(text); m != nil {
		figure, _ := strconv.ParseFloat(m[1], 64)
		return &kernel.SalaryRange{Min: figure * 1000, Max: figure * 1000}
	}
	return nil
}
