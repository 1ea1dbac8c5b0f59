package matchsrv

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/compasshq/compass/matching"
	"github.com/compasshq/compass/matching/hierarchy"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/compasshq/compass/pkg/logx"
)

// crossSectorPenalty is the multiplicative penalty applied to the total when
// the hard cross-sector rule fires.
const crossSectorPenalty = 0.55

// criticalGap is the hierarchical gap from which a match is flagged critical.
const criticalGap = 3

// Observer receives per-match timing events. Implemented by the metrics
// package; nil disables instrumentation.
type Observer interface {
	ObserveMatch(elapsed time.Duration, recommendation string)
}

// Config tunes the scorer.
type Config struct {
	// LatencyTarget is the elapsed-time budget beyond which a
	// PERFORMANCE_WARNING alert is attached.
	LatencyTarget time.Duration
}

func (c Config) normalize() Config {
	if c.LatencyTarget <= 0 {
		c.LatencyTarget = 2 * time.Second
	}
	return c
}

// Service is the adaptive multi-component scorer. It orchestrates the
// hierarchical classifier, the compatibility matrix and the location scorer
// into one weighted total per candidate/job pair.
type Service struct {
	cfg        Config
	classifier matching.LevelClassifier
	matrix     *hierarchy.Matrix
	location   matching.LocationScorer
	observer   Observer
}

// NewService creates the scorer from its component contracts.
func NewService(
	classifier matching.LevelClassifier,
	matrix *hierarchy.Matrix,
	location matching.LocationScorer,
	cfg Config,
	observer Observer,
) *Service {
	return &Service{
		cfg:        cfg.normalize(),
		classifier: classifier,
		matrix:     matrix,
		location:   location,
		observer:   observer,
	}
}

// Match evaluates one candidate against one job. It fails only for
// structurally invalid input; missing optional data and component failures
// resolve to documented neutral defaults with explanatory alerts.
func (s *Service) Match(ctx context.Context, candidate *matching.CandidateProfile, job *matching.JobRequisition, listeningReason string) (*matching.MatchResult, error) {
	if candidate == nil {
		return nil, matching.ErrNilProfile()
	}
	if job == nil {
		return nil, matching.ErrNilRequisition()
	}
	if err := candidate.Validate(); err != nil {
		return nil, err
	}
	if err := job.Validate(); err != nil {
		return nil, err
	}

	started := time.Now()
	var alerts []matching.Alert

	candidateLevel := s.classifier.Classify(candidate.SeniorityText, false)
	jobLevel := s.classifier.Classify(seniorityTextFor(job), true)
	if candidateLevel.IsDefault() || jobLevel.IsDefault() {
		alerts = appendAlert(alerts, matching.AlertDegradedData)
	}

	hierarchical, err := s.matrix.Compatibility(candidateLevel.Level, jobLevel.Level)
	if err != nil {
		return nil, err
	}

	components := matching.ComponentScores{
		Semantic:     semanticScore(candidate.Skills, job.RequiredSkills, job.PreferredSkills),
		Hierarchical: hierarchical,
		Salary:       salaryScore(candidate, job),
		Experience:   experienceScore(candidate.YearsExperience, job.Experience),
		Sector:       sectorScore(candidate.Sector, job.Sector),
	}

	var locationAlert bool
	components.Location, locationAlert = s.locationScore(ctx, candidate.Transport, job.Address, listeningReason)
	if locationAlert {
		alerts = appendAlert(alerts, matching.AlertDegradedData)
	}

	weights := WeightsFor(listeningReason)
	total := weights.Apply(components)

	if crossSectorIncompatible(candidate.Sector, job.Sector) {
		total *= crossSectorPenalty
		alerts = appendAlert(alerts, matching.AlertSectoralPenalty)
	}
	total = clamp01(total)

	gap := candidateLevel.Level.Gap(jobLevel.Level)
	if gap >= criticalGap || components.Hierarchical < 0.3 || total < 0.4 {
		alerts = appendAlert(alerts, matching.AlertCriticalMismatch)
	}

	elapsed := time.Since(started)
	if elapsed > s.cfg.LatencyTarget {
		alerts = appendAlert(alerts, matching.AlertPerformanceWarning)
	}

	result := &matching.MatchResult{
		ID:             kernel.NewEvaluationID(uuid.NewString()),
		CandidateID:    candidate.ID,
		JobID:          job.ID,
		Total:          total,
		Components:     components,
		Weights:        weights,
		Alerts:         alerts,
		Recommendation: matching.RecommendationFor(total),
		Elapsed:        elapsed,
	}

	if s.observer != nil {
		s.observer.ObserveMatch(elapsed, string(result.Recommendation))
	}
	logx.Debugf("match %s: candidate=%s job=%s total=%.3f recommendation=%s gap=%d",
		result.ID, candidate.ID, job.ID, total, result.Recommendation, gap)

	return result, nil
}

// locationScore delegates to the location subsystem. Missing inputs are
// neutral; a subsystem failure is the documented degraded mode, never an
// error.
func (s *Service) locationScore(ctx context.Context, prefs matching.TransportPreferences, jobAddress kernel.Address, listeningReason string) (float64, bool) {
	if s.location == nil || jobAddress.IsEmpty() || prefs.HomeAddress.IsEmpty() || len(prefs.Modes) == 0 {
		return matching.NeutralScore, false
	}
	score, err := s.location.ScoreLocation(ctx, prefs, jobAddress, listeningReason)
	if err != nil {
		logx.Warnf("location scoring degraded for job %s: %v", jobAddress, err)
		return matching.NeutralLocationScore, true
	}
	return clamp01(score), false
}

func seniorityTextFor(job *matching.JobRequisition) string {
	if job.SeniorityText != "" {
		return job.SeniorityText
	}
	return job.Title
}

func appendAlert(alerts []matching.Alert, alert matching.Alert) []matching.Alert {
	for _, a := range alerts {
		if a == alert {
			return alerts
		}
	}
	return append(alerts, alert)
}
