package commute

import (
	"context"

	"github.com/compasshq/compass/matching"
	"github.com/compasshq/compass/pkg/kernel"
)

// Service bundles the evaluator and the scorer behind the narrow contract the
// match scorer consumes.
type Service struct {
	evaluator *Evaluator
	scorer    *Scorer
}

// NewService creates the combined location service.
func NewService(evaluator *Evaluator, scorer *Scorer) *Service {
	return &Service{evaluator: evaluator, scorer: scorer}
}

// Evaluate exposes the raw commute evaluation.
func (s *Service) Evaluate(ctx context.Context, prefs matching.TransportPreferences, jobAddress kernel.Address) (*Compatibility, error) {
	return s.evaluator.Evaluate(ctx, prefs, jobAddress)
}

// ScoreLocation implements matching.LocationScorer: evaluate the commute,
// grade it, return the final 0-1 quality score.
func (s *Service) ScoreLocation(ctx context.Context, prefs matching.TransportPreferences, jobAddress kernel.Address, listeningReason string) (float64, error) {
	compatibility, err := s.evaluator.Evaluate(ctx, prefs, jobAddress)
	if err != nil {
		return 0, err
	}
	return s.scorer.Score(compatibility, prefs, listeningReason).Final, nil
}

var _ matching.LocationScorer = (*Service)(nil)
