package commute

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/matching"
)

func compatibilityWith(route *geo.Route) *Compatibility {
	return &Compatibility{
		JobAddress:      "La Defense, Paris",
		Routes:          map[geo.TravelMode]*geo.Route{route.Mode: route},
		CompatibleModes: []geo.TravelMode{route.Mode},
		RecommendedMode: route.Mode,
		Score:           1.0,
	}
}

func TestScore_ShortTransitCommute(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})
	commute := compatibilityWith(&geo.Route{
		Mode:     geo.ModeTransit,
		Duration: 25 * time.Minute,
		Distance: 8000,
		Steps:    2,
	})

	score := scorer.Score(commute, matching.TransportPreferences{}, "")
	assert.Equal(t, 1.0, score.Time)
	assert.False(t, score.Degraded)
	assert.GreaterOrEqual(t, score.Final, 0.7)
	assert.LessOrEqual(t, score.Final, 1.0)
	assert.NotEmpty(t, score.Explanations)
}

func TestScore_TimeDecaysLinearly(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	short := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeTransit, Duration: 30 * time.Minute}), matching.TransportPreferences{}, "")
	medium := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeTransit, Duration: 75 * time.Minute}), matching.TransportPreferences{}, "")
	long := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeTransit, Duration: 120 * time.Minute}), matching.TransportPreferences{}, "")

	assert.Equal(t, 1.0, short.Time)
	assert.InDelta(t, 0.5, medium.Time, 1e-9)
	assert.Equal(t, 0.0, long.Time)
}

func TestScore_DrivingCostGrowsWithDistance(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	near := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeDriving, Duration: 20 * time.Minute, Distance: 5000}), matching.TransportPreferences{}, "")
	far := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeDriving, Duration: 20 * time.Minute, Distance: 30000}), matching.TransportPreferences{}, "")

	assert.Greater(t, near.Cost, far.Cost)
}

func TestScore_WalkingIsFree(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})
	score := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeWalking, Duration: 15 * time.Minute, Distance: 1200}), matching.TransportPreferences{}, "")
	assert.Equal(t, 1.0, score.Cost)
}

func TestScore_TrafficHurtsReliability(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	calm := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeDriving, Duration: 40 * time.Minute}), matching.TransportPreferences{}, "")
	jammed := scorer.Score(compatibilityWith(&geo.Route{
		Mode:         geo.ModeDriving,
		Duration:     40 * time.Minute,
		TrafficDelay: 12 * time.Minute,
	}), matching.TransportPreferences{}, "")

	assert.Greater(t, calm.Reliability, jammed.Reliability)
}

func TestScore_TransferHeavyTransitLessComfortable(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	direct := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeTransit, Duration: 30 * time.Minute, Steps: 1}), matching.TransportPreferences{}, "")
	hops := scorer.Score(compatibilityWith(&geo.Route{Mode: geo.ModeTransit, Duration: 30 * time.Minute, Steps: 6}), matching.TransportPreferences{}, "")

	assert.Greater(t, direct.Comfort, hops.Comfort)
}

func TestScore_TeleworkSoftensTheCommute(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})
	route := &geo.Route{Mode: geo.ModeTransit, Duration: 60 * time.Minute, Distance: 20000}

	onsite := scorer.Score(compatibilityWith(route), matching.TransportPreferences{}, "")
	hybrid := scorer.Score(compatibilityWith(route), matching.TransportPreferences{TeleworkDays: 3}, "")

	assert.Greater(t, hybrid.Final, onsite.Final)

	// days beyond a working week add nothing more
	excessive := scorer.Score(compatibilityWith(route), matching.TransportPreferences{TeleworkDays: 9}, "")
	capped := scorer.Score(compatibilityWith(route), matching.TransportPreferences{TeleworkDays: 5}, "")
	assert.Equal(t, capped.Final, excessive.Final)
}

func TestScore_ListeningReasonScalesFinal(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})
	route := &geo.Route{Mode: geo.ModeTransit, Duration: 70 * time.Minute, Distance: 25000}

	plain := scorer.Score(compatibilityWith(route), matching.TransportPreferences{}, "")
	commuteDriven := scorer.Score(compatibilityWith(route), matching.TransportPreferences{}, "commute too long")
	roleDriven := scorer.Score(compatibilityWith(route), matching.TransportPreferences{}, "role mismatch")

	assert.GreaterOrEqual(t, commuteDriven.Final, plain.Final)
	assert.LessOrEqual(t, commuteDriven.Final, 1.0)
	assert.Less(t, roleDriven.Final, plain.Final)
}

func TestScore_DegradedInputsAreNeutral(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	for _, commute := range []*Compatibility{
		nil,
		{Degraded: true},
		{Routes: map[geo.TravelMode]*geo.Route{}},
	} {
		score := scorer.Score(commute, matching.TransportPreferences{}, "")
		require.NotNil(t, score)
		assert.True(t, score.Degraded)
		assert.Equal(t, 0.6, score.Final)
	}
}

func TestScore_FinalAlwaysBounded(t *testing.T) {
	scorer := NewScorer(ScorerConfig{})

	extremes := []*geo.Route{
		{Mode: geo.ModeWalking, Duration: 5 * time.Minute, Distance: 400},
		{Mode: geo.ModeDriving, Duration: 3 * time.Hour, Distance: 200000, TrafficDelay: time.Hour},
	}
	for _, route := range extremes {
		for _, reason := range []string{"", "commute too long", "role mismatch"} {
			score := scorer.Score(compatibilityWith(route), matching.TransportPreferences{TeleworkDays: 5}, reason)
			assert.GreaterOrEqual(t, score.Final, 0.0, "%s / %q", route.Mode, reason)
			assert.LessOrEqual(t, score.Final, 1.0, "%s / %q", route.Mode, reason)
		}
	}
}
