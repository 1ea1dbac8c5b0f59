package commute

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/geo/geocache"
	"github.com/compasshq/compass/matching"
)

type stubGeocoder struct {
	fail bool
}

func (s *stubGeocoder) Geocode(_ context.Context, address string) (*geo.GeocodeResult, error) {
	if s.fail {
		return nil, errors.New("geocoder down")
	}
	return &geo.GeocodeResult{
		Address:  address,
		Location: geo.Coordinates{Lat: 48.85, Lng: 2.35},
		Quality:  geo.QualityExact,
	}, nil
}

type stubRoutes struct {
	mu        sync.Mutex
	durations map[geo.TravelMode]time.Duration
	err       error
	calls     int
}

func (s *stubRoutes) Route(_ context.Context, _, _ geo.Coordinates, mode geo.TravelMode) (*geo.Route, error) {
	s.mu.Lock()
	s.calls++
	s.mu.Unlock()
	if s.err != nil {
		return nil, s.err
	}
	duration, ok := s.durations[mode]
	if !ok {
		return nil, errors.New("no route")
	}
	return &geo.Route{Mode: mode, Duration: duration, Distance: 10000, Steps: 2}, nil
}

func newTestEvaluator(geocoder geo.Geocoder, routes geo.RouteProvider) *Evaluator {
	return NewEvaluator(geocache.New(geocoder, nil, geocache.Config{}, nil), routes)
}

func basePrefs() matching.TransportPreferences {
	return matching.TransportPreferences{
		HomeAddress: "12 Rue de Rivoli, Paris",
		Modes:       []geo.TravelMode{geo.ModeTransit, geo.ModeCycling},
		MaxMinutes: map[geo.TravelMode]int{
			geo.ModeTransit: 40,
			geo.ModeCycling: 30,
		},
	}
}

func TestEvaluate_CompatibleModesWithinCeiling(t *testing.T) {
	routes := &stubRoutes{durations: map[geo.TravelMode]time.Duration{
		geo.ModeTransit: 35 * time.Minute,
		geo.ModeCycling: 50 * time.Minute,
	}}
	evaluator := newTestEvaluator(&stubGeocoder{}, routes)

	result, err := evaluator.Evaluate(context.Background(), basePrefs(), "La Defense, Paris")
	require.NoError(t, err)

	assert.Equal(t, []geo.TravelMode{geo.ModeTransit}, result.CompatibleModes)
	assert.Equal(t, geo.ModeTransit, result.RecommendedMode)
	assert.Equal(t, 0.5, result.Score)
	assert.False(t, result.Degraded)
	assert.Len(t, result.Routes, 2)
}

func TestEvaluate_RecommendsFastestCompatibleMode(t *testing.T) {
	routes := &stubRoutes{durations: map[geo.TravelMode]time.Duration{
		geo.ModeTransit: 35 * time.Minute,
		geo.ModeCycling: 25 * time.Minute,
	}}
	evaluator := newTestEvaluator(&stubGeocoder{}, routes)

	result, err := evaluator.Evaluate(context.Background(), basePrefs(), "La Defense, Paris")
	require.NoError(t, err)
	assert.Equal(t, geo.ModeCycling, result.RecommendedMode)
	assert.Equal(t, 1.0, result.Score)
}

func TestEvaluate_DefaultCeilingWhenUnstated(t *testing.T) {
	prefs := basePrefs()
	prefs.MaxMinutes = nil // falls back to the 45-minute default

	routes := &stubRoutes{durations: map[geo.TravelMode]time.Duration{
		geo.ModeTransit: 44 * time.Minute,
		geo.ModeCycling: 46 * time.Minute,
	}}
	evaluator := newTestEvaluator(&stubGeocoder{}, routes)

	result, err := evaluator.Evaluate(context.Background(), prefs, "La Defense, Paris")
	require.NoError(t, err)
	assert.Equal(t, []geo.TravelMode{geo.ModeTransit}, result.CompatibleModes)
}

func TestEvaluate_RouteFailuresSkipModes(t *testing.T) {
	routes := &stubRoutes{durations: map[geo.TravelMode]time.Duration{
		geo.ModeTransit: 20 * time.Minute,
		// no cycling route available
	}}
	evaluator := newTestEvaluator(&stubGeocoder{}, routes)

	result, err := evaluator.Evaluate(context.Background(), basePrefs(), "La Defense, Paris")
	require.NoError(t, err)
	assert.Len(t, result.Routes, 1)
	assert.Equal(t, []geo.TravelMode{geo.ModeTransit}, result.CompatibleModes)
}

func TestEvaluate_GeocodeFailureDegrades(t *testing.T) {
	routes := &stubRoutes{durations: map[geo.TravelMode]time.Duration{
		geo.ModeTransit: 20 * time.Minute,
		geo.ModeCycling: 20 * time.Minute,
	}}
	evaluator := newTestEvaluator(&stubGeocoder{fail: true}, routes)

	result, err := evaluator.Evaluate(context.Background(), basePrefs(), "La Defense, Paris")
	require.NoError(t, err, "failed geocoding degrades, it does not error")
	assert.True(t, result.Degraded)
}

func TestEvaluate_InvalidInputRejects(t *testing.T) {
	evaluator := newTestEvaluator(&stubGeocoder{}, &stubRoutes{})

	_, err := evaluator.Evaluate(context.Background(), basePrefs(), "")
	assert.Error(t, err)

	prefs := basePrefs()
	prefs.HomeAddress = ""
	_, err = evaluator.Evaluate(context.Background(), prefs, "La Defense, Paris")
	assert.Error(t, err)

	prefs = basePrefs()
	prefs.Modes = []geo.TravelMode{"TELEPORT"}
	_, err = evaluator.Evaluate(context.Background(), prefs, "La Defense, Paris")
	assert.Error(t, err)
}

func TestFastestRoute_FallsBackWhenNothingCompatible(t *testing.T) {
	routes := &stubRoutes{durations: map[geo.TravelMode]time.Duration{
		geo.ModeTransit: 90 * time.Minute,
		geo.ModeCycling: 80 * time.Minute,
	}}
	evaluator := newTestEvaluator(&stubGeocoder{}, routes)

	result, err := evaluator.Evaluate(context.Background(), basePrefs(), "La Defense, Paris")
	require.NoError(t, err)
	require.Empty(t, result.CompatibleModes)

	fastest := result.FastestRoute()
	require.NotNil(t, fastest)
	assert.Equal(t, geo.ModeCycling, fastest.Mode)
}
