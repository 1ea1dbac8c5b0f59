package commute

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/compasshq/compass/geo"
	"github.com/compasshq/compass/matching"
	"github.com/compasshq/compass/pkg/kernel"
	"github.com/compasshq/compass/pkg/logx"
)

// Exclusion records why one job address was filtered out.
type Exclusion struct {
	Address kernel.Address `json:"address"`
	Reason  string         `json:"reason"`
}

// FilterResult partitions a job-address list into commute-compatible and
// incompatible sets, with observability figures.
type FilterResult struct {
	Compatible    []kernel.Address `json:"compatible"`
	Incompatible  []Exclusion      `json:"incompatible"`
	ExclusionRate float64          `json:"exclusion_rate"`
	Throughput    float64          `json:"throughput_jobs_per_second"`
	Evaluated     int              `json:"evaluated"`
	Elapsed       time.Duration    `json:"elapsed"`
	Warnings      []string         `json:"warnings,omitempty"`
}

// FilterObserver receives filter timing events. Nil disables instrumentation.
type FilterObserver interface {
	ObserveFilter(elapsed time.Duration, excludedRatio float64)
}

// FilterConfig bounds the concurrent evaluation.
type FilterConfig struct {
	BatchSize     int
	MaxConcurrent int
	BatchTimeout  time.Duration
}

// DefaultFilterConfig returns the documented bounds: batches of 20, 10
// concurrent evaluations, 10s per batch.
func DefaultFilterConfig() FilterConfig {
	return FilterConfig{
		BatchSize:     20,
		MaxConcurrent: 10,
		BatchTimeout:  10 * time.Second,
	}
}

func (c FilterConfig) normalize() FilterConfig {
	d := DefaultFilterConfig()
	if c.BatchSize <= 0 {
		c.BatchSize = d.BatchSize
	}
	if c.MaxConcurrent <= 0 {
		c.MaxConcurrent = d.MaxConcurrent
	}
	if c.BatchTimeout <= 0 {
		c.BatchTimeout = d.BatchTimeout
	}
	return c
}

// verdict is one address's evaluation outcome, indexed into the deduplicated
// input order so the output partition is deterministic.
type verdict struct {
	compatible bool
	reason     string
	warning    string
}

// PreFilter batches a job-address list and evaluates commute compatibility
// concurrently before the expensive scoring pass. Batches that time out or
// fail degrade open: every job in them stays in, with a warning.
type PreFilter struct {
	cfg       FilterConfig
	evaluator *Evaluator
	observer  FilterObserver
}

// NewPreFilter creates a pre-filter over a commute evaluator.
func NewPreFilter(evaluator *Evaluator, cfg FilterConfig, observer FilterObserver) *PreFilter {
	return &PreFilter{
		cfg:       cfg.normalize(),
		evaluator: evaluator,
		observer:  observer,
	}
}

// Filter deduplicates the address list, splits it into batches and evaluates
// them with bounded parallelism and a per-batch timeout. In strict mode jobs
// whose address could not be verified (failed geocoding) are excluded; in
// lenient mode they are kept. Infrastructure faults never drop jobs.
func (f *PreFilter) Filter(ctx context.Context, prefs matching.TransportPreferences, addresses []kernel.Address, strict bool) (*FilterResult, error) {
	if prefs.HomeAddress.IsEmpty() {
		return nil, geo.ErrEmptyAddress()
	}
	for _, mode := range prefs.Modes {
		if !mode.IsValid() {
			return nil, geo.ErrInvalidMode(mode)
		}
	}

	started := time.Now()
	deduped := dedupe(addresses)
	verdicts := make([]verdict, len(deduped))

	group, groupCtx := errgroup.WithContext(ctx)
	group.SetLimit(f.cfg.MaxConcurrent)

	for start := 0; start < len(deduped); start += f.cfg.BatchSize {
		end := start + f.cfg.BatchSize
		if end > len(deduped) {
			end = len(deduped)
		}
		start, end := start, end

		group.Go(func() error {
			f.evaluateBatch(groupCtx, prefs, deduped[start:end], verdicts[start:end], strict)
			return nil
		})
	}
	// workers never return errors; Wait only orders the merge
	_ = group.Wait()

	result := &FilterResult{Evaluated: len(deduped)}
	seenWarnings := make(map[string]struct{})
	for i, v := range verdicts {
		if v.warning != "" {
			if _, dup := seenWarnings[v.warning]; !dup {
				seenWarnings[v.warning] = struct{}{}
				result.Warnings = append(result.Warnings, v.warning)
			}
		}
		if v.compatible {
			result.Compatible = append(result.Compatible, deduped[i])
		} else {
			result.Incompatible = append(result.Incompatible, Exclusion{Address: deduped[i], Reason: v.reason})
		}
	}

	result.Elapsed = time.Since(started)
	if len(deduped) > 0 {
		result.ExclusionRate = float64(len(result.Incompatible)) / float64(len(deduped))
	}
	if seconds := result.Elapsed.Seconds(); seconds > 0 {
		result.Throughput = float64(len(deduped)) / seconds
	}

	if f.observer != nil {
		f.observer.ObserveFilter(result.Elapsed, result.ExclusionRate)
	}
	logx.Infof("pre-filter: %d jobs, %d excluded (%.0f%%), %.1f jobs/s, %d warnings",
		len(deduped), len(result.Incompatible), result.ExclusionRate*100, result.Throughput, len(result.Warnings))

	return result, nil
}

// evaluateBatch fills the verdict slice for one batch. Any timeout or
// evaluation fault marks the affected jobs compatible (degrade open).
func (f *PreFilter) evaluateBatch(ctx context.Context, prefs matching.TransportPreferences, batch []kernel.Address, verdicts []verdict, strict bool) {
	batchCtx, cancel := context.WithTimeout(ctx, f.cfg.BatchTimeout)
	defer cancel()

	for i, address := range batch {
		if batchCtx.Err() != nil {
			warning := fmt.Sprintf("batch timed out after %s, remaining jobs kept unfiltered", f.cfg.BatchTimeout)
			for j := i; j < len(batch); j++ {
				verdicts[j] = verdict{compatible: true, warning: warning}
			}
			return
		}

		compatibility, err := f.evaluator.Evaluate(batchCtx, prefs, address)
		switch {
		case err != nil || len(compatibility.Routes) == 0:
			// no route data at all means the provider failed, not the commute
			verdicts[i] = verdict{
				compatible: true,
				warning:    "route evaluation unavailable for some jobs, kept unfiltered",
			}
		case compatibility.Degraded:
			if strict {
				verdicts[i] = verdict{reason: "address could not be verified"}
			} else {
				verdicts[i] = verdict{
					compatible: true,
					warning:    "unverifiable addresses kept (lenient mode)",
				}
			}
		case len(compatibility.CompatibleModes) == 0:
			verdicts[i] = verdict{reason: "no selected transport mode within the stated commute limits"}
		default:
			verdicts[i] = verdict{compatible: true}
		}
	}
}

// dedupe removes addresses that normalize identically, keeping first-seen
// order so repeated calls partition identically.
func dedupe(addresses []kernel.Address) []kernel.Address {
	seen := make(map[string]struct{}, len(addresses))
	result := make([]kernel.Address, 0, len(addresses))
	for _, address := range addresses {
		if address.IsEmpty() {
			continue
		}
		key := geo.NormalizeAddress(address.String())
		if _, dup := seen[key]; dup {
			continue
		}
		seen[key] = struct{}{}
		result = append(result, address)
	}
	return result
}
