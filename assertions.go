package amdahl

import (
	"fmt"
	"math"
	"strings"
	"testing"
)

// AssertionConfig contains tolerances for the report assertions.
type AssertionConfig struct {
	// Relative slack allowed above the 1/f speedup limit (floating point only)
	LimitTolerance float64

	// Stop listing failures after this many rows
	MaxFailures int
}

// DefaultAssertionConfig returns tight tolerances suitable for analytic reports.
func DefaultAssertionConfig() AssertionConfig {
	return AssertionConfig{
		LimitTolerance: 1e-12,
		MaxFailures:    10,
	}
}

// AssertConsistent verifies every row equals Calculate(f, p) exactly.
//
// Batch and individual computation must never disagree:
//
//	Simulate(f, n).At(p) == Calculate(f, p) for p in 1..n
func AssertConsistent(t testing.TB, r *Report, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for p, got := range r.All() {
		want, err := Calculate(r.Fraction(), p)
		if err != nil {
			t.Fatalf("Calculate(%g, %d) failed: %v", r.Fraction(), p, err)
		}
		if got != want {
			failures = append(failures, fmt.Sprintf("  p=%d: report=%+v direct=%+v", p, got, want))
		}
	}

	reportFailures(t, "Batch and direct computation disagree", failures, cfg)
	t.Logf("✓ Consistent: %d rows match Calculate(%g, p)", r.Len(), r.Fraction())
}

// AssertMonotonicSpeedup verifies speedup never decreases as p grows, and
// strictly increases when 0 < f < 1.
func AssertMonotonicSpeedup(t testing.TB, r *Report, cfg AssertionConfig) {
	t.Helper()

	strict := r.Fraction() > 0 && r.Fraction() < 1
	rows := r.Results()

	var failures []string
	for i := 1; i < len(rows); i++ {
		prev, curr := rows[i-1].Speedup, rows[i].Speedup
		if curr < prev || (strict && curr == prev) {
			failures = append(failures, fmt.Sprintf(
				"  p=%d→%d: %.12f → %.12f", rows[i-1].Processors, rows[i].Processors, prev, curr))
		}
	}

	reportFailures(t, "Speedup not monotonic", failures, cfg)
	t.Logf("✓ Monotonic speedup up to p=%d (strict=%v)", r.MaxProcessors(), strict)
}

// AssertBoundedSpeedup verifies 1 ≤ S(p) ≤ 1/f for every row.
func AssertBoundedSpeedup(t testing.TB, r *Report, cfg AssertionConfig) {
	t.Helper()

	limit, err := SpeedupLimit(r.Fraction())
	if err != nil {
		t.Fatalf("SpeedupLimit(%g) failed: %v", r.Fraction(), err)
	}

	var failures []string
	for p, res := range r.All() {
		if res.Speedup < 1 {
			failures = append(failures, fmt.Sprintf("  p=%d: speedup %.12f < 1", p, res.Speedup))
		}
		if !math.IsInf(limit, 1) && res.Speedup > limit*(1+cfg.LimitTolerance) {
			failures = append(failures, fmt.Sprintf("  p=%d: speedup %.12f > limit %.12f", p, res.Speedup, limit))
		}
		if math.IsInf(limit, 1) && res.Speedup > float64(p) {
			failures = append(failures, fmt.Sprintf("  p=%d: speedup %.12f > p", p, res.Speedup))
		}
	}

	reportFailures(t, "Speedup out of bounds", failures, cfg)
	t.Logf("✓ Bounded speedup: 1 ≤ S(p) ≤ %g", limit)
}

// AssertEfficiencyRange verifies 0 < E(p) ≤ 1 for every row.
func AssertEfficiencyRange(t testing.TB, r *Report, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for p, res := range r.All() {
		if !(res.Efficiency > 0) || res.Efficiency > 1 {
			failures = append(failures, fmt.Sprintf("  p=%d: efficiency %.12f", p, res.Efficiency))
		}
	}

	reportFailures(t, "Efficiency outside (0, 1]", failures, cfg)
	t.Logf("✓ Efficiency in (0, 1] for all %d rows", r.Len())
}

// AssertTimeRatioInverse verifies time_ratio = 1/speedup for every row.
func AssertTimeRatioInverse(t testing.TB, r *Report, cfg AssertionConfig) {
	t.Helper()

	var failures []string
	for p, res := range r.All() {
		if res.TimeRatio != 1/res.Speedup {
			failures = append(failures, fmt.Sprintf(
				"  p=%d: time_ratio %.12f, 1/speedup %.12f", p, res.TimeRatio, 1/res.Speedup))
		}
	}

	reportFailures(t, "Time ratio is not 1/speedup", failures, cfg)
	t.Logf("✓ Time ratio = 1/speedup for all %d rows", r.Len())
}

// AssertAmdahl runs every report assertion with default config.
func AssertAmdahl(t *testing.T, r *Report) {
	t.Helper()

	cfg := DefaultAssertionConfig()

	t.Run("Consistent", func(t *testing.T) {
		AssertConsistent(t, r, cfg)
	})

	t.Run("MonotonicSpeedup", func(t *testing.T) {
		AssertMonotonicSpeedup(t, r, cfg)
	})

	t.Run("BoundedSpeedup", func(t *testing.T) {
		AssertBoundedSpeedup(t, r, cfg)
	})

	t.Run("EfficiencyRange", func(t *testing.T) {
		AssertEfficiencyRange(t, r, cfg)
	})

	t.Run("TimeRatioInverse", func(t *testing.T) {
		AssertTimeRatioInverse(t, r, cfg)
	})
}

func reportFailures(t testing.TB, title string, failures []string, cfg AssertionConfig) {
	t.Helper()

	if len(failures) == 0 {
		return
	}

	shown := failures
	if cfg.MaxFailures > 0 && len(shown) > cfg.MaxFailures {
		shown = shown[:cfg.MaxFailures]
	}

	t.Errorf("%s (%d rows):\n%s", title, len(failures), strings.Join(shown, "\n"))
}
