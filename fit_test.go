package amdahl

import (
	"errors"
	"math"
	"testing"
)

// TestFitFraction_RecoversFraction fits engine-generated speedups.
func TestFitFraction_RecoversFraction(t *testing.T) {
	for _, f := range []float64{0, 0.02, 0.1, 0.4, 1} {
		obs := make([]Observation, 0)
		for _, p := range []int{1, 2, 4, 8, 16, 32} {
			s, _ := Speedup(f, p)
			obs = append(obs, Observation{Processors: p, Speedup: s})
		}

		fit, err := FitFraction(obs)
		if err != nil {
			t.Fatalf("FitFraction failed: %v", err)
		}

		if math.Abs(fit.Fraction-f) > 1e-9 {
			t.Errorf("Expected f ≈ %g, got %.12f", f, fit.Fraction)
		}
		if fit.Points != 5 {
			t.Errorf("Expected 5 usable points (p=1 skipped), got %d", fit.Points)
		}
		if fit.RSquared < 0.999999 {
			t.Errorf("Expected R² ≈ 1 for exact data, got %.6f", fit.RSquared)
		}

		t.Logf("✓ f=%g: fitted %.9f, R²=%.6f", f, fit.Fraction, fit.RSquared)
	}
}

// TestFitFraction_NoisyData checks the estimate stays close under noise.
func TestFitFraction_NoisyData(t *testing.T) {
	// True f = 0.1, speedups perturbed by ±2%
	noise := []float64{1.02, 0.98, 1.01, 0.99, 1.02, 0.98}
	obs := make([]Observation, 0)
	for i, p := range []int{2, 4, 8, 16, 32, 64} {
		s, _ := Speedup(0.1, p)
		obs = append(obs, Observation{Processors: p, Speedup: s * noise[i]})
	}

	fit, err := FitFraction(obs)
	if err != nil {
		t.Fatalf("FitFraction failed: %v", err)
	}

	if fit.Fraction < 0.08 || fit.Fraction > 0.12 {
		t.Errorf("Expected f ≈ 0.1, got %.6f", fit.Fraction)
	}

	predicted, err := fit.PredictSpeedup(128)
	if err != nil {
		t.Fatalf("PredictSpeedup failed: %v", err)
	}
	t.Logf("f=%.4f R²=%.4f, predicted S(128)=%.2f", fit.Fraction, fit.RSquared, predicted)
}

func TestFitFraction_ClampsSuperlinear(t *testing.T) {
	// Superlinear speedups (cache effects) imply f < 0; the fit clamps to 0.
	obs := []Observation{
		{Processors: 2, Speedup: 2.2},
		{Processors: 4, Speedup: 4.5},
	}

	fit, err := FitFraction(obs)
	if err != nil {
		t.Fatalf("FitFraction failed: %v", err)
	}
	if fit.Fraction != 0 {
		t.Errorf("Expected clamped f = 0, got %g", fit.Fraction)
	}
}

func TestFitFraction_InsufficientData(t *testing.T) {
	cases := [][]Observation{
		nil,
		{{Processors: 4, Speedup: 3}},
		{{Processors: 1, Speedup: 1}, {Processors: 1, Speedup: 1}},
		{{Processors: 4, Speedup: 3}, {Processors: 8, Speedup: 0}},
		{{Processors: 4, Speedup: 3}, {Processors: 8, Speedup: math.NaN()}},
	}

	for i, obs := range cases {
		if _, err := FitFraction(obs); !errors.Is(err, ErrInsufficientData) {
			t.Errorf("case %d: expected ErrInsufficientData, got %v", i, err)
		}
	}
}

func TestKarpFlatt(t *testing.T) {
	// For exact Amdahl data the metric returns f itself.
	s, _ := Speedup(0.05, 16)
	e, err := KarpFlatt(Observation{Processors: 16, Speedup: s})
	if err != nil {
		t.Fatalf("KarpFlatt failed: %v", err)
	}
	if math.Abs(e-0.05) > 1e-12 {
		t.Errorf("Expected e = 0.05, got %.12f", e)
	}

	if _, err := KarpFlatt(Observation{Processors: 1, Speedup: 1}); !errors.Is(err, ErrInvalidProcessorCount) {
		t.Errorf("Expected ErrInvalidProcessorCount at p=1, got %v", err)
	}
	if _, err := KarpFlatt(Observation{Processors: 4, Speedup: 0}); err == nil {
		t.Error("Expected error for zero speedup")
	}

	t.Logf("✓ Karp-Flatt recovers f=%.4f from S(16)=%.4f", e, s)
}
