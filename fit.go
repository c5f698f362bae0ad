package amdahl

import (
	"fmt"
	"math"
)

// Observation is a speedup someone observed at a given processor count.
// This package never measures anything; observations come from the caller.
type Observation struct {
	Processors int     // p
	Speedup    float64 // Observed S(p) = T(1) / T(p)
}

// Fit is the sequential fraction that best explains a set of observations.
type Fit struct {
	Fraction float64 // Estimated f, clamped into [0, 1]
	RSquared float64 // R² of predicted vs observed speedups (1.0 = perfect)
	Points   int     // Observations that took part in the fit
}

// KarpFlatt returns the experimentally determined serial fraction for a
// single observation:
//
//	e = (1/S - 1/p) / (1 - 1/p)
//
// It is Amdahl's Law solved for f. The metric is undefined at p = 1, so p must
// be at least 2. A value that grows with p points at overhead the model does
// not account for (communication, imbalance) rather than a fixed serial part.
func KarpFlatt(o Observation) (float64, error) {
	if o.Processors < 2 {
		return 0, fmt.Errorf("%w: Karp-Flatt needs p >= 2, got %d", ErrInvalidProcessorCount, o.Processors)
	}
	if !(o.Speedup > 0) || math.IsInf(o.Speedup, 0) {
		return 0, fmt.Errorf("speedup must be positive and finite, got %g", o.Speedup)
	}

	invP := 1 / float64(o.Processors)
	return (1/o.Speedup - invP) / (1 - invP), nil
}

// FitFraction estimates f from observed speedups by least squares.
//
// Amdahl's Law rearranges into a line through the origin:
//
//	1/S - 1/p = f · (1 - 1/p)
//
// With y = 1/S - 1/p and x = 1 - 1/p the estimate is f = Σxy / Σx².
// Observations at p = 1 carry no information (x = 0) and are skipped, as are
// non-positive or non-finite speedups. At least two usable observations are
// required.
func FitFraction(obs []Observation) (Fit, error) {
	var sumXY, sumXX float64
	usable := make([]Observation, 0, len(obs))

	for _, o := range obs {
		if o.Processors < 2 || !(o.Speedup > 0) || math.IsInf(o.Speedup, 0) {
			continue
		}

		invP := 1 / float64(o.Processors)
		x := 1 - invP
		y := 1/o.Speedup - invP

		sumXY += x * y
		sumXX += x * x
		usable = append(usable, o)
	}

	if len(usable) < 2 {
		return Fit{}, fmt.Errorf("%w: need at least 2 observations with p >= 2, got %d",
			ErrInsufficientData, len(usable))
	}

	f := sumXY / sumXX

	// Superlinear observations push f below 0; measurement noise on a nearly
	// serial workload can push it above 1.
	f = math.Max(0, math.Min(1, f))

	// R² against the speedups the engine predicts for the fitted fraction.
	var mean float64
	for _, o := range usable {
		mean += o.Speedup
	}
	mean /= float64(len(usable))

	var ssRes, ssTot float64
	for _, o := range usable {
		predicted := speedup(f, o.Processors)
		ssRes += (o.Speedup - predicted) * (o.Speedup - predicted)
		ssTot += (o.Speedup - mean) * (o.Speedup - mean)
	}

	rSquared := 1.0
	if ssTot > 0 {
		rSquared = 1 - ssRes/ssTot
	} else if ssRes > 0 {
		rSquared = 0
	}

	return Fit{
		Fraction: f,
		RSquared: rSquared,
		Points:   len(usable),
	}, nil
}

// PredictSpeedup returns the speedup the fitted fraction predicts at p.
func (f Fit) PredictSpeedup(p int) (float64, error) {
	return Speedup(f.Fraction, p)
}
