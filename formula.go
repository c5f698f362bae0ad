package amdahl

import (
	"fmt"
	"math"
)

// Result holds the Amdahl metrics for a single processor count.
type Result struct {
	Processors int     `json:"processors"` // p
	Speedup    float64 `json:"speedup"`    // S(p) = T(1) / T(p)
	Efficiency float64 `json:"efficiency"` // E(p) = S(p) / p
	TimeRatio  float64 `json:"time_ratio"` // T(p) / T(1) = 1 / S(p)
}

// Speedup returns the Amdahl speedup for sequential fraction f on p processors:
//
//	S(p) = 1 / (f + (1-f)/p)
//
// It is evaluated as p / (f·p + (1-f)), the same quantity with the division
// by p folded into the numerator. In that form the closed-form boundaries come
// out exact in IEEE-754: S(0, p) = p, S(1, p) = 1 and S(f, 1) = 1.
func Speedup(f float64, p int) (float64, error) {
	if err := ValidateFraction(f); err != nil {
		return 0, err
	}
	if err := ValidateProcessorCount(p); err != nil {
		return 0, err
	}
	return speedup(f, p), nil
}

// Efficiency returns S(p)/p, the share of ideal linear speedup achieved.
// 1.0 = perfect linear scaling.
func Efficiency(f float64, p int) (float64, error) {
	s, err := Speedup(f, p)
	if err != nil {
		return 0, err
	}
	return s / float64(p), nil
}

// TimeRatio returns T(p)/T(1) = 1/S(p). Smaller is faster.
func TimeRatio(f float64, p int) (float64, error) {
	s, err := Speedup(f, p)
	if err != nil {
		return 0, err
	}
	return 1 / s, nil
}

// Calculate returns speedup, efficiency and time ratio for one processor count.
func Calculate(f float64, p int) (Result, error) {
	if err := ValidateFraction(f); err != nil {
		return Result{}, err
	}
	if err := ValidateProcessorCount(p); err != nil {
		return Result{}, err
	}
	return calculate(f, p), nil
}

// SpeedupLimit returns the asymptotic speedup 1/f as p → ∞.
// A fully parallel workload (f = 0) has no limit: +Inf.
func SpeedupLimit(f float64) (float64, error) {
	if err := ValidateFraction(f); err != nil {
		return 0, err
	}
	if f == 0 {
		return math.Inf(1), nil
	}
	return 1 / f, nil
}

// ProcessorsForEfficiency returns the largest processor count that still
// achieves at least minEfficiency. Efficiency is 1 at p = 1 and decreases
// monotonically, so the answer is at least 1.
//
// Solving E(p) = 1/(f·p + 1 - f) ≥ E for p gives
//
//	p ≤ (1/E - (1-f)) / f
//
// The closed form seeds the search; the result is then checked against
// Efficiency itself so the boundary agrees with the formula engine.
// For f = 0 efficiency never drops and math.MaxInt is returned.
func ProcessorsForEfficiency(f, minEfficiency float64) (int, error) {
	if err := ValidateFraction(f); err != nil {
		return 0, err
	}
	if math.IsNaN(minEfficiency) || minEfficiency <= 0 || minEfficiency > 1 {
		return 0, fmt.Errorf("%w: must be in (0, 1], got %g", ErrInvalidEfficiency, minEfficiency)
	}
	if f == 0 {
		return math.MaxInt, nil
	}

	bound := (1/minEfficiency - (1 - f)) / f
	if bound >= 1<<53 {
		return math.MaxInt, nil
	}

	p := int(math.Floor(bound))
	if p < 1 {
		p = 1
	}
	for p > 1 && efficiency(f, p) < minEfficiency {
		p--
	}
	for efficiency(f, p+1) >= minEfficiency {
		p++
	}
	return p, nil
}

// speedup, efficiency and calculate assume validated input.
// Simulate and Calculate share them so batch and single results are identical.

func speedup(f float64, p int) float64 {
	n := float64(p)
	return n / (f*n + (1 - f))
}

func efficiency(f float64, p int) float64 {
	return speedup(f, p) / float64(p)
}

func calculate(f float64, p int) Result {
	s := speedup(f, p)
	return Result{
		Processors: p,
		Speedup:    s,
		Efficiency: s / float64(p),
		TimeRatio:  1 / s,
	}
}
