package amdahl

import (
	"fmt"
	"math"
)

// ScalingDecision is the advisor's verdict for the current processor count.
type ScalingDecision string

const (
	ScaleDown ScalingDecision = "SCALE_DOWN" // Efficiency below target: processors are mostly waiting on the serial part
	Maintain  ScalingDecision = "MAINTAIN"   // Current count is the largest that meets the target
	ScaleUp   ScalingDecision = "SCALE_UP"   // More processors still pay for themselves
)

// AdvisorConfig sets the efficiency floor the advisor scales against.
type AdvisorConfig struct {
	MinEfficiency float64 // Smallest acceptable E(p), in (0, 1]
	MaxProcessors int     // Hard cap on the recommendation (0 = no cap)
}

// DefaultAdvisorConfig targets 50% efficiency with no processor cap.
//
// E(p) = 0.5 is the point where half of the machine's capacity is lost to
// the serial fraction; for f > 0 it falls at p = 1/f + 1.
func DefaultAdvisorConfig() AdvisorConfig {
	return AdvisorConfig{
		MinEfficiency: 0.5,
		MaxProcessors: 0,
	}
}

// ScalingRecommendation explains what the advisor decided and why.
type ScalingRecommendation struct {
	Decision          ScalingDecision
	CurrentProcessors int
	TargetProcessors  int
	Current           Result  // Metrics at the current processor count
	Target            Result  // Metrics at the recommended processor count
	SpeedupLimit      float64 // 1/f, +Inf when f = 0
	LimitAchieved     float64 // Target speedup as a share of SpeedupLimit (0 when unbounded)
	Reason            string
}

// ShouldScale recommends a processor count for sequential fraction f.
//
// Under Amdahl's Law efficiency falls monotonically with p, so the best count
// for an efficiency floor is the largest p with E(p) ≥ MinEfficiency. Beyond
// it each processor adds less than MinEfficiency of a processor's worth of
// speedup:
//
//	currentP < target → ScaleUp
//	currentP = target → Maintain
//	currentP > target → ScaleDown
//
// Example:
//
//	rec, err := amdahl.ShouldScale(0.1, 64, amdahl.AdvisorConfig{MinEfficiency: 0.6})
//	// rec.Decision == ScaleDown, rec.TargetProcessors == 7
func ShouldScale(f float64, currentP int, cfg AdvisorConfig) (ScalingRecommendation, error) {
	if err := ValidateFraction(f); err != nil {
		return ScalingRecommendation{}, err
	}
	if err := ValidateProcessorCount(currentP); err != nil {
		return ScalingRecommendation{}, err
	}
	if cfg.MaxProcessors < 0 {
		return ScalingRecommendation{}, fmt.Errorf("%w: max processors must be >= 0, got %d",
			ErrInvalidProcessorCount, cfg.MaxProcessors)
	}

	target, err := ProcessorsForEfficiency(f, cfg.MinEfficiency)
	if err != nil {
		return ScalingRecommendation{}, err
	}

	capped := false
	if cfg.MaxProcessors > 0 && target > cfg.MaxProcessors {
		target = cfg.MaxProcessors
		capped = true
	}

	limit, _ := SpeedupLimit(f)

	rec := ScalingRecommendation{
		CurrentProcessors: currentP,
		TargetProcessors:  target,
		Current:           calculate(f, currentP),
		Target:            calculate(f, target),
		SpeedupLimit:      limit,
	}
	if !math.IsInf(limit, 1) {
		rec.LimitAchieved = rec.Target.Speedup / limit
	}

	switch {
	case currentP < target:
		rec.Decision = ScaleUp
		rec.Reason = fmt.Sprintf(
			"efficiency %.1f%% at p=%d is above the %.1f%% floor; up to p=%d still meets it",
			rec.Current.Efficiency*100, currentP, cfg.MinEfficiency*100, target)
		if capped {
			rec.Reason += fmt.Sprintf(" (capped at %d processors)", cfg.MaxProcessors)
		}

	case currentP == target:
		rec.Decision = Maintain
		rec.Reason = fmt.Sprintf(
			"p=%d is the largest count with efficiency >= %.1f%% (speedup %.4f)",
			currentP, cfg.MinEfficiency*100, rec.Current.Speedup)

	default:
		rec.Decision = ScaleDown
		rec.Reason = fmt.Sprintf(
			"efficiency %.1f%% at p=%d is below the %.1f%% floor; p=%d keeps %.4fx of the %.4fx speedup",
			rec.Current.Efficiency*100, currentP, cfg.MinEfficiency*100,
			target, rec.Target.Speedup, rec.Current.Speedup)
		if capped {
			rec.Reason += fmt.Sprintf(" (capped at %d processors)", cfg.MaxProcessors)
		}
	}

	return rec, nil
}
