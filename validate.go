package amdahl

import (
	"fmt"
	"math"
	"reflect"
)

// Params holds a validated (fraction, processor count) pair.
type Params struct {
	Fraction float64 // Sequential fraction f, 0 ≤ f ≤ 1
	MaxProcs int     // Largest processor count to evaluate, ≥ 1
}

// ValidateFraction checks 0 ≤ f ≤ 1. NaN and infinities are rejected.
func ValidateFraction(f float64) error {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("%w: must be a finite number, got %v", ErrInvalidFraction, f)
	}
	if f < 0 || f > 1 {
		return fmt.Errorf("%w: must be in [0, 1], got %g", ErrInvalidFraction, f)
	}
	return nil
}

// MaxProcessors is the largest processor count accepted anywhere. It keeps a
// full report (one row per count) within a few tens of megabytes.
const MaxProcessors = 1 << 20

// ValidateProcessorCount checks 1 ≤ p ≤ MaxProcessors.
func ValidateProcessorCount(p int) error {
	if p < 1 {
		return fmt.Errorf("%w: must be >= 1, got %d", ErrInvalidProcessorCount, p)
	}
	if p > MaxProcessors {
		return fmt.Errorf("%w: must be <= %d, got %d", ErrInvalidProcessorCount, MaxProcessors, p)
	}
	return nil
}

// Validate checks both inputs of a simulation and returns them normalized.
// The fraction is checked first, so an input that is wrong on both counts
// reports ErrInvalidFraction.
func Validate(f float64, maxProcs int) (Params, error) {
	if err := ValidateFraction(f); err != nil {
		return Params{}, err
	}
	if err := ValidateProcessorCount(maxProcs); err != nil {
		return Params{}, err
	}

	// -0 passes the range check; fold it so formatted output never shows "-0".
	if f == 0 {
		f = 0
	}

	return Params{Fraction: f, MaxProcs: maxProcs}, nil
}

// FractionFromValue converts a loosely typed value (typically decoded from
// YAML) into a validated sequential fraction. Any Go integer or float kind is
// accepted; strings, bools, nil and everything else are rejected.
func FractionFromValue(v any) (float64, error) {
	f, ok := numeric(v)
	if !ok {
		return 0, fmt.Errorf("%w: must be a number, got %s", ErrInvalidFraction, typeName(v))
	}
	if err := ValidateFraction(f); err != nil {
		return 0, err
	}
	if f == 0 {
		f = 0
	}
	return f, nil
}

// ProcessorCountFromValue converts a loosely typed value into a validated
// processor count. Whole-valued floats such as 8.0 are accepted; 2.5 is not.
func ProcessorCountFromValue(v any) (int, error) {
	rv := reflect.ValueOf(v)

	var p int
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		n := rv.Int()
		if n > MaxProcessors || n < math.MinInt32 {
			return 0, fmt.Errorf("%w: %d is out of range", ErrInvalidProcessorCount, n)
		}
		p = int(n)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		n := rv.Uint()
		if n > MaxProcessors {
			return 0, fmt.Errorf("%w: %d is out of range", ErrInvalidProcessorCount, n)
		}
		p = int(n)
	case reflect.Float32, reflect.Float64:
		f := rv.Float()
		if math.IsNaN(f) || math.IsInf(f, 0) || f != math.Trunc(f) {
			return 0, fmt.Errorf("%w: must be an integer, got %g", ErrInvalidProcessorCount, f)
		}
		if f > MaxProcessors || f < math.MinInt32 {
			return 0, fmt.Errorf("%w: %g is out of range", ErrInvalidProcessorCount, f)
		}
		p = int(f)
	default:
		return 0, fmt.Errorf("%w: must be an integer, got %s", ErrInvalidProcessorCount, typeName(v))
	}

	if err := ValidateProcessorCount(p); err != nil {
		return 0, err
	}
	return p, nil
}

// numeric widens any integer or float kind to float64.
func numeric(v any) (float64, bool) {
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	}
	return 0, false
}

func typeName(v any) string {
	if v == nil {
		return "nil"
	}
	return reflect.TypeOf(v).String()
}
