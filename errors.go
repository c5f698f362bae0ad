package amdahl

import "errors"

// Sentinel errors. Every failure returned by this package wraps one of these,
// so callers can branch with errors.Is.
var (
	// ErrInvalidFraction: sequential fraction outside [0, 1], NaN, infinite
	// or not a number at all.
	ErrInvalidFraction = errors.New("invalid sequential fraction")

	// ErrInvalidProcessorCount: processor count below 1 or not an integer.
	ErrInvalidProcessorCount = errors.New("invalid processor count")

	// ErrInvalidEfficiency: efficiency target outside (0, 1].
	ErrInvalidEfficiency = errors.New("invalid efficiency target")

	// ErrInsufficientData: not enough usable observations to fit a fraction.
	ErrInsufficientData = errors.New("insufficient observations")
)
