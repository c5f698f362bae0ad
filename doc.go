// Package amdahl computes Amdahl's Law scaling metrics.
//
// # Overview
//
// Amdahl's Law bounds the speedup of a workload whose fraction f cannot be
// parallelized. amdahl evaluates the law analytically: nothing is executed
// or measured. Given f and a processor count it returns speedup, efficiency
// and the execution time ratio, either for one count or for every count in
// 1..N.
//
// # Architecture
//
// The package components:
//
//   - validate.go   - Input validation (fraction in [0, 1], processors ≥ 1)
//   - formula.go    - Speedup, efficiency and time ratio for one processor count
//   - simulate.go   - Scaling report across 1..N processors
//   - fit.go        - Sequential fraction from observed speedups (Karp-Flatt)
//   - autoscaler.go - Processor count recommendation for an efficiency floor
//   - assertions.go - Test helpers for Amdahl properties
//
// The CLI lives in cmd/amdahl; YAML configuration and rendering (tables,
// CSV/JSON, PNG plots) live under internal/.
//
// # Quick Start
//
//	report, err := amdahl.Simulate(0.05, 100)
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	for p, r := range report.All() {
//	    fmt.Printf("p=%-4d S=%.4f E=%.4f T=%.4f\n", p, r.Speedup, r.Efficiency, r.TimeRatio)
//	}
//
// # The Law
//
//	S(p) = 1 / (f + (1-f)/p)
//
// Where:
//   - f: Sequential fraction (0 ≤ f ≤ 1)
//   - p: Number of processors (p ≥ 1)
//   - S(p): Speedup, T(1)/T(p)
//
// Derived metrics:
//
//	E(p) = S(p) / p        (efficiency)
//	T(p)/T(1) = 1 / S(p)   (execution time ratio)
//
// Properties:
//   - S(f, 1) = 1 for every f
//   - S(0, p) = p (fully parallel: linear speedup)
//   - S(1, p) = 1 (fully sequential: no speedup)
//   - S(f, p) strictly increases in p for 0 < f < 1 and never reaches 1/f
//
// # Relation to the Universal Scalability Law
//
// Amdahl's Law is the USL with no coherency term. Normalizing
// C(N) = λN / (1 + α(N-1) + βN(N-1)) by λ and setting α = f, β = 0 gives
//
//	C(N)/λ = N / (1 + f(N-1)) = S(N)
//
// so f plays the role of the contention coefficient α. Amdahl's model never
// goes retrograde: there is no peak, only the asymptote 1/f.
//
// # Errors
//
// Invalid input fails immediately and wraps ErrInvalidFraction or
// ErrInvalidProcessorCount:
//
//	_, err := amdahl.Simulate(1.1, 10)
//	errors.Is(err, amdahl.ErrInvalidFraction) // true
//
// No partial results are returned.
//
// # Testing
//
// Use assertions to check a report's Amdahl properties:
//
//	func TestMyModel(t *testing.T) {
//	    report, _ := amdahl.Simulate(0.1, 256)
//	    amdahl.AssertAmdahl(t, report)
//	}
package amdahl
