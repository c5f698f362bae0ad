package amdahl

import (
	"iter"
	"slices"
)

// Report is the scaling table for one sequential fraction: one Result per
// processor count 1..MaxProcessors, ascending. A Report is read-only after
// Simulate returns it; accessors hand out copies.
type Report struct {
	fraction float64
	results  []Result
}

// Simulate evaluates the formula engine for every processor count from 1 to
// maxProcs inclusive.
//
// Row p is produced by the same code path as Calculate(f, p), so batch and
// individual computation agree bit-for-bit. Invalid input fails before any
// row is computed; there are no partial reports.
func Simulate(f float64, maxProcs int) (*Report, error) {
	params, err := Validate(f, maxProcs)
	if err != nil {
		return nil, err
	}

	results := make([]Result, params.MaxProcs)
	for i := range results {
		results[i] = calculate(params.Fraction, i+1)
	}

	return &Report{
		fraction: params.Fraction,
		results:  results,
	}, nil
}

// Fraction returns the sequential fraction the report was computed for.
func (r *Report) Fraction() float64 {
	return r.fraction
}

// Len returns the number of rows.
func (r *Report) Len() int {
	return len(r.results)
}

// MaxProcessors returns the largest processor count in the report.
func (r *Report) MaxProcessors() int {
	return len(r.results)
}

// At returns the row for processor count p.
func (r *Report) At(p int) (Result, bool) {
	if p < 1 || p > len(r.results) {
		return Result{}, false
	}
	return r.results[p-1], true
}

// Results returns a copy of all rows in ascending processor order.
func (r *Report) Results() []Result {
	return slices.Clone(r.results)
}

// All iterates rows as (processors, result) in ascending order.
func (r *Report) All() iter.Seq2[int, Result] {
	return func(yield func(int, Result) bool) {
		for _, res := range r.results {
			if !yield(res.Processors, res) {
				return
			}
		}
	}
}

// Processors returns the processor-count column.
func (r *Report) Processors() []int {
	out := make([]int, len(r.results))
	for i, res := range r.results {
		out[i] = res.Processors
	}
	return out
}

// Speedups returns the speedup column.
func (r *Report) Speedups() []float64 {
	return r.column(func(res Result) float64 { return res.Speedup })
}

// Efficiencies returns the efficiency column.
func (r *Report) Efficiencies() []float64 {
	return r.column(func(res Result) float64 { return res.Efficiency })
}

// TimeRatios returns the execution time ratio column.
func (r *Report) TimeRatios() []float64 {
	return r.column(func(res Result) float64 { return res.TimeRatio })
}

func (r *Report) column(get func(Result) float64) []float64 {
	out := make([]float64, len(r.results))
	for i, res := range r.results {
		out[i] = get(res)
	}
	return out
}
