package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/alexshd/amdahl"
	"github.com/spf13/cobra"
)

func newFitCmd(o *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "fit SPEEDUP@PROCS...",
		Short: "Estimate the sequential fraction from observed speedups",
		Long: `Estimates the sequential fraction f by least squares from speedups observed
at several processor counts, and reports the Karp-Flatt metric for each
observation. A Karp-Flatt value that grows with p points at parallel overhead
rather than a fixed serial part.`,
		Example: `  amdahl fit 1.9@2 3.5@4 6.0@8 9.1@16`,
		Args:    cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			obs := make([]amdahl.Observation, 0, len(args))
			for _, arg := range args {
				ob, err := parseObservation(arg)
				if err != nil {
					return err
				}
				obs = append(obs, ob)
			}

			fit, err := amdahl.FitFraction(obs)
			if err != nil {
				return err
			}
			o.logger.Debug("fraction fitted", "fraction", fit.Fraction, "r2", fit.RSquared, "points", fit.Points)

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Estimated Sequential Fraction (f): %.6f\n", fit.Fraction)
			fmt.Fprintf(out, "R²: %.6f (%d observations)\n", fit.RSquared, fit.Points)
			if limit, _ := amdahl.SpeedupLimit(fit.Fraction); !math.IsInf(limit, 1) {
				fmt.Fprintf(out, "Speedup Limit (1/f): %.4f\n", limit)
			}
			fmt.Fprintln(out)

			fmt.Fprintf(out, "%10s  %12s  %12s  %12s\n", "Processors", "Observed", "Predicted", "Karp-Flatt")
			for _, ob := range obs {
				predicted := "n/a"
				if s, err := fit.PredictSpeedup(ob.Processors); err == nil {
					predicted = strconv.FormatFloat(s, 'f', 4, 64)
				}
				kf := "n/a"
				if e, err := amdahl.KarpFlatt(ob); err == nil {
					kf = strconv.FormatFloat(e, 'f', 6, 64)
				}
				fmt.Fprintf(out, "%10d  %12.4f  %12s  %12s\n", ob.Processors, ob.Speedup, predicted, kf)
			}

			return nil
		},
	}
}

// parseObservation parses "SPEEDUP@PROCS", e.g. "3.5@4".
func parseObservation(s string) (amdahl.Observation, error) {
	speedup, procs, ok := strings.Cut(s, "@")
	if !ok {
		return amdahl.Observation{}, fmt.Errorf("invalid observation %q: want SPEEDUP@PROCS", s)
	}

	sp, err := strconv.ParseFloat(strings.TrimSpace(speedup), 64)
	if err != nil {
		return amdahl.Observation{}, fmt.Errorf("invalid speedup in %q: %w", s, err)
	}
	p, err := strconv.Atoi(strings.TrimSpace(procs))
	if err != nil {
		return amdahl.Observation{}, fmt.Errorf("invalid processor count in %q: %w", s, err)
	}
	if err := amdahl.ValidateProcessorCount(p); err != nil {
		return amdahl.Observation{}, err
	}

	return amdahl.Observation{Processors: p, Speedup: sp}, nil
}
