package main

import (
	"fmt"
	"math"

	"github.com/alexshd/amdahl"
	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
)

func newAdviseCmd(o *rootOptions) *cobra.Command {
	var (
		fraction float64
		current  int
		cfg      = amdahl.DefaultAdvisorConfig()
	)

	cmd := &cobra.Command{
		Use:   "advise",
		Short: "Recommend a processor count for an efficiency floor",
		Long: `Recommends the largest processor count whose parallel efficiency stays at or
above --min-efficiency, and whether to scale up, maintain or scale down from
the current count.`,
		Example: `  amdahl advise -f 0.05 -p 64
  amdahl advise -f 0.1 -p 4 --min-efficiency 0.6 --max 32`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			rec, err := amdahl.ShouldScale(fraction, current, cfg)
			if err != nil {
				return err
			}
			o.logger.Debug("recommendation",
				"decision", rec.Decision,
				"current", rec.CurrentProcessors,
				"target", rec.TargetProcessors)

			out := cmd.OutOrStdout()
			bold := lipgloss.NewRenderer(out).NewStyle().Bold(true)

			fmt.Fprintf(out, "Decision: %s\n", bold.Render(string(rec.Decision)))
			fmt.Fprintf(out, "Current:  p=%d  speedup=%.4f  efficiency=%.4f\n",
				rec.CurrentProcessors, rec.Current.Speedup, rec.Current.Efficiency)
			if rec.TargetProcessors == math.MaxInt {
				fmt.Fprintln(out, "Target:   unbounded (no sequential part)")
			} else {
				fmt.Fprintf(out, "Target:   p=%d  speedup=%.4f  efficiency=%.4f\n",
					rec.TargetProcessors, rec.Target.Speedup, rec.Target.Efficiency)
			}
			if !math.IsInf(rec.SpeedupLimit, 1) {
				fmt.Fprintf(out, "Limit:    %.4f (%.1f%% achieved at target)\n",
					rec.SpeedupLimit, rec.LimitAchieved*100)
			}
			fmt.Fprintf(out, "Reason:   %s\n", rec.Reason)

			return nil
		},
	}

	flags := cmd.Flags()
	flags.Float64VarP(&fraction, "fraction", "f", 0, "Fraction of the program that is sequential (0 <= f <= 1)")
	flags.IntVarP(&current, "procs", "p", 1, "Current number of processors")
	flags.Float64Var(&cfg.MinEfficiency, "min-efficiency", cfg.MinEfficiency, "Smallest acceptable efficiency, in (0, 1]")
	flags.IntVar(&cfg.MaxProcessors, "max", cfg.MaxProcessors, "Cap on the recommended processor count (0 = no cap)")
	_ = cmd.MarkFlagRequired("fraction")

	return cmd
}
