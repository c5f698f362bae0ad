package main

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/alexshd/amdahl"
	"github.com/alexshd/amdahl/internal/config"
	"github.com/alexshd/amdahl/internal/render"
	"github.com/lmittmann/tint"
	"github.com/mattn/go-isatty"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var rule = strings.Repeat("=", 70)

// rootOptions holds flag values shared by the command tree.
type rootOptions struct {
	fraction   float64
	maxProcs   int
	configPath string
	outputDir  string
	noPlots    bool
	format     string
	output     string
	saveConfig string
	verbose    bool

	logger *slog.Logger
}

func newRootCmd() *cobra.Command {
	o := &rootOptions{}

	cmd := &cobra.Command{
		Use:   "amdahl",
		Short: "Amdahl's Law performance analyzer",
		Long: `Calculate and visualize parallel performance scaling according to Amdahl's Law.

For a sequential fraction f and p processors:

  speedup     S(p) = 1 / (f + (1 - f) / p)
  efficiency  E(p) = S(p) / p
  time ratio  T(p) / T(1) = 1 / S(p)

Values are read from flags, then from the configuration file (--config, or
config.yaml in the working directory), then from defaults.`,
		Example: `  amdahl --fraction 0.05 --max_procs 100
  amdahl -f 0.1 -p 50 --output-dir ./results
  amdahl --config config.yaml
  amdahl --fraction 0.2 --max_procs 200 --no-plots`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			o.logger = newLogger(cmd.ErrOrStderr(), o.verbose)
			return nil
		},
		RunE: o.runAnalyze,
	}

	cmd.PersistentFlags().BoolVarP(&o.verbose, "verbose", "v", false, "Enable debug logging")

	flags := cmd.Flags()
	flags.Float64VarP(&o.fraction, "fraction", "f", 0, "Fraction of the program that is sequential (0 <= f <= 1)")
	flags.IntVarP(&o.maxProcs, "max_procs", "p", config.DefaultMaxProcs, "Maximum number of processors to simulate")
	flags.StringVar(&o.configPath, "config", "", "Path to configuration file (YAML). Flags override its values")
	flags.StringVar(&o.outputDir, "output-dir", config.DefaultOutputDir, "Directory where plots are saved")
	flags.BoolVar(&o.noPlots, "no-plots", false, "Skip generating plots (only compute and display results)")
	flags.StringVar(&o.format, "format", config.DefaultFormat, "Output format: "+strings.Join(config.Formats, ", "))
	flags.StringVarP(&o.output, "output", "o", "", "Write results to FILE instead of stdout")
	flags.StringVar(&o.saveConfig, "save-config", "", "Write the resolved settings to a YAML file")
	flags.SetNormalizeFunc(normalizeFlag)

	cmd.AddCommand(newFitCmd(o), newAdviseCmd(o))

	return cmd
}

// normalizeFlag accepts --max-procs as an alias of --max_procs.
func normalizeFlag(_ *pflag.FlagSet, name string) pflag.NormalizedName {
	if name == "max-procs" {
		name = "max_procs"
	}
	return pflag.NormalizedName(name)
}

// newLogger returns a tint handler logger on w, colored only on terminals.
func newLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	noColor := true
	if f, ok := w.(*os.File); ok {
		noColor = !isatty.IsTerminal(f.Fd())
	}

	return slog.New(tint.NewHandler(w, &tint.Options{
		Level:      level,
		TimeFormat: "15:04:05",
		NoColor:    noColor,
	}))
}

// loadConfig reads --config when given, otherwise config.yaml in the working
// directory if present.
func (o *rootOptions) loadConfig() (*config.File, error) {
	if o.configPath != "" {
		f, err := config.Load(o.configPath)
		if err != nil {
			return nil, fmt.Errorf("loading config file: %w", err)
		}
		return f, nil
	}

	f, err := config.Discover(".")
	if err != nil {
		return nil, fmt.Errorf("loading config file: %w", err)
	}
	return f, nil
}

// overrides collects the flags that were set explicitly.
func (o *rootOptions) overrides(flags *pflag.FlagSet) config.Overrides {
	ov := config.Overrides{NoPlots: o.noPlots}
	if flags.Changed("fraction") {
		ov.Fraction = &o.fraction
	}
	if flags.Changed("max_procs") {
		ov.MaxProcs = &o.maxProcs
	}
	if flags.Changed("output-dir") {
		ov.OutputDir = &o.outputDir
	}
	if flags.Changed("format") {
		ov.Format = &o.format
	}
	return ov
}

func (o *rootOptions) runAnalyze(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()
	log := o.logger

	file, err := o.loadConfig()
	if err != nil {
		return err
	}
	if file.Path() != "" {
		log.Debug("config loaded", "path", file.Path())
	}

	s, err := config.Resolve(o.overrides(cmd.Flags()), file)
	if err != nil {
		return err
	}
	log.Debug("settings resolved",
		"fraction", s.Fraction,
		"max_procs", s.MaxProcs,
		"plots", s.GeneratePlots,
		"output_dir", s.OutputDir,
		"format", s.Format)

	if o.saveConfig != "" {
		if err := s.Save(o.saveConfig); err != nil {
			return err
		}
		log.Info("configuration saved", "path", o.saveConfig)
	}

	report, err := amdahl.Simulate(s.Fraction, s.MaxProcs)
	if err != nil {
		return err
	}

	// csv and json on stdout stay machine-readable: no banner or status lines.
	out := cmd.OutOrStdout()
	status := out
	if s.Format != "table" && o.output == "" {
		status = io.Discard
	}

	fmt.Fprintf(status, "\n%s\n", rule)
	fmt.Fprintln(status, "Amdahl's Law Performance Analysis")
	fmt.Fprintln(status, rule)
	fmt.Fprintf(status, "Sequential Fraction (f): %v\n", s.Fraction)
	fmt.Fprintf(status, "Maximum Processors: %d\n", s.MaxProcs)
	fmt.Fprintf(status, "%s\n\n", rule)

	if o.output != "" {
		if err := render.WriteFile(o.output, s.Format, report); err != nil {
			return err
		}
		fmt.Fprintf(status, "Results written to: %s\n\n", o.output)
	} else {
		fmt.Fprintln(status, "Performance Results:")
		if err := render.Write(out, s.Format, report); err != nil {
			return err
		}
		fmt.Fprintln(status)
	}

	if s.GeneratePlots {
		dir, err := render.EnsureDir(s.OutputDir)
		if err != nil {
			return err
		}
		fmt.Fprintf(status, "Generating plots in: %s\n", dir)

		paths, err := render.NewPlotter(log).PlotAll(ctx, report, dir)
		if err != nil {
			return err
		}

		fmt.Fprintln(status, "Plots generated successfully:")
		for _, p := range paths {
			fmt.Fprintf(status, "  - %s\n", p)
		}
		log.Debug("plots generated", "dir", dir, "files", len(paths))
	} else {
		fmt.Fprintln(status, "Plots generation skipped (--no-plots flag set)")
	}

	fmt.Fprintf(status, "\n%s\n", rule)
	fmt.Fprintln(status, "Analysis complete!")
	fmt.Fprintf(status, "%s\n\n", rule)

	return nil
}
