// Package config resolves analyzer settings from a YAML file and CLI flags.
//
// Precedence: command-line flags > configuration file > defaults.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/alexshd/amdahl"
	"gopkg.in/yaml.v3"
)

// DefaultFileName is looked up in the working directory when no --config
// flag is given.
const DefaultFileName = "config.yaml"

// Defaults applied when neither flags nor the file set a value.
const (
	DefaultMaxProcs  = 100
	DefaultOutputDir = "./output"
	DefaultFormat    = "table"
)

var (
	// ErrFractionRequired: neither the flags nor the file provide a fraction.
	ErrFractionRequired = errors.New("sequential fraction (-f/--fraction) is required; provide it via command-line argument or config file")

	// ErrConfigNotFound: an explicitly requested config file does not exist.
	ErrConfigNotFound = errors.New("configuration file not found")

	// ErrInvalidFormat: output format is not one of table, csv, json.
	ErrInvalidFormat = errors.New("invalid output format")
)

// Formats lists the supported output formats.
var Formats = []string{"table", "csv", "json"}

// File mirrors the YAML configuration file.
//
// fraction and max_procs are decoded loosely so that a quoted number or a
// fractional processor count reaches the validator and produces its
// descriptive error instead of a YAML type error.
type File struct {
	Fraction      any    `yaml:"fraction"`
	MaxProcs      any    `yaml:"max_procs"`
	GeneratePlots *bool  `yaml:"generate_plots"`
	OutputDir     string `yaml:"output_dir"`
	Format        string `yaml:"format"`

	path string
}

// Path returns where the file was loaded from ("" when none was found).
func (f *File) Path() string {
	return f.path
}

// Overrides carries values set on the command line. Nil pointers mean the
// flag was not given.
type Overrides struct {
	Fraction  *float64
	MaxProcs  *int
	NoPlots   bool
	OutputDir *string
	Format    *string
}

// Settings is the fully resolved and validated configuration.
type Settings struct {
	Fraction      float64
	MaxProcs      int
	GeneratePlots bool
	OutputDir     string
	Format        string
}

// Load reads a configuration file. Unlike Discover, a missing file is an error.
// An empty file yields an empty configuration.
func Load(path string) (*File, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve config path: %w", err)
	}

	data, err := os.ReadFile(abs)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrConfigNotFound, abs)
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &File{path: abs}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", abs, err)
	}

	return cfg, nil
}

// Discover loads dir/config.yaml if it exists. A missing file is not an
// error: the configuration file is optional.
func Discover(dir string) (*File, error) {
	cfg, err := Load(filepath.Join(dir, DefaultFileName))
	if errors.Is(err, ErrConfigNotFound) {
		return &File{}, nil
	}
	return cfg, err
}

// Resolve merges flags over the file over defaults and validates the result.
// A nil file is treated as empty.
func Resolve(o Overrides, f *File) (Settings, error) {
	if f == nil {
		f = &File{}
	}

	s := Settings{
		MaxProcs:      DefaultMaxProcs,
		GeneratePlots: true,
		OutputDir:     DefaultOutputDir,
		Format:        DefaultFormat,
	}

	switch {
	case o.Fraction != nil:
		if err := amdahl.ValidateFraction(*o.Fraction); err != nil {
			return Settings{}, err
		}
		s.Fraction = *o.Fraction
		if s.Fraction == 0 {
			s.Fraction = 0 // fold -0
		}
	case f.Fraction != nil:
		v, err := amdahl.FractionFromValue(f.Fraction)
		if err != nil {
			return Settings{}, err
		}
		s.Fraction = v
	default:
		return Settings{}, ErrFractionRequired
	}

	switch {
	case o.MaxProcs != nil:
		if err := amdahl.ValidateProcessorCount(*o.MaxProcs); err != nil {
			return Settings{}, err
		}
		s.MaxProcs = *o.MaxProcs
	case f.MaxProcs != nil:
		v, err := amdahl.ProcessorCountFromValue(f.MaxProcs)
		if err != nil {
			return Settings{}, err
		}
		s.MaxProcs = v
	}

	if o.NoPlots {
		s.GeneratePlots = false
	} else if f.GeneratePlots != nil {
		s.GeneratePlots = *f.GeneratePlots
	}

	switch {
	case o.OutputDir != nil && *o.OutputDir != "":
		s.OutputDir = *o.OutputDir
	case f.OutputDir != "":
		s.OutputDir = f.OutputDir
	}

	switch {
	case o.Format != nil && *o.Format != "":
		s.Format = *o.Format
	case f.Format != "":
		s.Format = f.Format
	}
	if !slices.Contains(Formats, s.Format) {
		return Settings{}, fmt.Errorf("%w: %q (want one of %v)", ErrInvalidFormat, s.Format, Formats)
	}

	return s, nil
}

// Save writes the settings as a configuration file that Load reads back.
func (s Settings) Save(path string) error {
	plots := s.GeneratePlots
	f := File{
		Fraction:      s.Fraction,
		MaxProcs:      s.MaxProcs,
		GeneratePlots: &plots,
		OutputDir:     s.OutputDir,
		Format:        s.Format,
	}

	data, err := yaml.Marshal(&f)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}
	return nil
}
