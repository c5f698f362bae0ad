package render

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"

	"github.com/alexshd/amdahl"
)

// document is the JSON shape of a report.
type document struct {
	Fraction float64         `json:"fraction"`
	Limit    *float64        `json:"speedup_limit,omitempty"` // omitted when unbounded (f = 0)
	Results  []amdahl.Result `json:"results"`
}

// Write renders the report in the named format: table, csv or json.
func Write(w io.Writer, format string, r *amdahl.Report) error {
	switch format {
	case "table":
		return Table(w, r)
	case "csv":
		return CSV(w, r)
	case "json":
		return JSON(w, r)
	default:
		return fmt.Errorf("unknown format %q", format)
	}
}

// CSV writes one header line and one record per processor count, with full
// float precision.
func CSV(w io.Writer, r *amdahl.Report) error {
	cw := csv.NewWriter(w)

	if err := cw.Write([]string{"processors", "speedup", "efficiency", "time_ratio"}); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for p, res := range r.All() {
		record := []string{
			strconv.Itoa(p),
			strconv.FormatFloat(res.Speedup, 'g', -1, 64),
			strconv.FormatFloat(res.Efficiency, 'g', -1, 64),
			strconv.FormatFloat(res.TimeRatio, 'g', -1, 64),
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("failed to write csv row p=%d: %w", p, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("failed to flush csv: %w", err)
	}
	return nil
}

// JSON writes the report as an indented document.
func JSON(w io.Writer, r *amdahl.Report) error {
	doc := document{
		Fraction: r.Fraction(),
		Results:  r.Results(),
	}
	if r.Fraction() > 0 {
		limit := 1 / r.Fraction()
		doc.Limit = &limit
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("failed to encode json: %w", err)
	}
	return nil
}

// WriteFile renders the report into path, creating parent directories.
func WriteFile(path, format string, r *amdahl.Report) (err error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	return Write(f, format, r)
}

// EnsureDir returns the absolute form of path, creating it and its parents
// if needed. Relative paths resolve against the working directory.
func EnsureDir(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("failed to resolve %s: %w", path, err)
	}
	if err := os.MkdirAll(abs, 0755); err != nil {
		return "", fmt.Errorf("failed to create %s: %w", abs, err)
	}
	return abs, nil
}
