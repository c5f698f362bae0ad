package render

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/alexshd/amdahl"
	"github.com/stretchr/testify/require"
)

func simulate(t *testing.T, f float64, n int) *amdahl.Report {
	t.Helper()
	r, err := amdahl.Simulate(f, n)
	require.NoError(t, err)
	return r
}

func TestTable(t *testing.T) {
	chk := require.New(t)
	var buf bytes.Buffer

	chk.NoError(Table(&buf, simulate(t, 0.05, 100)))
	out := buf.String()

	for _, h := range Headers {
		chk.Contains(out, h)
	}
	chk.Contains(out, "16.806723") // p = 100
	chk.Contains(out, "0.168067")
	chk.Contains(out, "0.059500")
	chk.Contains(out, "1.000000") // p = 1
	chk.NotContains(out, "\x1b[", "no escape codes when not writing to a terminal")
}

func TestTable_SixDecimals(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Table(&buf, simulate(t, 0.5, 2)))

	// S(0.5, 2) = 4/3
	require.Contains(t, buf.String(), "1.333333")
	require.NotContains(t, buf.String(), "1.3333333")
}

func TestCSV(t *testing.T) {
	chk := require.New(t)
	var buf bytes.Buffer

	chk.NoError(CSV(&buf, simulate(t, 0.1, 8)))

	records, err := csv.NewReader(&buf).ReadAll()
	chk.NoError(err)
	chk.Len(records, 9)
	chk.Equal([]string{"processors", "speedup", "efficiency", "time_ratio"}, records[0])
	chk.Equal([]string{"1", "1", "1", "1"}, records[1])
	chk.Equal("8", records[8][0])
}

func TestJSON(t *testing.T) {
	chk := require.New(t)
	var buf bytes.Buffer

	report := simulate(t, 0.25, 4)
	chk.NoError(JSON(&buf, report))

	var doc struct {
		Fraction float64         `json:"fraction"`
		Limit    *float64        `json:"speedup_limit"`
		Results  []amdahl.Result `json:"results"`
	}
	chk.NoError(json.Unmarshal(buf.Bytes(), &doc))
	chk.Equal(0.25, doc.Fraction)
	chk.NotNil(doc.Limit)
	chk.Equal(4.0, *doc.Limit)
	chk.Equal(report.Results(), doc.Results)
	chk.Contains(buf.String(), `"time_ratio"`)
}

func TestJSON_UnboundedLimitOmitted(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, JSON(&buf, simulate(t, 0, 3)))
	require.NotContains(t, buf.String(), "speedup_limit")
}

func TestWrite_UnknownFormat(t *testing.T) {
	err := Write(&bytes.Buffer{}, "xml", simulate(t, 0.1, 2))
	require.ErrorContains(t, err, "unknown format")
}

func TestWriteFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out", "report.csv")
	require.NoError(t, WriteFile(path, "csv", simulate(t, 0.1, 3)))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.True(t, strings.HasPrefix(string(data), "processors,speedup,efficiency,time_ratio\n"))
}

func TestEnsureDir(t *testing.T) {
	base := t.TempDir()
	t.Chdir(base)

	abs, err := EnsureDir(filepath.Join("a", "b"))
	require.NoError(t, err)
	require.True(t, filepath.IsAbs(abs))

	info, err := os.Stat(abs)
	require.NoError(t, err)
	require.True(t, info.IsDir())

	// Existing directories are fine.
	_, err = EnsureDir(abs)
	require.NoError(t, err)
}

func TestPlotAll(t *testing.T) {
	chk := require.New(t)
	dir := filepath.Join(t.TempDir(), "plots")

	pl := NewPlotter(nil)
	pl.DPI = 72

	paths, err := pl.PlotAll(context.Background(), simulate(t, 0.05, 100), dir)
	chk.NoError(err)
	chk.Equal([]string{
		filepath.Join(dir, SpeedupFile),
		filepath.Join(dir, EfficiencyFile),
		filepath.Join(dir, ExecutionTimeFile),
	}, paths)

	pngMagic := []byte("\x89PNG\r\n\x1a\n")
	for _, p := range paths {
		data, err := os.ReadFile(p)
		chk.NoError(err)
		chk.True(bytes.HasPrefix(data, pngMagic), "%s is not a PNG", p)
	}
}

func TestPlotAll_EdgeReports(t *testing.T) {
	pl := NewPlotter(nil)
	pl.DPI = 72

	for _, f := range []float64{0, 1} {
		paths, err := pl.PlotAll(context.Background(), simulate(t, f, 1), t.TempDir())
		require.NoError(t, err)
		require.Len(t, paths, 3)
	}
}

func TestPlotAll_Canceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	paths, err := NewPlotter(nil).PlotAll(ctx, simulate(t, 0.1, 10), t.TempDir())
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, paths)
}
