package render

import (
	"context"
	"fmt"
	"image/color"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"slices"

	"github.com/alexshd/amdahl"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// Plot file names written by PlotAll.
const (
	SpeedupFile       = "speedup.png"
	EfficiencyFile    = "efficiency.png"
	ExecutionTimeFile = "execution_time.png"
)

var (
	speedupColor    = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	efficiencyColor = color.RGBA{R: 44, G: 160, B: 44, A: 255}
	timeColor       = color.RGBA{R: 214, G: 39, B: 40, A: 255}
	gridColor       = color.Gray{Y: 200}
)

// Plotter writes PNG charts of a report.
type Plotter struct {
	Width  vg.Length // Image width
	Height vg.Length // Image height
	DPI    int       // Raster resolution

	logger *slog.Logger
}

// NewPlotter returns a plotter producing 10×6 inch images at 300 dpi.
// A nil logger discards log output.
func NewPlotter(logger *slog.Logger) *Plotter {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Plotter{
		Width:  10 * vg.Inch,
		Height: 6 * vg.Inch,
		DPI:    300,
		logger: logger,
	}
}

// series describes one metric chart.
type series struct {
	file   string
	title  string
	ylabel string
	values []float64
	color  color.Color
	glyph  draw.GlyphDrawer
}

// PlotAll writes speedup.png, efficiency.png and execution_time.png into dir,
// creating it if needed, and returns the written paths. ctx is checked between
// files.
func (pl *Plotter) PlotAll(ctx context.Context, r *amdahl.Report, dir string) ([]string, error) {
	dir, err := EnsureDir(dir)
	if err != nil {
		return nil, err
	}

	charts := []series{
		{
			file:   SpeedupFile,
			title:  "Speedup vs. Number of Processors",
			ylabel: "Speedup (S_p)",
			values: r.Speedups(),
			color:  speedupColor,
			glyph:  draw.CircleGlyph{},
		},
		{
			file:   EfficiencyFile,
			title:  "Efficiency vs. Number of Processors",
			ylabel: "Efficiency (E_p)",
			values: r.Efficiencies(),
			color:  efficiencyColor,
			glyph:  draw.SquareGlyph{},
		},
		{
			file:   ExecutionTimeFile,
			title:  "Execution Time Ratio vs. Number of Processors",
			ylabel: "Execution Time Ratio (T_p / T_1)",
			values: r.TimeRatios(),
			color:  timeColor,
			glyph:  draw.TriangleGlyph{},
		},
	}

	paths := make([]string, 0, len(charts))
	for _, c := range charts {
		if err := ctx.Err(); err != nil {
			return paths, err
		}

		p, err := pl.build(r, c)
		if err != nil {
			return paths, fmt.Errorf("failed to build %s: %w", c.file, err)
		}

		path := filepath.Join(dir, c.file)
		if err := pl.save(p, path); err != nil {
			return paths, err
		}

		pl.logger.Debug("plot written", "path", path, "points", r.Len())
		paths = append(paths, path)
	}

	return paths, nil
}

func (pl *Plotter) build(r *amdahl.Report, c series) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = fmt.Sprintf("%s (f = %g)", c.title, r.Fraction())
	p.X.Label.Text = "Number of Processors"
	p.Y.Label.Text = c.ylabel

	grid := plotter.NewGrid()
	grid.Vertical.Color = gridColor
	grid.Vertical.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	grid.Horizontal.Color = gridColor
	grid.Horizontal.Dashes = []vg.Length{vg.Points(3), vg.Points(3)}
	p.Add(grid)

	xys := make(plotter.XYs, len(c.values))
	for i, v := range c.values {
		xys[i].X = float64(i + 1)
		xys[i].Y = v
	}

	line, points, err := plotter.NewLinePoints(xys)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c.color
	line.LineStyle.Width = vg.Points(2)
	points.GlyphStyle.Shape = c.glyph
	points.GlyphStyle.Color = c.color
	points.GlyphStyle.Radius = vg.Points(2)
	p.Add(line, points)

	maxP := float64(r.MaxProcessors())
	p.X.Min = 0
	p.X.Max = maxP + maxP*0.05

	switch c.file {
	case EfficiencyFile:
		p.Y.Min = 0
		p.Y.Max = slices.Max(c.values) * 1.1

	case SpeedupFile:
		// Asymptote at 1/f, drawn only when the curve gets close enough for
		// it to share a readable scale.
		limit, err := amdahl.SpeedupLimit(r.Fraction())
		if err != nil {
			return nil, err
		}
		top := slices.Max(c.values)
		if !math.IsInf(limit, 1) && limit <= 2*top {
			asymptote := plotter.NewFunction(func(float64) float64 { return limit })
			asymptote.LineStyle.Color = c.color
			asymptote.LineStyle.Dashes = []vg.Length{vg.Points(6), vg.Points(4)}
			asymptote.LineStyle.Width = vg.Points(1)
			p.Add(asymptote)
			p.Legend.Add(fmt.Sprintf("limit 1/f = %.4g", limit), asymptote)
			p.Y.Max = math.Max(p.Y.Max, limit*1.05)
		}
		p.Legend.Add("S(p)", line, points)
	}

	return p, nil
}

func (pl *Plotter) save(p *plot.Plot, path string) (err error) {
	c := vgimg.NewWith(vgimg.UseWH(pl.Width, pl.Height), vgimg.UseDPI(pl.DPI))
	p.Draw(draw.New(c))

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", path, err)
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close %s: %w", path, cerr)
		}
	}()

	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(f); err != nil {
		return fmt.Errorf("failed to encode %s: %w", path, err)
	}
	return nil
}
