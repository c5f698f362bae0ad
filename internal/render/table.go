// Package render presents scaling reports: console tables, CSV/JSON exports
// and PNG plots.
package render

import (
	"fmt"
	"io"
	"strconv"

	"github.com/alexshd/amdahl"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
)

// Headers are the column titles of the console table.
var Headers = []string{"Processors", "Speedup", "Efficiency", "Time Ratio"}

// Table writes the report as a bordered grid, one row per processor count,
// floats with six decimals.
//
// Color and bold are only emitted when w is a terminal.
func Table(w io.Writer, r *amdahl.Report) error {
	re := lipgloss.NewRenderer(w)

	headerStyle := re.NewStyle().Bold(true).Padding(0, 1).Align(lipgloss.Center)
	cellStyle := re.NewStyle().Padding(0, 1).Align(lipgloss.Right)

	rows := make([][]string, 0, r.Len())
	for p, res := range r.All() {
		rows = append(rows, []string{
			strconv.Itoa(p),
			formatFloat(res.Speedup),
			formatFloat(res.Efficiency),
			formatFloat(res.TimeRatio),
		})
	}

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(re.NewStyle()).
		BorderRow(true).
		Headers(Headers...).
		Rows(rows...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	if _, err := fmt.Fprintln(w, t.Render()); err != nil {
		return fmt.Errorf("failed to write table: %w", err)
	}
	return nil
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', 6, 64)
}
