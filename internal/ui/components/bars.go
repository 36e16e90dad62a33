package components

import (
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/ui/theme"
)

// BarChart renders a small column chart from height values in 0–100.
// Used for the decorative momentum bars; the values carry no meaning
// beyond their shape.
type BarChart struct {
	Heights []float64
	Rows    int // vertical resolution in terminal rows
	BarGap  int // columns between bars
}

// NewBarChart creates a bar chart with the given heights.
func NewBarChart(heights []float64, rows int) BarChart {
	return BarChart{Heights: heights, Rows: rows, BarGap: 1}
}

// View renders the chart top row first.
func (b BarChart) View() string {
	if len(b.Heights) == 0 || b.Rows <= 0 {
		return ""
	}

	filledRows := make([]int, len(b.Heights))
	for i, h := range b.Heights {
		if h < 0 {
			h = 0
		}
		if h > 100 {
			h = 100
		}
		filledRows[i] = int(h / 100 * float64(b.Rows))
		if h > 0 && filledRows[i] == 0 {
			filledRows[i] = 1 // any activity shows at least a stub
		}
	}

	filledStyle := lipgloss.NewStyle().Foreground(theme.Primary)
	emptyStyle := lipgloss.NewStyle().Foreground(theme.Border)
	gap := strings.Repeat(" ", b.BarGap)

	var rows []string
	for row := b.Rows; row >= 1; row-- {
		cells := make([]string, len(b.Heights))
		for i, f := range filledRows {
			if f >= row {
				cells[i] = filledStyle.Render("██")
			} else {
				cells[i] = emptyStyle.Render("··")
			}
		}
		rows = append(rows, strings.Join(cells, gap))
	}
	return strings.Join(rows, "\n")
}
