package components

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/ui/theme"
)

// Gauge renders a one-line labelled progress gauge, e.g.
//
//	XP ███████░░░░░░░░░░░  38%
//
// frac is clamped to [0, 1]. width is the total rendered width
// including label and percentage.
func Gauge(label string, frac float64, width int) string {
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}

	label = theme.Body.Render(label)
	pct := theme.Hint.Render(fmt.Sprintf(" %3d%%", int(frac*100+0.5)))

	track := width - lipgloss.Width(label) - lipgloss.Width(pct) - 1
	if track < 4 {
		track = 4
	}
	filled := int(frac * float64(track))

	bar := lipgloss.NewStyle().Foreground(theme.Secondary).Render(strings.Repeat("█", filled)) +
		lipgloss.NewStyle().Foreground(theme.Border).Render(strings.Repeat("░", track-filled))

	return label + " " + bar + pct
}
