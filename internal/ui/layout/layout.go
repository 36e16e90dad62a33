// Package layout renders the chrome shared by every screen: the header
// bar with the learner's running totals, the key-hint footer, and the
// frame that stacks them around screen content.
package layout

import (
	"fmt"
	"strings"

	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/ui/theme"
)

// Minimum usable terminal size. Below this the app shows a resize
// prompt instead of a broken frame.
const (
	MinWidth  = 70
	MinHeight = 22
)

// KeyHint is one key binding shown in the footer.
type KeyHint struct {
	Key         string
	Description string
}

// IsTooSmall reports whether the terminal is below the minimum size.
func IsTooSmall(width, height int) bool {
	return width < MinWidth || height < MinHeight
}

// RenderMinSizeMessage fills the terminal with a resize prompt.
func RenderMinSizeMessage(width, height int) string {
	msg := fmt.Sprintf("Terminal too small!\n\nPlease resize to at\nleast %d x %d\n\nCurrent: %d x %d",
		MinWidth, MinHeight, width, height)
	return lipgloss.NewStyle().
		Align(lipgloss.Center).
		Foreground(theme.Text).
		Width(width).
		Height(height).
		Render(msg)
}

// bar wraps content in the bordered bar style used by both header and
// footer.
func bar(content string, width int) string {
	return lipgloss.NewStyle().
		Width(width).
		Background(theme.BgCard).
		Border(lipgloss.RoundedBorder()).
		BorderForeground(theme.Border).
		Render(content)
}

// RenderHeader renders the top bar: brand on the left, the active
// screen title in the middle, XP and streak totals on the right.
func RenderHeader(title string, xp, streak, width int) string {
	brand := theme.Title.Align(lipgloss.Left).Render("  Questline")
	center := theme.Body.Render(title)
	totals := lipgloss.NewStyle().Foreground(theme.Accent).
		Render(fmt.Sprintf("✦ %d XP   ★ %d day", xp, streak))

	inner := width - 4
	if inner < 0 {
		inner = 0
	}

	pad := func(n int) string {
		if n < 1 {
			n = 1
		}
		return strings.Repeat(" ", n)
	}
	leftGap := (inner-lipgloss.Width(center))/2 - lipgloss.Width(brand)
	rightGap := inner - lipgloss.Width(brand) - max(leftGap, 1) -
		lipgloss.Width(center) - lipgloss.Width(totals)

	return bar(brand+pad(leftGap)+center+pad(rightGap)+totals, width)
}

// RenderFooter renders the bottom bar of key hints.
func RenderFooter(hints []KeyHint, width int) string {
	parts := make([]string, 0, len(hints))
	for _, h := range hints {
		parts = append(parts,
			theme.Body.Bold(true).Render(h.Key)+" "+theme.Hint.Italic(false).Render(h.Description))
	}
	return bar("  "+strings.Join(parts, "   "), width)
}

// RenderFrame stacks header, content, and footer to fill the terminal.
func RenderFrame(header, content, footer string, width, height int) string {
	body := height - lipgloss.Height(header) - lipgloss.Height(footer)
	if body < 0 {
		body = 0
	}
	content = lipgloss.NewStyle().Width(width).Height(body).Render(content)
	return header + "\n" + content + "\n" + footer
}
