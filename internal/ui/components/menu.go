package components

import (
	"strings"

	tea "charm.land/bubbletea/v2"

	"github.com/edfolio/questline/internal/ui/theme"
)

// MenuItem is one selectable entry. Action runs on Enter.
type MenuItem struct {
	Label  string
	Action func() tea.Cmd
}

// Menu is a vertical single-select menu driven by arrow keys or j/k.
type Menu struct {
	Items  []MenuItem
	cursor int
}

// NewMenu creates a menu with the cursor on the first item.
func NewMenu(items []MenuItem) Menu {
	return Menu{Items: items}
}

// Update moves the cursor and fires the selected action on Enter.
func (m Menu) Update(msg tea.Msg) (Menu, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.Items)-1 {
			m.cursor++
		}
	case "enter":
		if item := m.Items[m.cursor]; item.Action != nil {
			return m, item.Action()
		}
	}
	return m, nil
}

// View renders the menu with a pointer on the selected item.
func (m Menu) View() string {
	var b strings.Builder
	for i, item := range m.Items {
		if i == m.cursor {
			b.WriteString(theme.Selected.Render("  ▸ " + item.Label))
		} else {
			b.WriteString(theme.Unselected.Render("    " + item.Label))
		}
		b.WriteByte('\n')
	}
	return b.String()
}
