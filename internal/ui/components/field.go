package components

import (
	"strconv"

	"charm.land/bubbles/v2/textinput"
	tea "charm.land/bubbletea/v2"

	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/ui/theme"
)

// Field is a single form input built on bubbles/textinput. A digits-only
// field drops any keystroke that isn't 0-9 before the inner model sees
// it. After Mark, the field renders a ✓ or ✗ next to its value until
// the next Clear.
type Field struct {
	input      textinput.Model
	digitsOnly bool

	marked bool
	ok     bool
}

// NewField returns a field with the given placeholder. limit of 0
// means unlimited length.
func NewField(placeholder string, digitsOnly bool, limit int) Field {
	in := textinput.New()
	in.Placeholder = placeholder
	if limit > 0 {
		in.CharLimit = limit
	}
	return Field{input: in, digitsOnly: digitsOnly}
}

// Focus gives the field keyboard focus.
func (f *Field) Focus() tea.Cmd {
	return f.input.Focus()
}

// Blur removes keyboard focus.
func (f *Field) Blur() {
	f.input.Blur()
}

// Update feeds a message to the field.
func (f Field) Update(msg tea.Msg) (Field, tea.Cmd) {
	if f.digitsOnly {
		if key, isKey := msg.(tea.KeyMsg); isKey {
			s := key.String()
			if len(s) == 1 && (s[0] < '0' || s[0] > '9') {
				return f, nil
			}
		}
	}
	var cmd tea.Cmd
	f.input, cmd = f.input.Update(msg)
	return f, cmd
}

// View renders the field and, once marked, its validity glyph.
func (f Field) View() string {
	out := f.input.View()
	if !f.marked {
		return out
	}
	if f.ok {
		return out + " " + lipgloss.NewStyle().Foreground(theme.Success).Render("✓")
	}
	return out + " " + lipgloss.NewStyle().Foreground(theme.Error).Render("✗")
}

// Value returns the raw text.
func (f Field) Value() string {
	return f.input.Value()
}

// Int parses the text as an integer.
func (f Field) Int() (int, error) {
	return strconv.Atoi(f.input.Value())
}

// Mark records a validation outcome for display.
func (f *Field) Mark(ok bool) {
	f.marked = true
	f.ok = ok
}

// Clear resets the text and any validation mark.
func (f *Field) Clear() {
	f.input.SetValue("")
	f.marked = false
	f.ok = false
}
