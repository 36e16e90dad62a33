package grant

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/engine"
	"github.com/edfolio/questline/internal/nav"
	"github.com/edfolio/questline/internal/ui/components"
	"github.com/edfolio/questline/internal/ui/layout"
	"github.com/edfolio/questline/internal/ui/theme"
)

const (
	fieldSource = iota
	fieldAmount
)

// GrantScreen awards XP for an arbitrary source key, the same way a
// page widget would: one stable key, one amount, granted at most once.
// Useful when wiring a new page interaction and for making up missed
// rewards by hand.
type GrantScreen struct {
	eng    *engine.Engine
	source components.Field
	amount components.Field
	focus  int
	notice string
}

var _ nav.Screen = (*GrantScreen)(nil)
var _ nav.Hinter = (*GrantScreen)(nil)

// New creates the grant screen.
func New(eng *engine.Engine) *GrantScreen {
	return &GrantScreen{
		eng:    eng,
		source: components.NewField("e.g. lesson2-quiz-q3", false, 64),
		amount: components.NewField("XP amount", true, 4),
	}
}

func (s *GrantScreen) Init() tea.Cmd {
	return s.source.Focus()
}

func (s *GrantScreen) Title() string {
	return "Award XP"
}

func (s *GrantScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Tab", Description: "Next field"},
		{Key: "Enter", Description: "Award"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *GrantScreen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok {
		switch kmsg.String() {
		case "esc":
			return s, nav.Back()
		case "tab", "shift+tab":
			return s, s.toggleFocus()
		case "enter":
			if s.focus == fieldSource {
				return s, s.toggleFocus()
			}
			s.submit()
			return s, nil
		}
	}

	var cmd tea.Cmd
	if s.focus == fieldSource {
		s.source, cmd = s.source.Update(msg)
	} else {
		s.amount, cmd = s.amount.Update(msg)
	}
	return s, cmd
}

func (s *GrantScreen) toggleFocus() tea.Cmd {
	if s.focus == fieldSource {
		s.focus = fieldAmount
		s.source.Blur()
		return s.amount.Focus()
	}
	s.focus = fieldSource
	s.amount.Blur()
	return s.source.Focus()
}

func (s *GrantScreen) submit() {
	key := strings.TrimSpace(s.source.Value())
	if key == "" {
		s.notice = "Source key is required."
		s.source.Mark(false)
		return
	}

	amount, err := s.amount.Int()
	if err != nil || amount <= 0 {
		s.notice = "Amount must be a positive number."
		s.amount.Mark(false)
		return
	}

	res := s.eng.GrantOnce(context.Background(), key, amount)
	if !res.Granted {
		s.notice = fmt.Sprintf("%q has already earned its XP.", key)
		s.source.Mark(false)
		return
	}

	s.notice = fmt.Sprintf("✦ +%d XP for %q", amount, key)
	s.source.Clear()
	s.amount.Clear()
}

func (s *GrantScreen) View(width, height int) string {
	var b strings.Builder

	b.WriteString(theme.Body.Render("Source key") + "\n")
	b.WriteString(s.source.View() + "\n\n")
	b.WriteString(theme.Body.Render("Amount") + "\n")
	b.WriteString(s.amount.View() + "\n")

	if s.notice != "" {
		b.WriteString("\n" + theme.Hint.Render(s.notice) + "\n")
	}

	card := theme.Card.Width(min(width-4, 60)).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.NewStyle().PaddingTop(1).PaddingLeft(2).Render(card)
}
