package badges

import (
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/engine"
	"github.com/edfolio/questline/internal/nav"
	"github.com/edfolio/questline/internal/ui/layout"
	"github.com/edfolio/questline/internal/ui/theme"
	"github.com/edfolio/questline/internal/view"
)

// BadgesScreen lists every badge with its unlock state.
type BadgesScreen struct {
	eng *engine.Engine
}

var _ nav.Screen = (*BadgesScreen)(nil)
var _ nav.Hinter = (*BadgesScreen)(nil)

// New creates the badges screen.
func New(eng *engine.Engine) *BadgesScreen {
	return &BadgesScreen{eng: eng}
}

func (s *BadgesScreen) Init() tea.Cmd {
	return nil
}

func (s *BadgesScreen) Title() string {
	return "Badges"
}

func (s *BadgesScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "Esc", Description: "Back"},
	}
}

func (s *BadgesScreen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	if kmsg, ok := msg.(tea.KeyMsg); ok && kmsg.String() == "esc" {
		return s, nav.Back()
	}
	return s, nil
}

func (s *BadgesScreen) View(width, height int) string {
	vm := view.Project(s.eng.State(), s.eng.Config())

	var b strings.Builder
	for _, badge := range vm.Badges {
		icon := "🔒"
		style := theme.Locked
		if badge.Unlocked {
			icon = "🏅"
			style = theme.Unlocked
		}
		b.WriteString(icon + "  " + style.Render(badge.Label) + "\n\n")
	}

	card := theme.Card.Width(min(width-4, 60)).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.NewStyle().PaddingTop(1).PaddingLeft(2).Render(card)
}
