package dashboard

import (
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/engine"
	"github.com/edfolio/questline/internal/nav"
	"github.com/edfolio/questline/internal/screens/badges"
	"github.com/edfolio/questline/internal/screens/grant"
	"github.com/edfolio/questline/internal/screens/lessons"
	"github.com/edfolio/questline/internal/ui/components"
	"github.com/edfolio/questline/internal/ui/layout"
	"github.com/edfolio/questline/internal/ui/theme"
	"github.com/edfolio/questline/internal/view"
)

// DashboardScreen is the landing screen: the learner's progress at a
// glance plus navigation into the interaction screens. All values are
// re-projected from engine state on every render, so returning from a
// mutating screen always shows fresh numbers.
type DashboardScreen struct {
	eng  *engine.Engine
	menu components.Menu
}

var _ nav.Screen = (*DashboardScreen)(nil)
var _ nav.Hinter = (*DashboardScreen)(nil)

// New creates the dashboard over an initialized engine.
func New(eng *engine.Engine) *DashboardScreen {
	items := []components.MenuItem{
		{Label: "LESSONS", Action: func() tea.Cmd {
			return nav.Go(lessons.New(eng))
		}},
		{Label: "BADGES", Action: func() tea.Cmd {
			return nav.Go(badges.New(eng))
		}},
		{Label: "AWARD XP", Action: func() tea.Cmd {
			return nav.Go(grant.New(eng))
		}},
		{Label: "QUIT", Action: func() tea.Cmd {
			return tea.Quit
		}},
	}

	return &DashboardScreen{
		eng:  eng,
		menu: components.NewMenu(items),
	}
}

func (s *DashboardScreen) Init() tea.Cmd {
	return nil
}

func (s *DashboardScreen) Title() string {
	return "Dashboard"
}

func (s *DashboardScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Navigate"},
		{Key: "Enter", Description: "Select"},
		{Key: "Ctrl+C", Description: "Quit"},
	}
}

func (s *DashboardScreen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	var cmd tea.Cmd
	s.menu, cmd = s.menu.Update(msg)
	return s, cmd
}

func (s *DashboardScreen) View(width, height int) string {
	vm := view.Project(s.eng.State(), s.eng.Config())

	statsWidth := width * 3 / 5
	if statsWidth < 40 {
		statsWidth = 40
	}

	stats := renderStats(vm, statsWidth-6)
	statsCard := theme.Card.Width(statsWidth).Render(stats)

	menu := lipgloss.NewStyle().
		PaddingTop(2).
		PaddingLeft(4).
		Render(s.menu.View())

	return lipgloss.JoinHorizontal(lipgloss.Top, statsCard, menu)
}

func renderStats(vm view.Model, width int) string {
	var b strings.Builder

	b.WriteString(theme.Body.Bold(true).Render(fmt.Sprintf("Level %d", vm.Level)))
	b.WriteString(theme.Hint.Render(fmt.Sprintf("   %d XP total", vm.TotalXP)))
	b.WriteString("\n\n")

	b.WriteString(components.Gauge("XP", vm.LevelFraction, width))
	b.WriteString("\n\n")

	b.WriteString(theme.Body.Render(fmt.Sprintf("★ %d day streak", vm.Streak)))
	b.WriteString("\n\n")

	for _, l := range vm.Lessons {
		style := theme.Locked
		if l.Completed {
			style = theme.Unlocked
		}
		b.WriteString(theme.Body.Render(l.Key) + "  " + style.Render(l.Label) + "\n")
	}
	b.WriteString("\n")

	b.WriteString(components.Gauge("Lessons", float64(vm.LessonPercent)/100, width))
	b.WriteString("\n\n")

	b.WriteString(theme.Hint.Render("Momentum"))
	b.WriteString("\n")
	b.WriteString(components.NewBarChart(vm.Momentum, 4).View())

	return b.String()
}
