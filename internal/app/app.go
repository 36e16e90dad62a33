package app

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/engine"
	"github.com/edfolio/questline/internal/nav"
	"github.com/edfolio/questline/internal/screens/dashboard"
	"github.com/edfolio/questline/internal/ui/layout"
)

// Options carries the dependencies for the TUI.
type Options struct {
	// Engine must be initialized before Run; the UI never loads state
	// itself.
	Engine *engine.Engine
}

// appModel is the root Bubble Tea model.
type appModel struct {
	eng     *engine.Engine
	screens *nav.Stack
	width   int
	height  int
}

func newAppModel(opts Options) appModel {
	return appModel{
		eng:     opts.Engine,
		screens: nav.NewStack(dashboard.New(opts.Engine)),
	}
}

func (m appModel) Init() tea.Cmd {
	return nil
}

func (m appModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			return m, tea.Quit
		}
	}

	cmd := m.screens.Update(msg)
	return m, cmd
}

func (m appModel) View() tea.View {
	v := tea.NewView("")
	v.AltScreen = true

	if m.width == 0 || m.height == 0 {
		return v
	}

	if layout.IsTooSmall(m.width, m.height) {
		v.SetContent(layout.RenderMinSizeMessage(m.width, m.height))
		return v
	}

	active := m.screens.Top()

	st := m.eng.State()
	header := layout.RenderHeader(active.Title(), st.XP, st.Streak, m.width)

	var footerHints []layout.KeyHint
	if h, ok := active.(nav.Hinter); ok {
		footerHints = h.KeyHints()
	} else {
		footerHints = []layout.KeyHint{
			{Key: "Esc", Description: "Back"},
			{Key: "Ctrl+C", Description: "Quit"},
		}
	}

	footer := layout.RenderFooter(footerHints, m.width)

	headerHeight := lipgloss.Height(header)
	footerHeight := lipgloss.Height(footer)
	contentHeight := m.height - headerHeight - footerHeight
	if contentHeight < 0 {
		contentHeight = 0
	}

	content := m.screens.View(m.width, contentHeight)
	frame := layout.RenderFrame(header, content, footer, m.width, m.height)

	v.SetContent(frame)
	return v
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	p := tea.NewProgram(newAppModel(opts))
	if _, err := p.Run(); err != nil {
		fmt.Fprintln(os.Stderr, "Error running program:", err)
		return err
	}
	return nil
}
