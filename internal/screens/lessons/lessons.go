package lessons

import (
	"context"
	"fmt"
	"strings"

	tea "charm.land/bubbletea/v2"
	"charm.land/lipgloss/v2"

	"github.com/edfolio/questline/internal/engine"
	"github.com/edfolio/questline/internal/nav"
	"github.com/edfolio/questline/internal/ui/layout"
	"github.com/edfolio/questline/internal/ui/theme"
	"github.com/edfolio/questline/internal/view"
)

// LessonsScreen lists the lessons and lets the learner mark the
// selected one complete. Completion goes through the engine, so the
// bonus is granted at most once no matter how often Enter is pressed.
type LessonsScreen struct {
	eng    *engine.Engine
	cursor int
	notice string
}

var _ nav.Screen = (*LessonsScreen)(nil)
var _ nav.Hinter = (*LessonsScreen)(nil)

// New creates the lessons screen.
func New(eng *engine.Engine) *LessonsScreen {
	return &LessonsScreen{eng: eng}
}

func (s *LessonsScreen) Init() tea.Cmd {
	return nil
}

func (s *LessonsScreen) Title() string {
	return "Lessons"
}

func (s *LessonsScreen) KeyHints() []layout.KeyHint {
	return []layout.KeyHint{
		{Key: "↑↓", Description: "Select"},
		{Key: "Enter", Description: "Mark complete"},
		{Key: "Esc", Description: "Back"},
	}
}

func (s *LessonsScreen) Update(msg tea.Msg) (nav.Screen, tea.Cmd) {
	kmsg, ok := msg.(tea.KeyMsg)
	if !ok {
		return s, nil
	}

	statuses := view.Project(s.eng.State(), s.eng.Config()).Lessons

	switch kmsg.String() {
	case "esc":
		return s, nav.Back()
	case "up", "k":
		if s.cursor > 0 {
			s.cursor--
		}
	case "down", "j":
		if s.cursor < len(statuses)-1 {
			s.cursor++
		}
	case "enter":
		if s.cursor >= len(statuses) {
			return s, nil
		}
		key := statuses[s.cursor].Key
		res := s.eng.CompleteLesson(context.Background(), key)
		switch {
		case res.Unknown:
			s.notice = fmt.Sprintf("%s is not part of this course.", key)
		case res.Already:
			s.notice = fmt.Sprintf("%s was already completed.", key)
		default:
			s.notice = fmt.Sprintf("🎉 %s marked complete! +%d XP", key, s.eng.Config().CompletionBonus)
		}
	}
	return s, nil
}

func (s *LessonsScreen) View(width, height int) string {
	vm := view.Project(s.eng.State(), s.eng.Config())

	var b strings.Builder
	for i, l := range vm.Lessons {
		marker := "  "
		if i == s.cursor {
			marker = "▸ "
		}
		style := theme.Locked
		if l.Completed {
			style = theme.Unlocked
		}
		line := marker + l.Key + "  " + style.Render(l.Label)
		if i == s.cursor {
			line = theme.Selected.Render(line)
		}
		b.WriteString(line + "\n")
	}

	if s.notice != "" {
		b.WriteString("\n" + theme.Hint.Render(s.notice) + "\n")
	}

	card := theme.Card.Width(min(width-4, 60)).Render(strings.TrimRight(b.String(), "\n"))
	return lipgloss.NewStyle().PaddingTop(1).PaddingLeft(2).Render(card)
}
