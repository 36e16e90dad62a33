package lessons

import (
	"context"
	"strings"
	"testing"

	tea "charm.land/bubbletea/v2"

	"github.com/edfolio/questline/internal/engine"
	"github.com/edfolio/questline/internal/store"
)

func testEngine(t *testing.T) *engine.Engine {
	t.Helper()
	repos := store.NewMemoryRepos()
	eng := engine.New(repos, repos, engine.DefaultConfig())
	eng.Initialize(context.Background())
	return eng
}

func TestLessonsScreen_Title(t *testing.T) {
	s := New(testEngine(t))
	if s.Title() != "Lessons" {
		t.Errorf("Title = %q, want %q", s.Title(), "Lessons")
	}
}

func TestLessonsScreen_ListsConfiguredLessons(t *testing.T) {
	s := New(testEngine(t))
	view := s.View(80, 24)
	for _, key := range engine.DefaultConfig().LessonKeys {
		if !strings.Contains(view, key) {
			t.Errorf("view missing lesson %q", key)
		}
	}
}

func TestLessonsScreen_EnterCompletesSelected(t *testing.T) {
	eng := testEngine(t)
	s := New(eng)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	st := eng.State()
	first := engine.DefaultConfig().LessonKeys[0]
	if !st.Lessons[first].Completed {
		t.Errorf("lesson %q not completed after Enter", first)
	}
	if st.XP != eng.Config().CompletionBonus {
		t.Errorf("XP = %d, want %d", st.XP, eng.Config().CompletionBonus)
	}
}

func TestLessonsScreen_RepeatEnterKeepsXP(t *testing.T) {
	eng := testEngine(t)
	s := New(eng)

	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})

	if got := eng.State().XP; got != eng.Config().CompletionBonus {
		t.Errorf("XP after repeat = %d, want %d", got, eng.Config().CompletionBonus)
	}
}

func TestLessonsScreen_EscPops(t *testing.T) {
	s := New(testEngine(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (back)")
	}
}
