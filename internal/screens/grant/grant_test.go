package grant

import (
	"context"
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

func typeText(s *GrantScreen, text string) {
	for _, r := range text {
		s.Update(tea.KeyPressMsg{Code: r, Text: string(r)})
	}
}

func enter(s *GrantScreen) {
	s.Update(tea.KeyPressMsg{Code: tea.KeyEnter})
}

func TestGrantScreen_Title(t *testing.T) {
	s := New(testEngine(t))
	if s.Title() != "Award XP" {
		t.Errorf("Title = %q, want %q", s.Title(), "Award XP")
	}
}

func TestGrantScreen_SubmitAwardsOnce(t *testing.T) {
	eng := testEngine(t)
	s := New(eng)
	s.Init()

	typeText(s, "quiz-q1")
	enter(s) // source -> amount
	typeText(s, "25")
	enter(s) // submit

	if got := eng.State().XP; got != 25 {
		t.Fatalf("XP = %d, want 25", got)
	}

	// Same key again: ledger blocks the grant.
	typeText(s, "quiz-q1")
	enter(s)
	typeText(s, "25")
	enter(s)

	if got := eng.State().XP; got != 25 {
		t.Errorf("XP after duplicate = %d, want 25", got)
	}
}

func TestGrantScreen_EmptySourceRejected(t *testing.T) {
	eng := testEngine(t)
	s := New(eng)
	s.Init()

	enter(s) // skip to amount with empty source
	typeText(s, "10")
	enter(s)

	if got := eng.State().XP; got != 0 {
		t.Errorf("XP = %d, want 0 for empty source key", got)
	}
	if s.notice == "" {
		t.Error("expected a notice explaining the rejection")
	}
}

func TestGrantScreen_NonNumericAmountFiltered(t *testing.T) {
	eng := testEngine(t)
	s := New(eng)
	s.Init()

	typeText(s, "quiz-q2")
	enter(s)
	typeText(s, "abc") // dropped by the digits-only field
	enter(s)

	if got := eng.State().XP; got != 0 {
		t.Errorf("XP = %d, want 0 when amount is empty", got)
	}
}

func TestGrantScreen_EscPops(t *testing.T) {
	s := New(testEngine(t))
	_, cmd := s.Update(tea.KeyPressMsg{Code: tea.KeyEscape})
	if cmd == nil {
		t.Error("expected a command on Esc (back)")
	}
}
