// Package nav holds the screen contract and the navigation stack the
// app model drives. Screens never hold references to each other; moving
// between them happens through Go and Back commands, which keeps every
// screen testable in isolation.
package nav

import (
	tea "charm.land/bubbletea/v2"

	"github.com/edfolio/questline/internal/ui/layout"
)

// Screen is one full-content view: the dashboard, the badge list, and
// so on. The app model supplies the header and footer; View renders
// only the region between them.
type Screen interface {
	Init() tea.Cmd
	Update(msg tea.Msg) (Screen, tea.Cmd)
	View(width, height int) string

	// Title labels the screen in the header.
	Title() string
}

// Hinter is implemented by screens that want their own footer key hints.
type Hinter interface {
	KeyHints() []layout.KeyHint
}

// goMsg and backMsg are the navigation requests Stack.Update consumes.
type goMsg struct{ to Screen }
type backMsg struct{}

// Go returns a command that pushes s onto the stack.
func Go(s Screen) tea.Cmd {
	return func() tea.Msg { return goMsg{to: s} }
}

// Back returns a command that pops the current screen.
func Back() tea.Cmd {
	return func() tea.Msg { return backMsg{} }
}

// Stack routes messages to the active screen and services Go/Back
// requests. The bottom screen can never be popped.
type Stack struct {
	screens []Screen
}

// NewStack returns a stack rooted at home.
func NewStack(home Screen) *Stack {
	return &Stack{screens: []Screen{home}}
}

func (st *Stack) push(s Screen) tea.Cmd {
	st.screens = append(st.screens, s)
	return s.Init()
}

func (st *Stack) pop() {
	if len(st.screens) > 1 {
		st.screens = st.screens[:len(st.screens)-1]
	}
}

// Top returns the active screen.
func (st *Stack) Top() Screen {
	return st.screens[len(st.screens)-1]
}

// Len reports how many screens are on the stack.
func (st *Stack) Len() int {
	return len(st.screens)
}

// Update consumes navigation messages itself and forwards everything
// else to the active screen, storing whatever screen value it returns.
func (st *Stack) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case goMsg:
		return st.push(msg.to)
	case backMsg:
		st.pop()
		return nil
	}

	top := len(st.screens) - 1
	next, cmd := st.screens[top].Update(msg)
	st.screens[top] = next
	return cmd
}

// View renders the active screen into the given content box.
func (st *Stack) View(width, height int) string {
	return st.Top().View(width, height)
}
