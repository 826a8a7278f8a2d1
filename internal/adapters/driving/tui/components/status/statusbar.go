// Package status provides the status bar component for the TUI.
package status

import (
	"fmt"
	"strings"

	"github.com/custodia-labs/cookbook/internal/adapters/driving/tui/keymap"
	"github.com/custodia-labs/cookbook/internal/adapters/driving/tui/styles"
)

// State represents the import state for display.
type State string

const (
	StateRunning State = "running"
	StateDone    State = "done"
	StateError   State = "error"
)

// Bar displays the import state and keybinding hints.
type Bar struct {
	styles  *styles.Styles
	keymap  *keymap.KeyMap
	state   State
	message string
}

// NewBar creates a new status bar component.
func NewBar(s *styles.Styles, km *keymap.KeyMap) *Bar {
	if s == nil {
		s = styles.DefaultStyles()
	}
	if km == nil {
		km = keymap.DefaultKeyMap()
	}

	return &Bar{
		styles: s,
		keymap: km,
		state:  StateRunning,
	}
}

// View renders the status bar.
func (s *Bar) View() string {
	return s.styles.StatusBar.Render(s.renderLeft() + "  " + s.renderRight())
}

func (s *Bar) renderLeft() string {
	switch s.state {
	case StateDone:
		return s.styles.Success.Render("Done")
	case StateError:
		if s.message != "" {
			return s.styles.Error.Render(fmt.Sprintf("Error: %s", s.message))
		}
		return s.styles.Error.Render("Error")
	case StateRunning:
		return s.styles.Muted.Render("Working...")
	}
	return ""
}

// renderRight renders keybinding hints.
func (s *Bar) renderRight() string {
	bindings := s.keymap.ShortHelp()
	hints := make([]string, 0, len(bindings))
	for _, b := range bindings {
		h := b.Help()
		hints = append(hints, fmt.Sprintf("%s: %s", h.Key, h.Desc))
	}
	return s.styles.Muted.Render(strings.Join(hints, " | "))
}

// SetState sets the current state.
func (s *Bar) SetState(state State) {
	s.state = state
}

// State returns the current state.
func (s *Bar) State() State {
	return s.state
}

// SetMessage sets the error message.
func (s *Bar) SetMessage(message string) {
	s.message = message
}

// Message returns the current message.
func (s *Bar) Message() string {
	return s.message
}
