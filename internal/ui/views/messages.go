package views

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/dori/habitpet/internal/app"
)

// ReactionMsg carries the pet's response to something the user did
type ReactionMsg struct {
	Reaction app.Reaction
}

// StatusMsg contains a status message to display
type StatusMsg struct {
	Message string
}

// ErrorMsg contains an error to display
type ErrorMsg struct {
	Err error
}

// BackMsg asks the root to return to the home screen
type BackMsg struct{}

func react(r app.Reaction) tea.Cmd {
	return func() tea.Msg { return ReactionMsg{Reaction: r} }
}

func status(msg string) tea.Cmd {
	return func() tea.Msg { return StatusMsg{Message: msg} }
}

func fail(err error) tea.Cmd {
	return func() tea.Msg { return ErrorMsg{Err: err} }
}
