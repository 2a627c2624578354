package ui

import (
	"github.com/dori/habitpet/internal/update"
)

// Screen is what fills the area below the header
type Screen int

const (
	ScreenHome Screen = iota
	ScreenLibrary
	ScreenHelp
)

// String returns the display name for a screen
func (s Screen) String() string {
	switch s {
	case ScreenHome:
		return "Home"
	case ScreenLibrary:
		return "Library"
	case ScreenHelp:
		return "Help"
	default:
		return "Unknown"
	}
}

// UpdateFetchedMsg carries the result of the startup version check
type UpdateFetchedMsg struct {
	Descriptor update.Descriptor
	Err        error
}
