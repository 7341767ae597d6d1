package tui

import (
	tea "github.com/charmbracelet/bubbletea"
)

// PlaybackAction represents a playback control derived from a key press.
type PlaybackAction int

const (
	PlaybackNone PlaybackAction = iota
	PlaybackTogglePause
	PlaybackRestart
	PlaybackFaster
	PlaybackSlower
	PlaybackBack
	PlaybackQuit
)

// KeyMapper translates Bubble Tea key messages to playback actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapPlaybackKey translates a key to a playback action.
func (km *KeyMapper) MapPlaybackKey(msg tea.KeyMsg) PlaybackAction {
	switch msg.String() {
	case "ctrl+c", "q":
		return PlaybackQuit
	case " ", "p":
		return PlaybackTogglePause
	case "r":
		return PlaybackRestart
	case "+", "=", "right", "l":
		return PlaybackFaster
	case "-", "left", "h":
		return PlaybackSlower
	case "b", "esc":
		return PlaybackBack
	}
	return PlaybackNone
}
