package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/trex-runner/internal/core"
)

// KeyMapper translates Bubble Tea key messages to runner actions.
// This centralizes key bindings and makes them testable.
type KeyMapper struct{}

// NewKeyMapper creates a new key mapper with default bindings.
func NewKeyMapper() *KeyMapper {
	return &KeyMapper{}
}

// MapKey translates a key message to an action.
// Returns the action (may be ActionNone) and whether it's a quit request.
func (km *KeyMapper) MapKey(msg tea.KeyMsg) (action core.Action, isQuit bool) {
	switch msg.String() {
	case "ctrl+c", "q":
		return core.ActionQuit, true
	case " ", "space", "up", "w":
		return core.ActionJump, false
	case "down", "s":
		return core.ActionDuck, false
	case "d":
		return core.ActionToggleDebug, false
	}
	return core.ActionNone, false
}

// MapMouse returns a click event for a left button press, mapped to canvas coordinates.
func (km *KeyMapper) MapMouse(msg tea.MouseMsg, r *Raster) (core.Event, bool) {
	if msg.Action != tea.MouseActionPress || msg.Button != tea.MouseButtonLeft {
		return core.Event{}, false
	}
	x, y := r.ToCanvas(msg.X, msg.Y)
	return core.ClickAt(x, y), true
}
