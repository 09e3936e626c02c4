package game

import (
	"github.com/gdamore/tcell/v2"

	"stick-battle-arena/internal/control"
)

// Action represents a requested game action.
type Action uint8

const (
	ActionNone Action = iota
	ActionMoveUp
	ActionMoveDown
	ActionMoveLeft
	ActionMoveRight
	ActionUse
	ActionSwitch
	ActionQuit
	ActionRematch
)

// NoPlayer marks actions that belong to the match rather than a seat.
const NoPlayer = -1

// Binding is an action for one player seat (or NoPlayer).
type Binding struct {
	Player int
	Action Action
}

// keyToBinding maps a tcell key event to a seat and action.
// Player 1: w a s d move, f use, g switch.
// Player 2: arrow keys move, . use, / switch.
func keyToBinding(ev *tcell.EventKey) Binding {
	// Named keys.
	switch ev.Key() {
	case tcell.KeyUp:
		return Binding{1, ActionMoveUp}
	case tcell.KeyDown:
		return Binding{1, ActionMoveDown}
	case tcell.KeyLeft:
		return Binding{1, ActionMoveLeft}
	case tcell.KeyRight:
		return Binding{1, ActionMoveRight}
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return Binding{NoPlayer, ActionQuit}
	case tcell.KeyRune:
	default:
		return Binding{NoPlayer, ActionNone}
	}

	// Rune keys.
	switch ev.Rune() {
	case 'w', 'W':
		return Binding{0, ActionMoveUp}
	case 's', 'S':
		return Binding{0, ActionMoveDown}
	case 'a', 'A':
		return Binding{0, ActionMoveLeft}
	case 'd', 'D':
		return Binding{0, ActionMoveRight}
	case 'f', 'F':
		return Binding{0, ActionUse}
	case 'g', 'G':
		return Binding{0, ActionSwitch}
	case '.':
		return Binding{1, ActionUse}
	case '/':
		return Binding{1, ActionSwitch}
	case 'q', 'Q':
		return Binding{NoPlayer, ActionQuit}
	case 'r', 'R':
		return Binding{NoPlayer, ActionRematch}
	}
	return Binding{NoPlayer, ActionNone}
}

// actionToDirection converts a movement action to a direction.
func actionToDirection(a Action) (control.Direction, bool) {
	switch a {
	case ActionMoveUp:
		return control.Up, true
	case ActionMoveDown:
		return control.Down, true
	case ActionMoveLeft:
		return control.Left, true
	case ActionMoveRight:
		return control.Right, true
	}
	return control.Direction{}, false
}
