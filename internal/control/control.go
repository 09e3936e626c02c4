// Package control turns raw player input into the discrete signals the
// inventory listens to.
package control

import (
	"time"

	"stick-battle-arena/internal/event"
)

// Direction is a movement request on the grid.
type Direction struct {
	X, Y int
}

var (
	Up    = Direction{0, -1}
	Down  = Direction{0, 1}
	Left  = Direction{-1, 0}
	Right = Direction{1, 0}
)

// Controller is one player's input signal source.
type Controller struct {
	useDown event.Signal[struct{}]
	useUp   event.Signal[struct{}]
	swap    event.Signal[struct{}]
	move    event.Signal[Direction]
}

// NewController returns a controller with no listeners.
func NewController() *Controller {
	return &Controller{}
}

func (c *Controller) PressUse() { c.useDown.Emit(struct{}{}) }
func (c *Controller) ReleaseUse() { c.useUp.Emit(struct{}{}) }
func (c *Controller) Switch() { c.swap.Emit(struct{}{}) }
func (c *Controller) Move(dir Direction) { c.move.Emit(dir) }

func (c *Controller) OnUseDown(fn func()) event.Connection {
	return c.useDown.Connect(func(struct{}) { fn() })
}

func (c *Controller) OnUseUp(fn func()) event.Connection {
	return c.useUp.Connect(func(struct{}) { fn() })
}

func (c *Controller) OnSwitch(fn func()) event.Connection {
	return c.swap.Connect(func(struct{}) { fn() })
}

func (c *Controller) OnMove(fn func(Direction)) event.Connection {
	return c.move.Connect(fn)
}

// DefaultReleaseAfter is how long a latch waits without a press before
// it reports the use button as released.
const DefaultReleaseAfter = 200 * time.Millisecond

// Latch converts a stream of key presses into a single use-down followed
// by a use-up. Terminals report repeats but never key releases, so the
// release is inferred after a quiet period.
type Latch struct {
	ctrl         *Controller
	releaseAfter time.Duration
	down         bool
	idle         time.Duration
}

// NewLatch drives ctrl. A non-positive releaseAfter uses DefaultReleaseAfter.
func NewLatch(ctrl *Controller, releaseAfter time.Duration) *Latch {
	if releaseAfter <= 0 {
		releaseAfter = DefaultReleaseAfter
	}
	return &Latch{ctrl: ctrl, releaseAfter: releaseAfter}
}

// Press records a use key event. Only the first press of a hold emits.
func (l *Latch) Press() {
	l.idle = 0
	if l.down {
		return
	}
	l.down = true
	l.ctrl.PressUse()
}

// Advance moves the latch clock forward and releases the button once
// no press has arrived for the release period.
func (l *Latch) Advance(dt time.Duration) {
	if !l.down {
		return
	}
	l.idle += dt
	if l.idle >= l.releaseAfter {
		l.Release()
	}
}

// Release lets go of the button immediately if it is down.
func (l *Latch) Release() {
	if !l.down {
		return
	}
	l.down = false
	l.idle = 0
	l.ctrl.ReleaseUse()
}

// Down reports whether the button is currently considered held.
func (l *Latch) Down() bool { return l.down }
