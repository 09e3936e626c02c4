package arena

import (
	"github.com/gdamore/tcell/v2"

	"stick-battle-arena/internal/control"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/gamemap"
	"stick-battle-arena/internal/health"
	"stick-battle-arena/internal/inventory"
	"stick-battle-arena/internal/item"
)

// Seat describes a player before the match starts.
type Seat struct {
	Name  string
	Glyph string
	Color tcell.Color
}

// Player is one fighter in a match. It is the owner and the attach
// point of the items it carries.
type Player struct {
	ID         ecs.EntityID
	Seat       Seat
	Spawn      gamemap.Point
	Facing     item.Facing
	Controller *control.Controller
	Inventory  *inventory.Inventory
	Health     *health.Health
	Eliminated bool

	carried []*item.Item
	unbind  []func()
}

func (p *Player) PlayerID() ecs.EntityID { return p.ID }
func (p *Player) Holder() item.Holder { return p }

// Attach takes it onto the player's hands.
func (p *Player) Attach(it *item.Item) {
	p.carried = append(p.carried, it)
}

// Detach lets go of it.
func (p *Player) Detach(it *item.Item) {
	for i, c := range p.carried {
		if c == it {
			p.carried = append(p.carried[:i], p.carried[i+1:]...)
			return
		}
	}
}

// Face points the player's items left or right.
func (p *Player) Face(f item.Facing) {
	p.Facing = f
}

// Carried returns the items attached to the player.
func (p *Player) Carried() []*item.Item {
	return p.carried
}

func (p *Player) release() {
	for _, fn := range p.unbind {
		fn()
	}
	p.unbind = nil
}
