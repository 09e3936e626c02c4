// Package weapon gives items something to do when their owner presses
// the use button.
package weapon

import (
	"stick-battle-arena/internal/event"
	"stick-battle-arena/internal/item"
)

// Shot describes a projectile leaving a ranged weapon.
type Shot struct {
	Projectile string
	Glyph      string
	Damage     int
	Speed      int // tiles per second
	Range      int // tiles
	Used       *item.Item
}

// World is the part of the match a weapon acts on.
type World interface {
	// Strike hits whatever stands within reach in front of owner.
	Strike(owner item.Owner, reach, damage int, used *item.Item)
	// Fire launches a projectile from owner toward its facing.
	Fire(owner item.Owner, shot Shot)
}

// Behaviour reacts to the use button of one item.
type Behaviour interface {
	UseDown(it *item.Item, w World)
	UseUp(it *item.Item, w World)
}

// Stower is implemented by behaviours holding state that must not
// outlive the item being equipped.
type Stower interface {
	Stow(it *item.Item)
}

// Attach wires b to it. The returned function detaches it again.
func Attach(it *item.Item, b Behaviour, w World) func() {
	conns := []event.Connection{
		it.OnUseDown.Connect(func(i *item.Item) { b.UseDown(i, w) }),
		it.OnUseUp.Connect(func(i *item.Item) { b.UseUp(i, w) }),
	}
	if s, ok := b.(Stower); ok {
		conns = append(conns, it.OnStow.Connect(s.Stow))
	}
	return func() {
		for _, c := range conns {
			c.Disconnect()
		}
	}
}

// Melee swings on press.
type Melee struct {
	Damage int
	Reach  int
	Wear   int
}

func (m Melee) UseDown(it *item.Item, w World) {
	owner := it.Owner()
	if owner == nil {
		return
	}
	w.Strike(owner, max(m.Reach, 1), m.Damage, it)
	it.ReduceDurability(m.Wear)
}

func (Melee) UseUp(*item.Item, World) {}

// Pistol fires one bullet per press.
type Pistol struct {
	Shot Shot
	Wear int
}

func (p Pistol) UseDown(it *item.Item, w World) {
	owner := it.Owner()
	if owner == nil {
		return
	}
	shot := p.Shot
	shot.Used = it
	w.Fire(owner, shot)
	it.ReduceDurability(p.Wear)
}

func (Pistol) UseUp(*item.Item, World) {}

// Bow draws on press and looses an arrow on release. A release without
// a matching draw does nothing. Bow keeps per-item state, so every bow
// item needs its own value.
type Bow struct {
	Shot  Shot
	Wear  int
	drawn bool
}

func (b *Bow) UseDown(*item.Item, World) {
	b.drawn = true
}

func (b *Bow) UseUp(it *item.Item, w World) {
	if !b.drawn {
		return
	}
	b.drawn = false
	owner := it.Owner()
	if owner == nil {
		return
	}
	shot := b.Shot
	shot.Used = it
	w.Fire(owner, shot)
	it.ReduceDurability(b.Wear)
}

// Stow lets the string go without loosing an arrow.
func (b *Bow) Stow(*item.Item) { b.drawn = false }

// Drawn reports whether the string is pulled back.
func (b *Bow) Drawn() bool { return b.drawn }
