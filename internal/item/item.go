// Package item implements a durable, poolable arena item: it lies in the
// world for a limited time, can be picked up by one player, forwards the
// use button while equipped and breaks when its durability runs out.
package item

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/event"
)

// Kind identifies an item type. It is the pool key.
type Kind string

// Mode is the presentation mode of an owned item.
type Mode int

const (
	Stowed Mode = iota // hidden and unusable
	Active             // visible and usable
)

func (m Mode) String() string {
	if m == Active {
		return "active"
	}
	return "stowed"
}

// State is where an item currently lives. An item is in exactly one state.
type State int

const (
	Pooled State = iota
	InWorld
	Held
)

func (s State) String() string {
	switch s {
	case InWorld:
		return "in-world"
	case Held:
		return "held"
	default:
		return "pooled"
	}
}

// Facing is the horizontal direction a holder points its items.
type Facing int

const (
	FacingRight Facing = 1
	FacingLeft  Facing = -1
)

// Holder is the attach point an item is carried on.
type Holder interface {
	Attach(it *Item)
	Detach(it *Item)
	Face(f Facing)
}

// Owner is the player picking an item up.
type Owner interface {
	PlayerID() ecs.EntityID
	Holder() Holder
}

// Releaser takes items back once they break or expire.
type Releaser interface {
	Release(kind Kind, it *Item)
}

// Breakable is implemented by anything that announces its own breaking.
type Breakable interface {
	OnBreak(fn func(*Item)) event.Connection
}

// Item is a single pooled item instance.
type Item struct {
	kind          Kind
	serial        uuid.UUID
	maxDurability int
	durability    int
	lifespan      time.Duration

	mode     Mode
	state    State
	physics  bool
	usable   bool
	pressing bool
	breaking bool

	owner  Owner
	holder Holder
	pool   Releaser
	log    *slog.Logger

	// OnUseDown and OnUseUp fire while the item is equipped and its
	// owner presses or releases the use button.
	OnUseDown event.Signal[*Item]
	OnUseUp   event.Signal[*Item]
	// OnExpire fires when a world item's lifespan runs out, just before
	// it goes back to the pool.
	OnExpire event.Signal[*Item]
	// OnStow fires when an equipped item is stowed, swapped away or
	// returned to the pool. A press in progress is dropped with it.
	OnStow event.Signal[*Item]

	broke event.Signal[*Item]
}

// Option configures an Item.
type Option func(*Item)

// WithLogger sets the logger used for lifecycle debug output.
func WithLogger(l *slog.Logger) Option {
	return func(it *Item) { it.log = l }
}

// New creates a pooled item of the given kind at full durability.
func New(kind Kind, maxDurability int, pool Releaser, opts ...Option) *Item {
	it := &Item{
		kind:          kind,
		serial:        uuid.New(),
		maxDurability: maxDurability,
		durability:    maxDurability,
		physics:       true,
		pool:          pool,
		log:           slog.Default(),
	}
	for _, o := range opts {
		o(it)
	}
	return it
}

func (it *Item) Kind() Kind { return it.kind }
func (it *Item) Serial() uuid.UUID { return it.serial }
func (it *Item) Durability() int { return it.durability }
func (it *Item) MaxDurability() int { return it.maxDurability }
func (it *Item) Lifespan() time.Duration { return it.lifespan }
func (it *Item) Mode() Mode { return it.mode }
func (it *Item) State() State { return it.state }
func (it *Item) Owner() Owner { return it.owner }
func (it *Item) PhysicsEnabled() bool { return it.physics }
func (it *Item) Usable() bool { return it.usable }
func (it *Item) Pressing() bool { return it.pressing }
func (it *Item) BreakSubscribers() int { return it.broke.Len() }
func (it *Item) String() string { return string(it.kind) + "#" + it.serial.String()[:8] }
func (it *Item) attrs() []any { return []any{"kind", it.kind, "serial", it.serial} }

// OnBreak subscribes fn to the item breaking. Subscriptions are dropped
// when the item returns to the pool.
func (it *Item) OnBreak(fn func(*Item)) event.Connection {
	return it.broke.Connect(fn)
}

// Spawn puts a pooled item into the world with a fresh lifespan.
// A world item just has its lifespan refreshed; held items are left alone.
func (it *Item) Spawn(lifespan time.Duration) {
	if it.state == Held {
		return
	}
	it.state = InWorld
	it.physics = true
	it.lifespan = lifespan
}

// PickUp hands a world item to owner and reports whether it did.
// Items that are already held or sit in the pool are refused.
func (it *Item) PickUp(owner Owner) bool {
	if owner == nil || it.state != InWorld {
		return false
	}
	it.physics = false
	it.owner = owner
	it.holder = owner.Holder()
	if it.holder != nil {
		it.holder.Attach(it)
	}
	it.state = Held
	return true
}

// Equip makes a held item active and routes the use button to it.
func (it *Item) Equip() {
	if it.state != Held {
		return
	}
	it.mode = Active
	it.usable = true
}

// UnEquip stows the item. A press in progress is dropped.
func (it *Item) UnEquip() {
	wasUsable := it.usable
	it.mode = Stowed
	it.usable = false
	it.pressing = false
	if wasUsable {
		it.OnStow.Emit(it)
	}
}

// UseButtonDown forwards a use-button press. Ignored unless equipped.
func (it *Item) UseButtonDown() {
	if !it.usable {
		return
	}
	it.pressing = true
	it.OnUseDown.Emit(it)
}

// UseButtonUp forwards a use-button release. Ignored unless equipped.
func (it *Item) UseButtonUp() {
	if !it.usable {
		return
	}
	it.pressing = false
	it.OnUseUp.Emit(it)
}

// IncreaseDurability adds n. There is no upper clamp.
func (it *Item) IncreaseDurability(n int) {
	it.durability += n
}

// ReduceDurability subtracts n. When durability reaches zero the break
// subscribers are notified once and the item goes back to the pool.
func (it *Item) ReduceDurability(n int) {
	if it.state == Pooled {
		return
	}
	it.durability -= n
	if it.durability > 0 || it.breaking {
		return
	}
	it.breaking = true
	it.log.Debug("item broke", it.attrs()...)
	it.broke.Emit(it)
	it.ReturnToPool()
}

// Update advances the lifespan of an unowned world item and returns it
// to the pool once expired.
func (it *Item) Update(dt time.Duration) {
	// Held is checked first so a pickup during this tick beats expiry.
	if it.state != InWorld {
		return
	}
	it.lifespan -= dt
	if it.lifespan > 0 {
		return
	}
	it.log.Debug("item expired", it.attrs()...)
	it.OnExpire.Emit(it)
	it.ReturnToPool()
}

// ReturnToPool resets the item and releases it. Calling it on an item
// that is already pooled does nothing.
func (it *Item) ReturnToPool() {
	if it.state == Pooled {
		return
	}
	it.physics = true
	it.UnEquip()
	it.broke.Clear()
	if it.holder != nil {
		it.holder.Detach(it)
	}
	it.holder = nil
	it.owner = nil
	it.durability = it.maxDurability
	it.lifespan = 0
	it.state = Pooled
	it.breaking = false
	if it.pool != nil {
		it.pool.Release(it.kind, it)
	}
}
