// Package inventory holds the two item slots a player carries.
package inventory

import (
	"log/slog"

	"stick-battle-arena/internal/control"
	"stick-battle-arena/internal/event"
	"stick-battle-arena/internal/item"
)

// Slot indexes the inventory.
type Slot int

const (
	SlotEquipped Slot = iota
	SlotHeld
	numSlots
)

func (s Slot) String() string {
	if s == SlotHeld {
		return "held"
	}
	return "equipped"
}

// Inventory is one player's equipped and held item. Items are borrowed
// from the pool; the inventory only keeps a reference and a break
// subscription per item.
type Inventory struct {
	owner item.Owner
	slots [numSlots]*item.Item
	subs  map[*item.Item]event.Connection
	log   *slog.Logger

	OnEquip  event.Signal[*Inventory]
	OnHold   event.Signal[*Inventory]
	OnSwitch event.Signal[*Inventory]
	OnPick   event.Signal[*Inventory]
}

// Option configures an Inventory.
type Option func(*Inventory)

// WithLogger sets the logger for rejected pickups.
func WithLogger(l *slog.Logger) Option {
	return func(inv *Inventory) { inv.log = l }
}

// New creates an empty inventory for owner.
func New(owner item.Owner, opts ...Option) *Inventory {
	inv := &Inventory{
		owner: owner,
		subs:  make(map[*item.Item]event.Connection),
		log:   slog.Default(),
	}
	for _, o := range opts {
		o(inv)
	}
	return inv
}

func (inv *Inventory) Owner() item.Owner { return inv.owner }
func (inv *Inventory) At(s Slot) *item.Item { return inv.slots[s] }
func (inv *Inventory) Equipped() *item.Item { return inv.slots[SlotEquipped] }
func (inv *Inventory) Held() *item.Item { return inv.slots[SlotHeld] }
func (inv *Inventory) Subscriptions() int { return len(inv.subs) }

// IsFull reports whether both slots are occupied.
func (inv *Inventory) IsFull() bool {
	return inv.slots[SlotEquipped] != nil && inv.slots[SlotHeld] != nil
}

// PickUpItem tries to take it from the world. A full inventory refuses
// and leaves the item where it is. The first free slot gets the item:
// an empty equipped slot equips it directly, otherwise it goes to held
// and the slots are swapped so the new item ends up in hand.
func (inv *Inventory) PickUpItem(it *item.Item) bool {
	if it == nil {
		return false
	}
	if inv.IsFull() {
		inv.log.Debug("pickup rejected: inventory full", "item", it.Kind())
		return false
	}
	if !it.PickUp(inv.owner) {
		inv.log.Debug("pickup rejected: item not in world", "item", it.Kind(), "state", it.State())
		return false
	}
	if inv.slots[SlotEquipped] == nil {
		inv.slots[SlotEquipped] = it
		it.Equip()
		inv.watch(it)
		inv.OnEquip.Emit(inv)
	} else {
		inv.slots[SlotHeld] = it
		inv.watch(it)
		inv.Swap()
	}
	inv.OnPick.Emit(inv)
	return true
}

func (inv *Inventory) watch(it *item.Item) {
	inv.subs[it] = it.OnBreak(inv.OnItemBroken)
}

// Swap exchanges the equipped and held items. ItemSwitch always fires,
// followed by ItemEquip and ItemHold for the slots that received an item.
func (inv *Inventory) Swap() {
	var nowEquipped, nowHeld bool
	if eq := inv.slots[SlotEquipped]; eq != nil {
		eq.UnEquip()
		nowHeld = true
	}
	if held := inv.slots[SlotHeld]; held != nil {
		held.Equip()
		nowEquipped = true
	}
	inv.slots[SlotEquipped], inv.slots[SlotHeld] = inv.slots[SlotHeld], inv.slots[SlotEquipped]

	inv.OnSwitch.Emit(inv)
	if nowEquipped {
		inv.OnEquip.Emit(inv)
	}
	if nowHeld {
		inv.OnHold.Emit(inv)
	}
}

// UseDown forwards a use press to the equipped item.
func (inv *Inventory) UseDown() {
	if eq := inv.slots[SlotEquipped]; eq != nil {
		eq.UseButtonDown()
	}
}

// UseUp forwards a use release to the equipped item.
func (inv *Inventory) UseUp() {
	if eq := inv.slots[SlotEquipped]; eq != nil {
		eq.UseButtonUp()
	}
}

// OnItemBroken drops it from whichever slot holds it. Items the
// inventory does not carry are ignored.
func (inv *Inventory) OnItemBroken(it *item.Item) {
	if conn, ok := inv.subs[it]; ok {
		conn.Disconnect()
		delete(inv.subs, it)
	}
	if inv.slots[SlotEquipped] == it {
		inv.slots[SlotEquipped] = nil
	} else if inv.slots[SlotHeld] == it {
		inv.slots[SlotHeld] = nil
	}
}

// Face turns the owner's holder toward the horizontal direction of
// movement. Vertical moves leave the facing unchanged.
func (inv *Inventory) Face(dir control.Direction) {
	if inv.owner == nil {
		return
	}
	h := inv.owner.Holder()
	if h == nil {
		return
	}
	switch {
	case dir.X > 0:
		h.Face(item.FacingRight)
	case dir.X < 0:
		h.Face(item.FacingLeft)
	}
}

// Bind routes a controller's signals into the inventory and returns a
// function that undoes the binding.
func (inv *Inventory) Bind(c *control.Controller) func() {
	conns := []event.Connection{
		c.OnUseDown(inv.UseDown),
		c.OnUseUp(inv.UseUp),
		c.OnSwitch(inv.Swap),
		c.OnMove(inv.Face),
	}
	return func() {
		for _, conn := range conns {
			conn.Disconnect()
		}
	}
}

// Discard empties both slots and sends their items back to the pool.
func (inv *Inventory) Discard() {
	var items []*item.Item
	for s := range inv.slots {
		if it := inv.slots[s]; it != nil {
			items = append(items, it)
			inv.slots[s] = nil
		}
	}
	for it, conn := range inv.subs {
		conn.Disconnect()
		delete(inv.subs, it)
	}
	for _, it := range items {
		it.ReturnToPool()
	}
}
