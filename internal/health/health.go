// Package health tracks a player's hit points and turns lethal damage
// into a death: the health resets, the last dealer is credited and the
// victim loses a life.
package health

import (
	"log/slog"

	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/event"
	"stick-battle-arena/internal/item"
)

// DamageInfo describes one hit at the moment it lands.
type DamageInfo struct {
	Dealer   ecs.EntityID
	Target   ecs.EntityID
	Damage   int
	ItemUsed *item.Item
}

// Change is the payload of a health-changed notification.
type Change struct {
	Remaining int
	Max       int
}

// ScoreKeeper receives the kill bonus and the life decrement.
type ScoreKeeper interface {
	IncreaseScore(id ecs.EntityID, amount int)
	ReduceRemainingLife(id ecs.EntityID)
}

// Health is one player's hit points.
type Health struct {
	id         ecs.EntityID
	max        int
	remaining  int
	killBonus  int
	lastDealer ecs.EntityID
	scores     ScoreKeeper
	log        *slog.Logger

	OnHealthChange event.Signal[Change]
	OnDeath        event.Signal[ecs.EntityID]
}

// Option configures a Health.
type Option func(*Health)

// WithLogger sets the logger deaths are reported to.
func WithLogger(l *slog.Logger) Option {
	return func(h *Health) { h.log = l }
}

// New creates full health for player id.
func New(id ecs.EntityID, maxHealth, killBonus int, scores ScoreKeeper, opts ...Option) *Health {
	h := &Health{
		id:        id,
		max:       maxHealth,
		remaining: maxHealth,
		killBonus: killBonus,
		scores:    scores,
		log:       slog.Default(),
	}
	for _, o := range opts {
		o(h)
	}
	return h
}

func (h *Health) ID() ecs.EntityID { return h.id }
func (h *Health) Max() int { return h.max }
func (h *Health) Remaining() int { return h.remaining }
func (h *Health) LastDealer() ecs.EntityID { return h.lastDealer }

// DeductHealth applies info.Damage on behalf of dealer. Damage is not
// clamped and may be negative.
//
// Lethal damage notifies the intermediate value first, then the reset
// to full health, then credits the last dealer with the kill bonus,
// takes a life from the victim and finally emits the death.
func (h *Health) DeductHealth(dealer ecs.EntityID, info DamageInfo) {
	h.remaining -= info.Damage
	h.lastDealer = dealer
	h.OnHealthChange.Emit(Change{Remaining: h.remaining, Max: h.max})
	if h.remaining > 0 {
		return
	}
	h.remaining = h.max
	h.OnHealthChange.Emit(Change{Remaining: h.remaining, Max: h.max})
	if h.scores != nil {
		h.scores.IncreaseScore(h.lastDealer, h.killBonus)
		h.scores.ReduceRemainingLife(h.id)
	}
	h.log.Debug("player died", "victim", h.id, "dealer", h.lastDealer, "bonus", h.killBonus)
	h.OnDeath.Emit(h.id)
}

// Restore refills health without going through the damage path.
func (h *Health) Restore() {
	if h.remaining == h.max {
		return
	}
	h.remaining = h.max
	h.OnHealthChange.Emit(Change{Remaining: h.remaining, Max: h.max})
}
