// Package score keeps each player's score and remaining lives.
package score

import (
	"sort"

	"stick-battle-arena/internal/ecs"
)

// Entry is one player's row on the board.
type Entry struct {
	ID    ecs.EntityID `json:"id"`
	Name  string       `json:"name"`
	Score int          `json:"score"`
	Lives int          `json:"lives"`
}

// Board is the score and life service of a match.
type Board struct {
	order   []ecs.EntityID
	entries map[ecs.EntityID]*Entry
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{entries: make(map[ecs.EntityID]*Entry)}
}

// Join adds a player with the given number of lives. Joining twice
// resets the player's row.
func (b *Board) Join(id ecs.EntityID, name string, lives int) {
	if _, ok := b.entries[id]; !ok {
		b.order = append(b.order, id)
	}
	b.entries[id] = &Entry{ID: id, Name: name, Lives: lives}
}

// IncreaseScore adds amount to the player's score. Unknown players are ignored.
func (b *Board) IncreaseScore(id ecs.EntityID, amount int) {
	if e, ok := b.entries[id]; ok {
		e.Score += amount
	}
}

// ReduceRemainingLife takes a life from the player, stopping at zero.
func (b *Board) ReduceRemainingLife(id ecs.EntityID) {
	if e, ok := b.entries[id]; ok && e.Lives > 0 {
		e.Lives--
	}
}

func (b *Board) Score(id ecs.EntityID) int {
	if e, ok := b.entries[id]; ok {
		return e.Score
	}
	return 0
}

func (b *Board) RemainingLives(id ecs.EntityID) int {
	if e, ok := b.entries[id]; ok {
		return e.Lives
	}
	return 0
}

// Eliminated reports whether a joined player has no lives left.
func (b *Board) Eliminated(id ecs.EntityID) bool {
	e, ok := b.entries[id]
	return ok && e.Lives == 0
}

// Standings lists every player, best first: higher score, then more
// lives, then join order.
func (b *Board) Standings() []Entry {
	out := make([]Entry, 0, len(b.order))
	for _, id := range b.order {
		out = append(out, *b.entries[id])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		return out[i].Lives > out[j].Lives
	})
	return out
}
