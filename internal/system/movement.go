package system

import (
	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/gamemap"
)

// MoveResult describes the outcome of a TryMove call.
type MoveResult uint8

const (
	MoveOK      MoveResult = iota // position updated
	MoveBlocked                   // wall, pillar or out-of-bounds
	MoveBump                      // bumped a blocking entity
)

// TryMove attempts to move entity id by (dx, dy) on gmap.
// Returns the outcome and (if MoveBump) the entity in the way.
func TryMove(s *component.Stores, gmap *gamemap.GameMap, id ecs.EntityID, dx, dy int) (MoveResult, ecs.EntityID) {
	pos, ok := s.Position.Get(id)
	if !ok {
		return MoveBlocked, ecs.NilEntity
	}
	next := pos.Add(dx, dy)

	// Check for blocking entities at destination.
	for _, other := range s.Blocking.IDs() {
		if other == id {
			continue
		}
		if p, ok := s.Position.Get(other); ok && p == next {
			return MoveBump, other
		}
	}

	// Check map walkability.
	if !gmap.IsWalkable(next.X, next.Y) {
		return MoveBlocked, ecs.NilEntity
	}

	// Move.
	s.Position.Set(id, next)
	return MoveOK, ecs.NilEntity
}

// Place puts id on pos without any checks.
func Place(s *component.Stores, id ecs.EntityID, pos component.Position) {
	s.Position.Set(id, pos)
}
