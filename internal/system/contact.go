package system

import (
	"math/rand"

	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/gamemap"
)

// PickupAt returns the ground item entity lying on pos, or NilEntity.
func PickupAt(s *component.Stores, pos component.Position) ecs.EntityID {
	return component.At(s, s.Pickup, pos)
}

// StrikeTargets returns the blocking entities hit by a swing from pos
// toward dx (+1 or -1) with the given reach, nearest first. Walls stop
// the swing.
func StrikeTargets(s *component.Stores, gmap *gamemap.GameMap, self ecs.EntityID, pos component.Position, dx, reach int) []ecs.EntityID {
	var hits []ecs.EntityID
	for step := 1; step <= reach; step++ {
		p := pos.Add(dx*step, 0)
		if !gmap.IsWalkable(p.X, p.Y) {
			break
		}
		if id := component.At(s, s.Blocking, p); id != ecs.NilEntity && id != self {
			hits = append(hits, id)
		}
	}
	return hits
}

// FreeTiles lists walkable tiles with no blocking entity and no ground
// item, in row-major order.
func FreeTiles(s *component.Stores, gmap *gamemap.GameMap) []component.Position {
	taken := make(map[component.Position]bool)
	for _, id := range s.Blocking.IDs() {
		if p, ok := s.Position.Get(id); ok {
			taken[p] = true
		}
	}
	for _, id := range s.Pickup.IDs() {
		if p, ok := s.Position.Get(id); ok {
			taken[p] = true
		}
	}
	var free []component.Position
	for y := 0; y < gmap.Height; y++ {
		for x := 0; x < gmap.Width; x++ {
			p := component.Position{X: x, Y: y}
			if gmap.IsWalkable(x, y) && !taken[p] {
				free = append(free, p)
			}
		}
	}
	return free
}

// RandomFreeTile picks one of FreeTiles with rng. ok is false when the
// arena is full.
func RandomFreeTile(s *component.Stores, gmap *gamemap.GameMap, rng *rand.Rand) (component.Position, bool) {
	free := FreeTiles(s, gmap)
	if len(free) == 0 {
		return component.Position{}, false
	}
	return free[rng.Intn(len(free))], true
}
