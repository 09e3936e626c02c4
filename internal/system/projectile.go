package system

import (
	"time"

	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/gamemap"
)

// ImpactKind says why a projectile stopped.
type ImpactKind uint8

const (
	ImpactTarget ImpactKind = iota // hit a blocking entity
	ImpactWall                     // hit a wall or pillar
	ImpactSpent                    // ran out of range
)

// Impact reports a projectile that stopped during a step.
type Impact struct {
	Projectile ecs.EntityID
	Kind       ImpactKind
	Target     ecs.EntityID
	At         component.Position
}

// StepProjectiles advances every projectile by dt and returns the ones
// that stopped, in ascending projectile order. Stopped projectiles keep
// their components; the caller decides what to do with them.
func StepProjectiles(s *component.Stores, gmap *gamemap.GameMap, dt time.Duration) []Impact {
	var impacts []Impact
	for _, id := range s.Projectile.IDs() {
		p, _ := s.Projectile.Get(id)
		pos, ok := s.Position.Get(id)
		if !ok || p.Speed <= 0 {
			continue
		}
		stepEvery := time.Second / time.Duration(p.Speed)
		p.Elapsed += dt
		stopped := false
		for p.Elapsed >= stepEvery && !stopped {
			p.Elapsed -= stepEvery
			next := pos.Add(p.DX, 0)
			if target := component.At(s, s.Blocking, next); target != ecs.NilEntity && target != p.Owner {
				impacts = append(impacts, Impact{Projectile: id, Kind: ImpactTarget, Target: target, At: next})
				stopped = true
				break
			}
			if !gmap.IsWalkable(next.X, next.Y) {
				impacts = append(impacts, Impact{Projectile: id, Kind: ImpactWall, At: pos})
				stopped = true
				break
			}
			pos = next
			p.Range--
			if p.Range <= 0 {
				impacts = append(impacts, Impact{Projectile: id, Kind: ImpactSpent, At: pos})
				stopped = true
			}
		}
		s.Position.Set(id, pos)
		s.Projectile.Set(id, p)
	}
	return impacts
}
