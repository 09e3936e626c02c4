package component

import (
	"time"

	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/item"
)

// Projectile is an arrow or bullet in flight. It travels DX tiles per
// step horizontally at Speed tiles per second until Range runs out.
type Projectile struct {
	Kind    string
	Owner   ecs.EntityID
	Source  *item.Item
	Damage  int
	DX      int
	Speed   int
	Range   int
	Elapsed time.Duration
}
