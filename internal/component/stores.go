package component

import "stick-battle-arena/internal/ecs"

// Stores groups the component stores of one arena world.
type Stores struct {
	Position   *ecs.Store[Position]
	Renderable *ecs.Store[Renderable]
	Projectile *ecs.Store[Projectile]
	Pickup     *ecs.Store[Pickup]
	Player     *ecs.Store[TagPlayer]
	Blocking   *ecs.Store[TagBlocking]
}

// NewStores creates every component store on w.
func NewStores(w *ecs.World) *Stores {
	return &Stores{
		Position:   ecs.NewStore[Position](w),
		Renderable: ecs.NewStore[Renderable](w),
		Projectile: ecs.NewStore[Projectile](w),
		Pickup:     ecs.NewStore[Pickup](w),
		Player:     ecs.NewStore[TagPlayer](w),
		Blocking:   ecs.NewStore[TagBlocking](w),
	}
}

// At returns the first entity carrying store's component at pos, in
// ascending ID order, or NilEntity.
func At[T any](s *Stores, store *ecs.Store[T], pos Position) ecs.EntityID {
	for _, id := range store.IDs() {
		if p, ok := s.Position.Get(id); ok && p == pos {
			return id
		}
	}
	return ecs.NilEntity
}
