package factory

import (
	"github.com/gdamore/tcell/v2"

	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/item"
)

// NewPlayer creates a player entity at pos drawn with glyph in color.
func NewPlayer(w *ecs.World, s *component.Stores, pos component.Position, glyph string, color tcell.Color) ecs.EntityID {
	id := w.CreateEntity()
	s.Position.Set(id, pos)
	s.Renderable.Set(id, component.Renderable{
		Glyph:       glyph,
		FGColor:     color,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 10,
	})
	s.Player.Set(id, component.TagPlayer{})
	s.Blocking.Set(id, component.TagBlocking{})
	return id
}

// NewGroundItem creates the floor entity for an item lying at pos.
func NewGroundItem(w *ecs.World, s *component.Stores, it *item.Item, pos component.Position, glyph string) ecs.EntityID {
	id := w.CreateEntity()
	s.Position.Set(id, pos)
	s.Renderable.Set(id, component.Renderable{
		Glyph:       glyph,
		FGColor:     tcell.ColorGreen,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 2,
	})
	s.Pickup.Set(id, component.Pickup{Item: it})
	return id
}

// NewProjectileSlot creates an empty entity for the projectile pool.
// It carries no components until launched.
func NewProjectileSlot(w *ecs.World) ecs.EntityID {
	return w.CreateEntity()
}

// LaunchProjectile gives a pooled projectile entity its flight state.
func LaunchProjectile(s *component.Stores, id ecs.EntityID, pos component.Position, p component.Projectile, glyph string) {
	p.Elapsed = 0
	s.Position.Set(id, pos)
	s.Projectile.Set(id, p)
	s.Renderable.Set(id, component.Renderable{
		Glyph:       glyph,
		FGColor:     tcell.ColorWhite,
		BGColor:     tcell.ColorDefault,
		RenderOrder: 5,
	})
}

// StowProjectile strips a projectile entity back to an empty pool slot.
func StowProjectile(s *component.Stores, id ecs.EntityID) {
	s.Position.Delete(id)
	s.Projectile.Delete(id)
	s.Renderable.Delete(id)
}
