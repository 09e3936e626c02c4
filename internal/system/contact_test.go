package system

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/gamemap"
)

func TestStrikeTargets(t *testing.T) {
	w, s, gmap, player := setupMoveWorld()
	near := w.CreateEntity()
	s.Position.Set(near, component.Position{X: 5, Y: 3})
	s.Blocking.Set(near, component.TagBlocking{})
	behind := w.CreateEntity()
	s.Position.Set(behind, component.Position{X: 1, Y: 3})
	s.Blocking.Set(behind, component.TagBlocking{})
	from := component.Position{X: 3, Y: 3}

	assert.Empty(t, StrikeTargets(s, gmap, player, from, 1, 1))
	assert.Equal(t, []ecs.EntityID{near}, StrikeTargets(s, gmap, player, from, 1, 2))
	assert.Empty(t, StrikeTargets(s, gmap, player, from, -1, 1))
	assert.Equal(t, []ecs.EntityID{behind}, StrikeTargets(s, gmap, player, from, -1, 5))

	gmap.Set(4, 3, gamemap.MakePillar())
	assert.Empty(t, StrikeTargets(s, gmap, player, from, 1, 3), "pillars stop the swing")
}

func TestFreeTilesSkipsOccupied(t *testing.T) {
	w, s, gmap, _ := setupMoveWorld()
	ground := w.CreateEntity()
	s.Position.Set(ground, component.Position{X: 1, Y: 1})
	s.Pickup.Set(ground, component.Pickup{})

	free := FreeTiles(s, gmap)

	assert.Len(t, free, 64-2)
	assert.NotContains(t, free, component.Position{X: 3, Y: 3})
	assert.NotContains(t, free, component.Position{X: 1, Y: 1})
	assert.Equal(t, component.Position{X: 2, Y: 1}, free[0])
}

func TestRandomFreeTile(t *testing.T) {
	_, s, gmap, _ := setupMoveWorld()
	rng := rand.New(rand.NewSource(3))
	for i := 0; i < 20; i++ {
		p, ok := RandomFreeTile(s, gmap, rng)
		assert.True(t, ok)
		assert.True(t, gmap.IsWalkable(p.X, p.Y))
		assert.NotEqual(t, component.Position{X: 3, Y: 3}, p)
	}

	full := gamemap.New(3, 3)
	_, ok := RandomFreeTile(s, full, rng)
	assert.False(t, ok)
}
