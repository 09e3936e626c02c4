package arena

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/config"
	"stick-battle-arena/internal/control"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/health"
	"stick-battle-arena/internal/item"
	"stick-battle-arena/internal/system"
)

func newTestMatch(t *testing.T, mutate func(*config.Config)) *Match {
	t.Helper()
	return newSeatedMatch(t, mutate, Seat{Name: "Red", Glyph: "R"}, Seat{Name: "Blue", Glyph: "B"})
}

func newSeatedMatch(t *testing.T, mutate func(*config.Config), seats ...Seat) *Match {
	t.Helper()
	cfg, err := config.Parse()
	require.NoError(t, err)
	cfg.Arena.Pillars = 0
	cfg.Match.MaxGroundItems = 0
	if mutate != nil {
		mutate(cfg)
	}
	require.NoError(t, config.Validate(cfg))
	return New(cfg, seats, WithRand(rand.New(rand.NewSource(1))), WithID("test"))
}

func setItem(cfg *config.Config, kind string, fn func(ic *config.ItemConfig)) {
	for i := range cfg.Items {
		if cfg.Items[i].Kind == kind {
			fn(&cfg.Items[i])
		}
	}
}

func at(x, y int) component.Position { return component.Position{X: x, Y: y} }

func posOf(m *Match, p *Player) component.Position {
	pos, _ := m.Stores.Position.Get(p.ID)
	return pos
}

// arm drops an item of kind right of red and walks red onto it.
func arm(t *testing.T, m *Match, kind item.Kind) *item.Item {
	t.Helper()
	red := m.Players()[0]
	it := m.SpawnItem(kind, posOf(m, red).Add(1, 0))
	require.NotNil(t, it)
	red.Controller.Move(control.Right)
	require.Same(t, it, red.Inventory.Equipped())
	return it
}

func TestPlayersStartOnSpawns(t *testing.T) {
	m := newTestMatch(t, nil)
	red, blue := m.Players()[0], m.Players()[1]

	assert.Equal(t, at(2, 7), posOf(m, red))
	assert.Equal(t, at(27, 7), posOf(m, blue))
	assert.Equal(t, item.FacingRight, red.Facing)
	assert.Equal(t, item.FacingLeft, blue.Facing)
	assert.Equal(t, 3, m.Board.RemainingLives(red.ID))
	assert.Equal(t, 100, red.Health.Remaining())
}

func TestWalkingOntoItemPicksItUp(t *testing.T) {
	m := newTestMatch(t, nil)
	var picked []ItemEvent
	m.ItemPicked.Connect(func(ev ItemEvent) { picked = append(picked, ev) })
	red := m.Players()[0]

	it := arm(t, m, "sword")

	assert.Equal(t, 0, m.GroundItems())
	assert.Equal(t, 0, m.Stores.Pickup.Len())
	assert.Equal(t, item.Held, it.State())
	assert.Equal(t, []*item.Item{it}, red.Carried())
	require.Len(t, picked, 1)
	assert.Equal(t, red.ID, picked[0].Player)
}

func TestFullInventoryLeavesItemOnFloor(t *testing.T) {
	m := newTestMatch(t, nil)
	red := m.Players()[0]
	arm(t, m, "sword")
	arm(t, m, "spear")
	bow := m.SpawnItem("bow", posOf(m, red).Add(1, 0))

	red.Controller.Move(control.Right)

	assert.Equal(t, item.InWorld, bow.State())
	assert.Equal(t, 1, m.GroundItems())
	assert.Equal(t, posOf(m, red), at(5, 7), "the player still moves")
	assert.True(t, red.Inventory.IsFull())
}

func TestMeleeStrikeDamagesTarget(t *testing.T) {
	m := newTestMatch(t, nil)
	red, blue := m.Players()[0], m.Players()[1]
	sword := arm(t, m, "sword")
	system.Place(m.Stores, blue.ID, posOf(m, red).Add(1, 0))
	var hits []health.DamageInfo
	m.Damaged.Connect(func(d health.DamageInfo) { hits = append(hits, d) })

	red.Controller.PressUse()
	red.Controller.ReleaseUse()

	require.Len(t, hits, 1)
	assert.Equal(t, health.DamageInfo{Dealer: red.ID, Target: blue.ID, Damage: 25, ItemUsed: sword}, hits[0])
	assert.Equal(t, 75, blue.Health.Remaining())
	assert.Equal(t, 11, sword.Durability())
}

func TestSwingFacingAwayMisses(t *testing.T) {
	m := newTestMatch(t, nil)
	red, blue := m.Players()[0], m.Players()[1]
	arm(t, m, "sword")
	system.Place(m.Stores, blue.ID, posOf(m, red).Add(-1, 0))

	red.Controller.PressUse()

	assert.Equal(t, 100, blue.Health.Remaining())
}

func TestKillCreditsDealerAndRespawns(t *testing.T) {
	m := newTestMatch(t, func(c *config.Config) { c.Player.MaxHealth = 25 })
	red, blue := m.Players()[0], m.Players()[1]
	arm(t, m, "sword")
	system.Place(m.Stores, blue.ID, posOf(m, red).Add(1, 0))
	var deaths []DeathEvent
	m.Died.Connect(func(ev DeathEvent) { deaths = append(deaths, ev) })

	red.Controller.PressUse()

	require.Len(t, deaths, 1)
	assert.Equal(t, DeathEvent{Victim: blue.ID, Killer: red.ID, LivesLeft: 2}, deaths[0])
	assert.Equal(t, 100, m.Board.Score(red.ID))
	assert.Equal(t, 2, m.Board.RemainingLives(blue.ID))
	assert.Equal(t, 25, blue.Health.Remaining())
	assert.Equal(t, at(27, 7), posOf(m, blue))
	assert.False(t, m.IsOver())
}

func TestEliminationEndsMatch(t *testing.T) {
	m := newTestMatch(t, func(c *config.Config) {
		c.Player.MaxHealth = 25
		c.Match.Lives = 1
	})
	red, blue := m.Players()[0], m.Players()[1]
	spear := m.SpawnItem("spear", posOf(m, blue).Add(-1, 0))
	blue.Controller.Move(control.Left)
	require.Same(t, spear, blue.Inventory.Equipped())
	arm(t, m, "sword")
	system.Place(m.Stores, blue.ID, posOf(m, red).Add(1, 0))
	var results []Result
	m.Over.Connect(func(r Result) { results = append(results, r) })

	red.Controller.PressUse()

	require.Len(t, results, 1)
	assert.Equal(t, red.ID, results[0].Winner)
	assert.Equal(t, "last standing", results[0].Reason)
	assert.Equal(t, "test", results[0].MatchID)
	assert.True(t, m.IsOver())
	assert.True(t, blue.Eliminated)
	assert.Nil(t, blue.Inventory.Equipped())
	assert.Equal(t, item.Pooled, spear.State())
	assert.False(t, m.Stores.Position.Has(blue.ID))

	blue.Controller.Move(control.Left)
	red.Controller.Move(control.Up)
	assert.Equal(t, at(3, 7), posOf(m, red), "no moves after the match ends")
}

func TestPistolProjectileHitsAndReturnsToPool(t *testing.T) {
	m := newTestMatch(t, nil)
	red, blue := m.Players()[0], m.Players()[1]
	pistol := arm(t, m, "pistol")
	system.Place(m.Stores, blue.ID, at(10, 7))

	red.Controller.PressUse()
	require.Equal(t, 1, m.Projectiles())
	var hits []health.DamageInfo
	m.Damaged.Connect(func(d health.DamageInfo) { hits = append(hits, d) })

	m.Tick(time.Second)

	assert.Equal(t, 85, blue.Health.Remaining())
	assert.Equal(t, 0, m.Projectiles())
	assert.Equal(t, 1, m.shots.Idle("bullet"))
	require.Len(t, hits, 1)
	assert.Same(t, pistol, hits[0].ItemUsed)
	assert.Equal(t, red.ID, hits[0].Dealer)

	red.Controller.PressUse()
	assert.Equal(t, 0, m.shots.Idle("bullet"), "pooled projectile is reused")
}

func TestProjectileIntoWallReturnsToPool(t *testing.T) {
	m := newTestMatch(t, nil)
	red, blue := m.Players()[0], m.Players()[1]
	arm(t, m, "pistol")
	red.Controller.Move(control.Left)
	require.Equal(t, item.FacingLeft, red.Facing)

	red.Controller.PressUse()
	m.Tick(time.Second)

	assert.Equal(t, 0, m.Projectiles())
	assert.Equal(t, 1, m.shots.Idle("bullet"))
	assert.Equal(t, 100, blue.Health.Remaining())
}

func TestBowLoosesOnRelease(t *testing.T) {
	m := newTestMatch(t, nil)
	red, blue := m.Players()[0], m.Players()[1]
	arm(t, m, "bow")
	system.Place(m.Stores, blue.ID, at(12, 7))

	red.Controller.PressUse()
	assert.Equal(t, 0, m.Projectiles(), "drawing does not shoot")
	red.Controller.ReleaseUse()
	assert.Equal(t, 1, m.Projectiles())

	m.Tick(time.Second)
	assert.Equal(t, 65, blue.Health.Remaining())
}

func TestBrokenItemLeavesInventoryAndIsReused(t *testing.T) {
	m := newTestMatch(t, func(c *config.Config) {
		setItem(c, "sword", func(ic *config.ItemConfig) { ic.Durability = 1 })
	})
	red := m.Players()[0]
	var broken []ItemEvent
	m.ItemBroken.Connect(func(ev ItemEvent) { broken = append(broken, ev) })
	sword := arm(t, m, "sword")

	red.Controller.PressUse()

	require.Len(t, broken, 1)
	assert.Equal(t, red.ID, broken[0].Player)
	assert.Nil(t, red.Inventory.Equipped())
	assert.Empty(t, red.Carried())
	assert.Equal(t, item.Pooled, sword.State())
	assert.Equal(t, 1, m.items.Idle("sword"))

	again := m.SpawnItem("sword", at(10, 3))
	assert.Same(t, sword, again)
	assert.Equal(t, 1, again.Durability())
	assert.Nil(t, again.Owner())
	assert.Equal(t, 1, again.BreakSubscribers(), "only the match listens on the floor")
}

func TestGroundItemExpires(t *testing.T) {
	m := newTestMatch(t, nil)
	var expired []ItemEvent
	m.ItemExpired.Connect(func(ev ItemEvent) { expired = append(expired, ev) })
	sword := m.SpawnItem("sword", at(10, 3))

	m.Tick(10 * time.Second)
	assert.Equal(t, 1, m.GroundItems())
	m.Tick(5 * time.Second)

	require.Len(t, expired, 1)
	assert.Equal(t, item.Kind("sword"), expired[0].Kind)
	assert.Equal(t, 0, m.GroundItems())
	assert.Equal(t, 0, m.Stores.Pickup.Len())
	assert.Equal(t, item.Pooled, sword.State())
}

func TestHeldItemDoesNotExpire(t *testing.T) {
	m := newTestMatch(t, nil)
	sword := arm(t, m, "sword")

	m.Tick(time.Minute)

	assert.Equal(t, item.Held, sword.State())
}

func TestSpawnerRespectsCap(t *testing.T) {
	m := newTestMatch(t, func(c *config.Config) {
		c.Match.MaxGroundItems = 2
		c.Match.SpawnInterval = time.Second
	})
	spawned := 0
	m.ItemSpawned.Connect(func(ItemEvent) { spawned++ })

	for i := 0; i < 5; i++ {
		m.Tick(time.Second)
	}

	assert.Equal(t, 2, spawned)
	assert.Equal(t, 2, m.GroundItems())
	for _, id := range m.Stores.Pickup.IDs() {
		pos, _ := m.Stores.Position.Get(id)
		assert.True(t, m.Map.IsWalkable(pos.X, pos.Y))
	}
}

func TestTimeLimit(t *testing.T) {
	tests := []struct {
		name   string
		setup  func(m *Match)
		winner func(m *Match) ecs.EntityID
	}{
		{"draw", func(*Match) {}, func(*Match) ecs.EntityID { return ecs.NilEntity }},
		{"leader wins", func(m *Match) { m.Board.IncreaseScore(m.Players()[1].ID, 100) },
			func(m *Match) ecs.EntityID { return m.Players()[1].ID }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := newTestMatch(t, func(c *config.Config) { c.Match.TimeLimit = 2 * time.Second })
			tt.setup(m)

			m.Tick(time.Second)
			require.False(t, m.IsOver())
			assert.Equal(t, time.Second, m.Remaining())
			m.Tick(time.Second)

			require.True(t, m.IsOver())
			assert.Equal(t, tt.winner(m), m.Result().Winner)
			assert.Equal(t, "time limit", m.Result().Reason)
			assert.Equal(t, 2*time.Second, m.Result().Duration)
		})
	}
}

func TestCloseReturnsEverything(t *testing.T) {
	m := newTestMatch(t, nil)
	red := m.Players()[0]
	pistol := arm(t, m, "pistol")
	floor := m.SpawnItem("sword", at(10, 3))
	red.Controller.PressUse()

	m.Close()

	assert.Equal(t, item.Pooled, pistol.State())
	assert.Equal(t, item.Pooled, floor.State())
	assert.Equal(t, 0, m.Projectiles())
	assert.Equal(t, 0, m.GroundItems())
}

func TestRespawnAvoidsGroundItemOnSpawn(t *testing.T) {
	m := newTestMatch(t, func(c *config.Config) { c.Player.MaxHealth = 10 })
	red, blue := m.Players()[0], m.Players()[1]
	spawn := posOf(m, red)
	red.Controller.Move(control.Up)
	sword := m.SpawnItem("sword", spawn)
	require.NotNil(t, sword)

	red.Health.DeductHealth(blue.ID, health.DamageInfo{Dealer: blue.ID, Target: red.ID, Damage: 10})

	assert.Equal(t, 2, m.Board.RemainingLives(red.ID))
	assert.NotEqual(t, spawn, posOf(m, red))
	assert.Equal(t, item.InWorld, sword.State())
	assert.Nil(t, red.Inventory.Equipped())
}

func TestShotFromEliminatedShooterDealsNoDamage(t *testing.T) {
	m := newSeatedMatch(t, func(c *config.Config) { c.Match.Lives = 1 },
		Seat{Name: "Red", Glyph: "R"}, Seat{Name: "Blue", Glyph: "B"}, Seat{Name: "Green", Glyph: "G"})
	red, blue, green := m.Players()[0], m.Players()[1], m.Players()[2]
	arm(t, m, "pistol")
	system.Place(m.Stores, blue.ID, at(10, 7))
	system.Place(m.Stores, green.ID, at(10, 2))
	var hits []health.DamageInfo
	m.Damaged.Connect(func(d health.DamageInfo) { hits = append(hits, d) })

	red.Controller.PressUse()
	require.Equal(t, 1, m.Projectiles())
	red.Health.DeductHealth(green.ID, health.DamageInfo{Dealer: green.ID, Target: red.ID, Damage: red.Health.Max()})
	require.True(t, red.Eliminated)
	require.False(t, m.IsOver())

	m.Tick(time.Second)

	assert.Equal(t, 0, m.Projectiles())
	assert.Empty(t, hits)
	assert.Equal(t, blue.Health.Max(), blue.Health.Remaining())
	assert.Equal(t, 0, m.Board.Score(red.ID))
}

func TestItemBrokenListenersSeeItemStillEquipped(t *testing.T) {
	m := newTestMatch(t, func(c *config.Config) {
		setItem(c, "sword", func(ic *config.ItemConfig) { ic.Durability = 1 })
	})
	red := m.Players()[0]
	sword := arm(t, m, "sword")
	var equipped *item.Item
	m.ItemBroken.Connect(func(ItemEvent) { equipped = red.Inventory.Equipped() })

	red.Controller.PressUse()

	assert.Same(t, sword, equipped)
	assert.Nil(t, red.Inventory.Equipped())
}
