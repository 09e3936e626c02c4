// Package arena runs one match: it owns the world, the pools, the score
// board and the players, and advances them tick by tick.
package arena

import (
	"log/slog"
	"math/rand"
	"time"

	"stick-battle-arena/internal/component"
	"stick-battle-arena/internal/config"
	"stick-battle-arena/internal/control"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/event"
	"stick-battle-arena/internal/factory"
	"stick-battle-arena/internal/gamemap"
	"stick-battle-arena/internal/health"
	"stick-battle-arena/internal/inventory"
	"stick-battle-arena/internal/item"
	"stick-battle-arena/internal/pool"
	"stick-battle-arena/internal/score"
	"stick-battle-arena/internal/system"
	"stick-battle-arena/internal/weapon"
)

// Match is a single arena match. It is driven from one goroutine.
type Match struct {
	ID     string
	World  *ecs.World
	Stores *component.Stores
	Map    *gamemap.GameMap
	Board  *score.Board

	cfg     *config.Config
	log     *slog.Logger
	rng     *rand.Rand
	players []*Player
	byID    map[ecs.EntityID]*Player

	items  *pool.Registry[item.Kind, *item.Item]
	shots  *pool.Registry[string, ecs.EntityID]
	ground map[*item.Item]ecs.EntityID

	spawnTimer time.Duration
	elapsed    time.Duration
	over       bool
	result     Result

	ItemSpawned event.Signal[ItemEvent]
	ItemPicked  event.Signal[ItemEvent]
	ItemBroken  event.Signal[ItemEvent]
	ItemExpired event.Signal[ItemEvent]
	Damaged     event.Signal[health.DamageInfo]
	Died        event.Signal[DeathEvent]
	Over        event.Signal[Result]
}

// Option configures a Match.
type Option func(*Match)

// WithLogger sets the match logger.
func WithLogger(l *slog.Logger) Option {
	return func(m *Match) { m.log = l }
}

// WithRand sets the random source used for layout and spawns.
func WithRand(r *rand.Rand) Option {
	return func(m *Match) { m.rng = r }
}

// WithID sets the match id used in logs and results.
func WithID(id string) Option {
	return func(m *Match) { m.ID = id }
}

// New builds a match for seats on a fresh arena. The item spawner fires
// on the first tick.
func New(cfg *config.Config, seats []Seat, opts ...Option) *Match {
	m := &Match{
		cfg:    cfg,
		log:    slog.Default(),
		byID:   make(map[ecs.EntityID]*Player),
		ground: make(map[*item.Item]ecs.EntityID),
		Board:  score.NewBoard(),
	}
	for _, o := range opts {
		o(m)
	}
	if m.rng == nil {
		seed := cfg.Match.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		m.rng = rand.New(rand.NewSource(seed))
	}
	if m.ID != "" {
		m.log = m.log.With("match_id", m.ID)
	}

	m.World = ecs.NewWorld()
	m.Stores = component.NewStores(m.World)
	m.Map = gamemap.BuildArena(cfg.Arena.Width, cfg.Arena.Height, cfg.Arena.Pillars, m.rng)
	m.items = pool.New(m.newItem)
	m.shots = pool.New(func(string) ecs.EntityID { return factory.NewProjectileSlot(m.World) })
	m.spawnTimer = cfg.Match.SpawnInterval

	for i, seat := range seats {
		m.addPlayer(i, seat)
	}
	m.log.Info("match started", "players", len(seats), "seed", cfg.Match.Seed)
	return m
}

func (m *Match) addPlayer(index int, seat Seat) {
	spawn := m.Map.Spawn(index)
	pos := m.freeSpawn(component.Position{X: spawn.X, Y: spawn.Y})
	id := factory.NewPlayer(m.World, m.Stores, pos, seat.Glyph, seat.Color)

	p := &Player{
		ID:         id,
		Seat:       seat,
		Spawn:      spawn,
		Facing:     item.FacingRight,
		Controller: control.NewController(),
	}
	if spawn.X > m.Map.Width/2 {
		p.Facing = item.FacingLeft
	}
	p.Inventory = inventory.New(p, inventory.WithLogger(m.log))
	p.Health = health.New(id, m.cfg.Player.MaxHealth, m.cfg.Match.KillBonus, m.Board, health.WithLogger(m.log))
	p.Health.OnDeath.Connect(m.onDeath)

	p.unbind = append(p.unbind,
		p.Inventory.Bind(p.Controller),
		p.Controller.OnMove(func(d control.Direction) { m.movePlayer(p, d) }).Disconnect,
	)
	m.Board.Join(id, seat.Name, m.cfg.Match.Lives)
	m.players = append(m.players, p)
	m.byID[id] = p
}

// newItem is the item pool constructor: a fresh instance of kind wired
// to its weapon behaviour.
func (m *Match) newItem(kind item.Kind) *item.Item {
	ic, _ := m.cfg.Item(string(kind))
	it := item.New(kind, ic.Durability, releaser{m}, item.WithLogger(m.log))
	weapon.Attach(it, ic.Behaviour(), m)
	it.OnExpire.Connect(func(e *item.Item) {
		m.ItemExpired.Emit(ItemEvent{Item: e, Kind: e.Kind()})
	})
	return it
}

// releaser clears an item's floor entity before handing it back to the pool.
type releaser struct{ m *Match }

func (r releaser) Release(kind item.Kind, it *item.Item) {
	if e, ok := r.m.ground[it]; ok {
		r.m.World.DestroyEntity(e)
		delete(r.m.ground, it)
	}
	r.m.items.Release(kind, it)
}

func (m *Match) Players() []*Player { return m.players }
func (m *Match) Player(id ecs.EntityID) *Player { return m.byID[id] }
func (m *Match) Config() *config.Config { return m.cfg }
func (m *Match) IsOver() bool { return m.over }
func (m *Match) Result() Result { return m.result }
func (m *Match) Elapsed() time.Duration { return m.elapsed }
func (m *Match) GroundItems() int { return len(m.ground) }

// Remaining is the time left before the limit, or zero without one.
func (m *Match) Remaining() time.Duration {
	if m.cfg.Match.TimeLimit <= 0 {
		return 0
	}
	return max(m.cfg.Match.TimeLimit-m.elapsed, 0)
}

// Tick advances the match by dt: ground item lifespans, projectiles,
// the item spawner and finally the time limit.
func (m *Match) Tick(dt time.Duration) {
	if m.over {
		return
	}
	m.elapsed += dt

	for _, id := range m.Stores.Pickup.IDs() {
		if p, ok := m.Stores.Pickup.Get(id); ok {
			p.Item.Update(dt)
		}
	}

	for _, hit := range system.StepProjectiles(m.Stores, m.Map, dt) {
		m.resolveImpact(hit)
	}
	if m.over {
		return
	}

	m.spawnTimer += dt
	if m.spawnTimer >= m.cfg.Match.SpawnInterval {
		m.spawnTimer = 0
		m.spawnRandomItem()
	}

	if limit := m.cfg.Match.TimeLimit; limit > 0 && m.elapsed >= limit {
		m.finishOnTime()
	}
}

func (m *Match) spawnRandomItem() {
	if len(m.ground) >= m.cfg.Match.MaxGroundItems || len(m.cfg.Items) == 0 {
		return
	}
	pos, ok := system.RandomFreeTile(m.Stores, m.Map, m.rng)
	if !ok {
		return
	}
	ic := m.cfg.Items[m.rng.Intn(len(m.cfg.Items))]
	m.SpawnItem(item.Kind(ic.Kind), pos)
}

// SpawnItem takes an item of kind from the pool and drops it at pos.
func (m *Match) SpawnItem(kind item.Kind, pos component.Position) *item.Item {
	ic, ok := m.cfg.Item(string(kind))
	if !ok {
		return nil
	}
	it := m.items.Acquire(kind)
	it.Spawn(m.cfg.Match.ItemLifespan)
	// Break subscribers are dropped on every return to the pool. This one
	// is connected before any inventory's, so ItemBroken listeners still
	// find the item in its slot.
	it.OnBreak(func(b *item.Item) {
		ev := ItemEvent{Item: b, Kind: b.Kind()}
		if o := b.Owner(); o != nil {
			ev.Player = o.PlayerID()
		}
		m.ItemBroken.Emit(ev)
	})
	m.ground[it] = factory.NewGroundItem(m.World, m.Stores, it, pos, ic.Glyph)
	m.log.Debug("item spawned", "kind", kind, "x", pos.X, "y", pos.Y)
	m.ItemSpawned.Emit(ItemEvent{Item: it, Kind: kind})
	return it
}

func (m *Match) movePlayer(p *Player, d control.Direction) {
	if m.over || p.Eliminated {
		return
	}
	res, _ := system.TryMove(m.Stores, m.Map, p.ID, d.X, d.Y)
	if res != system.MoveOK {
		return
	}
	pos, _ := m.Stores.Position.Get(p.ID)
	if e := system.PickupAt(m.Stores, pos); e != ecs.NilEntity {
		m.pickUp(p, e)
	}
}

func (m *Match) pickUp(p *Player, e ecs.EntityID) {
	pk, ok := m.Stores.Pickup.Get(e)
	if !ok {
		return
	}
	it := pk.Item
	if !p.Inventory.PickUpItem(it) {
		return
	}
	m.World.DestroyEntity(e)
	delete(m.ground, it)
	m.ItemPicked.Emit(ItemEvent{Item: it, Kind: it.Kind(), Player: p.ID})
}

// Strike implements weapon.World for melee swings.
func (m *Match) Strike(owner item.Owner, reach, damage int, used *item.Item) {
	p := m.byID[owner.PlayerID()]
	if p == nil || p.Eliminated {
		return
	}
	pos, ok := m.Stores.Position.Get(p.ID)
	if !ok {
		return
	}
	for _, target := range system.StrikeTargets(m.Stores, m.Map, p.ID, pos, int(p.Facing), reach) {
		m.damage(p.ID, target, damage, used)
	}
}

// Fire implements weapon.World for ranged weapons.
func (m *Match) Fire(owner item.Owner, shot weapon.Shot) {
	p := m.byID[owner.PlayerID()]
	if p == nil || p.Eliminated {
		return
	}
	pos, ok := m.Stores.Position.Get(p.ID)
	if !ok {
		return
	}
	id := m.shots.Acquire(shot.Projectile)
	factory.LaunchProjectile(m.Stores, id, pos, component.Projectile{
		Kind:   shot.Projectile,
		Owner:  p.ID,
		Source: shot.Used,
		Damage: shot.Damage,
		DX:     int(p.Facing),
		Speed:  shot.Speed,
		Range:  shot.Range,
	}, shot.Glyph)
}

// Projectiles reports how many projectiles are in flight.
func (m *Match) Projectiles() int { return m.Stores.Projectile.Len() }

func (m *Match) resolveImpact(hit system.Impact) {
	proj, ok := m.Stores.Projectile.Get(hit.Projectile)
	if !ok {
		return
	}
	factory.StowProjectile(m.Stores, hit.Projectile)
	m.shots.Release(proj.Kind, hit.Projectile)
	if hit.Kind == system.ImpactTarget {
		m.damage(proj.Owner, hit.Target, proj.Damage, proj.Source)
	}
}

func (m *Match) damage(dealer, target ecs.EntityID, amount int, used *item.Item) {
	victim := m.byID[target]
	if victim == nil || victim.Eliminated || m.over {
		return
	}
	// Shots still in flight when their shooter is eliminated land harmlessly.
	if shooter := m.byID[dealer]; shooter != nil && shooter.Eliminated {
		return
	}
	info := health.DamageInfo{Dealer: dealer, Target: target, Damage: amount, ItemUsed: used}
	m.Damaged.Emit(info)
	victim.Health.DeductHealth(dealer, info)
}

func (m *Match) onDeath(id ecs.EntityID) {
	p := m.byID[id]
	if p == nil {
		return
	}
	ev := DeathEvent{
		Victim:     id,
		Killer:     p.Health.LastDealer(),
		LivesLeft:  m.Board.RemainingLives(id),
		Eliminated: m.Board.Eliminated(id),
	}
	m.log.Info("player died", "player", p.Seat.Name, "killer", ev.Killer, "lives_left", ev.LivesLeft)
	m.Died.Emit(ev)
	if ev.Eliminated {
		m.eliminate(p)
		return
	}
	m.respawn(p)
}

func (m *Match) respawn(p *Player) {
	pos := m.freeSpawn(component.Position{X: p.Spawn.X, Y: p.Spawn.Y})
	system.Place(m.Stores, p.ID, pos)
	p.Health.Restore()
}

// freeSpawn returns want unless a blocking entity or a ground item is
// there, in which case any free tile is used.
func (m *Match) freeSpawn(want component.Position) component.Position {
	if component.At(m.Stores, m.Stores.Blocking, want) == ecs.NilEntity && system.PickupAt(m.Stores, want) == ecs.NilEntity {
		return want
	}
	if pos, ok := system.RandomFreeTile(m.Stores, m.Map, m.rng); ok {
		return pos
	}
	return want
}

func (m *Match) eliminate(p *Player) {
	p.Eliminated = true
	p.release()
	p.Inventory.Discard()
	m.Stores.Position.Delete(p.ID)
	m.Stores.Blocking.Delete(p.ID)
	m.log.Info("player eliminated", "player", p.Seat.Name)

	var alive []*Player
	for _, other := range m.players {
		if !other.Eliminated {
			alive = append(alive, other)
		}
	}
	if len(alive) > 1 {
		return
	}
	winner := ecs.NilEntity
	if len(alive) == 1 {
		winner = alive[0].ID
	}
	m.finish(winner, "last standing")
}

func (m *Match) finishOnTime() {
	standings := m.Board.Standings()
	winner := ecs.NilEntity
	switch {
	case len(standings) == 1:
		winner = standings[0].ID
	case len(standings) > 1:
		a, b := standings[0], standings[1]
		if a.Score != b.Score || a.Lives != b.Lives {
			winner = a.ID
		}
	}
	m.finish(winner, "time limit")
}

func (m *Match) finish(winner ecs.EntityID, reason string) {
	if m.over {
		return
	}
	m.over = true
	m.result = Result{
		MatchID:   m.ID,
		Winner:    winner,
		Standings: m.Board.Standings(),
		Duration:  m.elapsed,
		Reason:    reason,
	}
	m.log.Info("match over", "winner", winner, "reason", reason, "duration", m.elapsed)
	m.Over.Emit(m.result)
}

// ItemConfig returns the configuration of an item kind.
func (m *Match) ItemConfig(kind item.Kind) (config.ItemConfig, bool) {
	return m.cfg.Item(string(kind))
}

// Close returns every item and projectile still in play to the pools
// and unbinds all players.
func (m *Match) Close() {
	for _, p := range m.players {
		p.release()
		if !p.Eliminated {
			p.Inventory.Discard()
		}
	}
	for _, id := range m.Stores.Pickup.IDs() {
		if pk, ok := m.Stores.Pickup.Get(id); ok {
			pk.Item.ReturnToPool()
		}
	}
	for _, id := range m.Stores.Projectile.IDs() {
		proj, _ := m.Stores.Projectile.Get(id)
		factory.StowProjectile(m.Stores, id)
		m.shots.Release(proj.Kind, id)
	}
}
