// Package game runs the hot-seat match in a terminal.
package game

import (
	"context"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/gdamore/tcell/v2"

	"stick-battle-arena/assets"
	"stick-battle-arena/internal/arena"
	"stick-battle-arena/internal/config"
	"stick-battle-arena/internal/control"
	"stick-battle-arena/internal/ecs"
	"stick-battle-arena/internal/health"
	"stick-battle-arena/internal/logger"
	"stick-battle-arena/internal/render"
)

// maxMessages bounds the message log kept for the HUD.
const maxMessages = 50

// Observer is called with every new match before it starts.
type Observer func(*arena.Match)

// Game is the top-level orchestrator: it owns the screen, the current
// match and the per-seat use latches.
type Game struct {
	screen    tcell.Screen
	ownScreen bool
	cfg       *config.Config
	log       *slog.Logger
	rng       *rand.Rand
	seats     []arena.Seat
	observers []Observer

	match    *arena.Match
	renderer *render.Renderer
	latches  []*control.Latch
	messages []string
	played   int
}

// Option configures a Game.
type Option func(*Game)

// WithScreen uses an already initialized screen instead of the terminal.
func WithScreen(s tcell.Screen) Option {
	return func(g *Game) { g.screen = s }
}

// WithObserver registers fn for every match the game starts.
func WithObserver(fn Observer) Option {
	return func(g *Game) { g.observers = append(g.observers, fn) }
}

// WithRand sets the random source for arena layouts and item spawns.
func WithRand(r *rand.Rand) Option {
	return func(g *Game) { g.rng = r }
}

// New creates a Game. Without WithScreen it opens and initializes the terminal.
func New(cfg *config.Config, opts ...Option) (*Game, error) {
	g := &Game{cfg: cfg}
	for _, opt := range opts {
		opt(g)
	}
	if g.rng == nil {
		seed := cfg.Match.Seed
		if seed == 0 {
			seed = time.Now().UnixNano()
		}
		g.rng = rand.New(rand.NewSource(seed))
	}
	if g.screen == nil {
		screen, err := tcell.NewScreen()
		if err != nil {
			return nil, fmt.Errorf("create screen: %w", err)
		}
		if err := screen.Init(); err != nil {
			return nil, fmt.Errorf("init screen: %w", err)
		}
		g.screen = screen
		g.ownScreen = true
	}
	for _, def := range assets.Players {
		g.seats = append(g.seats, arena.Seat{Name: def.Name, Glyph: def.Glyph, Color: tcell.GetColor(def.Color)})
	}
	return g, nil
}

// Match returns the match currently being played.
func (g *Game) Match() *arena.Match { return g.match }

// Messages returns the message log, oldest first.
func (g *Game) Messages() []string { return g.messages }

// startMatch tears down the previous match, if any, and starts a new one.
func (g *Game) startMatch(ctx context.Context) {
	if g.match != nil {
		g.match.Close()
	}
	id := logger.NewMatchID()
	g.log = logger.FromContext(logger.WithMatchID(ctx, id))

	m := arena.New(g.cfg, g.seats, arena.WithID(id), arena.WithRand(g.rng))
	g.match = m
	g.played++
	g.messages = nil
	g.latches = g.latches[:0]
	for _, p := range m.Players() {
		g.latches = append(g.latches, control.NewLatch(p.Controller, g.cfg.Input.ReleaseAfter))
	}
	g.watch(m)
	for _, fn := range g.observers {
		fn(m)
	}
	g.renderer = render.NewRenderer(g.screen, m.Map.Width, m.Map.Height)

	if g.played > 1 {
		g.log.Info("rematch", "number", g.played)
	}
	g.addMessage("Fight! P1: wasd move, f use, g switch. P2: arrows, . use, / switch.")
}

// watch turns match events into HUD messages and the match log.
func (g *Game) watch(m *arena.Match) {
	m.ItemSpawned.Connect(func(ev arena.ItemEvent) {
		g.addMessage(fmt.Sprintf("A %s appears.", g.itemName(ev)))
	})
	m.ItemPicked.Connect(func(ev arena.ItemEvent) {
		g.addMessage(fmt.Sprintf("%s picks up the %s.", g.playerName(ev.Player), g.itemName(ev)))
	})
	m.ItemBroken.Connect(func(ev arena.ItemEvent) {
		g.addMessage(fmt.Sprintf("%s's %s breaks!", g.playerName(ev.Player), g.itemName(ev)))
	})
	m.ItemExpired.Connect(func(ev arena.ItemEvent) {
		g.addMessage(fmt.Sprintf("The %s crumbles away.", g.itemName(ev)))
	})
	m.Damaged.Connect(func(d health.DamageInfo) {
		if d.Damage <= 0 {
			return
		}
		g.addMessage(fmt.Sprintf("%s hits %s for %d.", g.playerName(d.Dealer), g.playerName(d.Target), d.Damage))
	})
	m.Died.Connect(func(ev arena.DeathEvent) {
		switch {
		case ev.Eliminated:
			g.addMessage(fmt.Sprintf("%s is out!", g.playerName(ev.Victim)))
		case ev.Killer != ecs.NilEntity && ev.Killer != ev.Victim:
			g.addMessage(fmt.Sprintf("%s was slain by %s. %d lives left.", g.playerName(ev.Victim), g.playerName(ev.Killer), ev.LivesLeft))
		default:
			g.addMessage(fmt.Sprintf("%s fell. %d lives left.", g.playerName(ev.Victim), ev.LivesLeft))
		}
	})
	m.Over.Connect(func(res arena.Result) {
		if res.Winner == ecs.NilEntity {
			g.addMessage("Draw! Press r for a rematch.")
		} else {
			g.addMessage(fmt.Sprintf("%s wins! Press r for a rematch.", g.playerName(res.Winner)))
		}
		saveMatchLog(MatchRecord{Result: res, FinishedAt: time.Now().UTC(), Seed: g.cfg.Match.Seed})
	})
}

func (g *Game) playerName(id ecs.EntityID) string {
	if p := g.match.Player(id); p != nil {
		return p.Seat.Name
	}
	return "Someone"
}

func (g *Game) itemName(ev arena.ItemEvent) string {
	if ic, ok := g.match.ItemConfig(ev.Kind); ok {
		return ic.DisplayName()
	}
	return string(ev.Kind)
}

func (g *Game) addMessage(msg string) {
	g.messages = append(g.messages, msg)
	if len(g.messages) > maxMessages {
		g.messages = g.messages[len(g.messages)-maxMessages:]
	}
}

// Run is the main game loop. It returns when the players quit or ctx is
// cancelled. A ticker drives the match, the use latches and rendering;
// a second goroutine only forwards terminal events.
func (g *Game) Run(ctx context.Context) error {
	if g.ownScreen {
		defer g.screen.Fini()
	}
	done := make(chan struct{})
	defer close(done)

	eventCh := make(chan tcell.Event, 32)
	go func() {
		for {
			ev := g.screen.PollEvent()
			if ev == nil {
				close(eventCh)
				return
			}
			select {
			case eventCh <- ev:
			case <-done:
				return
			}
		}
	}()

	g.startMatch(ctx)
	defer func() { g.match.Close() }()

	ticker := time.NewTicker(g.cfg.Match.Tick)
	defer ticker.Stop()
	last := time.Now()

	for {
		g.renderer.DrawFrame(g.match, g.messages)

		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-eventCh:
			if !ok {
				return nil // screen closed
			}
			switch ev := ev.(type) {
			case *tcell.EventResize:
				g.screen.Sync()
				g.renderer.Resize(g.match.Map.Width, g.match.Map.Height)
			case *tcell.EventKey:
				if g.handleKey(ctx, ev) {
					return nil
				}
			}
		case now := <-ticker.C:
			g.step(now.Sub(last))
			last = now
		}
	}
}

// handleKey applies one key press and reports whether the game should quit.
func (g *Game) handleKey(ctx context.Context, ev *tcell.EventKey) bool {
	b := keyToBinding(ev)
	switch b.Action {
	case ActionQuit:
		return true
	case ActionRematch:
		if g.match.IsOver() {
			g.startMatch(ctx)
		}
		return false
	case ActionNone:
		return false
	}
	if g.match.IsOver() || b.Player < 0 || b.Player >= len(g.match.Players()) {
		return false
	}
	p := g.match.Players()[b.Player]
	if p.Eliminated {
		return false
	}
	if dir, ok := actionToDirection(b.Action); ok {
		p.Controller.Move(dir)
		return false
	}
	switch b.Action {
	case ActionUse:
		g.latches[b.Player].Press()
	case ActionSwitch:
		p.Controller.Switch()
	}
	return false
}

// step advances the match and the use latches by dt.
func (g *Game) step(dt time.Duration) {
	if g.match.IsOver() {
		return
	}
	for _, l := range g.latches {
		l.Advance(dt)
	}
	g.match.Tick(dt)
}
