// Package audio plays short synthesized cues for match events.
package audio

import (
	"log/slog"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"stick-battle-arena/internal/arena"
	"stick-battle-arena/internal/config"
	"stick-battle-arena/internal/health"
)

const sampleRate = beep.SampleRate(44100)

// Cue names one of the built-in sounds.
type Cue int

const (
	CuePickup Cue = iota
	CueHit
	CueBreak
	CueDeath
	CueFanfare
)

func (c Cue) String() string {
	switch c {
	case CuePickup:
		return "pickup"
	case CueHit:
		return "hit"
	case CueBreak:
		return "break"
	case CueDeath:
		return "death"
	case CueFanfare:
		return "fanfare"
	}
	return "unknown"
}

// Cues maps match events to sounds and hands them to an output.
// A nil output makes every cue a no-op.
type Cues struct {
	mu     sync.Mutex
	out    func(beep.Streamer)
	rate   beep.SampleRate
	volume float64
	played map[Cue]int
	close  func()
}

// NewCues builds cues that pass each generated stream to out.
func NewCues(out func(beep.Streamer), volume float64) *Cues {
	return &Cues{
		out:    out,
		rate:   sampleRate,
		volume: volume,
		played: make(map[Cue]int),
	}
}

// Open initializes the speaker and returns cues mixed onto it. When audio
// is disabled or no device is available the returned cues are silent.
func Open(cfg config.AudioConfig, log *slog.Logger) *Cues {
	if !cfg.Enabled {
		return NewCues(nil, 0)
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Millisecond*100)); err != nil {
		log.Warn("audio unavailable, continuing without sound", "error", err)
		return NewCues(nil, 0)
	}
	mixer := &beep.Mixer{}
	speaker.Play(mixer)

	c := NewCues(func(s beep.Streamer) {
		speaker.Lock()
		mixer.Add(s)
		speaker.Unlock()
	}, cfg.Volume)
	c.close = func() {
		speaker.Clear()
		speaker.Close()
	}
	log.Debug("audio ready", "rate", int(sampleRate), "volume", cfg.Volume)
	return c
}

// Enabled reports whether cues reach an output.
func (c *Cues) Enabled() bool { return c.out != nil }

// Play generates and outputs one cue.
func (c *Cues) Play(cue Cue) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.out == nil {
		return
	}
	var s beep.Streamer
	switch cue {
	case CuePickup:
		s = PickupSound(c.rate, c.volume)
	case CueHit:
		s = HitSound(c.rate, c.volume)
	case CueBreak:
		s = BreakSound(c.rate, c.volume)
	case CueDeath:
		s = DeathSound(c.rate, c.volume)
	case CueFanfare:
		s = FanfareSound(c.rate, c.volume)
	default:
		return
	}
	c.played[cue]++
	c.out(s)
}

// Played reports how many times cue has been output.
func (c *Cues) Played(cue Cue) int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.played[cue]
}

// Observe plays cues for m's events.
func (c *Cues) Observe(m *arena.Match) {
	m.ItemPicked.Connect(func(arena.ItemEvent) { c.Play(CuePickup) })
	m.ItemBroken.Connect(func(arena.ItemEvent) { c.Play(CueBreak) })
	m.Damaged.Connect(func(d health.DamageInfo) {
		if d.Damage > 0 {
			c.Play(CueHit)
		}
	})
	m.Died.Connect(func(arena.DeathEvent) { c.Play(CueDeath) })
	m.Over.Connect(func(arena.Result) { c.Play(CueFanfare) })
}

// Close stops playback and releases the device.
func (c *Cues) Close() {
	if c.close != nil {
		c.close()
		c.close = nil
	}
}
