package audio

import (
	"math/rand"
	"testing"
	"time"

	"github.com/gopxl/beep"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stick-battle-arena/internal/arena"
	"stick-battle-arena/internal/config"
	"stick-battle-arena/internal/health"
	"stick-battle-arena/internal/item"
)

func drain(s beep.Streamer) (n int, peak float64) {
	buf := make([][2]float64, 512)
	for {
		k, ok := s.Stream(buf)
		for _, smp := range buf[:k] {
			if v := smp[0]; v > peak {
				peak = v
			} else if -v > peak {
				peak = -v
			}
		}
		n += k
		if !ok {
			return n, peak
		}
	}
}

func TestOscillatorLength(t *testing.T) {
	for _, w := range []WaveType{WaveSine, WaveSquare, WaveSaw, WaveNoise} {
		n, peak := drain(NewOscillator(440, 440, 100*time.Millisecond, w, sampleRate))
		assert.Equal(t, sampleRate.N(100*time.Millisecond), n, "wave %d", w)
		assert.LessOrEqual(t, peak, 1.0)
		assert.Greater(t, peak, 0.0)
	}
}

func TestEnvelopeFadesEdges(t *testing.T) {
	d := 50 * time.Millisecond
	s := NewEnvelope(NewOscillator(0, 0, d, WaveSquare, sampleRate), d, 10*time.Millisecond, 10*time.Millisecond, sampleRate)
	buf := make([][2]float64, sampleRate.N(d))
	n, _ := s.Stream(buf)
	require.Equal(t, len(buf), n)

	assert.Equal(t, 0.0, buf[0][0], "attack starts silent")
	assert.Equal(t, 1.0, buf[n/2][0], "sustain is full scale")
	assert.Less(t, buf[n-1][0], 0.01, "release ends near silence")
}

func TestZeroVolumeIsSilent(t *testing.T) {
	_, peak := drain(newVolume(NewOscillator(440, 440, 20*time.Millisecond, WaveSquare, sampleRate), 0))
	assert.Equal(t, 0.0, peak)
}

func TestSoundsAreFinite(t *testing.T) {
	sounds := map[string]func(beep.SampleRate, float64) beep.Streamer{
		"pickup":  PickupSound,
		"hit":     HitSound,
		"break":   BreakSound,
		"death":   DeathSound,
		"fanfare": FanfareSound,
	}
	for name, gen := range sounds {
		t.Run(name, func(t *testing.T) {
			n, peak := drain(gen(sampleRate, 0.5))
			assert.Greater(t, n, 0)
			assert.Less(t, n, sampleRate.N(time.Second))
			assert.Greater(t, peak, 0.0)
		})
	}
	n, _ := drain(PickupSound(sampleRate, 1))
	assert.Equal(t, sampleRate.N(60*time.Millisecond)+sampleRate.N(90*time.Millisecond), n)
}

func TestSilentCuesDoNothing(t *testing.T) {
	c := NewCues(nil, 1)
	assert.False(t, c.Enabled())
	c.Play(CuePickup)
	assert.Equal(t, 0, c.Played(CuePickup))
	c.Close()
}

func TestDisabledOpenIsSilent(t *testing.T) {
	c := Open(config.AudioConfig{Enabled: false, Volume: 1}, nil)
	assert.False(t, c.Enabled())
}

func TestObservePlaysCuesForMatchEvents(t *testing.T) {
	var out []beep.Streamer
	c := NewCues(func(s beep.Streamer) { out = append(out, s) }, 0.5)

	cfg, err := config.Parse()
	require.NoError(t, err)
	m := arena.New(cfg, []arena.Seat{{Name: "Red", Glyph: "R"}, {Name: "Blue", Glyph: "B"}},
		arena.WithRand(rand.New(rand.NewSource(3))))
	c.Observe(m)

	m.ItemPicked.Emit(arena.ItemEvent{Kind: item.Kind("sword")})
	m.ItemBroken.Emit(arena.ItemEvent{Kind: item.Kind("sword")})
	m.Damaged.Emit(health.DamageInfo{Damage: 0})
	m.Damaged.Emit(health.DamageInfo{Damage: 10})
	m.Died.Emit(arena.DeathEvent{})
	m.Over.Emit(arena.Result{})

	assert.Len(t, out, 5)
	for _, cue := range []Cue{CuePickup, CueBreak, CueHit, CueDeath, CueFanfare} {
		assert.Equal(t, 1, c.Played(cue), cue.String())
	}
}
