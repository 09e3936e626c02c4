package audio

import (
	"math"
	"math/rand"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
)

// WaveType defines oscillator wave shapes
type WaveType int

const (
	WaveSine WaveType = iota
	WaveSquare
	WaveSaw
	WaveNoise
)

// oscillator generates a raw wave, optionally sliding toward another pitch.
type oscillator struct {
	freq     float64
	slide    float64 // frequency change per sample
	phase    float64
	duration int
	position int
	wave     WaveType
	rate     beep.SampleRate
	noise    *rand.Rand
}

// NewOscillator creates an oscillator that glides from freq to toFreq
// over duration. Pass the same value twice for a steady tone.
func NewOscillator(freq, toFreq float64, duration time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	samples := rate.N(duration)
	var slide float64
	if samples > 0 {
		slide = (toFreq - freq) / float64(samples)
	}
	return &oscillator{
		freq:     freq,
		slide:    slide,
		duration: samples,
		wave:     wave,
		rate:     rate,
		noise:    rand.New(rand.NewSource(int64(freq) + 1)),
	}
}

func (o *oscillator) Stream(samples [][2]float64) (n int, ok bool) {
	for i := range samples {
		if o.position >= o.duration {
			return i, i > 0
		}

		var val float64
		switch o.wave {
		case WaveSine:
			val = math.Sin(2 * math.Pi * o.phase)
		case WaveSquare:
			if o.phase < 0.5 {
				val = 1.0
			} else {
				val = -1.0
			}
		case WaveSaw:
			val = 2.0 * (o.phase - 0.5)
		case WaveNoise:
			val = o.noise.Float64()*2 - 1
		}

		samples[i][0] = val
		samples[i][1] = val

		o.phase += o.freq / float64(o.rate)
		o.phase = o.phase - math.Floor(o.phase) // Keep in [0, 1)
		o.freq += o.slide
		o.position++
	}
	return len(samples), true
}

func (o *oscillator) Err() error { return nil }

// envelope applies attack/release shaping to a stream
type envelope struct {
	streamer       beep.Streamer
	position       int
	attackSamples  int
	releaseSamples int
	totalSamples   int
}

// NewEnvelope fades s in over attack and out over the last release of duration.
func NewEnvelope(s beep.Streamer, duration, attack, release time.Duration, rate beep.SampleRate) beep.Streamer {
	return &envelope{
		streamer:       s,
		attackSamples:  rate.N(attack),
		releaseSamples: rate.N(release),
		totalSamples:   rate.N(duration),
	}
}

func (e *envelope) Stream(samples [][2]float64) (n int, ok bool) {
	n, ok = e.streamer.Stream(samples)
	releaseStart := e.totalSamples - e.releaseSamples
	for i := 0; i < n; i++ {
		if e.position >= e.totalSamples {
			return i, i > 0
		}
		vol := 1.0
		if e.position < e.attackSamples && e.attackSamples > 0 {
			vol = float64(e.position) / float64(e.attackSamples)
		}
		if e.position >= releaseStart && e.releaseSamples > 0 {
			vol = math.Max(float64(e.totalSamples-e.position)/float64(e.releaseSamples), 0)
		}
		samples[i][0] *= vol
		samples[i][1] *= vol
		e.position++
	}
	return n, ok
}

func (e *envelope) Err() error { return e.streamer.Err() }

// math.Log2(0) is -Inf, so zero volume is made silent instead.
func newVolume(s beep.Streamer, vol float64) beep.Streamer {
	if vol <= 0 {
		return &effects.Volume{Streamer: s, Base: 2, Volume: 0, Silent: true}
	}
	return &effects.Volume{Streamer: s, Base: 2, Volume: math.Log2(vol), Silent: false}
}

func tone(from, to float64, d, attack, release time.Duration, wave WaveType, rate beep.SampleRate) beep.Streamer {
	return NewEnvelope(NewOscillator(from, to, d, wave, rate), d, attack, release, rate)
}

// Sound effect generators

// PickupSound is a rising two-note chime.
func PickupSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Seq(
		tone(660, 660, 60*time.Millisecond, 5*time.Millisecond, 20*time.Millisecond, WaveSine, rate),
		tone(990, 990, 90*time.Millisecond, 5*time.Millisecond, 50*time.Millisecond, WaveSine, rate),
	), vol)
}

// HitSound is a short noise burst for a landed blow.
func HitSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(tone(0, 0, 70*time.Millisecond, 2*time.Millisecond, 50*time.Millisecond, WaveNoise, rate), vol)
}

// BreakSound is a falling saw crunch.
func BreakSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(beep.Mix(
		tone(300, 80, 180*time.Millisecond, 2*time.Millisecond, 120*time.Millisecond, WaveSaw, rate),
		newVolume(tone(0, 0, 120*time.Millisecond, 1*time.Millisecond, 100*time.Millisecond, WaveNoise, rate), 0.4),
	), vol)
}

// DeathSound is a slow square-wave drop.
func DeathSound(rate beep.SampleRate, vol float64) beep.Streamer {
	return newVolume(tone(440, 110, 450*time.Millisecond, 10*time.Millisecond, 200*time.Millisecond, WaveSquare, rate), vol*0.6)
}

// FanfareSound plays three ascending notes at the end of a match.
func FanfareSound(rate beep.SampleRate, vol float64) beep.Streamer {
	note := func(f float64, d time.Duration) beep.Streamer {
		return tone(f, f, d, 5*time.Millisecond, d/2, WaveSine, rate)
	}
	return newVolume(beep.Seq(
		note(523.25, 120*time.Millisecond),
		note(659.25, 120*time.Millisecond),
		note(783.99, 300*time.Millisecond),
	), vol)
}
