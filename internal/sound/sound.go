// Package sound plays short synthesized effects for game events.
package sound

import (
	"math"
	"math/rand"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/generators"
	"github.com/gopxl/beep/speaker"

	"github.com/tomz197/planetdefense/internal/game"
)

const sampleRate = beep.SampleRate(44100)

// Player mixes event effects into the speaker. The zero value is unusable;
// call New. A Player whose Init failed stays silent.
type Player struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

// New creates a silent player. Call Init to open the audio device.
func New() *Player {
	return &Player{mixer: &beep.Mixer{}}
}

// Init opens the audio device. Failure is not fatal; the game runs silently.
func (p *Player) Init() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.initialized {
		return nil
	}
	if err := speaker.Init(sampleRate, sampleRate.N(time.Second/10)); err != nil {
		return err
	}
	speaker.Play(p.mixer)
	p.initialized = true
	return nil
}

// Close stops every playing effect.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	speaker.Lock()
	p.mixer.Clear()
	speaker.Unlock()
	p.initialized = false
}

// Play queues the effects for a frame's events.
func (p *Player) Play(events []game.Event) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.initialized {
		return
	}
	for _, ev := range events {
		s := effect(ev)
		if s == nil {
			continue
		}
		speaker.Lock()
		p.mixer.Add(s)
		speaker.Unlock()
	}
}

// effect returns the finite streamer for an event, or nil for silent events.
func effect(ev game.Event) beep.Streamer {
	switch ev.Type {
	case game.EventShot:
		sine, err := generators.SineTone(sampleRate, 880)
		if err != nil {
			return nil
		}
		return envelope(beep.Take(sampleRate.N(50*time.Millisecond), sine), 0.25, 50*time.Millisecond)
	case game.EventEnemyDestroyed:
		return NewNoiseBurst(sampleRate, 250*time.Millisecond)
	case game.EventPlanetHit, game.EventPlayerHit:
		return NewBuzz(sampleRate, 110, 200*time.Millisecond)
	case game.EventGameOver:
		freq := 220.0
		if ev.Won {
			freq = 660
		}
		sine, err := generators.SineTone(sampleRate, freq)
		if err != nil {
			return nil
		}
		return envelope(beep.Take(sampleRate.N(600*time.Millisecond), sine), 0.3, 600*time.Millisecond)
	default:
		return nil
	}
}

// envelope scales s by a linear fade from gain to 0 over d.
func envelope(s beep.Streamer, gain float64, d time.Duration) beep.Streamer {
	total := float64(sampleRate.N(d))
	pos := 0
	return beep.StreamerFunc(func(samples [][2]float64) (int, bool) {
		n, ok := s.Stream(samples)
		for i := 0; i < n; i++ {
			g := gain * math.Max(0, 1-float64(pos)/total)
			samples[i][0] *= g
			samples[i][1] *= g
			pos++
		}
		return n, ok
	})
}

// NoiseBurst is decaying white noise, used for explosions.
type NoiseBurst struct {
	rng   *rand.Rand
	pos   int
	total int
}

// NewNoiseBurst creates a noise burst lasting d.
func NewNoiseBurst(sr beep.SampleRate, d time.Duration) *NoiseBurst {
	return &NoiseBurst{
		rng:   rand.New(rand.NewSource(1)),
		total: sr.N(d),
	}
}

func (g *NoiseBurst) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		decay := 1 - float64(g.pos)/float64(g.total)
		s := 0.3 * decay * decay * (g.rng.Float64()*2 - 1)
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *NoiseBurst) Err() error {
	return nil
}

// Buzz is a low harmonic-rich tone, used for impacts.
type Buzz struct {
	sr    beep.SampleRate
	freq  float64
	pos   int
	total int
}

// NewBuzz creates a buzz at freq lasting d.
func NewBuzz(sr beep.SampleRate, freq float64, d time.Duration) *Buzz {
	return &Buzz{sr: sr, freq: freq, total: sr.N(d)}
}

func (g *Buzz) Stream(samples [][2]float64) (n int, ok bool) {
	if g.pos >= g.total {
		return 0, false
	}
	for i := range samples {
		if g.pos >= g.total {
			return i, true
		}
		t := float64(g.pos) / float64(g.sr)
		s := 0.3*math.Sin(2*math.Pi*g.freq*t) +
			0.15*math.Sin(2*math.Pi*g.freq*2*t) +
			0.075*math.Sin(2*math.Pi*g.freq*3*t)
		fadeIn := math.Min(t/0.02, 1)
		fadeOut := 1 - float64(g.pos)/float64(g.total)
		s *= 0.5 * fadeIn * fadeOut
		samples[i][0] = s
		samples[i][1] = s
		g.pos++
	}
	return len(samples), true
}

func (g *Buzz) Err() error {
	return nil
}
