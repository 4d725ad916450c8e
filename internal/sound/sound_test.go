package sound

import (
	"testing"
	"time"

	"github.com/gopxl/beep"

	"github.com/tomz197/planetdefense/internal/game"
)

// drain streams s to the end and returns the number of samples produced.
func drain(t *testing.T, s beep.Streamer) int {
	t.Helper()
	buf := make([][2]float64, 512)
	total := 0
	for i := 0; i < 10000; i++ {
		n, ok := s.Stream(buf)
		for j := 0; j < n; j++ {
			if buf[j][0] < -1 || buf[j][0] > 1 || buf[j][1] < -1 || buf[j][1] > 1 {
				t.Fatalf("sample %d out of range: %v", total+j, buf[j])
			}
		}
		total += n
		if !ok {
			return total
		}
	}
	t.Fatal("streamer never ended")
	return 0
}

func TestEffectsAreFinite(t *testing.T) {
	tests := []struct {
		name string
		ev   game.Event
		max  time.Duration
	}{
		{"shot", game.Event{Type: game.EventShot}, 50 * time.Millisecond},
		{"destroyed", game.Event{Type: game.EventEnemyDestroyed, Points: 1}, 250 * time.Millisecond},
		{"planet hit", game.Event{Type: game.EventPlanetHit}, 200 * time.Millisecond},
		{"player hit", game.Event{Type: game.EventPlayerHit}, 200 * time.Millisecond},
		{"won", game.Event{Type: game.EventGameOver, Won: true}, 600 * time.Millisecond},
		{"lost", game.Event{Type: game.EventGameOver}, 600 * time.Millisecond},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := effect(tt.ev)
			if s == nil {
				t.Fatal("no effect")
			}
			n := drain(t, s)
			if n == 0 || n > sampleRate.N(tt.max) {
				t.Errorf("effect lasted %d samples, want 1..%d", n, sampleRate.N(tt.max))
			}
		})
	}
}

func TestSilentEvents(t *testing.T) {
	if effect(game.Event{Type: game.EventEnemySpawned}) != nil {
		t.Error("spawn should be silent")
	}
}

func TestUninitializedPlayerIsSilent(t *testing.T) {
	p := New()
	p.Play([]game.Event{{Type: game.EventShot}})
	p.Close()
}
