package render

import (
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/planetdefense/internal/game"
)

// SoundPlayer receives each frame's game events.
type SoundPlayer interface {
	Play(events []game.Event)
}

// Session drives a World for a local frontend: it holds the title screen
// until the first fire or click, then forwards input and ticks.
type Session struct {
	world   *game.World
	started bool
	sound   SoundPlayer
	logger  *log.Logger
}

// NewSession wraps w. sound may be nil.
func NewSession(w *game.World, sound SoundPlayer, logger *log.Logger) *Session {
	if logger == nil {
		logger = log.Default()
	}
	return &Session{world: w, sound: sound, logger: logger}
}

// World returns the world being played.
func (s *Session) World() *game.World {
	return s.world
}

// Started reports whether the title screen was left.
func (s *Session) Started() bool {
	return s.started
}

// Start begins a fresh game.
func (s *Session) Start() {
	s.world.Restart()
	s.started = true
	s.logger.Debug("game started")
}

// Fire leaves the title screen or shoots.
func (s *Session) Fire() {
	if !s.started {
		s.Start()
		return
	}
	s.world.Push(game.Input{Kind: game.InputFire})
}

// Pointer forwards a pointer position in world coordinates. press marks a
// button press edge; on the title screen it starts the game and moves are
// dropped.
func (s *Session) Pointer(x, y float64, press bool) {
	if !s.started {
		if press {
			s.Start()
		}
		return
	}
	if press {
		s.world.Push(game.PointerDown(x, y))
	} else {
		s.world.Push(game.PointerMove(x, y))
	}
}

// Restart starts over once a game is running.
func (s *Session) Restart() {
	if s.started {
		s.world.Push(game.Input{Kind: game.InputRestart})
	}
}

// ToggleDebug flips the debug overlay once a game is running.
func (s *Session) ToggleDebug() {
	if s.started {
		s.world.Push(game.Input{Kind: game.InputToggleDebug})
	}
}

// Step advances the world by delta and returns the events of the tick.
// Nothing moves on the title screen.
func (s *Session) Step(delta time.Duration) []game.Event {
	if !s.started {
		return nil
	}
	s.world.Tick(delta)

	events := s.world.Events()
	if s.sound != nil && len(events) > 0 {
		s.sound.Play(events)
	}
	for _, ev := range events {
		if ev.Type == game.EventGameOver {
			s.logger.Info("game over", "score", s.world.Score(), "won", ev.Won)
		}
	}
	return events
}
