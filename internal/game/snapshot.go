package game

import "github.com/tomz197/planetdefense/internal/object"

// Body is a positioned circle in world coordinates.
type Body struct {
	X, Y   float64
	Radius float64
}

// PlayerView describes the turret for drawing.
type PlayerView struct {
	Body
	Angle      float64 // atan2 of the raw aim deltas
	AimX, AimY float64 // Unit aim from the planet toward the pointer
}

// EnemyView describes an active enemy for drawing.
type EnemyView struct {
	Body
	Kind     object.EnemyKind
	Frame    int
	MaxFrame int
	Row      int
	Dying    bool
}

// Snapshot is a read-only copy of everything a frontend needs for one frame.
// Only active entities are listed.
type Snapshot struct {
	Width, Height float64

	Planet      Body
	Player      PlayerView
	Projectiles []Body
	Enemies     []EnemyView

	PointerX, PointerY float64

	Score    int
	Lives    int
	WinScore int
	Over     bool
	Won      bool
	Debug    bool

	Events []Event
}

// Banner returns the end-of-game message, or "" while playing.
func (s *Snapshot) Banner() string {
	if !s.Over {
		return ""
	}
	if s.Won {
		return "YOU WIN!"
	}
	return "GAME OVER"
}

// Snapshot fills dst with the current state, reusing its slices.
func (w *World) Snapshot(dst *Snapshot) {
	dst.Width = w.opts.Bounds.Width
	dst.Height = w.opts.Bounds.Height

	dst.Planet = Body{X: w.planet.Pos.X, Y: w.planet.Pos.Y, Radius: w.planet.Radius}
	dst.Player = PlayerView{
		Body:  Body{X: w.player.Pos.X, Y: w.player.Pos.Y, Radius: w.player.Radius},
		Angle: w.player.Angle,
		AimX:  w.player.Aim.Unit.X,
		AimY:  w.player.Aim.Unit.Y,
	}

	dst.Projectiles = dst.Projectiles[:0]
	for _, p := range w.projectiles.Slots() {
		if p.IsFree() {
			continue
		}
		dst.Projectiles = append(dst.Projectiles, Body{X: p.Pos.X, Y: p.Pos.Y, Radius: p.Radius})
	}

	dst.Enemies = dst.Enemies[:0]
	for _, e := range w.enemies.Slots() {
		if e.IsFree() {
			continue
		}
		dst.Enemies = append(dst.Enemies, EnemyView{
			Body:     Body{X: e.Pos.X, Y: e.Pos.Y, Radius: e.Radius},
			Kind:     e.Kind,
			Frame:    e.Frame,
			MaxFrame: e.MaxFrame,
			Row:      e.Row,
			Dying:    e.Dying(),
		})
	}

	dst.PointerX = w.pointer.X
	dst.PointerY = w.pointer.Y
	dst.Score = w.score
	dst.Lives = w.lives
	dst.WinScore = w.opts.WinScore
	dst.Over = w.over
	dst.Won = w.Won()
	dst.Debug = w.debug
	dst.Events = append(dst.Events[:0], w.events...)
}
