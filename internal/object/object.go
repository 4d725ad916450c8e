// Package object implements the pooled game entities and the turret.
package object

import (
	"math/rand"

	"github.com/tomz197/planetdefense/internal/physics"
)

// Vec is an alias for the physics vector type.
type Vec = physics.Vec

// Bounds are the logical canvas dimensions.
type Bounds struct {
	Width  float64
	Height float64
}

// Center returns the middle of the canvas.
func (b Bounds) Center() Vec {
	return Vec{X: b.Width / 2, Y: b.Height / 2}
}

// Contains reports whether p is inside the canvas, edges included.
func (b Bounds) Contains(p Vec) bool {
	return physics.InBounds(p, b.Width, b.Height)
}

// Impact identifies what an enemy crashed into.
type Impact int

const (
	ImpactPlanet Impact = iota
	ImpactPlayer
)

// String returns a human readable impact name.
func (i Impact) String() string {
	switch i {
	case ImpactPlanet:
		return "planet"
	case ImpactPlayer:
		return "player"
	default:
		return "unknown"
	}
}

// Scorer receives the score and life changes produced by entity updates.
type Scorer interface {
	// LoseLife removes one life after an enemy impact.
	LoseLife(cause Impact)
	// AddScore awards points for a destroyed enemy.
	AddScore(points int)
}

// UpdateContext provides all the information an entity needs during update.
// It is passed explicitly on every call; entities keep no reference to the world.
type UpdateContext struct {
	Bounds      Bounds
	Planet      *Planet
	Player      *Player
	Projectiles *Pool[*Projectile]
	Scorer      Scorer
}

// SpawnContext provides what an enemy needs to pick its spawn point and heading.
type SpawnContext struct {
	Bounds Bounds
	Planet *Planet
	Rand   *rand.Rand
}

// Pooled is implemented by entities that live in a fixed-capacity pool.
type Pooled interface {
	// IsFree reports whether the slot is inert and available for reuse.
	IsFree() bool
	// Reset returns the entity to the free state.
	Reset()
}
