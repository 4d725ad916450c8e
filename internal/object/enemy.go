package object

import (
	"fmt"

	"github.com/tomz197/planetdefense/internal/physics"
)

// EnemyKind selects the behaviour table an enemy pool is built with.
type EnemyKind int

const (
	// EnemyBasic is a plain homing circle: no hit points, no impacts, no score.
	EnemyBasic EnemyKind = iota
	// EnemyAsteroid takes one hit, plays an explosion animation and scores.
	EnemyAsteroid
)

// String returns the configuration name of the kind.
func (k EnemyKind) String() string {
	switch k {
	case EnemyBasic:
		return "basic"
	case EnemyAsteroid:
		return "asteroid"
	default:
		return fmt.Sprintf("EnemyKind(%d)", int(k))
	}
}

// ParseEnemyKind maps a configuration name to a kind.
func ParseEnemyKind(name string) (EnemyKind, error) {
	switch name {
	case "basic":
		return EnemyBasic, nil
	case "asteroid":
		return EnemyAsteroid, nil
	default:
		return 0, fmt.Errorf("unknown enemy kind %q", name)
	}
}

// KindConfig holds the per-kind parameters. Update logic is shared by all
// kinds and only branches on these flags.
type KindConfig struct {
	Radius         float64
	MaxLives       int  // Hit points; also the score awarded on destruction
	MaxFrame       int  // Last frame of the death animation
	Rows           int  // Cosmetic sprite-sheet rows picked at random on start
	DeathAnimation bool // Play MaxFrame ticks of animation before freeing
	Collides       bool // Crashing into the planet or turret costs a life
	Shootable      bool // Projectiles damage the enemy
}

var enemyKinds = map[EnemyKind]KindConfig{
	EnemyBasic: {
		Radius:   40,
		MaxLives: 0,
		Rows:     1,
	},
	EnemyAsteroid: {
		Radius:         40,
		MaxLives:       1,
		MaxFrame:       7,
		Rows:           4,
		DeathAnimation: true,
		Collides:       true,
		Shootable:      true,
	},
}

// Kind returns the parameters for an enemy kind.
func Kind(k EnemyKind) KindConfig {
	return enemyKinds[k]
}

// basicExpiryMargin is how many radii past the canvas edge a basic enemy may
// drift before it is freed. Spawning happens one radius out, so this must be larger.
const basicExpiryMargin = 2.0

// Enemy is a pooled attacker heading straight for the planet.
type Enemy struct {
	Kind     EnemyKind
	Pos      Vec     // Position (center)
	Vel      Vec     // Velocity per tick
	Radius   float64 // Collision/draw radius
	Speed    float64 // Multiplier applied to the homing direction
	Lives    int     // Remaining hit points
	MaxLives int
	Frame    int // Death animation frame; 0 while alive
	MaxFrame int
	Row      int // Cosmetic sprite row
	cfg      KindConfig
	free     bool
}

// NewEnemy creates a free enemy slot of the given kind.
func NewEnemy(kind EnemyKind, speed float64) *Enemy {
	cfg := Kind(kind)
	return &Enemy{
		Kind:     kind,
		Radius:   cfg.Radius,
		Speed:    speed,
		MaxLives: cfg.MaxLives,
		MaxFrame: cfg.MaxFrame,
		cfg:      cfg,
		free:     true,
	}
}

// Start activates the enemy just outside a random canvas edge, heading for
// the planet center. Every mutable field is reinitialized.
func (e *Enemy) Start(ctx SpawnContext) {
	w, h := ctx.Bounds.Width, ctx.Bounds.Height
	r := ctx.Rand

	// Pick an axis, then a side of it.
	if r.Float64() < 0.5 {
		e.Pos.X = r.Float64() * w
		if r.Float64() < 0.5 {
			e.Pos.Y = -e.Radius
		} else {
			e.Pos.Y = h + e.Radius
		}
	} else {
		e.Pos.Y = r.Float64() * h
		if r.Float64() < 0.5 {
			e.Pos.X = -e.Radius
		} else {
			e.Pos.X = w + e.Radius
		}
	}

	aim := physics.UnitAim(e.Pos, ctx.Planet.Pos)
	e.Vel = Vec{X: aim.Unit.X * e.Speed, Y: aim.Unit.Y * e.Speed}
	e.Lives = e.MaxLives
	e.Frame = 0
	e.Row = 0
	if e.cfg.Rows > 1 {
		e.Row = r.Intn(e.cfg.Rows)
	}
	e.free = false
}

// Reset returns the enemy to its pool.
func (e *Enemy) Reset() {
	e.free = true
}

// IsFree reports whether the enemy is available for reuse.
func (e *Enemy) IsFree() bool {
	return e.free
}

// Dying reports whether the enemy has no hit points left and is animating out.
func (e *Enemy) Dying() bool {
	return e.cfg.DeathAnimation && e.Lives < 1
}

// Hit applies damage.
func (e *Enemy) Hit(damage int) {
	e.Lives -= damage
}

// Circle returns the collision shape.
func (e *Enemy) Circle() physics.Circle {
	return physics.Circle{Center: e.Pos, Radius: e.Radius}
}

// Update moves the enemy and resolves its impacts, hits and death animation.
func (e *Enemy) Update(ctx UpdateContext) {
	if e.free {
		return
	}

	e.Pos.X += e.Vel.X
	e.Pos.Y += e.Vel.Y

	if !e.cfg.Collides {
		e.expireOutside(ctx.Bounds)
		return
	}

	// A wreck that is already exploding no longer threatens anything.
	if !e.Dying() {
		if physics.CirclesOverlap(e.Circle(), ctx.Planet.Circle()) {
			ctx.Scorer.LoseLife(ImpactPlanet)
			e.Reset()
			return
		}
		if ctx.Player != nil && physics.CirclesOverlap(e.Circle(), ctx.Player.Circle()) {
			ctx.Scorer.LoseLife(ImpactPlayer)
			e.Reset()
			return
		}
	}

	if e.cfg.Shootable && ctx.Projectiles != nil {
		for _, p := range ctx.Projectiles.Slots() {
			if e.Lives <= 0 {
				break
			}
			if p.IsFree() {
				continue
			}
			if physics.CirclesOverlap(e.Circle(), p.Circle()) {
				e.Hit(1)
				p.Reset()
			}
		}
	}

	if e.Lives < 1 {
		if !e.cfg.DeathAnimation {
			ctx.Scorer.AddScore(e.MaxLives)
			e.Reset()
			return
		}
		e.Frame++
	}

	if e.Frame > e.MaxFrame {
		ctx.Scorer.AddScore(e.MaxLives)
		e.Reset()
	}
}

// expireOutside frees an enemy that has crossed the canvas and left it.
func (e *Enemy) expireOutside(b Bounds) {
	m := e.Radius * basicExpiryMargin
	if e.Pos.X < -m || e.Pos.X > b.Width+m || e.Pos.Y < -m || e.Pos.Y > b.Height+m {
		e.Reset()
	}
}
