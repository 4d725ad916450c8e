package object

import "github.com/tomz197/planetdefense/internal/physics"

// Default projectile parameters.
const (
	ProjectileSpeed  = 4.0 // World units per tick
	ProjectileRadius = 5.0
)

// Projectile is a pooled shot fired by the turret.
type Projectile struct {
	Pos    Vec     // Position (center)
	Vel    Vec     // Velocity per tick
	Radius float64 // Collision/draw radius
	Speed  float64 // Multiplier applied to the firing direction
	free   bool
}

// NewProjectile creates a free projectile slot.
func NewProjectile(radius, speed float64) *Projectile {
	return &Projectile{
		Radius: radius,
		Speed:  speed,
		free:   true,
	}
}

// Start activates the projectile at pos heading along dir.
// dir is expected to be a unit vector; the velocity is dir scaled by Speed.
func (p *Projectile) Start(pos, dir Vec) {
	p.free = false
	p.Pos = pos
	p.Vel = Vec{X: dir.X * p.Speed, Y: dir.Y * p.Speed}
}

// Reset returns the projectile to its pool.
func (p *Projectile) Reset() {
	p.free = true
}

// IsFree reports whether the projectile is available for reuse.
func (p *Projectile) IsFree() bool {
	return p.free
}

// Circle returns the collision shape.
func (p *Projectile) Circle() physics.Circle {
	return physics.Circle{Center: p.Pos, Radius: p.Radius}
}

// Update moves the projectile and frees it once it leaves the canvas.
func (p *Projectile) Update(bounds Bounds) {
	if p.free {
		return
	}

	p.Pos.X += p.Vel.X
	p.Pos.Y += p.Vel.Y

	if !bounds.Contains(p.Pos) {
		p.Reset()
	}
}
