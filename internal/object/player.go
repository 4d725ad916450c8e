package object

import "github.com/tomz197/planetdefense/internal/physics"

// Default turret parameters.
const (
	PlayerRadius     = 40.0
	PlayerRingRadius = 100.0 // Distance from the planet center to the turret center
)

// Player is the turret orbiting the planet. Its position is derived from the
// pointer every tick rather than simulated.
type Player struct {
	Pos        Vec         // Position (center of the turret)
	Radius     float64     // Collision/draw radius
	RingRadius float64     // Orbit radius around the planet
	Angle      float64     // Orientation in radians, atan2 of the raw aim deltas
	Aim        physics.Aim // Last valid aim from the planet toward the pointer
}

// NewPlayer creates a turret sitting on top of the planet, aiming up.
func NewPlayer(planet *Planet, radius, ringRadius float64) *Player {
	p := &Player{
		Radius:     radius,
		RingRadius: ringRadius,
	}
	p.Reset(planet)
	return p
}

// Reset points the turret straight up and places it on the ring.
func (p *Player) Reset(planet *Planet) {
	p.Aim = physics.Aim{
		Unit: Vec{X: 0, Y: -1},
		Raw:  Vec{X: 0, Y: 1},
	}
	p.place(planet)
}

// Update re-aims at the pointer and moves the turret onto the ring.
// A pointer exactly at the planet center keeps the previous aim.
func (p *Player) Update(planet *Planet, pointer Vec) {
	aim := physics.UnitAim(planet.Pos, pointer)
	if !aim.IsZero() {
		p.Aim = aim
	}
	p.place(planet)
}

func (p *Player) place(planet *Planet) {
	p.Pos = Vec{
		X: planet.Pos.X + p.RingRadius*p.Aim.Unit.X,
		Y: planet.Pos.Y + p.RingRadius*p.Aim.Unit.Y,
	}
	p.Angle = p.Aim.Angle()
}

// Muzzle returns the point on the turret rim where projectiles appear.
func (p *Player) Muzzle() Vec {
	return Vec{
		X: p.Pos.X + p.Radius*p.Aim.Unit.X,
		Y: p.Pos.Y + p.Radius*p.Aim.Unit.Y,
	}
}

// Shoot starts the first free projectile from the muzzle along the aim.
// Returns false when the pool is exhausted; the shot is dropped.
func (p *Player) Shoot(projectiles *Pool[*Projectile]) bool {
	proj, ok := projectiles.Acquire()
	if !ok {
		return false
	}
	proj.Start(p.Muzzle(), p.Aim.Unit)
	return true
}

// Circle returns the collision shape.
func (p *Player) Circle() physics.Circle {
	return physics.Circle{Center: p.Pos, Radius: p.Radius}
}
