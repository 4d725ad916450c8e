package object

import "github.com/tomz197/planetdefense/internal/physics"

// Planet is the static target at the center of the canvas.
type Planet struct {
	Pos    Vec
	Radius float64
}

// NewPlanet places a planet at the center of the bounds.
func NewPlanet(bounds Bounds, radius float64) *Planet {
	return &Planet{
		Pos:    bounds.Center(),
		Radius: radius,
	}
}

// Circle returns the collision shape.
func (p *Planet) Circle() physics.Circle {
	return physics.Circle{Center: p.Pos, Radius: p.Radius}
}
