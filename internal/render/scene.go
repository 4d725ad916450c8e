// Package render draws a game snapshot onto a half-block canvas. Frontends
// that show cells (raw terminal, tcell) share it.
package render

import (
	"math"

	"github.com/tomz197/planetdefense/internal/draw"
	"github.com/tomz197/planetdefense/internal/game"
	"github.com/tomz197/planetdefense/internal/object"
)

// asteroidShapes are per-row vertex radius multipliers giving each sprite row
// its own outline.
var asteroidShapes = [][]float64{
	{1.0, 0.85, 1.0, 0.9, 0.8, 1.0, 0.9, 0.85},
	{0.9, 1.0, 0.75, 1.0, 0.95, 0.8, 1.0, 0.9},
	{1.0, 0.9, 0.9, 0.7, 1.0, 0.95, 0.8, 1.0},
	{0.8, 1.0, 0.95, 1.0, 0.85, 0.9, 1.0, 0.75},
}

// AsteroidOutline returns the closed outline of an asteroid sprite row as
// vertex offsets from its center.
func AsteroidOutline(row int, radius float64) []draw.Point {
	shape := asteroidShapes[((row%len(asteroidShapes))+len(asteroidShapes))%len(asteroidShapes)]
	pts := make([]draw.Point, len(shape))
	for i, m := range shape {
		a := 2 * math.Pi * float64(i) / float64(len(shape))
		pts[i] = draw.Point{X: radius * m * math.Cos(a), Y: radius * m * math.Sin(a)}
	}
	return pts
}

// ExplosionSpokes returns the 8 spokes of a death animation frame as pairs
// of offsets (inner, outer) from the enemy center.
func ExplosionSpokes(frame, maxFrame int, radius float64) [8][2]draw.Point {
	frac := float64(frame) / float64(max(maxFrame, 1))
	inner := radius * frac * 0.5
	outer := radius * (0.4 + frac*0.6)

	var spokes [8][2]draw.Point
	for i := range spokes {
		a := float64(i) * math.Pi / 4
		cos, sin := math.Cos(a), math.Sin(a)
		spokes[i] = [2]draw.Point{
			{X: inner * cos, Y: inner * sin},
			{X: outer * cos, Y: outer * sin},
		}
	}
	return spokes
}

// BarrelLength is how far the turret barrel reaches, in turret radii.
const BarrelLength = 1.5

// DrawWorld rasterizes the snapshot onto cv.
func DrawWorld(cv *draw.Canvas, s *game.Snapshot) {
	cv.FillCircle(draw.Point{X: s.Planet.X, Y: s.Planet.Y}, s.Planet.Radius)

	p := s.Player
	center := draw.Point{X: p.X, Y: p.Y}
	cv.StrokeCircle(center, p.Radius)
	cv.DrawLine(center, draw.Point{X: p.X + p.AimX*p.Radius*BarrelLength, Y: p.Y + p.AimY*p.Radius*BarrelLength})

	for _, b := range s.Projectiles {
		cv.FillCircle(draw.Point{X: b.X, Y: b.Y}, b.Radius)
	}

	for _, e := range s.Enemies {
		drawEnemy(cv, e)
	}

	if s.Debug {
		cv.StrokeCircle(draw.Point{X: s.Planet.X, Y: s.Planet.Y}, s.Planet.Radius)
		for _, e := range s.Enemies {
			cv.StrokeCircle(draw.Point{X: e.X, Y: e.Y}, e.Radius)
		}
		const arm = 10
		cv.DrawLine(draw.Point{X: s.PointerX - arm, Y: s.PointerY}, draw.Point{X: s.PointerX + arm, Y: s.PointerY})
		cv.DrawLine(draw.Point{X: s.PointerX, Y: s.PointerY - arm}, draw.Point{X: s.PointerX, Y: s.PointerY + arm})
	}
}

func drawEnemy(cv *draw.Canvas, e game.EnemyView) {
	if e.Kind == object.EnemyBasic {
		cv.StrokeCircle(draw.Point{X: e.X, Y: e.Y}, e.Radius)
		return
	}

	if e.Dying {
		for _, s := range ExplosionSpokes(e.Frame, e.MaxFrame, e.Radius) {
			cv.DrawLine(
				draw.Point{X: e.X + s[0].X, Y: e.Y + s[0].Y},
				draw.Point{X: e.X + s[1].X, Y: e.Y + s[1].Y},
			)
		}
		return
	}

	outline := AsteroidOutline(e.Row, e.Radius)
	for i := range outline {
		a, b := outline[i], outline[(i+1)%len(outline)]
		cv.DrawLine(draw.Point{X: e.X + a.X, Y: e.Y + a.Y}, draw.Point{X: e.X + b.X, Y: e.Y + b.Y})
	}
}
