package physics

import (
	"math"
	"math/rand"
	"testing"
)

func TestUnitAimMagnitude(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	for i := 0; i < 200; i++ {
		a := Vec{X: r.Float64()*1600 - 400, Y: r.Float64()*1600 - 400}
		b := Vec{X: r.Float64()*1600 - 400, Y: r.Float64()*1600 - 400}
		if a == b {
			continue
		}
		aim := UnitAim(a, b)
		mag := math.Hypot(aim.Unit.X, aim.Unit.Y)
		if math.Abs(mag-1) > 1e-12 {
			t.Fatalf("UnitAim(%v, %v) magnitude = %v, want 1", a, b, mag)
		}
	}
}

func TestUnitAimDirection(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Vec
		wantUnit Vec
		wantRaw  Vec
	}{
		{"target right", Vec{X: 400, Y: 400}, Vec{X: 500, Y: 400}, Vec{X: 1, Y: 0}, Vec{X: -100, Y: 0}},
		{"target above", Vec{X: 400, Y: 400}, Vec{X: 400, Y: 100}, Vec{X: 0, Y: -1}, Vec{X: 0, Y: 300}},
		{"3-4-5", Vec{X: 0, Y: 0}, Vec{X: 3, Y: 4}, Vec{X: 0.6, Y: 0.8}, Vec{X: -3, Y: -4}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			aim := UnitAim(tt.a, tt.b)
			if math.Abs(aim.Unit.X-tt.wantUnit.X) > 1e-12 || math.Abs(aim.Unit.Y-tt.wantUnit.Y) > 1e-12 {
				t.Errorf("unit = %v, want %v", aim.Unit, tt.wantUnit)
			}
			if aim.Raw != tt.wantRaw {
				t.Errorf("raw = %v, want %v", aim.Raw, tt.wantRaw)
			}
		})
	}
}

func TestUnitAimDegenerate(t *testing.T) {
	p := Vec{X: 400, Y: 400}
	aim := UnitAim(p, p)
	if !aim.IsZero() {
		t.Fatalf("expected zero aim, got %v", aim)
	}
	for _, v := range []float64{aim.Unit.X, aim.Unit.Y, aim.Raw.X, aim.Raw.Y, aim.Angle()} {
		if math.IsNaN(v) {
			t.Fatalf("degenerate aim produced NaN: %+v", aim)
		}
	}
}

func TestAimAngle(t *testing.T) {
	// Planet at the center, pointer straight to the right.
	aim := UnitAim(Vec{X: 400, Y: 400}, Vec{X: 700, Y: 400})
	if got := aim.Angle(); math.Abs(got-math.Pi) > 1e-12 {
		t.Errorf("angle = %v, want pi", got)
	}

	// Pointer straight below: raw deltas point up.
	aim = UnitAim(Vec{X: 400, Y: 400}, Vec{X: 400, Y: 700})
	if got := aim.Angle(); math.Abs(got+math.Pi/2) > 1e-12 {
		t.Errorf("angle = %v, want -pi/2", got)
	}
}

func TestCirclesOverlap(t *testing.T) {
	tests := []struct {
		name string
		a, b Circle
		want bool
	}{
		{"tangent", Circle{Vec{X: 0, Y: 0}, 1}, Circle{Vec{X: 3, Y: 0}, 2}, true},
		{"tangent diagonal", Circle{Vec{X: 0, Y: 0}, 2}, Circle{Vec{X: 3, Y: 4}, 3}, true},
		{"overlapping", Circle{Vec{X: 0, Y: 0}, 5}, Circle{Vec{X: 4, Y: 0}, 1}, true},
		{"apart", Circle{Vec{X: 0, Y: 0}, 1}, Circle{Vec{X: 3.0001, Y: 0}, 2}, false},
		{"same center", Circle{Vec{X: 10, Y: 10}, 0}, Circle{Vec{X: 10, Y: 10}, 0}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CirclesOverlap(tt.a, tt.b); got != tt.want {
				t.Errorf("CirclesOverlap = %v, want %v", got, tt.want)
			}
			if got := CirclesOverlap(tt.b, tt.a); got != tt.want {
				t.Errorf("CirclesOverlap (swapped) = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestInBounds(t *testing.T) {
	tests := []struct {
		p    Vec
		want bool
	}{
		{Vec{X: 0, Y: 0}, true},
		{Vec{X: 800, Y: 800}, true},
		{Vec{X: -0.1, Y: 10}, false},
		{Vec{X: 10, Y: 800.1}, false},
	}
	for _, tt := range tests {
		if got := InBounds(tt.p, 800, 800); got != tt.want {
			t.Errorf("InBounds(%v) = %v, want %v", tt.p, got, tt.want)
		}
	}
}
