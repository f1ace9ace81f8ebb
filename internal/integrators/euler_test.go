package integrators

import (
	"math"
	"testing"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/physics"
)

func TestEulerStep(t *testing.T) {
	got := NewEuler().Step(physics.NewLorenz(), dynamo.Point3{1, 0, 0}, 0.01)
	want := dynamo.Point3{1 - 0.1, 0.28, 0}

	for i := range want {
		if math.Abs(got[i]-want[i]) > 1e-15 {
			t.Errorf("component %d: got %v, want %v", i, got[i], want[i])
		}
	}
}

func TestEulerLessAccurateThanRK4(t *testing.T) {
	f := &oscillator{}
	e, r := NewEuler(), NewRK4()
	xe := dynamo.Point3{1, 0, 0}
	xr := xe

	for i := 0; i < 100; i++ {
		xe = e.Step(f, xe, 0.01)
		xr = r.Step(f, xr, 0.01)
	}

	exact := math.Cos(1.0)
	if math.Abs(xe[0]-exact) <= math.Abs(xr[0]-exact) {
		t.Errorf("euler error %.3g should exceed rk4 error %.3g", math.Abs(xe[0]-exact), math.Abs(xr[0]-exact))
	}
}
