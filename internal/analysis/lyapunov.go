package analysis

import (
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// LyapunovExponent estimates the largest Lyapunov exponent using the
// two-trajectory renormalisation method. A positive value indicates chaos.
//
// Algorithm:
// 1. Advance x0 for transient steps so it settles onto the attractor
// 2. Step a reference and a neighbour separated by d0
// 3. After every step accumulate ln(d/d0) and pull the neighbour back to d0
// 4. λ ≈ Σ ln(d/d0) / (steps·dt)
func LyapunovExponent(
	f dynamo.Field,
	integ dynamo.Stepper,
	x0 dynamo.Point3,
	dt float64,
	transient, steps int,
	d0 float64,
) float64 {
	if steps <= 0 || dt <= 0 || d0 <= 0 {
		return 0
	}

	x := x0
	for i := 0; i < transient; i++ {
		x = integ.Step(f, x, dt)
	}

	xp := x
	xp[0] += d0

	sumLog := 0.0
	for i := 0; i < steps; i++ {
		x = integ.Step(f, x, dt)
		xp = integ.Step(f, xp, dt)

		sep := xp.Sub(x).Norm()
		if sep == 0 || math.IsNaN(sep) || math.IsInf(sep, 0) {
			return math.NaN()
		}
		sumLog += math.Log(sep / d0)

		// Renormalize to prevent overflow
		xp = x.Add(xp.Sub(x).Scale(d0 / sep))
	}

	return sumLog / (float64(steps) * dt)
}
