package integrators

import "github.com/san-kum/lorenz/internal/dynamo"

// Euler is the explicit first-order stepper: one field evaluation per step.
type Euler struct{}

func NewEuler() *Euler {
	return &Euler{}
}

func (e *Euler) Step(f dynamo.Field, x dynamo.Point3, dt float64) dynamo.Point3 {
	dx := f.Derive(x)
	var result dynamo.Point3
	for i := range x {
		result[i] = x[i] + dx[i]*dt
	}
	return result
}
