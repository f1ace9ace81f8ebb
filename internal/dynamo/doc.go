// Package dynamo provides core primitives for integrating three-dimensional
// autonomous ODE systems such as the Lorenz attractor.
//
// The package defines the fundamental interfaces and types:
//
//   - [Point3]: one state of the system, stored by value
//   - [Field]: a vector field dX/dt = F(X)
//   - [Stepper]: a fixed-step numerical integrator
//   - [Observer]: receives per-run notifications from the driver
//
// # Example
//
//	field := physics.NewLorenz()
//	integ := integrators.NewRK4()
//	next := integ.Step(field, dynamo.Point3{1, 0, 0}, 0.01)
//
// # Thread Safety
//
// Steppers in this module carry no state and are safe for concurrent use.
// Fields are safe for concurrent reads; SetParam must not race with Derive.
package dynamo
