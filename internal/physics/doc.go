// Package physics provides the vector fields integrated by the benchmark.
//
// [Lorenz] implements [dynamo.Field] and [dynamo.Configurable]:
//
//	dx/dt = σ(y − x)
//	dy/dt = x(ρ − z) − y
//	dz/dt = xy − βz
//
// The defaults are σ = 10, ρ = 28, β = 8/3, and the conventional seed is
// (1, 0, 0).
package physics
