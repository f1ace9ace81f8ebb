package integrators

import "github.com/san-kum/lorenz/internal/dynamo"

// RK4 is the classical fourth-order Runge-Kutta stepper. Each stage is
// measured from the step's starting point. The operation order matches the
// reference C harness so trajectories compare bit-for-bit on hardware that
// does not fuse multiply-adds.
type RK4 struct{}

func NewRK4() *RK4 {
	return &RK4{}
}

func (r *RK4) Step(f dynamo.Field, x dynamo.Point3, dt float64) dynamo.Point3 {
	k1 := f.Derive(x)

	var s dynamo.Point3
	for i := 0; i < 3; i++ {
		s[i] = x[i] + k1[i]*dt*0.5
	}
	k2 := f.Derive(s)

	for i := 0; i < 3; i++ {
		s[i] = x[i] + k2[i]*dt*0.5
	}
	k3 := f.Derive(s)

	for i := 0; i < 3; i++ {
		s[i] = x[i] + k3[i]*dt
	}
	k4 := f.Derive(s)

	var result dynamo.Point3
	for i := 0; i < 3; i++ {
		result[i] = x[i] + (k1[i]+2*k2[i]+2*k3[i]+k4[i])*dt/6
	}

	return result
}
