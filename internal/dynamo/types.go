package dynamo

import (
	"fmt"
	"math"
	"time"
)

// Point3 is a single (x, y, z) state. It is a value type so a trajectory can
// live in one contiguous buffer.
type Point3 [3]float64

func (p Point3) X() float64 { return p[0] }
func (p Point3) Y() float64 { return p[1] }
func (p Point3) Z() float64 { return p[2] }

func (p Point3) IsValid() bool {
	for _, v := range p {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}

func (p Point3) Norm() float64 {
	return math.Sqrt(p[0]*p[0] + p[1]*p[1] + p[2]*p[2])
}

func (p Point3) Add(o Point3) Point3 {
	return Point3{p[0] + o[0], p[1] + o[1], p[2] + o[2]}
}

func (p Point3) Sub(o Point3) Point3 {
	return Point3{p[0] - o[0], p[1] - o[1], p[2] - o[2]}
}

func (p Point3) Scale(factor float64) Point3 {
	return Point3{p[0] * factor, p[1] * factor, p[2] * factor}
}

func (p Point3) String() string {
	return fmt.Sprintf("(%g, %g, %g)", p[0], p[1], p[2])
}

// Field is an autonomous vector field.
type Field interface {
	Derive(p Point3) Point3
}

// Stepper advances a point by one fixed step of size dt.
type Stepper interface {
	Step(f Field, p Point3, dt float64) Point3
}

// Configurable is implemented by fields with tunable parameters.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// TunableField is a field whose parameters can change between or during runs.
type TunableField interface {
	Field
	Configurable
}

// Observer receives run-level notifications from the driver. The driver does
// not call it per step so the stepping loop stays tight.
type Observer interface {
	OnStart(steps int, dt float64)
	OnFinish(stepsTaken int, elapsed time.Duration, err error)
}
