package analysis

import "github.com/san-kum/lorenz/internal/dynamo"

// Crossing is one upward pass of a trajectory through a plane.
type Crossing struct {
	Index int           // index of the first point at or above the plane
	Point dynamo.Point3 // linearly interpolated point on the plane
}

// PoincareSection records upward crossings of coordinate axis through
// level, interpolating between the bracketing points. For the Lorenz
// attractor the plane z = ρ−1 passes through both non-trivial fixed points.
func PoincareSection(points []dynamo.Point3, axis int, level float64) []Crossing {
	if axis < 0 || axis > 2 || len(points) < 2 {
		return nil
	}

	crossings := make([]Crossing, 0)
	for i := 1; i < len(points); i++ {
		prev, curr := points[i-1][axis], points[i][axis]
		if prev < level && curr >= level {
			frac := (level - prev) / (curr - prev)
			p := points[i-1].Add(points[i].Sub(points[i-1]).Scale(frac))
			p[axis] = level
			crossings = append(crossings, Crossing{Index: i, Point: p})
		}
	}
	return crossings
}

// LobeSwitches counts how often consecutive crossings change the sign of x,
// i.e. how often the trajectory hops between the two wings of the butterfly.
func LobeSwitches(crossings []Crossing) int {
	switches := 0
	for i := 1; i < len(crossings); i++ {
		if (crossings[i-1].Point[0] < 0) != (crossings[i].Point[0] < 0) {
			switches++
		}
	}
	return switches
}
