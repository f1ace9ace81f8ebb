package analysis

import (
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// Bounds is the axis-aligned bounding box of a set of points.
type Bounds struct {
	Min, Max dynamo.Point3
}

// ComputeBounds returns the box enclosing every point. An empty slice gives
// a zero box.
func ComputeBounds(points []dynamo.Point3) Bounds {
	if len(points) == 0 {
		return Bounds{}
	}
	b := Bounds{Min: points[0], Max: points[0]}
	for _, p := range points[1:] {
		for i := 0; i < 3; i++ {
			b.Min[i] = math.Min(b.Min[i], p[i])
			b.Max[i] = math.Max(b.Max[i], p[i])
		}
	}
	return b
}

func (b Bounds) Center() dynamo.Point3 {
	return b.Min.Add(b.Max).Scale(0.5)
}

func (b Bounds) Size() dynamo.Point3 {
	return b.Max.Sub(b.Min)
}

// Radius is half the box diagonal.
func (b Bounds) Radius() float64 {
	return b.Size().Norm() / 2
}

func (b Bounds) Contains(p dynamo.Point3) bool {
	for i := 0; i < 3; i++ {
		if p[i] < b.Min[i] || p[i] > b.Max[i] {
			return false
		}
	}
	return true
}

// Centroid is the arithmetic mean of the points.
func Centroid(points []dynamo.Point3) dynamo.Point3 {
	if len(points) == 0 {
		return dynamo.Point3{}
	}
	var sum dynamo.Point3
	for _, p := range points {
		sum = sum.Add(p)
	}
	return sum.Scale(1 / float64(len(points)))
}
