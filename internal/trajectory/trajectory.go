// Package trajectory holds a fixed-length, index-addressed sequence of points.
//
// The whole trajectory lives in one contiguous []dynamo.Point3 allocated up
// front. Slots are written once, in step order, and read afterwards.
package trajectory

import (
	"fmt"

	"github.com/san-kum/lorenz/internal/dynamo"
)

type Trajectory struct {
	points []dynamo.Point3
}

// New preallocates n zero-valued slots.
func New(n int) (*Trajectory, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: trajectory length must be at least 1, got %d", dynamo.ErrInvalidConfig, n)
	}
	return &Trajectory{points: make([]dynamo.Point3, n)}, nil
}

// Set stores p at index i. An index outside [0, Len()) panics.
func (t *Trajectory) Set(i int, p dynamo.Point3) { t.points[i] = p }

// At returns the point at index i. An index outside [0, Len()) panics.
func (t *Trajectory) At(i int) dynamo.Point3 { return t.points[i] }

func (t *Trajectory) Len() int { return len(t.points) }

func (t *Trajectory) Last() dynamo.Point3 { return t.points[len(t.points)-1] }

// Points exposes the backing buffer. Callers must not modify it.
func (t *Trajectory) Points() []dynamo.Point3 { return t.points }

// Truncate shortens the trajectory to its first n points. It is used when a
// run stops early so that unwritten slots are never reported.
func (t *Trajectory) Truncate(n int) {
	if n >= 0 && n < len(t.points) {
		t.points = t.points[:n]
	}
}
