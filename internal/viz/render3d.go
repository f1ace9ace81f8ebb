package viz

import (
	"math"

	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/dynamo"
)

// Camera orbits a target point and projects world coordinates onto a
// canvas with a simple perspective divide.
type Camera struct {
	Target           dynamo.Point3
	Distance         float64
	RotX, RotY, RotZ float64
	Zoom             float64
	// Scale maps world units to the unit square before zooming.
	Scale float64
}

func NewCamera() *Camera {
	return &Camera{Distance: 4, Zoom: 1.0, Scale: 1.0, RotX: -math.Pi / 2}
}

// FitBounds centres the camera on b and scales it to fill the view.
func (c *Camera) FitBounds(b analysis.Bounds) {
	c.Target = b.Center()
	if r := b.Radius(); r > 0 {
		c.Scale = 1 / r
	}
}

func (c *Camera) RotateX(a float64) { c.RotX += a }
func (c *Camera) RotateY(a float64) { c.RotY += a }
func (c *Camera) RotateZ(a float64) { c.RotZ += a }
func (c *Camera) ZoomIn()           { c.Zoom = math.Min(10, c.Zoom*1.2) }
func (c *Camera) ZoomOut()          { c.Zoom = math.Max(0.1, c.Zoom/1.2) }

// RotatePoint moves p into camera space: translate to the target, scale,
// then rotate about x, y and z in that order.
func (c *Camera) RotatePoint(p dynamo.Point3) dynamo.Point3 {
	p = p.Sub(c.Target).Scale(c.Scale * c.Zoom)
	cx, sx := math.Cos(c.RotX), math.Sin(c.RotX)
	p[1], p[2] = p[1]*cx-p[2]*sx, p[1]*sx+p[2]*cx
	cy, sy := math.Cos(c.RotY), math.Sin(c.RotY)
	p[0], p[2] = p[0]*cy+p[2]*sy, -p[0]*sy+p[2]*cy
	cz, sz := math.Cos(c.RotZ), math.Sin(c.RotZ)
	p[0], p[1] = p[0]*cz-p[1]*sz, p[0]*sz+p[1]*cz
	return p
}

// Project converts a world point to sub-pixel coordinates on a canvas of
// pw x ph sub-pixels. Returns x, y, depth, and visibility.
func (c *Camera) Project(p dynamo.Point3, pw, ph int) (int, int, float64, bool) {
	rot := c.RotatePoint(p)
	if rot[2] >= c.Distance-0.05 {
		return 0, 0, 0, false
	}
	persp := c.Distance / (c.Distance - rot[2])
	half := float64(min(pw, ph/2*2)) / 2
	sx := int(rot[0]*persp*half) + pw/2
	sy := int(-rot[1]*persp*half) + ph/2
	return sx, sy, rot[2], sx >= 0 && sx < pw && sy >= 0 && sy < ph
}

// RenderTrajectory draws points as a connected polyline. Segments with an
// invisible endpoint are skipped.
func RenderTrajectory(c *Canvas, points []dynamo.Point3, cam *Camera) {
	if c == nil || cam == nil || len(points) == 0 {
		return
	}
	pw, ph := c.PixelWidth(), c.PixelHeight()
	px, py, _, pv := cam.Project(points[0], pw, ph)
	if pv && len(points) == 1 {
		c.Set(px, py)
	}
	for _, p := range points[1:] {
		x, y, _, v := cam.Project(p, pw, ph)
		if v && pv {
			c.DrawLine(px, py, x, y)
		}
		px, py, pv = x, y, v
	}
}

// Downsample returns at most n points spread evenly over points, always
// keeping the first and last.
func Downsample(points []dynamo.Point3, n int) []dynamo.Point3 {
	if n <= 0 || len(points) <= n {
		return points
	}
	if n == 1 {
		return points[:1]
	}
	out := make([]dynamo.Point3, n)
	last := len(points) - 1
	for i := 0; i < n; i++ {
		out[i] = points[i*last/(n-1)]
	}
	return out
}
