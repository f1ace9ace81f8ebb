package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/dynamo"
)

var axisNames = [3]string{"x", "y", "z"}

// AxisIndex maps "x", "y" or "z" to a coordinate index.
func AxisIndex(name string) (int, error) {
	for i, n := range axisNames {
		if strings.EqualFold(name, n) {
			return i, nil
		}
	}
	return 0, fmt.Errorf("unknown axis %q", name)
}

// Series extracts one coordinate of every point.
func Series(points []dynamo.Point3, axis int) []float64 {
	out := make([]float64, len(points))
	for i, p := range points {
		out[i] = p[axis]
	}
	return out
}

// PlotAxes draws a time series of each requested axis, downsampled to the
// plot width, one chart per axis.
func PlotAxes(points []dynamo.Point3, axes []int, w, h int) string {
	if len(points) == 0 {
		return ""
	}
	sampled := Downsample(points, w)
	charts := make([]string, 0, len(axes))
	for _, a := range axes {
		charts = append(charts, asciigraph.Plot(Series(sampled, a),
			asciigraph.Height(h),
			asciigraph.Width(w),
			asciigraph.Caption(fmt.Sprintf("%s(t), %d points", axisNames[a], len(points)))))
	}
	return strings.Join(charts, "\n\n")
}

// PhasePortrait projects points onto the (a, b) coordinate plane and draws
// them on a braille canvas of w x h cells, fitted to the data bounds.
func PhasePortrait(points []dynamo.Point3, a, b, w, h int) string {
	c := NewCanvas(w, h)
	if len(points) == 0 {
		return c.String()
	}
	bounds := analysis.ComputeBounds(points)
	pw, ph := c.PixelWidth(), c.PixelHeight()
	spanA := bounds.Max[a] - bounds.Min[a]
	spanB := bounds.Max[b] - bounds.Min[b]
	if spanA == 0 {
		spanA = 1
	}
	if spanB == 0 {
		spanB = 1
	}

	px, py := -1, -1
	for _, p := range points {
		x := int((p[a] - bounds.Min[a]) / spanA * float64(pw-1))
		y := ph - 1 - int((p[b]-bounds.Min[b])/spanB*float64(ph-1))
		if px >= 0 {
			c.DrawLine(px, py, x, y)
		} else {
			c.Set(x, y)
		}
		px, py = x, y
	}
	return c.String()
}

// BifurcationPlot draws a sweep with the parameter on the horizontal axis
// and the recorded values on the vertical axis.
func BifurcationPlot(data []analysis.BifurcationPoint, w, h int) string {
	c := NewCanvas(w, h)
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, p := range data {
		for _, v := range p.Values {
			lo, hi = min(lo, v), max(hi, v)
		}
	}
	if len(data) == 0 || math.IsInf(lo, 1) {
		return c.String()
	}
	if hi == lo {
		hi = lo + 1
	}

	pw, ph := c.PixelWidth(), c.PixelHeight()
	for i, p := range data {
		x := i * (pw - 1) / max(len(data)-1, 1)
		for _, v := range p.Values {
			c.Set(x, ph-1-int((v-lo)/(hi-lo)*float64(ph-1)))
		}
	}
	return c.String()
}
