// Package export renders trajectories and canvases as SVG.
package export

import (
	"bufio"
	"fmt"
	"io"

	"github.com/san-kum/lorenz/internal/analysis"
	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/viz"
)

const background = "#0a0a0a"

// CanvasSVG writes every lit braille dot of canvas as a circle. Each
// sub-pixel becomes a scale x scale square.
func CanvasSVG(w io.Writer, canvas *viz.Canvas, scale float64) error {
	if canvas == nil {
		return nil
	}
	bw := bufio.NewWriter(w)

	width := float64(canvas.PixelWidth()) * scale
	height := float64(canvas.PixelHeight()) * scale
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="%s"/>
<g fill="#00ff88">
`, width, height, width, height, background)

	r := scale * 0.4
	for y := 0; y < canvas.PixelHeight(); y++ {
		for x := 0; x < canvas.PixelWidth(); x++ {
			if canvas.IsSet(x, y) {
				fmt.Fprintf(bw, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
					float64(x)*scale+scale/2, float64(y)*scale+scale/2, r)
			}
		}
	}

	bw.WriteString("</g>\n</svg>\n")
	return bw.Flush()
}

// TrajectorySVG writes points projected onto coordinates (a, b) as a single
// polyline path, fitted to the data with 10% padding.
func TrajectorySVG(w io.Writer, points []dynamo.Point3, a, b, width, height int, stroke string) error {
	if len(points) < 2 {
		return fmt.Errorf("need at least 2 points, got %d", len(points))
	}
	if a < 0 || a > 2 || b < 0 || b > 2 {
		return fmt.Errorf("axis out of range: (%d, %d)", a, b)
	}

	bounds := analysis.ComputeBounds(points)
	minX, rangeX := padded(bounds.Min[a], bounds.Max[a])
	minY, rangeY := padded(bounds.Min[b], bounds.Max[b])

	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="%s"/>
<path fill="none" stroke="%s" stroke-width="0.5" d="M`,
		width, height, width, height, background, stroke)

	for i, p := range points {
		x := (p[a] - minX) / rangeX * float64(width)
		y := float64(height) - (p[b]-minY)/rangeY*float64(height)
		if i == 0 {
			fmt.Fprintf(bw, "%.1f,%.1f", x, y)
		} else {
			fmt.Fprintf(bw, " L%.1f,%.1f", x, y)
		}
	}

	bw.WriteString("\"/>\n</svg>\n")
	return bw.Flush()
}

func padded(lo, hi float64) (float64, float64) {
	rng := hi - lo
	if rng == 0 {
		rng = 1
	}
	return lo - rng*0.1, rng * 1.2
}
