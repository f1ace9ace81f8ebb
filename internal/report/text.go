package report

import (
	"io"
	"math"
	"strconv"

	"github.com/san-kum/lorenz/internal/dynamo"
)

func writeText(w io.Writer, run *Run, noPoints bool) error {
	line := make([]byte, 0, 64)
	line = strconv.AppendFloat(line, run.Elapsed.Seconds(), 'f', 6, 64)
	line = append(line, '\n')
	if _, err := w.Write(line); err != nil {
		return err
	}
	if noPoints {
		return nil
	}
	return WritePoints(w, run.Points)
}

// WritePoints writes one "%f, %f, %f" line per point. strconv's 'f' format
// with precision 6 produces the same digits as printf's %f; non-finite
// values are spelled the way glibc prints them.
func WritePoints(w io.Writer, points []dynamo.Point3) error {
	line := make([]byte, 0, 96)
	for _, p := range points {
		line = line[:0]
		line = appendFixed(line, p[0])
		line = append(line, ", "...)
		line = appendFixed(line, p[1])
		line = append(line, ", "...)
		line = appendFixed(line, p[2])
		line = append(line, '\n')
		if _, err := w.Write(line); err != nil {
			return err
		}
	}
	return nil
}

func appendFixed(b []byte, v float64) []byte {
	switch {
	case math.IsNaN(v):
		if math.Signbit(v) {
			return append(b, "-nan"...)
		}
		return append(b, "nan"...)
	case math.IsInf(v, 1):
		return append(b, "inf"...)
	case math.IsInf(v, -1):
		return append(b, "-inf"...)
	}
	return strconv.AppendFloat(b, v, 'f', 6, 64)
}
