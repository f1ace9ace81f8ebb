package analysis

import (
	"fmt"
	"math"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// BifurcationPoint holds the distinct local maxima of one coordinate for a
// single parameter value.
type BifurcationPoint struct {
	Param  float64
	Values []float64
}

// Sweep describes a parameter sweep. Transient and Record are step counts.
type Sweep struct {
	Param     string
	Min, Max  float64
	Samples   int
	Axis      int
	X0        dynamo.Point3
	Dt        float64
	Transient int
	Record    int
}

// BifurcationDiagram steps f once per parameter value and records the
// distinct local maxima of sw.Axis after the transient. For Lorenz with
// Axis = 2 this is the z-maxima map; a single value means a stable cycle or
// fixed point, many values mean chaos. The original parameter value is
// restored before returning.
func BifurcationDiagram(f dynamo.TunableField, integ dynamo.Stepper, sw Sweep) (_ []BifurcationPoint, err error) {
	if sw.Axis < 0 || sw.Axis > 2 {
		return nil, fmt.Errorf("%w: axis %d", dynamo.ErrInvalidConfig, sw.Axis)
	}
	if sw.Dt <= 0 || sw.Record < 3 {
		return nil, fmt.Errorf("%w: need dt > 0 and at least 3 recorded steps", dynamo.ErrInvalidConfig)
	}
	original, ok := f.GetParams()[sw.Param]
	if !ok {
		return nil, fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, sw.Param)
	}
	defer func() {
		if rerr := f.SetParam(sw.Param, original); rerr != nil && err == nil {
			err = rerr
		}
	}()

	samples := max(sw.Samples, 2)
	step := (sw.Max - sw.Min) / float64(samples-1)
	results := make([]BifurcationPoint, 0, samples)

	for i := 0; i < samples; i++ {
		param := sw.Min + float64(i)*step
		if err = f.SetParam(sw.Param, param); err != nil {
			return nil, err
		}

		x := sw.X0
		for n := 0; n < sw.Transient; n++ {
			x = integ.Step(f, x, sw.Dt)
		}

		values := make([]float64, 0, 16)
		seen := make(map[int64]bool)
		var prev2 float64
		prev := x[sw.Axis]
		for n := 0; n < sw.Record; n++ {
			x = integ.Step(f, x, sw.Dt)
			if !x.IsValid() {
				return nil, &dynamo.StepError{Step: sw.Transient + n + 1, Point: x, Wrapped: dynamo.ErrInvalidState}
			}
			curr := x[sw.Axis]
			if n > 0 && prev > prev2 && prev >= curr {
				// quantize so a periodic orbit yields one value per peak
				key := int64(math.Round(prev * 1000))
				if !seen[key] {
					seen[key] = true
					values = append(values, prev)
				}
			}
			prev2, prev = prev, curr
		}

		results = append(results, BifurcationPoint{Param: param, Values: values})
	}
	return results, nil
}
