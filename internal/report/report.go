// Package report renders a finished run to a writer as text, CSV or JSON.
//
// The text format is the benchmark's canonical output: the elapsed seconds
// of the stepping loop on the first line, then one "x, y, z" line per point,
// all with six decimals.
package report

import (
	"bufio"
	"fmt"
	"io"
	"time"

	"github.com/google/uuid"
	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/sim"
)

// Run is everything a writer needs about one integration.
type Run struct {
	ID         string
	Integrator string
	Dt         float64
	Params     config.ParamsConfig
	Elapsed    time.Duration
	StepsTaken int
	Points     []dynamo.Point3
}

func NewRun(cfg *config.Config, result *sim.Result) *Run {
	return &Run{
		ID:         uuid.NewString(),
		Integrator: cfg.Integrator,
		Dt:         cfg.Dt,
		Params:     cfg.Params,
		Elapsed:    result.Elapsed,
		StepsTaken: result.StepsTaken,
		Points:     result.Trajectory.Points(),
	}
}

type Options struct {
	Format   string
	NoPoints bool
}

// Write renders run in the requested format through a buffered writer.
func Write(w io.Writer, run *Run, opts Options) error {
	bw := bufio.NewWriterSize(w, 1<<16)

	var err error
	switch opts.Format {
	case "", "text":
		err = writeText(bw, run, opts.NoPoints)
	case "csv":
		err = writeCSV(bw, run, opts.NoPoints)
	case "json":
		err = writeJSON(bw, run, opts.NoPoints)
	default:
		return fmt.Errorf("%w: unknown format %q", dynamo.ErrInvalidConfig, opts.Format)
	}
	if err != nil {
		return err
	}
	return bw.Flush()
}
