package sim

import (
	"fmt"
	"math"
	"time"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/trajectory"
)

// Reference run constants.
const (
	DefaultSteps = 500000
	DefaultDt    = 0.01
)

// Config describes one run. Steps counts stored points, seed included.
type Config struct {
	Steps int
	Dt    float64
}

func DefaultConfig() Config {
	return Config{Steps: DefaultSteps, Dt: DefaultDt}
}

func (c Config) Validate() error {
	if c.Steps < 1 {
		return fmt.Errorf("%w: steps must be at least 1, got %d", dynamo.ErrInvalidConfig, c.Steps)
	}
	if c.Dt <= 0 || math.IsInf(c.Dt, 0) || math.IsNaN(c.Dt) {
		return fmt.Errorf("%w: dt must be positive and finite, got %v", dynamo.ErrInvalidConfig, c.Dt)
	}
	return nil
}

type Result struct {
	Trajectory *trajectory.Trajectory
	// Elapsed covers the stepping loop only.
	Elapsed    time.Duration
	StepsTaken int
}
