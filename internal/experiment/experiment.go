package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/sim"
)

// Experiment binds a validated configuration to a simulator.
type Experiment struct {
	cfg       *config.Config
	simulator *sim.Simulator
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup resolves the integrator and builds the simulator. Options are passed
// through to sim.New.
func (e *Experiment) Setup(registry *Registry, opts ...sim.Option) error {
	if err := e.cfg.Validate(); err != nil {
		return err
	}
	integ, err := registry.GetIntegrator(e.cfg.Integrator)
	if err != nil {
		return err
	}
	e.simulator = sim.New(e.cfg.Field(), integ, opts...)
	return nil
}

func (e *Experiment) Run(ctx context.Context) (*sim.Result, error) {
	if e.simulator == nil {
		return nil, fmt.Errorf("experiment not setup")
	}
	return e.simulator.Run(ctx, e.cfg.InitialPoint(), e.cfg.SimConfig())
}
