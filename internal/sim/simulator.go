package sim

import (
	"context"
	"time"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/logging"
	"github.com/san-kum/lorenz/internal/trajectory"
	"github.com/sirupsen/logrus"
)

// cancelCheckInterval is how many steps run between context polls.
const cancelCheckInterval = 4096

type Option func(*Simulator)

func WithLogger(l logrus.FieldLogger) Option {
	return func(s *Simulator) { s.log = l }
}

// WithValidation toggles the per-step finiteness check. It is on by default.
func WithValidation(on bool) Option {
	return func(s *Simulator) { s.validate = on }
}

func WithObserver(o dynamo.Observer) Option {
	return func(s *Simulator) { s.observers = append(s.observers, o) }
}

type Simulator struct {
	field     dynamo.Field
	stepper   dynamo.Stepper
	log       logrus.FieldLogger
	validate  bool
	observers []dynamo.Observer
}

func New(field dynamo.Field, stepper dynamo.Stepper, opts ...Option) *Simulator {
	s := &Simulator{
		field:     field,
		stepper:   stepper,
		log:       logging.Discard(),
		validate:  true,
		observers: make([]dynamo.Observer, 0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run seeds slot 0 with x0 and fills slots 1..Steps-1, each from its
// predecessor. Only the stepping loop is timed. On failure the partial
// result is returned alongside a *dynamo.StepError.
func (s *Simulator) Run(ctx context.Context, x0 dynamo.Point3, cfg Config) (*Result, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if !x0.IsValid() {
		return nil, &dynamo.StepError{Step: 0, Point: x0, Wrapped: dynamo.ErrInvalidState}
	}

	traj, err := trajectory.New(cfg.Steps)
	if err != nil {
		return nil, err
	}
	traj.Set(0, x0)

	log := s.log.WithFields(logrus.Fields{"steps": cfg.Steps, "dt": cfg.Dt})
	log.Debug("integration started")
	for _, obs := range s.observers {
		obs.OnStart(cfg.Steps, cfg.Dt)
	}

	start := time.Now()
	written, runErr := s.integrate(ctx, traj, cfg.Dt)
	elapsed := time.Since(start)

	traj.Truncate(written)
	result := &Result{
		Trajectory: traj,
		Elapsed:    elapsed,
		StepsTaken: written - 1,
	}

	for _, obs := range s.observers {
		obs.OnFinish(result.StepsTaken, elapsed, runErr)
	}

	if runErr != nil {
		log.WithError(runErr).Warn("integration stopped early")
		return result, runErr
	}

	log.WithField("elapsed", elapsed).Debug("integration complete")
	return result, nil
}

// integrate returns the number of slots holding valid points.
func (s *Simulator) integrate(ctx context.Context, traj *trajectory.Trajectory, dt float64) (int, error) {
	n := traj.Len()
	for i := 1; i < n; i++ {
		if i%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				return i, &dynamo.StepError{Step: i, Point: traj.At(i - 1), Wrapped: err}
			}
		}

		next := s.stepper.Step(s.field, traj.At(i-1), dt)
		if s.validate && !next.IsValid() {
			return i, &dynamo.StepError{Step: i, Point: traj.At(i - 1), Wrapped: dynamo.ErrInvalidState}
		}
		traj.Set(i, next)
	}
	return n, nil
}
