package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/san-kum/lorenz/internal/config"
	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/experiment"
	"github.com/san-kum/lorenz/internal/logging"
	"github.com/san-kum/lorenz/internal/report"
	"github.com/san-kum/lorenz/internal/sim"
	"github.com/san-kum/lorenz/internal/telemetry"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

// app holds the flag values shared by every command.
type app struct {
	configFile string
	preset     string
	verbose    bool
	metrics    bool

	integrator string
	steps      int
	dt         float64
	duration   float64
	sigma      float64
	rho        float64
	beta       float64
	x0, y0, z0 float64
	format     string
	noPoints   bool
}

// main runs the reference benchmark when no subcommand is given and exits
// with status 1 on any error.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	a := &app{}
	if err := a.rootCmd().ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}

func (a *app) rootCmd() *cobra.Command {
	def := config.DefaultConfig()

	rootCmd := &cobra.Command{
		Use:          "lorenz",
		Short:        "RK4 Lorenz attractor benchmark",
		Long:         "Integrates the Lorenz system from (1, 0, 0) and prints the loop time followed by every point.",
		Args:         cobra.NoArgs,
		SilenceUsage: true,
		RunE:         a.runReference,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&a.configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&a.preset, "preset", "", "use preset configuration")
	pf.BoolVarP(&a.verbose, "verbose", "v", false, "debug logging on stderr")
	pf.BoolVar(&a.metrics, "metrics", false, "print run metrics on stderr")

	pf.StringVar(&a.integrator, "integrator", def.Integrator, "integrator (rk4, euler)")
	pf.IntVar(&a.steps, "steps", def.Steps, "number of stored points, seed included")
	pf.Float64Var(&a.dt, "dt", def.Dt, "timestep")
	pf.Float64Var(&a.duration, "duration", 0, "simulated time; derives --steps")
	pf.Float64Var(&a.sigma, "sigma", def.Params.Sigma, "sigma")
	pf.Float64Var(&a.rho, "rho", def.Params.Rho, "rho")
	pf.Float64Var(&a.beta, "beta", def.Params.Beta, "beta")
	pf.Float64Var(&a.x0, "x0", def.Initial.X, "initial x")
	pf.Float64Var(&a.y0, "y0", def.Initial.Y, "initial y")
	pf.Float64Var(&a.z0, "z0", def.Initial.Z, "initial z")
	rootCmd.MarkFlagsMutuallyExclusive("steps", "duration")

	rootCmd.Flags().StringVar(&a.format, "format", def.Format, "output format (text, csv, json)")
	rootCmd.Flags().BoolVar(&a.noPoints, "no-points", false, "print only the elapsed time")

	rootCmd.AddCommand(
		a.benchCmd(),
		a.plotCmd(),
		a.phaseCmd(),
		a.liveCmd(),
		a.analyzeCmd(),
		a.compareCmd(),
		a.presetsCmd(),
		a.configCmd(),
		a.sweepCmd(),
	)
	return rootCmd
}

// resolveConfig layers defaults, preset, config file and explicitly set
// flags, in that order.
func (a *app) resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if a.preset != "" {
		cfg = config.GetPreset(a.preset)
		if cfg == nil {
			return nil, fmt.Errorf("%w: unknown preset %q (available: %v)", dynamo.ErrInvalidConfig, a.preset, config.ListPresets())
		}
	}

	if a.configFile != "" {
		loaded, err := config.LoadWithBase(a.configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("integrator") {
		cfg.Integrator = a.integrator
	}
	if flags.Changed("steps") {
		cfg.Steps = a.steps
		cfg.Duration = 0
	}
	if flags.Changed("dt") {
		cfg.Dt = a.dt
	}
	if flags.Changed("duration") {
		cfg.Duration = a.duration
	}
	if flags.Changed("sigma") {
		cfg.Params.Sigma = a.sigma
	}
	if flags.Changed("rho") {
		cfg.Params.Rho = a.rho
	}
	if flags.Changed("beta") {
		cfg.Params.Beta = a.beta
	}
	if flags.Changed("x0") {
		cfg.Initial.X = a.x0
	}
	if flags.Changed("y0") {
		cfg.Initial.Y = a.y0
	}
	if flags.Changed("z0") {
		cfg.Initial.Z = a.z0
	}
	if flags.Lookup("format") != nil && flags.Changed("format") {
		cfg.Format = a.format
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (a *app) logger(cmd *cobra.Command) *logrus.Logger {
	return logging.New(cmd.ErrOrStderr(), a.verbose)
}

// simulate runs cfg to completion. Metrics, when requested, are written to
// stderr even if the run fails.
func (a *app) simulate(cmd *cobra.Command, cfg *config.Config) (*sim.Result, error) {
	log := a.logger(cmd)
	rec := telemetry.NewRecorder(cfg.Integrator)

	exp := experiment.New(cfg)
	err := exp.Setup(experiment.NewRegistry(),
		sim.WithLogger(log.WithField("integrator", cfg.Integrator)),
		sim.WithObserver(rec),
	)
	if err != nil {
		return nil, err
	}

	result, err := exp.Run(cmd.Context())
	if a.metrics {
		if werr := rec.WriteText(cmd.ErrOrStderr()); werr != nil {
			log.WithError(werr).Warn("writing metrics failed")
		}
	}
	if err != nil {
		return nil, err
	}
	return result, nil
}

func (a *app) runReference(cmd *cobra.Command, args []string) error {
	cfg, err := a.resolveConfig(cmd)
	if err != nil {
		return err
	}

	result, err := a.simulate(cmd, cfg)
	if err != nil {
		return err
	}

	return report.Write(cmd.OutOrStdout(), report.NewRun(cfg, result), report.Options{
		Format:   cfg.Format,
		NoPoints: a.noPoints,
	})
}
