package config

import (
	"fmt"
	"io"
	"math"
	"os"

	"github.com/san-kum/lorenz/internal/dynamo"
	"github.com/san-kum/lorenz/internal/physics"
	"github.com/san-kum/lorenz/internal/sim"
	"github.com/shopspring/decimal"
	"gopkg.in/yaml.v3"
)

const (
	DefaultIntegrator = "rk4"
	DefaultFormat     = "text"

	// MaxPoints bounds the stored trajectory, seed included.
	MaxPoints = math.MaxInt32
)

// Formats lists the accepted output formats.
var Formats = []string{"text", "csv", "json"}

type Config struct {
	Integrator string          `yaml:"integrator"`
	Dt         float64         `yaml:"dt"`
	Steps      int             `yaml:"steps"`
	Duration   float64         `yaml:"duration,omitempty"`
	Initial    InitStateConfig `yaml:"initial"`
	Params     ParamsConfig    `yaml:"params"`
	Format     string          `yaml:"format"`
}

type InitStateConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
	Z float64 `yaml:"z"`
}

type ParamsConfig struct {
	Sigma float64 `yaml:"sigma" json:"sigma"`
	Rho   float64 `yaml:"rho" json:"rho"`
	Beta  float64 `yaml:"beta" json:"beta"`
}

func DefaultConfig() *Config {
	return &Config{
		Integrator: DefaultIntegrator,
		Dt:         sim.DefaultDt,
		Steps:      sim.DefaultSteps,
		Initial:    InitStateConfig{X: 1},
		Params: ParamsConfig{
			Sigma: physics.DefaultSigma,
			Rho:   physics.DefaultRho,
			Beta:  physics.DefaultBeta,
		},
		Format: DefaultFormat,
	}
}

// Load reads a YAML file on top of the defaults and validates the result.
func Load(path string) (*Config, error) {
	return LoadWithBase(path, DefaultConfig())
}

// LoadWithBase reads a YAML file on top of a copy of base. Keys missing from
// the file keep the base value, which lets a file refine a preset.
func LoadWithBase(path string, base *Config) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := *base
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return &cfg, nil
}

// Write encodes cfg as YAML.
func Write(w io.Writer, cfg *Config) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

func (c *Config) Validate() error {
	if c.Integrator == "" {
		return fmt.Errorf("%w: integrator is empty", dynamo.ErrInvalidConfig)
	}
	if !finite(c.Dt) || c.Dt <= 0 {
		return fmt.Errorf("%w: dt must be positive, got %v", dynamo.ErrInvalidConfig, c.Dt)
	}
	if !finite(c.Duration) || c.Duration < 0 {
		return fmt.Errorf("%w: duration must not be negative, got %v", dynamo.ErrInvalidConfig, c.Duration)
	}
	if c.Duration == 0 && (c.Steps < 1 || c.Steps > MaxPoints) {
		return fmt.Errorf("%w: steps must be in [1, %d], got %d", dynamo.ErrInvalidConfig, MaxPoints, c.Steps)
	}
	if c.Duration > 0 && c.intervals().GreaterThanOrEqual(decimal.NewFromInt(MaxPoints)) {
		return fmt.Errorf("%w: duration %v at dt %v needs more than %d points", dynamo.ErrInvalidConfig, c.Duration, c.Dt, MaxPoints)
	}
	for name, v := range map[string]float64{
		"initial.x": c.Initial.X, "initial.y": c.Initial.Y, "initial.z": c.Initial.Z,
		"params.sigma": c.Params.Sigma, "params.rho": c.Params.Rho, "params.beta": c.Params.Beta,
	} {
		if !finite(v) {
			return fmt.Errorf("%w: %s is not finite", dynamo.ErrInvalidConfig, name)
		}
	}
	if !knownFormat(c.Format) {
		return fmt.Errorf("%w: unknown format %q (want one of %v)", dynamo.ErrInvalidConfig, c.Format, Formats)
	}
	return nil
}

// StepCount is the number of stored points, seed included. It is only
// meaningful on a validated config. A positive
// duration takes precedence over Steps and yields floor(duration/dt)+1
// points. The division is done in decimal so that 10/0.01 is exactly 1000.
func (c *Config) StepCount() int {
	if c.Duration <= 0 {
		return c.Steps
	}
	return int(c.intervals().IntPart()) + 1
}

func (c *Config) intervals() decimal.Decimal {
	return decimal.NewFromFloat(c.Duration).Div(decimal.NewFromFloat(c.Dt)).Floor()
}

func (c *Config) SimConfig() sim.Config {
	return sim.Config{Steps: c.StepCount(), Dt: c.Dt}
}

func (c *Config) InitialPoint() dynamo.Point3 {
	return dynamo.Point3{c.Initial.X, c.Initial.Y, c.Initial.Z}
}

// Field builds the Lorenz field for the configured parameters.
func (c *Config) Field() *physics.Lorenz {
	return physics.NewLorenzWith(c.Params.Sigma, c.Params.Rho, c.Params.Beta)
}

func finite(v float64) bool { return !math.IsNaN(v) && !math.IsInf(v, 0) }

func knownFormat(f string) bool {
	for _, known := range Formats {
		if f == known {
			return true
		}
	}
	return false
}
