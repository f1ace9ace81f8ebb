package physics

import (
	"fmt"

	"github.com/san-kum/lorenz/internal/dynamo"
)

// Classical Lorenz parameters.
const (
	DefaultSigma = 10.0
	DefaultRho   = 28.0
	DefaultBeta  = 8.0 / 3.0
)

type Lorenz struct{ sigma, rho, beta float64 }

func NewLorenz() *Lorenz { return &Lorenz{DefaultSigma, DefaultRho, DefaultBeta} }

// NewLorenzWith builds a field with explicit parameters.
func NewLorenzWith(sigma, rho, beta float64) *Lorenz { return &Lorenz{sigma, rho, beta} }

// Derive calculates the Lorenz attractor derivatives.
func (l *Lorenz) Derive(p dynamo.Point3) dynamo.Point3 {
	x, y, z := p[0], p[1], p[2]
	return dynamo.Point3{l.sigma * (y - x), x*(l.rho-z) - y, x*y - l.beta*z}
}

func (l *Lorenz) DefaultState() dynamo.Point3 { return dynamo.Point3{1.0, 0.0, 0.0} }

func (l *Lorenz) GetParams() map[string]float64 {
	return map[string]float64{"sigma": l.sigma, "rho": l.rho, "beta": l.beta}
}

func (l *Lorenz) SetParam(n string, v float64) error {
	switch n {
	case "sigma":
		l.sigma = v
	case "rho":
		l.rho = v
	case "beta":
		l.beta = v
	default:
		return fmt.Errorf("%w: %q", dynamo.ErrUnknownParam, n)
	}
	return nil
}
