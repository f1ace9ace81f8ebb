package physics

import (
	"errors"
	"testing"

	"github.com/san-kum/lorenz/internal/dynamo"
)

func TestLorenzDerive(t *testing.T) {
	l := NewLorenz()
	beta := DefaultBeta

	tests := []struct {
		name string
		in   dynamo.Point3
		want dynamo.Point3
	}{
		{"origin is fixed", dynamo.Point3{0, 0, 0}, dynamo.Point3{0, 0, 0}},
		{"seed", dynamo.Point3{1, 0, 0}, dynamo.Point3{-10, 28, 0}},
		{"unit", dynamo.Point3{1, 1, 1}, dynamo.Point3{0, 26, 1 - beta}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.Derive(tt.in); got != tt.want {
				t.Errorf("Derive(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestLorenzParams(t *testing.T) {
	l := NewLorenz()
	params := l.GetParams()
	if params["sigma"] != 10 || params["rho"] != 28 || params["beta"] != 8.0/3.0 {
		t.Fatalf("unexpected defaults: %v", params)
	}

	if err := l.SetParam("beta", 2); err != nil {
		t.Fatalf("SetParam: %v", err)
	}
	if got := l.Derive(dynamo.Point3{0, 0, 1}); got[2] != -2 {
		t.Errorf("beta not applied: dz = %v", got[2])
	}

	err := l.SetParam("gamma", 1)
	if !errors.Is(err, dynamo.ErrUnknownParam) {
		t.Errorf("expected ErrUnknownParam, got %v", err)
	}
}

func TestLorenzDefaultState(t *testing.T) {
	if s := NewLorenz().DefaultState(); s != (dynamo.Point3{1, 0, 0}) {
		t.Errorf("DefaultState() = %v", s)
	}
}
