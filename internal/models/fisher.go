package models

import (
	"fmt"

	"github.com/san-kum/pdelab/internal/field"
)

// Fisher is the logistic-diffusion (Fisher-KPP) equation
//
//	u_t = D u_xx + a u (1 - u/K)
//
// on [0, Length] with reflecting (no-flux) boundaries. The diffusion
// coefficient is folded into the rescaled constant d = D/dx² so the update
// uses the raw second difference.
type Fisher struct {
	n         int
	length    float64
	dx        float64
	Diffusion float64 // D
	Growth    float64 // a
	Capacity  float64 // K

	lap field.Field
}

func NewFisher(n int, length, diffusion, growth, capacity float64) *Fisher {
	return &Fisher{
		n:         n,
		length:    length,
		dx:        length / float64(n-1),
		Diffusion: diffusion,
		Growth:    growth,
		Capacity:  capacity,
		lap:       make(field.Field, n),
	}
}

func (f *Fisher) Name() string    { return "fisher" }
func (f *Fisher) Components() int { return 1 }
func (f *Fisher) GridSize() int   { return f.n }
func (f *Fisher) Dx() float64     { return f.dx }

// Rescaled returns d = D/dx², the coefficient multiplying the raw second
// difference.
func (f *Fisher) Rescaled() float64 { return f.Diffusion / (f.dx * f.dx) }

// MaxStableDt is the explicit-Euler diffusion bound d*dt < 0.5.
func (f *Fisher) MaxStableDt() float64 { return 0.5 / f.Rescaled() }

func (f *Fisher) Derive(dst, u []field.Field, t float64) {
	d := f.Rescaled()
	uc, out := u[0], dst[0]
	field.LaplacianInto(f.lap, uc, field.Reflecting)
	for i := range uc {
		out[i] = d*f.lap[i] + f.Growth*uc[i]*(1-uc[i]/f.Capacity)
	}
}

// DefaultState is a rectangular pulse of 1.2*K on x in [0.6L, 0.7L].
func (f *Fisher) DefaultState() []field.Field {
	return []field.Field{
		field.Pulse(f.n, f.length, 0.6*f.length, 0.7*f.length, 1.2*f.Capacity),
	}
}

func (f *Fisher) GetParams() map[string]float64 {
	return map[string]float64{
		"diffusion": f.Diffusion,
		"growth":    f.Growth,
		"capacity":  f.Capacity,
	}
}

func (f *Fisher) SetParam(name string, v float64) error {
	switch name {
	case "diffusion":
		f.Diffusion = v
	case "growth":
		f.Growth = v
	case "capacity":
		f.Capacity = v
	default:
		return fmt.Errorf("fisher: unknown parameter %q", name)
	}
	return nil
}
