package models

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/san-kum/pdelab/internal/field"
)

// StochasticFisher is the logistic-diffusion equation with multiplicative
// demographic noise, integrated Euler-Maruyama style:
//
//	du = (D u_xx + a u (1 - u/K)) dt + σ u dW
//
// The engine multiplies Derive output by dt, so the noise term is emitted
// pre-divided by √dt; the engine's product then carries the correct √dt
// scaling. Runs are deterministic for a fixed seed.
type StochasticFisher struct {
	n         int
	length    float64
	dx        float64
	dt        float64
	Diffusion float64
	Growth    float64
	Capacity  float64
	Noise     float64 // σ

	rng *rand.Rand
	lap field.Field
}

func NewStochasticFisher(n int, length, diffusion, growth, capacity, noise, dt float64, seed int64) *StochasticFisher {
	return &StochasticFisher{
		n:         n,
		length:    length,
		dx:        length / float64(n-1),
		dt:        dt,
		Diffusion: diffusion,
		Growth:    growth,
		Capacity:  capacity,
		Noise:     noise,
		rng:       rand.New(rand.NewSource(seed)),
		lap:       make(field.Field, n),
	}
}

func (s *StochasticFisher) Name() string    { return "stochastic" }
func (s *StochasticFisher) Components() int { return 1 }
func (s *StochasticFisher) GridSize() int   { return s.n }
func (s *StochasticFisher) Dx() float64     { return s.dx }

func (s *StochasticFisher) MaxStableDt() float64 {
	return 0.5 * s.dx * s.dx / s.Diffusion
}

func (s *StochasticFisher) Derive(dst, u []field.Field, t float64) {
	d := s.Diffusion / (s.dx * s.dx)
	scale := s.Noise / math.Sqrt(s.dt)
	uc, out := u[0], dst[0]
	field.LaplacianInto(s.lap, uc, field.Reflecting)
	for i := range uc {
		drift := d*s.lap[i] + s.Growth*uc[i]*(1-uc[i]/s.Capacity)
		out[i] = drift + scale*uc[i]*s.rng.NormFloat64()
	}
}

// DefaultState starts every point at a tenth of the carrying capacity, so
// trajectories show noisy logistic saturation.
func (s *StochasticFisher) DefaultState() []field.Field {
	return []field.Field{field.Uniform(s.n, 0.1*s.Capacity)}
}

func (s *StochasticFisher) GetParams() map[string]float64 {
	return map[string]float64{
		"diffusion": s.Diffusion,
		"growth":    s.Growth,
		"capacity":  s.Capacity,
		"noise":     s.Noise,
	}
}

func (s *StochasticFisher) SetParam(name string, v float64) error {
	switch name {
	case "diffusion":
		s.Diffusion = v
	case "growth":
		s.Growth = v
	case "capacity":
		s.Capacity = v
	case "noise":
		s.Noise = v
	default:
		return fmt.Errorf("stochastic: unknown parameter %q", name)
	}
	return nil
}
