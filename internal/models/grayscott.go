package models

import (
	"fmt"

	"github.com/san-kum/pdelab/internal/field"
)

// GrayScott is the two-species Gray-Scott reaction-diffusion system
//
//	u_t = Du u_xx - u v² + F (1 - u)
//	v_t = Dv v_xx + u v² - (F + k) v
//
// on a periodic domain. Component 0 is the substrate u, component 1 the
// activator v. Suitable parameter windows produce self-replicating pulses
// even in one dimension.
type GrayScott struct {
	n          int
	length     float64
	dx         float64
	DiffusionU float64
	DiffusionV float64
	Feed       float64 // F
	Kill       float64 // k

	lapU, lapV field.Field
}

func NewGrayScott(n int, length, du, dv, feed, kill float64) *GrayScott {
	return &GrayScott{
		n:          n,
		length:     length,
		dx:         length / float64(n-1),
		DiffusionU: du,
		DiffusionV: dv,
		Feed:       feed,
		Kill:       kill,
		lapU:       make(field.Field, n),
		lapV:       make(field.Field, n),
	}
}

func (g *GrayScott) Name() string    { return "grayscott" }
func (g *GrayScott) Components() int { return 2 }
func (g *GrayScott) GridSize() int   { return g.n }
func (g *GrayScott) Dx() float64     { return g.dx }

// MaxStableDt uses the faster-diffusing species; the reaction terms are mild
// in the usual parameter windows.
func (g *GrayScott) MaxStableDt() float64 {
	d := g.DiffusionU
	if g.DiffusionV > d {
		d = g.DiffusionV
	}
	return 0.5 * g.dx * g.dx / d
}

func (g *GrayScott) Derive(dst, u []field.Field, t float64) {
	uu, vv := u[0], u[1]
	du, dv := dst[0], dst[1]
	cu := g.DiffusionU / (g.dx * g.dx)
	cv := g.DiffusionV / (g.dx * g.dx)
	field.LaplacianInto(g.lapU, uu, field.Periodic)
	field.LaplacianInto(g.lapV, vv, field.Periodic)
	for i := range uu {
		reaction := uu[i] * vv[i] * vv[i]
		du[i] = cu*g.lapU[i] - reaction + g.Feed*(1-uu[i])
		dv[i] = cv*g.lapV[i] + reaction - (g.Feed+g.Kill)*vv[i]
	}
}

// DefaultState is the trivial steady state (u=1, v=0) with a seeded band in
// the middle fifth of the domain.
func (g *GrayScott) DefaultState() []field.Field {
	u := field.Uniform(g.n, 1)
	v := field.Uniform(g.n, 0)
	lo, hi := 0.4*g.length, 0.6*g.length
	for i, x := range field.Coords(g.n, g.length) {
		if x >= lo && x <= hi {
			u[i] = 0.5
			v[i] = 0.25
		}
	}
	return []field.Field{u, v}
}

func (g *GrayScott) GetParams() map[string]float64 {
	return map[string]float64{
		"diffusion_u": g.DiffusionU,
		"diffusion_v": g.DiffusionV,
		"feed":        g.Feed,
		"kill":        g.Kill,
	}
}

func (g *GrayScott) SetParam(name string, v float64) error {
	switch name {
	case "diffusion_u":
		g.DiffusionU = v
	case "diffusion_v":
		g.DiffusionV = v
	case "feed":
		g.Feed = v
	case "kill":
		g.Kill = v
	default:
		return fmt.Errorf("grayscott: unknown parameter %q", name)
	}
	return nil
}
