package models

import (
	"fmt"
	"math"

	"github.com/san-kum/pdelab/internal/field"
)

// Heat is the pure diffusion equation u_t = D u_xx with a selectable
// boundary condition. It exists mainly to exercise all three boundary
// closures end to end.
type Heat struct {
	n         int
	length    float64
	dx        float64
	Diffusion float64
	BC        field.Boundary

	lap field.Field
}

func NewHeat(n int, length, diffusion float64, bc field.Boundary) *Heat {
	return &Heat{
		n:         n,
		length:    length,
		dx:        length / float64(n-1),
		Diffusion: diffusion,
		BC:        bc,
		lap:       make(field.Field, n),
	}
}

func (h *Heat) Name() string    { return "heat" }
func (h *Heat) Components() int { return 1 }
func (h *Heat) GridSize() int   { return h.n }
func (h *Heat) Dx() float64     { return h.dx }

func (h *Heat) MaxStableDt() float64 { return 0.5 * h.dx * h.dx / h.Diffusion }

func (h *Heat) Derive(dst, u []field.Field, t float64) {
	d := h.Diffusion / (h.dx * h.dx)
	field.LaplacianInto(h.lap, u[0], h.BC)
	for i := range u[0] {
		dst[0][i] = d * h.lap[i]
	}
}

// DefaultState is a unit gaussian bump centered on the domain.
func (h *Heat) DefaultState() []field.Field {
	c, w := 0.5*h.length, 0.1*h.length
	return []field.Field{
		field.FromFunc(h.n, h.length, func(x float64) float64 {
			return math.Exp(-(x - c) * (x - c) / (2 * w * w))
		}),
	}
}

func (h *Heat) GetParams() map[string]float64 {
	return map[string]float64{"diffusion": h.Diffusion}
}

func (h *Heat) SetParam(name string, v float64) error {
	if name != "diffusion" {
		return fmt.Errorf("heat: unknown parameter %q", name)
	}
	h.Diffusion = v
	return nil
}
