package metrics

import (
	"math"

	"github.com/san-kum/pdelab/internal/field"
)

// TotalMass tracks the discrete integral of one component over the domain,
// averaged across all observed frames. For conservative schemes the average
// equals the initial mass.
type TotalMass struct {
	component int
	dx        float64
	sum       float64
	samples   int
}

func NewTotalMass(component int, dx float64) *TotalMass {
	return &TotalMass{component: component, dx: dx}
}

func (m *TotalMass) Name() string { return "total_mass" }

func (m *TotalMass) Observe(u []field.Field, t float64) {
	if m.component >= len(u) {
		return
	}
	m.sum += u[m.component].Sum() * m.dx
	m.samples++
}

func (m *TotalMass) Value() float64 {
	if m.samples == 0 {
		return 0
	}
	return m.sum / float64(m.samples)
}

func (m *TotalMass) Reset() {
	m.sum = 0
	m.samples = 0
}

// PeakValue records the largest sample seen in one component across the run.
type PeakValue struct {
	component int
	peak      float64
	seen      bool
}

func NewPeakValue(component int) *PeakValue {
	return &PeakValue{component: component}
}

func (m *PeakValue) Name() string { return "peak_value" }

func (m *PeakValue) Observe(u []field.Field, t float64) {
	if m.component >= len(u) {
		return
	}
	max := u[m.component].Max()
	if !m.seen || max > m.peak {
		m.peak = max
		m.seen = true
	}
}

func (m *PeakValue) Value() float64 { return m.peak }

func (m *PeakValue) Reset() {
	m.peak = 0
	m.seen = false
}

// SteadyStateError measures the final root-mean-square distance of one
// component from a target equilibrium value, e.g. the carrying capacity.
type SteadyStateError struct {
	component int
	target    float64
	last      float64
}

func NewSteadyStateError(component int, target float64) *SteadyStateError {
	return &SteadyStateError{component: component, target: target}
}

func (m *SteadyStateError) Name() string { return "steady_state_error" }

func (m *SteadyStateError) Observe(u []field.Field, t float64) {
	if m.component >= len(u) {
		return
	}
	f := u[m.component]
	sum := 0.0
	for _, v := range f {
		d := v - m.target
		sum += d * d
	}
	m.last = math.Sqrt(sum / float64(len(f)))
}

func (m *SteadyStateError) Value() float64 { return m.last }

func (m *SteadyStateError) Reset() { m.last = 0 }
