package pde

import (
	"github.com/san-kum/pdelab/internal/field"
)

// System is a one-dimensional PDE right-hand side du/dt = f(u, t),
// discretized on a fixed grid. Multi-species systems carry one field per
// component.
type System interface {
	Name() string
	Components() int
	GridSize() int

	// Derive writes the time derivative of every component into dst.
	// dst and u have Components() fields of GridSize() samples each; dst
	// must not alias u. Boundary conditions are the system's own concern.
	Derive(dst, u []field.Field, t float64)
}

// StabilityBound is implemented by systems that know the largest sub-step
// size for which explicit Euler stays stable.
type StabilityBound interface {
	MaxStableDt() float64
}

// Configurable is implemented by systems whose parameters can be tuned
// while a live view is running.
type Configurable interface {
	GetParams() map[string]float64
	SetParam(name string, value float64) error
}

// Metric observes every produced frame and reduces it to a single number
// reported in the run result.
type Metric interface {
	Name() string
	Observe(u []field.Field, t float64)
	Value() float64
	Reset()
}

// Config holds the run parameters of a single simulation.
type Config struct {
	// Dt is the integration sub-step size.
	Dt float64
	// Frames is the number of snapshots the engine produces.
	Frames int
	// Skip is the number of sub-steps between consecutive snapshots.
	Skip int
	// Validate enables a NaN/Inf check after each produced frame.
	Validate bool
}

func DefaultConfig() Config {
	return Config{
		Dt:       0.01,
		Frames:   500,
		Skip:     1,
		Validate: true,
	}
}

// Frame is one yielded snapshot. Fields are copies of the engine's internal
// buffers, safe to retain across subsequent steps.
type Frame struct {
	Index  int
	Time   float64
	Fields []field.Field
}

// Result is the completed record of a run.
type Result struct {
	History *History
	Metrics map[string]float64
	Frames  int
}

// History is the space-time record of a run: one row per produced frame,
// plus row 0 holding the initial condition. Row k is the state after
// k*Skip sub-steps, at time k*Skip*dt.
type History struct {
	Components int
	N          int
	Times      []float64
	rows       [][]field.Field
}

func newHistory(components, n, frames int) *History {
	return &History{
		Components: components,
		N:          n,
		Times:      make([]float64, 0, frames+1),
		rows:       make([][]field.Field, 0, frames+1),
	}
}

func (h *History) record(u []field.Field, t float64) {
	row := make([]field.Field, len(u))
	for c := range u {
		row[c] = u[c].Clone()
	}
	h.rows = append(h.rows, row)
	h.Times = append(h.Times, t)
}

// Rows returns the number of recorded rows (frames + 1).
func (h *History) Rows() int { return len(h.rows) }

// Row returns the recorded fields of row k. Callers must not mutate them.
func (h *History) Row(k int) []field.Field { return h.rows[k] }

// Component returns the full trajectory of one component as a rows × N
// matrix backed by the recorded fields.
func (h *History) Component(c int) [][]float64 {
	m := make([][]float64, len(h.rows))
	for k, row := range h.rows {
		m[k] = row[c]
	}
	return m
}
