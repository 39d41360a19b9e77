package pde

import (
	"context"
	"fmt"

	"github.com/san-kum/pdelab/internal/field"
)

// Engine advances a PDE system with explicit forward Euler and produces a
// finite, lazy sequence of frames. Each call to Next performs Skip sub-steps
// and yields a snapshot; after Frames yields the sequence is exhausted.
type Engine struct {
	sys     System
	cfg     Config
	metrics []Metric

	u       []field.Field // live buffers, mutated in place
	du      []field.Field // derivative scratch
	t       float64
	frame   int
	history *History
	err     error
	done    bool
}

// New validates the configuration and initial state and prepares a run.
// The initial fields are copied; the caller's slices are not retained.
func New(sys System, init []field.Field, cfg Config) (*Engine, error) {
	if sys.GridSize() < 2 {
		return nil, fmt.Errorf("%w (got %d)", ErrGridTooSmall, sys.GridSize())
	}
	if cfg.Dt <= 0 {
		return nil, fmt.Errorf("%w (got %g)", ErrBadTimestep, cfg.Dt)
	}
	if cfg.Frames < 1 || cfg.Skip < 1 {
		return nil, fmt.Errorf("%w (frames=%d skip=%d)", ErrBadFrameCount, cfg.Frames, cfg.Skip)
	}
	if len(init) != sys.Components() {
		return nil, fmt.Errorf("%w: %d components, system wants %d", ErrShapeMismatch, len(init), sys.Components())
	}
	for c, f := range init {
		if len(f) != sys.GridSize() {
			return nil, fmt.Errorf("%w: component %d has %d points, system wants %d", ErrShapeMismatch, c, len(f), sys.GridSize())
		}
	}

	e := &Engine{
		sys:     sys,
		cfg:     cfg,
		u:       make([]field.Field, len(init)),
		du:      make([]field.Field, len(init)),
		history: newHistory(sys.Components(), sys.GridSize(), cfg.Frames),
	}
	for c := range init {
		e.u[c] = init[c].Clone()
		e.du[c] = make(field.Field, len(init[c]))
	}
	e.history.record(e.u, 0)
	return e, nil
}

func (e *Engine) AddMetric(m Metric) { e.metrics = append(e.metrics, m) }

// CheckStability reports whether the configured dt violates the system's
// explicit stability bound. Violation is advisory: the run proceeds and
// diverges the way the continuous scheme would.
func (e *Engine) CheckStability() error {
	sb, ok := e.sys.(StabilityBound)
	if !ok {
		return nil
	}
	if max := sb.MaxStableDt(); e.cfg.Dt >= max {
		return fmt.Errorf("%w: dt=%g, bound=%g", ErrUnstableDt, e.cfg.Dt, max)
	}
	return nil
}

// Next performs Skip sub-steps and yields the next frame. It returns ok=false
// once Frames frames have been produced or a validation error occurred; the
// sequence cannot be restarted. Yielded fields are copies.
func (e *Engine) Next() (Frame, bool) {
	if e.done || e.frame >= e.cfg.Frames {
		e.done = true
		return Frame{}, false
	}

	for s := 0; s < e.cfg.Skip; s++ {
		e.sys.Derive(e.du, e.u, e.t)
		for c := range e.u {
			uc, duc := e.u[c], e.du[c]
			for i := range uc {
				uc[i] += e.cfg.Dt * duc[i]
			}
		}
		e.t += e.cfg.Dt
	}
	e.frame++

	if e.cfg.Validate {
		for _, f := range e.u {
			if !f.IsValid() {
				e.err = &StepError{Frame: e.frame, Time: e.t, Wrapped: ErrDiverged}
				e.done = true
				return Frame{}, false
			}
		}
	}

	e.history.record(e.u, e.t)
	for _, m := range e.metrics {
		m.Observe(e.u, e.t)
	}

	snap := make([]field.Field, len(e.u))
	for c := range e.u {
		snap[c] = e.u[c].Clone()
	}
	return Frame{Index: e.frame, Time: e.t, Fields: snap}, true
}

// Err returns the error that terminated the sequence early, if any.
func (e *Engine) Err() error { return e.err }

// History returns the space-time record accumulated so far. Read-only for
// callers; rows keep growing until the sequence is exhausted.
func (e *Engine) History() *History { return e.history }

// Run drains the frame sequence to completion, honoring ctx cancellation,
// and returns the collected result.
func (e *Engine) Run(ctx context.Context) (*Result, error) {
	for _, m := range e.metrics {
		m.Reset()
	}
	for {
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		default:
		}
		if _, ok := e.Next(); !ok {
			break
		}
	}
	if e.err != nil {
		return nil, e.err
	}

	res := &Result{
		History: e.history,
		Metrics: make(map[string]float64),
		Frames:  e.frame,
	}
	for _, m := range e.metrics {
		res.Metrics[m.Name()] = m.Value()
	}
	return res, nil
}
