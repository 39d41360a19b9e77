package experiment

import (
	"context"
	"fmt"

	"github.com/san-kum/pdelab/internal/config"
	"github.com/san-kum/pdelab/internal/pde"
)

// Experiment wires a configured system into an engine with the default
// metric set and runs it to completion.
type Experiment struct {
	cfg    *config.Config
	sys    pde.System
	engine *pde.Engine
}

func New(cfg *config.Config) *Experiment {
	return &Experiment{cfg: cfg}
}

// Setup builds the system, initial state, and engine. It returns any
// stability warning separately from hard errors so callers can report it
// and still run.
func (e *Experiment) Setup(registry *Registry) (warning error, err error) {
	sys, err := registry.GetSystem(e.cfg)
	if err != nil {
		return nil, err
	}
	e.sys = sys
	init, err := registry.InitialState(sys, e.cfg)
	if err != nil {
		return nil, err
	}

	engineCfg := pde.Config{
		Dt:       e.cfg.Timestep(),
		Frames:   e.cfg.Frames,
		Skip:     e.cfg.Skip,
		Validate: true,
	}
	e.engine, err = pde.New(sys, init, engineCfg)
	if err != nil {
		return nil, err
	}
	for _, m := range registry.DefaultMetrics(e.cfg) {
		e.engine.AddMetric(m)
	}
	return e.engine.CheckStability(), nil
}

func (e *Experiment) Run(ctx context.Context) (*pde.Result, error) {
	if e.engine == nil {
		return nil, fmt.Errorf("experiment not set up")
	}
	return e.engine.Run(ctx)
}

// Engine exposes the underlying engine for frame-by-frame consumption.
func (e *Experiment) Engine() *pde.Engine { return e.engine }

// System returns the constructed system, or nil before Setup.
func (e *Experiment) System() pde.System { return e.sys }
