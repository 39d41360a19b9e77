package experiment

import (
	"fmt"
	"math"
	"sort"

	"github.com/san-kum/pdelab/internal/config"
	"github.com/san-kum/pdelab/internal/field"
	"github.com/san-kum/pdelab/internal/metrics"
	"github.com/san-kum/pdelab/internal/models"
	"github.com/san-kum/pdelab/internal/pde"
)

type Registry struct {
	builders map[string]func(cfg *config.Config) (pde.System, error)
}

func NewRegistry() *Registry {
	r := &Registry{builders: make(map[string]func(cfg *config.Config) (pde.System, error))}

	r.builders["fisher"] = func(cfg *config.Config) (pde.System, error) {
		p := cfg.Params
		return models.NewFisher(cfg.N, cfg.Length, p.Diffusion, p.Growth, p.Capacity), nil
	}
	r.builders["heat"] = func(cfg *config.Config) (pde.System, error) {
		bc, err := field.ParseBoundary(cfg.Boundary)
		if err != nil {
			return nil, err
		}
		return models.NewHeat(cfg.N, cfg.Length, cfg.Params.Diffusion, bc), nil
	}
	r.builders["grayscott"] = func(cfg *config.Config) (pde.System, error) {
		p := cfg.Params
		return models.NewGrayScott(cfg.N, cfg.Length, p.Diffusion, p.DiffusionV, p.Feed, p.Kill), nil
	}
	r.builders["kdv"] = func(cfg *config.Config) (pde.System, error) {
		return models.NewKdV(cfg.N, cfg.Length, cfg.Params.Speed), nil
	}
	r.builders["stochastic"] = func(cfg *config.Config) (pde.System, error) {
		p := cfg.Params
		return models.NewStochasticFisher(cfg.N, cfg.Length, p.Diffusion, p.Growth, p.Capacity, p.Noise, cfg.Timestep(), cfg.Seed), nil
	}

	return r
}

func (r *Registry) GetSystem(cfg *config.Config) (pde.System, error) {
	fn, ok := r.builders[cfg.Model]
	if !ok {
		return nil, fmt.Errorf("unknown model: %s", cfg.Model)
	}
	return fn(cfg)
}

func (r *Registry) ListModels() []string {
	names := make([]string, 0, len(r.builders))
	for name := range r.builders {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// InitialState builds the starting fields for sys from cfg.Init, falling
// back to the system's own default profile.
func (r *Registry) InitialState(sys pde.System, cfg *config.Config) ([]field.Field, error) {
	type defaulter interface{ DefaultState() []field.Field }

	switch cfg.Init.Shape {
	case "", "default":
		d, ok := sys.(defaulter)
		if !ok {
			return nil, fmt.Errorf("model %s has no default initial state", sys.Name())
		}
		return d.DefaultState(), nil
	case "pulse":
		f := field.Pulse(cfg.N, cfg.Length, cfg.Init.From*cfg.Length, cfg.Init.To*cfg.Length, cfg.Init.Amplitude)
		return padComponents(sys, f), nil
	case "uniform":
		return padComponents(sys, field.Uniform(cfg.N, cfg.Init.Amplitude)), nil
	case "gaussian":
		c, w := 0.5*cfg.Length, 0.1*cfg.Length
		amp := cfg.Init.Amplitude
		if amp == 0 {
			amp = 1
		}
		f := field.FromFunc(cfg.N, cfg.Length, func(x float64) float64 {
			return amp * math.Exp(-(x-c)*(x-c)/(2*w*w))
		})
		return padComponents(sys, f), nil
	case "soliton":
		k, ok := sys.(*models.KdV)
		if !ok {
			return nil, fmt.Errorf("soliton initial state requires the kdv model, got %s", sys.Name())
		}
		return k.DefaultState(), nil
	}
	return nil, fmt.Errorf("unknown initial shape: %q", cfg.Init.Shape)
}

// padComponents puts f in component 0 and zero fields in the rest.
func padComponents(sys pde.System, f field.Field) []field.Field {
	out := make([]field.Field, sys.Components())
	out[0] = f
	for c := 1; c < len(out); c++ {
		out[c] = field.Uniform(sys.GridSize(), 0)
	}
	return out
}

// DefaultMetrics is the standard observer set attached to every run.
func (r *Registry) DefaultMetrics(cfg *config.Config) []pde.Metric {
	ms := []pde.Metric{
		metrics.NewTotalMass(0, cfg.Dx()),
		metrics.NewPeakValue(0),
	}
	if cfg.Model == "fisher" || cfg.Model == "stochastic" {
		ms = append(ms, metrics.NewSteadyStateError(0, cfg.Params.Capacity))
	}
	return ms
}
