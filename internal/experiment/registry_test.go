package experiment

import (
	"math"
	"reflect"
	"testing"

	"github.com/san-kum/pdelab/internal/config"
	"github.com/san-kum/pdelab/internal/models"
)

func TestRegistryListModels(t *testing.T) {
	r := NewRegistry()
	want := []string{"fisher", "grayscott", "heat", "kdv", "stochastic"}

	if got := r.ListModels(); !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

func TestRegistryGetSystem(t *testing.T) {
	r := NewRegistry()

	for _, name := range r.ListModels() {
		cfg := config.DefaultConfig()
		cfg.Model = name
		sys, err := r.GetSystem(cfg)
		if err != nil {
			t.Fatalf("%s: unexpected error: %v", name, err)
		}
		if sys.Name() != name {
			t.Errorf("expected system name %s, got %s", name, sys.Name())
		}
		if sys.GridSize() != cfg.N {
			t.Errorf("%s: expected grid size %d, got %d", name, cfg.N, sys.GridSize())
		}
	}
}

func TestRegistryUnknownModel(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Model = "navier-stokes"

	if _, err := r.GetSystem(cfg); err == nil {
		t.Error("expected error for unknown model")
	}
}

func TestRegistryBadBoundary(t *testing.T) {
	r := NewRegistry()
	cfg := config.DefaultConfig()
	cfg.Model = "heat"
	cfg.Boundary = "absorbing"

	if _, err := r.GetSystem(cfg); err == nil {
		t.Error("expected error for unknown boundary condition")
	}
}

func TestInitialStateShapes(t *testing.T) {
	r := NewRegistry()

	t.Run("default", func(t *testing.T) {
		cfg := config.DefaultConfig()
		sys, _ := r.GetSystem(cfg)
		init, err := r.InitialState(sys, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		want := 1.2 * cfg.Params.Capacity
		if got := init[0].Max(); math.Abs(got-want) > 1e-12 {
			t.Errorf("expected default pulse amplitude %g, got %g", want, got)
		}
	})

	t.Run("pulse", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Init = config.InitConfig{Shape: "pulse", From: 0.2, To: 0.4, Amplitude: 2.5}
		sys, _ := r.GetSystem(cfg)
		init, err := r.InitialState(sys, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := init[0].Max(); got != 2.5 {
			t.Errorf("expected pulse amplitude 2.5, got %g", got)
		}
		if init[0][0] != 0 {
			t.Errorf("expected zero outside the pulse, got %g", init[0][0])
		}
	})

	t.Run("uniform", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Init = config.InitConfig{Shape: "uniform", Amplitude: 6}
		sys, _ := r.GetSystem(cfg)
		init, err := r.InitialState(sys, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if init[0].Min() != 6 || init[0].Max() != 6 {
			t.Errorf("expected uniform 6, got [%g, %g]", init[0].Min(), init[0].Max())
		}
	})

	t.Run("gaussian", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Model = "heat"
		cfg.Init = config.InitConfig{Shape: "gaussian"}
		sys, _ := r.GetSystem(cfg)
		init, err := r.InitialState(sys, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := init[0].Max(); math.Abs(got-1) > 0.01 {
			t.Errorf("expected unit peak, got %g", got)
		}
	})

	t.Run("pads extra components", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Model = "grayscott"
		cfg.Init = config.InitConfig{Shape: "uniform", Amplitude: 1}
		sys, _ := r.GetSystem(cfg)
		init, err := r.InitialState(sys, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if len(init) != 2 {
			t.Fatalf("expected 2 components, got %d", len(init))
		}
		if init[1].Max() != 0 {
			t.Errorf("expected zero-padded second component, got %g", init[1].Max())
		}
	})

	t.Run("soliton requires kdv", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Init = config.InitConfig{Shape: "soliton"}
		sys, _ := r.GetSystem(cfg)
		if _, err := r.InitialState(sys, cfg); err == nil {
			t.Error("expected error for soliton on a non-kdv model")
		}
	})

	t.Run("soliton", func(t *testing.T) {
		cfg := config.GetPreset("kdv", "soliton")
		sys, _ := r.GetSystem(cfg)
		init, err := r.InitialState(sys, cfg)
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if _, ok := sys.(*models.KdV); !ok {
			t.Fatal("expected a kdv system")
		}
		if got := init[0].Max(); math.Abs(got-cfg.Params.Speed/2) > 0.1 {
			t.Errorf("expected soliton amplitude ~%g, got %g", cfg.Params.Speed/2, got)
		}
	})

	t.Run("unknown shape", func(t *testing.T) {
		cfg := config.DefaultConfig()
		cfg.Init.Shape = "sawtooth"
		sys, _ := r.GetSystem(cfg)
		if _, err := r.InitialState(sys, cfg); err == nil {
			t.Error("expected error for unknown shape")
		}
	})
}

func TestDefaultMetrics(t *testing.T) {
	r := NewRegistry()

	cfg := config.DefaultConfig()
	ms := r.DefaultMetrics(cfg)
	names := make(map[string]bool)
	for _, m := range ms {
		names[m.Name()] = true
	}
	if !names["total_mass"] || !names["peak_value"] || !names["steady_state_error"] {
		t.Errorf("fisher metric set incomplete: %v", names)
	}

	cfg.Model = "heat"
	if got := len(r.DefaultMetrics(cfg)); got != 2 {
		t.Errorf("expected 2 metrics for heat, got %d", got)
	}
}
