package pde

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/san-kum/pdelab/internal/field"
)

// logisticSystem is a reaction-only test system du/dt = a u (1 - u/K),
// independently solvable in closed form.
type logisticSystem struct {
	n        int
	growth   float64
	capacity float64
}

func (s *logisticSystem) Name() string    { return "logistic" }
func (s *logisticSystem) Components() int { return 1 }
func (s *logisticSystem) GridSize() int   { return s.n }

func (s *logisticSystem) Derive(dst, u []field.Field, t float64) {
	for i, v := range u[0] {
		dst[0][i] = s.growth * v * (1 - v/s.capacity)
	}
}

func (s *logisticSystem) MaxStableDt() float64 { return 1.0 / s.growth }

// blowupSystem produces an overflow within a few steps.
type blowupSystem struct{ n int }

func (s *blowupSystem) Name() string    { return "blowup" }
func (s *blowupSystem) Components() int { return 1 }
func (s *blowupSystem) GridSize() int   { return s.n }

func (s *blowupSystem) Derive(dst, u []field.Field, t float64) {
	for i, v := range u[0] {
		dst[0][i] = v * v * 1e30
	}
}

func newLogisticEngine(t *testing.T, cfg Config) *Engine {
	t.Helper()
	sys := &logisticSystem{n: 4, growth: 2, capacity: 4}
	init := []field.Field{field.Uniform(4, 1)}
	e, err := New(sys, init, cfg)
	if err != nil {
		t.Fatalf("engine setup failed: %v", err)
	}
	return e
}

func TestNewInvalidConfig(t *testing.T) {
	sys := &logisticSystem{n: 4, growth: 2, capacity: 4}
	init := []field.Field{field.Uniform(4, 1)}

	tests := []struct {
		name string
		sys  System
		init []field.Field
		cfg  Config
		want error
	}{
		{"tiny grid", &logisticSystem{n: 1, growth: 2, capacity: 4}, []field.Field{field.Uniform(1, 1)}, Config{Dt: 0.01, Frames: 10, Skip: 1}, ErrGridTooSmall},
		{"zero dt", sys, init, Config{Dt: 0, Frames: 10, Skip: 1}, ErrBadTimestep},
		{"negative dt", sys, init, Config{Dt: -0.1, Frames: 10, Skip: 1}, ErrBadTimestep},
		{"zero frames", sys, init, Config{Dt: 0.01, Frames: 0, Skip: 1}, ErrBadFrameCount},
		{"zero skip", sys, init, Config{Dt: 0.01, Frames: 10, Skip: 0}, ErrBadFrameCount},
		{"missing component", sys, nil, Config{Dt: 0.01, Frames: 10, Skip: 1}, ErrShapeMismatch},
		{"wrong grid size", sys, []field.Field{field.Uniform(5, 1)}, Config{Dt: 0.01, Frames: 10, Skip: 1}, ErrShapeMismatch},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(tt.sys, tt.init, tt.cfg)
			if !errors.Is(err, tt.want) {
				t.Errorf("expected %v, got %v", tt.want, err)
			}
		})
	}
}

func TestHistoryRowZeroIsInitialCondition(t *testing.T) {
	sys := &logisticSystem{n: 4, growth: 2, capacity: 4}
	init := []field.Field{{0.5, 1, 2, 3}}
	e, err := New(sys, init, Config{Dt: 0.01, Frames: 5, Skip: 1})
	if err != nil {
		t.Fatalf("engine setup failed: %v", err)
	}

	row := e.History().Row(0)
	for i, v := range row[0] {
		if v != init[0][i] {
			t.Errorf("row 0 point %d: expected %f, got %f", i, init[0][i], v)
		}
	}
	if e.History().Times[0] != 0 {
		t.Errorf("row 0 time: expected 0, got %f", e.History().Times[0])
	}

	// The caller's slice must not be retained.
	init[0][0] = 99
	if e.History().Row(0)[0][0] == 99 {
		t.Error("engine retained the caller's initial slice")
	}
}

func TestFrameSequenceExhaustion(t *testing.T) {
	e := newLogisticEngine(t, Config{Dt: 0.001, Frames: 7, Skip: 3})

	count := 0
	for {
		frame, ok := e.Next()
		if !ok {
			break
		}
		count++
		if frame.Index != count {
			t.Errorf("expected frame index %d, got %d", count, frame.Index)
		}
		wantT := float64(count) * 3 * 0.001
		if math.Abs(frame.Time-wantT) > 1e-12 {
			t.Errorf("frame %d: expected time %g, got %g", count, wantT, frame.Time)
		}
	}

	if count != 7 {
		t.Errorf("expected 7 frames, got %d", count)
	}
	if e.History().Rows() != 8 {
		t.Errorf("expected 8 history rows, got %d", e.History().Rows())
	}
	if e.Err() != nil {
		t.Errorf("unexpected error: %v", e.Err())
	}

	// Exhausted for good: further calls keep failing.
	for i := 0; i < 3; i++ {
		if _, ok := e.Next(); ok {
			t.Fatal("expected exhausted sequence to stay exhausted")
		}
	}
}

func TestLogisticClosedForm(t *testing.T) {
	growth, capacity, u0 := 2.0, 4.0, 1.0
	dt, frames, skip := 5e-5, 100, 200 // integrates to t = 1

	e := newLogisticEngine(t, Config{Dt: dt, Frames: frames, Skip: skip})
	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	final := res.History.Row(res.History.Rows() - 1)[0][0]
	tEnd := res.History.Times[res.History.Rows()-1]

	exp := math.Exp(growth * tEnd)
	want := capacity * u0 * exp / (capacity + u0*(exp-1))
	if math.Abs(final-want) > 1e-3 {
		t.Errorf("expected u(%g) ~ %.6f, got %.6f", tEnd, want, final)
	}
}

func TestDeterministicReplay(t *testing.T) {
	cfg := Config{Dt: 0.003, Frames: 50, Skip: 2}
	a := newLogisticEngine(t, cfg)
	b := newLogisticEngine(t, cfg)

	if _, err := a.Run(context.Background()); err != nil {
		t.Fatalf("first run failed: %v", err)
	}
	if _, err := b.Run(context.Background()); err != nil {
		t.Fatalf("second run failed: %v", err)
	}

	ha, hb := a.History(), b.History()
	for k := 0; k < ha.Rows(); k++ {
		for i, v := range ha.Row(k)[0] {
			if v != hb.Row(k)[0][i] {
				t.Fatalf("row %d point %d differs between identical runs", k, i)
			}
		}
	}
}

func TestYieldedFramesAreCopies(t *testing.T) {
	e := newLogisticEngine(t, Config{Dt: 0.001, Frames: 3, Skip: 1})

	frame, ok := e.Next()
	if !ok {
		t.Fatal("expected a frame")
	}
	recorded := e.History().Row(1)[0][0]
	frame.Fields[0][0] = -1e9

	if e.History().Row(1)[0][0] != recorded {
		t.Error("mutating a yielded frame corrupted the history")
	}

	next, ok := e.Next()
	if !ok {
		t.Fatal("expected a second frame")
	}
	if next.Fields[0][0] < 0 {
		t.Error("mutating a yielded frame corrupted the live state")
	}
}

func TestDivergenceDetection(t *testing.T) {
	sys := &blowupSystem{n: 4}
	e, err := New(sys, []field.Field{field.Uniform(4, 1)}, Config{Dt: 1, Frames: 100, Skip: 1, Validate: true})
	if err != nil {
		t.Fatalf("engine setup failed: %v", err)
	}

	_, runErr := e.Run(context.Background())
	if runErr == nil {
		t.Fatal("expected divergence error")
	}
	if !errors.Is(runErr, ErrDiverged) {
		t.Errorf("expected ErrDiverged, got %v", runErr)
	}

	var step *StepError
	if !errors.As(runErr, &step) {
		t.Fatal("expected a StepError")
	}
	if step.Frame < 1 {
		t.Errorf("expected a positive failing frame, got %d", step.Frame)
	}
}

func TestCheckStability(t *testing.T) {
	stable := newLogisticEngine(t, Config{Dt: 0.01, Frames: 5, Skip: 1})
	if err := stable.CheckStability(); err != nil {
		t.Errorf("expected stable dt, got %v", err)
	}

	unstable := newLogisticEngine(t, Config{Dt: 0.6, Frames: 5, Skip: 1})
	if err := unstable.CheckStability(); !errors.Is(err, ErrUnstableDt) {
		t.Errorf("expected ErrUnstableDt, got %v", err)
	}

	// The warning is advisory: the sequence still advances.
	if _, ok := unstable.Next(); !ok {
		t.Error("expected the unstable engine to keep stepping")
	}
}

func TestRunHonorsContext(t *testing.T) {
	e := newLogisticEngine(t, Config{Dt: 0.001, Frames: 1000, Skip: 10})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := e.Run(ctx)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

type countingMetric struct {
	observed int
}

func (m *countingMetric) Name() string { return "count" }
func (m *countingMetric) Observe(u []field.Field, t float64) { m.observed++ }
func (m *countingMetric) Value() float64 { return float64(m.observed) }
func (m *countingMetric) Reset() { m.observed = 0 }

func TestMetricsObservedPerFrame(t *testing.T) {
	e := newLogisticEngine(t, Config{Dt: 0.001, Frames: 12, Skip: 4})
	m := &countingMetric{}
	e.AddMetric(m)

	res, err := e.Run(context.Background())
	if err != nil {
		t.Fatalf("run failed: %v", err)
	}

	if m.observed != 12 {
		t.Errorf("expected 12 observations (one per frame), got %d", m.observed)
	}
	if res.Metrics["count"] != 12 {
		t.Errorf("expected reported value 12, got %f", res.Metrics["count"])
	}
	if res.Frames != 12 {
		t.Errorf("expected 12 frames in result, got %d", res.Frames)
	}
}
