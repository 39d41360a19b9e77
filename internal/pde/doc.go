// Package pde provides the core primitives for explicit finite-difference
// simulation of one-dimensional PDE systems.
//
// The package defines the fundamental types for time integration:
//
//   - [System]: interface for PDE right-hand sides (du/dt = f(u, t))
//   - [Engine]: forward-Euler stepper producing a lazy frame sequence
//   - [History]: space-time record of one snapshot per produced frame
//   - [Metric]: per-step observer aggregated into the run result
//
// # Example
//
//	sys := models.NewFisher(100, 1.0, 0.002, 2.0, 4.0)
//	eng, _ := pde.New(sys, sys.DefaultState(), cfg)
//	for frame, ok := eng.Next(); ok; frame, ok = eng.Next() {
//		draw(frame)
//	}
//
// # Thread Safety
//
// Engine instances are NOT thread-safe. The frame sequence is strictly
// sequential and non-restartable; Next mutates the engine's internal field
// buffers, and yielded frames are copies so consumers may retain them.
package pde
