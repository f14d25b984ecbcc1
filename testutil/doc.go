// Package testutil provides testing utilities for the simulator.
//
// This package is intended for use in tests only. It provides a seeded,
// goroutine-safe random source, deterministic clocks and helpers that lay out
// fragmented disks.
//
// # Deterministic Engines
//
//	rng := testutil.NewRNG(seed)
//	clock := testutil.NewStepClock(start, time.Second)
//	e, _ := engine.New(engine.Config{..., Rand: rng, Now: clock.Now})
//
// # Fragmented Layouts
//
//	ids, _ := testutil.Interleave(create, "f", 6, 2)
//	testutil.EveryOther(ids, deleteFn)
package testutil
