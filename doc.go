// Package fros simulates, in memory, how a file system tracks disk blocks,
// allocates files, recovers from corruption and defragments storage.
//
// # Quick Start
//
//	ctx := context.Background()
//	sim, _ := fros.New(fros.WithSeed(42))
//	f, _ := sim.CreateFile(ctx, "a.txt", 5, fros.RootID, fros.Contiguous)
//	fmt.Println(f.Blocks) // [4 5 6 7 8]
//
// # Allocation Strategies
//
//   - Contiguous: leftmost run of free blocks; fails when no run is long enough
//   - Linked: first free blocks in id order
//   - Indexed: like Linked with one extra block for the index
//
// Allocation is all-or-nothing. A failed CreateFile returns ErrNoSpace and
// leaves the disk untouched.
//
// # Failure and Repair
//
//	corrupted, _ := sim.SimulateCrash(ctx, 0.3) // corrupt 30% of used blocks
//	res := sim.RecoverCorruptedBlocks(ctx)      // ~70% repaired, the rest freed
//	report := sim.RunFsck(ctx)                  // orphan / missing / inconsistent
//	moves := sim.Defragment(ctx)                // pack files from the first data block
//
// Corruption is a block status, not an error: ReadFile reports it through the
// access-log entry's Success flag and RunFsck lists the affected files.
//
// # Determinism
//
// Every random choice draws from the Simulator's own generator. WithSeed (or
// WithRandSource) and WithClock make a run fully reproducible.
//
// # Export
//
// Snapshot returns the whole state; Export encodes it with a codec.Codec and
// an optional zstd or lz4 frame for offline inspection.
package fros
