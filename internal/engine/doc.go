// Package engine implements the file-system simulation engine.
//
// The engine orchestrates:
//   - the Disk Model (fixed block array with a reserved prefix)
//   - the File Table and directory tree
//   - the Allocator (contiguous, linked, indexed)
//   - the append-only Access Log with its timing model
//   - crash injection, probabilistic recovery, fsck and defragmentation
//
// Every operation runs synchronously to completion. Operations that mutate
// change the disk and the file table together, so the cross-reference
// invariants hold again when the call returns. The engine does no locking:
// hosts that share an instance across goroutines must serialize access.
//
// Randomness comes only from the RandomSource given in Config, so an engine
// built with a seeded source replays identically.
package engine
