package engine

import (
	"slices"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/accesslog"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/disk"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/fstable"
)

// Move records one block relocation made by Defragment.
type Move struct {
	From int `json:"from"`
	To   int `json:"to"`
}

// DefragResult summarizes a defragmentation pass.
type DefragResult struct {
	Moves     []Move  `json:"moves"`
	TimeSaved float64 `json:"timeSaved"`
}

// Defragment compacts every file's blocks into one contiguous run starting
// right after the reserved region. Files are packed in order of their first
// block, ties broken by creation order, and each block keeps its status, owner
// and label. Unreferenced blocks are freed.
//
// The pass runs in three phases: snapshot the referenced blocks, clear the
// data region, then rewrite files and disk in the new layout.
func (e *Engine) Defragment() DefragResult {
	// Phase 1: snapshot.
	var files []*fstable.Entry
	snapshot := make(map[int]disk.Block)
	for _, f := range e.table.All() {
		if len(f.Blocks) == 0 {
			continue
		}
		files = append(files, f)
		for _, id := range f.Blocks {
			if b, err := e.disk.Block(id); err == nil {
				snapshot[id] = b
			}
		}
	}
	slices.SortStableFunc(files, func(a, b *fstable.Entry) int {
		return a.Blocks[0] - b.Blocks[0]
	})

	// Phase 2: clear.
	e.disk.ReleaseAll()

	// Phase 3: rebuild.
	res := DefragResult{Moves: []Move{}}
	next := e.disk.ReservedCount()
	for _, f := range files {
		relocated := make([]int, 0, len(f.Blocks))
		for _, old := range f.Blocks {
			b, ok := snapshot[old]
			if !ok || b.Status == Reserved || next >= e.disk.Len() {
				continue
			}
			b.ID = next
			if err := e.disk.Set(b); err != nil {
				continue
			}
			if old != next {
				res.Moves = append(res.Moves, Move{From: old, To: next})
			}
			relocated = append(relocated, next)
			next++
		}
		f.Blocks = relocated
	}

	res.TimeSaved = accesslog.Round(float64(len(res.Moves))*DefragSavingPerMove, 1)
	return res
}
