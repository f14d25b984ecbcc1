package engine

import (
	"math"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/disk"
)

// Stats is a point-in-time summary of the disk and the access log.
type Stats struct {
	TotalBlocks     int `json:"totalBlocks"`
	UsedBlocks      int `json:"usedBlocks"`
	FreeBlocks      int `json:"freeBlocks"`
	CorruptedBlocks int `json:"corruptedBlocks"`
	ReservedBlocks  int `json:"reservedBlocks"`
	Files           int `json:"files"`
	Directories     int `json:"directories"`

	// FragmentationPercent is the share of adjacent block pairs, over all
	// regular files, that are not consecutive ids. Rounded to an integer.
	FragmentationPercent float64 `json:"fragmentationPercent"`

	AvgSeekTime     float64 `json:"avgSeekTime"`
	AvgTransferTime float64 `json:"avgTransferTime"`
	TotalOperations int     `json:"totalOperations"`
}

// Stats computes the current statistics. Directories exclude the root.
func (e *Engine) Stats() Stats {
	var files, dirs, fragments, maxGaps int
	for _, entry := range e.table.All() {
		if entry.IsDirectory {
			dirs++
			continue
		}
		files++
		maxGaps += max(0, len(entry.Blocks)-1)
		fragments += Fragments(entry.Blocks)
	}
	var frag float64
	if maxGaps > 0 {
		frag = math.Round(100 * float64(fragments) / float64(maxGaps))
	}

	seek, transfer := e.log.Averages()
	return Stats{
		TotalBlocks:          e.disk.Len(),
		UsedBlocks:           e.disk.Count(disk.Used),
		FreeBlocks:           e.disk.Count(disk.Free),
		CorruptedBlocks:      e.disk.Count(disk.Corrupted),
		ReservedBlocks:       e.disk.Count(disk.Reserved),
		Files:                files,
		Directories:          dirs - 1,
		FragmentationPercent: frag,
		AvgSeekTime:          seek,
		AvgTransferTime:      transfer,
		TotalOperations:      e.log.Len(),
	}
}

// Fragments counts adjacent pairs in ids that are not consecutive.
func Fragments(ids []int) int {
	n := 0
	for i := 1; i < len(ids); i++ {
		if ids[i] != ids[i-1]+1 {
			n++
		}
	}
	return n
}
