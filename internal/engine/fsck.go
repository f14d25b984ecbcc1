package engine

import (
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/disk"
)

// FsckReport lists the inconsistencies found between the disk and the file
// table. Block ids are ascending; file ids follow creation order.
type FsckReport struct {
	OrphanBlocks      []int    `json:"orphanBlocks"`
	MissingBlocks     []int    `json:"missingBlocks"`
	InconsistentFiles []string `json:"inconsistentFiles"`
}

// Consistent reports whether the check found nothing.
func (r FsckReport) Consistent() bool {
	return len(r.OrphanBlocks) == 0 && len(r.MissingBlocks) == 0 && len(r.InconsistentFiles) == 0
}

// RunFsck cross-checks the disk against the file table without modifying
// either.
//
//   - orphan: Used blocks that no file references
//   - missing: Free blocks that some file still references
//   - inconsistent: files owning a Corrupted block or a block whose owner is
//     not the file
func (e *Engine) RunFsck() FsckReport {
	report := FsckReport{
		OrphanBlocks:      []int{},
		MissingBlocks:     []int{},
		InconsistentFiles: []string{},
	}

	referenced := disk.NewBlockSet()
	for _, f := range e.table.All() {
		bad := false
		for _, b := range f.Blocks {
			referenced.Add(b)
			if e.disk.Status(b) == Corrupted || e.disk.Owner(b) != f.ID {
				bad = true
			}
		}
		if bad {
			report.InconsistentFiles = append(report.InconsistentFiles, f.ID)
		}
	}

	for _, id := range e.disk.IDsWithStatus(Used) {
		if !referenced.Contains(id) {
			report.OrphanBlocks = append(report.OrphanBlocks, id)
		}
	}

	free := e.disk.FreeSet()
	free.And(referenced)
	report.MissingBlocks = append(report.MissingBlocks, free.Slice()...)
	return report
}
