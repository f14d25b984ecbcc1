// Package disk implements the simulated block device: a fixed array of block
// records with a reserved prefix, plus read-only free-space projections over it.
//
// A Disk never creates or destroys blocks after New. Only the status, owner and
// label of a block change. Every status transition goes through a Disk method
// so the free-block index stays in sync with the block array.
//
// # Free-space views
//
//	d := disk.New(256, 4)
//	d.Bitmap()           // []bool, true iff Free
//	d.FreeList()         // ascending free ids
//	d.GroupedFreeList()  // positional groups of at most 8 ids
//	d.CountingFreeList() // maximal contiguous runs {Start, Count}
package disk
