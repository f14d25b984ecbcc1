package disk

// Bitmap returns one entry per block, true iff the block is Free.
func (d *Disk) Bitmap() []bool {
	bm := make([]bool, len(d.blocks))
	for id := range d.free.All() {
		bm[id] = true
	}
	return bm
}

// FreeList returns the ids of all Free blocks in ascending order.
func (d *Disk) FreeList() []int {
	return d.free.Slice()
}

// GroupedFreeList partitions the free ids, in ascending scan order, into groups
// of at most GroupSize. A group closes once it holds GroupSize ids or when the
// scan meets a non-free block, whichever happens first.
func (d *Disk) GroupedFreeList() [][]int {
	var (
		groups  [][]int
		current []int
	)
	flush := func() {
		if len(current) > 0 {
			groups = append(groups, current)
			current = nil
		}
	}
	for i := range d.blocks {
		if d.blocks[i].Status != Free {
			flush()
			continue
		}
		current = append(current, i)
		if len(current) == GroupSize {
			flush()
		}
	}
	flush()
	return groups
}

// CountingFreeList returns the maximal runs of contiguous Free blocks.
func (d *Disk) CountingFreeList() []Run {
	var runs []Run
	for id := range d.free.All() {
		if n := len(runs); n > 0 && runs[n-1].Start+runs[n-1].Count == id {
			runs[n-1].Count++
			continue
		}
		runs = append(runs, Run{Start: id, Count: 1})
	}
	return runs
}
