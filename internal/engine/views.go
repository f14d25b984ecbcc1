package engine

// Blocks returns a copy of every block in id order.
func (e *Engine) Blocks() []Block { return e.disk.Blocks() }

// Bitmap returns one entry per block, true when the block is Free.
func (e *Engine) Bitmap() []bool { return e.disk.Bitmap() }

// FreeList returns the Free block ids in ascending order.
func (e *Engine) FreeList() []int { return e.disk.FreeList() }

// GroupedFreeList returns the free list split into groups of at most
// disk.GroupSize ids.
func (e *Engine) GroupedFreeList() [][]int { return e.disk.GroupedFreeList() }

// CountingFreeList returns the free list as maximal runs.
func (e *Engine) CountingFreeList() []Run { return e.disk.CountingFreeList() }

// AccessLog returns a copy of the access log, oldest first.
func (e *Engine) AccessLog() []LogEntry { return e.log.Entries() }
