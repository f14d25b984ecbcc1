package disk

import (
	"errors"
	"fmt"
)

// Status is the allocation state of a block.
type Status uint8

const (
	Free Status = iota
	Used
	Corrupted
	Reserved
)

var statusNames = [...]string{"free", "used", "corrupted", "reserved"}

func (s Status) String() string {
	if int(s) < len(statusNames) {
		return statusNames[s]
	}
	return fmt.Sprintf("status(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Status) MarshalText() ([]byte, error) {
	if int(s) >= len(statusNames) {
		return nil, fmt.Errorf("invalid block status %d", uint8(s))
	}
	return []byte(statusNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Status) UnmarshalText(b []byte) error {
	for i, name := range statusNames {
		if name == string(b) {
			*s = Status(i)
			return nil
		}
	}
	return fmt.Errorf("unknown block status %q", b)
}

var (
	// ErrOutOfRange is returned when a block id is outside the disk.
	ErrOutOfRange = errors.New("block id out of range")

	// ErrReservedBlock is returned when a mutation targets the reserved region.
	ErrReservedBlock = errors.New("block is reserved")
)

// Block is a single addressable unit of the simulated disk.
type Block struct {
	ID     int    `json:"id"`
	Status Status `json:"status"`
	Owner  string `json:"owner,omitempty"`
	Label  string `json:"label,omitempty"`
}

// Run is a maximal run of contiguous free blocks.
type Run struct {
	Start int `json:"start"`
	Count int `json:"count"`
}

// GroupSize is the maximum number of ids per group in GroupedFreeList.
const GroupSize = 8

var reservedLabels = [...]string{"boot", "superblock", "bitmap", "inode-table"}

// Disk is a fixed-size ordered array of blocks.
//
// Disk is not safe for concurrent use.
type Disk struct {
	blocks   []Block
	reserved int
	free     *BlockSet
}

// New creates a disk of total blocks whose first reserved blocks are Reserved
// and all others Free.
func New(total, reserved int) *Disk {
	if reserved > total {
		reserved = total
	}
	d := &Disk{
		blocks:   make([]Block, total),
		reserved: reserved,
		free:     NewBlockSet(),
	}
	for i := range d.blocks {
		d.blocks[i].ID = i
		if i < reserved {
			d.blocks[i].Status = Reserved
			d.blocks[i].Label = "reserved"
			if i < len(reservedLabels) {
				d.blocks[i].Label = reservedLabels[i]
			}
			continue
		}
		d.free.Add(i)
	}
	return d
}

// Len returns the total number of blocks.
func (d *Disk) Len() int { return len(d.blocks) }

// ReservedCount returns the size of the reserved prefix.
func (d *Disk) ReservedCount() int { return d.reserved }

// IsReserved reports whether id lies in the reserved prefix.
func (d *Disk) IsReserved(id int) bool { return id >= 0 && id < d.reserved }

// InRange reports whether id addresses a block of this disk.
func (d *Disk) InRange(id int) bool { return id >= 0 && id < len(d.blocks) }

// Block returns a copy of block id.
func (d *Disk) Block(id int) (Block, error) {
	if !d.InRange(id) {
		return Block{}, fmt.Errorf("%w: %d", ErrOutOfRange, id)
	}
	return d.blocks[id], nil
}

// Blocks returns a copy of every block in id order.
func (d *Disk) Blocks() []Block {
	out := make([]Block, len(d.blocks))
	copy(out, d.blocks)
	return out
}

// Status returns the status of block id, or Reserved for out-of-range ids.
func (d *Disk) Status(id int) Status {
	if !d.InRange(id) {
		return Reserved
	}
	return d.blocks[id].Status
}

// Owner returns the owner of block id.
func (d *Disk) Owner(id int) string {
	if !d.InRange(id) {
		return ""
	}
	return d.blocks[id].Owner
}

// Assign marks a block Used by owner.
func (d *Disk) Assign(id int, owner, label string) error {
	return d.Set(Block{ID: id, Status: Used, Owner: owner, Label: label})
}

// Corrupt marks a block Corrupted, keeping its owner and label.
func (d *Disk) Corrupt(id int) error {
	if err := d.checkMutable(id); err != nil {
		return err
	}
	b := d.blocks[id]
	b.Status = Corrupted
	return d.Set(b)
}

// Restore turns a Corrupted block back into a Used one.
func (d *Disk) Restore(id int) error {
	if err := d.checkMutable(id); err != nil {
		return err
	}
	b := d.blocks[id]
	b.Status = Used
	return d.Set(b)
}

// Release frees a block and clears its owner and label.
func (d *Disk) Release(id int) error {
	return d.Set(Block{ID: id, Status: Free})
}

// Set overwrites the mutable fields of a block. The reserved region and the
// Reserved status cannot be written.
func (d *Disk) Set(b Block) error {
	if err := d.checkMutable(b.ID); err != nil {
		return err
	}
	if b.Status == Reserved {
		return fmt.Errorf("%w: cannot mark block %d reserved", ErrReservedBlock, b.ID)
	}
	if b.Status == Free {
		b.Owner, b.Label = "", ""
		d.free.Add(b.ID)
	} else {
		d.free.Remove(b.ID)
	}
	d.blocks[b.ID] = b
	return nil
}

// ReleaseAll frees every non-reserved block.
func (d *Disk) ReleaseAll() {
	for i := d.reserved; i < len(d.blocks); i++ {
		d.blocks[i] = Block{ID: i, Status: Free}
		d.free.Add(i)
	}
}

func (d *Disk) checkMutable(id int) error {
	if !d.InRange(id) {
		return fmt.Errorf("%w: %d", ErrOutOfRange, id)
	}
	if d.IsReserved(id) {
		return fmt.Errorf("%w: %d", ErrReservedBlock, id)
	}
	return nil
}

// Count returns the number of blocks with status s.
func (d *Disk) Count(s Status) int {
	if s == Free {
		return d.free.Len()
	}
	n := 0
	for i := range d.blocks {
		if d.blocks[i].Status == s {
			n++
		}
	}
	return n
}

// IDsWithStatus returns the ascending ids of blocks with status s.
func (d *Disk) IDsWithStatus(s Status) []int {
	if s == Free {
		return d.free.Slice()
	}
	var ids []int
	for i := range d.blocks {
		if d.blocks[i].Status == s {
			ids = append(ids, i)
		}
	}
	return ids
}

// FreeSet returns a copy of the free-block index.
func (d *Disk) FreeSet() *BlockSet {
	return d.free.Clone()
}
