// Package alloc selects blocks for a new file using one of the classic
// file-to-block mapping strategies.
//
// Allocate never mutates the disk. Callers mark the returned ids only after
// Allocate succeeds, which makes allocation all-or-nothing.
package alloc

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/internal/disk"
)

// Strategy is a block-selection strategy.
type Strategy uint8

const (
	// Contiguous takes the leftmost run of consecutive free blocks.
	Contiguous Strategy = iota
	// Linked takes the first free blocks in id order, adjacent or not.
	Linked
	// Indexed is Linked plus one extra leading block that acts as the index block.
	Indexed
)

var (
	// ErrNoSpace is returned when the disk cannot satisfy the request.
	ErrNoSpace = errors.New("not enough free space")

	// ErrInvalidSize is returned for requests of fewer than one block.
	ErrInvalidSize = errors.New("size must be at least one block")

	// ErrUnknownStrategy is returned for an unrecognized strategy.
	ErrUnknownStrategy = errors.New("unknown allocation strategy")
)

var strategyNames = [...]string{"contiguous", "linked", "indexed"}

func (s Strategy) String() string {
	if int(s) < len(strategyNames) {
		return strategyNames[s]
	}
	return fmt.Sprintf("strategy(%d)", uint8(s))
}

// MarshalText implements encoding.TextMarshaler.
func (s Strategy) MarshalText() ([]byte, error) {
	if int(s) >= len(strategyNames) {
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
	return []byte(strategyNames[s]), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *Strategy) UnmarshalText(b []byte) error {
	parsed, err := ParseStrategy(string(b))
	if err != nil {
		return err
	}
	*s = parsed
	return nil
}

// ParseStrategy parses a strategy name, case-insensitively.
func ParseStrategy(name string) (Strategy, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for i, n := range strategyNames {
		if n == name {
			return Strategy(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownStrategy, name)
}

// BlocksNeeded returns how many blocks a file of size blocks occupies under s.
func (s Strategy) BlocksNeeded(size int) int {
	if s == Indexed {
		return size + 1
	}
	return size
}

// Allocate selects blocks for a file of size blocks. The returned ids are in
// allocation order and were all Free when Allocate was called.
func Allocate(d *disk.Disk, s Strategy, size int) ([]int, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidSize, size)
	}
	switch s {
	case Contiguous:
		return contiguous(d, size)
	case Linked, Indexed:
		return firstFree(d, s.BlocksNeeded(size))
	default:
		return nil, fmt.Errorf("%w: %d", ErrUnknownStrategy, uint8(s))
	}
}

// contiguous is a first-fit scan for count consecutive free blocks.
func contiguous(d *disk.Disk, count int) ([]int, error) {
	start, consecutive := -1, 0
	for id := d.ReservedCount(); id < d.Len(); id++ {
		if d.Status(id) != disk.Free {
			consecutive, start = 0, -1
			continue
		}
		if consecutive == 0 {
			start = id
		}
		consecutive++
		if consecutive == count {
			ids := make([]int, count)
			for i := range ids {
				ids[i] = start + i
			}
			return ids, nil
		}
	}
	return nil, fmt.Errorf("%w: no run of %d contiguous free blocks", ErrNoSpace, count)
}

func firstFree(d *disk.Disk, count int) ([]int, error) {
	ids := make([]int, 0, count)
	for _, id := range d.FreeList() {
		if d.IsReserved(id) {
			continue
		}
		ids = append(ids, id)
		if len(ids) == count {
			return ids, nil
		}
	}
	return nil, fmt.Errorf("%w: need %d free blocks, have %d", ErrNoSpace, count, len(ids))
}
