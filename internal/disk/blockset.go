package disk

import (
	"iter"

	"github.com/RoaringBitmap/roaring/v2"
)

// BlockSet is a set of block ids backed by a 32-bit Roaring bitmap.
type BlockSet struct {
	rb *roaring.Bitmap
}

// NewBlockSet creates a set holding the given ids.
func NewBlockSet(ids ...int) *BlockSet {
	s := &BlockSet{rb: roaring.New()}
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add adds a block id to the set.
func (s *BlockSet) Add(id int) {
	s.rb.Add(uint32(id))
}

// Remove removes a block id from the set.
func (s *BlockSet) Remove(id int) {
	s.rb.Remove(uint32(id))
}

// Contains reports whether id is in the set.
func (s *BlockSet) Contains(id int) bool {
	return s.rb.Contains(uint32(id))
}

// Len returns the number of ids in the set.
func (s *BlockSet) Len() int {
	return int(s.rb.GetCardinality())
}

// IsEmpty returns true if the set is empty.
func (s *BlockSet) IsEmpty() bool {
	return s.rb.IsEmpty()
}

// Clone returns a deep copy of the set.
func (s *BlockSet) Clone() *BlockSet {
	return &BlockSet{rb: s.rb.Clone()}
}

// Clear removes all ids.
func (s *BlockSet) Clear() {
	s.rb.Clear()
}

// All iterates the ids in ascending order.
func (s *BlockSet) All() iter.Seq[int] {
	return func(yield func(int) bool) {
		it := s.rb.Iterator()
		for it.HasNext() {
			if !yield(int(it.Next())) {
				return
			}
		}
	}
}

// Slice returns the ids in ascending order.
func (s *BlockSet) Slice() []int {
	out := make([]int, 0, s.Len())
	for id := range s.All() {
		out = append(out, id)
	}
	return out
}

// AndNot removes every id of other from s.
func (s *BlockSet) AndNot(other *BlockSet) {
	s.rb.AndNot(other.rb)
}

// And keeps only the ids that are also in other.
func (s *BlockSet) And(other *BlockSet) {
	s.rb.And(other.rb)
}
