package fstable

import (
	"errors"
	"fmt"
	"slices"
	"time"
)

const (
	// RootID is the id of the root directory.
	RootID = "root"
	// RootName is the name of the root directory.
	RootName = "/"
	// RootInode is the inode number of the root directory.
	RootInode uint64 = 2

	// FilePermissions are the permissions given to new files.
	FilePermissions = "rw-r--r--"
	// DirPermissions are the permissions given to new directories.
	DirPermissions = "rwxr-xr-x"
)

var (
	// ErrNotFound is returned when an id does not name a live entry.
	ErrNotFound = errors.New("entry not found")

	// ErrNotDirectory is returned when a parent id names a regular file.
	ErrNotDirectory = errors.New("not a directory")

	// ErrDuplicateID is returned when an inserted id already exists.
	ErrDuplicateID = errors.New("duplicate entry id")

	// ErrRootEntry is returned when an operation would remove the root.
	ErrRootEntry = errors.New("cannot remove the root directory")
)

// Ref is a generation-checked handle to a table slot.
type Ref struct {
	Index uint32
	Gen   uint32
}

// IsZero reports whether r is the null handle.
func (r Ref) IsZero() bool { return r.Gen == 0 }

// Entry is a file or directory record. Blocks, SizeBytes and the timestamps
// are mutated in place by the engine; links are owned by the Table.
type Entry struct {
	ID          string
	Name        string
	SizeBytes   int64
	Blocks      []int
	IsDirectory bool
	Permissions string
	Inode       uint64
	CreatedAt   time.Time
	ModifiedAt  time.Time
	AccessedAt  time.Time

	ref      Ref
	parent   Ref
	children []Ref
}

// Ref returns the entry's own handle.
func (e *Entry) Ref() Ref { return e.ref }

// Parent returns the handle of the entry's parent directory.
func (e *Entry) Parent() Ref { return e.parent }

// OwnsBlock reports whether id is in the entry's block list.
func (e *Entry) OwnsBlock(id int) bool {
	return slices.Contains(e.Blocks, id)
}

// RemoveBlock drops id from the block list, keeping the order of the rest.
func (e *Entry) RemoveBlock(id int) bool {
	i := slices.Index(e.Blocks, id)
	if i < 0 {
		return false
	}
	e.Blocks = slices.Delete(e.Blocks, i, i+1)
	return true
}

type slot struct {
	gen   uint32
	entry *Entry
}

// Table is the arena of file-table entries.
//
// Table is not safe for concurrent use.
type Table struct {
	slots     []slot
	free      []uint32
	byID      map[string]Ref
	root      Ref
	nextInode uint64
}

// New creates a table holding only the root directory.
func New(now time.Time) *Table {
	t := &Table{
		byID:      make(map[string]Ref),
		nextInode: RootInode,
	}
	root := &Entry{
		ID:          RootID,
		Name:        RootName,
		IsDirectory: true,
		Permissions: DirPermissions,
		CreatedAt:   now,
		ModifiedAt:  now,
		AccessedAt:  now,
	}
	t.root = t.place(root)
	return t
}

// Root returns the root directory.
func (t *Table) Root() *Entry {
	e, _ := t.Get(t.root)
	return e
}

// Len returns the number of live entries, including the root.
func (t *Table) Len() int { return len(t.byID) }

// NextInode returns the inode the next inserted entry will receive.
func (t *Table) NextInode() uint64 { return t.nextInode }

// Get resolves a handle. Stale or null handles return false.
func (t *Table) Get(r Ref) (*Entry, bool) {
	if r.IsZero() || int(r.Index) >= len(t.slots) {
		return nil, false
	}
	s := t.slots[r.Index]
	if s.gen != r.Gen || s.entry == nil {
		return nil, false
	}
	return s.entry, true
}

// Lookup resolves an entry by id.
func (t *Table) Lookup(id string) (*Entry, bool) {
	r, ok := t.byID[id]
	if !ok {
		return nil, false
	}
	return t.Get(r)
}

// Directory resolves id and checks it names a directory.
func (t *Table) Directory(id string) (*Entry, error) {
	e, ok := t.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if !e.IsDirectory {
		return nil, fmt.Errorf("%w: %q", ErrNotDirectory, id)
	}
	return e, nil
}

// Insert assigns e the next inode and links it under parentID. The parent
// must be an existing directory; on error the table is unchanged.
func (t *Table) Insert(parentID string, e *Entry) error {
	parent, err := t.Directory(parentID)
	if err != nil {
		return err
	}
	if _, exists := t.byID[e.ID]; exists {
		return fmt.Errorf("%w: %q", ErrDuplicateID, e.ID)
	}
	ref := t.place(e)
	e.parent = parent.ref
	parent.children = append(parent.children, ref)
	return nil
}

// place stores e in a free or new slot and assigns its inode.
func (t *Table) place(e *Entry) Ref {
	var idx uint32
	if n := len(t.free); n > 0 {
		idx = t.free[n-1]
		t.free = t.free[:n-1]
	} else {
		idx = uint32(len(t.slots))
		t.slots = append(t.slots, slot{})
	}
	s := &t.slots[idx]
	s.gen++
	s.entry = e

	e.ref = Ref{Index: idx, Gen: s.gen}
	e.Inode = t.nextInode
	t.nextInode++
	t.byID[e.ID] = e.ref
	return e.ref
}

// Remove unlinks id from its parent and frees its slot. Directories with
// children cannot be removed.
func (t *Table) Remove(id string) (*Entry, error) {
	e, ok := t.Lookup(id)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	if e.ref == t.root {
		return nil, ErrRootEntry
	}
	if len(e.children) > 0 {
		return nil, fmt.Errorf("directory %q is not empty", id)
	}
	if parent, ok := t.Get(e.parent); ok {
		parent.children = slices.DeleteFunc(parent.children, func(r Ref) bool { return r == e.ref })
	}

	s := &t.slots[e.ref.Index]
	s.entry = nil
	s.gen++
	t.free = append(t.free, e.ref.Index)
	delete(t.byID, id)
	return e, nil
}

// ParentID returns the id of e's parent, or "" for the root.
func (t *Table) ParentID(e *Entry) string {
	if p, ok := t.Get(e.parent); ok {
		return p.ID
	}
	return ""
}

// Children returns e's live children in insertion order.
func (t *Table) Children(e *Entry) []*Entry {
	out := make([]*Entry, 0, len(e.children))
	for _, r := range e.children {
		if c, ok := t.Get(r); ok {
			out = append(out, c)
		}
	}
	return out
}

// ChildIDs returns the ids of e's children in insertion order.
func (t *Table) ChildIDs(e *Entry) []string {
	children := t.Children(e)
	ids := make([]string, len(children))
	for i, c := range children {
		ids[i] = c.ID
	}
	return ids
}

// All returns every live entry in creation (inode) order.
func (t *Table) All() []*Entry {
	out := make([]*Entry, 0, len(t.byID))
	for i := range t.slots {
		if e := t.slots[i].entry; e != nil {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, func(a, b *Entry) int {
		switch {
		case a.Inode < b.Inode:
			return -1
		case a.Inode > b.Inode:
			return 1
		}
		return 0
	})
	return out
}

// Files returns every live regular file in creation order.
func (t *Table) Files() []*Entry {
	var out []*Entry
	for _, e := range t.All() {
		if !e.IsDirectory {
			out = append(out, e)
		}
	}
	return out
}
