package fstable

import (
	"fmt"
	"time"
)

// FileEntry is a detached, serializable copy of an Entry with its links
// resolved to ids.
type FileEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SizeBytes   int64     `json:"sizeBytes"`
	Blocks      []int     `json:"blocks"`
	IsDirectory bool      `json:"isDirectory"`
	ParentID    string    `json:"parentId,omitempty"`
	Children    []string  `json:"children,omitempty"`
	Permissions string    `json:"permissions"`
	Inode       uint64    `json:"inode"`
	CreatedAt   time.Time `json:"createdAt"`
	ModifiedAt  time.Time `json:"modifiedAt"`
	AccessedAt  time.Time `json:"accessedAt"`
}

// TreeNode is a nested view of a directory subtree.
type TreeNode struct {
	Entry    FileEntry  `json:"entry"`
	Children []TreeNode `json:"children,omitempty"`
}

// View copies e into a FileEntry.
func (t *Table) View(e *Entry) FileEntry {
	v := FileEntry{
		ID:          e.ID,
		Name:        e.Name,
		SizeBytes:   e.SizeBytes,
		Blocks:      append([]int{}, e.Blocks...),
		IsDirectory: e.IsDirectory,
		ParentID:    t.ParentID(e),
		Permissions: e.Permissions,
		Inode:       e.Inode,
		CreatedAt:   e.CreatedAt,
		ModifiedAt:  e.ModifiedAt,
		AccessedAt:  e.AccessedAt,
	}
	if e.IsDirectory {
		v.Children = t.ChildIDs(e)
	}
	return v
}

// Tree returns the subtree rooted at id.
func (t *Table) Tree(id string) (TreeNode, error) {
	e, ok := t.Lookup(id)
	if !ok {
		return TreeNode{}, fmt.Errorf("%w: %q", ErrNotFound, id)
	}
	return t.tree(e), nil
}

func (t *Table) tree(e *Entry) TreeNode {
	n := TreeNode{Entry: t.View(e)}
	for _, c := range t.Children(e) {
		n.Children = append(n.Children, t.tree(c))
	}
	return n
}
