package fstable

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func TestNewTableHasRoot(t *testing.T) {
	tbl := New(epoch)

	root := tbl.Root()
	require.NotNil(t, root)
	assert.Equal(t, RootID, root.ID)
	assert.Equal(t, RootInode, root.Inode)
	assert.True(t, root.IsDirectory)
	assert.Equal(t, "", tbl.ParentID(root))
	assert.Equal(t, 1, tbl.Len())
	assert.Equal(t, RootInode+1, tbl.NextInode())
}

func TestInsertLinksParentAndAssignsInodes(t *testing.T) {
	tbl := New(epoch)

	docs := &Entry{ID: "d1", Name: "docs", IsDirectory: true}
	require.NoError(t, tbl.Insert(RootID, docs))
	a := &Entry{ID: "f1", Name: "a.txt"}
	require.NoError(t, tbl.Insert("d1", a))
	b := &Entry{ID: "f2", Name: "b.txt"}
	require.NoError(t, tbl.Insert(RootID, b))

	assert.Less(t, docs.Inode, a.Inode)
	assert.Less(t, a.Inode, b.Inode)
	assert.Equal(t, []string{"d1", "f2"}, tbl.ChildIDs(tbl.Root()))
	assert.Equal(t, []string{"f1"}, tbl.ChildIDs(docs))
	assert.Equal(t, "d1", tbl.ParentID(a))
}

func TestInsertRejectsBadParent(t *testing.T) {
	tbl := New(epoch)
	require.NoError(t, tbl.Insert(RootID, &Entry{ID: "f1", Name: "a"}))

	err := tbl.Insert("missing", &Entry{ID: "x"})
	require.ErrorIs(t, err, ErrNotFound)

	err = tbl.Insert("f1", &Entry{ID: "y"})
	require.ErrorIs(t, err, ErrNotDirectory)

	err = tbl.Insert(RootID, &Entry{ID: "f1"})
	require.ErrorIs(t, err, ErrDuplicateID)

	assert.Equal(t, 2, tbl.Len())
	assert.Equal(t, []string{"f1"}, tbl.ChildIDs(tbl.Root()))
}

func TestRemoveInvalidatesStaleHandles(t *testing.T) {
	tbl := New(epoch)
	a := &Entry{ID: "f1", Name: "a"}
	require.NoError(t, tbl.Insert(RootID, a))
	stale := a.Ref()

	removed, err := tbl.Remove("f1")
	require.NoError(t, err)
	assert.Same(t, a, removed)

	_, ok := tbl.Get(stale)
	assert.False(t, ok)
	_, ok = tbl.Lookup("f1")
	assert.False(t, ok)
	assert.Empty(t, tbl.ChildIDs(tbl.Root()))

	// The freed slot is reused with a new generation.
	b := &Entry{ID: "f2", Name: "b"}
	require.NoError(t, tbl.Insert(RootID, b))
	assert.Equal(t, stale.Index, b.Ref().Index)
	assert.NotEqual(t, stale.Gen, b.Ref().Gen)
	_, ok = tbl.Get(stale)
	assert.False(t, ok)
	assert.Greater(t, b.Inode, a.Inode)
}

func TestRemoveErrors(t *testing.T) {
	tbl := New(epoch)
	require.NoError(t, tbl.Insert(RootID, &Entry{ID: "d", IsDirectory: true}))
	require.NoError(t, tbl.Insert("d", &Entry{ID: "f"}))

	_, err := tbl.Remove(RootID)
	require.ErrorIs(t, err, ErrRootEntry)

	_, err = tbl.Remove("nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = tbl.Remove("d")
	require.Error(t, err)
}

func TestAllIsCreationOrdered(t *testing.T) {
	tbl := New(epoch)
	for _, id := range []string{"a", "b", "c"} {
		require.NoError(t, tbl.Insert(RootID, &Entry{ID: id}))
	}
	_, err := tbl.Remove("a")
	require.NoError(t, err)
	require.NoError(t, tbl.Insert(RootID, &Entry{ID: "d"}))

	var ids []string
	for _, e := range tbl.All() {
		ids = append(ids, e.ID)
	}
	assert.Equal(t, []string{RootID, "b", "c", "d"}, ids)
	assert.Len(t, tbl.Files(), 3)
}

func TestEntryBlockHelpers(t *testing.T) {
	e := &Entry{Blocks: []int{4, 9, 6}}

	assert.True(t, e.OwnsBlock(9))
	assert.True(t, e.RemoveBlock(9))
	assert.False(t, e.RemoveBlock(9))
	assert.Equal(t, []int{4, 6}, e.Blocks)
}

func TestTreeView(t *testing.T) {
	tbl := New(epoch)
	require.NoError(t, tbl.Insert(RootID, &Entry{ID: "d", Name: "docs", IsDirectory: true}))
	require.NoError(t, tbl.Insert("d", &Entry{ID: "f", Name: "a.txt", Blocks: []int{4, 5}}))

	tree, err := tbl.Tree(RootID)
	require.NoError(t, err)
	require.Len(t, tree.Children, 1)
	assert.Equal(t, "docs", tree.Children[0].Entry.Name)
	assert.Equal(t, []string{"f"}, tree.Children[0].Entry.Children)
	require.Len(t, tree.Children[0].Children, 1)
	leaf := tree.Children[0].Children[0].Entry
	assert.Equal(t, "d", leaf.ParentID)
	assert.Equal(t, []int{4, 5}, leaf.Blocks)
	assert.Nil(t, leaf.Children)

	_, err = tbl.Tree("missing")
	require.ErrorIs(t, err, ErrNotFound)
}
