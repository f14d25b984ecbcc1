package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/testutil"
)

func TestDefragmentInterleavedDeletes(t *testing.T) {
	e := newEngine(t, 256, 4, nil)
	create := func(name string, size int) (string, error) {
		f, err := e.CreateFile(name, size, RootID, Contiguous)
		return f.ID, err
	}

	ids, err := testutil.Interleave(create, "f", 5, 2)
	require.NoError(t, err)
	kept, err := testutil.EveryOther(ids, e.DeleteFile)
	require.NoError(t, err)
	require.Len(t, kept, 3)
	// Survivors sit at [4,5] [8,9] [12,13]; the linked file fills both holes.
	spread := mustCreate(t, e, "spread", 4, Linked)
	require.Equal(t, []int{6, 7, 10, 11}, spread.Blocks)
	require.Greater(t, e.Stats().FragmentationPercent, 0.0)

	res := e.Defragment()

	assert.Equal(t, []Move{{10, 8}, {11, 9}, {8, 10}, {9, 11}}, res.Moves)
	assert.InDelta(t, 3.2, res.TimeSaved, 1e-9)
	for _, m := range res.Moves {
		assert.NotEqual(t, m.From, m.To)
	}
	assert.Equal(t, 0.0, e.Stats().FragmentationPercent)

	got, err := e.File(spread.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{6, 7, 8, 9}, got.Blocks)
	blk := e.Blocks()[8]
	assert.Equal(t, spread.ID, blk.Owner)
	assert.Equal(t, "spread:2", blk.Label)

	f2, err := e.File(kept[1])
	require.NoError(t, err)
	assert.Equal(t, []int{10, 11}, f2.Blocks)

	assert.True(t, e.RunFsck().Consistent())
	requireInvariants(t, e)

	// A second pass has nothing left to move.
	again := e.Defragment()
	assert.Empty(t, again.Moves)
	assert.Zero(t, again.TimeSaved)
}

func TestDefragmentKeepsBlockStatus(t *testing.T) {
	e := newEngine(t, 32, 4, nil)
	a := mustCreate(t, e, "a", 2, Contiguous)
	b := mustCreate(t, e, "b", 3, Contiguous)
	require.NoError(t, e.DeleteFile(a.ID))
	require.NoError(t, e.disk.Corrupt(b.Blocks[1]))

	res := e.Defragment()

	assert.Len(t, res.Moves, 3)
	got, err := e.File(b.ID)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 5, 6}, got.Blocks)
	assert.Equal(t, Corrupted, e.Blocks()[5].Status)
	assert.Equal(t, "b:1", e.Blocks()[5].Label)
	assert.Equal(t, Free, e.Blocks()[7].Status)
	requireInvariants(t, e)
}

func TestDefragmentOrdersByFirstBlock(t *testing.T) {
	e := newEngine(t, 32, 4, nil)
	a := mustCreate(t, e, "a", 2, Contiguous) // 4,5
	mustCreate(t, e, "b", 2, Contiguous)      // 6,7
	mustCreate(t, e, "c", 2, Contiguous)      // 8,9
	require.NoError(t, e.DeleteFile(a.ID))
	d := mustCreate(t, e, "d", 3, Linked) // 4,5,10
	require.Equal(t, []int{4, 5, 10}, d.Blocks)

	e.Defragment()

	layout := map[string][]int{}
	for _, f := range e.Files()[1:] {
		layout[f.Name] = f.Blocks
	}
	assert.Equal(t, []int{4, 5, 6}, layout["d"])
	assert.Equal(t, []int{7, 8}, layout["b"])
	assert.Equal(t, []int{9, 10}, layout["c"])
	requireInvariants(t, e)
}

func TestDefragmentThenFsckIsConsistent(t *testing.T) {
	for seed := int64(1); seed <= 10; seed++ {
		e := newEngine(t, 96, 4, testutil.NewRNG(seed))
		churn(t, e, testutil.NewRNG(seed+100), 80)
		used := e.Stats().UsedBlocks

		res := e.Defragment()

		for _, m := range res.Moves {
			assert.NotEqual(t, m.From, m.To)
		}
		assert.True(t, e.RunFsck().Consistent(), "seed %d", seed)
		assert.Equal(t, 0.0, e.Stats().FragmentationPercent)
		assert.Equal(t, used, e.Stats().UsedBlocks)
		for id := 4; id < 4+used; id++ {
			assert.Equal(t, Used, e.Blocks()[id].Status, "seed %d block %d", seed, id)
		}
		requireInvariants(t, e)
	}
}

func TestDefragmentSkipsEmptyFiles(t *testing.T) {
	e := newEngine(t, 32, 4, testutil.NewFixedRand(1, 0.99))
	a := mustCreate(t, e, "a", 1, Contiguous)
	mustCreate(t, e, "b", 2, Contiguous)
	require.NoError(t, e.disk.Corrupt(a.Blocks[0]))
	e.RecoverCorruptedBlocks()

	res := e.Defragment()

	got, err := e.File(a.ID)
	require.NoError(t, err)
	assert.Empty(t, got.Blocks)
	assert.Equal(t, []Move{{5, 4}, {6, 5}}, res.Moves)
	requireInvariants(t, e)
}
