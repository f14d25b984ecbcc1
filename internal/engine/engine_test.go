package engine

import (
	"errors"
	"fmt"
	"slices"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/testutil"
)

var epoch = time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

func newEngine(t *testing.T, total, reserved int, rnd RandomSource) *Engine {
	t.Helper()
	if rnd == nil {
		rnd = testutil.NewRNG(1)
	}
	e, err := New(Config{
		TotalBlocks:         total,
		BlockSize:           DefaultBlockSize,
		ReservedBlocks:      reserved,
		RecoveryProbability: DefaultRecoveryProbability,
		Rand:                rnd,
		Now:                 testutil.NewStepClock(epoch, time.Second).Now,
	})
	require.NoError(t, err)
	return e
}

func mustCreate(t *testing.T, e *Engine, name string, size int, s Strategy) FileEntry {
	t.Helper()
	f, err := e.CreateFile(name, size, RootID, s)
	require.NoError(t, err)
	return f
}

// requireInvariants checks the cross-references between disk and table.
func requireInvariants(t *testing.T, e *Engine) {
	t.Helper()

	owners := make(map[int]string)
	var lastInode uint64
	for _, f := range e.table.All() {
		require.Greater(t, f.Inode, lastInode, "inodes must increase in creation order")
		lastInode = f.Inode

		seen := make(map[int]bool)
		for _, b := range f.Blocks {
			require.False(t, seen[b], "duplicate block %d in %s", b, f.ID)
			seen[b] = true
			require.GreaterOrEqual(t, b, e.cfg.ReservedBlocks)
			require.Less(t, b, e.cfg.TotalBlocks)
			owners[b] = f.ID
		}

		if f.ID == RootID {
			require.Empty(t, e.table.ParentID(f))
			continue
		}
		parent, ok := e.table.Get(f.Parent())
		require.True(t, ok, "parent of %s must exist", f.ID)
		require.True(t, parent.IsDirectory)
		n := 0
		for _, c := range e.table.ChildIDs(parent) {
			if c == f.ID {
				n++
			}
		}
		require.Equal(t, 1, n, "%s must appear once in its parent", f.ID)
	}

	for _, b := range e.disk.Blocks() {
		switch b.Status {
		case Reserved:
			require.Less(t, b.ID, e.cfg.ReservedBlocks)
			require.Empty(t, b.Owner)
		case Used, Corrupted:
			require.NotEmpty(t, b.Owner)
			require.Equal(t, owners[b.ID], b.Owner, "block %d", b.ID)
		case Free:
			_, referenced := owners[b.ID]
			require.False(t, referenced, "free block %d is referenced", b.ID)
			require.Empty(t, b.Owner)
		}
	}
	for id := range e.cfg.ReservedBlocks {
		require.Equal(t, Reserved, e.disk.Status(id))
	}
}

// churn runs a seeded mix of creates, deletes and reads, checking the
// invariants after every step. It returns the ids of the surviving files.
func churn(t *testing.T, e *Engine, rng *testutil.RNG, steps int) []string {
	t.Helper()

	var live []string
	for i := range steps {
		op := rng.Intn(10)
		switch {
		case op < 5 || len(live) == 0:
			f, err := e.CreateFile(fmt.Sprintf("f%d", i), 1+rng.Intn(6), RootID, Strategy(rng.Intn(3)))
			if errors.Is(err, ErrNoSpace) {
				continue
			}
			require.NoError(t, err)
			live = append(live, f.ID)
		case op < 8:
			j := rng.Intn(len(live))
			require.NoError(t, e.DeleteFile(live[j]))
			live = slices.Delete(live, j, j+1)
		default:
			_, err := e.ReadFile(live[rng.Intn(len(live))])
			require.NoError(t, err)
		}
		requireInvariants(t, e)
	}
	return live
}

func TestNewValidatesConfig(t *testing.T) {
	tests := []struct {
		name string
		mod  func(*Config)
	}{
		{"no blocks", func(c *Config) { c.TotalBlocks = 0 }},
		{"no block size", func(c *Config) { c.BlockSize = 0 }},
		{"negative reserved", func(c *Config) { c.ReservedBlocks = -1 }},
		{"all reserved", func(c *Config) { c.ReservedBlocks = c.TotalBlocks }},
		{"probability above one", func(c *Config) { c.RecoveryProbability = 1.5 }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mod(&cfg)
			_, err := New(cfg)
			require.ErrorIs(t, err, ErrInvalidArgument)
		})
	}
}

func TestNewFillsDefaults(t *testing.T) {
	e, err := New(DefaultConfig())
	require.NoError(t, err)

	assert.NotNil(t, e.rng)
	assert.NotNil(t, e.now)
	assert.Equal(t, DefaultTotalBlocks, len(e.Blocks()))

	files := e.Files()
	require.Len(t, files, 1)
	assert.Equal(t, RootID, files[0].ID)
	assert.Equal(t, "/", files[0].Name)
	assert.Equal(t, uint64(2), files[0].Inode)
	assert.Empty(t, e.AccessLog())
}

func TestReferenceScenario(t *testing.T) {
	e := newEngine(t, 256, 4, nil)

	f := mustCreate(t, e, "a.txt", 5, Contiguous)
	assert.Equal(t, []int{4, 5, 6, 7, 8}, f.Blocks)
	assert.Equal(t, int64(5*DefaultBlockSize), f.SizeBytes)
	assert.Equal(t, uint64(3), f.Inode)
	assert.Equal(t, RootID, f.ParentID)

	s := e.Stats()
	assert.Equal(t, 5, s.UsedBlocks)
	assert.Equal(t, 247, s.FreeBlocks)
	assert.Equal(t, 4, s.ReservedBlocks)
	assert.Equal(t, 0.0, s.FragmentationPercent)
	assert.Equal(t, 1, s.Files)
	assert.Equal(t, 1, s.TotalOperations)
	assert.InDelta(t, 0.4, s.AvgSeekTime, 1e-9)
	assert.InDelta(t, 2.5, s.AvgTransferTime, 1e-9)

	requireInvariants(t, e)
}

func TestSeededEnginesReplay(t *testing.T) {
	run := func() ([]FileEntry, []int) {
		e := newEngine(t, 64, 4, testutil.NewRNG(42))
		churn(t, e, testutil.NewRNG(7), 30)
		crashed, err := e.SimulateCrash(0.3)
		require.NoError(t, err)
		return e.Files(), crashed
	}

	files1, crashed1 := run()
	files2, crashed2 := run()
	assert.Equal(t, files1, files2)
	assert.Equal(t, crashed1, crashed2)
}

func TestChurnKeepsInvariants(t *testing.T) {
	e := newEngine(t, 96, 4, testutil.NewRNG(3))
	churn(t, e, testutil.NewRNG(11), 200)

	assert.True(t, e.RunFsck().Consistent())
}
