package scenario

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	fros "github.com/vijay-x-Raj/File-Recovery-and-Optimization-System"
	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/resource"
)

func newSim(t *testing.T, opts ...fros.Option) *fros.Simulator {
	t.Helper()
	sim, err := fros.New(append([]fros.Option{fros.WithSeed(5), fros.WithTotalBlocks(64)}, opts...)...)
	require.NoError(t, err)
	return sim
}

func TestLoadAndRun(t *testing.T) {
	script, err := Load("testdata/fragment.yaml")
	require.NoError(t, err)
	assert.Equal(t, "fragment-and-repair", script.Name)
	require.Len(t, script.Steps, 14)

	sim := newSim(t)
	var observed []Op
	results, err := Run(context.Background(), sim, script,
		WithController(resource.NewController(resource.Config{})),
		WithObserver(func(r StepResult) { observed = append(observed, r.Op) }),
	)
	require.NoError(t, err)
	require.Len(t, results, 14)
	assert.Len(t, observed, 14)

	for _, r := range results {
		assert.True(t, r.OK, "step %d (%s): %s", r.Index, r.Op, r.Err)
	}

	log, ok := results[5].Payload.(fros.FileEntry)
	require.True(t, ok)
	assert.Equal(t, []int{8, 9, 10, 11, 16, 17, 18, 19}, log.Blocks)

	before := results[6].Payload.(fros.Stats)
	assert.Positive(t, before.FragmentationPercent)

	first := results[9].Payload.(fros.FsckReport)
	assert.False(t, first.Consistent())
	assert.True(t, results[11].Payload.(fros.FsckReport).Consistent())

	after := results[13].Payload.(fros.Stats)
	assert.Zero(t, after.FragmentationPercent)
	assert.Zero(t, after.CorruptedBlocks)
}

func TestRunNoSpaceDoesNotStop(t *testing.T) {
	script := Script{Steps: []Step{
		{Op: OpCreate, Name: "huge", Size: 1000},
		{Op: OpCreate, Name: "ok", Size: 2, As: "ok"},
		{Op: OpRead, File: "ok"},
	}}
	results, err := Run(context.Background(), newSim(t), script)
	require.NoError(t, err)
	require.Len(t, results, 3)
	assert.False(t, results[0].OK)
	assert.Contains(t, results[0].Err, "no space")
	assert.True(t, results[2].OK)
}

func TestRunStopsOnError(t *testing.T) {
	script := Script{Steps: []Step{
		{Op: OpDelete, File: "ghost"},
		{Op: OpStats},
	}}
	results, err := Run(context.Background(), newSim(t), script)
	require.ErrorIs(t, err, fros.ErrNotFound)
	assert.Contains(t, err.Error(), "step 0 (delete)")
	assert.Len(t, results, 1)

	script.ContinueOnError = true
	results, err = Run(context.Background(), newSim(t), script)
	require.NoError(t, err)
	require.Len(t, results, 2)
	assert.True(t, results[1].OK)
}

func TestRunLiteralIDsAndStrategies(t *testing.T) {
	script := Script{Steps: []Step{
		{Op: OpCreate, Name: "x", Size: 3, Parent: fros.RootID, Strategy: "Indexed", As: "x"},
		{Op: OpCreate, Name: "y", Size: 1, Strategy: "fat32"},
	}}
	results, err := Run(context.Background(), newSim(t), script)
	require.ErrorIs(t, err, fros.ErrInvalidArgument)
	require.Len(t, results, 2)
	assert.Len(t, results[0].Payload.(fros.FileEntry).Blocks, 4)
}

func TestRunCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results, err := Run(ctx, newSim(t), Script{Steps: []Step{{Op: OpStats}}})
	require.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, results)
}

func TestParseRejects(t *testing.T) {
	for name, doc := range map[string]string{
		"empty":         "",
		"no steps":      "name: x\n",
		"unknown field": "steps:\n  - {op: stats, colour: red}\n",
		"unknown op":    "steps:\n  - {op: format}\n",
		"unnamed":       "steps:\n  - {op: create, size: 1}\n",
		"no file":       "steps:\n  - {op: read}\n",
		"bad alias":     "steps:\n  - {op: fsck, as: f}\n",
		"twice":         "steps:\n  - {op: mkdir, name: a, as: d}\n  - {op: mkdir, name: b, as: d}\n",
	} {
		t.Run(name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(doc))
			require.ErrorIs(t, err, ErrInvalidScript)
		})
	}

	_, err := Load("testdata/missing.yaml")
	require.Error(t, err)
}

func TestMarshalParse(t *testing.T) {
	in := Script{Name: "m", ContinueOnError: true, Steps: []Step{
		{Op: OpCreate, Name: "a", Size: 2, Strategy: "linked", As: "a"},
		{Op: OpCrash, Severity: 0.25},
	}}
	var buf bytes.Buffer
	require.NoError(t, Marshal(&buf, in))
	assert.Contains(t, buf.String(), "continueOnError: true")

	out, err := Parse(&buf)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}
