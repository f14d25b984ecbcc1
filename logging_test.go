package fros

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vijay-x-Raj/File-Recovery-and-Optimization-System/testutil"
)

func TestLogging(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	ctx := context.Background()
	sim, err := New(
		WithTotalBlocks(32),
		WithRandSource(testutil.NewFixedRand(3, 0.99)),
		WithLogger(logger),
	)
	require.NoError(t, err)

	f, err := sim.CreateFile(ctx, "a.txt", 4, RootID, Contiguous)
	require.NoError(t, err)
	_, err = sim.CreateFile(ctx, "huge", 100, RootID, Contiguous)
	require.Error(t, err)

	_, err = sim.SimulateCrash(ctx, 1)
	require.NoError(t, err)
	_, err = sim.ReadFile(ctx, f.ID)
	require.NoError(t, err)
	sim.RunFsck(ctx)
	sim.RecoverCorruptedBlocks(ctx)
	sim.RunFsck(ctx)
	sim.Defragment(ctx)
	require.NoError(t, sim.DeleteFile(ctx, f.ID))

	var dump bytes.Buffer
	_, err = sim.Export(ctx, &dump)
	require.NoError(t, err)

	out := buf.String()
	for _, msg := range []string{
		"create completed",
		"create failed",
		"crash simulated",
		"read hit corrupted block",
		"fsck found inconsistencies",
		"recovery completed with data loss",
		"fsck clean",
		"defragment completed",
		"delete completed",
		"export completed",
	} {
		assert.Contains(t, out, msg)
	}
	assert.Contains(t, out, `"file_id":"`+f.ID+`"`)
}

func TestLoggerWithFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewLogger(slog.NewJSONHandler(&buf, nil)).WithID("abc").WithCount(3)

	logger.Info("hello")

	assert.Contains(t, buf.String(), `"file_id":"abc"`)
	assert.Contains(t, buf.String(), `"count":3`)
}

func TestNoopLogger(t *testing.T) {
	logger := NoopLogger()
	assert.False(t, logger.Enabled(context.Background(), slog.LevelError))

	sim, err := New(WithLogger(nil))
	require.NoError(t, err)
	_, err = sim.CreateFile(context.Background(), "a", 1, RootID, Linked)
	require.NoError(t, err)
}
