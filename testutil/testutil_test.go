package testutil

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReset(t *testing.T) {
	rng := NewRNG(4711)
	a := []int{rng.Intn(100), rng.Intn(100), rng.Intn(100)}
	f := rng.Float64()

	rng.Reset()
	b := []int{rng.Intn(100), rng.Intn(100), rng.Intn(100)}

	assert.Equal(t, a, b)
	assert.Equal(t, f, rng.Float64())
	assert.Equal(t, int64(4711), rng.Seed())
}

func TestRead(t *testing.T) {
	a, b := NewRNG(1), NewRNG(1)
	p, q := make([]byte, 16), make([]byte, 16)

	n, err := a.Read(p)
	require.NoError(t, err)
	assert.Equal(t, 16, n)
	_, err = b.Read(q)
	require.NoError(t, err)
	assert.Equal(t, p, q)
}

func TestSizes(t *testing.T) {
	sizes := NewRNG(7).Sizes(50, 4)

	require.Len(t, sizes, 50)
	for _, s := range sizes {
		assert.GreaterOrEqual(t, s, 1)
		assert.LessOrEqual(t, s, 4)
	}
}

func TestFixedRand(t *testing.T) {
	r := NewFixedRand(3, 0.25)

	assert.Equal(t, 0.25, r.Float64())
	assert.Equal(t, 0.25, r.Float64())
	assert.Less(t, r.Intn(10), 10)
}

func TestClocks(t *testing.T) {
	start := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)

	fixed := FixedClock(start)
	assert.Equal(t, start, fixed())
	assert.Equal(t, start, fixed())

	step := NewStepClock(start, time.Second)
	assert.Equal(t, start, step.Now())
	assert.Equal(t, start.Add(time.Second), step.Now())
}

func TestInterleaveAndEveryOther(t *testing.T) {
	var created []string
	create := func(name string, size int) (string, error) {
		created = append(created, name)
		return "id-" + name, nil
	}

	ids, err := Interleave(create, "f", 5, 2)
	require.NoError(t, err)
	assert.Equal(t, []string{"id-f-0", "id-f-1", "id-f-2", "id-f-3", "id-f-4"}, ids)
	assert.Equal(t, []string{"f-0", "f-1", "f-2", "f-3", "f-4"}, created)

	var deleted []string
	kept, err := EveryOther(ids, func(id string) error {
		deleted = append(deleted, id)
		return nil
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"id-f-1", "id-f-3"}, deleted)
	assert.Equal(t, []string{"id-f-0", "id-f-2", "id-f-4"}, kept)
}

func TestInterleaveStopsOnError(t *testing.T) {
	boom := errors.New("boom")
	n := 0
	create := func(name string, size int) (string, error) {
		n++
		if n == 3 {
			return "", boom
		}
		return name, nil
	}

	ids, err := Interleave(create, "f", 5, 1)
	require.ErrorIs(t, err, boom)
	assert.Len(t, ids, 2)
}
