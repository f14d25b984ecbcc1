package testutil

import (
	"fmt"
	"math/rand"
	"sync"
	"time"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)), //nolint:gosec // test determinism
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the initial seed.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a non-negative pseudo-random number in [0,n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Float64 returns a pseudo-random number in [0.0,1.0).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Read fills p with pseudo-random bytes. It never fails.
func (r *RNG) Read(p []byte) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Read(p)
}

// Sizes returns n file sizes in [1, maxBlocks].
func (r *RNG) Sizes(n, maxBlocks int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]int, n)
	for i := range out {
		out[i] = 1 + r.rand.Intn(maxBlocks)
	}
	return out
}

// FixedRand is a RandomSource whose Float64 always returns P. Intn and Read
// delegate to a seeded RNG. Useful to force every recovery to succeed (P=0)
// or fail (P=1).
type FixedRand struct {
	*RNG
	P float64
}

// NewFixedRand returns a FixedRand seeded with seed.
func NewFixedRand(seed int64, p float64) *FixedRand {
	return &FixedRand{RNG: NewRNG(seed), P: p}
}

// Float64 returns the fixed value.
func (f *FixedRand) Float64() float64 { return f.P }

// FixedClock returns a clock that always reports t.
func FixedClock(t time.Time) func() time.Time {
	return func() time.Time { return t }
}

// StepClock advances by a fixed step on every reading.
type StepClock struct {
	mu   sync.Mutex
	now  time.Time
	step time.Duration
}

// NewStepClock returns a clock whose first reading is start.
func NewStepClock(start time.Time, step time.Duration) *StepClock {
	return &StepClock{now: start, step: step}
}

// Now returns the current reading and advances the clock.
func (c *StepClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	t := c.now
	c.now = c.now.Add(c.step)
	return t
}

// CreateFunc creates a file of size blocks and returns its id.
type CreateFunc func(name string, size int) (string, error)

// Interleave creates n files of size blocks each, named prefix-0 .. prefix-n-1,
// and returns their ids in creation order. On an empty disk with contiguous
// allocation the files sit back to back.
func Interleave(create CreateFunc, prefix string, n, size int) ([]string, error) {
	ids := make([]string, 0, n)
	for i := range n {
		id, err := create(fmt.Sprintf("%s-%d", prefix, i), size)
		if err != nil {
			return ids, fmt.Errorf("create %s-%d: %w", prefix, i, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// EveryOther calls fn for ids[1], ids[3], ... and returns the ids it kept.
// Combined with Interleave it punches regular holes in a disk.
func EveryOther(ids []string, fn func(id string) error) ([]string, error) {
	kept := make([]string, 0, (len(ids)+1)/2)
	for i, id := range ids {
		if i%2 == 0 {
			kept = append(kept, id)
			continue
		}
		if err := fn(id); err != nil {
			return kept, err
		}
	}
	return kept, nil
}
