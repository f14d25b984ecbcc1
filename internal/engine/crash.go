package engine

import (
	"fmt"
	"math"
	"slices"
)

// SimulateCrash corrupts floor(used*severity) Used blocks, at least one, drawn
// uniformly without replacement. Owners and labels are kept. The corrupted ids
// are returned in ascending order; a disk with no Used blocks yields none.
func (e *Engine) SimulateCrash(severity float64) ([]int, error) {
	if !(severity > 0 && severity <= 1) {
		return nil, fmt.Errorf("%w %v must be in (0, 1]", ErrInvalidSeverity, severity)
	}

	used := e.disk.IDsWithStatus(Used)
	if len(used) == 0 {
		return []int{}, nil
	}
	k := max(1, int(math.Floor(float64(len(used))*severity)))

	// Partial Fisher-Yates: the first k slots end up a uniform sample.
	for i := range k {
		j := i + e.rng.Intn(len(used)-i)
		used[i], used[j] = used[j], used[i]
	}
	chosen := used[:k]
	for _, id := range chosen {
		if err := e.disk.Corrupt(id); err != nil {
			return nil, err
		}
	}

	slices.Sort(chosen)
	return chosen, nil
}
