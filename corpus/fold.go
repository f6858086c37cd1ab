package corpus

import (
	"fmt"
	"math/rand/v2"
	"slices"
)

// DefaultFolds is the default number of cross-validation folds.
const DefaultFolds = 5

// Partition shuffles a copy of lines and splits it into n contiguous folds.
// The first len(lines)%n folds hold one extra line, so fold sizes differ by
// at most one. A nil rng uses the global source.
func Partition(lines []string, n int, rng *rand.Rand) ([][]string, error) {
	if n < 1 {
		return nil, fmt.Errorf("%w: got %d", ErrInvalidFoldCount, n)
	}
	shuffled := slices.Clone(lines)
	swap := func(i, j int) { shuffled[i], shuffled[j] = shuffled[j], shuffled[i] }
	if rng != nil {
		rng.Shuffle(len(shuffled), swap)
	} else {
		rand.Shuffle(len(shuffled), swap)
	}

	size, extra := len(shuffled)/n, len(shuffled)%n
	folds := make([][]string, n)
	off := 0
	for i := range folds {
		k := size
		if i < extra {
			k++
		}
		folds[i] = shuffled[off : off+k : off+k]
		off += k
	}
	return folds, nil
}

// TrainingSet returns the concatenation of every fold except fold i.
func TrainingSet(folds [][]string, i int) ([]string, error) {
	if i < 0 || i >= len(folds) {
		return nil, fmt.Errorf("%w: %d not in [0, %d)", ErrFoldIndex, i, len(folds))
	}
	total := 0
	for j, f := range folds {
		if j != i {
			total += len(f)
		}
	}
	out := make([]string, 0, total)
	for j, f := range folds {
		if j != i {
			out = append(out, f...)
		}
	}
	return out, nil
}
