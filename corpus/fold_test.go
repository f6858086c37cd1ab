package corpus_test

import (
	"errors"
	"fmt"
	"math/rand/v2"
	"slices"
	"testing"

	"github.com/hasbyte1/go-pwrecover/corpus"
)

func numbered(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = fmt.Sprintf("line-%d", i)
	}
	return out
}

func TestPartition_Properties(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 4))
	for _, m := range []int{0, 1, 4, 5, 13, 100, 257} {
		for _, n := range []int{1, 2, 3, 5, 7, 10} {
			lines := numbered(m)
			folds, err := corpus.Partition(lines, n, rng)
			if err != nil {
				t.Fatalf("Partition(%d, %d): %v", m, n, err)
			}
			if len(folds) != n {
				t.Fatalf("Partition(%d, %d) returned %d folds", m, n, len(folds))
			}

			seen := make(map[string]bool, m)
			total := 0
			minSize, maxSize := m+1, -1
			for i, f := range folds {
				total += len(f)
				minSize, maxSize = min(minSize, len(f)), max(maxSize, len(f))
				if want := m/n + boolInt(i < m%n); len(f) != want {
					t.Errorf("M=%d N=%d: fold %d has %d lines, want %d", m, n, i, len(f), want)
				}
				for _, l := range f {
					if seen[l] {
						t.Errorf("M=%d N=%d: %q appears in more than one fold", m, n, l)
					}
					seen[l] = true
				}
			}
			if total != m || len(seen) != m {
				t.Errorf("M=%d N=%d: folds hold %d lines (%d distinct)", m, n, total, len(seen))
			}
			if maxSize-minSize > 1 {
				t.Errorf("M=%d N=%d: fold sizes range %d..%d", m, n, minSize, maxSize)
			}
		}
	}
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

func TestPartition_DoesNotMutateInput(t *testing.T) {
	lines := numbered(20)
	orig := slices.Clone(lines)
	_, _ = corpus.Partition(lines, 4, rand.New(rand.NewPCG(1, 1)))
	if !slices.Equal(lines, orig) {
		t.Error("Partition reordered its input")
	}
}

func TestPartition_SeededShuffleIsReproducible(t *testing.T) {
	lines := numbered(50)
	a, _ := corpus.Partition(lines, 5, rand.New(rand.NewPCG(9, 9)))
	b, _ := corpus.Partition(lines, 5, rand.New(rand.NewPCG(9, 9)))
	for i := range a {
		if !slices.Equal(a[i], b[i]) {
			t.Fatalf("fold %d differs for the same seed", i)
		}
	}
}

func TestPartition_NilSource(t *testing.T) {
	folds, err := corpus.Partition(numbered(10), 3, nil)
	if err != nil || len(folds) != 3 {
		t.Errorf("Partition with nil rng = (%d folds, %v)", len(folds), err)
	}
}

func TestPartition_InvalidFoldCount(t *testing.T) {
	for _, n := range []int{0, -2} {
		if _, err := corpus.Partition(numbered(3), n, nil); !errors.Is(err, corpus.ErrInvalidFoldCount) {
			t.Errorf("n=%d: got %v, want ErrInvalidFoldCount", n, err)
		}
	}
}

func TestTrainingSet(t *testing.T) {
	folds := [][]string{{"a", "b"}, {"c"}, {"d", "e"}}
	got, err := corpus.TrainingSet(folds, 1)
	if err != nil {
		t.Fatal(err)
	}
	if !slices.Equal(got, []string{"a", "b", "d", "e"}) {
		t.Errorf("TrainingSet(1) = %q", got)
	}
	for _, i := range []int{-1, 3} {
		if _, err := corpus.TrainingSet(folds, i); !errors.Is(err, corpus.ErrFoldIndex) {
			t.Errorf("TrainingSet(%d) = %v, want ErrFoldIndex", i, err)
		}
	}
}

func TestTrainingSet_DoesNotAliasFolds(t *testing.T) {
	folds := [][]string{{"a"}, {"b"}, {"c"}}
	got, _ := corpus.TrainingSet(folds, 2)
	got[0] = "mutated"
	if folds[0][0] != "a" {
		t.Error("TrainingSet aliases fold storage")
	}
}
