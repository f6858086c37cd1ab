package markov_test

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/hasbyte1/go-pwrecover/markov"
)

func TestChain_ResolveBacksOff(t *testing.T) {
	c := mustTrain(t, []string{"cat", "car", "cab"}, 2)
	cases := []struct {
		in, want string
	}{
		{"ca", "ca"}, // present
		{"za", "a"},  // drops the unseen leftmost symbol
		{"xy", ""},   // falls back to the zero-length context
	}
	for _, tc := range cases {
		d, got := c.Resolve(ctx(tc.in))
		if d == nil {
			t.Fatalf("Resolve(%q) returned nil distribution", tc.in)
		}
		if got != ctx(tc.want) {
			t.Errorf("Resolve(%q) resolved at %q, want %q", tc.in, got, tc.want)
		}
	}
}

func TestDistribution_SampleFrequencies(t *testing.T) {
	c := mustTrain(t, []string{"cat", "car", "cab"}, 2)
	d, _ := c.Lookup(ctx("ca"))
	rng := rand.New(rand.NewPCG(7, 11))
	hits := map[markov.Symbol]int{}
	const n = 30000
	for i := 0; i < n; i++ {
		hits[d.Sample(rng)]++
	}
	for _, r := range "brt" {
		f := float64(hits[markov.Symbol(r)]) / n
		if math.Abs(f-1.0/3) > 0.02 {
			t.Errorf("frequency of %c = %.3f, want ≈ 0.333", r, f)
		}
	}
	if len(hits) != 3 {
		t.Errorf("sampled %d distinct symbols, want 3", len(hits))
	}
}

func TestChain_LogLikelihood(t *testing.T) {
	c := mustTrain(t, []string{"ab"}, 1)

	sc := c.LogLikelihood("ab")
	if sc.Symbols != 3 || sc.Unseen != 0 || sc.Bits != 0 {
		t.Errorf(`LogLikelihood("ab") = %+v, want 3 symbols at 0 bits`, sc)
	}

	// a→x is unseen everywhere; x→End backs off to P(End | ε) = 1/3.
	sc = c.LogLikelihood("ax")
	if sc.Symbols != 2 || sc.Unseen != 1 {
		t.Errorf(`LogLikelihood("ax") = %+v, want 2 scored and 1 unseen`, sc)
	}
	if math.Abs(sc.Bits-math.Log2(3)) > 1e-12 {
		t.Errorf("Bits = %v, want log2(3)", sc.Bits)
	}
	if bps := sc.BitsPerSymbol(); math.Abs(bps-math.Log2(3)/2) > 1e-12 {
		t.Errorf("BitsPerSymbol = %v", bps)
	}
}

func TestChain_ContextsShortestFirst(t *testing.T) {
	c := mustTrain(t, []string{"hello", "help"}, 3)
	cs := c.Contexts()
	if len(cs) != c.Len() {
		t.Fatalf("Contexts() returned %d, Len() = %d", len(cs), c.Len())
	}
	if cs[0].Len() != 0 {
		t.Errorf("first context = %q, want the zero-length context", cs[0])
	}
	for i := 1; i < len(cs); i++ {
		if cs[i-1].Len() > cs[i].Len() {
			t.Fatalf("contexts not ordered by length at %d", i)
		}
	}
}
