package markov

import "fmt"

// Pair is one observation: the symbol Next followed Context.
type Pair struct {
	Context Context
	Next    Symbol
}

// Extract returns, for every context length n in 1..k, the (context, next)
// pairs of seq. The result is indexed by n-1 and each inner slice has one
// pair per position of seq.
//
// For position i < n the context is Start repeated n-i times followed by
// seq[:i]; otherwise it is seq[i-n:i]. Callers append [End] before
// extraction, see [Tokenize].
func Extract(seq []Symbol, k int) ([][]Pair, error) {
	if k < 1 || k > MaxOrder {
		return nil, fmt.Errorf("%w: %d must be in [1, %d]", ErrInvalidOrder, k, MaxOrder)
	}
	out := make([][]Pair, k)
	for n := 1; n <= k; n++ {
		out[n-1] = extractN(seq, n, make([]Pair, 0, len(seq)))
	}
	return out, nil
}

// extractN appends the length-n pairs of seq to dst.
func extractN(seq []Symbol, n int, dst []Pair) []Pair {
	ctx := StartContext(n)
	for _, s := range seq {
		dst = append(dst, Pair{Context: ctx, Next: s})
		ctx = ctx.Shift(s)
	}
	return dst
}
