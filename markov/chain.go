package markov

import (
	"fmt"
	"math"
	"math/rand/v2"
	"slices"
	"sort"
)

// Tolerance bounds the distance of every context's probability sum from one.
const Tolerance = 1e-9

// ──────────────────────────────────────────────────────────────────────────────
// Distribution
// ──────────────────────────────────────────────────────────────────────────────

// Distribution is the probability of each successor of one context. Symbols
// are kept in ascending order so that sampling is deterministic for a given
// random source.
type Distribution struct {
	symbols []Symbol
	probs   []float64
	cum     []float64
}

// Len returns the number of distinct successors.
func (d *Distribution) Len() int { return len(d.symbols) }

// Symbols returns the successors in ascending order.
func (d *Distribution) Symbols() []Symbol { return slices.Clone(d.symbols) }

// Prob returns the probability of next, or zero if it never followed the
// context.
func (d *Distribution) Prob(next Symbol) float64 {
	i, ok := slices.BinarySearch(d.symbols, next)
	if !ok {
		return 0
	}
	return d.probs[i]
}

// Sum returns the total probability mass of d.
func (d *Distribution) Sum() float64 {
	var s float64
	for _, p := range d.probs {
		s += p
	}
	return s
}

// Sample draws a successor with probability proportional to its weight.
func (d *Distribution) Sample(r *rand.Rand) Symbol {
	u := r.Float64()
	i := sort.Search(len(d.cum), func(i int) bool { return d.cum[i] > u })
	if i == len(d.cum) {
		i = len(d.cum) - 1
	}
	return d.symbols[i]
}

// accumulate fills the cumulative table. The last entry is pinned to one so
// rounding can never leave a draw uncovered.
func (d *Distribution) accumulate() {
	d.cum = make([]float64, len(d.probs))
	var acc float64
	for i, p := range d.probs {
		acc += p
		d.cum[i] = acc
	}
	if n := len(d.cum); n > 0 {
		d.cum[n-1] = 1
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Chain
// ──────────────────────────────────────────────────────────────────────────────

// Chain is a normalised, read-only transition table. It is safe for
// concurrent use.
type Chain struct {
	order int
	table map[Context]*Distribution
}

// Order returns the longest context length in the table.
func (c *Chain) Order() int { return c.order }

// Len returns the number of contexts in the table.
func (c *Chain) Len() int { return len(c.table) }

// Lookup returns the distribution for exactly ctx.
func (c *Chain) Lookup(ctx Context) (*Distribution, bool) {
	d, ok := c.table[ctx]
	return d, ok
}

// Resolve returns the distribution of the longest suffix of ctx present in
// the table, together with that suffix. Backoff ends at the zero-length
// context, which every valid chain contains.
func (c *Chain) Resolve(ctx Context) (*Distribution, Context) {
	for k := ctx.Len(); k >= 0; k-- {
		sub := ctx.Suffix(k)
		if d, ok := c.table[sub]; ok {
			return d, sub
		}
	}
	return nil, Context{}
}

// Contexts returns every context in the table, shortest first.
func (c *Chain) Contexts() []Context {
	out := make([]Context, 0, len(c.table))
	for ctx := range c.table {
		out = append(out, ctx)
	}
	slices.SortFunc(out, func(a, b Context) int {
		switch {
		case a.less(b):
			return -1
		case b.less(a):
			return 1
		}
		return 0
	})
	return out
}

// Validate checks the table invariants and returns an error wrapping
// [ErrTrainingInvariant] on the first violation.
func (c *Chain) Validate() error {
	if c.order < 1 || c.order > MaxOrder {
		return fmt.Errorf("%w: order %d out of range", ErrTrainingInvariant, c.order)
	}
	zero, ok := c.table[Context{}]
	if !ok || zero.Len() == 0 {
		return fmt.Errorf("%w: missing zero-length context", ErrTrainingInvariant)
	}
	for ctx, d := range c.table {
		if ctx.Len() > c.order {
			return fmt.Errorf("%w: context %q longer than order %d", ErrTrainingInvariant, ctx, c.order)
		}
		if d.Len() == 0 {
			return fmt.Errorf("%w: context %q has no successors", ErrTrainingInvariant, ctx)
		}
		for _, p := range d.probs {
			if !(p > 0 && p <= 1) {
				return fmt.Errorf("%w: context %q has probability %v", ErrTrainingInvariant, ctx, p)
			}
		}
		if s := d.Sum(); math.Abs(s-1) > Tolerance {
			return fmt.Errorf("%w: context %q sums to %v", ErrTrainingInvariant, ctx, s)
		}
	}
	return nil
}

// Score is the fit of a chain to held-out strings.
type Score struct {
	// Bits is the total negative log2 probability of the scored symbols.
	Bits float64
	// Symbols is the number of scored positions, terminators included.
	Symbols int
	// Unseen counts positions whose symbol never occurred in training, even
	// in the zero-length context. They are excluded from Bits.
	Unseen int
}

// BitsPerSymbol returns the average cost of a scored position.
func (s Score) BitsPerSymbol() float64 {
	if s.Symbols == 0 {
		return 0
	}
	return s.Bits / float64(s.Symbols)
}

// Add returns the sum of two scores.
func (s Score) Add(o Score) Score {
	return Score{Bits: s.Bits + o.Bits, Symbols: s.Symbols + o.Symbols, Unseen: s.Unseen + o.Unseen}
}

// LogLikelihood scores s under the chain. Each position uses the longest
// context that both exists in the table and has seen the symbol.
func (c *Chain) LogLikelihood(s string) Score {
	var sc Score
	ctx := StartContext(c.order)
	for _, sym := range Tokenize(s) {
		p := c.backoffProb(ctx, sym)
		if p > 0 {
			sc.Bits -= math.Log2(p)
			sc.Symbols++
		} else {
			sc.Unseen++
		}
		ctx = ctx.Shift(sym)
	}
	return sc
}

func (c *Chain) backoffProb(ctx Context, sym Symbol) float64 {
	for k := ctx.Len(); k >= 0; k-- {
		if d, ok := c.table[ctx.Suffix(k)]; ok {
			if p := d.Prob(sym); p > 0 {
				return p
			}
		}
	}
	return 0
}
