package markov

import (
	"fmt"
	"slices"
	"unicode/utf8"
)

// counts maps a successor symbol to its occurrence count. A missing symbol
// counts as zero.
type counts map[Symbol]uint64

// Builder accumulates transition counts for a single training run.
//
// A Builder is owned by one goroutine. After [Builder.Build] it is spent:
// further calls to Add or Build return [ErrBuilderSpent], so counts are never
// normalised twice.
type Builder struct {
	order   int
	table   map[Context]counts
	strings int
	spent   bool
	pairs   []Pair
}

// NewBuilder returns an empty Builder for contexts of length 1..order.
// Returns [ErrInvalidOrder] if order is outside [1, MaxOrder].
func NewBuilder(order int) (*Builder, error) {
	if order < 1 || order > MaxOrder {
		return nil, fmt.Errorf("%w: %d must be in [1, %d]", ErrInvalidOrder, order, MaxOrder)
	}
	return &Builder{
		order: order,
		table: make(map[Context]counts),
	}, nil
}

// Order returns the longest context length recorded by b.
func (b *Builder) Order() int { return b.order }

// Strings returns the number of training strings added so far.
func (b *Builder) Strings() int { return b.strings }

// Add records every transition of s, including the final one into [End].
// Each symbol also counts once towards the zero-length context.
// Strings that are not valid UTF-8 are rejected with [ErrInvalidUTF8].
func (b *Builder) Add(s string) error {
	if b.spent {
		return ErrBuilderSpent
	}
	if !utf8.ValidString(s) {
		return fmt.Errorf("%w: %q", ErrInvalidUTF8, s)
	}
	seq := Tokenize(s)
	for _, sym := range seq {
		b.inc(Context{}, sym)
	}
	for n := 1; n <= b.order; n++ {
		b.pairs = extractN(seq, n, b.pairs[:0])
		for _, p := range b.pairs {
			b.inc(p.Context, p.Next)
		}
	}
	b.strings++
	return nil
}

// AddAll calls Add for every line.
func (b *Builder) AddAll(lines []string) error {
	for _, l := range lines {
		if err := b.Add(l); err != nil {
			return err
		}
	}
	return nil
}

// Count returns the number of times next followed ctx. Unseen contexts and
// successors count as zero.
func (b *Builder) Count(ctx Context, next Symbol) uint64 {
	return b.table[ctx][next]
}

func (b *Builder) inc(ctx Context, next Symbol) {
	c, ok := b.table[ctx]
	if !ok {
		c = make(counts, 4)
		b.table[ctx] = c
	}
	c[next]++
}

// Build normalises the accumulated counts into a frozen [Chain] and marks the
// builder as spent.
//
// Returns [ErrEmptyCorpus] if nothing was added, or [ErrBuilderSpent] on a
// second call.
func (b *Builder) Build() (*Chain, error) {
	if b.spent {
		return nil, ErrBuilderSpent
	}
	if b.strings == 0 {
		return nil, ErrEmptyCorpus
	}
	b.spent = true

	chain := &Chain{order: b.order, table: make(map[Context]*Distribution, len(b.table))}
	for ctx, c := range b.table {
		chain.table[ctx] = newDistribution(c)
	}
	b.table = nil
	b.pairs = nil
	return chain, nil
}

// newDistribution divides every count by the context total.
func newDistribution(c counts) *Distribution {
	syms := make([]Symbol, 0, len(c))
	var total uint64
	for s, n := range c {
		syms = append(syms, s)
		total += n
	}
	slices.Sort(syms)

	d := &Distribution{
		symbols: syms,
		probs:   make([]float64, len(syms)),
	}
	for i, s := range syms {
		d.probs[i] = float64(c[s]) / float64(total)
	}
	d.accumulate()
	return d
}

// Train builds a chain of the given order from lines in one step.
func Train(lines []string, order int) (*Chain, error) {
	b, err := NewBuilder(order)
	if err != nil {
		return nil, err
	}
	if err := b.AddAll(lines); err != nil {
		return nil, err
	}
	return b.Build()
}
