package markov

import (
	"fmt"
	"math/rand/v2"
	"strings"
)

// DefaultMaxLength is the default number of draws per generated password.
const DefaultMaxLength = 100

// GeneratorOptions configures a [Generator].
type GeneratorOptions struct {
	// Order is the context length used for lookups. Zero means the chain's
	// own order. Must not exceed it.
	Order int
	// MaxLength is the maximum number of symbols drawn per password,
	// terminator included.
	MaxLength int
}

// DefaultGeneratorOptions returns the chain's order and a 100-draw limit.
func DefaultGeneratorOptions() GeneratorOptions {
	return GeneratorOptions{MaxLength: DefaultMaxLength}
}

func validateGeneratorOptions(opts GeneratorOptions, chain *Chain) error {
	if opts.Order < 0 || opts.Order > chain.Order() {
		return fmt.Errorf("%w: order %d must be in [0, %d]", ErrInvalidOption, opts.Order, chain.Order())
	}
	if opts.MaxLength < 1 {
		return fmt.Errorf("%w: max length must be ≥ 1, got %d", ErrInvalidOption, opts.MaxLength)
	}
	return nil
}

// Generator samples passwords from a [Chain].
//
// A Generator owns its random source and is not safe for concurrent use.
// Parallel callers create one Generator per goroutine over a shared Chain.
type Generator struct {
	chain  *Chain
	rng    *rand.Rand
	order  int
	maxLen int
	sb     strings.Builder
}

// NewGenerator returns a Generator drawing from rng.
func NewGenerator(chain *Chain, rng *rand.Rand, opts GeneratorOptions) (*Generator, error) {
	if chain == nil {
		return nil, fmt.Errorf("%w: nil chain", ErrInvalidOption)
	}
	if rng == nil {
		return nil, fmt.Errorf("%w: nil random source", ErrInvalidOption)
	}
	if err := validateGeneratorOptions(opts, chain); err != nil {
		return nil, err
	}
	order := opts.Order
	if order == 0 {
		order = chain.Order()
	}
	return &Generator{chain: chain, rng: rng, order: order, maxLen: opts.MaxLength}, nil
}

// Next draws one password. It starts from the all-[Start] context, draws a
// symbol from the longest known suffix of the current context, and stops at
// [End]. The returned string never contains sentinels.
//
// If MaxLength draws pass without [End], Next returns
// [ErrGenerationExhausted] and the partial password is discarded.
func (g *Generator) Next() (string, error) {
	g.sb.Reset()
	ctx := StartContext(g.order)
	for i := 0; i < g.maxLen; i++ {
		d, _ := g.chain.Resolve(ctx)
		if d == nil {
			return "", fmt.Errorf("%w: no context resolves %q", ErrTrainingInvariant, ctx)
		}
		sym := d.Sample(g.rng)
		if sym == End {
			return g.sb.String(), nil
		}
		if !sym.IsSentinel() {
			g.sb.WriteRune(rune(sym))
		}
		ctx = ctx.Shift(sym)
	}
	return "", ErrGenerationExhausted
}
