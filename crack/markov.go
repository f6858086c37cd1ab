package crack

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"

	"github.com/hasbyte1/go-pwrecover/markov"
	"github.com/hasbyte1/go-pwrecover/prng"
)

// MarkovSource adapts a markov.Generator to [Source]. A generation attempt
// that hits the length limit is reported as [ErrSkip].
type MarkovSource struct {
	gen *markov.Generator
}

// NewMarkovSource wraps g.
func NewMarkovSource(g *markov.Generator) *MarkovSource {
	return &MarkovSource{gen: g}
}

// Next draws one password from the generator.
func (s *MarkovSource) Next() (string, error) {
	pw, err := s.gen.Next()
	if errors.Is(err, markov.ErrGenerationExhausted) {
		return "", fmt.Errorf("%w: %v", ErrSkip, err)
	}
	return pw, err
}

// MarkovOptions configures [CrackMarkov].
type MarkovOptions struct {
	Options

	// Generator configures every worker's generator.
	Generator markov.GeneratorOptions

	// Workers is the number of generator goroutines. One runs the session
	// on the calling goroutine.
	Workers int

	// Seed makes a run reproducible. Worker i draws from ChaCha20 stream i
	// of the seed. Zero picks a random seed.
	Seed uint64
}

// DefaultMarkovOptions returns [DefaultOptions] with one worker and the
// default generator limits.
func DefaultMarkovOptions() MarkovOptions {
	o := DefaultOptions()
	o.Strategy = "markov"
	return MarkovOptions{
		Options:   o,
		Generator: markov.DefaultGeneratorOptions(),
		Workers:   1,
	}
}

// CrackMarkov generates candidates from chain until every target is
// resolved or a cap is reached.
//
// When MaxAttempts is zero it defaults to ten times MaxCandidates, so a
// chain that keeps producing duplicates still terminates. Leaving both
// unbounded is rejected with [ErrInvalidOption].
func CrackMarkov(ctx context.Context, chain *markov.Chain, targets []Target, opts MarkovOptions) (*Report, error) {
	if chain == nil {
		return nil, fmt.Errorf("%w: nil chain", ErrInvalidOption)
	}
	if opts.Workers < 1 {
		return nil, fmt.Errorf("%w: workers must be ≥ 1, got %d", ErrInvalidOption, opts.Workers)
	}
	if opts.MaxAttempts == 0 {
		if opts.MaxCandidates == 0 {
			return nil, fmt.Errorf("%w: markov runs need MaxCandidates or MaxAttempts", ErrInvalidOption)
		}
		opts.MaxAttempts = 10 * opts.MaxCandidates
	}

	c, err := NewCracker(targets, opts.Options)
	if err != nil {
		return nil, err
	}

	seed := opts.Seed
	if seed == 0 {
		seed = rand.Uint64()
	}
	sources := make([]Source, opts.Workers)
	for i := range sources {
		g, err := markov.NewGenerator(chain, prng.NewRand(seed, uint64(i)), opts.Generator)
		if err != nil {
			return nil, err
		}
		sources[i] = NewMarkovSource(g)
	}
	c.log.Debug().Uint64("seed", seed).Int("order", chain.Order()).Msg("markov sources ready")

	if opts.Workers == 1 {
		return c.Run(ctx, sources[0])
	}
	return c.RunParallel(ctx, sources)
}
