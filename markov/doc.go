// Package markov implements a character-level n-gram Markov model for
// password candidates.
//
// A model is trained in two phases. A [Builder] accumulates transition counts
// from training strings for every context length from 1 up to the configured
// order, plus the zero-length context. [Builder.Build] then normalises the
// counts into probabilities exactly once and returns a frozen [Chain]:
//
//	b, _ := markov.NewBuilder(3)
//	for _, line := range lines {
//	    _ = b.Add(line)
//	}
//	chain, err := b.Build()
//
// A Chain is read-only and safe to share between goroutines. Candidates are
// sampled from it with a [Generator], which walks from the all-start context,
// backing off to shorter contexts when a context was never observed, until
// the [End] symbol is drawn:
//
//	g, _ := markov.NewGenerator(chain, rand.New(rand.NewPCG(1, 2)), markov.DefaultGeneratorOptions())
//	pw, err := g.Next()
//	if errors.Is(err, markov.ErrGenerationExhausted) {
//	    // no terminator within MaxLength draws; draw again
//	}
//
// Start padding and termination use the [Start] and [End] sentinels, which are
// negative [Symbol] values and therefore can never collide with a rune of
// training input.
//
// Models are persisted with [Save] and [Load]; the file can optionally be
// sealed at rest by any [Sealer].
package markov
