package crack

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-pwrecover/hashing"
)

// DefaultMaxCandidates is the default candidate cap of a Markov session.
const DefaultMaxCandidates = 1_000_000

// DefaultProgressEvery is the default number of attempts between progress
// callbacks.
const DefaultProgressEvery = 10_000

// Progress is a snapshot passed to [Options.Progress].
type Progress struct {
	Attempts   int
	Candidates int
	Resolved   int
	Targets    int
	Elapsed    time.Duration
}

// Options configures a [Cracker].
type Options struct {
	// Algorithm is the digest applied to candidates for hex targets.
	// Empty means the default algorithm of Hashers.
	Algorithm hashing.Algorithm

	// Hashers resolves digest and verifier drivers. Nil means
	// hashing.NewDefaultManager().
	Hashers *hashing.Manager

	// MaxCandidates stops the run once this many distinct candidates were
	// hashed. Zero means unbounded.
	MaxCandidates int

	// MaxAttempts stops the run after this many draws from the source,
	// duplicates and skipped draws included. Zero means unbounded.
	MaxAttempts int

	// Dedup skips candidates already hashed in this run.
	Dedup bool

	// Strategy labels log records.
	Strategy string

	// Logger receives start, match and finish records. Nil disables logging.
	Logger *zerolog.Logger

	// Progress, if set, is called every ProgressEvery attempts and once at
	// the end of a run. It is always called from a single goroutine.
	Progress      func(Progress)
	ProgressEvery int
}

// DefaultOptions returns SHA-512 digests, a one million candidate cap with
// de-duplication, and no logging.
func DefaultOptions() Options {
	return Options{
		Algorithm:     hashing.DefaultAlgorithm,
		MaxCandidates: DefaultMaxCandidates,
		Dedup:         true,
		Strategy:      "custom",
		ProgressEvery: DefaultProgressEvery,
	}
}

func validateOptions(opts Options) error {
	if opts.MaxCandidates < 0 {
		return fmt.Errorf("%w: max candidates must be ≥ 0, got %d", ErrInvalidOption, opts.MaxCandidates)
	}
	if opts.MaxAttempts < 0 {
		return fmt.Errorf("%w: max attempts must be ≥ 0, got %d", ErrInvalidOption, opts.MaxAttempts)
	}
	if opts.Progress != nil && opts.ProgressEvery < 1 {
		return fmt.Errorf("%w: progress interval must be ≥ 1, got %d", ErrInvalidOption, opts.ProgressEvery)
	}
	return nil
}
