package markov

import "errors"

// Sentinel errors returned by markov operations.
var (
	// ErrInvalidOrder is returned when a context length is outside [1, MaxOrder].
	ErrInvalidOrder = errors.New("markov: invalid n-gram order")

	// ErrEmptyCorpus is returned by [Builder.Build] when no training string
	// was added.
	ErrEmptyCorpus = errors.New("markov: empty training corpus")

	// ErrBuilderSpent is returned when a [Builder] is used after Build.
	// Counts are normalised exactly once.
	ErrBuilderSpent = errors.New("markov: builder already built")

	// ErrInvalidUTF8 is returned by [Builder.Add] for a string that is not
	// valid UTF-8. Such a string cannot be reproduced from its symbols.
	ErrInvalidUTF8 = errors.New("markov: training string is not valid UTF-8")

	// ErrTrainingInvariant is returned when a table violates the model
	// invariants: a context with no successors, probabilities that do not sum
	// to one, or a missing zero-length context.
	ErrTrainingInvariant = errors.New("markov: transition table invariant violated")

	// ErrGenerationExhausted is returned by [Generator.Next] when MaxLength
	// symbols were drawn without the terminator. The attempt is discarded.
	ErrGenerationExhausted = errors.New("markov: maximum length reached without terminator")

	// ErrInvalidOption is returned when generator or evaluation options are
	// out of range.
	ErrInvalidOption = errors.New("markov: invalid option value")

	// ErrUnsupportedVersion is returned by [Decode] for model files written by
	// an unknown format version.
	ErrUnsupportedVersion = errors.New("markov: unsupported model format version")
)
