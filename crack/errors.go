package crack

import "errors"

// Sentinel errors returned by crack operations.
var (
	// ErrInvalidOption is returned when options are out of range.
	ErrInvalidOption = errors.New("crack: invalid option value")

	// ErrNoTargets is returned when a cracker is built without targets.
	ErrNoTargets = errors.New("crack: no targets")

	// ErrInvalidTarget is returned for a target that cannot be matched under
	// the configured algorithm, such as a digest of the wrong length.
	ErrInvalidTarget = errors.New("crack: invalid target")

	// ErrSourceExhausted is returned by a [Source] that has no more
	// candidates. The driver stops with [StopExhausted].
	ErrSourceExhausted = errors.New("crack: source exhausted")

	// ErrSkip is returned by a [Source] whose draw produced no candidate.
	// The driver counts the attempt and draws again.
	ErrSkip = errors.New("crack: attempt produced no candidate")
)
