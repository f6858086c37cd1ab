package corpus

import "errors"

// Sentinel errors returned by corpus operations.
var (
	// ErrCorpusRead is returned when a corpus file is missing or unreadable.
	ErrCorpusRead = errors.New("corpus: cannot read corpus")

	// ErrInvalidFoldCount is returned when a fold count is less than one.
	ErrInvalidFoldCount = errors.New("corpus: fold count must be at least 1")

	// ErrFoldIndex is returned when a fold index is out of range.
	ErrFoldIndex = errors.New("corpus: fold index out of range")
)
