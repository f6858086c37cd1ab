package crack

// Source produces candidate plaintexts.
//
// Next returns [ErrSourceExhausted] when there are no more candidates, and an
// error wrapping [ErrSkip] when a draw produced nothing usable. Any other
// error aborts the run.
//
// A Source is used by one goroutine at a time.
type Source interface {
	Next() (string, error)
}

// SourceFunc adapts a function to [Source].
type SourceFunc func() (string, error)

// Next calls f.
func (f SourceFunc) Next() (string, error) { return f() }

// SliceSource yields the given candidates in order, then
// [ErrSourceExhausted].
func SliceSource(candidates ...string) Source {
	i := 0
	return SourceFunc(func() (string, error) {
		if i >= len(candidates) {
			return "", ErrSourceExhausted
		}
		i++
		return candidates[i-1], nil
	})
}
