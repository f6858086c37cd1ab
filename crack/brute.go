package crack

import (
	"context"
	"fmt"
	"math/bits"
	"unicode/utf8"
)

// DefaultAlphabet is the brute-force alphabet: lowercase letters and digits.
const DefaultAlphabet = "abcdefghijklmnopqrstuvwxyz0123456789"

// Shortlex enumerates every string over an alphabet in shortlex order:
// shorter strings first, and within one length in alphabet order with the
// last position varying fastest.
type Shortlex struct {
	alphabet []rune
	minLen   int
	maxLen   int
	idx      []int
	buf      []rune
	done     bool
}

// NewShortlex returns an enumerator of all strings of length minLen..maxLen.
// The alphabet must be non-empty and free of repeated characters.
func NewShortlex(alphabet string, minLen, maxLen int) (*Shortlex, error) {
	if alphabet == "" || !utf8.ValidString(alphabet) {
		return nil, fmt.Errorf("%w: alphabet must be non-empty UTF-8", ErrInvalidOption)
	}
	if minLen < 0 || maxLen < minLen {
		return nil, fmt.Errorf("%w: lengths %d..%d", ErrInvalidOption, minLen, maxLen)
	}
	runes := []rune(alphabet)
	seen := make(map[rune]bool, len(runes))
	for _, r := range runes {
		if seen[r] {
			return nil, fmt.Errorf("%w: alphabet repeats %q", ErrInvalidOption, r)
		}
		seen[r] = true
	}
	return &Shortlex{
		alphabet: runes,
		minLen:   minLen,
		maxLen:   maxLen,
		idx:      make([]int, minLen),
		buf:      make([]rune, minLen),
	}, nil
}

// Next returns the current string and advances. After the last string of
// length maxLen it returns [ErrSourceExhausted].
func (s *Shortlex) Next() (string, error) {
	if s.done {
		return "", ErrSourceExhausted
	}
	for i, j := range s.idx {
		s.buf[i] = s.alphabet[j]
	}
	out := string(s.buf)
	s.advance()
	return out, nil
}

func (s *Shortlex) advance() {
	for i := len(s.idx) - 1; i >= 0; i-- {
		s.idx[i]++
		if s.idx[i] < len(s.alphabet) {
			return
		}
		s.idx[i] = 0
	}
	// Every position wrapped: move to the next length.
	n := len(s.idx) + 1
	if n > s.maxLen {
		s.done = true
		return
	}
	s.idx = make([]int, n)
	s.buf = make([]rune, n)
}

// Total returns the number of strings the enumerator yields in all, and
// false if that number overflows uint64.
func (s *Shortlex) Total() (uint64, bool) {
	k := uint64(len(s.alphabet))
	var total uint64
	pow := uint64(1)
	for l := 0; l <= s.maxLen; l++ {
		if l >= s.minLen {
			var carry uint64
			total, carry = bits.Add64(total, pow, 0)
			if carry != 0 {
				return 0, false
			}
		}
		if l == s.maxLen {
			break
		}
		hi, lo := bits.Mul64(pow, k)
		if hi != 0 {
			return 0, false
		}
		pow = lo
	}
	return total, true
}

// BruteOptions configures [CrackBrute].
type BruteOptions struct {
	Options
	Alphabet  string
	MinLength int
	MaxLength int
}

// DefaultBruteOptions enumerates [DefaultAlphabet] from the empty string up
// to length 6. MaxLength bounds the run, so there is no candidate cap.
func DefaultBruteOptions() BruteOptions {
	o := DefaultOptions()
	o.MaxCandidates = 0
	o.Dedup = false
	o.Strategy = "brute-force"
	return BruteOptions{Options: o, Alphabet: DefaultAlphabet, MinLength: 0, MaxLength: 6}
}

// CrackBrute enumerates candidates in shortlex order.
func CrackBrute(ctx context.Context, targets []Target, opts BruteOptions) (*Report, error) {
	src, err := NewShortlex(opts.Alphabet, opts.MinLength, opts.MaxLength)
	if err != nil {
		return nil, err
	}
	c, err := NewCracker(targets, opts.Options)
	if err != nil {
		return nil, err
	}
	if total, ok := src.Total(); ok {
		c.log.Debug().Uint64("keyspace", total).Msg("brute-force keyspace")
	}
	return c.Run(ctx, src)
}
