package markov

import (
	"strconv"
	"strings"
)

// Symbol is one position of a training string: a Unicode code point, or one
// of the negative sentinels [Start] and [End].
type Symbol int32

const (
	// Start pads contexts on the left before the first real character.
	Start Symbol = -1
	// End terminates every training string and every generated password.
	End Symbol = -2
)

// MaxOrder is the longest supported context.
const MaxOrder = 16

// IsSentinel reports whether s is [Start] or [End].
func (s Symbol) IsSentinel() bool { return s == Start || s == End }

// valid reports whether s is a sentinel or a legal code point.
func (s Symbol) valid() bool {
	return s.IsSentinel() || (s >= 0 && s <= 0x10FFFF)
}

// String renders sentinels as "^" and "$" and characters as themselves,
// quoted when they are not printable.
func (s Symbol) String() string {
	switch s {
	case Start:
		return "^"
	case End:
		return "$"
	}
	r := rune(s)
	if strconv.IsPrint(r) {
		return string(r)
	}
	q := strconv.QuoteRune(r)
	return q[1 : len(q)-1]
}

// Tokenize converts s to its symbol sequence with [End] appended. Invalid
// UTF-8 bytes become U+FFFD, so the mapping is lossless only for valid UTF-8.
func Tokenize(s string) []Symbol {
	out := make([]Symbol, 0, len(s)+1)
	for _, r := range s {
		out = append(out, Symbol(r))
	}
	return append(out, End)
}

// Context is the ordered sequence of up to [MaxOrder] symbols preceding a
// prediction point. Contexts are comparable and are used directly as map
// keys; the zero value is the zero-length context.
type Context struct {
	n    uint8
	syms [MaxOrder]Symbol
}

// NewContext builds a context from syms. Only the last [MaxOrder] symbols
// are kept.
func NewContext(syms ...Symbol) Context {
	if len(syms) > MaxOrder {
		syms = syms[len(syms)-MaxOrder:]
	}
	var c Context
	c.n = uint8(copy(c.syms[:], syms))
	return c
}

// StartContext returns k [Start] symbols, the context at the first position
// of every string. k is clamped to [0, MaxOrder].
func StartContext(k int) Context {
	k = max(0, min(k, MaxOrder))
	var c Context
	for i := 0; i < k; i++ {
		c.syms[i] = Start
	}
	c.n = uint8(k)
	return c
}

// Len returns the number of symbols in c.
func (c Context) Len() int { return int(c.n) }

// Symbols returns a copy of the symbols in c.
func (c Context) Symbols() []Symbol {
	out := make([]Symbol, c.n)
	copy(out, c.syms[:c.n])
	return out
}

// Suffix returns the last k symbols of c, or c itself when k ≥ c.Len().
func (c Context) Suffix(k int) Context {
	if k >= int(c.n) {
		return c
	}
	if k <= 0 {
		return Context{}
	}
	return NewContext(c.syms[int(c.n)-k : c.n]...)
}

// Shift appends s and drops the leftmost symbol, keeping the length fixed.
// Shifting a zero-length context returns it unchanged.
func (c Context) Shift(s Symbol) Context {
	if c.n == 0 {
		return c
	}
	var out Context
	copy(out.syms[:], c.syms[1:c.n])
	out.syms[c.n-1] = s
	out.n = c.n
	return out
}

// String renders c as its symbols joined together, e.g. "^^c".
func (c Context) String() string {
	var sb strings.Builder
	for _, s := range c.syms[:c.n] {
		sb.WriteString(s.String())
	}
	return sb.String()
}

// less orders contexts by length, then symbol by symbol.
func (c Context) less(o Context) bool {
	if c.n != o.n {
		return c.n < o.n
	}
	for i := 0; i < int(c.n); i++ {
		if c.syms[i] != o.syms[i] {
			return c.syms[i] < o.syms[i]
		}
	}
	return false
}
