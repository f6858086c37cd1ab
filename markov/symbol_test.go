package markov_test

import (
	"errors"
	"reflect"
	"testing"

	"github.com/hasbyte1/go-pwrecover/markov"
)

func TestContext_ShiftSuffix(t *testing.T) {
	c := markov.StartContext(3)
	if c.String() != "^^^" {
		t.Fatalf("StartContext(3) = %q", c)
	}
	c = c.Shift('a').Shift('b')
	if c.String() != "^ab" || c.Len() != 3 {
		t.Errorf("after shifts = %q (len %d), want ^ab", c, c.Len())
	}
	if s := c.Suffix(2); s != ctx("ab") {
		t.Errorf("Suffix(2) = %q, want ab", s)
	}
	if s := c.Suffix(0); s != (markov.Context{}) {
		t.Errorf("Suffix(0) = %q, want empty", s)
	}
	if s := c.Suffix(5); s != c {
		t.Errorf("Suffix(5) = %q, want %q", s, c)
	}
	if z := (markov.Context{}).Shift('x'); z.Len() != 0 {
		t.Errorf("shifting the empty context changed it: %q", z)
	}
}

func TestContext_Comparable(t *testing.T) {
	a := markov.NewContext('a', 'b')
	b := markov.StartContext(2).Shift('a').Shift('b')
	if a != b {
		t.Errorf("equal contexts compare unequal: %q vs %q", a, b)
	}
	m := map[markov.Context]int{a: 1}
	if m[b] != 1 {
		t.Error("equal contexts are different map keys")
	}
}

func TestTokenize(t *testing.T) {
	got := markov.Tokenize("hé")
	want := []markov.Symbol{'h', 'é', markov.End}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("Tokenize = %v, want %v", got, want)
	}
	if got := markov.Tokenize(""); !reflect.DeepEqual(got, []markov.Symbol{markov.End}) {
		t.Errorf("Tokenize(\"\") = %v", got)
	}
}

func TestExtract(t *testing.T) {
	pairs, err := markov.Extract(markov.Tokenize("ab"), 2)
	if err != nil {
		t.Fatal(err)
	}
	want := [][]markov.Pair{
		{{Context: ctx("^"), Next: 'a'}, {Context: ctx("a"), Next: 'b'}, {Context: ctx("b"), Next: markov.End}},
		{{Context: ctx("^^"), Next: 'a'}, {Context: ctx("^a"), Next: 'b'}, {Context: ctx("ab"), Next: markov.End}},
	}
	if !reflect.DeepEqual(pairs, want) {
		t.Errorf("Extract = %v\nwant %v", pairs, want)
	}
}

func TestExtract_EmptyString(t *testing.T) {
	pairs, _ := markov.Extract(markov.Tokenize(""), 3)
	for n, ps := range pairs {
		if len(ps) != 1 || ps[0].Next != markov.End || ps[0].Context != markov.StartContext(n+1) {
			t.Errorf("n=%d: %v, want one padded pair into End", n+1, ps)
		}
	}
}

func TestExtract_InvalidOrder(t *testing.T) {
	if _, err := markov.Extract(nil, 0); !errors.Is(err, markov.ErrInvalidOrder) {
		t.Errorf("got %v, want ErrInvalidOrder", err)
	}
}
