package crack

import (
	"fmt"
	"sort"
	"sync/atomic"

	"github.com/hasbyte1/go-pwrecover/hashing"
)

// matcher maps candidates to the target slots they unlock. It is immutable
// after construction and shared by every worker of a run; per-run progress
// lives in the done flags passed to match.
type matcher struct {
	digester hashing.Digester
	plain    map[string][]int
	salts    []saltGroup
	encoded  []encodedSlot
}

// saltGroup holds every digest target sharing one salt, so a candidate is
// hashed once per distinct salt.
type saltGroup struct {
	salt  string
	slots map[string][]int
}

type encodedSlot struct {
	slot     int
	hash     string
	verifier hashing.Verifier
}

func newMatcher(targets []Target, hashers *hashing.Manager, alg hashing.Algorithm) (*matcher, error) {
	d, err := hashers.Digester(alg)
	if err != nil {
		return nil, err
	}
	m := &matcher{digester: d, plain: make(map[string][]int)}
	bySalt := make(map[string]map[string][]int)

	for i, t := range targets {
		if t.Encoded() {
			if t.Salt != "" {
				return nil, fmt.Errorf("%w: target %d: encoded hashes carry their own salt", ErrInvalidTarget, i)
			}
			v, err := hashers.VerifierFor(t.Hash)
			if err != nil {
				return nil, fmt.Errorf("%w: target %d: %v", ErrInvalidTarget, i, err)
			}
			if _, err := v.Info(t.Hash); err != nil {
				return nil, fmt.Errorf("%w: target %d: %v", ErrInvalidTarget, i, err)
			}
			m.encoded = append(m.encoded, encodedSlot{slot: i, hash: t.Hash, verifier: v})
			continue
		}
		if !hashing.IsHexDigest(t.Hash, d.Size()) {
			return nil, fmt.Errorf("%w: target %d: %q is not a %d-byte %s digest",
				ErrInvalidTarget, i, t.Hash, d.Size(), d.Algorithm())
		}
		h := normalizeHex(t.Hash)
		if t.Salt == "" {
			m.plain[h] = append(m.plain[h], i)
			continue
		}
		g, ok := bySalt[t.Salt]
		if !ok {
			g = make(map[string][]int)
			bySalt[t.Salt] = g
		}
		g[h] = append(g[h], i)
	}

	for salt, slots := range bySalt {
		m.salts = append(m.salts, saltGroup{salt: salt, slots: slots})
	}
	sort.Slice(m.salts, func(i, j int) bool { return m.salts[i].salt < m.salts[j].salt })
	return m, nil
}

// match appends to dst every unresolved slot that candidate satisfies.
func (m *matcher) match(candidate string, done []atomic.Bool, dst []int) []int {
	if len(m.plain) > 0 {
		dst = appendOpen(dst, m.plain[m.digester.Digest(candidate)], done)
	}
	for _, g := range m.salts {
		dst = appendOpen(dst, g.slots[m.digester.Digest(candidate+g.salt)], done)
	}
	for _, e := range m.encoded {
		if done[e.slot].Load() {
			continue
		}
		// Structure was checked in newMatcher, so an error here means no match.
		if ok, _ := e.verifier.Check(candidate, e.hash); ok {
			dst = append(dst, e.slot)
		}
	}
	return dst
}

func appendOpen(dst, slots []int, done []atomic.Bool) []int {
	for _, s := range slots {
		if !done[s].Load() {
			dst = append(dst, s)
		}
	}
	return dst
}

func normalizeHex(s string) string {
	b := []byte(s)
	for i, c := range b {
		if c >= 'A' && c <= 'F' {
			b[i] = c + ('a' - 'A')
		}
	}
	return string(b)
}
