package crack

import (
	"sync"

	"github.com/zeebo/xxh3"
)

// CandidateSet records the candidates already hashed in a session.
//
// Candidates are stored as 128-bit XXH3 fingerprints. A fingerprint collision
// only causes one candidate to be skipped, which is harmless because
// duplicate suppression is an optimisation.
//
// A CandidateSet is safe for concurrent use.
type CandidateSet struct {
	mu    sync.Mutex
	seen  map[xxh3.Uint128]struct{}
	limit int
}

// NewCandidateSet returns a set that holds at most limit candidates.
// A limit of zero or less means unbounded.
func NewCandidateSet(limit int) *CandidateSet {
	hint := limit
	if hint <= 0 || hint > 1<<16 {
		hint = 1 << 16
	}
	return &CandidateSet{seen: make(map[xxh3.Uint128]struct{}, hint), limit: limit}
}

// Add inserts candidate. added is false when candidate was already present
// or the set is full; full reports whether the set is at its limit after
// the call.
func (s *CandidateSet) Add(candidate string) (added, full bool) {
	fp := xxh3.HashString128(candidate)
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.seen[fp]; ok {
		return false, s.fullLocked()
	}
	if s.fullLocked() {
		return false, true
	}
	s.seen[fp] = struct{}{}
	return true, s.fullLocked()
}

// Contains reports whether candidate was added.
func (s *CandidateSet) Contains(candidate string) bool {
	fp := xxh3.HashString128(candidate)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, ok := s.seen[fp]
	return ok
}

// Len returns the number of candidates in the set.
func (s *CandidateSet) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.seen)
}

// Limit returns the capacity, or zero if unbounded.
func (s *CandidateSet) Limit() int { return max(s.limit, 0) }

func (s *CandidateSet) fullLocked() bool {
	return s.limit > 0 && len(s.seen) >= s.limit
}
