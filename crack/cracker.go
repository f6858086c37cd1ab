package crack

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"sync/atomic"
	"time"

	"github.com/rs/zerolog"

	"github.com/hasbyte1/go-pwrecover/hashing"
)

// Cracker matches candidates against a fixed list of targets.
//
// A Cracker is immutable after construction. Every call to Run or
// RunParallel starts a fresh session with empty results and an empty
// candidate set, so one Cracker can serve several runs.
type Cracker struct {
	opts      Options
	targets   []Target
	algorithm hashing.Algorithm
	matcher   *matcher
	log       zerolog.Logger
}

// NewCracker validates opts and targets and prepares the digest index.
//
// Returns [ErrNoTargets] for an empty target list, [ErrInvalidTarget] for a
// target that cannot be matched under the configured algorithm, or
// [ErrInvalidOption].
func NewCracker(targets []Target, opts Options) (*Cracker, error) {
	if len(targets) == 0 {
		return nil, ErrNoTargets
	}
	if err := validateOptions(opts); err != nil {
		return nil, err
	}
	if opts.Hashers == nil {
		opts.Hashers = hashing.NewDefaultManager()
	}
	if opts.Algorithm == "" {
		opts.Algorithm = opts.Hashers.Default()
	}
	if opts.Strategy == "" {
		opts.Strategy = "custom"
	}
	m, err := newMatcher(targets, opts.Hashers, opts.Algorithm)
	if err != nil {
		return nil, err
	}

	log := zerolog.Nop()
	if opts.Logger != nil {
		log = *opts.Logger
	}
	return &Cracker{
		opts:      opts,
		targets:   append([]Target(nil), targets...),
		algorithm: opts.Algorithm,
		matcher:   m,
		log: log.With().
			Str("domain", "crack").
			Str("strategy", opts.Strategy).
			Str("algorithm", string(opts.Algorithm)).
			Logger(),
	}, nil
}

// ──────────────────────────────────────────────────────────────────────────────
// Session
// ──────────────────────────────────────────────────────────────────────────────

// session is the mutable state of one run. results and resolved are owned by
// a single goroutine; done is read by every worker.
type session struct {
	c        *Cracker
	start    time.Time
	done     []atomic.Bool
	set      *CandidateSet
	results  []Result
	resolved int
}

func (c *Cracker) newSession() *session {
	s := &session{
		c:       c,
		start:   time.Now(),
		done:    make([]atomic.Bool, len(c.targets)),
		results: make([]Result, len(c.targets)),
	}
	if c.opts.Dedup {
		s.set = NewCandidateSet(c.opts.MaxCandidates)
	}
	return s
}

func (s *session) record(slot int, plaintext string) {
	if s.done[slot].Load() {
		return
	}
	s.done[slot].Store(true)
	s.results[slot] = Result{Plaintext: plaintext, Found: true}
	s.resolved++
	s.c.log.Debug().
		Int("slot", slot).
		Str("hash", s.c.targets[slot].Hash).
		Str("plaintext", plaintext).
		Msg("target resolved")
}

func (s *session) complete() bool { return s.resolved == len(s.results) }

func (s *session) progress(attempts, candidates int) {
	if s.c.opts.Progress == nil {
		return
	}
	s.c.opts.Progress(Progress{
		Attempts:   attempts,
		Candidates: candidates,
		Resolved:   s.resolved,
		Targets:    len(s.results),
		Elapsed:    time.Since(s.start),
	})
}

func (s *session) finish(rep *Report) *Report {
	rep.Results = s.results
	rep.Resolved = s.resolved
	rep.Elapsed = time.Since(s.start)
	s.progress(rep.Attempts, rep.Candidates)
	s.c.log.Info().
		Int("resolved", rep.Resolved).
		Int("targets", len(rep.Results)).
		Int("candidates", rep.Candidates).
		Int("attempts", rep.Attempts).
		Int("duplicates", rep.Duplicates).
		Str("stop", rep.Stop.String()).
		Dur("elapsed", rep.Elapsed).
		Msg("cracking finished")
	return rep
}

// ──────────────────────────────────────────────────────────────────────────────
// Sequential run
// ──────────────────────────────────────────────────────────────────────────────

// Run draws candidates from src on the calling goroutine until every target
// is resolved, a cap is reached, src is exhausted, or ctx is canceled. The
// context is checked before every draw.
//
// A source error other than [ErrSkip] or [ErrSourceExhausted] aborts the
// run; the partial report is returned together with the error.
func (c *Cracker) Run(ctx context.Context, src Source) (*Report, error) {
	s := c.newSession()
	c.log.Info().
		Int("targets", len(c.targets)).
		Int("max-candidates", c.opts.MaxCandidates).
		Int("max-attempts", c.opts.MaxAttempts).
		Msg("cracking started")

	var rep Report
	err := s.loop(ctx, src, &rep)
	return s.finish(&rep), err
}

func (s *session) loop(ctx context.Context, src Source, rep *Report) error {
	opts := s.c.opts
	var hits []int
	for {
		if ctx.Err() != nil {
			rep.Stop = StopCanceled
			return nil
		}
		if opts.MaxAttempts > 0 && rep.Attempts >= opts.MaxAttempts {
			rep.Stop = StopAttemptCap
			return nil
		}

		cand, err := src.Next()
		if errors.Is(err, ErrSourceExhausted) {
			rep.Stop = StopExhausted
			return nil
		}
		rep.Attempts++
		if opts.Progress != nil && rep.Attempts%opts.ProgressEvery == 0 {
			s.progress(rep.Attempts, rep.Candidates)
		}
		if errors.Is(err, ErrSkip) {
			rep.Skipped++
			continue
		}
		if err != nil {
			rep.Stop = StopCanceled
			return fmt.Errorf("crack: source: %w", err)
		}

		if s.set != nil {
			if added, _ := s.set.Add(cand); !added {
				rep.Duplicates++
				continue
			}
		}
		rep.Candidates++
		hits = s.c.matcher.match(cand, s.done, hits[:0])
		for _, slot := range hits {
			s.record(slot, cand)
		}
		if s.complete() {
			rep.Stop = StopResolved
			return nil
		}
		if opts.MaxCandidates > 0 && rep.Candidates >= opts.MaxCandidates {
			rep.Stop = StopCandidateCap
			return nil
		}
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// Parallel run
// ──────────────────────────────────────────────────────────────────────────────

// progressInterval is how often the collector reports progress in a
// parallel run.
const progressInterval = 250 * time.Millisecond

type hit struct {
	slot      int
	plaintext string
}

type counters struct {
	attempts   atomic.Int64
	candidates atomic.Int64
	duplicates atomic.Int64
	skipped    atomic.Int64
}

// RunParallel runs one worker goroutine per source. Workers share the
// candidate set and the caps; matches are sent to a single collector which
// owns the results and cancels the workers once every target is resolved.
//
// Each source must be independent; for random sources give every worker its
// own stream.
func (c *Cracker) RunParallel(ctx context.Context, sources []Source) (*Report, error) {
	if len(sources) == 0 {
		return nil, fmt.Errorf("%w: no sources", ErrInvalidOption)
	}
	if len(sources) == 1 {
		return c.Run(ctx, sources[0])
	}

	s := c.newSession()
	c.log.Info().
		Int("targets", len(c.targets)).
		Int("workers", len(sources)).
		Int("max-candidates", c.opts.MaxCandidates).
		Int("max-attempts", c.opts.MaxAttempts).
		Msg("cracking started")

	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	var (
		cnt      counters
		wg       sync.WaitGroup
		errOnce  sync.Once
		firstErr error
		stops    = make([]StopReason, len(sources))
		hits     = make(chan hit, 64)
	)
	for i, src := range sources {
		wg.Add(1)
		go func(i int, src Source) {
			defer wg.Done()
			stop, err := s.work(runCtx, src, &cnt, hits)
			stops[i] = stop
			if err != nil {
				errOnce.Do(func() { firstErr = fmt.Errorf("crack: worker %d: %w", i, err) })
				cancel()
			}
		}(i, src)
	}
	go func() {
		wg.Wait()
		close(hits)
	}()

	ticker := time.NewTicker(progressInterval)
	defer ticker.Stop()
collect:
	for {
		select {
		case h, ok := <-hits:
			if !ok {
				break collect
			}
			s.record(h.slot, h.plaintext)
			if s.complete() {
				cancel()
			}
		case <-ticker.C:
			s.progress(int(cnt.attempts.Load()), int(cnt.candidates.Load()))
		}
	}

	rep := &Report{
		Attempts:   int(cnt.attempts.Load()),
		Candidates: int(cnt.candidates.Load()),
		Duplicates: int(cnt.duplicates.Load()),
		Skipped:    int(cnt.skipped.Load()),
		Stop:       mergeStops(s.complete(), ctx.Err() != nil, stops),
	}
	return s.finish(rep), firstErr
}

// mergeStops picks the run's stop reason from the workers' reasons.
func mergeStops(complete, canceled bool, stops []StopReason) StopReason {
	switch {
	case complete:
		return StopResolved
	case canceled:
		return StopCanceled
	}
	for _, r := range []StopReason{StopCandidateCap, StopAttemptCap, StopExhausted} {
		for _, s := range stops {
			if s == r {
				return r
			}
		}
	}
	return StopCanceled
}

func (s *session) work(ctx context.Context, src Source, cnt *counters, out chan<- hit) (StopReason, error) {
	opts := s.c.opts
	var buf []int
	for {
		if ctx.Err() != nil {
			return StopCanceled, nil
		}
		if n := cnt.attempts.Add(1); opts.MaxAttempts > 0 && n > int64(opts.MaxAttempts) {
			cnt.attempts.Add(-1)
			return StopAttemptCap, nil
		}

		cand, err := src.Next()
		switch {
		case errors.Is(err, ErrSourceExhausted):
			cnt.attempts.Add(-1)
			return StopExhausted, nil
		case errors.Is(err, ErrSkip):
			cnt.skipped.Add(1)
			continue
		case err != nil:
			return StopCanceled, err
		}

		last := false
		if s.set != nil {
			added, full := s.set.Add(cand)
			if !added {
				if full {
					return StopCandidateCap, nil
				}
				cnt.duplicates.Add(1)
				continue
			}
			last = full
			cnt.candidates.Add(1)
		} else if n := cnt.candidates.Add(1); opts.MaxCandidates > 0 && n >= int64(opts.MaxCandidates) {
			if n > int64(opts.MaxCandidates) {
				cnt.candidates.Add(-1)
				return StopCandidateCap, nil
			}
			last = true
		}

		buf = s.c.matcher.match(cand, s.done, buf[:0])
		for _, slot := range buf {
			select {
			case out <- hit{slot: slot, plaintext: cand}:
			case <-ctx.Done():
				return StopCanceled, nil
			}
		}
		if last {
			return StopCandidateCap, nil
		}
	}
}
