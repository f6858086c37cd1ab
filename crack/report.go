package crack

import "time"

// StopReason says why a run ended.
type StopReason int

const (
	// StopResolved means every target slot was resolved.
	StopResolved StopReason = iota
	// StopCandidateCap means MaxCandidates distinct candidates were hashed.
	StopCandidateCap
	// StopAttemptCap means MaxAttempts draws were made.
	StopAttemptCap
	// StopExhausted means every source returned [ErrSourceExhausted].
	StopExhausted
	// StopCanceled means the context was canceled.
	StopCanceled
)

func (r StopReason) String() string {
	switch r {
	case StopResolved:
		return "resolved"
	case StopCandidateCap:
		return "candidate-cap"
	case StopAttemptCap:
		return "attempt-cap"
	case StopExhausted:
		return "exhausted"
	case StopCanceled:
		return "canceled"
	default:
		return "unknown"
	}
}

// Report is the outcome of a run.
type Report struct {
	// Results has one entry per target, in target order.
	Results []Result

	Resolved   int
	Attempts   int // draws from the sources
	Candidates int // distinct candidates hashed
	Duplicates int // draws skipped as already hashed
	Skipped    int // draws that produced no candidate

	Stop    StopReason
	Elapsed time.Duration
}

// Complete reports whether every target was resolved.
func (r *Report) Complete() bool { return r.Resolved == len(r.Results) }

// Unresolved returns the indexes of targets left unresolved.
func (r *Report) Unresolved() []int {
	var out []int
	for i, res := range r.Results {
		if !res.Found {
			out = append(out, i)
		}
	}
	return out
}
