package crack_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/hasbyte1/go-pwrecover/crack"
)

func counterSources(n int) []crack.Source {
	out := make([]crack.Source, n)
	for i := range out {
		out[i] = counterSource(fmt.Sprint("worker", i))
	}
	return out
}

func TestRunParallel_Resolves(t *testing.T) {
	targets := plainTargets("worker2-500", "worker0-10", "worker3-1")
	o := testOptions()
	o.MaxCandidates = 0
	o.MaxAttempts = 1_000_000
	c := mustCracker(t, targets, o)
	rep, err := c.RunParallel(context.Background(), counterSources(4))
	if err != nil {
		t.Fatal(err)
	}
	if !rep.Complete() || rep.Stop != crack.StopResolved {
		t.Fatalf("report = %+v", rep)
	}
	for i, want := range []string{"worker2-500", "worker0-10", "worker3-1"} {
		if rep.Results[i].Plaintext != want {
			t.Errorf("slot %d = %q, want %q", i, rep.Results[i].Plaintext, want)
		}
	}
}

func TestRunParallel_CandidateCap(t *testing.T) {
	for _, dedup := range []bool{true, false} {
		t.Run(fmt.Sprint("dedup=", dedup), func(t *testing.T) {
			o := testOptions()
			o.Dedup = dedup
			o.MaxCandidates = 1000
			c := mustCracker(t, plainTargets("never"), o)
			rep, err := c.RunParallel(context.Background(), counterSources(4))
			if err != nil {
				t.Fatal(err)
			}
			if rep.Stop != crack.StopCandidateCap || rep.Candidates != 1000 {
				t.Errorf("Stop %v Candidates %d, want candidate-cap at 1000", rep.Stop, rep.Candidates)
			}
			if rep.Results[0].Found {
				t.Error("unresolvable target reported as found")
			}
		})
	}
}

func TestRunParallel_SharedDedup(t *testing.T) {
	// Every worker yields the same sequence, so only one copy is hashed.
	o := testOptions()
	o.MaxCandidates = 0
	c := mustCracker(t, plainTargets("never"), o)
	sources := make([]crack.Source, 3)
	for i := range sources {
		sources[i] = crack.SliceSource("a", "b", "c", "d")
	}
	rep, err := c.RunParallel(context.Background(), sources)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Stop != crack.StopExhausted || rep.Candidates != 4 || rep.Duplicates != 8 || rep.Attempts != 12 {
		t.Errorf("report = %+v", rep)
	}
}

func TestRunParallel_AttemptCap(t *testing.T) {
	o := testOptions()
	o.MaxAttempts = 500
	c := mustCracker(t, plainTargets("never"), o)
	sources := make([]crack.Source, 4)
	for i := range sources {
		sources[i] = crack.SourceFunc(func() (string, error) { return "", crack.ErrSkip })
	}
	rep, err := c.RunParallel(context.Background(), sources)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Stop != crack.StopAttemptCap || rep.Attempts != 500 || rep.Skipped != 500 {
		t.Errorf("report = %+v", rep)
	}
}

func TestRunParallel_WorkerError(t *testing.T) {
	boom := errors.New("boom")
	o := testOptions()
	o.MaxCandidates = 0
	o.MaxAttempts = 0
	c := mustCracker(t, plainTargets("never"), o)
	sources := counterSources(3)
	sources[1] = crack.SourceFunc(func() (string, error) { return "", boom })
	rep, err := c.RunParallel(context.Background(), sources)
	if !errors.Is(err, boom) {
		t.Fatalf("err = %v, want boom", err)
	}
	if rep == nil || rep.Complete() {
		t.Errorf("report = %+v", rep)
	}
}

func TestRunParallel_Canceled(t *testing.T) {
	o := testOptions()
	o.MaxCandidates = 0
	o.MaxAttempts = 0
	c := mustCracker(t, plainTargets("never"), o)
	ctx, cancel := context.WithCancel(context.Background())
	n := 0
	sources := counterSources(3)
	sources[0] = crack.SourceFunc(func() (string, error) {
		n++
		if n == 100 {
			cancel()
		}
		return fmt.Sprint("c", n), nil
	})
	rep, err := c.RunParallel(ctx, sources)
	if err != nil {
		t.Fatal(err)
	}
	if rep.Stop != crack.StopCanceled {
		t.Errorf("Stop = %v, want canceled", rep.Stop)
	}
}

func TestRunParallel_NoSources(t *testing.T) {
	c := mustCracker(t, plainTargets("x"), testOptions())
	if _, err := c.RunParallel(context.Background(), nil); !errors.Is(err, crack.ErrInvalidOption) {
		t.Errorf("got %v, want ErrInvalidOption", err)
	}
}
