package markov

import (
	"fmt"

	"github.com/montanaflynn/stats"

	"github.com/hasbyte1/go-pwrecover/corpus"
)

// FoldScore is the held-out fit of the model trained without one fold.
type FoldScore struct {
	Fold     int
	Train    int // training strings
	Held     int // held-out strings
	Contexts int // contexts in the trained table
	Score    Score
}

// Evaluation summarises a cross-validation run.
type Evaluation struct {
	Order int
	Folds []FoldScore
	// Mean and StdDev are over the per-fold bits per symbol.
	Mean   float64
	StdDev float64
}

// CrossValidate trains one chain of the given order per fold on every other
// fold and scores the held-out fold with [Chain.LogLikelihood].
//
// At least two folds are required. Returns [ErrEmptyCorpus] if some training
// set is empty.
func CrossValidate(folds [][]string, order int) (*Evaluation, error) {
	if len(folds) < 2 {
		return nil, fmt.Errorf("%w: cross-validation needs at least 2 folds, got %d", ErrInvalidOption, len(folds))
	}
	ev := &Evaluation{Order: order, Folds: make([]FoldScore, 0, len(folds))}
	bps := make([]float64, 0, len(folds))
	for i := range folds {
		train, err := corpus.TrainingSet(folds, i)
		if err != nil {
			return nil, err
		}
		chain, err := Train(train, order)
		if err != nil {
			return nil, fmt.Errorf("fold %d: %w", i, err)
		}
		fs := FoldScore{Fold: i, Train: len(train), Held: len(folds[i]), Contexts: chain.Len()}
		for _, s := range folds[i] {
			fs.Score = fs.Score.Add(chain.LogLikelihood(s))
		}
		ev.Folds = append(ev.Folds, fs)
		bps = append(bps, fs.Score.BitsPerSymbol())
	}

	var err error
	if ev.Mean, err = stats.Mean(bps); err != nil {
		return nil, fmt.Errorf("markov: mean: %w", err)
	}
	if ev.StdDev, err = stats.StandardDeviation(bps); err != nil {
		return nil, fmt.Errorf("markov: standard deviation: %w", err)
	}
	return ev, nil
}
