// Package corpus reads newline-delimited training and wordlist files and
// splits corpora into folds for cross-validation.
//
// Every line is right-trimmed of whitespace and blank lines are dropped.
// Read failures are reported as [ErrCorpusRead] before any training starts:
//
//	lines, err := corpus.ReadFile("rockyou.txt")
//	if errors.Is(err, corpus.ErrCorpusRead) {
//	    // missing or unreadable file
//	}
//	folds, err := corpus.Partition(lines, corpus.DefaultFolds, rng)
//	train, _ := corpus.TrainingSet(folds, 0) // every fold except fold 0
package corpus
