package crack

import (
	"context"

	"github.com/cespare/xxhash/v2"

	"github.com/hasbyte1/go-pwrecover/corpus"
)

// Wordlist is an ordered list of distinct words.
type Wordlist struct {
	words []string
	dups  int
}

// NewWordlist keeps the first occurrence of every word, in order.
func NewWordlist(words []string) *Wordlist {
	w := &Wordlist{words: make([]string, 0, len(words))}
	seen := make(map[uint64]int, len(words))
	var collided map[string]struct{}
	for _, word := range words {
		h := xxhash.Sum64String(word)
		i, ok := seen[h]
		if !ok {
			seen[h] = len(w.words)
			w.words = append(w.words, word)
			continue
		}
		if w.words[i] == word {
			w.dups++
			continue
		}
		// Distinct words with equal fingerprints.
		if collided == nil {
			collided = make(map[string]struct{})
		}
		if _, dup := collided[word]; dup {
			w.dups++
			continue
		}
		collided[word] = struct{}{}
		w.words = append(w.words, word)
	}
	return w
}

// ReadWordlist reads a newline-delimited wordlist with corpus.ReadFile.
// Missing or unreadable files return an error wrapping corpus.ErrCorpusRead.
func ReadWordlist(path string) (*Wordlist, error) {
	words, err := corpus.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return NewWordlist(words), nil
}

// Len returns the number of distinct words.
func (w *Wordlist) Len() int { return len(w.words) }

// Duplicates returns the number of repeated words dropped.
func (w *Wordlist) Duplicates() int { return w.dups }

// Words returns a copy of the words.
func (w *Wordlist) Words() []string { return append([]string(nil), w.words...) }

// Source returns a new [Source] over the words.
func (w *Wordlist) Source() Source { return SliceSource(w.words...) }

// DictionaryOptions configures [CrackDictionary].
type DictionaryOptions struct {
	Options
}

// DefaultDictionaryOptions hashes every word once with no candidate cap.
// The wordlist is already distinct, so the candidate set is off.
func DefaultDictionaryOptions() DictionaryOptions {
	o := DefaultOptions()
	o.MaxCandidates = 0
	o.Dedup = false
	o.Strategy = "dictionary"
	return DictionaryOptions{Options: o}
}

// CrackDictionary hashes every word of words against the targets. Salted
// targets are tried with the word followed by their salt.
func CrackDictionary(ctx context.Context, words *Wordlist, targets []Target, opts DictionaryOptions) (*Report, error) {
	c, err := NewCracker(targets, opts.Options)
	if err != nil {
		return nil, err
	}
	c.log.Debug().Int("words", words.Len()).Int("duplicates", words.Duplicates()).Msg("wordlist loaded")
	return c.Run(ctx, words.Source())
}
