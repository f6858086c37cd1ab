package markov

import (
	"bytes"
	"cmp"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"slices"
)

// FormatVersion is written to every model file.
const FormatVersion = 1

// Sealer encrypts model files at rest. A nil Sealer stores plain JSON.
type Sealer interface {
	Seal(plaintext []byte) ([]byte, error)
	Open(sealed []byte) ([]byte, error)
}

type modelFile struct {
	Version  int           `json:"version"`
	Order    int           `json:"order"`
	Contexts []contextJSON `json:"contexts"`
}

type contextJSON struct {
	Context []Symbol  `json:"context"`
	Next    []Symbol  `json:"next"`
	Probs   []float64 `json:"probabilities"`
}

// Encode writes chain as JSON. Contexts are emitted shortest first so the
// output is stable for a given chain.
func Encode(w io.Writer, chain *Chain) error {
	mf := modelFile{
		Version:  FormatVersion,
		Order:    chain.order,
		Contexts: make([]contextJSON, 0, len(chain.table)),
	}
	for _, ctx := range chain.Contexts() {
		d := chain.table[ctx]
		mf.Contexts = append(mf.Contexts, contextJSON{
			Context: ctx.Symbols(),
			Next:    d.symbols,
			Probs:   d.probs,
		})
	}
	enc := json.NewEncoder(w)
	if err := enc.Encode(&mf); err != nil {
		return fmt.Errorf("markov: encode model: %w", err)
	}
	return nil
}

// Decode reads a chain written by [Encode] and checks it with
// [Chain.Validate]. Malformed tables return an error wrapping
// [ErrTrainingInvariant].
func Decode(r io.Reader) (*Chain, error) {
	var mf modelFile
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(&mf); err != nil {
		return nil, fmt.Errorf("markov: decode model: %w", err)
	}
	if mf.Version != FormatVersion {
		return nil, fmt.Errorf("%w: %d", ErrUnsupportedVersion, mf.Version)
	}
	if mf.Order < 1 || mf.Order > MaxOrder {
		return nil, fmt.Errorf("%w: order %d out of range", ErrTrainingInvariant, mf.Order)
	}

	chain := &Chain{order: mf.Order, table: make(map[Context]*Distribution, len(mf.Contexts))}
	for _, cj := range mf.Contexts {
		ctx, d, err := decodeContext(cj, mf.Order)
		if err != nil {
			return nil, err
		}
		if _, dup := chain.table[ctx]; dup {
			return nil, fmt.Errorf("%w: duplicate context %q", ErrTrainingInvariant, ctx)
		}
		chain.table[ctx] = d
	}
	if err := chain.Validate(); err != nil {
		return nil, err
	}
	return chain, nil
}

func decodeContext(cj contextJSON, order int) (Context, *Distribution, error) {
	if len(cj.Context) > order {
		return Context{}, nil, fmt.Errorf("%w: context of length %d exceeds order %d",
			ErrTrainingInvariant, len(cj.Context), order)
	}
	for _, s := range cj.Context {
		if !s.valid() || s == End {
			return Context{}, nil, fmt.Errorf("%w: illegal context symbol %d", ErrTrainingInvariant, s)
		}
	}
	ctx := NewContext(cj.Context...)
	if len(cj.Next) == 0 || len(cj.Next) != len(cj.Probs) {
		return Context{}, nil, fmt.Errorf("%w: context %q has %d successors and %d probabilities",
			ErrTrainingInvariant, ctx, len(cj.Next), len(cj.Probs))
	}
	idx := make([]int, len(cj.Next))
	for i, s := range cj.Next {
		if !s.valid() || s == Start {
			return Context{}, nil, fmt.Errorf("%w: illegal successor %d in %q", ErrTrainingInvariant, s, ctx)
		}
		if p := cj.Probs[i]; math.IsNaN(p) || p <= 0 || p > 1 {
			return Context{}, nil, fmt.Errorf("%w: context %q has probability %v", ErrTrainingInvariant, ctx, p)
		}
		idx[i] = i
	}
	// Successors may be listed in any order; the distribution keeps them sorted.
	slices.SortFunc(idx, func(a, b int) int { return cmp.Compare(cj.Next[a], cj.Next[b]) })
	d := &Distribution{symbols: make([]Symbol, len(idx)), probs: make([]float64, len(idx))}
	for i, j := range idx {
		if i > 0 && cj.Next[j] == d.symbols[i-1] {
			return Context{}, nil, fmt.Errorf("%w: successor %v repeated in %q", ErrTrainingInvariant, cj.Next[j], ctx)
		}
		d.symbols[i] = cj.Next[j]
		d.probs[i] = cj.Probs[j]
	}
	d.accumulate()
	return ctx, d, nil
}

// Save writes chain to path, sealing it first when sealer is non-nil. The
// file is written to a temporary sibling and renamed into place.
func Save(path string, chain *Chain, sealer Sealer) (err error) {
	var buf bytes.Buffer
	if err := Encode(&buf, chain); err != nil {
		return err
	}
	data := buf.Bytes()
	if sealer != nil {
		if data, err = sealer.Seal(data); err != nil {
			return fmt.Errorf("markov: seal model: %w", err)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("markov: save model: %w", err)
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp.Name())
		}
	}()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("markov: save model: %w", err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("markov: save model: %w", err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("markov: save model: %w", err)
	}
	return nil
}

// Load reads a chain saved by [Save]. sealer must match the one used to save
// it, or be nil for plain files.
func Load(path string, sealer Sealer) (*Chain, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("markov: load model: %w", err)
	}
	if sealer != nil {
		if data, err = sealer.Open(data); err != nil {
			return nil, fmt.Errorf("markov: open model: %w", err)
		}
	}
	return Decode(bytes.NewReader(data))
}
