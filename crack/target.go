package crack

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/hasbyte1/go-pwrecover/hashing"
)

// Target is one hash to recover.
type Target struct {
	// Hash is a hex digest, or an encoded hash starting with "$".
	Hash string
	// Salt is appended to every candidate before hashing a digest target.
	Salt string
}

// Encoded reports whether t is a self-salted encoded hash such as bcrypt.
func (t Target) Encoded() bool { return strings.HasPrefix(t.Hash, "$") }

// String renders t in the line format accepted by [ParseTarget].
func (t Target) String() string {
	if t.Salt == "" {
		return t.Hash
	}
	return t.Hash + ":" + t.Salt
}

// Result is the outcome for one target slot.
type Result struct {
	Plaintext string
	Found     bool
}

// ParseTarget parses one target line:
//
//	<hex digest>
//	<hex digest>:<salt>
//	<encoded hash>          e.g. $2b$12$... or $argon2id$v=19$...
//
// Hex digests are lowercased. The salt is everything after the first colon.
func ParseTarget(line string) (Target, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return Target{}, fmt.Errorf("%w: empty line", ErrInvalidTarget)
	}
	if strings.HasPrefix(line, "$") {
		if _, ok := hashing.DetectAlgorithm(line); !ok {
			return Target{}, fmt.Errorf("%w: unrecognised encoded hash %q", ErrInvalidTarget, line)
		}
		return Target{Hash: line}, nil
	}
	hash, salt, _ := strings.Cut(line, ":")
	if hash == "" || !hashing.IsHexDigest(hash, len(hash)/2) {
		return Target{}, fmt.Errorf("%w: %q is not a hex digest", ErrInvalidTarget, hash)
	}
	return Target{Hash: strings.ToLower(hash), Salt: salt}, nil
}

// ParseTargets reads one target per line. Blank lines and lines starting
// with '#' are skipped.
func ParseTargets(r io.Reader) ([]Target, error) {
	sc := bufio.NewScanner(r)
	var out []Target
	for n := 1; sc.Scan(); n++ {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		t, err := ParseTarget(line)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", n, err)
		}
		out = append(out, t)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("crack: read targets: %w", err)
	}
	return out, nil
}

// ReadTargets opens path and parses it with [ParseTargets].
func ReadTargets(path string) ([]Target, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("crack: read targets: %w", err)
	}
	defer f.Close()
	return ParseTargets(f)
}
