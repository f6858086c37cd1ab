package corpus

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
	"unicode"
)

// MaxLineSize is the longest line accepted by [ReadLines].
const MaxLineSize = 1 << 20

// ReadLines reads every non-blank line of r with trailing whitespace removed.
// Blank lines are dropped, so the empty password never enters a corpus or a
// wordlist.
func ReadLines(r io.Reader) ([]string, error) {
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), MaxLineSize)
	var lines []string
	for sc.Scan() {
		line := strings.TrimRightFunc(sc.Text(), unicode.IsSpace)
		if line == "" {
			continue
		}
		lines = append(lines, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusRead, err)
	}
	return lines, nil
}

// ReadFile opens path and reads it with [ReadLines].
func ReadFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorpusRead, err)
	}
	defer f.Close()
	lines, err := ReadLines(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return lines, nil
}
