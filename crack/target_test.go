package crack_test

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hasbyte1/go-pwrecover/crack"
)

func TestParseTarget(t *testing.T) {
	cases := []struct {
		in   string
		want crack.Target
	}{
		{"D077F244DEF8A70E5EA758BD8352FCD8", crack.Target{Hash: "d077f244def8a70e5ea758bd8352fcd8"}},
		{"  d077f244def8a70e5ea758bd8352fcd8  ", crack.Target{Hash: "d077f244def8a70e5ea758bd8352fcd8"}},
		{"d077f244def8a70e5ea758bd8352fcd8:NaCl", crack.Target{Hash: "d077f244def8a70e5ea758bd8352fcd8", Salt: "NaCl"}},
		{"d077f244def8a70e5ea758bd8352fcd8:a:b", crack.Target{Hash: "d077f244def8a70e5ea758bd8352fcd8", Salt: "a:b"}},
		{"$2b$04$abcdefghijklmnopqrstuu", crack.Target{Hash: "$2b$04$abcdefghijklmnopqrstuu"}},
	}
	for _, tc := range cases {
		got, err := crack.ParseTarget(tc.in)
		if err != nil {
			t.Errorf("ParseTarget(%q): %v", tc.in, err)
			continue
		}
		if got != tc.want {
			t.Errorf("ParseTarget(%q) = %+v, want %+v", tc.in, got, tc.want)
		}
	}
}

func TestParseTarget_Invalid(t *testing.T) {
	for _, in := range []string{"", "xyz", "abc", ":salt", "$unknown$hash"} {
		if _, err := crack.ParseTarget(in); !errors.Is(err, crack.ErrInvalidTarget) {
			t.Errorf("ParseTarget(%q) = %v, want ErrInvalidTarget", in, err)
		}
	}
}

func TestTarget_StringAndEncoded(t *testing.T) {
	salted := crack.Target{Hash: "ab", Salt: "s"}
	if salted.String() != "ab:s" || salted.Encoded() {
		t.Errorf("salted target: %q encoded=%v", salted, salted.Encoded())
	}
	enc := crack.Target{Hash: "$2b$04$x"}
	if !enc.Encoded() || enc.String() != "$2b$04$x" {
		t.Errorf("encoded target: %q encoded=%v", enc, enc.Encoded())
	}
}

func TestParseTargets(t *testing.T) {
	in := strings.Join([]string{
		"# targets",
		"",
		"d077f244def8a70e5ea758bd8352fcd8",
		"   ",
		"9d989e8d27dc9e0ec3389fc855f142c3d40f0c50:pepper",
	}, "\n")
	got, err := crack.ParseTargets(strings.NewReader(in))
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 || got[1].Salt != "pepper" {
		t.Errorf("ParseTargets = %+v", got)
	}
}

func TestParseTargets_ReportsLine(t *testing.T) {
	_, err := crack.ParseTargets(strings.NewReader("abcd\nnot-hex\n"))
	if !errors.Is(err, crack.ErrInvalidTarget) || !strings.Contains(err.Error(), "line 2") {
		t.Errorf("got %v, want ErrInvalidTarget on line 2", err)
	}
}

func TestReadTargets_Missing(t *testing.T) {
	if _, err := crack.ReadTargets(filepath.Join(t.TempDir(), "none.txt")); err == nil {
		t.Error("ReadTargets on a missing file succeeded")
	}
}
