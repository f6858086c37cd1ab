package crack_test

import (
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/hasbyte1/go-pwrecover/crack"
	"github.com/hasbyte1/go-pwrecover/hashing"
)

func sha512Hex(s string) string {
	sum := sha512.Sum512([]byte(s))
	return hex.EncodeToString(sum[:])
}

func plainTargets(words ...string) []crack.Target {
	out := make([]crack.Target, len(words))
	for i, w := range words {
		out[i] = crack.Target{Hash: sha512Hex(w)}
	}
	return out
}

var (
	managerOnce sync.Once
	manager     *hashing.Manager
)

// sharedHashers avoids rebuilding the registry in every trial.
func sharedHashers() *hashing.Manager {
	managerOnce.Do(func() { manager = hashing.NewDefaultManager() })
	return manager
}

func testOptions() crack.Options {
	o := crack.DefaultOptions()
	o.Hashers = sharedHashers()
	o.Strategy = "test"
	return o
}

// counterSource yields "<prefix>-0", "<prefix>-1", ... forever.
func counterSource(prefix string) crack.Source {
	i := 0
	return crack.SourceFunc(func() (string, error) {
		i++
		return fmt.Sprintf("%s-%d", prefix, i-1), nil
	})
}
