// Package defaulthasher resolves the base hash functions a tree can be
// configured with by name.
package defaulthasher

import (
	"crypto/sha256"
	"errors"
	"fmt"
	"hash"
	"sort"

	"github.com/zeebo/blake3"
)

const (
	SHA256 = "sha256"
	BLAKE3 = "blake3"

	// Default is the base hash used when none is configured.
	Default = SHA256
)

var ErrUnknownHash = errors.New("unknown hash function")

var hashTypes = map[string]func() hash.Hash{
	SHA256: sha256.New,
	BLAKE3: func() hash.Hash { return blake3.New() },
}

// Factory returns a constructor for the base hash registered under name. An
// empty name selects Default.
func Factory(name string) (func() hash.Hash, error) {
	if name == "" {
		name = Default
	}
	newHash, ok := hashTypes[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownHash, name)
	}
	return newHash, nil
}

// Names returns the registered hash names in sorted order.
func Names() []string {
	names := make([]string, 0, len(hashTypes))
	for name := range hashTypes {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
