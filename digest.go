package amt

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DigestSize is the byte size of every leaf, node and root digest.
const DigestSize = sha256.Size

// Digest is a leaf, node or root hash of the tree.
type Digest [DigestSize]byte

// DigestFromBytes copies b into a Digest. It returns ErrInvalidDigestLen if b
// is not exactly DigestSize bytes long.
func DigestFromBytes(b []byte) (Digest, error) {
	var d Digest
	if len(b) != DigestSize {
		return d, fmt.Errorf("%w: got: %v, want: %v", ErrInvalidDigestLen, len(b), DigestSize)
	}
	copy(d[:], b)
	return d, nil
}

// Bytes returns a copy of the digest as a slice.
func (d Digest) Bytes() []byte {
	return append([]byte(nil), d[:]...)
}

// IsZero reports whether d is the all-zero digest, the root of a tree that
// has never been written to.
func (d Digest) IsZero() bool {
	return d == Digest{}
}

func (d Digest) String() string {
	return hex.EncodeToString(d[:])
}
