package amt

import (
	"fmt"
	"hash"
)

const (
	LeafPrefix = 0
	NodePrefix = 1
)

// Hasher computes the domain separated leaf and node digests of the tree on
// top of a 32-byte base hash function.
type Hasher struct {
	baseHasher hash.Hash
}

// NewHasher wraps baseHasher. It panics if the base hash does not produce
// DigestSize bytes, since every digest of the tree is a fixed size Digest.
func NewHasher(baseHasher hash.Hash) *Hasher {
	if baseHasher.Size() != DigestSize {
		panic(fmt.Sprintf("base hash size %d, want %d", baseHasher.Size(), DigestSize))
	}
	return &Hasher{baseHasher: baseHasher}
}

// Size returns the number of bytes of a digest.
func (n *Hasher) Size() int {
	return DigestSize
}

// HashLeaf computes H(LeafPrefix || record).
//
//nolint:errcheck
func (n *Hasher) HashLeaf(record []byte) Digest {
	h := n.baseHasher
	h.Reset()
	h.Write([]byte{LeafPrefix})
	h.Write(record)
	return n.sum()
}

// HashNode computes H(NodePrefix || left || right).
//
//nolint:errcheck
func (n *Hasher) HashNode(left, right Digest) Digest {
	h := n.baseHasher
	h.Reset()
	h.Write([]byte{NodePrefix})
	h.Write(left[:])
	h.Write(right[:])
	return n.sum()
}

func (n *Hasher) sum() Digest {
	var d Digest
	copy(d[:], n.baseHasher.Sum(nil))
	return d
}

// Replay climbs from seed towards the root, combining the running digest
// with the sibling of every step on the side the step names. Steps with an
// unknown direction are treated as Right; callers reject them beforehand
// with Proof.ValidateBasic.
func (n *Hasher) Replay(seed Digest, proof Proof) Digest {
	d := seed
	for _, step := range proof {
		if step.Direction == Left {
			d = n.HashNode(step.Sibling, d)
		} else {
			d = n.HashNode(d, step.Sibling)
		}
	}
	return d
}

// ReplayRecord is Replay seeded with the leaf digest of record.
func (n *Hasher) ReplayRecord(record []byte, proof Proof) Digest {
	return n.Replay(n.HashLeaf(record), proof)
}
