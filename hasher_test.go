package amt

import (
	"crypto"
	"crypto/sha256"
	"crypto/sha512"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sum(hash crypto.Hash, data ...[]byte) Digest {
	h := hash.New()
	for _, d := range data {
		//nolint:errcheck
		h.Write(d)
	}
	var out Digest
	copy(out[:], h.Sum(nil))
	return out
}

func TestHasher_HashLeaf(t *testing.T) {
	tests := []struct {
		name   string
		record []byte
		want   Digest
	}{
		{"empty record", []byte{}, sum(crypto.SHA256, []byte{LeafPrefix})},
		{"zero record", make([]byte, 32), sum(crypto.SHA256, []byte{LeafPrefix}, make([]byte, 32))},
		{"text record", []byte("a log is a list of records"), sum(crypto.SHA256, []byte{LeafPrefix}, []byte("a log is a list of records"))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewHasher(sha256.New())
			assert.Equal(t, tt.want, n.HashLeaf(tt.record))
		})
	}
}

func TestHasher_HashNode(t *testing.T) {
	var left, right Digest
	for i := range left {
		left[i] = byte(i)
		right[i] = byte(0xFF - i)
	}
	tests := []struct {
		name        string
		left, right Digest
		want        Digest
	}{
		{"zero children", Digest{}, Digest{}, sum(crypto.SHA256, []byte{NodePrefix}, make([]byte, 64))},
		{"ordered children", left, right, sum(crypto.SHA256, []byte{NodePrefix}, left[:], right[:])},
		{"swapped children", right, left, sum(crypto.SHA256, []byte{NodePrefix}, right[:], left[:])},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n := NewHasher(sha256.New())
			assert.Equal(t, tt.want, n.HashNode(tt.left, tt.right))
		})
	}
}

// A leaf over the 64 bytes of two digests must not collide with the node
// over the same two digests.
func TestHasher_DomainSeparation(t *testing.T) {
	n := NewHasher(sha256.New())
	left := n.HashLeaf([]byte("left"))
	right := n.HashLeaf([]byte("right"))
	concat := append(left.Bytes(), right[:]...)
	assert.NotEqual(t, n.HashNode(left, right), n.HashLeaf(concat))
}

func TestHasher_ResetBetweenCalls(t *testing.T) {
	n := NewHasher(sha256.New())
	first := n.HashLeaf([]byte("record"))
	n.HashNode(first, first)
	assert.Equal(t, first, n.HashLeaf([]byte("record")))
}

func TestNewHasher_WrongSizePanics(t *testing.T) {
	assert.Panics(t, func() { NewHasher(sha512.New()) })
}

func TestHasher_Replay(t *testing.T) {
	n := NewHasher(sha256.New())
	a := n.HashLeaf([]byte("a"))
	b := n.HashLeaf([]byte("b"))
	c := n.HashLeaf([]byte("c"))

	tests := []struct {
		name  string
		seed  Digest
		proof Proof
		want  Digest
	}{
		{"empty proof returns seed", a, nil, a},
		{"right sibling", a, Proof{{b, Right}}, n.HashNode(a, b)},
		{"left sibling", b, Proof{{a, Left}}, n.HashNode(a, b)},
		{"two levels", c, Proof{{n.HashNode(a, b), Left}}, n.HashNode(n.HashNode(a, b), c)},
		{"mixed", b, Proof{{a, Left}, {c, Right}}, n.HashNode(n.HashNode(a, b), c)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, n.Replay(tt.seed, tt.proof))
		})
	}
}

func TestHasher_ReplayRecord(t *testing.T) {
	n := NewHasher(sha256.New())
	sibling := n.HashLeaf([]byte("b"))
	proof := Proof{{sibling, Right}}
	require.Equal(t, n.Replay(n.HashLeaf([]byte("a")), proof), n.ReplayRecord([]byte("a"), proof))
}
