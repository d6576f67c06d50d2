package amt_test

import (
	"crypto/sha256"
	"testing"

	fuzz "github.com/google/gofuzz"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/amt"
	"github.com/celestiaorg/amt/prover"
)

type fuzzOp struct {
	Update bool
	Index  uint64
	Record [recordSize]byte
}

// TestFuzzInsertUpdateVerify drives a tree and a log with random sequences of
// inserts and updates and checks after every step that both agree on the
// root and that every record still verifies.
func TestFuzzInsertUpdateVerify(t *testing.T) {
	if testing.Short() {
		t.Skip("TestFuzzInsertUpdateVerify skipped in short mode.")
	}
	const (
		minOps = 1
		maxOps = 96
		rounds = 20
	)
	f := fuzz.New().NilChance(0).NumElements(minOps, maxOps).Funcs(
		func(op *fuzzOp, c fuzz.Continue) {
			op.Update = c.RandBool() && c.RandBool()
			op.Index = c.Uint64()
			c.Fuzz(&op.Record)
		})

	for round := 0; round < rounds; round++ {
		var ops []fuzzOp
		f.Fuzz(&ops)

		tree := amt.New(sha256.New())
		log := prover.New(sha256.New, recordSize)
		for i, op := range ops {
			if op.Update && log.Size() > 0 {
				old, proof, err := log.Update(op.Index%log.Size(), op.Record[:])
				require.NoError(t, err)
				require.NoError(t, tree.Update(old, op.Record[:], proof), "round %d op %d", round, i)
			} else {
				proof, err := log.Append(op.Record[:])
				require.NoError(t, err)
				require.NoError(t, tree.Insert(op.Record[:], proof), "round %d op %d", round, i)
			}
			require.Equal(t, log.Root(), tree.Root(), "round %d op %d", round, i)
			require.Equal(t, log.Size(), tree.Size())
		}

		for i, r := range log.Records() {
			proof, err := log.Prove(uint64(i))
			require.NoError(t, err)
			assert.True(t, tree.VerifyMembership(r, proof), "round %d record %d", round, i)
		}
		rebuilt, err := prover.FromRecords(sha256.New, recordSize, log.Records())
		require.NoError(t, err)
		assert.Equal(t, log.Root(), rebuilt.Root())
	}
}

// FuzzInsertRejectsForgedProofs feeds arbitrary proofs to Insert. Whatever the
// proof, the tree either commits exactly what the log computes or leaves its
// state untouched.
func FuzzInsertRejectsForgedProofs(f *testing.F) {
	f.Add(uint8(5), []byte{}, []byte{})
	f.Add(uint8(7), []byte{'L'}, make([]byte, 32))
	f.Add(uint8(8), []byte{'L', 'L', 'L'}, make([]byte, 96))
	f.Add(uint8(3), []byte{'R', 'L'}, make([]byte, 64))

	f.Fuzz(func(t *testing.T, n uint8, dirs []byte, siblings []byte) {
		size := int(n%32) + 1
		tree, log := build(t, size)
		before := tree.State()

		proof := make(amt.Proof, len(dirs))
		for i := range proof {
			proof[i].Direction = amt.Direction(dirs[i])
			if off := i * amt.DigestSize; off < len(siblings) {
				copy(proof[i].Sibling[:], siblings[off:])
			}
		}

		next := record(size)
		if err := tree.Insert(next, proof); err != nil {
			require.True(t, before.Equal(tree.State()))
			return
		}
		_, err := log.Append(next)
		require.NoError(t, err)
		require.Equal(t, log.Root(), tree.Root())
	})
}
