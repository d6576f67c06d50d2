// Package prover implements the untrusted side of the tree: a log that keeps
// every record and every node, and hands out the proofs an amt.Tree needs to
// insert, update and verify records.
package prover

import (
	"errors"
	"fmt"
	"hash"

	"github.com/celestiaorg/amt"
)

var ErrIndexOutOfRange = errors.New("record index out of range")

// Log is a complete copy of an append-only tree. Its shape matches the tree
// an amt.Tree commits to: the left subtree of every node is the largest
// perfect subtree that fits, which is the same as pairing the nodes of each
// level from the left and promoting an odd last node.
//
// A Log is not safe for concurrent use.
type Log struct {
	hasher     *amt.Hasher
	batch      *BatchProcessor
	recordSize int

	records [][]byte
	// levels[0] holds the leaf digests, the last level holds the root.
	levels [][]amt.Digest
}

// New returns an empty log for records of recordSize bytes.
func New(newHash func() hash.Hash, recordSize int) *Log {
	return &Log{
		hasher:     amt.NewHasher(newHash()),
		batch:      NewBatchProcessor(newHash),
		recordSize: recordSize,
		levels:     [][]amt.Digest{{}},
	}
}

// FromRecords rebuilds a log from records, hashing every level in parallel.
func FromRecords(newHash func() hash.Hash, recordSize int, records [][]byte) (*Log, error) {
	l := New(newHash, recordSize)
	leaves := make([]amt.Digest, 0, len(records))
	for i, r := range records {
		if err := l.validateRecord(r); err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		l.records = append(l.records, append([]byte(nil), r...))
		leaves = append(leaves, l.hasher.HashLeaf(r))
	}
	l.levels = [][]amt.Digest{leaves}
	for level := leaves; len(level) > 1; {
		level = l.batch.HashLevel(level)
		l.levels = append(l.levels, level)
	}
	return l, nil
}

// Size returns the number of records.
func (l *Log) Size() uint64 {
	return uint64(len(l.records))
}

// Root returns the root digest, or the zero digest for an empty log.
func (l *Log) Root() amt.Digest {
	top := l.levels[len(l.levels)-1]
	if len(top) == 0 {
		return amt.Digest{}
	}
	return top[0]
}

// Record returns a copy of the record at index.
func (l *Log) Record(index uint64) ([]byte, error) {
	if index >= l.Size() {
		return nil, fmt.Errorf("%w: %d, size %d", ErrIndexOutOfRange, index, l.Size())
	}
	return append([]byte(nil), l.records[index]...), nil
}

// Records returns copies of all records in insertion order.
func (l *Log) Records() [][]byte {
	out := make([][]byte, len(l.records))
	for i, r := range l.records {
		out[i] = append([]byte(nil), r...)
	}
	return out
}

// Prove returns the path of the record at index in the current tree.
func (l *Log) Prove(index uint64) (amt.Proof, error) {
	if index >= l.Size() {
		return nil, fmt.Errorf("%w: %d, size %d", ErrIndexOutOfRange, index, l.Size())
	}
	proof := make(amt.Proof, 0, len(l.levels)-1)
	i := int(index)
	for lvl := 0; lvl < len(l.levels)-1; lvl++ {
		cur := l.levels[lvl]
		switch {
		case i%2 == 1:
			proof = append(proof, amt.ProofStep{Sibling: cur[i-1], Direction: amt.Left})
		case i+1 < len(cur):
			proof = append(proof, amt.ProofStep{Sibling: cur[i+1], Direction: amt.Right})
		}
		// a node without a right sibling is promoted and adds no step
		i /= 2
	}
	return proof, nil
}

// AppendProof returns the proof an amt.Tree of the same size needs to insert
// the next record: the path of the current last record.
func (l *Log) AppendProof() amt.Proof {
	if l.Size() == 0 {
		return nil
	}
	proof, _ := l.Prove(l.Size() - 1)
	return proof
}

// Append adds record and returns the proof that was valid for the tree just
// before the record was added.
func (l *Log) Append(record []byte) (amt.Proof, error) {
	if err := l.validateRecord(record); err != nil {
		return nil, err
	}
	proof := l.AppendProof()
	l.records = append(l.records, append([]byte(nil), record...))
	l.levels[0] = append(l.levels[0], l.hasher.HashLeaf(record))
	l.refresh(len(l.levels[0]) - 1)
	return proof, nil
}

// Update replaces the record at index. It returns the previous record and
// its proof in the tree before the update, which is what amt.Tree.Update
// expects.
func (l *Log) Update(index uint64, record []byte) (old []byte, proof amt.Proof, err error) {
	if err := l.validateRecord(record); err != nil {
		return nil, nil, err
	}
	if proof, err = l.Prove(index); err != nil {
		return nil, nil, err
	}
	old = l.records[index]
	l.records[index] = append([]byte(nil), record...)
	l.levels[0][index] = l.hasher.HashLeaf(record)
	l.refresh(int(index))
	return old, proof, nil
}

// refresh recomputes the ancestors of the leaf at index i, growing the
// levels above it when the leaf was just appended.
func (l *Log) refresh(i int) {
	for lvl := 0; len(l.levels[lvl]) > 1; lvl++ {
		if lvl+1 == len(l.levels) {
			l.levels = append(l.levels, nil)
		}
		cur := l.levels[lvl]
		var d amt.Digest
		if i^1 < len(cur) {
			d = l.hasher.HashNode(cur[i&^1], cur[i|1])
		} else {
			d = cur[i]
		}
		p := i / 2
		if next := l.levels[lvl+1]; p == len(next) {
			l.levels[lvl+1] = append(next, d)
		} else {
			next[p] = d
		}
		i = p
	}
}

func (l *Log) validateRecord(record []byte) error {
	if len(record) != l.recordSize {
		return fmt.Errorf("%w: got: %v, want: %v", amt.ErrInvalidRecordLen, len(record), l.recordSize)
	}
	return nil
}
