package amt

import (
	"bytes"
	"errors"
	"fmt"
	"hash"
	"sync"
)

var (
	ErrProofMismatch    = errors.New("proof does not match the committed root")
	ErrCounterOverflow  = errors.New("tree size counter overflow")
	ErrInvalidRecordLen = errors.New("invalid record size")
	ErrInvalidDirection = errors.New("invalid proof step direction")
	ErrInvalidDigestLen = errors.New("invalid digest size")
)

// Tree is an append-only Merkle tree of fixed size records of which only the
// commitment (root, size, last record) is kept. Every mutation and membership
// check has to be accompanied by a proof supplied by the caller, which is
// checked against the committed root before anything changes.
//
// A Tree is safe for concurrent use; each operation holds the tree's lock
// until it has either committed or rejected.
type Tree struct {
	mu     sync.Mutex
	hasher *Hasher
	opts   Options
	state  State
}

// New returns an empty tree that hashes with h. h must produce 32-byte
// digests.
func New(h hash.Hash, setters ...Option) *Tree {
	opts := Options{
		RecordSize: DefaultRecordSize,
		MaxSize:    DefaultMaxSize,
	}
	for _, setter := range setters {
		setter(&opts)
	}
	return &Tree{
		hasher: NewHasher(h),
		opts:   opts,
	}
}

// Restore replaces the commitment with a previously persisted one. The
// triple is trusted as is; only its shape is checked.
func (t *Tree) Restore(s State) error {
	if s.Size > t.opts.MaxSize {
		return fmt.Errorf("%w: restored size %d exceeds max size %d", ErrCounterOverflow, s.Size, t.opts.MaxSize)
	}
	if s.Size > 0 {
		if err := t.validateRecord(s.LastRecord); err != nil {
			return err
		}
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	t.state = s.Clone()
	return nil
}

// State returns a copy of the current commitment.
func (t *Tree) State() State {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Clone()
}

// Root returns the committed root. It is the zero digest for an empty tree.
func (t *Tree) Root() Digest {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Root
}

// Size returns the number of committed records.
func (t *Tree) Size() uint64 {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.state.Size
}

// LastRecord returns a copy of the most recently inserted record, or nil for
// an empty tree.
func (t *Tree) LastRecord() []byte {
	t.mu.Lock()
	defer t.mu.Unlock()
	return cloneBytes(t.state.LastRecord)
}

// RecordSize returns the byte size of the records the tree accepts.
func (t *Tree) RecordSize() int {
	return t.opts.RecordSize
}

// VerifyMembership reports whether record, climbed along proof, reproduces the
// committed root.
func (t *Tree) VerifyMembership(record []byte, proof Proof) bool {
	if t.validateRecord(record) != nil || proof.ValidateBasic() != nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Size == 0 {
		return false
	}
	return t.hasher.ReplayRecord(record, proof) == t.state.Root
}

// VerifyDigest reports whether the digest d, climbed along proof, reproduces
// the committed root. d may be a leaf digest or the digest of an inner node.
func (t *Tree) VerifyDigest(d Digest, proof Proof) bool {
	if proof.ValidateBasic() != nil {
		return false
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.state.Size == 0 {
		return false
	}
	return t.hasher.Replay(d, proof) == t.state.Root
}

// Insert appends record to the tree.
//
// The first record needs no proof. Any later record needs the path of the
// current last record, which the tree checks against its root before
// deriving the new root from it.
func (t *Tree) Insert(record []byte, proof Proof) error {
	if err := t.validateRecord(record); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	size := t.state.Size
	if size >= t.opts.MaxSize {
		return fmt.Errorf("%w: tree already holds %d records", ErrCounterOverflow, size)
	}
	if size == 0 {
		t.state = State{
			Root:       t.hasher.HashLeaf(record),
			Size:       1,
			LastRecord: cloneBytes(record),
		}
		return nil
	}

	level, err := peakLevel(size, len(proof))
	if err != nil {
		return err
	}
	if err := proof.ValidateBasic(); err != nil {
		return err
	}
	if !proof.IsAppendPath(size) {
		return fmt.Errorf("%w: not the path of the last record of a tree of size %d: %v", ErrProofMismatch, size, proof)
	}
	if got := t.hasher.ReplayRecord(t.state.LastRecord, proof); got != t.state.Root {
		return fmt.Errorf("%w: last record replays to %v, root is %v", ErrProofMismatch, got, t.state.Root)
	}

	peak := t.hasher.ReplayRecord(t.state.LastRecord, proof[:level])
	newPeak := t.hasher.HashNode(peak, t.hasher.HashLeaf(record))
	root := t.hasher.Replay(newPeak, proof[level:])

	t.state = State{
		Root:       root,
		Size:       size + 1,
		LastRecord: cloneBytes(record),
	}
	return nil
}

// Update overwrites oldRecord with newRecord, given the proof of oldRecord's
// membership. The same proof, replayed from newRecord, yields the new root.
// If the proof addresses the last record, the last record follows the update
// so that subsequent inserts are checked against the live content.
func (t *Tree) Update(oldRecord, newRecord []byte, proof Proof) error {
	if err := t.validateRecord(oldRecord); err != nil {
		return err
	}
	if err := t.validateRecord(newRecord); err != nil {
		return err
	}
	if err := proof.ValidateBasic(); err != nil {
		return err
	}
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.state.Size == 0 {
		return fmt.Errorf("%w: tree is empty", ErrProofMismatch)
	}
	if got := t.hasher.ReplayRecord(oldRecord, proof); got != t.state.Root {
		return fmt.Errorf("%w: old record replays to %v, root is %v", ErrProofMismatch, got, t.state.Root)
	}

	t.state.Root = t.hasher.ReplayRecord(newRecord, proof)
	if bytes.Equal(oldRecord, t.state.LastRecord) && proof.IsAppendPath(t.state.Size) {
		t.state.LastRecord = cloneBytes(newRecord)
	}
	return nil
}

func (t *Tree) validateRecord(record []byte) error {
	if len(record) != t.opts.RecordSize {
		return fmt.Errorf("%w: got: %v, want: %v", ErrInvalidRecordLen, len(record), t.opts.RecordSize)
	}
	return nil
}
