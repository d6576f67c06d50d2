package amt

import (
	"fmt"
	"strings"
)

// Direction tells on which side of the running digest a proof step's sibling
// sits when the parent is computed.
type Direction byte

const (
	// Left means the sibling is the left operand: parent = H(sibling, digest).
	Left Direction = 'L'
	// Right means the sibling is the right operand: parent = H(digest, sibling).
	Right Direction = 'R'
)

func (d Direction) String() string {
	switch d {
	case Left:
		return "L"
	case Right:
		return "R"
	default:
		return fmt.Sprintf("Direction(%d)", byte(d))
	}
}

// Valid reports whether d is Left or Right.
func (d Direction) Valid() bool {
	return d == Left || d == Right
}

// ProofStep is a single sibling on the path from a leaf to the root.
type ProofStep struct {
	Sibling   Digest
	Direction Direction
}

// Proof is a Merkle path, ordered from the leaf's neighbour up to the child
// of the root. The zero length proof is the path of a single leaf tree.
type Proof []ProofStep

// ValidateBasic checks that every step names a known direction.
func (proof Proof) ValidateBasic() error {
	for i, step := range proof {
		if !step.Direction.Valid() {
			return fmt.Errorf("%w: step %d: %v", ErrInvalidDirection, i, step.Direction)
		}
	}
	return nil
}

// IsAppendPath reports whether proof has the shape of the path of the right
// most leaf in a tree of the given size: AppendPathLen(size) steps, all of
// them with the sibling on the left.
func (proof Proof) IsAppendPath(size uint64) bool {
	if size == 0 || len(proof) != AppendPathLen(size) {
		return false
	}
	for _, step := range proof {
		if step.Direction != Left {
			return false
		}
	}
	return true
}

// Clone returns a copy of proof that shares no memory with it.
func (proof Proof) Clone() Proof {
	if proof == nil {
		return nil
	}
	return append(Proof(nil), proof...)
}

func (proof Proof) String() string {
	var sb strings.Builder
	sb.WriteByte('[')
	for i, step := range proof {
		if i > 0 {
			sb.WriteByte(' ')
		}
		fmt.Fprintf(&sb, "%v:%x", step.Direction, step.Sibling[:4])
	}
	sb.WriteByte(']')
	return sb.String()
}
