package amt

import (
	"fmt"
	"math/bits"
)

// AppendPathLen returns the number of steps in the path of the last leaf of a
// tree with size leaves. The last leaf first climbs its smallest perfect
// subtree (trailingZeros(size) steps) and then meets one left peak per
// remaining set bit of size.
func AppendPathLen(size uint64) int {
	if size == 0 {
		return 0
	}
	return bits.TrailingZeros64(size) + bits.OnesCount64(size) - 1
}

// peakLevel returns how many leading steps of an append proof of proofLen
// steps lie inside the perfect subtree that holds the last leaf of a tree of
// the given size. The new leaf becomes the right sibling of that subtree.
//
// A proof shorter than popcount(size)-1 wraps the subtraction, which is
// reported as ErrCounterOverflow.
func peakLevel(size uint64, proofLen int) (uint64, error) {
	count := uint64(proofLen)
	level := count - uint64(bits.OnesCount64(size)-1)
	if level > count {
		return 0, fmt.Errorf("%w: tree level for size %d and proof length %d", ErrCounterOverflow, size, proofLen)
	}
	return level, nil
}
