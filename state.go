package amt

import "bytes"

// State is the constant size commitment a Tree keeps between calls. Hosts
// persist it after every successful mutation and hand it back to
// Tree.Restore.
type State struct {
	Root       Digest
	Size       uint64
	LastRecord []byte
}

// Clone returns a deep copy of s.
func (s State) Clone() State {
	s.LastRecord = cloneBytes(s.LastRecord)
	return s
}

// Equal reports whether s and other commit to the same records.
func (s State) Equal(other State) bool {
	return s.Root == other.Root && s.Size == other.Size && bytes.Equal(s.LastRecord, other.LastRecord)
}

func cloneBytes(b []byte) []byte {
	if b == nil {
		return nil
	}
	return append(make([]byte, 0, len(b)), b...)
}
