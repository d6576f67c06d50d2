package storage

import (
	"fmt"

	"github.com/fxamacker/cbor/v2"

	"github.com/celestiaorg/amt"
)

// stateEntry is the persisted form of amt.State. The root is kept as a byte
// string so that a truncated or padded root is rejected on load instead of
// being silently resized.
type stateEntry struct {
	Root       []byte `cbor:"1,keyasint"`
	Size       uint64 `cbor:"2,keyasint"`
	LastRecord []byte `cbor:"3,keyasint"`
}

type recordsEntry struct {
	Records [][]byte `cbor:"1,keyasint"`
}

// CBORCodec encodes with the core deterministic encoding, so that equal
// states always produce equal bytes.
type CBORCodec struct {
	enc cbor.EncMode
	dec cbor.DecMode
}

func NewCBORCodec() (CBORCodec, error) {
	enc, err := cbor.CoreDetEncOptions().EncMode()
	if err != nil {
		return CBORCodec{}, err
	}
	dec, err := cbor.DecOptions{}.DecMode()
	if err != nil {
		return CBORCodec{}, err
	}
	return CBORCodec{enc: enc, dec: dec}, nil
}

func (c CBORCodec) MarshalState(s amt.State) ([]byte, error) {
	return c.enc.Marshal(stateEntry{
		Root:       s.Root.Bytes(),
		Size:       s.Size,
		LastRecord: s.LastRecord,
	})
}

func (c CBORCodec) UnmarshalState(b []byte) (amt.State, error) {
	var e stateEntry
	if err := c.dec.Unmarshal(b, &e); err != nil {
		return amt.State{}, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	root, err := amt.DigestFromBytes(e.Root)
	if err != nil {
		return amt.State{}, fmt.Errorf("%w: %w", ErrCorrupt, err)
	}
	return amt.State{Root: root, Size: e.Size, LastRecord: e.LastRecord}, nil
}

func (c CBORCodec) MarshalRecords(records [][]byte) ([]byte, error) {
	return c.enc.Marshal(recordsEntry{Records: records})
}

func (c CBORCodec) UnmarshalRecords(b []byte) ([][]byte, error) {
	var e recordsEntry
	if err := c.dec.Unmarshal(b, &e); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrCorrupt, err)
	}
	return e.Records, nil
}
