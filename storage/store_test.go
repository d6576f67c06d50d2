package storage

import (
	"context"
	"crypto/sha256"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/celestiaorg/amt"
)

func testState() amt.State {
	last := sha256.Sum256([]byte("last"))
	return amt.State{
		Root:       sha256.Sum256([]byte("root")),
		Size:       42,
		LastRecord: last[:],
	}
}

func testRecords() [][]byte {
	return [][]byte{{1, 2, 3}, {4, 5, 6}}
}

func testStores(t *testing.T) map[string]Store {
	fs, err := NewFileStore(filepath.Join(t.TempDir(), "trees"))
	require.NoError(t, err)
	return map[string]Store{
		"memory": NewMemoryStore(),
		"file":   fs,
	}
}

func TestStore_RoundTrip(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			id := uuid.New()
			require.NoError(t, s.SaveState(ctx, id, testState()))
			require.NoError(t, s.SaveRecords(ctx, id, testRecords()))

			state, err := s.LoadState(ctx, id)
			require.NoError(t, err)
			assert.True(t, testState().Equal(state))

			records, err := s.LoadRecords(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, testRecords(), records)
		})
	}
}

func TestStore_Overwrite(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			id := uuid.New()
			require.NoError(t, s.SaveState(ctx, id, amt.State{}))
			require.NoError(t, s.SaveState(ctx, id, testState()))
			state, err := s.LoadState(ctx, id)
			require.NoError(t, err)
			assert.Equal(t, uint64(42), state.Size)
		})
	}
}

func TestStore_NotFound(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			_, err := s.LoadState(ctx, uuid.New())
			assert.ErrorIs(t, err, ErrNotFound)
			_, err = s.LoadRecords(ctx, uuid.New())
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestStore_TreesAreIndependent(t *testing.T) {
	ctx := context.Background()
	for name, s := range testStores(t) {
		t.Run(name, func(t *testing.T) {
			a, b := uuid.New(), uuid.New()
			require.NoError(t, s.SaveState(ctx, a, testState()))
			require.NoError(t, s.SaveState(ctx, b, amt.State{Size: 1, LastRecord: []byte{9}}))

			state, err := s.LoadState(ctx, a)
			require.NoError(t, err)
			assert.True(t, testState().Equal(state))
		})
	}
}

func TestMemoryStore_CopiesData(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore()
	id := uuid.New()

	state := testState()
	records := testRecords()
	require.NoError(t, s.SaveState(ctx, id, state))
	require.NoError(t, s.SaveRecords(ctx, id, records))
	state.LastRecord[0] ^= 0xFF
	records[0][0] ^= 0xFF

	got, err := s.LoadState(ctx, id)
	require.NoError(t, err)
	assert.True(t, testState().Equal(got))
	gotRecords, err := s.LoadRecords(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, testRecords(), gotRecords)
}

func TestFileStore_Layout(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	assert.Equal(t, dir, s.Dir())

	id := uuid.New()
	require.NoError(t, s.SaveState(ctx, id, testState()))
	require.NoError(t, s.SaveRecords(ctx, id, testRecords()))

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{id.String() + ".state.cbor", id.String() + ".records.cbor"}, names)
}

func TestFileStore_Corrupt(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	s, err := NewFileStore(dir)
	require.NoError(t, err)
	id := uuid.New()

	require.NoError(t, os.WriteFile(filepath.Join(dir, id.String()+".state.cbor"), []byte{0xFF, 0x00}, 0o600))
	_, err = s.LoadState(ctx, id)
	assert.ErrorIs(t, err, ErrCorrupt)

	require.NoError(t, os.WriteFile(filepath.Join(dir, id.String()+".records.cbor"), []byte("not cbor"), 0o600))
	_, err = s.LoadRecords(ctx, id)
	assert.ErrorIs(t, err, ErrCorrupt)
}

func TestFileStore_CanceledContext(t *testing.T) {
	s, err := NewFileStore(t.TempDir())
	require.NoError(t, err)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	assert.ErrorIs(t, s.SaveState(ctx, uuid.New(), testState()), context.Canceled)
	_, err = s.LoadState(ctx, uuid.New())
	assert.ErrorIs(t, err, context.Canceled)
}

func TestCBORCodec(t *testing.T) {
	c, err := NewCBORCodec()
	require.NoError(t, err)

	a, err := c.MarshalState(testState())
	require.NoError(t, err)
	b, err := c.MarshalState(testState())
	require.NoError(t, err)
	assert.Equal(t, a, b, "encoding must be deterministic")

	// a root of the wrong size is corrupt, not resized
	short, err := c.enc.Marshal(stateEntry{Root: make([]byte, 31), Size: 1, LastRecord: []byte{1}})
	require.NoError(t, err)
	_, err = c.UnmarshalState(short)
	assert.ErrorIs(t, err, ErrCorrupt)
	assert.ErrorIs(t, err, amt.ErrInvalidDigestLen)
}
