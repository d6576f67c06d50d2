// Package storage persists what a host needs to resume a tree between runs:
// the engine's commitment and the prover's records. The tree itself never
// persists anything.
package storage

import (
	"context"
	"errors"
	"sync"

	"github.com/google/uuid"

	"github.com/celestiaorg/amt"
)

var (
	ErrNotFound = errors.New("tree not found")
	ErrCorrupt  = errors.New("stored data is corrupt")
)

type Store interface {
	StateStore
	RecordStore
}

type StateStore interface {
	LoadState(ctx context.Context, id uuid.UUID) (amt.State, error)
	SaveState(ctx context.Context, id uuid.UUID, s amt.State) error
}

type RecordStore interface {
	LoadRecords(ctx context.Context, id uuid.UUID) ([][]byte, error)
	SaveRecords(ctx context.Context, id uuid.UUID, records [][]byte) error
}

var _ Store = &MemoryStore{}

// MemoryStore keeps copies of everything it is given.
type MemoryStore struct {
	mu      sync.Mutex
	states  map[uuid.UUID]amt.State
	records map[uuid.UUID][][]byte
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		states:  make(map[uuid.UUID]amt.State),
		records: make(map[uuid.UUID][][]byte),
	}
}

func (m *MemoryStore) LoadState(_ context.Context, id uuid.UUID) (amt.State, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.states[id]
	if !ok {
		return amt.State{}, ErrNotFound
	}
	return s.Clone(), nil
}

func (m *MemoryStore) SaveState(_ context.Context, id uuid.UUID, s amt.State) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.states[id] = s.Clone()
	return nil
}

func (m *MemoryStore) LoadRecords(_ context.Context, id uuid.UUID) ([][]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	records, ok := m.records[id]
	if !ok {
		return nil, ErrNotFound
	}
	return cloneRecords(records), nil
}

func (m *MemoryStore) SaveRecords(_ context.Context, id uuid.UUID, records [][]byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.records[id] = cloneRecords(records)
	return nil
}

func cloneRecords(records [][]byte) [][]byte {
	out := make([][]byte, len(records))
	for i, r := range records {
		out[i] = append([]byte(nil), r...)
	}
	return out
}
