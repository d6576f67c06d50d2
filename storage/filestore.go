package storage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	"github.com/celestiaorg/amt"
)

const (
	stateExt   = ".state.cbor"
	recordsExt = ".records.cbor"
)

var _ Store = &FileStore{}

// FileStore keeps one CBOR file per tree for the state and one for the
// records, under a single directory. Files are replaced atomically.
type FileStore struct {
	dir   string
	codec CBORCodec
}

// NewFileStore creates dir if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	codec, err := NewCBORCodec()
	if err != nil {
		return nil, err
	}
	return &FileStore{dir: dir, codec: codec}, nil
}

func (f *FileStore) Dir() string {
	return f.dir
}

func (f *FileStore) LoadState(ctx context.Context, id uuid.UUID) (amt.State, error) {
	b, err := f.read(ctx, id, stateExt)
	if err != nil {
		return amt.State{}, err
	}
	return f.codec.UnmarshalState(b)
}

func (f *FileStore) SaveState(ctx context.Context, id uuid.UUID, s amt.State) error {
	b, err := f.codec.MarshalState(s)
	if err != nil {
		return err
	}
	return f.write(ctx, id, stateExt, b)
}

func (f *FileStore) LoadRecords(ctx context.Context, id uuid.UUID) ([][]byte, error) {
	b, err := f.read(ctx, id, recordsExt)
	if err != nil {
		return nil, err
	}
	return f.codec.UnmarshalRecords(b)
}

func (f *FileStore) SaveRecords(ctx context.Context, id uuid.UUID, records [][]byte) error {
	b, err := f.codec.MarshalRecords(records)
	if err != nil {
		return err
	}
	return f.write(ctx, id, recordsExt, b)
}

func (f *FileStore) path(id uuid.UUID, ext string) string {
	return filepath.Join(f.dir, id.String()+ext)
}

func (f *FileStore) read(ctx context.Context, id uuid.UUID, ext string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	b, err := os.ReadFile(f.path(id, ext))
	if errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %v", ErrNotFound, id)
	}
	return b, err
}

func (f *FileStore) write(ctx context.Context, id uuid.UUID, ext string, b []byte) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	tmp, err := os.CreateTemp(f.dir, id.String()+ext+".*")
	if err != nil {
		return err
	}
	defer os.Remove(tmp.Name()) //nolint:errcheck

	if _, err := tmp.Write(b); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close() //nolint:errcheck
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), f.path(id, ext))
}
