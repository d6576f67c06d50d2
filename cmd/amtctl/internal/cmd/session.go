package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/celestiaorg/amt"
	"github.com/celestiaorg/amt/defaulthasher"
	"github.com/celestiaorg/amt/prover"
	"github.com/celestiaorg/amt/storage"
	"github.com/celestiaorg/amt/wire"
)

var ErrOutOfSync = errors.New("stored records do not match the stored commitment")

// session is one tree loaded from disk: the full log on the prover side and
// the commitment restored into an amt.Tree.
type session struct {
	conf   *Config
	logger *zap.SugaredLogger
	store  storage.Store
	id     uuid.UUID
	log    *prover.Log
	tree   *amt.Tree
}

func openSession(ctx context.Context, confPath string, debug bool) (*session, error) {
	conf, err := LoadConfig(confPath)
	if err != nil {
		return nil, err
	}
	logger, err := NewLogger(conf.Logger, debug)
	if err != nil {
		return nil, err
	}
	newHash, err := defaulthasher.Factory(conf.Hash)
	if err != nil {
		return nil, err
	}
	store, err := storage.NewFileStore(conf.StatePath())
	if err != nil {
		return nil, err
	}

	id := conf.ID()
	state, err := store.LoadState(ctx, id)
	if err != nil {
		return nil, err
	}
	records, err := store.LoadRecords(ctx, id)
	if err != nil {
		return nil, err
	}
	log, err := prover.FromRecords(newHash, conf.RecordSize, records)
	if err != nil {
		return nil, err
	}
	tree := amt.New(newHash(), amt.RecordSize(conf.RecordSize))
	if err := tree.Restore(state); err != nil {
		return nil, err
	}
	if log.Size() != state.Size || log.Root() != state.Root {
		return nil, fmt.Errorf("%w: %d records with root %v, commitment of size %d with root %v",
			ErrOutOfSync, log.Size(), log.Root(), state.Size, state.Root)
	}

	logger.Debugw("loaded tree", "id", id, "size", state.Size, "root", state.Root, "hash", conf.Hash)
	return &session{
		conf:   conf,
		logger: logger,
		store:  store,
		id:     id,
		log:    log,
		tree:   tree,
	}, nil
}

// commit persists the log's records and then the tree's commitment. It must
// only be called after the tree accepted the change.
func (s *session) commit(ctx context.Context) error {
	if err := s.store.SaveRecords(ctx, s.id, s.log.Records()); err != nil {
		return err
	}
	state := s.tree.State()
	if err := s.store.SaveState(ctx, s.id, state); err != nil {
		return err
	}
	s.logger.Debugw("saved tree", "id", s.id, "size", state.Size, "root", state.Root)
	return nil
}

// insert hands record and its append proof to the tree as an encoded
// InsertRequest.
func (s *session) insert(record []byte, proof amt.Proof) error {
	b, err := wire.Marshal(&wire.InsertRequest{Record: record, Proof: wire.FromProof(proof)})
	if err != nil {
		return err
	}
	return wire.ApplyInsert(s.tree, b)
}

func (s *session) update(oldRecord, newRecord []byte, proof amt.Proof) error {
	b, err := wire.Marshal(&wire.UpdateRequest{
		OldRecord: oldRecord,
		NewRecord: newRecord,
		Proof:     wire.FromProof(proof),
	})
	if err != nil {
		return err
	}
	return wire.ApplyUpdate(s.tree, b)
}

func (s *session) verify(record []byte, proof amt.Proof) (bool, error) {
	b, err := wire.Marshal(&wire.VerifyRequest{Record: record, Proof: wire.FromProof(proof)})
	if err != nil {
		return false, err
	}
	return wire.ApplyVerify(s.tree, b), nil
}

func (s *session) close() {
	s.logger.Sync() //nolint:errcheck
}
