// Copyright 2026 The docsight Authors
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package badger

import (
	"context"
	"encoding/binary"
	"fmt"
	"log/slog"
	"time"

	"github.com/dgraph-io/badger/v4"
	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/storage"
)

// HistoryRepository implements storage.HistoryRepository on a badger Backend.
type HistoryRepository struct {
	backend *Backend
	logger  *slog.Logger
}

var _ storage.HistoryRepository = (*HistoryRepository)(nil)

// NewHistoryRepository creates a history repository on the given backend.
//
// Returns the storage.HistoryRepository interface to enforce abstraction.
func NewHistoryRepository(backend *Backend) (storage.HistoryRepository, error) {
	if backend == nil {
		return nil, fmt.Errorf("backend required")
	}
	return &HistoryRepository{
		backend: backend,
		logger:  slog.Default().With("component", "history-repository"),
	}, nil
}

// AppendTurns appends turns to a session's history in one transaction.
func (r *HistoryRepository) AppendTurns(ctx context.Context, sessionID string, turns ...*core.Turn) ([]*core.Turn, error) {
	if sessionID == "" {
		return nil, storage.ErrSessionRequired
	}
	if len(turns) == 0 {
		return nil, nil
	}
	for _, turn := range turns {
		if err := core.ValidateTurn(turn); err != nil {
			return nil, err
		}
	}

	err := r.backend.WithRetry(ctx, func(tx *badger.Txn) error {
		count, err := readTurnCount(tx, sessionID)
		if err != nil {
			return err
		}

		for i, turn := range turns {
			seq := count + uint64(i)
			if turn.Id == 0 {
				turn.Id = core.IDFromContent(fmt.Sprintf("%s:%d:%s", sessionID, seq, turn.Contents))
			}
			if turn.CreatedAt.IsZero() {
				turn.CreatedAt = time.Now().UTC()
			}

			if err := tx.Set(makeTurnKey(sessionID, seq), storage.MarshalTurn(turn)); err != nil {
				return err
			}
		}

		var countBuf [8]byte
		binary.BigEndian.PutUint64(countBuf[:], count+uint64(len(turns)))
		if err := tx.Set(makeTurnCountKey(sessionID), countBuf[:]); err != nil {
			return err
		}

		return tx.Commit()
	})
	if err != nil {
		return nil, err
	}
	return turns, nil
}

// History returns the session's turns in chronological order.
// The returned turns are decoded copies, detached from storage.
func (r *HistoryRepository) History(ctx context.Context, sessionID string) ([]core.Turn, error) {
	if sessionID == "" {
		return nil, storage.ErrSessionRequired
	}

	history := []core.Turn{}
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		opts := badger.DefaultIteratorOptions
		opts.Prefix = makeTurnPrefix(sessionID)
		iter := tx.NewIterator(opts)
		defer iter.Close()

		for iter.Rewind(); iter.Valid(); iter.Next() {
			err := iter.Item().Value(func(val []byte) error {
				turn, err := storage.UnmarshalTurn(val)
				if err != nil {
					return err
				}
				history = append(history, *turn)
				return nil
			})
			if err != nil {
				return err
			}
		}
		return nil
	}, false)
	if err != nil {
		return nil, err
	}
	return history, nil
}

// TurnCount returns the number of turns stored for a session.
func (r *HistoryRepository) TurnCount(ctx context.Context, sessionID string) (int, error) {
	if sessionID == "" {
		return 0, storage.ErrSessionRequired
	}

	var count uint64
	err := r.backend.WithTx(func(tx *badger.Txn) error {
		var err error
		count, err = readTurnCount(tx, sessionID)
		return err
	}, false)
	if err != nil {
		return 0, err
	}
	return int(count), nil
}

// PurgeSession removes all turns and the counter for a session.
func (r *HistoryRepository) PurgeSession(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return storage.ErrSessionRequired
	}

	return r.backend.WithRetry(ctx, func(tx *badger.Txn) error {
		count, err := readTurnCount(tx, sessionID)
		if err != nil {
			return err
		}
		for seq := uint64(0); seq < count; seq++ {
			if err := tx.Delete(makeTurnKey(sessionID, seq)); err != nil {
				return err
			}
		}
		if err := tx.Delete(makeTurnCountKey(sessionID)); err != nil {
			return err
		}
		return tx.Commit()
	})
}

// Close closes the repository. The underlying backend is shared and closed
// separately by its owner.
func (r *HistoryRepository) Close() error {
	return nil
}

// readTurnCount reads a session's turn counter inside a transaction.
// A missing counter means zero turns.
func readTurnCount(tx *badger.Txn, sessionID string) (uint64, error) {
	item, err := tx.Get(makeTurnCountKey(sessionID))
	if err == badger.ErrKeyNotFound {
		return 0, nil
	}
	if err != nil {
		return 0, err
	}

	var count uint64
	err = item.Value(func(val []byte) error {
		if len(val) != 8 {
			return fmt.Errorf("%w: turn counter has %d bytes", storage.ErrSerializationFailed, len(val))
		}
		count = binary.BigEndian.Uint64(val)
		return nil
	})
	return count, err
}
