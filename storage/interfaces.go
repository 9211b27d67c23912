package storage

import (
	"context"

	"github.com/docsight/docsight/core"
)

// HistoryRepository stores per-session conversation history.
// Implementations must be thread-safe and support concurrent access.
type HistoryRepository interface {
	// AppendTurns appends one or more turns to a session's history in a
	// single transaction, preserving the given order. Turns with Id=0 get a
	// content-derived ID; CreatedAt is set if zero. Returns the stored turns
	// with IDs and timestamps populated.
	AppendTurns(ctx context.Context, sessionID string, turns ...*core.Turn) ([]*core.Turn, error)

	// History returns the session's turns in chronological order.
	// The returned slice holds decoded copies: later appends never mutate a
	// previously returned snapshot. An unknown session yields an empty slice.
	History(ctx context.Context, sessionID string) ([]core.Turn, error)

	// TurnCount returns the number of turns stored for a session.
	TurnCount(ctx context.Context, sessionID string) (int, error)

	// PurgeSession removes all turns for a session. Purging an unknown
	// session is a no-op.
	PurgeSession(ctx context.Context, sessionID string) error

	// Close closes the repository and releases resources.
	Close() error
}
