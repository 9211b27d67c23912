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

package session

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/docsight/docsight/core"
	"github.com/hashicorp/golang-lru/v2/expirable"
)

const evictionPurgeTimeout = 5 * time.Second

// Purger removes all stored history for a session. Satisfied by
// storage.HistoryRepository.
type Purger interface {
	PurgeSession(ctx context.Context, sessionID string) error
}

// Store tracks live sessions. Sessions are created on first use and
// evicted by capacity or idle TTL; eviction purges the session's
// conversation history so nothing outlives the session.
type Store struct {
	mu     sync.Mutex
	cache  *expirable.LRU[string, *Session]
	purger Purger
	logger *slog.Logger
}

// StoreOption configures a Store.
type StoreOption func(*storeConfig)

type storeConfig struct {
	capacity int
	ttl      time.Duration
	purger   Purger
}

// WithCapacity bounds the number of live sessions. Zero means unbounded.
func WithCapacity(n int) StoreOption {
	return func(c *storeConfig) { c.capacity = n }
}

// WithTTL evicts sessions idle for longer than d. Zero disables expiry.
func WithTTL(d time.Duration) StoreOption {
	return func(c *storeConfig) { c.ttl = d }
}

// WithPurger registers a history purger invoked when a session is evicted.
func WithPurger(p Purger) StoreOption {
	return func(c *storeConfig) { c.purger = p }
}

// NewStore creates a session store.
func NewStore(opts ...StoreOption) *Store {
	cfg := storeConfig{}
	for _, opt := range opts {
		opt(&cfg)
	}

	store := &Store{
		purger: cfg.purger,
		logger: slog.Default().With("component", "session-store"),
	}
	store.cache = expirable.NewLRU[string, *Session](cfg.capacity, store.onEvict, cfg.ttl)
	return store
}

// GetOrCreate returns the session for id, creating it if needed.
func (s *Store) GetOrCreate(id string) (*Session, error) {
	if id == "" {
		return nil, core.ErrEmptySessionID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if sess, ok := s.cache.Get(id); ok {
		// Re-adding resets the entry's expiry; the TTL measures idleness,
		// not lifetime.
		s.cache.Add(id, sess)
		return sess, nil
	}
	sess := newSession(id)
	s.cache.Add(id, sess)
	return sess, nil
}

// Get returns the session for id without creating one. Unlike
// GetOrCreate, it does not refresh the idle TTL.
func (s *Store) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Get(id)
}

// Remove evicts a session, purging its history via the eviction callback.
func (s *Store) Remove(id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.cache.Remove(id)
}

// Len returns the number of live sessions.
func (s *Store) Len() int {
	return s.cache.Len()
}

func (s *Store) onEvict(id string, _ *Session) {
	if s.purger == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), evictionPurgeTimeout)
	defer cancel()
	if err := s.purger.PurgeSession(ctx, id); err != nil {
		s.logger.Warn("failed to purge evicted session history",
			"session_id", id,
			"error", err)
		return
	}
	s.logger.Debug("evicted session", "session_id", id)
}
