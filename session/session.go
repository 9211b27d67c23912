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
	"sync"
	"time"

	"github.com/docsight/docsight/index"
)

// Stats describes what a session currently holds.
type Stats struct {
	Documents  int
	Chunks     int
	IngestedAt time.Time
}

// Session is one user's isolated workspace. It holds the current vector
// index for the session's documents, or nil before the first ingest.
//
// The index pointer is swapped as a whole under the mutex, so readers
// always see either the complete old index or the complete new one.
type Session struct {
	id string

	mu    sync.RWMutex
	index *index.Index
	stats Stats

	// ingestMu serializes ingests for this session. Queries are not
	// blocked by an in-flight ingest.
	ingestMu sync.Mutex
}

func newSession(id string) *Session {
	return &Session{id: id}
}

// ID returns the session identifier.
func (s *Session) ID() string {
	return s.id
}

// Ready reports whether the session has an index to query.
func (s *Session) Ready() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index != nil
}

// Index returns the session's current index, or nil before the first
// successful ingest. The returned index is immutable.
func (s *Session) Index() *index.Index {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Stats returns a snapshot of the session's document and chunk counts.
func (s *Session) Stats() Stats {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.stats
}

// RunIngest builds a replacement index via build and installs it
// atomically. If build fails, the previous index stays in place and the
// error is returned. Concurrent ingests for the same session are
// serialized; queries keep reading the old index until the swap.
func (s *Session) RunIngest(documents int, build func() (*index.Index, error)) error {
	s.ingestMu.Lock()
	defer s.ingestMu.Unlock()

	idx, err := build()
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.index = idx
	s.stats = Stats{
		Documents:  documents,
		Chunks:     idx.Len(),
		IngestedAt: time.Now().UTC(),
	}
	s.mu.Unlock()
	return nil
}
