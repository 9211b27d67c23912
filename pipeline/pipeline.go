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

package pipeline

import (
	"context"
	"log/slog"
	"runtime"

	"github.com/docsight/docsight/ai"
	"github.com/docsight/docsight/chunk"
	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/session"
	"github.com/docsight/docsight/storage"
	"github.com/panjf2000/ants/v2"
)

// NotReadyAnswer is returned for questions asked before any documents
// have been ingested into the session.
const NotReadyAnswer = "No documents have been uploaded to this session yet. Please upload documents before asking questions."

// FallbackAnswer is returned when the generation service fails after
// retrieval succeeded.
const FallbackAnswer = "I was unable to generate an answer right now. Please try again."

const (
	defaultTopK            = 4
	defaultChunkSize       = 1000
	defaultChunkOverlap    = 200
	defaultMaxHistoryTurns = 20
	embedBatchSize         = 16
)

// Pipeline orchestrates document ingestion and question answering.
// Ingestion runs extract, chunk, embed, and index; querying runs embed,
// search, and generate against the session's current index.
type Pipeline struct {
	sessions        *session.Store
	history         storage.HistoryRepository
	provider        ai.Provider
	chunker         *chunk.Chunker
	embedPool       *ants.Pool
	topK            int
	maxHistoryTurns int
	logger          *slog.Logger
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithPoolSize sets the worker pool size for concurrent embedding.
// Default is runtime.NumCPU() / 2, with a minimum of 1.
func WithPoolSize(size int) Option {
	return func(p *Pipeline) error {
		if size < 1 {
			size = 1
		}
		if p.embedPool != nil {
			p.embedPool.Release()
		}
		pool, err := ants.NewPool(size)
		if err != nil {
			return err
		}
		p.embedPool = pool
		return nil
	}
}

// WithChunking sets the chunk size and overlap in characters.
func WithChunking(size, overlap int) Option {
	return func(p *Pipeline) error {
		chunker, err := chunk.New(size, overlap)
		if err != nil {
			return err
		}
		p.chunker = chunker
		return nil
	}
}

// WithTopK sets how many chunks are retrieved per question.
func WithTopK(k int) Option {
	return func(p *Pipeline) error {
		if k < 1 {
			k = 1
		}
		p.topK = k
		return nil
	}
}

// WithMaxHistoryTurns bounds how many recent turns are fed to the
// generator. Older turns stay stored but drop out of the prompt.
func WithMaxHistoryTurns(n int) Option {
	return func(p *Pipeline) error {
		if n < 0 {
			n = 0
		}
		p.maxHistoryTurns = n
		return nil
	}
}

// WithLogger sets a custom logger.
// Default is slog.Default().
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			logger = slog.Default()
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline over the given session store, history
// repository, and AI provider.
func NewPipeline(
	sessions *session.Store,
	history storage.HistoryRepository,
	provider ai.Provider,
	opts ...Option,
) (*Pipeline, error) {
	if sessions == nil {
		return nil, ErrSessionStoreRequired
	}
	if history == nil {
		return nil, ErrHistoryRequired
	}
	if provider == nil {
		return nil, ErrProviderRequired
	}

	poolSize := runtime.NumCPU() / 2
	if poolSize < 1 {
		poolSize = 1
	}
	pool, err := ants.NewPool(poolSize)
	if err != nil {
		return nil, err
	}

	chunker, err := chunk.New(defaultChunkSize, defaultChunkOverlap)
	if err != nil {
		pool.Release()
		return nil, err
	}

	p := &Pipeline{
		sessions:        sessions,
		history:         history,
		provider:        provider,
		chunker:         chunker,
		embedPool:       pool,
		topK:            defaultTopK,
		maxHistoryTurns: defaultMaxHistoryTurns,
		logger:          slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if optErr := opt(p); optErr != nil {
			p.Release()
			return nil, optErr
		}
	}

	return p, nil
}

// History returns a session's full conversation history in
// chronological order.
func (p *Pipeline) History(ctx context.Context, sessionID string) ([]core.Turn, error) {
	if sessionID == "" {
		return nil, core.ErrEmptySessionID
	}
	return p.history.History(ctx, sessionID)
}

// Reset evicts a session, discarding its index and purging its stored
// conversation history.
func (p *Pipeline) Reset(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return core.ErrEmptySessionID
	}
	p.sessions.Remove(sessionID)
	return nil
}

// Release releases the embedding worker pool.
// The pipeline should not be used after calling Release.
func (p *Pipeline) Release() {
	if p.embedPool != nil {
		p.embedPool.Release()
	}
}
