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

// Package docsight answers questions about uploaded documents.
//
// Each session holds its own document set and conversation. Uploading
// documents replaces the session's previous set atomically; questions
// are answered from the most similar chunks of the current set, with
// the session's conversation history available to the generator.
package docsight

import (
	"context"
	"log/slog"

	"github.com/docsight/docsight/ai"
	"github.com/docsight/docsight/ai/openai"
	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/pipeline"
	"github.com/docsight/docsight/session"
	"github.com/docsight/docsight/storage"
	"github.com/docsight/docsight/storage/badger"
)

// Assistant is the top-level entry point. It owns the in-memory
// history store, the session store, the AI provider, and the pipeline.
type Assistant struct {
	backend  *badger.Backend
	history  storage.HistoryRepository
	sessions *session.Store
	provider ai.Provider
	pipeline *pipeline.Pipeline
	logger   *slog.Logger
}

// Option configures an Assistant.
type Option func(*assistantOptions)

type assistantOptions struct {
	aiConfig     *ai.Config
	provider     ai.Provider
	pipelineOpts []pipeline.Option
	sessionOpts  []session.StoreOption
}

// WithAIConfig sets the AI backend configuration used to build the
// default provider.
func WithAIConfig(cfg *ai.Config) Option {
	return func(o *assistantOptions) { o.aiConfig = cfg }
}

// WithProvider injects a prebuilt AI provider, bypassing the OpenAI
// default. Used to run against mocks.
func WithProvider(p ai.Provider) Option {
	return func(o *assistantOptions) { o.provider = p }
}

// WithPipelineOptions forwards options to the pipeline.
func WithPipelineOptions(opts ...pipeline.Option) Option {
	return func(o *assistantOptions) { o.pipelineOpts = append(o.pipelineOpts, opts...) }
}

// WithSessionOptions forwards options to the session store.
func WithSessionOptions(opts ...session.StoreOption) Option {
	return func(o *assistantOptions) { o.sessionOpts = append(o.sessionOpts, opts...) }
}

// New creates an Assistant. All state lives in memory; nothing
// survives a restart.
func New(opts ...Option) (*Assistant, error) {
	options := &assistantOptions{
		aiConfig: ai.DefaultConfig(),
	}
	for _, opt := range opts {
		opt(options)
	}

	backend, err := badger.OpenBackend("", true)
	if err != nil {
		return nil, err
	}

	history, err := badger.NewHistoryRepository(backend)
	if err != nil {
		backend.Close()
		return nil, err
	}

	provider := options.provider
	if provider == nil {
		provider, err = openai.NewProvider(options.aiConfig)
		if err != nil {
			history.Close()
			backend.Close()
			return nil, err
		}
	}

	sessionOpts := append([]session.StoreOption{session.WithPurger(history)}, options.sessionOpts...)
	sessions := session.NewStore(sessionOpts...)

	p, err := pipeline.NewPipeline(sessions, history, provider, options.pipelineOpts...)
	if err != nil {
		provider.Close()
		history.Close()
		backend.Close()
		return nil, err
	}

	return &Assistant{
		backend:  backend,
		history:  history,
		sessions: sessions,
		provider: provider,
		pipeline: p,
		logger:   slog.Default(),
	}, nil
}

// Ingest replaces the session's document set with the given documents.
func (a *Assistant) Ingest(ctx context.Context, sessionID string, documents []core.Document) (pipeline.IngestResult, error) {
	return a.pipeline.Ingest(ctx, sessionID, documents)
}

// Ask answers a question against the session's documents.
func (a *Assistant) Ask(ctx context.Context, sessionID, question string) (pipeline.Answer, error) {
	return a.pipeline.Query(ctx, sessionID, question)
}

// History returns the session's conversation so far.
func (a *Assistant) History(ctx context.Context, sessionID string) ([]core.Turn, error) {
	return a.pipeline.History(ctx, sessionID)
}

// Reset discards the session's documents and conversation history.
func (a *Assistant) Reset(ctx context.Context, sessionID string) error {
	return a.pipeline.Reset(ctx, sessionID)
}

// Pipeline exposes the underlying pipeline, e.g. for mounting the HTTP
// adapter.
func (a *Assistant) Pipeline() *pipeline.Pipeline {
	return a.pipeline
}

// Close releases the pipeline, provider, and storage, in that order.
func (a *Assistant) Close() error {
	a.pipeline.Release()

	if err := a.provider.Close(); err != nil {
		a.logger.Error("error closing AI provider", "err", err)
	}
	if err := a.history.Close(); err != nil {
		a.logger.Error("error closing history repository", "err", err)
		return err
	}
	if err := a.backend.Close(); err != nil {
		a.logger.Error("error closing storage backend", "err", err)
		return err
	}
	return nil
}
