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
	"fmt"
	"strings"

	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/index"
)

// Answer is the outcome of one question.
type Answer struct {
	// Text is the answer shown to the user.
	Text string

	// Sources are the retrieved chunks the answer was grounded on,
	// in descending relevance order. Empty when the session had no
	// documents.
	Sources []core.RetrievedChunk
}

// Query answers a question against the session's ingested documents.
//
// A session with no ingested documents gets a fixed not-ready answer
// without touching the AI services or the conversation history. When
// generation fails after retrieval succeeded, a fallback answer is
// returned and recorded, so the conversation stays consistent.
func (p *Pipeline) Query(ctx context.Context, sessionID, question string) (Answer, error) {
	if sessionID == "" {
		return Answer{}, core.ErrEmptySessionID
	}
	if strings.TrimSpace(question) == "" {
		return Answer{}, core.ErrEmptyQuestion
	}

	sess, err := p.sessions.GetOrCreate(sessionID)
	if err != nil {
		return Answer{}, err
	}

	idx := sess.Index()
	if idx == nil {
		return Answer{Text: NotReadyAnswer}, nil
	}
	if model := p.provider.EmbeddingModel(); model != idx.Model() {
		return Answer{}, fmt.Errorf("%w: index built with %q, provider uses %q",
			index.ErrModelMismatch, idx.Model(), model)
	}

	queryVector, err := p.provider.Embedder().EmbedText(ctx, question)
	if err != nil {
		return Answer{}, err
	}

	retrieved, err := idx.Search(queryVector, p.topK)
	if err != nil {
		return Answer{}, err
	}

	contextChunks := make([]string, len(retrieved))
	for i, rc := range retrieved {
		contextChunks[i] = rc.Chunk.Text
	}

	// Snapshot taken before this exchange is recorded, so the prompt
	// never contains the question being answered.
	history, err := p.history.History(ctx, sessionID)
	if err != nil {
		return Answer{}, err
	}
	window := history
	if p.maxHistoryTurns > 0 && len(window) > p.maxHistoryTurns {
		window = window[len(window)-p.maxHistoryTurns:]
	}

	text, genErr := p.provider.Generator().GenerateAnswer(ctx, question, contextChunks, window)
	if genErr != nil {
		p.logger.Error("answer generation failed",
			"session_id", sessionID,
			"err", genErr)
		text = FallbackAnswer
	}

	_, err = p.history.AppendTurns(ctx, sessionID,
		&core.Turn{Role: core.RoleUser, Contents: question},
		&core.Turn{Role: core.RoleAssistant, Contents: text})
	if err != nil {
		return Answer{}, err
	}

	return Answer{Text: text, Sources: retrieved}, nil
}
