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
	"sync"

	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/extract"
	"github.com/docsight/docsight/index"
)

// IngestResult summarizes a completed ingest.
type IngestResult struct {
	Documents int
	Chunks    int
}

// Ingest replaces a session's document set. The documents are extracted,
// chunked, embedded, and indexed; only when every stage succeeds does the
// new index replace the old one. On any failure the session keeps
// whatever it had before, and concurrent queries keep answering from the
// old index throughout.
func (p *Pipeline) Ingest(ctx context.Context, sessionID string, documents []core.Document) (IngestResult, error) {
	if sessionID == "" {
		return IngestResult{}, core.ErrEmptySessionID
	}
	if len(documents) == 0 {
		return IngestResult{}, core.ErrNoDocuments
	}

	sess, err := p.sessions.GetOrCreate(sessionID)
	if err != nil {
		return IngestResult{}, err
	}

	var chunkCount int
	err = sess.RunIngest(len(documents), func() (*index.Index, error) {
		extracted, err := extract.Extract(ctx, documents)
		if err != nil {
			return nil, err
		}

		// A document with no text is tolerated as long as the batch as a
		// whole has some; an all-empty batch has nothing to index.
		var chunks []core.Chunk
		for _, doc := range extracted {
			if doc.Text == "" {
				p.logger.Warn("document has no extractable text",
					"session_id", sessionID,
					"document", doc.Name)
				continue
			}
			docChunks, err := p.chunker.Split(doc.Text)
			if err != nil {
				return nil, err
			}
			// Positions restart per document; IDs must not collide
			// across documents with identical text.
			for i := range docChunks {
				docChunks[i].Id = core.IDFromContent(
					fmt.Sprintf("%s:%d:%s", doc.Name, docChunks[i].Position, docChunks[i].Text))
			}
			chunks = append(chunks, docChunks...)
		}
		if len(chunks) == 0 {
			return nil, core.ErrEmptyDocument
		}

		vectors, err := p.embedChunks(ctx, chunks)
		if err != nil {
			return nil, err
		}

		idx, err := index.Build(p.provider.EmbeddingModel(), chunks, vectors)
		if err != nil {
			return nil, err
		}
		chunkCount = idx.Len()
		return idx, nil
	})
	if err != nil {
		p.logger.Error("ingest failed",
			"session_id", sessionID,
			"documents", len(documents),
			"err", err)
		return IngestResult{}, err
	}

	p.logger.Info("ingest complete",
		"session_id", sessionID,
		"documents", len(documents),
		"chunks", chunkCount)
	return IngestResult{Documents: len(documents), Chunks: chunkCount}, nil
}

// embedChunks embeds chunk texts in batches on the worker pool. The
// returned vectors line up with the chunks slice. Any batch failure
// fails the whole call.
func (p *Pipeline) embedChunks(ctx context.Context, chunks []core.Chunk) ([][]float32, error) {
	vectors := make([][]float32, len(chunks))
	if len(chunks) == 0 {
		return vectors, nil
	}

	var wg sync.WaitGroup
	var mu sync.Mutex
	var firstErr error

	for start := 0; start < len(chunks); start += embedBatchSize {
		end := start + embedBatchSize
		if end > len(chunks) {
			end = len(chunks)
		}

		batchStart, batchEnd := start, end
		wg.Add(1)
		submitErr := p.embedPool.Submit(func() {
			defer wg.Done()

			texts := make([]string, batchEnd-batchStart)
			for i := batchStart; i < batchEnd; i++ {
				texts[i-batchStart] = chunks[i].Text
			}

			embedded, err := p.provider.Embedder().EmbedTexts(ctx, texts)
			if err == nil && len(embedded) != len(texts) {
				err = fmt.Errorf("embedding result mismatch. expected %d, received %d", len(texts), len(embedded))
			}

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				if firstErr == nil {
					firstErr = err
				}
				return
			}
			for i := batchStart; i < batchEnd; i++ {
				vectors[i] = embedded[i-batchStart]
			}
		})
		if submitErr != nil {
			wg.Done()
			mu.Lock()
			if firstErr == nil {
				firstErr = submitErr
			}
			mu.Unlock()
			break
		}
	}

	wg.Wait()
	if firstErr != nil {
		return nil, firstErr
	}
	return vectors, nil
}
