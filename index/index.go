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


package index

import (
	"fmt"
	"math"
	"sort"

	"github.com/docsight/docsight/core"
)

// entry pairs a chunk with its embedding vector.
type entry struct {
	chunk  core.Chunk
	vector []float32
}

// Index is an immutable in-memory vector index for one session's document set.
//
// An index is fully consistent by construction: every stored vector has the
// same dimension and a corresponding chunk, and it records which embedding
// model produced its vectors. Because an Index never changes after Build,
// concurrent readers need no synchronization and a session can swap indexes
// with a plain pointer store.
type Index struct {
	model     string
	dimension int
	entries   []entry
}

// Build constructs an index from parallel chunk and vector slices.
// The model identifies the embedding model that produced the vectors.
// Fails if the slice lengths differ or the vectors' dimensions are
// inconsistent or zero.
func Build(model string, chunks []core.Chunk, vectors [][]float32) (*Index, error) {
	if len(chunks) != len(vectors) {
		return nil, fmt.Errorf("%w: %d chunks, %d vectors", ErrCountMismatch, len(chunks), len(vectors))
	}
	if model == "" {
		return nil, ErrModelRequired
	}

	idx := &Index{model: model}
	if len(chunks) == 0 {
		return idx, nil
	}

	idx.dimension = len(vectors[0])
	if idx.dimension == 0 {
		return nil, fmt.Errorf("%w: zero-dimension vector at position 0", ErrDimensionMismatch)
	}
	idx.entries = make([]entry, len(chunks))
	for i := range chunks {
		if len(vectors[i]) != idx.dimension {
			return nil, fmt.Errorf("%w: vector %d has dimension %d, want %d",
				ErrDimensionMismatch, i, len(vectors[i]), idx.dimension)
		}
		idx.entries[i] = entry{chunk: chunks[i], vector: vectors[i]}
	}
	return idx, nil
}

// Model returns the embedding model identifier recorded at build time.
func (idx *Index) Model() string { return idx.model }

// Dimension returns the vector dimension, or 0 for an empty index.
func (idx *Index) Dimension() int { return idx.dimension }

// Len returns the number of indexed chunks.
func (idx *Index) Len() int { return len(idx.entries) }

// Search returns up to k chunks ordered by descending cosine similarity to
// query. Ties keep insertion order (earlier chunk wins). k is capped at the
// index size; searching an empty index returns an empty slice.
func (idx *Index) Search(query []float32, k int) ([]core.RetrievedChunk, error) {
	if len(idx.entries) == 0 {
		return []core.RetrievedChunk{}, nil
	}
	if len(query) != idx.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			ErrDimensionMismatch, len(query), idx.dimension)
	}
	if k < 0 {
		k = 0
	}
	if k > len(idx.entries) {
		k = len(idx.entries)
	}

	results := make([]core.RetrievedChunk, len(idx.entries))
	for i, e := range idx.entries {
		results[i] = core.RetrievedChunk{
			Chunk: e.chunk,
			Score: cosineSimilarity(query, e.vector),
		}
	}

	// Stable sort keeps insertion order among equal scores.
	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})

	return results[:k], nil
}

// cosineSimilarity computes the cosine similarity between two vectors of equal
// length. Returns 0 when either vector has zero magnitude.
func cosineSimilarity(a, b []float32) float32 {
	var dot, normA, normB float32
	for i := range a {
		dot += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}
	if normA == 0 || normB == 0 {
		return 0
	}
	return dot / (float32(math.Sqrt(float64(normA))) * float32(math.Sqrt(float64(normB))))
}
