package ai

import (
	"context"

	"github.com/docsight/docsight/core"
)

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use and must be
// deterministic for a fixed model version: the same input always produces the
// same vector.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// Returns an error if the embedding generation fails. Implementations
	// never retry; retry policy belongs to the caller.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// Generator produces grounded natural-language answers from retrieved context.
// Implementations must be thread-safe for concurrent use.
type Generator interface {
	// GenerateAnswer produces an answer to question using only the supplied
	// context chunks, ordered by descending relevance, and the conversation
	// history in chronological order. The prompt instructs the model to state
	// non-relevance rather than fabricate. Returns an error on service
	// failure; the caller decides what to surface to end users.
	GenerateAnswer(ctx context.Context, question string, contextChunks []string, history []core.Turn) (string, error)
}

// Provider aggregates AI services for convenient initialization and lifecycle
// management. A provider creates and manages Embedder and Generator instances,
// ensuring they share configuration and resources appropriately.
type Provider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// Generator returns the answer generation service.
	// The returned Generator is safe for concurrent use.
	Generator() Generator

	// EmbeddingModel returns the identifier of the embedding model in use.
	// Indexes record it so queries embedded with a different model are rejected.
	EmbeddingModel() string

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
