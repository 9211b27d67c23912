package ai

import (
	"context"
	"errors"
	"fmt"
)

var (
	// ErrEmbeddingService indicates the embedding backend failed or is unavailable.
	ErrEmbeddingService = errors.New("embedding service failure")

	// ErrGenerationService indicates the generation backend failed or is unavailable.
	ErrGenerationService = errors.New("generation service failure")

	// ErrTimeout indicates an AI service call exceeded its deadline.
	// It is distinguishable from a plain service failure via errors.Is.
	ErrTimeout = errors.New("ai service timeout")
)

// ClassifyServiceError wraps err with kind, additionally tagging deadline
// overruns with ErrTimeout so callers can tell timeouts from hard failures.
func ClassifyServiceError(kind, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return fmt.Errorf("%w: %w: %w", kind, ErrTimeout, err)
	}
	return fmt.Errorf("%w: %w", kind, err)
}
