// Package mock provides test double implementations of the ai interfaces.
//
// The mocks allow tests to run without external AI services and provide
// controlled, deterministic behavior:
//
//   - MockEmbedder: deterministic vectors derived from an FNV hash of the text
//   - MockGenerator: echoes the question; records every call for assertions
//   - MockProvider: aggregates both under the ai.Provider interface
//
// Custom behavior is injected through the exported func fields:
//
//	embedder := mock.NewMockEmbedder()
//	embedder.EmbedTextFunc = func(ctx context.Context, text string) ([]float32, error) {
//	    return nil, errors.New("service down")
//	}
package mock
