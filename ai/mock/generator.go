package mock

import (
	"context"
	"strings"
	"sync"

	"github.com/docsight/docsight/core"
)

// GenerateCall records one GenerateAnswer invocation for test assertions.
type GenerateCall struct {
	Question      string
	ContextChunks []string
	History       []core.Turn
}

// MockGenerator is a test double for ai.Generator.
// It allows custom behavior injection via function fields and records every
// call so tests can assert on the prompt inputs.
type MockGenerator struct {
	// GenerateAnswerFunc is called by GenerateAnswer if set.
	// If nil, uses default deterministic behavior.
	GenerateAnswerFunc func(ctx context.Context, question string, contextChunks []string, history []core.Turn) (string, error)

	mu    sync.Mutex
	calls []GenerateCall
}

// NewMockGenerator creates a mock generator with default deterministic behavior.
// Note: Returns concrete type to allow test assertions.
func NewMockGenerator() *MockGenerator {
	return &MockGenerator{}
}

// GenerateAnswer records the call and returns a deterministic answer that
// echoes the question and the number of context chunks supplied.
func (m *MockGenerator) GenerateAnswer(ctx context.Context, question string, contextChunks []string, history []core.Turn) (string, error) {
	m.mu.Lock()
	m.calls = append(m.calls, GenerateCall{
		Question:      question,
		ContextChunks: append([]string(nil), contextChunks...),
		History:       append([]core.Turn(nil), history...),
	})
	m.mu.Unlock()

	if m.GenerateAnswerFunc != nil {
		return m.GenerateAnswerFunc(ctx, question, contextChunks, history)
	}

	return "answer to " + strings.TrimSpace(question), nil
}

// Calls returns a copy of the recorded calls.
func (m *MockGenerator) Calls() []GenerateCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]GenerateCall(nil), m.calls...)
}

// CallCount returns the number of GenerateAnswer calls.
func (m *MockGenerator) CallCount() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.calls)
}

// Reset clears recorded calls and injected behavior.
func (m *MockGenerator) Reset() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = nil
	m.GenerateAnswerFunc = nil
}
