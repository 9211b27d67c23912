package docsight

import (
	"context"
	"strings"
	"testing"

	"github.com/docsight/docsight/ai/mock"
	"github.com/docsight/docsight/core"
	"github.com/docsight/docsight/pipeline"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAssistantEndToEnd(t *testing.T) {
	assistant, err := New(WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer assistant.Close()

	ctx := context.Background()

	// A fresh session is not ready.
	answer, err := assistant.Ask(ctx, "user-1", "What does the manual say?")
	require.NoError(t, err)
	assert.Equal(t, pipeline.NotReadyAnswer, answer.Text)

	// Upload a manual and ask again.
	manual := strings.Repeat("The device must be charged for four hours before first use. ", 40)
	result, err := assistant.Ingest(ctx, "user-1", []core.Document{
		{Name: "manual.txt", Data: []byte(manual)},
	})
	require.NoError(t, err)
	assert.Equal(t, 1, result.Documents)
	assert.GreaterOrEqual(t, result.Chunks, 2)

	answer, err = assistant.Ask(ctx, "user-1", "How long is the first charge?")
	require.NoError(t, err)
	assert.NotEqual(t, pipeline.NotReadyAnswer, answer.Text)
	assert.NotEmpty(t, answer.Sources)

	// Two turns recorded for the answered question, none for the
	// not-ready one.
	history, err := assistant.History(ctx, "user-1")
	require.NoError(t, err)
	require.Len(t, history, 2)
	assert.Equal(t, core.RoleUser, history[0].Role)
	assert.Equal(t, core.RoleAssistant, history[1].Role)

	// Reset wipes both documents and conversation.
	require.NoError(t, assistant.Reset(ctx, "user-1"))
	answer, err = assistant.Ask(ctx, "user-1", "Still loaded?")
	require.NoError(t, err)
	assert.Equal(t, pipeline.NotReadyAnswer, answer.Text)
	history, err = assistant.History(ctx, "user-1")
	require.NoError(t, err)
	assert.Empty(t, history)
}

func TestAssistantSessionsAreIndependent(t *testing.T) {
	assistant, err := New(WithProvider(mock.NewMockProvider()))
	require.NoError(t, err)
	defer assistant.Close()

	ctx := context.Background()

	_, err = assistant.Ingest(ctx, "alice", []core.Document{
		{Name: "a.txt", Data: []byte("Alice's document about gardening.")},
	})
	require.NoError(t, err)

	answer, err := assistant.Ask(ctx, "bob", "What about gardening?")
	require.NoError(t, err)
	assert.Equal(t, pipeline.NotReadyAnswer, answer.Text)

	historyBob, err := assistant.History(ctx, "bob")
	require.NoError(t, err)
	assert.Empty(t, historyBob)
}
