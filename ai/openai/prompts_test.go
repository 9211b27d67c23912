package openai

import (
	"strings"
	"testing"

	"github.com/docsight/docsight/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildAnswerPrompt(t *testing.T) {
	t.Run("includes context in relevance order", func(t *testing.T) {
		prompt, err := buildAnswerPrompt("what is X?", []string{"X is a thing.", "Y is unrelated."}, nil)
		require.NoError(t, err)

		assert.Contains(t, prompt, "X is a thing.")
		assert.Contains(t, prompt, "Y is unrelated.")
		assert.Less(t, strings.Index(prompt, "X is a thing."), strings.Index(prompt, "Y is unrelated."))
		assert.Contains(t, prompt, "what is X?")
	})

	t.Run("empty history is marked", func(t *testing.T) {
		prompt, err := buildAnswerPrompt("q", []string{"ctx"}, nil)
		require.NoError(t, err)
		assert.Contains(t, prompt, "(no previous turns)")
	})

	t.Run("history is chronological with roles", func(t *testing.T) {
		history := []core.Turn{
			{Role: core.RoleUser, Contents: "first question"},
			{Role: core.RoleAssistant, Contents: "first answer"},
		}
		prompt, err := buildAnswerPrompt("second question", []string{"ctx"}, history)
		require.NoError(t, err)

		assert.Contains(t, prompt, "user: first question")
		assert.Contains(t, prompt, "assistant: first answer")
		assert.Less(t, strings.Index(prompt, "user: first question"), strings.Index(prompt, "assistant: first answer"))
	})
}
