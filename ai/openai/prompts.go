package openai

import (
	"errors"
	"strings"

	"github.com/docsight/docsight/core"
	"github.com/tmc/langchaingo/prompts"
)

var errNoChoices = errors.New("model returned no choices")

// answerSystemPrompt constrains the model to the retrieved context.
const answerSystemPrompt = `You are a helpful document assistant. You answer questions using ONLY the context supplied in the user message. If the context does not contain the answer, say the uploaded documents do not cover the question. Never invent an answer.`

// answerTemplate carries the conversation so far, the retrieved context in
// descending relevance order, and the question.
var answerTemplate = prompts.NewPromptTemplate(
	`Conversation so far:
{{.history}}

Use ONLY the context below to answer the user's question.

Context:
{{.context}}

Question:
{{.question}}`,
	[]string{"history", "context", "question"},
)

// buildAnswerPrompt renders the grounded-answer prompt.
func buildAnswerPrompt(question string, contextChunks []string, history []core.Turn) (string, error) {
	return answerTemplate.Format(map[string]any{
		"history":  formatHistory(history),
		"context":  strings.Join(contextChunks, "\n"),
		"question": question,
	})
}

// formatHistory serializes turns chronologically as "role: text" lines.
func formatHistory(history []core.Turn) string {
	if len(history) == 0 {
		return "(no previous turns)"
	}
	lines := make([]string, len(history))
	for i, turn := range history {
		lines[i] = turn.Role.String() + ": " + turn.Contents
	}
	return strings.Join(lines, "\n")
}
