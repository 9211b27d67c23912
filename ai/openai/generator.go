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


package openai

import (
	"context"
	"log/slog"
	"strings"

	"github.com/docsight/docsight/ai"
	"github.com/docsight/docsight/core"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/openai"
)

// Generator implements ai.Generator using OpenAI-compatible chat APIs.
type Generator struct {
	client  llms.Model
	timeout timeoutFunc
	logger  *slog.Logger
}

// newGenerator is an internal constructor that returns the concrete type.
// Used by Provider to manage the instance.
func newGenerator(config *ai.Config) (*Generator, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}

	client, err := openai.New(
		openai.WithBaseURL(config.GeneratorHost),
		openai.WithToken(config.APIKey),
		openai.WithModel(config.GeneratorModel),
	)
	if err != nil {
		return nil, err
	}

	return &Generator{
		client:  client,
		timeout: newTimeoutFunc(config.RequestTimeout),
		logger:  slog.Default().With("component", "openai-generator"),
	}, nil
}

// NewGenerator creates a new answer generator using the provided configuration.
//
// Returns ai.Generator interface to enforce abstraction.
func NewGenerator(config *ai.Config) (ai.Generator, error) {
	return newGenerator(config)
}

// GenerateAnswer produces an answer grounded in the supplied context chunks.
// Context chunks must be ordered by descending relevance; history must be in
// chronological order.
func (g *Generator) GenerateAnswer(ctx context.Context, question string, contextChunks []string, history []core.Turn) (string, error) {
	prompt, err := buildAnswerPrompt(question, contextChunks, history)
	if err != nil {
		return "", err
	}

	content := []llms.MessageContent{
		{
			Role: llms.ChatMessageTypeSystem,
			Parts: []llms.ContentPart{
				llms.TextPart(answerSystemPrompt),
			},
		},
		{
			Role: llms.ChatMessageTypeHuman,
			Parts: []llms.ContentPart{
				llms.TextPart(prompt),
			},
		},
	}

	tctx, cancel := g.timeout(ctx)
	defer cancel()

	response, err := g.client.GenerateContent(tctx, content, llms.WithTemperature(0.2))
	if err != nil {
		g.logger.Error("failed to generate answer", "err", err)
		return "", ai.ClassifyServiceError(ai.ErrGenerationService, err)
	}

	if len(response.Choices) < 1 {
		g.logger.Warn("no choices returned from model")
		return "", ai.ClassifyServiceError(ai.ErrGenerationService, errNoChoices)
	}

	return strings.TrimSpace(response.Choices[0].Content), nil
}
