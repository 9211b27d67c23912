// Package openai implements the ai interfaces against OpenAI-compatible APIs.
//
// Both the embedder and the generator are built on langchaingo's openai client,
// so any OpenAI-compatible server works (OpenAI, Ollama, LocalAI, vLLM).
// Each service call is bounded by the configured request timeout; exceeded
// deadlines surface as ai.ErrTimeout. Neither service retries.
package openai
