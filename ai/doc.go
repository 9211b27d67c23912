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


// Package ai provides abstractions for the AI services docsight depends on.
//
// This package defines interfaces for text embedding and grounded answer
// generation. The pipeline and session layers depend on these abstractions
// rather than concrete implementations, so backends can be swapped and tests
// can run without external services.
//
// The package is designed around three interfaces:
//
//   - Embedder: maps text to fixed-dimension vectors, deterministically per model version
//   - Generator: produces an answer constrained to supplied context and history
//   - Provider: aggregates both plus the embedding model identity
//
// Implementation sub-packages:
//
//   - ai/openai: production implementation against OpenAI-compatible APIs
//   - ai/mock: deterministic test doubles
//
// Public constructors in ai/openai return interface types to enforce
// abstraction; mock constructors return concrete types so tests can inject
// behavior and assert on call counts.
//
// Neither service retries internally and neither is called during ingest of
// invalid input; timeouts surface as ErrTimeout, service failures as
// ErrEmbeddingService or ErrGenerationService.
package ai
