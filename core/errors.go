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


package core

import "errors"

// Domain validation errors. These classify as input errors: the operation is
// aborted and no session state changes.
var (
	// ErrEmptySessionID indicates a caller supplied a blank session identifier.
	ErrEmptySessionID = errors.New("session id cannot be empty")

	// ErrNoDocuments indicates an ingest call carried no documents.
	ErrNoDocuments = errors.New("at least one document is required")

	// ErrEmptyDocument indicates extraction produced no text, so there is
	// nothing to index. An empty, queryable index is never built.
	ErrEmptyDocument = errors.New("documents contain no extractable text")

	// ErrEmptyQuestion indicates a query call carried a blank question.
	ErrEmptyQuestion = errors.New("question cannot be empty")

	// ErrInvalidChunking indicates chunk size/overlap violate 0 <= overlap < size.
	ErrInvalidChunking = errors.New("chunk overlap must be non-negative and smaller than chunk size")

	// ErrInvalidRole indicates an invalid Role value.
	ErrInvalidRole = errors.New("invalid role")

	// ErrEmptyContent indicates a turn's Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")
)
