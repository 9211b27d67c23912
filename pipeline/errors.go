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

package pipeline

import "errors"

var (
	// ErrSessionStoreRequired indicates NewPipeline was given a nil session store.
	ErrSessionStoreRequired = errors.New("session store is required")

	// ErrHistoryRequired indicates NewPipeline was given a nil history repository.
	ErrHistoryRequired = errors.New("history repository is required")

	// ErrProviderRequired indicates NewPipeline was given a nil AI provider.
	ErrProviderRequired = errors.New("AI provider is required")
)
