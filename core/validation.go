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

import "fmt"

// ValidateChunking validates chunker parameters according to domain rules.
//
// Validation rules:
//   - size must be positive
//   - overlap must satisfy 0 <= overlap < size
func ValidateChunking(size, overlap int) error {
	if size <= 0 {
		return fmt.Errorf("%w: size %d", ErrInvalidChunking, size)
	}
	if overlap < 0 || overlap >= size {
		return fmt.Errorf("%w: size %d, overlap %d", ErrInvalidChunking, size, overlap)
	}
	return nil
}

// ValidateTurn validates a Turn according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - Role must be valid (user or assistant)
//
// NOT validated:
//   - ID (0 is valid before the turn is stored)
//   - CreatedAt (populated by the history repository)
func ValidateTurn(turn *Turn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidRole)
	}
	if turn.Contents == "" {
		return ErrEmptyContent
	}
	return ValidateRole(turn.Role)
}

// ValidateRole validates that a Role has a valid value.
func ValidateRole(role Role) error {
	switch role {
	case RoleUser, RoleAssistant:
		return nil
	default:
		return fmt.Errorf("%w: %d", ErrInvalidRole, role)
	}
}
