// Copyright 2025 Poiesic Systems
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

import (
	"fmt"
	"slices"
	"time"
)

// ValidateChunk validates a Chunk according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - Collection must be a known collection
//
// NOT validated:
//   - Vector (can be empty until the embedding step runs)
//   - ID (0 is valid before content hashing)
func ValidateChunk(chunk *Chunk) error {
	if chunk == nil {
		return fmt.Errorf("%w: chunk is nil", ErrInvalidChunk)
	}

	if chunk.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, ErrEmptyContent)
	}

	if err := ValidateCollection(chunk.Collection); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidChunk, err)
	}

	return nil
}

// ValidateTurn validates a conversation Turn according to domain rules.
//
// Validation rules:
//   - Contents must not be empty
//   - Speaker must be valid (user or assistant)
//   - Timestamp must not be in the future
func ValidateTurn(turn *Turn) error {
	if turn == nil {
		return fmt.Errorf("%w: turn is nil", ErrInvalidTurn)
	}

	if turn.Contents == "" {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrEmptyContent)
	}

	if err := ValidateSpeaker(turn.Speaker); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, err)
	}

	if !IsValidTimestamp(turn.Timestamp) {
		return fmt.Errorf("%w: %w", ErrInvalidTurn, ErrInvalidTimestamp)
	}

	return nil
}

// ValidateLeadRecord validates a LeadRecord according to domain rules.
//
// Validation rules:
//   - SessionId must not be empty
//
// All six lead fields are optional: a record with no captured fields is
// still valid.
func ValidateLeadRecord(lead *LeadRecord) error {
	if lead == nil {
		return fmt.Errorf("%w: lead is nil", ErrInvalidLeadRecord)
	}

	if lead.SessionId == "" {
		return fmt.Errorf("%w: %w", ErrInvalidLeadRecord, ErrEmptySessionId)
	}

	return nil
}

// ValidateCollection validates that a Collection is one of the known set.
// CollectionNone is not a queryable collection and fails validation.
func ValidateCollection(collection Collection) error {
	if !slices.Contains(Collections(), collection) {
		return fmt.Errorf("%w: %q", ErrInvalidCollection, string(collection))
	}
	return nil
}

// ValidateSpeaker validates that a Speaker has a valid value.
func ValidateSpeaker(speaker Speaker) error {
	if speaker != SpeakerUser && speaker != SpeakerAssistant {
		return fmt.Errorf("%w: value %d", ErrInvalidSpeaker, speaker)
	}
	return nil
}

// IsValidTimestamp checks if a timestamp is valid (not in the future).
func IsValidTimestamp(ts time.Time) bool {
	return !ts.After(time.Now())
}
