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

import "errors"

// Domain validation errors
var (
	// ErrInvalidChunk indicates a Chunk failed validation.
	ErrInvalidChunk = errors.New("invalid chunk")

	// ErrInvalidTurn indicates a conversation Turn failed validation.
	ErrInvalidTurn = errors.New("invalid turn")

	// ErrInvalidLeadRecord indicates a LeadRecord failed validation.
	ErrInvalidLeadRecord = errors.New("invalid lead record")

	// ErrInvalidCollection indicates an unknown collection identifier.
	ErrInvalidCollection = errors.New("invalid collection")

	// ErrInvalidSpeaker indicates an invalid Speaker value.
	ErrInvalidSpeaker = errors.New("invalid speaker")

	// ErrEmptyContent indicates the Contents field is empty.
	ErrEmptyContent = errors.New("content cannot be empty")

	// ErrEmptySessionId indicates the SessionId field is empty.
	ErrEmptySessionId = errors.New("session id cannot be empty")

	// ErrInvalidTimestamp indicates a timestamp is in the future.
	ErrInvalidTimestamp = errors.New("timestamp cannot be in the future")
)
