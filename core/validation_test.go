package core

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestValidateChunk(t *testing.T) {
	tests := []struct {
		name    string
		chunk   *Chunk
		wantErr error
	}{
		{
			name: "valid chunk",
			chunk: &Chunk{
				Collection: CollectionSyllabus,
				Contents:   "Semester 1: Mathematics for AI",
			},
			wantErr: nil,
		},
		{
			name:    "nil chunk",
			chunk:   nil,
			wantErr: ErrInvalidChunk,
		},
		{
			name: "empty contents",
			chunk: &Chunk{
				Collection: CollectionAdmission,
			},
			wantErr: ErrEmptyContent,
		},
		{
			name: "unknown collection",
			chunk: &Chunk{
				Collection: Collection("parking"),
				Contents:   "some text",
			},
			wantErr: ErrInvalidCollection,
		},
		{
			name: "none is not a queryable collection",
			chunk: &Chunk{
				Collection: CollectionNone,
				Contents:   "some text",
			},
			wantErr: ErrInvalidCollection,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateChunk(tt.chunk)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateTurn(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name    string
		turn    *Turn
		wantErr error
	}{
		{
			name:    "valid user turn",
			turn:    &Turn{Speaker: SpeakerUser, Contents: "hello", Timestamp: now},
			wantErr: nil,
		},
		{
			name:    "valid assistant turn",
			turn:    &Turn{Speaker: SpeakerAssistant, Contents: "hi there", Timestamp: now},
			wantErr: nil,
		},
		{
			name:    "nil turn",
			turn:    nil,
			wantErr: ErrInvalidTurn,
		},
		{
			name:    "empty contents",
			turn:    &Turn{Speaker: SpeakerUser, Timestamp: now},
			wantErr: ErrEmptyContent,
		},
		{
			name:    "invalid speaker",
			turn:    &Turn{Speaker: Speaker(99), Contents: "hello", Timestamp: now},
			wantErr: ErrInvalidSpeaker,
		},
		{
			name:    "future timestamp",
			turn:    &Turn{Speaker: SpeakerUser, Contents: "hello", Timestamp: now.Add(time.Hour)},
			wantErr: ErrInvalidTimestamp,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateTurn(tt.turn)
			if tt.wantErr == nil {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, tt.wantErr)
			}
		})
	}
}

func TestValidateLeadRecord(t *testing.T) {
	t.Run("valid partial record", func(t *testing.T) {
		err := ValidateLeadRecord(&LeadRecord{SessionId: "abc"})
		assert.NoError(t, err)
	})

	t.Run("nil record", func(t *testing.T) {
		err := ValidateLeadRecord(nil)
		assert.ErrorIs(t, err, ErrInvalidLeadRecord)
	})

	t.Run("missing session id", func(t *testing.T) {
		err := ValidateLeadRecord(&LeadRecord{Name: "John"})
		assert.ErrorIs(t, err, ErrEmptySessionId)
	})
}

func TestValidateCollection(t *testing.T) {
	for _, collection := range Collections() {
		assert.NoError(t, ValidateCollection(collection))
	}
	assert.ErrorIs(t, ValidateCollection(CollectionNone), ErrInvalidCollection)
	assert.ErrorIs(t, ValidateCollection(Collection("hostel")), ErrInvalidCollection)
}
