package core

//go:generate go run ../cmd/musgen

import (
	"encoding/binary"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a unique identifier for domain entities.
// It is generated using content-based hashing or database sequences.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// Speaker identifies the source of a conversation turn.
type Speaker int

const (
	// SpeakerUser represents the human user.
	SpeakerUser Speaker = iota + 1
	// SpeakerAssistant represents the assistant.
	SpeakerAssistant
)

// Collection names a read-only set of embedded text chunks used for retrieval.
type Collection string

const (
	CollectionSyllabus   Collection = "syllabus"
	CollectionAdmission  Collection = "admission"
	CollectionFoodMenu   Collection = "food_menu"
	CollectionBusDetails Collection = "bus_details"

	// CollectionNone is the router's answer when no collection is relevant.
	CollectionNone Collection = ""
)

// Collections lists every queryable collection in router priority order.
func Collections() []Collection {
	return []Collection{
		CollectionSyllabus,
		CollectionAdmission,
		CollectionFoodMenu,
		CollectionBusDetails,
	}
}

// Turn is a single entry in the conversation history.
// The history is append-only and lives for one session.
type Turn struct {
	Speaker   Speaker
	Contents  string
	Timestamp time.Time
}

// Chunk is a unit of ingested text with its embedding vector.
// Chunks are immutable once ingested and owned by the index store.
type Chunk struct {
	Id         ID
	Collection Collection
	Contents   string
	Source     string // originating file or row reference
	Ordinal    uint64 // ingestion order within the collection, stable tie-break for equal scores
	Vector     []float32
	InsertedAt time.Time
}

// ScoredChunk is a chunk returned from similarity search with its score.
type ScoredChunk struct {
	Chunk *Chunk
	Score float32
}

// LeadRecord holds contact/identity information captured during a session.
// All fields are optional strings. Fields are set at most once: merging is
// additive and an already-set field is never overwritten.
type LeadRecord struct {
	SessionId          string
	Name               string
	RegistrationNumber string
	Phone              string
	Email              string
	Department         string
	Year               string
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// IsEmpty reports whether no lead field has been captured yet.
func (l *LeadRecord) IsEmpty() bool {
	return l.Name == "" &&
		l.RegistrationNumber == "" &&
		l.Phone == "" &&
		l.Email == "" &&
		l.Department == "" &&
		l.Year == ""
}

// Merge copies fields from other into l, but only where l does not already
// have a value. First-match-wins: existing fields are never overwritten.
func (l *LeadRecord) Merge(other *LeadRecord) {
	if other == nil {
		return
	}
	if l.Name == "" {
		l.Name = other.Name
	}
	if l.RegistrationNumber == "" {
		l.RegistrationNumber = other.RegistrationNumber
	}
	if l.Phone == "" {
		l.Phone = other.Phone
	}
	if l.Email == "" {
		l.Email = other.Email
	}
	if l.Department == "" {
		l.Department = other.Department
	}
	if l.Year == "" {
		l.Year = other.Year
	}
}
