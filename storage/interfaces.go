package storage

import (
	"context"

	"github.com/poiesic/campusbot/core"
)

// ChunkRepository provides operations for the index store: read-mostly
// collections of embedded text chunks.
type ChunkRepository interface {
	// AddChunks adds one or more chunks to their collections.
	// Assigns content-based IDs (IDFromContent of contents) for chunks with
	// ID=0, assigns per-collection ingestion ordinals from sequence, and sets
	// InsertedAt. Returns the chunks with IDs and ordinals populated.
	AddChunks(ctx context.Context, chunks ...*core.Chunk) ([]*core.Chunk, error)

	// GetChunk retrieves a single chunk by collection and ID.
	// Returns ErrNotFound if the chunk doesn't exist.
	GetChunk(ctx context.Context, collection core.Collection, id core.ID) (*core.Chunk, error)

	// CountChunks returns the number of chunks stored in a collection.
	// An unknown or never-ingested collection counts as zero, not an error.
	CountChunks(ctx context.Context, collection core.Collection) (int, error)

	// FindSimilar finds the chunks in a collection most similar to the given
	// vector. Returns up to limit results ordered by descending similarity,
	// with ties broken by ingestion order. An empty or missing collection
	// yields an empty result, never an error.
	FindSimilar(ctx context.Context, collection core.Collection, vector []float32, limit int) ([]*core.ScoredChunk, error)

	// DeleteCollection removes every chunk in a collection.
	// Used when a collection is re-ingested from scratch.
	DeleteCollection(ctx context.Context, collection core.Collection) error

	// Close closes the repository and releases resources.
	Close() error
}

// LeadRepository provides operations for the lead store: one record per
// session, persisted durably.
type LeadRepository interface {
	// PutLead persists the lead record for its session. The write is
	// idempotent per session: re-persisting overwrites the session's prior
	// entry rather than duplicating it. Merging is additive — fields already
	// captured in the stored record are never lost.
	PutLead(ctx context.Context, lead *core.LeadRecord) error

	// GetLead retrieves the lead record for a session.
	// Returns ErrNotFound if no record exists for the session.
	GetLead(ctx context.Context, sessionID string) (*core.LeadRecord, error)

	// ListLeads returns every persisted lead record, ordered by session id.
	ListLeads(ctx context.Context) ([]*core.LeadRecord, error)

	// Close closes the repository and releases resources.
	Close() error
}
