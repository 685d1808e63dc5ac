package ingest

import "errors"

var (
	// ErrChunkRepositoryRequired indicates a nil chunk repository was passed.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrAIProviderRequired indicates a nil AI provider was passed.
	ErrAIProviderRequired = errors.New("ai provider is required")

	// ErrEmptyDocument indicates the document produced no chunks.
	ErrEmptyDocument = errors.New("document contains no ingestible content")

	// ErrEmbeddingMismatch indicates the embedder returned the wrong number
	// of vectors for a batch.
	ErrEmbeddingMismatch = errors.New("embedding result count mismatch")

	// ErrUnsupportedFormat indicates a file extension the pipeline can't read.
	ErrUnsupportedFormat = errors.New("unsupported document format")
)
