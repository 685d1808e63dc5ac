package retrieval

import "errors"

var (
	// ErrChunkRepositoryRequired indicates a nil chunk repository was passed.
	ErrChunkRepositoryRequired = errors.New("chunk repository is required")

	// ErrAIProviderRequired indicates a nil AI provider was passed.
	ErrAIProviderRequired = errors.New("ai provider is required")

	// ErrInvalidTopK indicates a non-positive top-k setting.
	ErrInvalidTopK = errors.New("top-k must be positive")
)
