package ai

import "context"

// Embedder generates vector embeddings from text for semantic similarity search.
// Implementations must be thread-safe for concurrent use.
type Embedder interface {
	// EmbedText generates a vector embedding for a single text string.
	// The returned vector represents the semantic meaning of the text.
	// Returns an error if the embedding generation fails.
	EmbedText(ctx context.Context, text string) ([]float32, error)

	// EmbedTexts generates vector embeddings for multiple text strings in a batch.
	// Batch processing is more efficient than calling EmbedText multiple times.
	// The returned slice contains embeddings in the same order as the input texts.
	// Returns an error if any embedding generation fails.
	EmbedTexts(ctx context.Context, texts []string) ([][]float32, error)
}

// ResponseGenerator produces a chat completion from an ordered message sequence.
// Implementations must be thread-safe for concurrent use.
type ResponseGenerator interface {
	// Generate sends the message sequence to the chat model and returns the
	// assistant's reply text. The first message is expected to carry the
	// system instructions; the remainder alternate between user and
	// assistant turns.
	// Returns an error if the completion fails or comes back empty.
	Generate(ctx context.Context, messages []Message) (string, error)
}

// AIProvider aggregates AI services for convenient initialization and lifecycle management.
// A provider creates and manages Embedder and ResponseGenerator instances,
// ensuring they share configuration and resources appropriately.
type AIProvider interface {
	// Embedder returns the text embedding service.
	// The returned Embedder is safe for concurrent use.
	Embedder() Embedder

	// ResponseGenerator returns the chat completion service.
	// The returned ResponseGenerator is safe for concurrent use.
	ResponseGenerator() ResponseGenerator

	// Close releases resources held by the provider and its services.
	// After Close is called, the provider and its services should not be used.
	Close() error
}
