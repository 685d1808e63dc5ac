package chat

import "errors"

var (
	// ErrRouterRequired indicates a nil router was passed.
	ErrRouterRequired = errors.New("router is required")

	// ErrRetrieverRequired indicates a nil retriever was passed.
	ErrRetrieverRequired = errors.New("retriever is required")

	// ErrAssemblerRequired indicates a nil prompt assembler was passed.
	ErrAssemblerRequired = errors.New("prompt assembler is required")

	// ErrGeneratorRequired indicates a nil response generator was passed.
	ErrGeneratorRequired = errors.New("response generator is required")

	// ErrExtractorRequired indicates a nil lead extractor was passed.
	ErrExtractorRequired = errors.New("lead extractor is required")

	// ErrLeadRepositoryRequired indicates a nil lead repository was passed.
	ErrLeadRepositoryRequired = errors.New("lead repository is required")

	// ErrSessionTerminated indicates input was handled after the session ended.
	ErrSessionTerminated = errors.New("session is terminated")

	// ErrInvalidMaxAttempts indicates a non-positive retry attempt count.
	ErrInvalidMaxAttempts = errors.New("max attempts must be greater than zero")
)
