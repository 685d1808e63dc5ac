package mock

import (
	"context"

	"github.com/poiesic/campusbot/ai"
)

// MockResponseGenerator is a test double for ai.ResponseGenerator.
// It allows custom behavior injection via function fields.
type MockResponseGenerator struct {
	// GenerateFunc is called by Generate if set.
	// If nil, uses default canned behavior.
	GenerateFunc func(ctx context.Context, messages []ai.Message) (string, error)

	callCount int
}

// NewMockResponseGenerator creates a mock generator with default canned behavior.
// Note: Returns concrete type to allow test assertions via GetMockGenerator().
func NewMockResponseGenerator() *MockResponseGenerator {
	return &MockResponseGenerator{}
}

// Generate returns a canned acknowledgement of the last user message.
func (m *MockResponseGenerator) Generate(ctx context.Context, messages []ai.Message) (string, error) {
	m.callCount++

	if m.GenerateFunc != nil {
		return m.GenerateFunc(ctx, messages)
	}

	// Default: acknowledge the last user message so transcripts read sanely
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == ai.RoleUser {
			return "You asked: " + messages[i].Content, nil
		}
	}
	return "How can I help you?", nil
}

// CallCount returns the number of times Generate was called.
func (m *MockResponseGenerator) CallCount() int {
	return m.callCount
}

// Reset clears the call count and injected behavior.
func (m *MockResponseGenerator) Reset() {
	m.callCount = 0
	m.GenerateFunc = nil
}
