package ai

import (
	"context"

	"cuisine-chat/internal/domain/ports/adapter"
)

var _ adapter.AIServiceAdapter = (*MockAdapter)(nil)

// MockResponsePrefix prefixes every mock reply.
const MockResponsePrefix = "[Mock Response] "

// MockAdapter implements adapter.AIServiceAdapter for offline/test
// operation: no network, no credentials, deterministic output. It is
// selected when the API key is missing, empty, or the test sentinel.
type MockAdapter struct{}

func NewMockAdapter() *MockAdapter {
	return &MockAdapter{}
}

// Chat echoes the last user turn back with the mock prefix.
func (a *MockAdapter) Chat(ctx context.Context, model string, messages []adapter.Message, params adapter.CompletionParams) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	for i := len(messages) - 1; i >= 0; i-- {
		if messages[i].Role == "user" {
			return MockResponsePrefix + messages[i].Content, nil
		}
	}
	return MockResponsePrefix, nil
}
