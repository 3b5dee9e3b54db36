package adapter

import "context"

// Message represents a chat message.
type Message struct {
	Role    string `json:"role"` // "user", "assistant", "system"
	Content string `json:"content"`
}

// CompletionParams bound the model's output for a single call.
type CompletionParams struct {
	Temperature float64
	MaxTokens   int
}

// AIServiceAdapter is the port for LLM chat completions.
type AIServiceAdapter interface {
	// Chat returns the assistant text for the given turns. An empty
	// string with nil error means the provider produced no content.
	Chat(ctx context.Context, model string, messages []Message, params CompletionParams) (string, error)
}
