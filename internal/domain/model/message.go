package model

import "time"

// Sender identifies who produced a chat message.
type Sender string

const (
	SenderUser Sender = "user"
	SenderBot  Sender = "bot"
)

// Message is one entry in a conversation, owned by the client-side
// conversation state. Messages are append-only: never reordered or
// mutated after creation.
type Message struct {
	ID        string    `json:"id"`
	Content   string    `json:"content"`
	Sender    Sender    `json:"sender"`
	Timestamp time.Time `json:"timestamp"`
}

// ChatRequest is the POST /chat body. One field, no extras accepted.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=2000"`
}

// ChatResponse is the success body. Reply is never empty: the gateway
// substitutes a fixed apology when the provider returns no content.
type ChatResponse struct {
	Reply string `json:"reply"`
}
