// Package llm defines the chat model abstraction used to generate customer
// replies.
package llm

import "context"

// Message roles understood by every provider.
const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message is a single entry in a chat transcript.
type Message struct {
	Role    string
	Content string
}

// ChatModel generates a completion for a chat transcript.
type ChatModel interface {
	// Complete returns the assistant reply for the given messages.
	Complete(ctx context.Context, messages []Message) (string, error)

	// Close releases any resources held by the model.
	Close() error
}
