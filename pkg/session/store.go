// Package session provides a pluggable conversation state layer.
//
// Each Shopify conversation carries a rolling transcript of recent turns plus
// the set of products already suggested to the customer. The transcript feeds
// the chat model as context; the suggested set keeps recommendations from
// repeating across turns.
//
// Stores are pluggable via configuration:
//
//	[session]
//	window = 20
package session

import "context"

// Turn is a single exchange entry in a conversation transcript.
type Turn struct {
	// Role is the speaker, "user" or "assistant".
	Role string `json:"role"`

	// Content is the message text.
	Content string `json:"content"`
}

// Store handles per-conversation state.
// Implementers keep a bounded window of recent turns and track which
// products have already been suggested.
type Store interface {
	// AppendTurn records a turn in the conversation transcript. Stores
	// trim the oldest turns once the window limit is exceeded.
	AppendTurn(ctx context.Context, conversationID string, turn Turn) error

	// History returns the retained transcript for a conversation, oldest
	// first. Unknown conversations return an empty history.
	History(ctx context.Context, conversationID string) ([]Turn, error)

	// AddSuggested marks products as already suggested in a conversation.
	AddSuggested(ctx context.Context, conversationID string, products []string) error

	// Suggested returns the products already suggested in a conversation.
	Suggested(ctx context.Context, conversationID string) ([]string, error)

	// Close releases store resources.
	Close() error
}
