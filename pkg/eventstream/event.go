package eventstream

import "time"

const (
	// SchemaVersionV1 is the first version of the event payload schema.
	SchemaVersionV1 = 1

	// EventTypeTurnAnswered is emitted after a conversation turn is answered.
	EventTypeTurnAnswered = "rosebot.turn.answered"
)

// TurnAnsweredEvent is a transport-neutral event payload for an answered turn.
type TurnAnsweredEvent struct {
	SchemaVersion int             `json:"schema_version"`
	EventType     string          `json:"event_type"`
	EventID       string          `json:"event_id"`
	EmittedAt     time.Time       `json:"emitted_at"`
	Source        EventSource     `json:"source"`
	RequestMeta   TurnRequestMeta `json:"request_meta"`
	Turn          TurnMeta        `json:"turn"`
}

// EventSource identifies which model produced the reply.
type EventSource struct {
	Provider string `json:"provider"`
	Model    string `json:"model,omitempty"`
}

// TurnRequestMeta captures request lifecycle metadata for the event.
type TurnRequestMeta struct {
	Path        string    `json:"path,omitempty"`
	StartedAt   time.Time `json:"started_at"`
	CompletedAt time.Time `json:"completed_at"`
	DurationMs  int64     `json:"duration_ms"`
	HTTPStatus  int       `json:"http_status"`
}

// TurnMeta captures the conversation turn itself.
type TurnMeta struct {
	ConversationID    string   `json:"conversation_id"`
	SenderID          string   `json:"sender_id"`
	Query             string   `json:"query"`
	Response          string   `json:"response"`
	SuggestedProducts []string `json:"suggested_products,omitempty"`
	Recommendation    bool     `json:"recommendation"`
}
