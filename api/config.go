// Package api provides the HTTP server that answers Shopify chat webhooks
// from the Rosemira knowledge base.
package api

// Config is the API server configuration.
type Config struct {
	// ListenAddr is the address to listen on (e.g., ":8080")
	ListenAddr string

	// WebhookSecret enables HMAC verification of webhook deliveries when
	// non-empty. Empty skips verification, matching development setups
	// where Shopify is simulated by hand.
	WebhookSecret string

	// SendReplies controls whether generated answers are posted back to
	// the Shopify conversation. Requires a Replier.
	SendReplies bool

	// LLMProvider and LLMModel identify the chat model in emitted events.
	LLMProvider string
	LLMModel    string
}
