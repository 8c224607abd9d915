package config

import (
	"fmt"
	"strconv"
)

// Config represents the persistent rosebot configuration stored as
// config.toml in the .rosebot/ directory. The TOML layout uses sections
// for logical grouping.
type Config struct {
	Version     int               `toml:"version"`
	API         APIConfig         `toml:"api"`
	Knowledge   KnowledgeConfig   `toml:"knowledge"`
	VectorStore VectorStoreConfig `toml:"vector_store"`
	Embedding   EmbeddingConfig   `toml:"embedding"`
	LLM         LLMConfig         `toml:"llm"`
	Shopify     ShopifyConfig     `toml:"shopify"`
	Events      EventsConfig      `toml:"events"`
	Session     SessionConfig     `toml:"session"`
}

// APIConfig holds webhook API server settings.
type APIConfig struct {
	Listen string `toml:"listen,omitempty"`
}

// KnowledgeConfig holds knowledge base settings.
type KnowledgeConfig struct {
	// IndexPath is the directory holding the vector index database.
	IndexPath string `toml:"index_path,omitempty"`

	// TopK is the number of documents retrieved per query.
	TopK int `toml:"top_k,omitempty"`
}

// VectorStoreConfig holds vector store settings.
type VectorStoreConfig struct {
	// Provider selects the driver ("sqlite", "chroma", or "pgvector").
	Provider string `toml:"provider,omitempty"`

	// Target is the Chroma server URL or Postgres connection string.
	// Unused by the sqlite driver, which derives its path from
	// knowledge.index_path.
	Target string `toml:"target,omitempty"`
}

// EmbeddingConfig holds embedding provider settings.
type EmbeddingConfig struct {
	Provider   string `toml:"provider,omitempty"`
	Target     string `toml:"target,omitempty"`
	Model      string `toml:"model,omitempty"`
	Dimensions uint   `toml:"dimensions,omitempty"`
}

// LLMConfig holds chat model settings used to generate webhook replies.
type LLMConfig struct {
	Provider    string  `toml:"provider,omitempty"`
	Target      string  `toml:"target,omitempty"`
	Model       string  `toml:"model,omitempty"`
	Temperature float32 `toml:"temperature,omitempty"`
	MaxTokens   int     `toml:"max_tokens,omitempty"`

	// APIKey authenticates against hosted providers. Prefer setting it
	// via the ROSEBOT_LLM_API_KEY environment variable over the file.
	APIKey string `toml:"api_key,omitempty"`
}

// ShopifyConfig holds Shopify chat API settings.
type ShopifyConfig struct {
	ShopURL     string `toml:"shop_url,omitempty"`
	APIVersion  string `toml:"api_version,omitempty"`
	AccessToken string `toml:"access_token,omitempty"`

	// WebhookSecret enables HMAC verification of inbound webhooks when
	// non-empty.
	WebhookSecret string `toml:"webhook_secret,omitempty"`

	// SendReplies gates outbound delivery of generated answers back to
	// the Shopify chat API. Off by default so development instances only
	// echo the answer in the webhook response.
	SendReplies bool `toml:"send_replies,omitempty"`
}

// EventsConfig holds turn event stream settings.
type EventsConfig struct {
	// Provider selects the publisher ("nop" or "kafka").
	Provider string `toml:"provider,omitempty"`

	// Brokers is a comma-separated list of Kafka broker addresses.
	Brokers string `toml:"brokers,omitempty"`

	Topic string `toml:"topic,omitempty"`
}

// SessionConfig holds conversation memory settings.
type SessionConfig struct {
	// Window is the maximum number of turns kept per conversation.
	Window int `toml:"window,omitempty"`
}

// configKeyInfo maps a user-facing dotted key name to a getter and setter on *Config.
type configKeyInfo struct {
	get func(c *Config) string
	set func(c *Config, v string) error
}

// configKeys is the authoritative map of all supported config keys.
// Keys use dotted notation matching the TOML section structure.
var configKeys = map[string]configKeyInfo{
	"api.listen": {
		get: func(c *Config) string { return c.API.Listen },
		set: func(c *Config, v string) error { c.API.Listen = v; return nil },
	},
	"knowledge.index_path": {
		get: func(c *Config) string { return c.Knowledge.IndexPath },
		set: func(c *Config, v string) error { c.Knowledge.IndexPath = v; return nil },
	},
	"knowledge.top_k": {
		get: func(c *Config) string {
			if c.Knowledge.TopK == 0 {
				return ""
			}
			return strconv.Itoa(c.Knowledge.TopK)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for knowledge.top_k: %w", err)
			}
			c.Knowledge.TopK = n
			return nil
		},
	},
	"vector_store.provider": {
		get: func(c *Config) string { return c.VectorStore.Provider },
		set: func(c *Config, v string) error { c.VectorStore.Provider = v; return nil },
	},
	"vector_store.target": {
		get: func(c *Config) string { return c.VectorStore.Target },
		set: func(c *Config, v string) error { c.VectorStore.Target = v; return nil },
	},
	"embedding.provider": {
		get: func(c *Config) string { return c.Embedding.Provider },
		set: func(c *Config, v string) error { c.Embedding.Provider = v; return nil },
	},
	"embedding.target": {
		get: func(c *Config) string { return c.Embedding.Target },
		set: func(c *Config, v string) error { c.Embedding.Target = v; return nil },
	},
	"embedding.model": {
		get: func(c *Config) string { return c.Embedding.Model },
		set: func(c *Config, v string) error { c.Embedding.Model = v; return nil },
	},
	"embedding.dimensions": {
		get: func(c *Config) string {
			if c.Embedding.Dimensions == 0 {
				return ""
			}
			return strconv.FormatUint(uint64(c.Embedding.Dimensions), 10)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.ParseUint(v, 10, 64)
			if err != nil {
				return fmt.Errorf("invalid value for embedding.dimensions: %w", err)
			}
			c.Embedding.Dimensions = uint(n)
			return nil
		},
	},
	"llm.provider": {
		get: func(c *Config) string { return c.LLM.Provider },
		set: func(c *Config, v string) error { c.LLM.Provider = v; return nil },
	},
	"llm.target": {
		get: func(c *Config) string { return c.LLM.Target },
		set: func(c *Config, v string) error { c.LLM.Target = v; return nil },
	},
	"llm.model": {
		get: func(c *Config) string { return c.LLM.Model },
		set: func(c *Config, v string) error { c.LLM.Model = v; return nil },
	},
	"llm.temperature": {
		get: func(c *Config) string {
			if c.LLM.Temperature == 0 {
				return ""
			}
			return strconv.FormatFloat(float64(c.LLM.Temperature), 'f', -1, 32)
		},
		set: func(c *Config, v string) error {
			f, err := strconv.ParseFloat(v, 32)
			if err != nil {
				return fmt.Errorf("invalid value for llm.temperature: %w", err)
			}
			c.LLM.Temperature = float32(f)
			return nil
		},
	},
	"llm.max_tokens": {
		get: func(c *Config) string {
			if c.LLM.MaxTokens == 0 {
				return ""
			}
			return strconv.Itoa(c.LLM.MaxTokens)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for llm.max_tokens: %w", err)
			}
			c.LLM.MaxTokens = n
			return nil
		},
	},
	"shopify.shop_url": {
		get: func(c *Config) string { return c.Shopify.ShopURL },
		set: func(c *Config, v string) error { c.Shopify.ShopURL = v; return nil },
	},
	"shopify.api_version": {
		get: func(c *Config) string { return c.Shopify.APIVersion },
		set: func(c *Config, v string) error { c.Shopify.APIVersion = v; return nil },
	},
	"shopify.send_replies": {
		get: func(c *Config) string { return strconv.FormatBool(c.Shopify.SendReplies) },
		set: func(c *Config, v string) error {
			b, err := strconv.ParseBool(v)
			if err != nil {
				return fmt.Errorf("invalid value for shopify.send_replies: %w", err)
			}
			c.Shopify.SendReplies = b
			return nil
		},
	},
	"events.provider": {
		get: func(c *Config) string { return c.Events.Provider },
		set: func(c *Config, v string) error { c.Events.Provider = v; return nil },
	},
	"events.brokers": {
		get: func(c *Config) string { return c.Events.Brokers },
		set: func(c *Config, v string) error { c.Events.Brokers = v; return nil },
	},
	"events.topic": {
		get: func(c *Config) string { return c.Events.Topic },
		set: func(c *Config, v string) error { c.Events.Topic = v; return nil },
	},
	"session.window": {
		get: func(c *Config) string {
			if c.Session.Window == 0 {
				return ""
			}
			return strconv.Itoa(c.Session.Window)
		},
		set: func(c *Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid value for session.window: %w", err)
			}
			c.Session.Window = n
			return nil
		},
	},
}
