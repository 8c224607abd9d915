package config

const (
	defaultAPIListen = ":8080"

	defaultIndexPath = "faiss_index"
	defaultTopK      = 3

	defaultVectorProvider = "sqlite"

	defaultEmbeddingProvider   = "ollama"
	defaultEmbeddingTarget     = "http://localhost:11434"
	defaultEmbeddingModel      = "nomic-embed-text"
	defaultEmbeddingDimensions = 768

	defaultLLMProvider    = "ollama"
	defaultLLMTarget      = "http://localhost:11434"
	defaultLLMModel       = "llama3.2"
	defaultLLMTemperature = 0.7
	defaultLLMMaxTokens   = 500

	defaultShopifyAPIVersion = "2023-07"

	defaultEventsProvider = "nop"
	defaultEventsTopic    = "rosebot.turns"

	defaultSessionWindow = 20
)

// NewDefaultConfig returns a Config with sane defaults for all fields.
// This is the single source of truth for default values.
func NewDefaultConfig() *Config {
	return &Config{
		Version: CurrentV,
		API: APIConfig{
			Listen: defaultAPIListen,
		},
		Knowledge: KnowledgeConfig{
			IndexPath: defaultIndexPath,
			TopK:      defaultTopK,
		},
		VectorStore: VectorStoreConfig{
			Provider: defaultVectorProvider,
		},
		Embedding: EmbeddingConfig{
			Provider:   defaultEmbeddingProvider,
			Target:     defaultEmbeddingTarget,
			Model:      defaultEmbeddingModel,
			Dimensions: defaultEmbeddingDimensions,
		},
		LLM: LLMConfig{
			Provider:    defaultLLMProvider,
			Target:      defaultLLMTarget,
			Model:       defaultLLMModel,
			Temperature: defaultLLMTemperature,
			MaxTokens:   defaultLLMMaxTokens,
		},
		Shopify: ShopifyConfig{
			APIVersion: defaultShopifyAPIVersion,
		},
		Events: EventsConfig{
			Provider: defaultEventsProvider,
			Topic:    defaultEventsTopic,
		},
		Session: SessionConfig{
			Window: defaultSessionWindow,
		},
	}
}
