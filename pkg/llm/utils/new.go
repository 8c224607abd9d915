// Package llmutils is the chat model utility package
package llmutils

import (
	"fmt"

	"github.com/rosemira/rosebot/pkg/llm"
	"github.com/rosemira/rosebot/pkg/llm/provider/ollama"
	"github.com/rosemira/rosebot/pkg/llm/provider/openai"
)

type NewChatModelOpts struct {
	ProviderType string
	TargetURL    string
	Model        string
	APIKey       string
	Temperature  float32
	MaxTokens    int
}

func NewChatModel(o *NewChatModelOpts) (llm.ChatModel, error) {
	switch o.ProviderType {
	case "ollama":
		return ollama.NewClient(ollama.Config{
			BaseURL:     o.TargetURL,
			Model:       o.Model,
			Temperature: o.Temperature,
			MaxTokens:   o.MaxTokens,
		})
	case "openai":
		return openai.NewClient(openai.Config{
			APIKey:      o.APIKey,
			BaseURL:     o.TargetURL,
			Model:       o.Model,
			Temperature: o.Temperature,
			MaxTokens:   o.MaxTokens,
		})
	default:
		return nil, fmt.Errorf("unsupported llm provider: %s", o.ProviderType)
	}
}
