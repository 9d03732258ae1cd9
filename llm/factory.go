package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/planora-ai/planora/types"
)

// FullProvider is the combined contract every built-in provider satisfies.
type FullProvider interface {
	Provider
	ChatProvider
}

// NewProvider builds the configured provider. Gemini is the default when no
// provider is named; it is also the only provider with search grounding.
func NewProvider(ctx context.Context, config *types.LLMConfig, templatesDir string) (FullProvider, error) {
	if config == nil {
		return nil, fmt.Errorf("LLM configuration cannot be nil")
	}

	provider := strings.ToLower(strings.TrimSpace(config.Provider))

	switch provider {
	case "", "gemini":
		return NewGeminiProvider(ctx, config.APIKey, config.ModelName, config.ChatModelName, config.ThinkingBudget, templatesDir)
	case "openai", "anthropic", "ollama":
		return newEinoProvider(ctx, config, templatesDir)
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", config.Provider)
	}
}
