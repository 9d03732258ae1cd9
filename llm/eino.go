package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/cloudwego/eino-ext/components/model/claude"
	"github.com/cloudwego/eino-ext/components/model/ollama"
	"github.com/cloudwego/eino-ext/components/model/openai"
	"github.com/cloudwego/eino/components/model"
	"github.com/cloudwego/eino/schema"

	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/prompts"
	"github.com/planora-ai/planora/types"
)

const defaultOllamaURL = "http://localhost:11434"

// einoProvider adapts any Eino chat model to the Provider and ChatProvider
// contracts. These providers have no search grounding, so results carry no
// citation sources. They are asked for the structured five-field JSON shape;
// if the model answers with prose instead, the markdown text shape is kept as
// the fallback.
type einoProvider struct {
	chat         model.BaseChatModel
	templatesDir string
}

// newEinoChatModel builds the underlying Eino chat model for the configured
// provider.
func newEinoChatModel(ctx context.Context, cfg *types.LLMConfig) (model.BaseChatModel, error) {
	switch strings.ToLower(strings.TrimSpace(cfg.Provider)) {
	case "openai":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("OpenAI API key is required")
		}
		return openai.NewChatModel(ctx, &openai.ChatModelConfig{
			Model:  cfg.ModelName,
			APIKey: cfg.APIKey,
		})

	case "anthropic":
		if cfg.APIKey == "" {
			return nil, fmt.Errorf("anthropic API key is required")
		}
		return claude.NewChatModel(ctx, &claude.Config{
			APIKey: cfg.APIKey,
			Model:  cfg.ModelName,
		})

	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = defaultOllamaURL
		}
		return ollama.NewChatModel(ctx, &ollama.ChatModelConfig{
			BaseURL: baseURL,
			Model:   cfg.ModelName,
		})

	default:
		return nil, fmt.Errorf("unsupported eino provider: %s", cfg.Provider)
	}
}

func newEinoProvider(ctx context.Context, cfg *types.LLMConfig, templatesDir string) (*einoProvider, error) {
	chat, err := newEinoChatModel(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &einoProvider{chat: chat, templatesDir: templatesDir}, nil
}

// GeneratePlan requests the plan as a JSON object keyed by the five section
// names. A non-JSON reply degrades to the positional text shape.
func (p *einoProvider) GeneratePlan(ctx context.Context, businessDescription string) (*types.PlanResult, error) {
	promptTemplate, err := prompts.GetPrompt(prompts.KeyGeneratePlan, p.templatesDir)
	if err != nil {
		return nil, err
	}
	prompt := prompts.BuildPlanPrompt(promptTemplate, businessDescription)

	messages := []*schema.Message{
		schema.SystemMessage(prompts.StructuredOutputInstruction),
		schema.UserMessage(prompt),
	}

	resp, err := p.chat.Generate(ctx, messages)
	if err != nil {
		return nil, fmt.Errorf("eino generate: %w", err)
	}

	result := &types.PlanResult{Text: resp.Content}
	if fields, ok := parseStructuredPlan(resp.Content); ok {
		result.Fields = fields
	}
	return result, nil
}

// parseStructuredPlan extracts a string-valued JSON object from a model
// reply, tolerating markdown code fences around it.
func parseStructuredPlan(content string) (map[string]string, bool) {
	trimmed := strings.TrimSpace(content)
	if strings.HasPrefix(trimmed, "```") {
		trimmed = strings.TrimPrefix(trimmed, "```json")
		trimmed = strings.TrimPrefix(trimmed, "```")
		trimmed = strings.TrimSuffix(strings.TrimSpace(trimmed), "```")
		trimmed = strings.TrimSpace(trimmed)
	}
	if !strings.HasPrefix(trimmed, "{") {
		return nil, false
	}
	var fields map[string]string
	if err := json.Unmarshal([]byte(trimmed), &fields); err != nil {
		return nil, false
	}
	return fields, true
}

// einoChatSession keeps conversation history client-side and replays it on
// every turn.
type einoChatSession struct {
	chat    model.BaseChatModel
	history []*schema.Message
}

// NewChat creates a chat session seeded with the given history.
func (p *einoProvider) NewChat(ctx context.Context, history []models.ChatMessage) (ChatSession, error) {
	instruction, err := prompts.GetPrompt(prompts.KeyChatSystem, p.templatesDir)
	if err != nil {
		return nil, err
	}

	messages := make([]*schema.Message, 0, len(history)+1)
	messages = append(messages, schema.SystemMessage(instruction))
	for _, msg := range history {
		if msg.Role == "model" {
			messages = append(messages, schema.AssistantMessage(msg.Content, nil))
		} else {
			messages = append(messages, schema.UserMessage(msg.Content))
		}
	}

	return &einoChatSession{chat: p.chat, history: messages}, nil
}

func (s *einoChatSession) Send(ctx context.Context, message string) (string, error) {
	attempt := append(s.history, schema.UserMessage(message))

	resp, err := s.chat.Generate(ctx, attempt)
	if err != nil {
		return "", &types.ChatError{Err: err}
	}

	s.history = append(attempt, schema.AssistantMessage(resp.Content, nil))
	reply := resp.Content
	if reply == "" {
		reply = "No pude generar una respuesta."
	}
	return reply, nil
}
