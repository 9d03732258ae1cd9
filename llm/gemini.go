package llm

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/prompts"
	"github.com/planora-ai/planora/types"
)

const (
	defaultPlanModel = "gemini-3-pro-preview"
	defaultChatModel = "gemini-3-flash-preview"

	defaultThinkingBudget int32 = 32768
)

// GeminiProvider calls the Gemini API with the Google Search tool enabled, so
// generated plans carry grounding citations.
type GeminiProvider struct {
	client         *genai.Client
	planModel      string
	chatModel      string
	thinkingBudget int32
	templatesDir   string
}

// NewGeminiProvider creates a Gemini-backed provider. Empty model names fall
// back to the defaults above.
func NewGeminiProvider(ctx context.Context, apiKey, planModel, chatModel string, thinkingBudget int32, templatesDir string) (*GeminiProvider, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}
	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  apiKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create gemini client: %w", err)
	}
	if planModel == "" {
		planModel = defaultPlanModel
	}
	if chatModel == "" {
		chatModel = defaultChatModel
	}
	if thinkingBudget <= 0 {
		thinkingBudget = defaultThinkingBudget
	}
	return &GeminiProvider{
		client:         client,
		planModel:      planModel,
		chatModel:      chatModel,
		thinkingBudget: thinkingBudget,
		templatesDir:   templatesDir,
	}, nil
}

// GeneratePlan asks Gemini for the five-section plan as a markdown blob and
// collects search grounding chunks as citation sources.
func (p *GeminiProvider) GeneratePlan(ctx context.Context, businessDescription string) (*types.PlanResult, error) {
	promptTemplate, err := prompts.GetPrompt(prompts.KeyGeneratePlan, p.templatesDir)
	if err != nil {
		return nil, err
	}
	prompt := prompts.BuildPlanPrompt(promptTemplate, businessDescription)

	config := &genai.GenerateContentConfig{
		Tools: []*genai.Tool{
			{GoogleSearch: &genai.GoogleSearch{}},
		},
		ThinkingConfig: &genai.ThinkingConfig{
			ThinkingBudget: genai.Ptr(p.thinkingBudget),
		},
	}

	resp, err := p.client.Models.GenerateContent(ctx, p.planModel, genai.Text(prompt), config)
	if err != nil {
		return nil, fmt.Errorf("gemini generate content: %w", err)
	}

	return &types.PlanResult{
		Text:    resp.Text(),
		Sources: extractSources(resp),
	}, nil
}

// extractSources maps grounding chunks to citation sources. Entries without
// a URI are dropped; missing titles get a generic one.
func extractSources(resp *genai.GenerateContentResponse) []models.GroundingSource {
	if resp == nil || len(resp.Candidates) == 0 {
		return nil
	}
	metadata := resp.Candidates[0].GroundingMetadata
	if metadata == nil {
		return nil
	}
	sources := make([]models.GroundingSource, 0, len(metadata.GroundingChunks))
	for _, chunk := range metadata.GroundingChunks {
		if chunk == nil || chunk.Web == nil {
			continue
		}
		sources = append(sources, models.GroundingSource{
			URI:   chunk.Web.URI,
			Title: chunk.Web.Title,
		})
	}
	return models.FilterSources(sources)
}

// geminiChatSession wraps a genai chat. The session keeps server-side history
// inside the chat object; callers discard it on error.
type geminiChatSession struct {
	chat *genai.Chat
}

// NewChat creates a fresh chat session seeded with the given history.
func (p *GeminiProvider) NewChat(ctx context.Context, history []models.ChatMessage) (ChatSession, error) {
	instruction, err := prompts.GetPrompt(prompts.KeyChatSystem, p.templatesDir)
	if err != nil {
		return nil, err
	}

	contents := make([]*genai.Content, 0, len(history))
	for _, msg := range history {
		contents = append(contents, genai.NewContentFromText(msg.Content, genai.Role(msg.Role)))
	}

	config := &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instruction, genai.RoleUser),
	}

	chat, err := p.client.Chats.Create(ctx, p.chatModel, config, contents)
	if err != nil {
		return nil, &types.ChatError{Err: err}
	}
	return &geminiChatSession{chat: chat}, nil
}

func (s *geminiChatSession) Send(ctx context.Context, message string) (string, error) {
	resp, err := s.chat.SendMessage(ctx, genai.Part{Text: message})
	if err != nil {
		return "", &types.ChatError{Err: err}
	}
	reply := resp.Text()
	if reply == "" {
		reply = "No pude generar una respuesta."
	}
	return reply, nil
}
