// Package llm provides the plan-generation and chat providers behind the
// audit workflow. The Gemini provider is the default and the only one with
// search grounding; OpenAI, Anthropic and Ollama are wired through Eino.
package llm

import (
	"context"

	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/types"
)

// Provider generates an automation plan for a business description. The
// returned result is raw provider output; the plan package normalizes it.
type Provider interface {
	GeneratePlan(ctx context.Context, businessDescription string) (*types.PlanResult, error)
}

// ChatProvider creates advisory chat sessions. Sessions are owned by the
// caller: create one, use it, and discard it on the first ChatError.
type ChatProvider interface {
	NewChat(ctx context.Context, history []models.ChatMessage) (ChatSession, error)
}

// ChatSession is a single conversation. Send returns the model's reply.
type ChatSession interface {
	Send(ctx context.Context, message string) (string, error)
}
