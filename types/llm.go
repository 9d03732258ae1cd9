package types

import "github.com/planora-ai/planora/models"

// PlanResult is the raw output of a plan-generation provider before parsing.
// Providers that emit structured output populate Fields; text-only providers
// populate Text with the five-header markdown blob. Sources carries search
// citations for providers that support grounding.
type PlanResult struct {
	Text    string
	Fields  map[string]string
	Sources []models.GroundingSource
}

// Structured reports whether the provider returned the structured shape.
func (r *PlanResult) Structured() bool {
	return r != nil && r.Fields != nil
}
