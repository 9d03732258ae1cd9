// Package plan normalizes raw generation output into the five-section plan
// document. Parsing is total: any input, including the empty string, yields a
// plan with all five sections present.
package plan

import (
	"regexp"
	"strings"

	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/types"
)

// headerRegex matches the markdown section headers the generation prompt asks
// for: "### <number>. <title>" on its own line.
var headerRegex = regexp.MustCompile(`### \d+\.\s+.*\n`)

// Parse normalizes a provider result into a Plan. Structured output is
// preferred; the positional text shape is the legacy fallback.
func Parse(result *types.PlanResult) models.Plan {
	if result == nil {
		return models.NewEmptyPlan()
	}
	if result.Structured() {
		return FromFields(result.Fields)
	}
	return ParseText(result.Text)
}

// ParseText splits a markdown blob on numbered section headers and assigns
// the fragments positionally to the five fixed sections. Header text is
// descriptive only; order is the contract. Anything before the first header
// is preamble and is dropped, as are whitespace-only fragments. Fewer than
// five fragments leaves trailing sections empty; extras are dropped.
func ParseText(raw string) models.Plan {
	p := models.NewEmptyPlan()

	locs := headerRegex.FindAllStringIndex(raw, -1)
	if len(locs) == 0 {
		return p
	}

	fragments := make([]string, 0, len(locs))
	for i, loc := range locs {
		end := len(raw)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		fragment := strings.TrimSpace(raw[loc[1]:end])
		if fragment == "" {
			continue
		}
		fragments = append(fragments, fragment)
	}

	for i, key := range models.SectionOrder {
		if i >= len(fragments) {
			break
		}
		p.Section(key).Content = fragments[i]
	}
	return p
}

// FromFields copies structured provider output field by field. Missing fields
// default to the empty string.
func FromFields(fields map[string]string) models.Plan {
	p := models.NewEmptyPlan()
	for _, key := range models.SectionOrder {
		p.Section(key).Content = fields[string(key)]
	}
	return p
}
