package models

import (
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
)

// SectionKey identifies one of the five fixed plan sections.
type SectionKey string

const (
	SectionAnalysis       SectionKey = "analysis"
	SectionFlows          SectionKey = "flows"
	SectionStack          SectionKey = "stack"
	SectionImplementation SectionKey = "implementation"
	SectionROI            SectionKey = "roi"
)

// SectionOrder is the canonical ordering of plan sections. Parsing, rendering
// and export all iterate in this order.
var SectionOrder = []SectionKey{
	SectionAnalysis,
	SectionFlows,
	SectionStack,
	SectionImplementation,
	SectionROI,
}

// SectionTitles maps each section key to its human-readable title. Titles are
// fixed constants and never derived from generated output.
var SectionTitles = map[SectionKey]string{
	SectionAnalysis:       "1. Análisis de Procesos Manuales",
	SectionFlows:          "2. Diseño de Flujos de Agentes",
	SectionStack:          "3. Stack Tecnológico Recomendado",
	SectionImplementation: "4. Implementación Paso a Paso",
	SectionROI:            "5. ROI Estimado",
}

// PlanSection is a single titled block of free-form plan content. The content
// may carry markdown-like list markers; the core treats it as opaque text.
type PlanSection struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// Plan is the five-section automation plan. All five sections are always
// present; content may be empty but never absent.
type Plan struct {
	Analysis       PlanSection `json:"analysis"`
	Flows          PlanSection `json:"flows"`
	Stack          PlanSection `json:"stack"`
	Implementation PlanSection `json:"implementation"`
	ROI            PlanSection `json:"roi"`
}

// NewEmptyPlan returns a plan with all five sections titled and empty.
func NewEmptyPlan() Plan {
	var p Plan
	p.Normalize()
	return p
}

// Normalize resets every section title to its fixed constant and leaves the
// contents untouched. Call it after decoding a plan from an external source
// so the five-key invariant holds regardless of what the payload carried.
func (p *Plan) Normalize() {
	for _, key := range SectionOrder {
		p.Section(key).Title = SectionTitles[key]
	}
}

// Section returns a pointer to the section for the given key, or nil if the
// key is not one of the five fixed keys.
func (p *Plan) Section(key SectionKey) *PlanSection {
	switch key {
	case SectionAnalysis:
		return &p.Analysis
	case SectionFlows:
		return &p.Flows
	case SectionStack:
		return &p.Stack
	case SectionImplementation:
		return &p.Implementation
	case SectionROI:
		return &p.ROI
	}
	return nil
}

// SetContent replaces the content of the named section wholesale.
func (p *Plan) SetContent(key SectionKey, content string) error {
	section := p.Section(key)
	if section == nil {
		return fmt.Errorf("unknown plan section %q", key)
	}
	section.Content = content
	return nil
}

// OrderedSections returns the five sections in canonical order.
func (p *Plan) OrderedSections() []PlanSection {
	sections := make([]PlanSection, 0, len(SectionOrder))
	for _, key := range SectionOrder {
		sections = append(sections, *p.Section(key))
	}
	return sections
}

// IsEmpty reports whether every section content is blank.
func (p *Plan) IsEmpty() bool {
	for _, key := range SectionOrder {
		if strings.TrimSpace(p.Section(key).Content) != "" {
			return false
		}
	}
	return true
}

// GroundingSource is a citation surfaced by the search-augmented generation
// provider. Sources with an empty URI are discarded at ingestion.
type GroundingSource struct {
	URI   string `json:"uri" validate:"required"`
	Title string `json:"title"`
}

// FilterSources drops entries with an empty URI and defaults missing titles.
func FilterSources(sources []GroundingSource) []GroundingSource {
	filtered := make([]GroundingSource, 0, len(sources))
	for _, s := range sources {
		if strings.TrimSpace(s.URI) == "" {
			continue
		}
		if s.Title == "" {
			s.Title = "Fuente de información"
		}
		filtered = append(filtered, s)
	}
	return filtered
}

// SavedPlan is a named, persisted audit project. Identity is ID; Name is
// user-chosen and not unique. Timestamp is last-modified epoch millis.
type SavedPlan struct {
	ID                  string            `json:"id" validate:"required"`
	Name                string            `json:"name" validate:"required"`
	Timestamp           int64             `json:"timestamp" validate:"required,min=1"`
	BusinessDescription string            `json:"businessDescription"`
	Plan                Plan              `json:"plan"`
	Sources             []GroundingSource `json:"sources"`
}

// ProjectList is the wholesale-serialized collection the store persists.
// Order is most-recent-first: creations prepend, updates keep position.
type ProjectList struct {
	Projects   []SavedPlan `json:"projects"`
	TotalCount int         `json:"totalCount"`
}

// ChatMessage is a single turn of the advisory chat.
type ChatMessage struct {
	Role    string `json:"role" validate:"required,oneof=user model"`
	Content string `json:"content"`
}

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// ValidateStruct performs validation on any struct that carries validation tags.
func ValidateStruct(s interface{}) error {
	err := validate.Struct(s)
	if err != nil {
		validationErrors, ok := err.(validator.ValidationErrors)
		if !ok {
			return err
		}
		var messages []string
		for _, e := range validationErrors {
			messages = append(messages, fmt.Sprintf("field '%s' failed rule '%s'", e.StructNamespace(), e.Tag()))
		}
		return fmt.Errorf("%s", strings.Join(messages, "; "))
	}
	return nil
}
