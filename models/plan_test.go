package models

import "testing"

func TestNewEmptyPlanHasAllTitles(t *testing.T) {
	p := NewEmptyPlan()
	for _, key := range SectionOrder {
		section := p.Section(key)
		if section == nil {
			t.Fatalf("section %s missing", key)
		}
		if section.Title != SectionTitles[key] {
			t.Errorf("section %s title = %q, want %q", key, section.Title, SectionTitles[key])
		}
		if section.Content != "" {
			t.Errorf("section %s content should be empty", key)
		}
	}
	if !p.IsEmpty() {
		t.Error("new plan should be empty")
	}
}

func TestNormalizeResetsTamperedTitles(t *testing.T) {
	p := NewEmptyPlan()
	p.Analysis.Title = "hacked"
	p.ROI.Title = ""
	p.Flows.Content = "kept"

	p.Normalize()

	if p.Analysis.Title != SectionTitles[SectionAnalysis] {
		t.Errorf("analysis title = %q", p.Analysis.Title)
	}
	if p.ROI.Title != SectionTitles[SectionROI] {
		t.Errorf("roi title = %q", p.ROI.Title)
	}
	if p.Flows.Content != "kept" {
		t.Error("normalize must not touch content")
	}
}

func TestSectionUnknownKey(t *testing.T) {
	p := NewEmptyPlan()
	if p.Section("bogus") != nil {
		t.Error("unknown key should return nil")
	}
	if err := p.SetContent("bogus", "x"); err == nil {
		t.Error("SetContent with unknown key should fail")
	}
}

func TestSetContent(t *testing.T) {
	p := NewEmptyPlan()
	if err := p.SetContent(SectionStack, "n8n y Zapier"); err != nil {
		t.Fatalf("SetContent: %v", err)
	}
	if p.Stack.Content != "n8n y Zapier" {
		t.Errorf("stack content = %q", p.Stack.Content)
	}
	if p.IsEmpty() {
		t.Error("plan with content should not be empty")
	}
}

func TestOrderedSectionsOrder(t *testing.T) {
	p := NewEmptyPlan()
	sections := p.OrderedSections()
	if len(sections) != 5 {
		t.Fatalf("got %d sections, want 5", len(sections))
	}
	for i, key := range SectionOrder {
		if sections[i].Title != SectionTitles[key] {
			t.Errorf("position %d = %q, want %q", i, sections[i].Title, SectionTitles[key])
		}
	}
}

func TestFilterSources(t *testing.T) {
	in := []GroundingSource{
		{URI: "https://example.com/a", Title: "A"},
		{URI: "", Title: "dropped"},
		{URI: "   ", Title: "also dropped"},
		{URI: "https://example.com/b"},
	}
	out := FilterSources(in)

	if len(out) != 2 {
		t.Fatalf("got %d sources, want 2", len(out))
	}
	if out[0].URI != "https://example.com/a" || out[0].Title != "A" {
		t.Errorf("first source = %+v", out[0])
	}
	if out[1].Title != "Fuente de información" {
		t.Errorf("missing title should default, got %q", out[1].Title)
	}
}

func TestFilterSourcesEmptyInput(t *testing.T) {
	if out := FilterSources(nil); len(out) != 0 {
		t.Errorf("nil input should yield empty slice, got %v", out)
	}
}

func TestValidateSavedPlan(t *testing.T) {
	valid := SavedPlan{
		ID:        "abc",
		Name:      "Panadería",
		Timestamp: 1700000000000,
		Plan:      NewEmptyPlan(),
	}
	if err := ValidateStruct(valid); err != nil {
		t.Errorf("valid project should pass validation: %v", err)
	}

	invalid := SavedPlan{Name: "sin id"}
	if err := ValidateStruct(invalid); err == nil {
		t.Error("project without ID and timestamp should fail validation")
	}
}

func TestValidateChatMessage(t *testing.T) {
	if err := ValidateStruct(ChatMessage{Role: "user", Content: "hola"}); err != nil {
		t.Errorf("user role should validate: %v", err)
	}
	if err := ValidateStruct(ChatMessage{Role: "assistant", Content: "x"}); err == nil {
		t.Error("only user|model roles are allowed")
	}
}
