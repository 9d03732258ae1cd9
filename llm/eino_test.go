package llm

import "testing"

func TestParseStructuredPlan(t *testing.T) {
	payload := `{"analysis":"a","flows":"f","stack":"s","implementation":"i","roi":"r"}`

	fields, ok := parseStructuredPlan(payload)
	if !ok {
		t.Fatal("plain JSON object should parse")
	}
	if fields["analysis"] != "a" || fields["roi"] != "r" {
		t.Errorf("fields = %v", fields)
	}
}

func TestParseStructuredPlanFenced(t *testing.T) {
	payload := "```json\n{\"analysis\":\"a\"}\n```"

	fields, ok := parseStructuredPlan(payload)
	if !ok {
		t.Fatal("fenced JSON should parse")
	}
	if fields["analysis"] != "a" {
		t.Errorf("fields = %v", fields)
	}
}

func TestParseStructuredPlanProse(t *testing.T) {
	cases := []string{
		"Aquí tienes tu plan en texto libre.",
		"### 1. Análisis\ncontenido",
		"",
		`{"analysis": {"nested": "object"}}`,
	}
	for _, payload := range cases {
		if _, ok := parseStructuredPlan(payload); ok {
			t.Errorf("payload %q should not parse as structured", payload)
		}
	}
}
