package draft

import (
	"testing"

	"github.com/spf13/afero"

	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/session"
)

func TestLoadMissingFile(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), ".planora/draft.json")

	d, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if d.Plan != nil || d.CurrentProjectID != "" {
		t.Errorf("missing file should yield an empty draft, got %+v", d)
	}
}

func TestSaveLoadRoundTrip(t *testing.T) {
	s := NewStore(afero.NewMemMapFs(), ".planora/draft.json")

	p := models.NewEmptyPlan()
	p.Stack.Content = "n8n"
	d := session.Draft{
		Plan:                &p,
		BusinessDescription: "taller mecánico",
		CurrentProjectID:    "some-id",
		Sources: []models.GroundingSource{
			{URI: "https://example.com", Title: "Fuente"},
		},
	}

	if err := s.Save(d); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	got, err := s.Load()
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if got.Plan == nil || got.Plan.Stack.Content != "n8n" {
		t.Errorf("plan lost in round trip: %+v", got.Plan)
	}
	if got.CurrentProjectID != "some-id" || got.BusinessDescription != "taller mecánico" {
		t.Errorf("draft fields differ: %+v", got)
	}
	if len(got.Sources) != 1 {
		t.Errorf("got %d sources, want 1", len(got.Sources))
	}
}

func TestLoadCorruptFileDegrades(t *testing.T) {
	fs := afero.NewMemMapFs()
	path := ".planora/draft.json"
	if err := afero.WriteFile(fs, path, []byte("{ nope"), 0o644); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	s := NewStore(fs, path)
	d, err := s.Load()
	if err != nil {
		t.Fatalf("corrupt draft should not error: %v", err)
	}
	if d.Plan != nil {
		t.Error("corrupt draft should degrade to empty")
	}
}

func TestClear(t *testing.T) {
	fs := afero.NewMemMapFs()
	s := NewStore(fs, "draft.json")

	if err := s.Save(session.Draft{BusinessDescription: "x"}); err != nil {
		t.Fatalf("Save failed: %v", err)
	}
	if err := s.Clear(); err != nil {
		t.Fatalf("Clear failed: %v", err)
	}
	if exists, _ := afero.Exists(fs, "draft.json"); exists {
		t.Error("draft file should be gone")
	}

	// Clearing an already-missing draft is not an error.
	if err := s.Clear(); err != nil {
		t.Errorf("second Clear failed: %v", err)
	}
}
