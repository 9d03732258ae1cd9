package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/planora-ai/planora/models"
)

func sampleProject() models.SavedPlan {
	p := models.NewEmptyPlan()
	p.Analysis.Content = "Procesos manuales detectados."
	p.ROI.Content = "Ahorro estimado notable."
	return models.SavedPlan{
		ID:                  "11112222-3333-4444-5555-666677778888",
		Name:                "Automatización De Panadería",
		Timestamp:           1700000000000,
		BusinessDescription: "Panadería que gestiona pedidos por WhatsApp",
		Plan:                p,
		Sources: []models.GroundingSource{
			{URI: "https://example.com/herramienta", Title: "Herramienta"},
		},
	}
}

func TestEncodeDecodeRoundTrip(t *testing.T) {
	original := sampleProject()

	data, err := EncodeProject(original)
	if err != nil {
		t.Fatalf("EncodeProject failed: %v", err)
	}

	decoded, err := DecodeProject(data)
	if err != nil {
		t.Fatalf("DecodeProject failed: %v", err)
	}

	if decoded.ID != original.ID || decoded.Name != original.Name {
		t.Errorf("identity fields differ: %+v", decoded)
	}
	if decoded.Plan.Analysis.Content != original.Plan.Analysis.Content {
		t.Errorf("plan content differs: %q", decoded.Plan.Analysis.Content)
	}
	if len(decoded.Sources) != 1 {
		t.Errorf("got %d sources, want 1", len(decoded.Sources))
	}
}

func TestDecodeRejectsMalformedPayloads(t *testing.T) {
	cases := map[string]string{
		"empty":        "",
		"whitespace":   "  \n ",
		"not json":     "{ nope",
		"missing id":   `{"name":"x","plan":{}}`,
		"blank id":     `{"id":"   ","name":"x","plan":{}}`,
		"missing plan": `{"id":"abc","name":"x"}`,
	}
	for name, payload := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := DecodeProject([]byte(payload)); err == nil {
				t.Errorf("payload %q should be rejected", payload)
			}
		})
	}
}

func TestDecodeNormalizesTitlesAndSources(t *testing.T) {
	payload := `{
		"id": "abc",
		"name": "manipulada",
		"plan": {
			"analysis": {"title": "Título Falso", "content": "contenido"}
		},
		"sources": [
			{"uri": "", "title": "sin uri"},
			{"uri": "https://example.com"}
		]
	}`

	decoded, err := DecodeProject([]byte(payload))
	if err != nil {
		t.Fatalf("DecodeProject failed: %v", err)
	}

	if got, want := decoded.Plan.Analysis.Title, models.SectionTitles[models.SectionAnalysis]; got != want {
		t.Errorf("title = %q, want %q", got, want)
	}
	if decoded.Plan.Analysis.Content != "contenido" {
		t.Errorf("content = %q", decoded.Plan.Analysis.Content)
	}
	if len(decoded.Sources) != 1 {
		t.Fatalf("got %d sources, want 1", len(decoded.Sources))
	}
	if decoded.Sources[0].Title != "Fuente de información" {
		t.Errorf("default title = %q", decoded.Sources[0].Title)
	}
}

func TestSlug(t *testing.T) {
	cases := map[string]string{
		"Automatización De Panadería": "automatizacion-de-panaderia",
		"  spaces   everywhere  ":     "spaces-everywhere",
		"MAYÚSCULAS":                  "mayusculas",
		"123 número":                  "123-numero",
		"!!!":                         "auditoria",
		"":                            "auditoria",
	}
	for in, want := range cases {
		if got := Slug(in); got != want {
			t.Errorf("Slug(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestFileNames(t *testing.T) {
	project := sampleProject()

	if got := FileName(project); got != "automatizacion-de-panaderia-11112222.json" {
		t.Errorf("FileName = %q", got)
	}
	if got := PDFFileName(project); got != "automatizacion-de-panaderia-11112222.pdf" {
		t.Errorf("PDFFileName = %q", got)
	}

	project.ID = "short"
	if got := FileName(project); !strings.HasSuffix(got, "-short.json") {
		t.Errorf("short ID FileName = %q", got)
	}
}

func TestWritePDF(t *testing.T) {
	var buf bytes.Buffer
	if err := WritePDF(&buf, sampleProject()); err != nil {
		t.Fatalf("WritePDF failed: %v", err)
	}
	if !bytes.HasPrefix(buf.Bytes(), []byte("%PDF")) {
		t.Error("output does not look like a PDF document")
	}
}
