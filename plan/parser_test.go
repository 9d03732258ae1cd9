package plan

import (
	"fmt"
	"strings"
	"testing"

	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/types"
)

const sampleOutput = `Aquí tienes el plan para tu negocio.

### 1. Análisis de Procesos Manuales
La panadería gestiona pedidos por WhatsApp de forma manual.

### 2. Diseño de Flujos de Agentes
Un agente conversacional recibe los pedidos y los registra.

### 3. Stack Tecnológico Recomendado
WhatsApp Business API, un CRM ligero y un orquestador de agentes.

### 4. Implementación Paso a Paso
Primero conecta la API, luego entrena el agente con el catálogo.

### 5. ROI Estimado
Ahorro estimado de 10 horas semanales de gestión manual.`

func TestParseTextFiveSections(t *testing.T) {
	p := ParseText(sampleOutput)

	if got := p.Analysis.Content; got != "La panadería gestiona pedidos por WhatsApp de forma manual." {
		t.Errorf("analysis content = %q", got)
	}
	if got := p.Flows.Content; got != "Un agente conversacional recibe los pedidos y los registra." {
		t.Errorf("flows content = %q", got)
	}
	if got := p.ROI.Content; got != "Ahorro estimado de 10 horas semanales de gestión manual." {
		t.Errorf("roi content = %q", got)
	}

	// The preamble before the first header must not leak into any section.
	for _, section := range p.OrderedSections() {
		if strings.Contains(section.Content, "Aquí tienes el plan") {
			t.Errorf("preamble leaked into section %q", section.Title)
		}
	}
}

func TestParseTextTitlesAreFixed(t *testing.T) {
	// Header text in the raw output is descriptive only; the parsed plan
	// carries the canonical titles even when the model renames sections.
	raw := "### 1. Whatever The Model Said\ncontenido uno\n\n### 2. Otra Cosa\ncontenido dos\n"
	p := ParseText(raw)

	for _, key := range models.SectionOrder {
		if got, want := p.Section(key).Title, models.SectionTitles[key]; got != want {
			t.Errorf("title for %s = %q, want %q", key, got, want)
		}
	}
	if p.Analysis.Content != "contenido uno" {
		t.Errorf("analysis content = %q", p.Analysis.Content)
	}
	if p.Flows.Content != "contenido dos" {
		t.Errorf("flows content = %q", p.Flows.Content)
	}
}

func TestParseTextFewerThanFive(t *testing.T) {
	raw := "### 1. A\nuno\n\n### 2. B\ndos\n"
	p := ParseText(raw)

	if p.Analysis.Content != "uno" || p.Flows.Content != "dos" {
		t.Fatalf("unexpected contents: %q, %q", p.Analysis.Content, p.Flows.Content)
	}
	for _, key := range []models.SectionKey{models.SectionStack, models.SectionImplementation, models.SectionROI} {
		if p.Section(key).Content != "" {
			t.Errorf("section %s should be empty, got %q", key, p.Section(key).Content)
		}
	}
}

func TestParseTextExtraFragmentsDropped(t *testing.T) {
	var b strings.Builder
	for i := 1; i <= 7; i++ {
		fmt.Fprintf(&b, "### %d. Sección\nfragmento\n\n", i)
	}
	p := ParseText(b.String())

	for _, section := range p.OrderedSections() {
		if section.Content != "fragmento" {
			t.Errorf("section %q = %q, want %q", section.Title, section.Content, "fragmento")
		}
	}
}

func TestParseTextTotal(t *testing.T) {
	cases := map[string]string{
		"empty":      "",
		"no headers": "texto sin estructura alguna",
		"whitespace": "   \n\n\t",
	}
	for name, raw := range cases {
		t.Run(name, func(t *testing.T) {
			p := ParseText(raw)
			if !p.IsEmpty() {
				t.Errorf("expected empty plan for %q", raw)
			}
			for _, key := range models.SectionOrder {
				if p.Section(key).Title != models.SectionTitles[key] {
					t.Errorf("section %s missing fixed title", key)
				}
			}
		})
	}
}

func TestParseTextTrimsFragments(t *testing.T) {
	raw := "### 1. A\n\n   contenido con espacios   \n\n\n### 2. B\n\n\n"
	p := ParseText(raw)

	if got := p.Analysis.Content; got != "contenido con espacios" {
		t.Errorf("analysis content = %q", got)
	}
	// The whitespace-only second fragment is skipped entirely, not assigned
	// as an empty section.
	if p.Flows.Content != "" {
		t.Errorf("flows content = %q, want empty", p.Flows.Content)
	}
}

func TestParseNil(t *testing.T) {
	p := Parse(nil)
	if !p.IsEmpty() {
		t.Error("nil result should parse to an empty plan")
	}
}

func TestParsePrefersStructured(t *testing.T) {
	result := &types.PlanResult{
		Text: "### 1. A\nfrom text\n",
		Fields: map[string]string{
			"analysis": "from fields",
			"roi":      "roi from fields",
		},
	}
	p := Parse(result)

	if p.Analysis.Content != "from fields" {
		t.Errorf("analysis content = %q, want structured value", p.Analysis.Content)
	}
	if p.ROI.Content != "roi from fields" {
		t.Errorf("roi content = %q", p.ROI.Content)
	}
	if p.Flows.Content != "" {
		t.Errorf("missing structured field should default empty, got %q", p.Flows.Content)
	}
}

func TestFromFieldsIgnoresUnknownKeys(t *testing.T) {
	p := FromFields(map[string]string{
		"analysis": "a",
		"bogus":    "should be ignored",
	})
	if p.Analysis.Content != "a" {
		t.Errorf("analysis content = %q", p.Analysis.Content)
	}
	for _, key := range []models.SectionKey{models.SectionFlows, models.SectionStack, models.SectionImplementation, models.SectionROI} {
		if p.Section(key).Content != "" {
			t.Errorf("section %s should be empty", key)
		}
	}
}
