package export

import (
	"fmt"
	"io"

	"github.com/go-pdf/fpdf"

	"github.com/planora-ai/planora/models"
)

const pdfTitle = "Plan de Automatización de Negocios"

// WritePDF renders a project as a paginated report: document title, business
// description, then each section title followed by its word-wrapped content
// in canonical order. Sections with no content are skipped.
func WritePDF(w io.Writer, project models.SavedPlan) error {
	doc := fpdf.New("P", "mm", "A4", "")
	tr := doc.UnicodeTranslatorFromDescriptor("")
	doc.SetMargins(20, 20, 20)
	doc.SetAutoPageBreak(true, 20)
	doc.AddPage()

	doc.SetFont("Helvetica", "B", 22)
	doc.SetTextColor(20, 20, 20)
	doc.MultiCell(0, 10, tr(pdfTitle), "", "L", false)
	doc.Ln(2)

	if project.BusinessDescription != "" {
		doc.SetFont("Helvetica", "I", 11)
		doc.SetTextColor(90, 90, 90)
		doc.MultiCell(0, 6, tr(project.BusinessDescription), "", "L", false)
		doc.Ln(4)
	}

	for _, section := range project.Plan.OrderedSections() {
		if section.Title == "" || section.Content == "" {
			continue
		}
		doc.SetFont("Helvetica", "B", 16)
		doc.SetTextColor(0, 100, 160)
		doc.MultiCell(0, 8, tr(section.Title), "", "L", false)
		doc.Ln(1)

		doc.SetFont("Helvetica", "", 11)
		doc.SetTextColor(20, 20, 20)
		doc.MultiCell(0, 6, tr(section.Content), "", "L", false)
		doc.Ln(4)
	}

	if len(project.Sources) > 0 {
		doc.SetFont("Helvetica", "B", 16)
		doc.SetTextColor(0, 100, 160)
		doc.MultiCell(0, 8, tr("Fuentes de Información"), "", "L", false)
		doc.Ln(1)

		doc.SetFont("Helvetica", "", 10)
		doc.SetTextColor(20, 20, 20)
		for _, source := range project.Sources {
			doc.MultiCell(0, 5, tr(fmt.Sprintf("%s — %s", source.Title, source.URI)), "", "L", false)
		}
	}

	if err := doc.Output(w); err != nil {
		return fmt.Errorf("failed to render PDF: %w", err)
	}
	return nil
}
