// Package export converts saved projects to and from transferable files:
// JSON for interchange and PDF for reports.
package export

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/types"
)

// EncodeProject serializes one project verbatim for file transfer.
func EncodeProject(project models.SavedPlan) ([]byte, error) {
	data, err := json.MarshalIndent(project, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to encode project: %w", err)
	}
	return data, nil
}

// importPayload mirrors SavedPlan with pointer fields so absent keys can be
// told apart from zero values. Import payloads are externally supplied and
// never trusted as-is.
type importPayload struct {
	ID                  *string                  `json:"id"`
	Name                string                   `json:"name"`
	Timestamp           int64                    `json:"timestamp"`
	BusinessDescription string                   `json:"businessDescription"`
	Plan                *models.Plan             `json:"plan"`
	Sources             []models.GroundingSource `json:"sources"`
}

// DecodeProject validates and decodes an import payload. A payload missing
// its id or plan is rejected with an ImportFormatError and nothing is
// mutated. Section titles are reset to the fixed constants and sources with
// empty URIs are dropped, so the decoded project always satisfies the model
// invariants regardless of what the file carried.
func DecodeProject(data []byte) (models.SavedPlan, error) {
	if len(strings.TrimSpace(string(data))) == 0 {
		return models.SavedPlan{}, &types.ImportFormatError{Reason: "file is empty"}
	}

	var payload importPayload
	if err := json.Unmarshal(data, &payload); err != nil {
		return models.SavedPlan{}, &types.ImportFormatError{Reason: fmt.Sprintf("not valid JSON: %v", err)}
	}

	if payload.ID == nil || strings.TrimSpace(*payload.ID) == "" {
		return models.SavedPlan{}, &types.ImportFormatError{Reason: "missing required field 'id'"}
	}
	if payload.Plan == nil {
		return models.SavedPlan{}, &types.ImportFormatError{Reason: "missing required field 'plan'"}
	}

	project := models.SavedPlan{
		ID:                  *payload.ID,
		Name:                payload.Name,
		Timestamp:           payload.Timestamp,
		BusinessDescription: payload.BusinessDescription,
		Plan:                *payload.Plan,
		Sources:             models.FilterSources(payload.Sources),
	}
	project.Plan.Normalize()
	return project, nil
}

// FileName builds the deterministic JSON export filename from a project's
// name and id.
func FileName(project models.SavedPlan) string {
	return fmt.Sprintf("%s-%s.json", Slug(project.Name), shortID(project.ID))
}

// PDFFileName builds the deterministic PDF export filename.
func PDFFileName(project models.SavedPlan) string {
	return fmt.Sprintf("%s-%s.pdf", Slug(project.Name), shortID(project.ID))
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
