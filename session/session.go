// Package session owns the active draft: the current plan, its citation
// sources, the business description and the binding to a saved project. All
// edits happen here in memory; nothing reaches the store until an explicit
// save, so editing stays free and reversible until committed.
package session

import (
	"context"
	"strings"
	"sync"

	"github.com/planora-ai/planora/internal/export"
	"github.com/planora-ai/planora/llm"
	"github.com/planora-ai/planora/models"
	"github.com/planora-ai/planora/plan"
	"github.com/planora-ai/planora/store"
	"github.com/planora-ai/planora/types"
)

// DefaultProjectName is used when a first save supplies no name.
const DefaultProjectName = "Auditoría sin título"

// importedNameSuffix marks imported provenance on the project name.
const importedNameSuffix = " (importado)"

// Session is the audit workflow state machine. A session is either unbound
// (the draft is new and unsaved) or bound to the ID of a saved project that
// the draft mirrors.
type Session struct {
	store    store.ProjectStore
	provider llm.Provider

	plan                *models.Plan
	sources             []models.GroundingSource
	businessDescription string
	currentProjectID    string

	mu      sync.Mutex
	loading bool
}

// New creates an unbound session with an empty draft.
func New(projectStore store.ProjectStore, provider llm.Provider) *Session {
	return &Session{
		store:    projectStore,
		provider: provider,
	}
}

// Plan returns the current draft plan, or nil when no plan has been generated
// or loaded.
func (s *Session) Plan() *models.Plan {
	return s.plan
}

// Sources returns the draft's citation sources.
func (s *Session) Sources() []models.GroundingSource {
	return s.sources
}

// BusinessDescription returns the description the draft was generated from.
func (s *Session) BusinessDescription() string {
	return s.businessDescription
}

// CurrentProjectID returns the bound project ID, or "" when unbound.
func (s *Session) CurrentProjectID() string {
	return s.currentProjectID
}

// Bound reports whether the draft mirrors a saved project.
func (s *Session) Bound() bool {
	return s.currentProjectID != ""
}

// IsLoading reports whether a generation call is in flight.
func (s *Session) IsLoading() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loading
}

func (s *Session) beginGeneration() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.loading {
		return types.NewValidationError("a plan generation is already in progress")
	}
	s.loading = true
	return nil
}

func (s *Session) endGeneration() {
	s.mu.Lock()
	s.loading = false
	s.mu.Unlock()
}

// Generate calls the plan provider for the given description and replaces the
// draft plan and sources wholesale on success. A blank description fails
// immediately without touching any state. On provider failure the draft plan
// stays cleared and a GenerationError is returned; no partial plan is ever
// exposed and no retry is attempted.
func (s *Session) Generate(ctx context.Context, businessDescription string) error {
	if strings.TrimSpace(businessDescription) == "" {
		return types.NewValidationError("describe tu negocio antes de generar un plan")
	}

	if err := s.beginGeneration(); err != nil {
		return err
	}
	defer s.endGeneration()

	// Entering the loading state clears previous content.
	s.plan = nil
	s.sources = nil
	s.businessDescription = businessDescription

	result, err := s.provider.GeneratePlan(ctx, businessDescription)
	if err != nil {
		return &types.GenerationError{Err: err}
	}

	parsed := plan.Parse(result)
	s.plan = &parsed
	if result != nil {
		s.sources = models.FilterSources(result.Sources)
	}
	return nil
}

// UpdateSection replaces the content of one draft section wholesale. The
// store is never touched; only an explicit Save commits edits.
func (s *Session) UpdateSection(key models.SectionKey, content string) error {
	if s.plan == nil {
		return types.NewValidationError("no plan to edit; generate or open a project first")
	}
	if err := s.plan.SetContent(key, content); err != nil {
		return types.NewValidationError("%v", err)
	}
	return nil
}

// Save commits the draft to the store. Unbound sessions create a new project
// (prepended to the list) and bind to it; bound sessions update the existing
// entry in place, keeping its name and list position. The name argument is
// only consulted on first save, falling back to DefaultProjectName when
// blank.
func (s *Session) Save(name string) (models.SavedPlan, error) {
	if s.plan == nil {
		return models.SavedPlan{}, types.NewValidationError("no plan to save; generate one first")
	}

	if s.Bound() {
		updated, err := s.store.UpdateProject(models.SavedPlan{
			ID:                  s.currentProjectID,
			BusinessDescription: s.businessDescription,
			Plan:                *s.plan,
			Sources:             s.sources,
		})
		if err != nil {
			return models.SavedPlan{}, &types.PersistenceError{Op: "update", Err: err}
		}
		return updated, nil
	}

	if strings.TrimSpace(name) == "" {
		name = DefaultProjectName
	}

	created, err := s.store.CreateProject(models.SavedPlan{
		Name:                name,
		BusinessDescription: s.businessDescription,
		Plan:                *s.plan,
		Sources:             s.sources,
	})
	if err != nil {
		return models.SavedPlan{}, &types.PersistenceError{Op: "create", Err: err}
	}

	s.currentProjectID = created.ID
	return created, nil
}

// NewAudit clears the draft and unbinds the session. Saved projects are not
// touched.
func (s *Session) NewAudit() {
	s.plan = nil
	s.sources = nil
	s.businessDescription = ""
	s.currentProjectID = ""
}

// LoadProject replaces the draft with a saved project's content and binds to
// its ID.
func (s *Session) LoadProject(id string) (models.SavedPlan, error) {
	project, err := s.store.GetProject(id)
	if err != nil {
		return models.SavedPlan{}, &types.PersistenceError{Op: "load", Err: err}
	}

	planCopy := project.Plan
	s.plan = &planCopy
	s.sources = project.Sources
	s.businessDescription = project.BusinessDescription
	s.currentProjectID = project.ID
	return project, nil
}

// DeleteProject removes a saved project. Deleting the currently bound
// project also clears the draft, as if a new audit was started. Confirmation
// is the command layer's concern.
func (s *Session) DeleteProject(id string) error {
	if err := s.store.DeleteProject(id); err != nil {
		return &types.PersistenceError{Op: "delete", Err: err}
	}
	if id == s.currentProjectID {
		s.NewAudit()
	}
	return nil
}

// Import decodes an externally supplied payload, stores it as a new project
// with a freshly generated ID and a provenance-marked name, and loads it as
// the active draft. A malformed payload leaves the store untouched.
func (s *Session) Import(data []byte) (models.SavedPlan, error) {
	decoded, err := export.DecodeProject(data)
	if err != nil {
		return models.SavedPlan{}, err
	}

	name := decoded.Name
	if strings.TrimSpace(name) == "" {
		name = DefaultProjectName
	}
	if !strings.HasSuffix(name, importedNameSuffix) {
		name += importedNameSuffix
	}

	// Empty ID forces the store to mint a fresh one, so an import can never
	// collide with an existing project.
	created, err := s.store.CreateProject(models.SavedPlan{
		Name:                name,
		BusinessDescription: decoded.BusinessDescription,
		Plan:                decoded.Plan,
		Sources:             decoded.Sources,
	})
	if err != nil {
		return models.SavedPlan{}, &types.PersistenceError{Op: "import", Err: err}
	}

	planCopy := created.Plan
	s.plan = &planCopy
	s.sources = created.Sources
	s.businessDescription = created.BusinessDescription
	s.currentProjectID = created.ID
	return created, nil
}

// Export serializes a saved project and returns the payload with its
// deterministic filename.
func (s *Session) Export(id string) ([]byte, string, error) {
	project, err := s.store.GetProject(id)
	if err != nil {
		return nil, "", &types.PersistenceError{Op: "export", Err: err}
	}

	data, err := export.EncodeProject(project)
	if err != nil {
		return nil, "", err
	}
	return data, export.FileName(project), nil
}

// Draft is a snapshot of the session's in-memory state, used by the command
// layer to carry the draft across process boundaries.
type Draft struct {
	Plan                *models.Plan             `json:"plan"`
	Sources             []models.GroundingSource `json:"sources,omitempty"`
	BusinessDescription string                   `json:"businessDescription"`
	CurrentProjectID    string                   `json:"currentProjectId,omitempty"`
}

// Snapshot captures the current draft state.
func (s *Session) Snapshot() Draft {
	return Draft{
		Plan:                s.plan,
		Sources:             s.sources,
		BusinessDescription: s.businessDescription,
		CurrentProjectID:    s.currentProjectID,
	}
}

// Restore replaces the draft state from a snapshot.
func (s *Session) Restore(draft Draft) {
	s.plan = draft.Plan
	if s.plan != nil {
		s.plan.Normalize()
	}
	s.sources = models.FilterSources(draft.Sources)
	s.businessDescription = draft.BusinessDescription
	s.currentProjectID = draft.CurrentProjectID
}
