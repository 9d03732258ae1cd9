package store

import "github.com/planora-ai/planora/models"

// ProjectStore defines the contract for saved-plan persistence. The store
// holds an ordered list of projects (most-recent-first) and persists it
// wholesale on every mutation.
type ProjectStore interface {
	// Initialize configures the store (data file path, format) and loads any
	// existing project list. It must be called before any other operation.
	Initialize(config map[string]string) error

	// ListProjects returns the persisted projects in stored order. A missing
	// or corrupted data file yields an empty list, never an error: corrupted
	// history degrades to "no history" instead of crashing.
	ListProjects() ([]models.SavedPlan, error)

	// GetProject retrieves a project by its unique identifier.
	GetProject(id string) (models.SavedPlan, error)

	// CreateProject adds a new project at the front of the list. An empty ID
	// is replaced with a freshly generated one; the last-modified timestamp
	// is set by the store. Returns the stored project.
	CreateProject(project models.SavedPlan) (models.SavedPlan, error)

	// UpdateProject replaces the content fields of the existing project with
	// the same ID, refreshing its timestamp. The project's position in the
	// list is unchanged.
	UpdateProject(project models.SavedPlan) (models.SavedPlan, error)

	// DeleteProject removes the project with the given ID.
	DeleteProject(id string) error

	// DeleteAllProjects removes every project. Destructive; the command layer
	// is responsible for confirmation.
	DeleteAllProjects() error

	// Backup copies the current data file to the destination path.
	Backup(destinationPath string) error

	// Restore replaces the current data with the file at the source path.
	Restore(sourcePath string) error

	// Close releases held resources such as file locks.
	Close() error
}
