package store

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/planora-ai/planora/models"
	yaml "gopkg.in/yaml.v3"
)

const (
	defaultDataFile   = "projects.json"
	dataFileKey       = "dataFile"
	dataFileFormatKey = "dataFileFormat"
	defaultDataFormat = "json"
	formatJSON        = "json"
	formatYAML        = "yaml"
	formatTOML        = "toml"
	checksumSuffix    = ".checksum"
)

// FileProjectStore implements ProjectStore on a single data file. It supports
// JSON, YAML and TOML formats, guards the file with flock, and verifies a
// sha256 checksum sidecar. Every mutation rewrites the full list atomically
// (write to temp file, then rename).
type FileProjectStore struct {
	filePath string
	projects []models.SavedPlan
	flk      *flock.Flock
	format   string
}

// NewFileProjectStore creates an uninitialized store; Initialize must be
// called before use.
func NewFileProjectStore() *FileProjectStore {
	return &FileProjectStore{}
}

// Initialize configures the data file path and format, establishes the file
// lock and loads any existing project list.
func (s *FileProjectStore) Initialize(config map[string]string) error {
	if val, ok := config[dataFileKey]; ok && val != "" {
		s.filePath = val
	} else {
		s.filePath = defaultDataFile
	}

	if val, ok := config[dataFileFormatKey]; ok && val != "" {
		formatLower := strings.ToLower(val)
		switch formatLower {
		case formatJSON, formatYAML, formatTOML:
			s.format = formatLower
		default:
			return fmt.Errorf("unsupported dataFileFormat: %s. Supported formats are json, yaml, toml", val)
		}
	} else {
		s.format = defaultDataFormat
	}

	if s.filePath == defaultDataFile && s.format != formatJSON {
		ext := filepath.Ext(s.filePath)
		s.filePath = strings.TrimSuffix(s.filePath, ext) + "." + s.format
	}

	dir := filepath.Dir(s.filePath)
	if dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}

	s.flk = flock.New(s.filePath)

	locked, err := s.flk.TryLock()
	if err != nil {
		return fmt.Errorf("failed to acquire initial lock for %s: %w", s.filePath, err)
	}
	if !locked {
		if err := s.flk.Lock(); err != nil {
			return fmt.Errorf("failed to acquire blocking initial lock for %s: %w", s.filePath, err)
		}
	}
	defer func() { _ = s.flk.Unlock() }()

	s.projects = nil
	return s.loadProjectsFromFileInternal()
}

func calculateChecksum(data []byte) string {
	hasher := sha256.New()
	hasher.Write(data)
	return hex.EncodeToString(hasher.Sum(nil))
}

// loadProjectsFromFileInternal reads the project list from disk. The caller
// must hold the lock. A missing, empty, corrupted or checksum-mismatched file
// degrades to an empty list rather than failing the caller.
func (s *FileProjectStore) loadProjectsFromFileInternal() error {
	checksumFilePath := s.filePath + checksumSuffix

	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			s.projects = []models.SavedPlan{}
			_ = os.Remove(checksumFilePath)
			f, createErr := os.OpenFile(s.filePath, os.O_CREATE|os.O_RDWR, 0o644)
			if createErr != nil {
				return fmt.Errorf("failed to create data file %s: %w", s.filePath, createErr)
			}
			_ = f.Close()
			_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
			return nil
		}
		return fmt.Errorf("failed to read data file %s: %w", s.filePath, err)
	}

	if len(data) == 0 {
		_ = os.WriteFile(checksumFilePath, []byte(calculateChecksum([]byte{})), 0o644)
		s.projects = []models.SavedPlan{}
		return nil
	}

	if expectedChecksumBytes, readErr := os.ReadFile(checksumFilePath); readErr == nil {
		expectedChecksum := strings.TrimSpace(string(expectedChecksumBytes))
		if calculateChecksum(data) != expectedChecksum {
			// Tampered or torn write. History degrades to empty rather than
			// blocking every subsequent command.
			s.projects = []models.SavedPlan{}
			return nil
		}
	}

	var list models.ProjectList
	var unmarshalErr error
	switch s.format {
	case formatJSON:
		unmarshalErr = json.Unmarshal(data, &list)
	case formatYAML:
		unmarshalErr = yaml.Unmarshal(data, &list)
	case formatTOML:
		unmarshalErr = toml.Unmarshal(data, &list)
	default:
		return fmt.Errorf("unsupported data format for loading: %s", s.format)
	}
	if unmarshalErr != nil {
		s.projects = []models.SavedPlan{}
		return nil
	}

	s.projects = list.Projects
	if s.projects == nil {
		s.projects = []models.SavedPlan{}
	}
	return nil
}

// saveProjectsToFileInternal writes the full list and its checksum. The
// caller must hold the lock.
func (s *FileProjectStore) saveProjectsToFileInternal() error {
	list := models.ProjectList{
		Projects:   s.projects,
		TotalCount: len(s.projects),
	}

	var marshaledData []byte
	var err error

	switch s.format {
	case formatJSON:
		marshaledData, err = json.MarshalIndent(list, "", "  ")
	case formatYAML:
		marshaledData, err = yaml.Marshal(list)
	case formatTOML:
		buf := new(bytes.Buffer)
		if encodeErr := toml.NewEncoder(buf).Encode(list); encodeErr == nil {
			marshaledData = buf.Bytes()
		} else {
			err = fmt.Errorf("failed to marshal TOML: %w", encodeErr)
		}
	default:
		return fmt.Errorf("unsupported data format for saving: %s", s.format)
	}

	if err != nil {
		return fmt.Errorf("failed to marshal projects to %s: %w", s.format, err)
	}

	tempFilePath := s.filePath + ".tmp"
	checksumFilePath := s.filePath + checksumSuffix
	tempChecksumFilePath := checksumFilePath + ".tmp"

	defer func() { _ = os.Remove(tempFilePath) }()
	defer func() { _ = os.Remove(tempChecksumFilePath) }()

	if err := os.WriteFile(tempFilePath, marshaledData, 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary data file %s: %w", tempFilePath, err)
	}

	if err := os.WriteFile(tempChecksumFilePath, []byte(calculateChecksum(marshaledData)), 0o644); err != nil {
		return fmt.Errorf("failed to write to temporary checksum file %s: %w", tempChecksumFilePath, err)
	}

	if err := os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to rename temporary data file %s to %s: %w", tempFilePath, s.filePath, err)
	}
	if err := os.Rename(tempChecksumFilePath, checksumFilePath); err != nil {
		return fmt.Errorf("data file %s updated but checksum file %s was not: %w", s.filePath, checksumFilePath, err)
	}

	return nil
}

func generateID() string {
	return uuid.NewString()
}

func (s *FileProjectStore) indexOf(id string) int {
	for i, p := range s.projects {
		if p.ID == id {
			return i
		}
	}
	return -1
}

// ListProjects returns the stored projects in order, most recent creation
// first.
func (s *FileProjectStore) ListProjects() ([]models.SavedPlan, error) {
	if err := s.flk.Lock(); err != nil {
		return nil, fmt.Errorf("failed to acquire lock for ListProjects: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadProjectsFromFileInternal(); err != nil {
		return nil, fmt.Errorf("failed to load projects for ListProjects: %w", err)
	}

	out := make([]models.SavedPlan, len(s.projects))
	copy(out, s.projects)
	return out, nil
}

// GetProject retrieves a project by ID.
func (s *FileProjectStore) GetProject(id string) (models.SavedPlan, error) {
	if err := s.flk.Lock(); err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to acquire lock for GetProject: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadProjectsFromFileInternal(); err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to load projects for GetProject: %w", err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return models.SavedPlan{}, fmt.Errorf("project with ID %s not found", id)
	}
	return s.projects[idx], nil
}

// CreateProject prepends a new project and persists the full list. An empty
// ID gets a fresh UUID; a provided ID must not collide with the store.
func (s *FileProjectStore) CreateProject(project models.SavedPlan) (models.SavedPlan, error) {
	if err := s.flk.Lock(); err != nil {
		return models.SavedPlan{}, fmt.Errorf("could not lock file for create: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadProjectsFromFileInternal(); err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to reload projects before create: %w", err)
	}

	if project.ID == "" {
		project.ID = generateID()
	} else if s.indexOf(project.ID) >= 0 {
		return models.SavedPlan{}, fmt.Errorf("project with ID '%s' already exists", project.ID)
	}

	project.Timestamp = time.Now().UnixMilli()
	project.Plan.Normalize()
	project.Sources = models.FilterSources(project.Sources)

	if err := models.ValidateStruct(project); err != nil {
		return models.SavedPlan{}, fmt.Errorf("validation failed for new project: %w", err)
	}

	s.projects = append([]models.SavedPlan{project}, s.projects...)

	if err := s.saveProjectsToFileInternal(); err != nil {
		// Reload from the untouched file so memory and disk stay consistent.
		_ = s.loadProjectsFromFileInternal()
		return models.SavedPlan{}, fmt.Errorf("failed to save new project: %w", err)
	}

	return project, nil
}

// UpdateProject replaces the stored entry with the same ID in place and
// refreshes its timestamp. Position in the list is preserved.
func (s *FileProjectStore) UpdateProject(project models.SavedPlan) (models.SavedPlan, error) {
	if err := s.flk.Lock(); err != nil {
		return models.SavedPlan{}, fmt.Errorf("could not lock file for update: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadProjectsFromFileInternal(); err != nil {
		return models.SavedPlan{}, fmt.Errorf("failed to reload projects before update: %w", err)
	}

	idx := s.indexOf(project.ID)
	if idx < 0 {
		return models.SavedPlan{}, fmt.Errorf("project with ID '%s' not found", project.ID)
	}

	existing := s.projects[idx]
	if project.Name == "" {
		project.Name = existing.Name
	}
	project.Timestamp = time.Now().UnixMilli()
	project.Plan.Normalize()
	project.Sources = models.FilterSources(project.Sources)

	if err := models.ValidateStruct(project); err != nil {
		return models.SavedPlan{}, fmt.Errorf("validation failed for updated project: %w", err)
	}

	s.projects[idx] = project

	if err := s.saveProjectsToFileInternal(); err != nil {
		s.projects[idx] = existing
		return models.SavedPlan{}, fmt.Errorf("failed to save updated project: %w", err)
	}

	return project, nil
}

// DeleteProject removes the project with the given ID and persists the list.
func (s *FileProjectStore) DeleteProject(id string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("could not lock file for delete: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	if err := s.loadProjectsFromFileInternal(); err != nil {
		return fmt.Errorf("failed to reload projects before delete: %w", err)
	}

	idx := s.indexOf(id)
	if idx < 0 {
		return fmt.Errorf("project with ID '%s' not found", id)
	}

	s.projects = append(s.projects[:idx], s.projects[idx+1:]...)

	if err := s.saveProjectsToFileInternal(); err != nil {
		_ = s.loadProjectsFromFileInternal()
		return fmt.Errorf("failed to save after deleting project: %w", err)
	}

	return nil
}

// DeleteAllProjects wipes the store.
func (s *FileProjectStore) DeleteAllProjects() error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for DeleteAllProjects: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	s.projects = []models.SavedPlan{}

	if err := s.saveProjectsToFileInternal(); err != nil {
		return fmt.Errorf("failed to clear data file by saving empty project list: %w", err)
	}
	return nil
}

// Backup copies the current data file to the destination path.
func (s *FileProjectStore) Backup(destinationPath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for backup: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	input, err := os.ReadFile(s.filePath)
	if err != nil {
		return fmt.Errorf("failed to read source file %s for backup: %w", s.filePath, err)
	}

	if err = os.WriteFile(destinationPath, input, 0o644); err != nil {
		return fmt.Errorf("failed to write backup file to %s: %w", destinationPath, err)
	}
	return nil
}

// Restore replaces the current data with the file at the source path. The
// checksum sidecar is removed; the next save regenerates it.
func (s *FileProjectStore) Restore(sourcePath string) error {
	if err := s.flk.Lock(); err != nil {
		return fmt.Errorf("failed to acquire lock for restore: %w", err)
	}
	defer func() { _ = s.flk.Unlock() }()

	sourceData, err := os.ReadFile(sourcePath)
	if err != nil {
		return fmt.Errorf("failed to read source backup file %s: %w", sourcePath, err)
	}

	tempFilePath := s.filePath + ".tmp_restore"
	defer func() { _ = os.Remove(tempFilePath) }()

	if err = os.WriteFile(tempFilePath, sourceData, 0o644); err != nil {
		return fmt.Errorf("failed to write restored data to temporary file %s: %w", tempFilePath, err)
	}

	if err = os.Rename(tempFilePath, s.filePath); err != nil {
		return fmt.Errorf("failed to atomically replace file %s with restored data from %s: %w", s.filePath, sourcePath, err)
	}

	_ = os.Remove(s.filePath + checksumSuffix)

	return s.loadProjectsFromFileInternal()
}

// Close releases the file lock.
func (s *FileProjectStore) Close() error {
	if s.flk != nil {
		return s.flk.Unlock()
	}
	return nil
}
