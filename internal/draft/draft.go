// Package draft carries the active draft between CLI invocations. The
// session keeps the draft purely in memory; this store is the command-layer
// shim that writes the snapshot into the workspace directory after each
// command and restores it before the next one.
package draft

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"

	"github.com/planora-ai/planora/session"
)

// Store reads and writes the draft state file.
type Store struct {
	fs   afero.Fs
	path string
}

// NewStore creates a draft store at the given path on the given filesystem.
func NewStore(fs afero.Fs, path string) *Store {
	return &Store{fs: fs, path: path}
}

// NewOSStore creates a draft store on the real filesystem.
func NewOSStore(path string) *Store {
	return NewStore(afero.NewOsFs(), path)
}

// Load returns the stored draft. A missing or unreadable file yields an
// empty draft: a corrupted draft degrades to "nothing in progress" instead
// of blocking every command.
func (s *Store) Load() (session.Draft, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return session.Draft{}, nil
		}
		return session.Draft{}, fmt.Errorf("failed to read draft file %s: %w", s.path, err)
	}

	var d session.Draft
	if err := json.Unmarshal(data, &d); err != nil {
		return session.Draft{}, nil
	}
	return d, nil
}

// Save persists the draft snapshot, creating the parent directory if needed.
func (s *Store) Save(d session.Draft) error {
	dir := filepath.Dir(s.path)
	if dir != "." && dir != "" {
		if err := s.fs.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create draft directory %s: %w", dir, err)
		}
	}

	data, err := json.MarshalIndent(d, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode draft: %w", err)
	}

	if err := afero.WriteFile(s.fs, s.path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write draft file %s: %w", s.path, err)
	}
	return nil
}

// Clear removes the draft file. A missing file is not an error.
func (s *Store) Clear() error {
	err := s.fs.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove draft file %s: %w", s.path, err)
	}
	return nil
}
