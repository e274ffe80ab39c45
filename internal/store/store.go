// Package store persists all flowlyfe data in a single flat JSON file: the
// inbox, the triaged buckets and the journal. There is no database; the file
// is read once at startup and rewritten atomically on every save.
package store

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Store owns the state file. It is not safe for concurrent use; the CLI is
// strictly single-threaded.
type Store struct {
	logger *slog.Logger
	path   string
	state  *State
}

// Open loads the state file at path, migrating older document shapes to the
// current schema. A missing file starts a fresh, empty state.
func Open(logger *slog.Logger, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("state file path is empty")
	}

	s := &Store{logger: logger, path: path}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			logger.Info("No state file found, starting fresh.", "file", path)
			s.state = emptyState()
			return s, nil
		}
		return nil, fmt.Errorf("failed to read state file: %w", err)
	}

	state, migrated, err := decodeState(data)
	if err != nil {
		return nil, fmt.Errorf("failed to load state from %s: %w", path, err)
	}
	s.state = state

	if migrated {
		logger.Info("Migrated state file to current schema.", "file", path, "version", SchemaVersion)
		if err := s.Save(); err != nil {
			return nil, fmt.Errorf("failed to persist migrated state: %w", err)
		}
	}
	return s, nil
}

// State exposes the in-memory document for reading and mutation. Callers
// mutate it directly and then Save.
func (s *Store) State() *State {
	return s.state
}

// Save writes the state atomically: temp file in the same directory, fsync,
// chmod 0600, rename over the target.
func (s *Store) Save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return fmt.Errorf("failed to create state directory: %w", err)
	}

	data, err := json.MarshalIndent(s.state, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal state: %w", err)
	}

	tmp, err := os.CreateTemp(dir, ".flowlyfe-state-*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp state file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write temp state file: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to sync temp state file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp state file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return fmt.Errorf("failed to chmod temp state file: %w", err)
	}
	if err := os.Rename(tmpName, s.path); err != nil {
		return fmt.Errorf("failed to replace state file: %w", err)
	}

	s.logger.Debug("State saved.", "file", s.path)
	return nil
}
