// Package storage keeps the files the tool produces: sessions, scene
// exports, rendered frames and GLB snapshots.
package storage

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/logger"
)

// SessionSuffix is appended to a model path to name its session file
const SessionSuffix = ".pieces.json"

// Store resolves relative names against a root directory. Absolute paths
// are used as given.
type Store struct {
	root string
}

// New creates the root directory if needed
func New(root string) (*Store, error) {
	if root == "" {
		root = "."
	}
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve storage root %s: %w", root, err)
	}
	if err := os.MkdirAll(abs, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create storage root: %w", err)
	}
	logger.Debug("storage ready", zap.String("root", abs))
	return &Store{root: abs}, nil
}

// Root returns the absolute root directory
func (s *Store) Root() string {
	return s.root
}

// Path resolves a name against the root
func (s *Store) Path(name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(s.root, name)
}

// SessionPath returns the session file kept next to a model. Relative
// model paths are resolved against the working directory, never the root.
func SessionPath(model string) string {
	if abs, err := filepath.Abs(model); err == nil {
		model = abs
	}
	return model + SessionSuffix
}

// Exists reports whether a stored file exists
func (s *Store) Exists(name string) bool {
	_, err := os.Stat(s.Path(name))
	return err == nil
}

// WriteFile writes data atomically via a temporary file in the same directory
func (s *Store) WriteFile(name string, data []byte) error {
	return s.WriteWith(name, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	})
}

// WriteWith streams a file through write and renames it into place only
// when write succeeds
func (s *Store) WriteWith(name string, write func(io.Writer) error) error {
	path := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if err := write(tmp); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to rename temp file: %w", err)
	}

	logger.Debug("file stored", zap.String("file", path))
	return nil
}

// ReadFile reads a stored file
func (s *Store) ReadFile(name string) ([]byte, error) {
	return os.ReadFile(s.Path(name))
}

// WriteJSON stores v as indented JSON
func (s *Store) WriteJSON(name string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", name, err)
	}
	return s.WriteFile(name, data)
}

// ReadJSON decodes a stored JSON file into v. A missing file is reported
// with os.ErrNotExist.
func (s *Store) ReadJSON(name string, v any) error {
	data, err := s.ReadFile(name)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return err
		}
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := json.Unmarshal(data, v); err != nil {
		return fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return nil
}

// Remove deletes a stored file. Removing a missing file is not an error.
func (s *Store) Remove(name string) error {
	if err := os.Remove(s.Path(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
