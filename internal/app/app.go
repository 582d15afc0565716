// Package app ties loading, splitting, sessions, exports and playback
// together for the command line and desktop front ends.
package app

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/internal/storage"
	"github.com/philipparndt/stlpieces/pkg/mesh"
	"github.com/philipparndt/stlpieces/pkg/scene"
	"github.com/philipparndt/stlpieces/pkg/watcher"
)

// App holds the services shared by all sessions of one process
type App struct {
	Config   *config.Config
	Storage  *storage.Store
	Splitter *mesh.Splitter
}

// New wires an App from an already loaded config and storage
func New(cfg *config.Config, store *storage.Store) *App {
	return &App{
		Config:   cfg,
		Storage:  store,
		Splitter: mesh.NewSplitter(cfg.Split.WeldEpsilon),
	}
}

// Open loads a model and restores its saved session when the model did not
// change since it was saved
func (a *App) Open(ctx context.Context, source string) (*Session, error) {
	s, err := a.Split(ctx, source)
	if err != nil {
		return nil, err
	}

	saved, err := a.loadSession(source)
	if err != nil {
		logger.Warn("ignoring saved session", zap.String("file", source), zap.Error(err))
		return s, nil
	}
	if saved == nil {
		return s, nil
	}

	if !s.restore(saved) {
		logger.Info("model changed since last session, starting fresh", zap.String("file", source))
	}
	return s, nil
}

// Split loads and splits a model into a fresh session
func (a *App) Split(ctx context.Context, source string) (*Session, error) {
	data, err := loadSource(ctx, source)
	if err != nil {
		return nil, err
	}

	components, cached, err := a.Splitter.Split(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", source, err)
	}

	s := newSession(source, a.Splitter.Digest(data), components)
	logger.Info("session ready",
		zap.String("session", s.ID),
		zap.String("file", source),
		zap.Int("pieces", len(components)),
		zap.Bool("cached", cached))
	return s, nil
}

// Save persists the session next to its model
func (a *App) Save(s *Session) error {
	path := storage.SessionPath(s.Source)
	if err := a.Storage.WriteJSON(path, s.file()); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}
	logger.Debug("session saved", zap.String("file", path))
	return nil
}

// ExportName returns the default scene file name for a model
func (a *App) ExportName(source string) string {
	base := strings.TrimSuffix(filepath.Base(source), filepath.Ext(source))
	name := base + ".scene.json"
	if a.Config.Export.Compress {
		name += ".zst"
	}
	return name
}

// Export writes the scene of a session into storage and returns its path.
// An empty name uses ExportName; a name ending in .zst is compressed.
func (a *App) Export(s *Session, name string) (string, error) {
	e, err := s.Export()
	if err != nil {
		return "", err
	}

	if name == "" {
		name = a.ExportName(s.Source)
	}
	encode := scene.Encode
	if scene.IsCompressedPath(name) {
		encode = scene.EncodeCompressed
	}

	if err := a.Storage.WriteWith(name, func(w io.Writer) error {
		return encode(w, e)
	}); err != nil {
		return "", fmt.Errorf("failed to export scene: %w", err)
	}

	path := a.Storage.Path(name)
	logger.Info("scene exported",
		zap.String("session", s.ID),
		zap.String("file", path),
		zap.Int("pieces", e.Scene.TotalPieces))
	return path, nil
}

// Watch calls onChange after a model source or one of its OpenSCAD
// dependencies changed. The caller closes the returned watcher.
func (a *App) Watch(source string, onChange func(string)) (*watcher.FileWatcher, error) {
	files, err := WatchList(source)
	if err != nil {
		return nil, err
	}

	fw, err := watcher.NewFileWatcher(a.Config.Viewer.Debounce)
	if err != nil {
		return nil, fmt.Errorf("failed to create file watcher: %w", err)
	}
	if err := fw.Watch(files, onChange); err != nil {
		fw.Close()
		return nil, fmt.Errorf("failed to watch files: %w", err)
	}

	fw.Start()
	logger.Info("watching for changes", zap.Strings("files", files))
	return fw, nil
}
