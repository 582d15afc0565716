package app

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/internal/storage"
	"github.com/philipparndt/stlpieces/pkg/analysis"
	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/mesh"
	"github.com/philipparndt/stlpieces/pkg/pieces"
	"github.com/philipparndt/stlpieces/pkg/scene"
	"github.com/philipparndt/stlpieces/pkg/viewer"
)

// Session is one model being configured: its components and the piece
// store that edits them
type Session struct {
	ID         string
	Source     string
	Digest     uint64
	Components []mesh.Component
	Store      *pieces.Store
	// Restored is set when the configuration came from a saved session
	Restored bool
}

// sessionFile is the persisted form of a session
type sessionFile struct {
	ID       string          `json:"id"`
	Source   string          `json:"source"`
	Digest   string          `json:"digest"`
	Selected *int            `json:"selected,omitempty"`
	Camera   pieces.Camera   `json:"camera"`
	Pieces   []pieces.Config `json:"pieces"`
	SavedAt  time.Time       `json:"saved_at"`
}

func newSession(source string, digest uint64, components []mesh.Component) *Session {
	return &Session{
		ID:         uuid.NewString(),
		Source:     source,
		Digest:     digest,
		Components: components,
		Store:      pieces.NewStore(pieces.Initialize(components)),
	}
}

func formatDigest(d uint64) string {
	return fmt.Sprintf("%016x", d)
}

func (s *Session) file() sessionFile {
	f := sessionFile{
		ID:      s.ID,
		Source:  s.Source,
		Digest:  formatDigest(s.Digest),
		Camera:  s.Store.Camera(),
		Pieces:  s.Store.Configs(),
		SavedAt: time.Now().UTC(),
	}
	if selected, ok := s.Store.Selected(); ok {
		f.Selected = &selected
	}
	return f
}

// restore adopts a saved configuration when it was made for the same model
// content. It reports whether anything was restored.
func (s *Session) restore(f *sessionFile) bool {
	digest, err := strconv.ParseUint(f.Digest, 16, 64)
	if err != nil || digest != s.Digest || len(f.Pieces) != len(s.Components) {
		return false
	}

	selected := -1
	if f.Selected != nil {
		selected = *f.Selected
	}
	camera := f.Camera

	if f.ID != "" {
		s.ID = f.ID
	}
	s.Store = pieces.RestoreStore(f.Pieces, selected, &camera)
	s.Restored = true
	return true
}

// loadSession reads the saved session of a model. A missing file is not an
// error and returns nil.
func (a *App) loadSession(source string) (*sessionFile, error) {
	var f sessionFile
	if err := a.Storage.ReadJSON(storage.SessionPath(source), &f); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, err
	}
	return &f, nil
}

// Update runs one store update cycle
func (s *Session) Update(a pieces.Action) (pieces.Result, error) {
	res, err := s.Store.Update(a)
	if err != nil {
		return res, err
	}
	logger.Debug("piece updated",
		zap.String("session", s.ID),
		zap.Stringer("trigger", a.Trigger),
		zap.Int("piece", res.Selected),
		zap.Bool("updated", res.Updated))
	return res, nil
}

// Export builds the scene of the current configuration
func (s *Session) Export() (*scene.Export, error) {
	return scene.Build(s.Store.Configs(), s.Components)
}

// Bounds returns the bounding box of the whole model
func (s *Session) Bounds() geometry.BoundingBox {
	return mesh.Bounds(s.Components)
}

// Frame returns the configurator view with the selected piece highlighted
func (s *Session) Frame() *viewer.Frame {
	selected, ok := s.Store.Selected()
	return viewer.FrameFromPieces(s.Components, s.Store.Configs(), selected, ok)
}

// Stats measures every piece
func (s *Session) Stats() []*analysis.MeasurementResult {
	out := make([]*analysis.MeasurementResult, len(s.Components))
	for i, c := range s.Components {
		out[i] = analysis.AnalyzeComponent(c)
	}
	return out
}
