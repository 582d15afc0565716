package app

import (
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/glb"
	"github.com/philipparndt/stlpieces/pkg/pieces"
	"github.com/philipparndt/stlpieces/pkg/playback"
	"github.com/philipparndt/stlpieces/pkg/scene"
	"github.com/philipparndt/stlpieces/pkg/viewer"
)

// Playback is the state of one playback viewer: the builder, the last
// buffer and the progress line
type Playback struct {
	Path    string
	Builder *playback.Builder
	Buffer  *playback.Buffer
	Status  string
	bounds  geometry.BoundingBox
}

// OpenPlayback loads a scene export for playback
func (a *App) OpenPlayback(path string) (*Playback, error) {
	e, err := scene.Read(path)
	if err != nil {
		return nil, err
	}
	return NewPlayback(path, e)
}

// NewPlayback prepares playback of a decoded scene
func NewPlayback(path string, e *scene.Export) (*Playback, error) {
	b, err := playback.FromExport(e)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	bounds := geometry.NewBoundingBox()
	for _, p := range e.Scene.Pieces {
		bounds.Union(p.Component().Bounds())
	}

	logger.Info("playback ready", zap.String("file", path), zap.Int("pieces", b.Total()))
	return &Playback{
		Path:    path,
		Builder: b,
		Buffer:  b.Current(),
		bounds:  bounds,
	}, nil
}

// Step applies one control. At a boundary nothing changes and false is
// returned.
func (p *Playback) Step(step playback.Step) bool {
	buf, ok := p.Builder.Apply(step)
	if !ok {
		logger.Debug("playback at boundary", zap.Int("generated", p.Builder.Generated()))
		return false
	}
	p.Buffer = buf
	p.Status = p.Builder.Status(step)
	return true
}

// Bounds returns the bounding box of the complete scene
func (p *Playback) Bounds() geometry.BoundingBox {
	return p.bounds
}

// Frame returns the current buffer as a drawable frame
func (p *Playback) Frame() *viewer.Frame {
	return viewer.FrameFromBuffer(p.Buffer)
}

// SaveGLB writes the current buffer into storage as GLB
func (a *App) SaveGLB(p *Playback, name string) (string, error) {
	err := a.Storage.WriteWith(name, func(w io.Writer) error {
		return glb.Encode(w, p.Buffer)
	})
	if err != nil {
		return "", err
	}

	path := a.Storage.Path(name)
	logger.Info("glb written", zap.String("file", path), zap.Int("pieces", p.Buffer.PieceCount()))
	return path, nil
}

// RenderFrame rasterizes a frame with the configured size and background
// and stores it as PNG
func (a *App) RenderFrame(frame *viewer.Frame, bounds geometry.BoundingBox, cam pieces.Camera, name string) (string, error) {
	bg, err := viewer.ParseBackground(a.Config.Render.Background)
	if err != nil {
		return "", fmt.Errorf("render background: %w", err)
	}

	r := viewer.Rasterize(frame, viewer.CameraFromState(cam, bounds), a.Config.Render.Width, a.Config.Render.Height, bg)
	if err := a.Storage.WriteWith(name, r.WritePNG); err != nil {
		return "", fmt.Errorf("failed to store frame: %w", err)
	}

	path := a.Storage.Path(name)
	logger.Debug("frame rendered", zap.String("file", path), zap.Int("faces", len(frame.Faces)))
	return path, nil
}
