package app

import (
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/internal/storage"
	"github.com/philipparndt/stlpieces/pkg/geometry"
	"github.com/philipparndt/stlpieces/pkg/pieces"
	"github.com/philipparndt/stlpieces/pkg/playback"
	"github.com/philipparndt/stlpieces/pkg/scene"
	"github.com/philipparndt/stlpieces/pkg/stl"
)

func v(x, y, z float64) geometry.Vector3 { return geometry.NewVector3(x, y, z) }

// writeModel writes an STL with one triangle per offset, each its own piece
func writeModel(t *testing.T, path string, offsets ...float64) {
	t.Helper()
	m := stl.NewModel("pieces")
	n := v(0, 0, 1)
	for _, dx := range offsets {
		m.AddTriangle(geometry.NewTriangle(n, v(dx, 0, 0), v(dx+1, 0, 0), v(dx, 1, 0)))
	}
	require.NoError(t, m.WriteFile(path))
}

func newApp(t *testing.T) (*App, string) {
	t.Helper()
	dir := t.TempDir()
	store, err := storage.New(filepath.Join(dir, "out"))
	require.NoError(t, err)

	cfg := config.Default()
	cfg.Render.Width = 64
	cfg.Render.Height = 48
	return New(cfg, store), dir
}

func TestSplitCreatesSession(t *testing.T) {
	a, dir := newApp(t)
	model := filepath.Join(dir, "part.stl")
	writeModel(t, model, 0, 5)

	s, err := a.Split(context.Background(), model)
	require.NoError(t, err)

	_, err = uuid.Parse(s.ID)
	assert.NoError(t, err)
	assert.Len(t, s.Components, 2)
	assert.Equal(t, 2, s.Store.Len())
	assert.False(t, s.Restored)
	assert.Len(t, s.Stats(), 2)
	assert.Equal(t, 6.0, s.Bounds().Size().X)
}

func TestSplitRejectsUnsupported(t *testing.T) {
	a, dir := newApp(t)
	path := filepath.Join(dir, "part.obj")
	require.NoError(t, os.WriteFile(path, []byte("o x"), 0o644))

	_, err := a.Split(context.Background(), path)
	assert.ErrorContains(t, err, "unsupported file type")
}

func TestOpenRestoresSavedSession(t *testing.T) {
	a, dir := newApp(t)
	model := filepath.Join(dir, "part.stl")
	writeModel(t, model, 0, 5)
	ctx := context.Background()

	s, err := a.Open(ctx, model)
	require.NoError(t, err)

	piece := 1
	res, err := s.Update(pieces.Action{Trigger: pieces.TriggerToggle, Piece: &piece})
	require.NoError(t, err)
	assert.Equal(t, "*Pieza 2 oculta", res.Notice)
	require.NoError(t, a.Save(s))
	assert.FileExists(t, storage.SessionPath(model))

	again, err := a.Open(ctx, model)
	require.NoError(t, err)
	assert.True(t, again.Restored)
	assert.Equal(t, s.ID, again.ID)
	cfg, ok := again.Store.Config(1)
	require.True(t, ok)
	assert.False(t, cfg.Enabled)
	selected, ok := again.Store.Selected()
	assert.True(t, ok)
	assert.Equal(t, 1, selected)
}

func TestOpenIgnoresSessionOfChangedModel(t *testing.T) {
	a, dir := newApp(t)
	model := filepath.Join(dir, "part.stl")
	writeModel(t, model, 0, 5)
	ctx := context.Background()

	s, err := a.Open(ctx, model)
	require.NoError(t, err)
	require.NoError(t, a.Save(s))

	writeModel(t, model, 0, 5, 10)
	again, err := a.Open(ctx, model)
	require.NoError(t, err)
	assert.False(t, again.Restored)
	assert.Equal(t, 3, again.Store.Len())
}

func TestExport(t *testing.T) {
	a, dir := newApp(t)
	model := filepath.Join(dir, "part.stl")
	writeModel(t, model, 0, 5)

	s, err := a.Split(context.Background(), model)
	require.NoError(t, err)

	path, err := a.Export(s, "")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(a.Storage.Root(), "part.scene.json"), path)

	e, err := scene.Read(path)
	require.NoError(t, err)
	assert.Equal(t, 2, e.Scene.TotalPieces)

	a.Config.Export.Compress = true
	assert.Equal(t, "part.scene.json.zst", a.ExportName(model))
	path, err = a.Export(s, "")
	require.NoError(t, err)
	e, err = scene.Read(path)
	require.NoError(t, err)
	assert.Len(t, e.Scene.Pieces, 2)
}

func TestPlayback(t *testing.T) {
	a, dir := newApp(t)
	model := filepath.Join(dir, "part.stl")
	writeModel(t, model, 0, 5)

	s, err := a.Split(context.Background(), model)
	require.NoError(t, err)
	path, err := a.Export(s, "")
	require.NoError(t, err)

	p, err := a.OpenPlayback(path)
	require.NoError(t, err)
	assert.True(t, p.Buffer.IsEmpty())
	assert.False(t, p.Step(playback.StepBackward))

	require.True(t, p.Step(playback.StepForward))
	assert.Equal(t, "Piezas generadas (Adelante): 1", p.Status)
	assert.Len(t, p.Frame().Faces, 1)

	require.True(t, p.Step(playback.StepAll))
	assert.Equal(t, "Modelo completo generado", p.Status)
	assert.False(t, p.Step(playback.StepForward))
	assert.Equal(t, "Modelo completo generado", p.Status)

	glbPath, err := a.SaveGLB(p, "frame.glb")
	require.NoError(t, err)
	assert.FileExists(t, glbPath)

	pngPath, err := a.RenderFrame(p.Frame(), p.Bounds(), pieces.DefaultCamera(), "frames/0001.png")
	require.NoError(t, err)
	f, err := os.Open(pngPath)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
}

func TestOpenPlaybackRejectsMalformed(t *testing.T) {
	a, dir := newApp(t)
	path := filepath.Join(dir, "bad.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"scene_configuration":{"total_pieces":1,"pieces":[]}}`), 0o644))

	_, err := a.OpenPlayback(path)
	assert.ErrorIs(t, err, scene.ErrMalformed)
}

func TestWatchList(t *testing.T) {
	files, err := WatchList("part.stl")
	require.NoError(t, err)
	assert.Equal(t, []string{"part.stl"}, files)

	dir := t.TempDir()
	main := filepath.Join(dir, "main.scad")
	require.NoError(t, os.WriteFile(main, []byte("include <dims.scad>\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "dims.scad"), []byte("w = 1;\n"), 0o644))

	files, err = WatchList(main)
	require.NoError(t, err)
	assert.Equal(t, []string{main, filepath.Join(dir, "dims.scad")}, files)
}

func TestReloadState(t *testing.T) {
	var r ReloadState
	_, ok := r.Take()
	assert.False(t, ok)

	r.Request("a.stl")
	r.Request("b.scad")
	file, ok := r.Take()
	assert.True(t, ok)
	assert.Equal(t, "b.scad", file)

	_, ok = r.Take()
	assert.False(t, ok)
}
