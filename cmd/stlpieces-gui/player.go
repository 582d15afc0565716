package main

import (
	"fmt"
	"strings"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/app"
	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/pkg/pieces"
	"github.com/philipparndt/stlpieces/pkg/playback"
	"github.com/philipparndt/stlpieces/pkg/viewer"
)

// player replays a scene piece by piece
type player struct {
	gui      *GUI
	playback *app.Playback
	view     *viewer.PieceView

	statusLabel *widget.Label
	pieceLabel  *widget.Label
}

func (g *GUI) showPlayback(path string) error {
	p, err := g.app.OpenPlayback(path)
	if err != nil {
		return err
	}

	pl := &player{gui: g, playback: p}
	pl.build()
	g.window.SetTitle("stlpieces - " + path)

	g.watch(path, func() {
		logger.Info("reloading scene", zap.String("file", path))
		g.openPath(path)
	})
	return nil
}

func (pl *player) build() {
	pl.view = viewer.NewPieceView(pl.playback.Frame(), pl.playback.Bounds(), pieces.DefaultCamera())
	if bg, err := viewer.ParseBackground(pl.gui.app.Config.Render.Background); err == nil {
		pl.view.SetBackground(bg)
	}

	pl.statusLabel = widget.NewLabel(fmt.Sprintf("Piezas: %d", pl.playback.Builder.Total()))
	pl.statusLabel.TextStyle = fyne.TextStyle{Bold: true}
	pl.pieceLabel = widget.NewLabel("")
	pl.pieceLabel.Wrapping = fyne.TextWrapWord

	step := func(s playback.Step) func() {
		return func() { pl.step(s) }
	}

	controls := container.NewGridWithColumns(4,
		widget.NewButton("Atrás", step(playback.StepBackward)),
		widget.NewButton("Adelante", step(playback.StepForward)),
		widget.NewButton("Completo", step(playback.StepAll)),
		widget.NewButton("Reiniciar", step(playback.StepReset)),
	)

	glbButton := widget.NewButton("Guardar GLB", pl.saveGLB)
	openButton := widget.NewButton("Open File", pl.gui.showFileDialog)

	panel := container.NewVBox(
		pl.statusLabel,
		widget.NewSeparator(),
		pl.pieceLabel,
		widget.NewSeparator(),
		glbButton,
		openButton,
	)
	scroll := container.NewVScroll(panel)
	scroll.SetMinSize(fyne.NewSize(280, 0))

	pl.gui.window.SetContent(container.NewBorder(nil, controls, nil, scroll, pl.view))
}

func (pl *player) step(s playback.Step) {
	if !pl.playback.Step(s) {
		return
	}
	pl.statusLabel.SetText(pl.playback.Status)
	pl.view.SetFrame(pl.playback.Frame())

	last, ok := pl.playback.Builder.Last()
	if !ok {
		pl.pieceLabel.SetText("")
		return
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\nDirección: %s\nPrioridad: %d", pieces.Label(last.ID), last.Direction, last.Priority)
	if last.HelpText != "" {
		fmt.Fprintf(&b, "\n\n%s", last.HelpText)
	}
	pl.pieceLabel.SetText(b.String())
}

func (pl *player) saveGLB() {
	name := fmt.Sprintf("playback-%03d.glb", pl.playback.Builder.Generated())
	path, err := pl.gui.app.SaveGLB(pl.playback, name)
	if err != nil {
		dialog.ShowError(err, pl.gui.window)
		return
	}
	dialog.ShowInformation("GLB guardado", path, pl.gui.window)
}
