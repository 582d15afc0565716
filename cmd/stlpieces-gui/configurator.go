package main

import (
	"context"
	"fmt"
	"strconv"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/widget"
	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/app"
	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/pkg/analysis"
	"github.com/philipparndt/stlpieces/pkg/pieces"
	"github.com/philipparndt/stlpieces/pkg/viewer"
)

// configurator is the piece editing panel next to the 3D view
type configurator struct {
	gui     *GUI
	session *app.Session
	view    *viewer.PieceView

	pieceSelect     *widget.Select
	directionSelect *widget.Select
	priorityEntry   *widget.Entry
	helpEntry       *widget.Entry
	noticeLabel     *widget.Label
	infoLabel       *widget.Label

	// syncing suppresses widget callbacks while results are shown
	syncing bool
}

func (g *GUI) showConfigurator(source string) error {
	s, err := g.app.Open(context.Background(), source)
	if err != nil {
		return err
	}

	c := &configurator{gui: g, session: s}
	c.build()
	g.window.SetTitle("stlpieces - " + source)

	g.watch(source, func() {
		logger.Info("reloading model", zap.String("file", source))
		g.openPath(source)
	})
	return nil
}

func (c *configurator) build() {
	s := c.session

	bg, err := viewer.ParseBackground(c.gui.app.Config.Render.Background)
	if err != nil {
		logger.Warn("invalid background, using white", zap.Error(err))
	}
	c.view = viewer.NewPieceView(s.Frame(), s.Bounds(), s.Store.Camera())
	if err == nil {
		c.view.SetBackground(bg)
	}
	c.view.SetOnPick(func(piece, face int) {
		c.apply(pieces.Action{Trigger: pieces.TriggerViewport, Click: pieces.ClickOnTrace(piece)})
	})
	c.view.SetOnCameraChange(func(state pieces.Camera) {
		c.apply(pieces.Action{Trigger: pieces.TriggerViewport, Camera: &state})
	})

	labels := make([]string, s.Store.Len())
	for i := range labels {
		labels[i] = pieces.Label(i)
	}
	c.pieceSelect = widget.NewSelect(labels, func(string) {
		if c.syncing {
			return
		}
		index := c.pieceSelect.SelectedIndex()
		c.apply(pieces.Action{Trigger: pieces.TriggerSelect, Piece: &index})
	})

	directions := pieces.Directions()
	names := make([]string, len(directions))
	for i, d := range directions {
		names[i] = string(d)
	}
	c.directionSelect = widget.NewSelect(names, func(value string) {
		if c.syncing {
			return
		}
		d := pieces.Direction(value)
		c.apply(pieces.Action{Trigger: pieces.TriggerDirection, Direction: &d})
	})

	c.priorityEntry = widget.NewEntry()
	c.priorityEntry.OnChanged = func(value string) {
		if c.syncing {
			return
		}
		p, err := strconv.Atoi(value)
		if err != nil {
			return
		}
		c.apply(pieces.Action{Trigger: pieces.TriggerPriority, Priority: &p})
	}

	c.helpEntry = widget.NewMultiLineEntry()
	c.helpEntry.SetPlaceHolder("Texto de ayuda")
	c.helpEntry.Wrapping = fyne.TextWrapWord
	c.helpEntry.OnChanged = func(value string) {
		if c.syncing {
			return
		}
		c.apply(pieces.Action{Trigger: pieces.TriggerAnnotation, Annotation: &value})
	}

	saveButton := widget.NewButton("Guardar", c.save)
	toggleButton := widget.NewButton("Ocultar / Mostrar", func() {
		c.apply(pieces.Action{Trigger: pieces.TriggerToggle})
	})
	exportButton := widget.NewButton("Exportar escena", c.export)
	playButton := widget.NewButton("Reproducir", c.play)
	openButton := widget.NewButton("Open File", c.gui.showFileDialog)

	c.noticeLabel = widget.NewLabel("")
	c.noticeLabel.TextStyle = fyne.TextStyle{Bold: true}
	c.infoLabel = widget.NewLabel(fmt.Sprintf("Pieces: %d", s.Store.Len()))

	panel := container.NewVBox(
		widget.NewLabel("Pieza:"),
		c.pieceSelect,
		widget.NewLabel("Dirección:"),
		c.directionSelect,
		widget.NewLabel("Prioridad:"),
		c.priorityEntry,
		widget.NewLabel("Texto de ayuda:"),
		c.helpEntry,
		widget.NewSeparator(),
		container.NewGridWithColumns(2, saveButton, toggleButton),
		c.noticeLabel,
		widget.NewSeparator(),
		c.infoLabel,
		widget.NewSeparator(),
		exportButton,
		playButton,
		openButton,
	)

	scroll := container.NewVScroll(panel)
	scroll.SetMinSize(fyne.NewSize(300, 0))

	c.gui.window.SetContent(container.NewBorder(nil, nil, nil, scroll, c.view))

	if s.Store.Len() > 0 {
		selected, _ := s.Store.Selected()
		c.apply(pieces.Action{Trigger: pieces.TriggerNone, Piece: &selected})
	}
}

// apply runs one update cycle and shows its result
func (c *configurator) apply(a pieces.Action) {
	res, err := c.session.Update(a)
	if err != nil {
		dialog.ShowError(err, c.gui.window)
		return
	}
	c.show(res)

	if res.Updated || a.Trigger == pieces.TriggerSelect || a.Trigger == pieces.TriggerViewport {
		c.view.SetFrame(c.session.Frame())
	}
	if err := c.gui.app.Save(c.session); err != nil {
		logger.Warn("session not saved", zap.Error(err))
	}
}

// save writes the staged direction and the priority of the selected piece
func (c *configurator) save() {
	a := pieces.Action{Trigger: pieces.TriggerSave}
	if value := c.directionSelect.Selected; value != "" {
		d := pieces.Direction(value)
		a.Direction = &d
	}
	if p, err := strconv.Atoi(c.priorityEntry.Text); err == nil {
		a.Priority = &p
	}
	c.apply(a)
}

func (c *configurator) show(res pieces.Result) {
	if c.session.Store.Len() == 0 {
		return
	}

	c.syncing = true
	defer func() { c.syncing = false }()

	c.pieceSelect.SetSelectedIndex(res.Selected)
	c.directionSelect.SetSelected(string(res.Direction))
	c.priorityEntry.SetText(strconv.Itoa(res.Priority))
	if c.helpEntry.Text != res.Annotation {
		c.helpEntry.SetText(res.Annotation)
	}
	c.noticeLabel.SetText(res.Notice)

	if cfg, ok := c.session.Store.Config(res.Selected); ok {
		result := analysis.AnalyzeComponent(c.session.Components[res.Selected])
		visibility := "visible"
		if !cfg.Enabled {
			visibility = "oculta"
		}
		c.infoLabel.SetText(fmt.Sprintf("Pieces: %d\n%s (%s)\nColor: %s\nTriangles: %d\nSize: %.2f x %.2f x %.2f",
			c.session.Store.Len(), pieces.Label(res.Selected), visibility, cfg.Color,
			result.TriangleCount, result.Dimensions.X, result.Dimensions.Y, result.Dimensions.Z))
	}
}

func (c *configurator) export() {
	path, err := c.gui.app.Export(c.session, "")
	if err != nil {
		dialog.ShowError(err, c.gui.window)
		return
	}
	dialog.ShowInformation("Escena exportada", path, c.gui.window)
}

func (c *configurator) play() {
	path, err := c.gui.app.Export(c.session, "")
	if err != nil {
		dialog.ShowError(err, c.gui.window)
		return
	}
	c.gui.openPath(path)
}
