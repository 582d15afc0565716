package main

import (
	"fmt"
	"os"
	"strings"

	"fyne.io/fyne/v2"
	fyneapp "fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/philipparndt/stlpieces/internal/app"
	"github.com/philipparndt/stlpieces/internal/config"
	"github.com/philipparndt/stlpieces/internal/logger"
	"github.com/philipparndt/stlpieces/internal/storage"
	"github.com/philipparndt/stlpieces/version"
)

var (
	configPath string
	logLevel   string
	logFile    string
)

var rootCmd = &cobra.Command{
	Use:          "stlpieces-gui [model.stl | model.scad | scene.json]",
	Short:        "Configure model pieces and replay scenes",
	Version:      version.GetFullVersion(),
	Args:         cobra.MaximumNArgs(1),
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	rootCmd.Flags().StringVar(&configPath, "config", "", "config file")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.Flags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
}

// GUI is the desktop front end. It owns at most one open session or
// playback at a time.
type GUI struct {
	app    *app.App
	window fyne.Window
	closer func()
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	cfg.Apply(config.Overrides{LogLevel: logLevel, LogFile: logFile})

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return err
	}
	defer logger.Sync()

	store, err := storage.New(cfg.Export.OutputDir)
	if err != nil {
		return err
	}

	a := fyneapp.New()
	w := a.NewWindow("stlpieces")

	g := &GUI{app: app.New(cfg, store), window: w}
	w.SetOnClosed(g.closeCurrent)

	if len(args) > 0 {
		g.openPath(args[0])
	} else {
		g.showWelcomeScreen()
	}

	w.Resize(fyne.NewSize(float32(cfg.Viewer.Width), float32(cfg.Viewer.Height)))
	w.ShowAndRun()
	return nil
}

func isScene(path string) bool {
	return strings.HasSuffix(path, ".json") || strings.HasSuffix(path, ".json.zst")
}

func (g *GUI) showWelcomeScreen() {
	welcomeLabel := widget.NewLabel("Welcome to stlpieces")
	welcomeLabel.TextStyle = fyne.TextStyle{Bold: true}

	instructionLabel := widget.NewLabel("Open an STL or OpenSCAD model to split it, or a scene to replay it")

	openButton := widget.NewButton("Open File", func() {
		g.showFileDialog()
	})

	content := container.NewVBox(
		layout.NewSpacer(),
		container.NewCenter(welcomeLabel),
		container.NewCenter(instructionLabel),
		layout.NewSpacer(),
		container.NewCenter(openButton),
		layout.NewSpacer(),
	)

	g.window.SetContent(content)
}

func (g *GUI) showFileDialog() {
	dialog.ShowFileOpen(func(reader fyne.URIReadCloser, err error) {
		if err != nil {
			dialog.ShowError(err, g.window)
			return
		}
		if reader == nil {
			return
		}
		defer reader.Close()

		g.openPath(reader.URI().Path())
	}, g.window)
}

func (g *GUI) openPath(path string) {
	g.closeCurrent()

	if isScene(path) {
		if err := g.showPlayback(path); err != nil {
			dialog.ShowError(fmt.Errorf("failed to load scene: %w", err), g.window)
			g.showWelcomeScreen()
		}
		return
	}

	if err := g.showConfigurator(path); err != nil {
		dialog.ShowError(fmt.Errorf("failed to load model: %w", err), g.window)
		g.showWelcomeScreen()
	}
}

// closeCurrent releases the watcher of the current view, if any
func (g *GUI) closeCurrent() {
	if g.closer != nil {
		g.closer()
		g.closer = nil
	}
}

// watch reloads the current view after its source changed. The watcher
// callback runs on its own goroutine; the reload is handed to the UI thread.
func (g *GUI) watch(source string, reload func()) {
	if !g.app.Config.Viewer.Watch {
		return
	}

	var pending app.ReloadState
	fw, err := g.app.Watch(source, func(file string) {
		pending.Request(file)
		fyne.Do(func() {
			if _, ok := pending.Take(); ok {
				reload()
			}
		})
	})
	if err != nil {
		logger.Warn("file watching disabled", zap.String("file", source), zap.Error(err))
		return
	}
	g.closer = func() { fw.Close() }
}
