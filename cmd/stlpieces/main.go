package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

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
	outputDir  string
)

var rootCmd = &cobra.Command{
	Use:   "stlpieces",
	Short: "Split STL models into pieces and configure their assembly",
	Long: `stlpieces splits an STL or OpenSCAD model into its disconnected pieces.
Each piece gets a build direction, a priority, a visibility flag and a help
text. The result is exported as a scene for the rendering engine and can be
replayed piece by piece.`,
	Version:       version.GetFullVersion(),
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "config file (default ./stlpieces.yaml or the user config dir)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level: debug, info, warn, error")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "also write JSON logs to this file")
	rootCmd.PersistentFlags().StringVarP(&outputDir, "output-dir", "d", "", "directory for exports and rendered frames")
}

// setup loads the configuration, starts logging and wires the application
func setup(overrides config.Overrides) (*app.App, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}

	overrides.LogLevel = logLevel
	overrides.LogFile = logFile
	overrides.OutputDir = outputDir
	cfg.Apply(overrides)

	if err := logger.Init(cfg.Logging.Level, cfg.Logging.LogFile); err != nil {
		return nil, fmt.Errorf("failed to start logging: %w", err)
	}

	store, err := storage.New(cfg.Export.OutputDir)
	if err != nil {
		return nil, err
	}
	return app.New(cfg, store), nil
}

// mustSetup is setup for commands that cannot continue without it
func mustSetup(overrides config.Overrides) *app.App {
	a, err := setup(overrides)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	return a
}

func fail(format string, err error) {
	fmt.Fprintf(os.Stderr, format+": %v\n", err)
	logger.Sync()
	os.Exit(1)
}

func main() {
	defer logger.Sync()
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
