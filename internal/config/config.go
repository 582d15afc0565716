// Package config handles stlpieces configuration loading and management.
package config

import "time"

// Config holds all tool settings.
type Config struct {
	Logging LoggingConfig `yaml:"logging"`
	Render  RenderConfig  `yaml:"render"`
	Export  ExportConfig  `yaml:"export"`
	Viewer  ViewerConfig  `yaml:"viewer"`
	Split   SplitConfig   `yaml:"split"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level   string `yaml:"level"`
	LogFile string `yaml:"log_file"`
}

// RenderConfig holds offscreen frame rendering settings.
type RenderConfig struct {
	Width      int    `yaml:"width"`
	Height     int    `yaml:"height"`
	Background string `yaml:"background"`
}

// ExportConfig holds scene export settings.
type ExportConfig struct {
	Compress  bool   `yaml:"compress"`
	OutputDir string `yaml:"output_dir"`
}

// ViewerConfig holds desktop viewer settings.
type ViewerConfig struct {
	Width    int           `yaml:"width"`
	Height   int           `yaml:"height"`
	Watch    bool          `yaml:"watch"`
	Debounce time.Duration `yaml:"debounce"`
}

// SplitConfig holds mesh splitting settings.
type SplitConfig struct {
	// WeldEpsilon snaps vertices to a grid of this size before welding; 0 welds exact duplicates only.
	WeldEpsilon float64 `yaml:"weld_epsilon"`
}

// Default returns a Config with sensible default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:   "info",
			LogFile: "",
		},
		Render: RenderConfig{
			Width:      800,
			Height:     600,
			Background: "#FFFFFF",
		},
		Export: ExportConfig{
			Compress:  false,
			OutputDir: ".",
		},
		Viewer: ViewerConfig{
			Width:    1200,
			Height:   800,
			Watch:    true,
			Debounce: 500 * time.Millisecond,
		},
		Split: SplitConfig{
			WeldEpsilon: 0,
		},
	}
}
