package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Empty(t, cfg.Logging.LogFile)
	assert.Equal(t, 800, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height)
	assert.False(t, cfg.Export.Compress)
	assert.True(t, cfg.Viewer.Watch)
	assert.Equal(t, 500*time.Millisecond, cfg.Viewer.Debounce)
	assert.NoError(t, cfg.Validate())
}

func TestLoadFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "stlpieces.yaml")
	content := `
logging:
  level: debug
render:
  width: 320
viewer:
  debounce: 250ms
export:
  compress: true
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 320, cfg.Render.Width)
	// Unset keys keep their defaults
	assert.Equal(t, 600, cfg.Render.Height)
	assert.Equal(t, 250*time.Millisecond, cfg.Viewer.Debounce)
	assert.True(t, cfg.Export.Compress)
}

func TestLoadRejectsInvalid(t *testing.T) {
	dir := t.TempDir()

	bad := filepath.Join(dir, "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("render:\n  width: -1\n"), 0644))
	_, err := Load(bad)
	assert.Error(t, err)

	broken := filepath.Join(dir, "broken.yaml")
	require.NoError(t, os.WriteFile(broken, []byte("render: [unclosed"), 0644))
	_, err = Load(broken)
	assert.Error(t, err)

	_, err = Load(filepath.Join(dir, "missing.yaml"))
	assert.Error(t, err)
}

func TestSaveTo(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Split.WeldEpsilon = 0.001
	cfg.Viewer.Debounce = time.Second
	require.NoError(t, cfg.SaveTo(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, cfg, loaded)
}

func TestApplyOverrides(t *testing.T) {
	cfg := Default()
	cfg.Apply(Overrides{LogLevel: "warn", Width: 1024, Compress: true})

	assert.Equal(t, "warn", cfg.Logging.Level)
	assert.Equal(t, 1024, cfg.Render.Width)
	assert.Equal(t, 600, cfg.Render.Height)
	assert.True(t, cfg.Export.Compress)
	assert.Equal(t, ".", cfg.Export.OutputDir)
}
