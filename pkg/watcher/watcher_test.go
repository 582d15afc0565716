package watcher

import (
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestWatchDebouncesWrites(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	fw, err := NewFileWatcher(50 * time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{file}, func(path string) {
		calls.Add(1)
		changed <- path
	}))
	fw.Start()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(file, []byte("{\"n\":1}"), 0o644))
	}

	select {
	case path := <-changed:
		abs, _ := filepath.Abs(file)
		assert.Equal(t, abs, path)
	case <-time.After(5 * time.Second):
		t.Fatal("no change reported")
	}

	time.Sleep(150 * time.Millisecond)
	assert.Equal(t, int32(1), calls.Load())
	require.NoError(t, fw.Close())
}

func TestWatchReplacedByRename(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "scene.json")
	require.NoError(t, os.WriteFile(file, []byte("{}"), 0o644))

	fw, err := NewFileWatcher(20 * time.Millisecond)
	require.NoError(t, err)

	changed := make(chan string, 4)
	require.NoError(t, fw.Watch([]string{file}, func(path string) { changed <- path }))
	fw.Start()

	tmp := filepath.Join(dir, ".scene.json.tmp")
	require.NoError(t, os.WriteFile(tmp, []byte("{\"n\":2}"), 0o644))
	require.NoError(t, os.Rename(tmp, file))

	select {
	case path := <-changed:
		assert.Equal(t, "scene.json", filepath.Base(path))
	case <-time.After(5 * time.Second):
		t.Fatal("rename not reported")
	}
	require.NoError(t, fw.Close())
}

func TestWatchIgnoresSiblings(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "model.stl")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fw, err := NewFileWatcher(10 * time.Millisecond)
	require.NoError(t, err)

	var calls atomic.Int32
	require.NoError(t, fw.Watch([]string{file}, func(string) { calls.Add(1) }))
	fw.Start()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.stl"), []byte("x"), 0o644))
	time.Sleep(100 * time.Millisecond)
	assert.Zero(t, calls.Load())
	require.NoError(t, fw.Close())
}

func TestWatchMissingFile(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	defer fw.Close()

	err = fw.Watch([]string{filepath.Join(t.TempDir(), "missing.stl")}, func(string) {})
	assert.Error(t, err)
}

func TestCloseWithoutStart(t *testing.T) {
	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	assert.NoError(t, fw.Close())
}

func TestRemoveAll(t *testing.T) {
	file := filepath.Join(t.TempDir(), "model.stl")
	require.NoError(t, os.WriteFile(file, nil, 0o644))

	fw, err := NewFileWatcher(time.Millisecond)
	require.NoError(t, err)
	fw.Start()

	require.NoError(t, fw.Watch([]string{file}, func(string) {}))
	require.NoError(t, fw.RemoveAll())
	assert.Empty(t, fw.callbacks)
	assert.Empty(t, fw.dirs)
	require.NoError(t, fw.Close())
}
