package watch

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func write(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func waitChange(t *testing.T, w *Watcher) []string {
	t.Helper()
	select {
	case files := <-w.Changes():
		return files
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change")
		return nil
	}
}

func TestReportsWatchedFile(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	write(t, scene, "a")

	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Set(scene))

	write(t, scene, "b")
	write(t, scene, "c")

	files := waitChange(t, w)
	want, _ := filepath.Abs(scene)
	assert.Equal(t, []string{want}, files)
}

func TestIgnoresUnwatchedSibling(t *testing.T) {
	dir := t.TempDir()
	scene := filepath.Join(dir, "scene.yaml")
	other := filepath.Join(dir, "notes.txt")
	write(t, scene, "a")

	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()
	require.NoError(t, w.Set(scene))

	write(t, other, "ignored")
	select {
	case files := <-w.Changes():
		t.Fatalf("unexpected change %v", files)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestSetReplacesFiles(t *testing.T) {
	dir := t.TempDir()
	a := filepath.Join(dir, "a.obj")
	b := filepath.Join(dir, "b.obj")
	write(t, a, "")
	write(t, b, "")

	w, err := New(20 * time.Millisecond)
	require.NoError(t, err)
	defer w.Close()

	require.NoError(t, w.Set(a, b))
	assert.Equal(t, 2, w.Files())
	require.NoError(t, w.Set(b))
	assert.Equal(t, 1, w.Files())

	write(t, b, "v 0 0 0")
	files := waitChange(t, w)
	want, _ := filepath.Abs(b)
	assert.Equal(t, []string{want}, files)
}

func TestSetMissingDirectory(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)
	defer w.Close()

	err = w.Set(filepath.Join(t.TempDir(), "missing", "scene.yaml"))
	assert.Error(t, err)
	assert.Zero(t, w.Files())
}

func TestClose(t *testing.T) {
	w, err := New(0)
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, w.Close())
	assert.ErrorIs(t, w.Set("x"), ErrClosed)
}
