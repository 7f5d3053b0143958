package watch

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddWatchDirsSkipsConfiguredDirectories(t *testing.T) {
	root := t.TempDir()
	for _, dir := range []string{"src/screens", "node_modules/react", ".git/objects"} {
		require.NoError(t, os.MkdirAll(filepath.Join(root, dir), 0o755))
	}

	var added []string
	err := addWatchDirsWithAdder(root, map[string]bool{"node_modules": true, ".git": true}, func(path string) error {
		added = append(added, path)
		return nil
	})
	require.NoError(t, err)

	assert.ElementsMatch(t, []string{
		root,
		filepath.Join(root, "src"),
		filepath.Join(root, "src", "screens"),
	}, added)
}

func TestAddWatchDirsIgnoresMissingDirectoriesFromAdder(t *testing.T) {
	root := t.TempDir()
	target := filepath.Join(root, "gone")
	require.NoError(t, os.MkdirAll(target, 0o755))

	adder := func(path string) error {
		if path == target {
			return fs.ErrNotExist
		}
		return nil
	}

	assert.NoError(t, addWatchDirsWithAdder(root, nil, adder))
}

func TestIsRelevantChange(t *testing.T) {
	w := &sourceWatcher{extensions: map[string]bool{"js": true, "tsx": true}}

	tests := []struct {
		name  string
		event fsnotify.Event
		want  bool
	}{
		{"write js", fsnotify.Event{Name: "/app/index.js", Op: fsnotify.Write}, true},
		{"create platform variant", fsnotify.Event{Name: "/app/Home.ios.js", Op: fsnotify.Create}, true},
		{"remove tsx", fsnotify.Event{Name: "/app/App.tsx", Op: fsnotify.Remove}, true},
		{"chmod only", fsnotify.Event{Name: "/app/index.js", Op: fsnotify.Chmod}, false},
		{"unrecognized extension", fsnotify.Event{Name: "/app/README.md", Op: fsnotify.Write}, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, w.isRelevantChange(tt.event))
		})
	}
}

func TestSourceWatcher_RescansAfterWrite(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "index.js"), []byte(`t("a")`), 0o644))

	w, err := newSourceWatcher(root, []string{"js"}, nil)
	require.NoError(t, err)
	defer w.Close()
	w.debounce = 50 * time.Millisecond

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	changes := make(chan struct{}, 10)
	done := make(chan error, 1)
	go func() {
		done <- w.run(ctx, func() { changes <- struct{}{} })
	}()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(root, "index.js"), []byte(`t("b")`), 0o644))
	}

	select {
	case <-changes:
	case <-time.After(5 * time.Second):
		t.Fatal("expected a rescan after writing a source file")
	}

	cancel()
	require.NoError(t, <-done)
}
