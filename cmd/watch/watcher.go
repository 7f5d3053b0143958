package watch

import (
	"context"
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/LegacyCodeHQ/i18nscan/depgraph/modulemap"
	"github.com/fsnotify/fsnotify"
)

const debounceInterval = 300 * time.Millisecond

// sourceWatcher reports changes to recognized source files under a root.
type sourceWatcher struct {
	fsw        *fsnotify.Watcher
	extensions map[string]bool
	skipDirs   map[string]bool
	debounce   time.Duration
}

func newSourceWatcher(root string, extensions, skipDirs []string) (*sourceWatcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &sourceWatcher{
		fsw:        fsw,
		extensions: make(map[string]bool, len(extensions)),
		skipDirs:   make(map[string]bool, len(skipDirs)),
		debounce:   debounceInterval,
	}
	for _, ext := range extensions {
		w.extensions[strings.TrimPrefix(ext, ".")] = true
	}
	for _, dir := range skipDirs {
		w.skipDirs[dir] = true
	}

	if err := w.addWatchDirs(root); err != nil {
		fsw.Close()
		return nil, err
	}
	return w, nil
}

func (w *sourceWatcher) Close() error {
	return w.fsw.Close()
}

// run calls onChange once per burst of relevant events until ctx is done.
func (w *sourceWatcher) run(ctx context.Context, onChange func()) error {
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			return nil

		case event, ok := <-w.fsw.Events:
			if !ok {
				return nil
			}

			if event.Has(fsnotify.Create) {
				w.addIfDirectory(event.Name)
			}

			if !w.isRelevantChange(event) {
				continue
			}

			slog.Debug("source file changed", "file", event.Name, "op", event.Op.String())
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(w.debounce, onChange)

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return nil
			}
			slog.Warn("watcher error", "error", err)
		}
	}
}

func (w *sourceWatcher) isRelevantChange(event fsnotify.Event) bool {
	if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) &&
		!event.Has(fsnotify.Remove) && !event.Has(fsnotify.Rename) {
		return false
	}
	return w.extensions[modulemap.Extension(event.Name)]
}

func (w *sourceWatcher) addWatchDirs(root string) error {
	return addWatchDirsWithAdder(root, w.skipDirs, w.fsw.Add)
}

func addWatchDirsWithAdder(root string, skipDirs map[string]bool, add func(string) error) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		if err := add(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
			return err
		}
		return nil
	})
}

func (w *sourceWatcher) addIfDirectory(path string) {
	info, err := os.Stat(path)
	if err != nil {
		return
	}
	if info.IsDir() {
		if err := w.addWatchDirs(path); err != nil {
			slog.Debug("failed to watch new directory", "dir", path, "error", err)
		}
	}
}
