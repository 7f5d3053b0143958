package resolve

import (
	"os"
	"sync"
)

// FileSystem is the file lookup surface resolution needs.
type FileSystem interface {
	IsFile(path string) bool
	ReadFile(path string) ([]byte, error)
}

// OSFileSystem answers lookups from disk, memoizing IsFile results for the
// lifetime of the value.
type OSFileSystem struct {
	isFile sync.Map
}

// NewOSFileSystem returns a FileSystem backed by the operating system.
func NewOSFileSystem() *OSFileSystem {
	return &OSFileSystem{}
}

func (f *OSFileSystem) IsFile(path string) bool {
	if cached, ok := f.isFile.Load(path); ok {
		return cached.(bool)
	}
	info, err := os.Stat(path)
	isFile := err == nil && info.Mode().IsRegular()
	f.isFile.Store(path, isFile)
	return isFile
}

func (f *OSFileSystem) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(path)
}

// MapFileSystem is an in-memory FileSystem keyed by absolute path.
type MapFileSystem map[string]string

func (m MapFileSystem) IsFile(path string) bool {
	_, ok := m[path]
	return ok
}

func (m MapFileSystem) ReadFile(path string) ([]byte, error) {
	content, ok := m[path]
	if !ok {
		return nil, &os.PathError{Op: "open", Path: path, Err: os.ErrNotExist}
	}
	return []byte(content), nil
}
