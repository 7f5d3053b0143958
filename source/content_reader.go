package source

import "os"

// ContentReader is a function that reads file content given a file path.
// This allows the caller to control how files are read (filesystem, in-memory fixtures, etc.)
type ContentReader func(filePath string) ([]byte, error)

// FilesystemContentReader returns a ContentReader that reads straight from disk.
func FilesystemContentReader() ContentReader {
	return os.ReadFile
}

// MapContentReader returns a ContentReader backed by an in-memory map of path to content.
// Paths missing from the map fail with os.ErrNotExist.
func MapContentReader(files map[string]string) ContentReader {
	return func(filePath string) ([]byte, error) {
		content, ok := files[filePath]
		if !ok {
			return nil, &os.PathError{Op: "open", Path: filePath, Err: os.ErrNotExist}
		}
		return []byte(content), nil
	}
}
