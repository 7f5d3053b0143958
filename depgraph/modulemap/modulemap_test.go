package modulemap

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/LegacyCodeHQ/i18nscan/source"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, root, rel, content string) string {
	t.Helper()
	path := filepath.Join(root, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestBuild_IndexesRecognizedExtensionsOnly(t *testing.T) {
	root := t.TempDir()
	app := writeFile(t, root, "App.js", "import './Button';")
	button := writeFile(t, root, "Button.ios.js", "")
	writeFile(t, root, "styles.css", "")
	writeFile(t, root, "README.md", "")

	m, err := Build(context.Background(), Options{RootDir: root, Extensions: []string{"js"}})
	require.NoError(t, err)

	assert.True(t, m.Exists(app))
	assert.True(t, m.Exists(button))
	assert.False(t, m.Exists(filepath.Join(root, "styles.css")))
	assert.Len(t, m.Files(), 2)
}

func TestBuild_SkipsNodeModules(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "index.js", "")
	vendored := writeFile(t, root, "node_modules/lib/index.js", "")

	m, err := Build(context.Background(), Options{RootDir: root, Extensions: []string{"js"}})
	require.NoError(t, err)

	assert.False(t, m.Exists(vendored))
	assert.Nil(t, m.Dependencies(vendored))
}

func TestBuild_AcceptsDottedExtensions(t *testing.T) {
	root := t.TempDir()
	screen := writeFile(t, root, "Screen.tsx", "")

	m, err := Build(context.Background(), Options{RootDir: root, Extensions: []string{".tsx"}})
	require.NoError(t, err)

	assert.True(t, m.Exists(screen))
}

func TestBuild_RootMustBeDirectory(t *testing.T) {
	root := t.TempDir()
	file := writeFile(t, root, "App.js", "")

	_, err := Build(context.Background(), Options{RootDir: file, Extensions: []string{"js"}})
	require.Error(t, err)
}

func TestBuild_CanceledContext(t *testing.T) {
	root := t.TempDir()
	writeFile(t, root, "App.js", "")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Build(ctx, Options{RootDir: root, Extensions: []string{"js"}})
	require.ErrorIs(t, err, context.Canceled)
}

func TestDependencies_ParsesAndCaches(t *testing.T) {
	reads := 0
	files := map[string]string{
		"/project/App.js": "import B from './B';\nconst c = require('./C');\nimport again from './B';",
	}
	base := source.MapContentReader(files)
	reader := func(path string) ([]byte, error) {
		reads++
		return base(path)
	}

	m, err := New("/project", []string{"/project/App.js"}, reader, 0)
	require.NoError(t, err)

	assert.Equal(t, []string{"./B", "./C"}, m.Dependencies("/project/App.js"))
	assert.Equal(t, []string{"./B", "./C"}, m.Dependencies("/project/App.js"))
	assert.Equal(t, 1, reads)

	m.Invalidate("/project/App.js")
	m.Dependencies("/project/App.js")
	assert.Equal(t, 2, reads)
}

func TestDependencies_UnreadableFileHasNone(t *testing.T) {
	m, err := New("/project", []string{"/project/Gone.js"}, source.MapContentReader(nil), 0)
	require.NoError(t, err)

	assert.Nil(t, m.Dependencies("/project/Gone.js"))
}

func TestExtension(t *testing.T) {
	assert.Equal(t, "js", Extension("/src/Foo.ios.js"))
	assert.Equal(t, "tsx", Extension("/src/Foo.tsx"))
	assert.Equal(t, "Makefile", Extension("/src/Makefile"))
	assert.Equal(t, "", Extension("/src/trailing."))
}

func TestHasteMap_RootDirAndFiles(t *testing.T) {
	root := t.TempDir()
	index := writeFile(t, root, "index.ts", "import type { A } from './types'; import './a';")
	a := writeFile(t, root, "a.ts", "")

	built, err := Build(context.Background(), Options{RootDir: root, Extensions: []string{"ts"}})
	require.NoError(t, err)

	var m ModuleMap = built
	assert.True(t, m.Exists(index))
	assert.Equal(t, []string{"./a"}, m.Dependencies(index))

	assert.Equal(t, root, built.RootDir())
	assert.ElementsMatch(t, []string{index, a}, built.Files())
}
