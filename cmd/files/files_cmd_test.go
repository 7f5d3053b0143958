package files

import (
	"github.com/LegacyCodeHQ/i18nscan/internal/testhelpers"

	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := map[string]string{
		"index.js":            `import './Button'; import './Home';`,
		"Button.android.js":   `t("Tap")`,
		"Button.js":           `t("Click")`,
		"Home.tsx":            `import Button from './Button'; export default () => null;`,
		"unused/Dead.js":      `t("Dead")`,
		"node_modules/x/a.js": `t("vendored")`,
	}
	for name, content := range files {
		path := filepath.Join(root, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	testhelpers.Chdir(t, root)
	return root
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	cmd := NewCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(args)
	err := cmd.Execute()
	return out.String(), err
}

func TestFilesCommand_TextListsVisitOrder(t *testing.T) {
	setupProject(t)

	output, err := execute(t, "--platform", "android", "index.js")
	require.NoError(t, err)

	assert.Equal(t, "index.js\nButton.android.js\nButton.js\nHome.tsx\n", output)
}

func TestFilesCommand_AbsolutePaths(t *testing.T) {
	root := setupProject(t)

	output, err := execute(t, "--absolute", "index.js")
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(root, "index.js")+"\n"+
		filepath.Join(root, "Button.js")+"\n"+
		filepath.Join(root, "Home.tsx")+"\n", output)
}

func TestFilesCommand_JSONIncludesImports(t *testing.T) {
	setupProject(t)

	output, err := execute(t, "--format", "json", "index.js")
	require.NoError(t, err)

	var entries []fileEntry
	require.NoError(t, json.Unmarshal([]byte(output), &entries))
	assert.Equal(t, []fileEntry{
		{Path: "index.js", Imports: []string{"Button.js", "Home.tsx"}},
		{Path: "Button.js", Imports: []string{}},
		{Path: "Home.tsx", Imports: []string{"Button.js"}},
	}, entries)
}

func TestFilesCommand_DOT(t *testing.T) {
	setupProject(t)

	output, err := execute(t, "--format", "dot", "index.js")
	require.NoError(t, err)

	assert.Contains(t, output, "digraph")
	assert.Contains(t, output, `"index.js" -> "Home.tsx"`)
	assert.Contains(t, output, `"Home.tsx" -> "Button.js"`)
	assert.NotContains(t, output, "Dead.js")
}

func TestFilesCommand_UnknownFormat(t *testing.T) {
	setupProject(t)

	_, err := execute(t, "--format", "svg", "index.js")

	assert.EqualError(t, err, "unknown format: svg (valid options: text, json, dot)")
}
