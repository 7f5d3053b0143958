package cmd

import (
	"github.com/LegacyCodeHQ/i18nscan/internal/testhelpers"

	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRootCommand_RegistersSubcommands(t *testing.T) {
	cmd := NewRootCommand()

	var names []string
	for _, sub := range cmd.Commands() {
		names = append(names, sub.Name())
	}

	assert.Subset(t, names, []string{"scan", "files", "why", "watch", "extensions"})
}

func TestRootCommand_Version(t *testing.T) {
	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetArgs([]string{"--version"})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, "i18nscan version dev\nBuild date: unknown\nCommit: unknown\n", out.String())
}

func TestRootCommand_ConfigFlagReachesSubcommands(t *testing.T) {
	dir := t.TempDir()
	testhelpers.Chdir(t, dir)
	configPath := filepath.Join(dir, "scan.toml")
	require.NoError(t, os.WriteFile(configPath, []byte("platforms = [\"web\"]\nextensions = [\"js\"]\n"), 0o644))

	cmd := NewRootCommand()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs([]string{"extensions", "--config", configPath})

	require.NoError(t, cmd.Execute())

	assert.Equal(t, ".web.js\n.js\n", out.String())
}
