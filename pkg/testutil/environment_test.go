package testutil

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pathtitle/pkg/paths"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

func TestNewEnvironment_MemoryOnly(t *testing.T) {
	env := NewEnvironment(t, EnvMemoryOnly)
	env.Mkdir("daily", "projects/alpha")
	env.WriteFile("daily/note.md", "# note")

	folders, err := env.Vault().FolderPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{"/", "daily", "projects", "projects/alpha"}, folders)
	assert.True(t, env.Vault().HasDocument("daily/note.md"))

	_, err = os.Stat(env.Path("daily"))
	assert.True(t, os.IsNotExist(err), "memory vault should not touch the disk")
}

func TestNewEnvironment_Isolated(t *testing.T) {
	env := NewEnvironment(t, EnvIsolated)

	assert.Equal(t, env.ConfigDir, os.Getenv(paths.EnvConfigDir))
	assert.Equal(t, env.StateDir, os.Getenv(paths.EnvStateDir))

	info, err := os.Stat(env.Path(paths.AppDataDir))
	require.NoError(t, err)
	assert.True(t, info.IsDir())

	p, err := paths.New(env.VaultRoot, "")
	require.NoError(t, err)
	assert.Equal(t, env.PluginDataPath(), p.PluginDataPath())
}

func TestLoadSettings(t *testing.T) {
	env := NewEnvironment(t, EnvIsolated)
	env.WriteSettings(`{"fontSize": "63%", "pathSettings": [{"type": "text", "match": "a", "replace": "b"}]}`)

	s := env.LoadSettings()
	assert.Equal(t, "63%", s.FontSize)
	assert.Equal(t, []rules.Rule{{Kind: rules.KindText, Match: "a", Replace: "b"}}, s.PathSettings)
}
