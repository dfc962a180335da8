package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

func TestFileStore_RoundTrip(t *testing.T) {
	t.Setenv("PATHTITLE_FONT_SIZE", "")
	settings := &config.Settings{
		FontSize: "100%",
		PathSettings: []rules.Rule{
			{Kind: rules.KindExact, Match: "trash/notes", Replace: "🗑/📝"},
			{Kind: rules.KindText, Match: `say "hi"`, Replace: "$&"},
			{Kind: rules.KindRegexp, Match: `^(.).+$`, Replace: "$1"},
		},
	}

	for _, name := range []string{"data.json", "settings.toml", "settings.yaml"} {
		t.Run(name, func(t *testing.T) {
			store := config.NewFileStore(filepath.Join(t.TempDir(), "nested", name))
			require.NoError(t, store.Save(settings))

			got, err := store.Load()
			require.NoError(t, err)
			assert.Equal(t, settings, got)
		})
	}
}

func TestFileStore_EmptyRulesStayAList(t *testing.T) {
	path := filepath.Join(t.TempDir(), "data.json")
	store := config.NewFileStore(path)

	require.NoError(t, store.Save(&config.Settings{FontSize: "75%"}))
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"pathSettings": []`)
}

func TestFileStore_SaveOverwrites(t *testing.T) {
	t.Setenv("PATHTITLE_FONT_SIZE", "")
	path := filepath.Join(t.TempDir(), "settings.toml")
	store := config.NewFileStore(path)

	require.NoError(t, store.Save(&config.Settings{FontSize: "63%"}))
	require.NoError(t, store.Save(&config.Settings{FontSize: "100%"}))

	got, err := store.Load()
	require.NoError(t, err)
	assert.Equal(t, "100%", got.FontSize)
	assert.Equal(t, path, store.Path())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1)
}

func TestMarshal_TOML(t *testing.T) {
	data, err := config.Marshal(&config.Settings{
		FontSize:     "75%",
		PathSettings: []rules.Rule{{Kind: rules.KindFolder, Match: "daily", Replace: "🗓"}},
	}, config.FormatTOML)
	require.NoError(t, err)
	assert.Contains(t, string(data), "[[pathSettings]]")
	assert.Contains(t, string(data), "type = 'folder'")
}

func TestFormatFor(t *testing.T) {
	assert.Equal(t, config.FormatJSON, config.FormatFor("/v/.obsidian/plugins/path-title/data.json"))
	assert.Equal(t, config.FormatYAML, config.FormatFor("s.YML"))
	assert.Equal(t, config.FormatYAML, config.FormatFor("s.yaml"))
	assert.Equal(t, config.FormatTOML, config.FormatFor("settings.toml"))
	assert.Equal(t, config.FormatTOML, config.FormatFor("settings"))
}
