// Test Type: Unit Test
// Description: Tests for the config package - layered settings loading

package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PATHTITLE_FONT_SIZE", "")

	t.Run("missing_file", func(t *testing.T) {
		s, err := config.Load(filepath.Join(t.TempDir(), "nope.toml"))
		require.NoError(t, err)
		assert.Equal(t, config.DefaultFontSize, s.FontSize)
		assert.NotNil(t, s.PathSettings)
		assert.Empty(t, s.PathSettings)
	})

	t.Run("no_path", func(t *testing.T) {
		s, err := config.Load("")
		require.NoError(t, err)
		assert.Equal(t, config.Default(), s)
	})

	t.Run("missing_fields_take_defaults", func(t *testing.T) {
		path := writeFile(t, "data.json", `{"pathSettings":[{"type":"text","match":"a","replace":"b"}]}`)
		s, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "75%", s.FontSize)
		assert.Len(t, s.PathSettings, 1)
	})
}

func TestLoad_Formats(t *testing.T) {
	t.Setenv("PATHTITLE_FONT_SIZE", "")
	want := []rules.Rule{
		{Kind: rules.KindFolder, Match: "daily", Replace: "🗓"},
		{Kind: rules.KindRegexp, Match: "/([0-9]{4})([0-9]{2})([0-9]{2})$", Replace: " $1-$2-$3"},
	}

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "json_plugin_blob",
			file: "data.json",
			content: `{
  "fontSize": "63%",
  "pathSettings": [
    {"type": "folder", "match": "daily", "replace": "🗓"},
    {"type": "regexp", "match": "/([0-9]{4})([0-9]{2})([0-9]{2})$", "replace": " $1-$2-$3"}
  ]
}`,
		},
		{
			name: "toml",
			file: "settings.toml",
			content: `fontSize = "63%"

[[pathSettings]]
type = "folder"
match = "daily"
replace = "🗓"

[[pathSettings]]
type = "regexp"
match = '/([0-9]{4})([0-9]{2})([0-9]{2})$'
replace = " $1-$2-$3"
`,
		},
		{
			name: "yaml",
			file: "settings.yml",
			content: `fontSize: 63%
pathSettings:
  - type: folder
    match: daily
    replace: "🗓"
  - type: regexp
    match: '/([0-9]{4})([0-9]{2})([0-9]{2})$'
    replace: " $1-$2-$3"
`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s, err := config.Load(writeFile(t, tt.file, tt.content))
			require.NoError(t, err)
			assert.Equal(t, "63%", s.FontSize)
			assert.Equal(t, want, s.PathSettings)
		})
	}
}

func TestLoad_Layers(t *testing.T) {
	path := writeFile(t, "settings.toml", `fontSize = "63%"`)

	t.Run("env_overrides_file", func(t *testing.T) {
		t.Setenv("PATHTITLE_FONT_SIZE", "120%")
		s, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "120%", s.FontSize)
	})

	t.Run("env_ignored_when_disabled", func(t *testing.T) {
		t.Setenv("PATHTITLE_FONT_SIZE", "120%")
		s, err := config.Load(path, config.WithoutEnv())
		require.NoError(t, err)
		assert.Equal(t, "63%", s.FontSize)
	})

	t.Run("unrelated_env_ignored", func(t *testing.T) {
		t.Setenv("PATHTITLE_FONT_SIZE", "")
		t.Setenv("PATHTITLE_VAULT", "/somewhere")
		s, err := config.Load(path)
		require.NoError(t, err)
		assert.Equal(t, "63%", s.FontSize)
	})

	t.Run("overrides_win", func(t *testing.T) {
		t.Setenv("PATHTITLE_FONT_SIZE", "120%")
		s, err := config.Load(path, config.WithOverrides(map[string]interface{}{"fontSize": "100%"}))
		require.NoError(t, err)
		assert.Equal(t, "100%", s.FontSize)
	})
}

func TestLoad_RuleKinds(t *testing.T) {
	t.Setenv("PATHTITLE_FONT_SIZE", "")
	path := writeFile(t, "data.json", `{"pathSettings":[
		{"type":" Folder ","match":"a","replace":"b"},
		{"type":"fuzzy","match":"x","replace":"y"},
		{"type":"glob","match":"*","replace":"z"}
	]}`)

	s, err := config.Load(path)
	require.NoError(t, err)
	require.Len(t, s.PathSettings, 3)
	assert.Equal(t, rules.KindFolder, s.PathSettings[0].Kind)
	assert.Equal(t, rules.KindFuzzy, s.PathSettings[1].Kind)
	assert.Equal(t, rules.Kind("glob"), s.PathSettings[2].Kind, "unknown kinds are kept")
}

func TestLoad_ParseError(t *testing.T) {
	path := writeFile(t, "data.json", `{"fontSize": `)
	_, err := config.Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrConfigParse))
}

func TestParseFontSize(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"large", "100%", false},
		{"Medium", "75%", false},
		{"SMALL", "63%", false},
		{"80%", "80%", false},
		{" 1.2em ", "1.2em", false},
		{"", "", true},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := config.ParseFontSize(tt.in)
			if tt.wantErr {
				assert.True(t, errors.IsErrorCode(err, errors.ErrInvalidInput))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}

	assert.Equal(t, "Small", config.FontSizeLabel("63%"))
	assert.Equal(t, "80%", config.FontSizeLabel("80%"))
}

func TestGenerateConfigContent(t *testing.T) {
	content := config.GenerateConfigContent()
	assert.Contains(t, content, `# fontSize = "75%"`)
	assert.Contains(t, content, "# pathSettings = []")
	assert.NotContains(t, content, "\nfontSize")
}
