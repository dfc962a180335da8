// Test Type: Unit Test
// Description: Tests for the vault package - folder listing on an in-memory vault

package vault_test

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/vault"
)

func newVault(t *testing.T) *vault.Vault {
	t.Helper()
	fs := afero.NewMemMapFs()
	for _, dir := range []string{
		"/notes/daily",
		"/notes/projects/alpha",
		"/notes/archive/daily",
		"/notes/.obsidian/plugins/path-title",
		"/notes/.trash/old",
		"/notes/Café",
	} {
		require.NoError(t, fs.MkdirAll(dir, 0755))
	}
	require.NoError(t, afero.WriteFile(fs, "/notes/daily/20220101.md", []byte("# day"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/notes/index.md", nil, 0644))
	return vault.New(fs, "/notes")
}

func TestFolderPaths(t *testing.T) {
	v := newVault(t)

	got, err := v.FolderPaths()
	require.NoError(t, err)
	assert.Equal(t, []string{
		"/",
		"Café",
		"archive",
		"archive/daily",
		"daily",
		"projects",
		"projects/alpha",
	}, got)
}

func TestFolderPaths_MissingRoot(t *testing.T) {
	v := vault.New(afero.NewMemMapFs(), "/missing")
	_, err := v.FolderPaths()
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrVaultAccess))
}

func TestFolderNames(t *testing.T) {
	v := newVault(t)
	paths, err := v.FolderPaths()
	require.NoError(t, err)

	assert.Equal(t, []string{"Café", "archive", "daily", "projects", "alpha"}, vault.FolderNames(paths))
	assert.Empty(t, vault.FolderNames([]string{"/"}))
}

func TestParentPath(t *testing.T) {
	tests := []struct {
		doc  string
		want string
	}{
		{"daily/20220101.md", "daily"},
		{"trash/notes/x.md", "trash/notes"},
		{"index.md", ""},
		{"/index.md", ""},
		{"a/./b/../c/x.md", "a/c"},
	}
	for _, tt := range tests {
		t.Run(tt.doc, func(t *testing.T) {
			assert.Equal(t, tt.want, vault.ParentPath(tt.doc))
		})
	}
}

func TestHasDocument(t *testing.T) {
	v := newVault(t)
	assert.True(t, v.HasDocument("daily/20220101.md"))
	assert.True(t, v.HasDocument("index.md"))
	assert.False(t, v.HasDocument("daily"))
	assert.False(t, v.HasDocument("nope.md"))
}
