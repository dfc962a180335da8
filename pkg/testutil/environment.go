package testutil

import (
	"path/filepath"
	"testing"

	"github.com/spf13/afero"

	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/filesystem"
	"github.com/arthur-debert/pathtitle/pkg/paths"
	"github.com/arthur-debert/pathtitle/pkg/vault"
)

// EnvType defines the type of test environment
type EnvType int

const (
	EnvMemoryOnly EnvType = iota // Pure in-memory, no real filesystem
	EnvIsolated                  // Real filesystem in temp directories
)

// Environment is a vault plus the config and state directories around it
type Environment struct {
	VaultRoot string
	ConfigDir string
	StateDir  string

	FS   afero.Fs
	Type EnvType

	t *testing.T
}

// NewEnvironment creates an empty vault holding only the app data folder
func NewEnvironment(t *testing.T, envType EnvType) *Environment {
	t.Helper()

	env := &Environment{t: t, Type: envType}
	switch envType {
	case EnvMemoryOnly:
		env.FS = filesystem.NewMemory()
		env.VaultRoot = "/vault"
		env.ConfigDir = "/config"
		env.StateDir = "/state"
	default:
		env.FS = filesystem.NewOS()
		env.VaultRoot = t.TempDir()
		env.ConfigDir = t.TempDir()
		env.StateDir = t.TempDir()

		t.Setenv(paths.EnvConfigDir, env.ConfigDir)
		t.Setenv(paths.EnvStateDir, env.StateDir)
		t.Setenv(paths.EnvVaultRoot, "")
		t.Setenv(paths.EnvSettings, "")
		t.Setenv(config.EnvPrefix+"FONT_SIZE", "")
	}

	env.Mkdir(paths.AppDataDir)
	return env
}

// Path returns the location of a slash-separated vault-relative path
func (e *Environment) Path(rel string) string {
	return filepath.Join(e.VaultRoot, filepath.FromSlash(rel))
}

// Mkdir creates folders inside the vault
func (e *Environment) Mkdir(rels ...string) {
	e.t.Helper()
	for _, rel := range rels {
		if err := e.FS.MkdirAll(e.Path(rel), 0755); err != nil {
			e.t.Fatalf("Failed to create %s: %v", rel, err)
		}
	}
}

// WriteFile writes a vault file, creating its folder
func (e *Environment) WriteFile(rel, content string) string {
	e.t.Helper()
	return e.writeAbs(e.Path(rel), content)
}

// PluginDataPath returns where the app keeps the add-on settings
func (e *Environment) PluginDataPath() string {
	return filepath.Join(e.VaultRoot, paths.AppDataDir, "plugins", paths.PluginID, paths.PluginDataFile)
}

// WriteSettings writes the add-on settings blob into the vault
func (e *Environment) WriteSettings(content string) string {
	e.t.Helper()
	return e.writeAbs(e.PluginDataPath(), content)
}

// WriteConfigFile writes a file into the config directory
func (e *Environment) WriteConfigFile(name, content string) string {
	e.t.Helper()
	return e.writeAbs(filepath.Join(e.ConfigDir, name), content)
}

// Vault opens the environment's vault
func (e *Environment) Vault() *vault.Vault {
	return vault.New(e.FS, e.VaultRoot)
}

// LoadSettings reads the add-on settings back. Settings files are read
// from disk, so this needs an EnvIsolated environment.
func (e *Environment) LoadSettings() *config.Settings {
	e.t.Helper()
	if e.Type != EnvIsolated {
		e.t.Fatalf("LoadSettings needs an isolated environment")
	}
	s, err := config.NewFileStore(e.PluginDataPath()).Load()
	if err != nil {
		e.t.Fatalf("Failed to load settings: %v", err)
	}
	return s
}

func (e *Environment) writeAbs(path, content string) string {
	if err := e.FS.MkdirAll(filepath.Dir(path), 0755); err != nil {
		e.t.Fatalf("Failed to create %s: %v", filepath.Dir(path), err)
	}
	if err := afero.WriteFile(e.FS, path, []byte(content), 0644); err != nil {
		e.t.Fatalf("Failed to write %s: %v", path, err)
	}
	return path
}
