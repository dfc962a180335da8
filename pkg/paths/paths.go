package paths

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"

	"github.com/arthur-debert/pathtitle/pkg/errors"
)

// Environment variable names
const (
	// EnvVaultRoot selects the vault directory
	EnvVaultRoot = "PATHTITLE_VAULT"

	// EnvSettings selects the settings file
	EnvSettings = "PATHTITLE_SETTINGS"

	// EnvConfigDir overrides the XDG config directory for pathtitle
	EnvConfigDir = "PATHTITLE_CONFIG_DIR"

	// EnvStateDir overrides the XDG state directory for pathtitle
	EnvStateDir = "PATHTITLE_STATE_DIR"

	// EnvHome is the standard home directory variable
	EnvHome = "HOME"
)

// Fixed names
const (
	// AppDirName is the directory name used under the XDG roots
	AppDirName = "pathtitle"

	// AppDataDir is the folder where the note-taking app keeps vault metadata
	AppDataDir = ".obsidian"

	// PluginID is the add-on's folder name under <vault>/.obsidian/plugins
	PluginID = "path-title"

	// PluginDataFile is the settings blob the app writes for the add-on
	PluginDataFile = "data.json"

	// SettingsFileName is the default settings file in the config dir
	SettingsFileName = "settings.toml"

	// UndoFileName keeps the pending undo entry between invocations
	UndoFileName = "undo.toml"

	// LogFileName is the name of the log file
	LogFileName = "pathtitle.log"
)

// SettingsSource says where the settings path came from
type SettingsSource string

const (
	SourceFlag    SettingsSource = "flag"
	SourceEnv     SettingsSource = "env"
	SourceVault   SettingsSource = "vault"
	SourceDefault SettingsSource = "default"
)

// Paths provides centralized path management for pathtitle
type Paths interface {
	VaultRoot() string
	UsedFallback() bool
	ConfigDir() string
	StateDir() string
	PluginDataPath() string
	DefaultSettingsPath() string
	SettingsPath() string
	SettingsSource() SettingsSource
	UndoPath() string
	LogFilePath() string
	NormalizePath(path string) (string, error)
	DocumentPath(arg string) (string, error)
}

type paths struct {
	vaultRoot      string
	usedFallback   bool
	xdgConfig      string
	xdgState       string
	settingsPath   string
	settingsSource SettingsSource
}

// New resolves every location. Empty arguments fall back to the
// environment and then to defaults.
func New(vaultRoot, settingsPath string) (Paths, error) {
	p := &paths{}

	if vaultRoot == "" {
		root, usedFallback, err := findVaultRoot()
		if err != nil {
			return nil, err
		}
		p.vaultRoot = root
		p.usedFallback = usedFallback
	} else {
		p.vaultRoot = expandHome(vaultRoot)
	}

	absRoot, err := filepath.Abs(p.vaultRoot)
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path for vault root")
	}
	p.vaultRoot = absRoot

	p.setupXDGDirs()
	p.resolveSettings(settingsPath)
	return p, nil
}

// setupXDGDirs initializes XDG directories, respecting environment overrides
func (p *paths) setupXDGDirs() {
	if configDir := os.Getenv(EnvConfigDir); configDir != "" {
		p.xdgConfig = expandHome(configDir)
	} else {
		p.xdgConfig = filepath.Join(xdg.ConfigHome, AppDirName)
	}

	if stateDir := os.Getenv(EnvStateDir); stateDir != "" {
		p.xdgState = expandHome(stateDir)
	} else {
		p.xdgState = filepath.Join(xdg.StateHome, AppDirName)
	}
}

func (p *paths) resolveSettings(explicit string) {
	switch {
	case explicit != "":
		p.settingsPath, p.settingsSource = expandHome(explicit), SourceFlag
	case os.Getenv(EnvSettings) != "":
		p.settingsPath, p.settingsSource = expandHome(os.Getenv(EnvSettings)), SourceEnv
	case fileExists(p.PluginDataPath()):
		p.settingsPath, p.settingsSource = p.PluginDataPath(), SourceVault
	default:
		p.settingsPath, p.settingsSource = p.DefaultSettingsPath(), SourceDefault
	}
}

// findVaultRoot determines the vault root using the following priority:
// 1. PATHTITLE_VAULT environment variable
// 2. The nearest ancestor of the working directory holding .obsidian
// 3. Current working directory (fallback)
func findVaultRoot() (string, bool, error) {
	if root := os.Getenv(EnvVaultRoot); root != "" {
		return expandHome(root), false, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", false, errors.Wrapf(err, errors.ErrFileAccess, "failed to get current directory")
	}

	for dir := cwd; ; {
		if info, err := os.Stat(filepath.Join(dir, AppDataDir)); err == nil && info.IsDir() {
			return dir, false, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return cwd, true, nil
}

// expandHome expands ~ to the home directory
func expandHome(path string) string {
	if path == "" || path[0] != '~' {
		return path
	}

	homeDir, err := os.UserHomeDir()
	if err != nil {
		homeDir = os.Getenv(EnvHome)
		if homeDir == "" {
			return path
		}
	}

	if len(path) == 1 {
		return homeDir
	}
	if path[1] == '/' || path[1] == filepath.Separator {
		return filepath.Join(homeDir, path[2:])
	}

	// ~user is not expanded
	return path
}

// ExpandHome expands a leading ~ in path
func ExpandHome(path string) string {
	return expandHome(path)
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}

// VaultRoot returns the absolute vault directory
func (p *paths) VaultRoot() string {
	return p.vaultRoot
}

// UsedFallback returns true if the working directory was used as vault root
func (p *paths) UsedFallback() bool {
	return p.usedFallback
}

// ConfigDir returns the XDG config directory for pathtitle
func (p *paths) ConfigDir() string {
	return p.xdgConfig
}

// StateDir returns the XDG state directory for pathtitle
func (p *paths) StateDir() string {
	return p.xdgState
}

// PluginDataPath returns the settings blob location inside the vault
func (p *paths) PluginDataPath() string {
	return filepath.Join(p.vaultRoot, AppDataDir, "plugins", PluginID, PluginDataFile)
}

// DefaultSettingsPath returns the settings file in the config directory
func (p *paths) DefaultSettingsPath() string {
	return filepath.Join(p.xdgConfig, SettingsFileName)
}

// SettingsPath returns the resolved settings file
func (p *paths) SettingsPath() string {
	return p.settingsPath
}

// SettingsSource returns which rule picked SettingsPath
func (p *paths) SettingsSource() SettingsSource {
	return p.settingsSource
}

// UndoPath returns the file holding the pending undo entry
func (p *paths) UndoPath() string {
	return filepath.Join(p.xdgState, UndoFileName)
}

// LogFilePath returns the log file location
func (p *paths) LogFilePath() string {
	return filepath.Join(p.xdgState, LogFileName)
}

// NormalizePath expands home, makes the path absolute and cleans it
func (p *paths) NormalizePath(path string) (string, error) {
	if path == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty path")
	}

	abs, err := filepath.Abs(expandHome(path))
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrFileAccess, "failed to get absolute path")
	}
	return filepath.Clean(abs), nil
}

// DocumentPath turns a document argument into a vault-relative,
// slash-separated path. Relative arguments are taken as vault-relative;
// absolute ones must lie inside the vault.
func (p *paths) DocumentPath(arg string) (string, error) {
	if arg == "" {
		return "", errors.New(errors.ErrInvalidInput, "empty document path")
	}

	expanded := expandHome(arg)
	if !filepath.IsAbs(expanded) {
		rel := filepath.ToSlash(filepath.Clean(expanded))
		if rel == ".." || strings.HasPrefix(rel, "../") {
			return "", errors.Newf(errors.ErrInvalidInput, "document %q is outside the vault", arg).
				WithDetail("vault", p.vaultRoot)
		}
		return strings.TrimPrefix(rel, "./"), nil
	}

	rel, err := filepath.Rel(p.vaultRoot, filepath.Clean(expanded))
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		return "", errors.Newf(errors.ErrInvalidInput, "document %q is outside the vault", arg).
			WithDetail("vault", p.vaultRoot)
	}
	return filepath.ToSlash(rel), nil
}
