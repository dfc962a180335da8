// Package paths provides centralized path handling for pathtitle.
//
// It resolves the vault root, the settings file and the XDG locations used
// for per-user state. Everything else in the repository asks this package
// for locations instead of building them by hand.
//
// # Environment Variables
//
//   - PATHTITLE_VAULT: vault root (default: nearest ancestor holding .obsidian, else cwd)
//   - PATHTITLE_SETTINGS: settings file to load and save
//   - PATHTITLE_CONFIG_DIR: override $XDG_CONFIG_HOME/pathtitle
//   - PATHTITLE_STATE_DIR: override $XDG_STATE_HOME/pathtitle
//
// # Settings resolution
//
// The first of these wins:
//
//  1. an explicit path (the --settings flag)
//  2. $PATHTITLE_SETTINGS
//  3. <vault>/.obsidian/plugins/path-title/data.json, when it exists
//  4. $XDG_CONFIG_HOME/pathtitle/settings.toml
package paths
