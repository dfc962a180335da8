// Package config handles the add-on settings: the font size of the
// rendered path and the ordered replacement rules.
//
// Settings are layered with koanf: embedded defaults, then the settings
// file (TOML, YAML or JSON by extension), then PATHTITLE_* environment
// variables, then explicit overrides. Saving writes the whole blob back in
// the format of the file it came from.
package config
