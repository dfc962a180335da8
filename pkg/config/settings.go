package config

import (
	"strings"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

// DefaultFontSize is used when the settings do not name one
const DefaultFontSize = "75%"

// Settings is the persisted add-on state.
// Key names follow the blob the note-taking app stores for the add-on.
type Settings struct {
	FontSize     string       `koanf:"fontSize" toml:"fontSize" yaml:"fontSize" json:"fontSize"`
	PathSettings []rules.Rule `koanf:"pathSettings" toml:"pathSettings" yaml:"pathSettings" json:"pathSettings"`
}

// Default returns the settings used when nothing is configured
func Default() *Settings {
	return &Settings{
		FontSize:     DefaultFontSize,
		PathSettings: []rules.Rule{},
	}
}

// Clone returns a deep copy
func (s *Settings) Clone() *Settings {
	out := &Settings{FontSize: s.FontSize, PathSettings: make([]rules.Rule, len(s.PathSettings))}
	copy(out.PathSettings, s.PathSettings)
	return out
}

// FontSizeChoice is one of the named font sizes offered to users
type FontSizeChoice struct {
	Name  string
	Label string
	Value string
}

// FontSizeChoices lists the named sizes from largest to smallest
var FontSizeChoices = []FontSizeChoice{
	{Name: "large", Label: "Large", Value: "100%"},
	{Name: "medium", Label: "Medium", Value: "75%"},
	{Name: "small", Label: "Small", Value: "63%"},
}

// ParseFontSize accepts a choice name or any CSS size and returns the
// value to store
func ParseFontSize(s string) (string, error) {
	v := strings.TrimSpace(s)
	if v == "" {
		return "", errors.New(errors.ErrInvalidInput, "font size cannot be empty")
	}
	for _, c := range FontSizeChoices {
		if strings.EqualFold(v, c.Name) {
			return c.Value, nil
		}
	}
	return v, nil
}

// FontSizeLabel names a stored font size, falling back to the raw value
func FontSizeLabel(v string) string {
	for _, c := range FontSizeChoices {
		if c.Value == v {
			return c.Label
		}
	}
	return v
}
