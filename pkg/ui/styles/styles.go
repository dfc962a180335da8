// Package styles holds the named lipgloss styles used by terminal output.
//
// Styles are declared in the embedded styles.yaml with adaptive colors,
// so the same names work on light and dark terminals.
package styles

import (
	_ "embed"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
)

// ColorDef is an adaptive color in YAML
type ColorDef struct {
	Light string `yaml:"light"`
	Dark  string `yaml:"dark"`
}

// StyleDef is a style in YAML
type StyleDef struct {
	Bold        bool   `yaml:"bold,omitempty"`
	Italic      bool   `yaml:"italic,omitempty"`
	Underline   bool   `yaml:"underline,omitempty"`
	Faint       bool   `yaml:"faint,omitempty"`
	Foreground  string `yaml:"foreground,omitempty"`
	Background  string `yaml:"background,omitempty"`
	Align       string `yaml:"align,omitempty"`
	MarginLeft  int    `yaml:"marginLeft,omitempty"`
	PaddingLeft int    `yaml:"paddingLeft,omitempty"`
}

// Config is the whole styles document
type Config struct {
	Colors map[string]ColorDef `yaml:"colors"`
	Styles map[string]StyleDef `yaml:"styles"`
}

// Registry maps style names to lipgloss styles
type Registry struct {
	colors map[string]lipgloss.AdaptiveColor
	styles map[string]lipgloss.Style
}

//go:embed styles.yaml
var embeddedStyles []byte

var (
	defaultOnce     sync.Once
	defaultRegistry *Registry
)

// Default returns the registry built from the embedded styles.
// A broken embedded file yields an empty registry, which renders unstyled.
func Default() *Registry {
	defaultOnce.Do(func() {
		r, err := Parse(embeddedStyles)
		if err != nil {
			logger := logging.GetLogger("ui.styles")
			logger.Warn().Err(err).Msg("Embedded styles are invalid, output will be unstyled")
			r = &Registry{
				colors: map[string]lipgloss.AdaptiveColor{},
				styles: map[string]lipgloss.Style{},
			}
		}
		defaultRegistry = r
	})
	return defaultRegistry
}

// Parse builds a registry from YAML
func Parse(data []byte) (*Registry, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to parse styles")
	}

	r := &Registry{
		colors: make(map[string]lipgloss.AdaptiveColor, len(cfg.Colors)),
		styles: make(map[string]lipgloss.Style, len(cfg.Styles)),
	}
	for name, def := range cfg.Colors {
		r.colors[name] = lipgloss.AdaptiveColor{Light: def.Light, Dark: def.Dark}
	}
	for name, def := range cfg.Styles {
		r.styles[name] = r.build(def)
	}
	return r, nil
}

func (r *Registry) build(def StyleDef) lipgloss.Style {
	style := lipgloss.NewStyle()

	if def.Bold {
		style = style.Bold(true)
	}
	if def.Italic {
		style = style.Italic(true)
	}
	if def.Underline {
		style = style.Underline(true)
	}
	if def.Faint {
		style = style.Faint(true)
	}

	if color, ok := r.colors[def.Foreground]; ok {
		style = style.Foreground(color)
	}
	if color, ok := r.colors[def.Background]; ok {
		style = style.Background(color)
	}

	switch def.Align {
	case "center":
		style = style.Align(lipgloss.Center)
	case "right":
		style = style.Align(lipgloss.Right)
	}

	if def.MarginLeft > 0 {
		style = style.MarginLeft(def.MarginLeft)
	}
	if def.PaddingLeft > 0 {
		style = style.PaddingLeft(def.PaddingLeft)
	}
	return style
}

// Has reports whether name is defined
func (r *Registry) Has(name string) bool {
	_, ok := r.styles[name]
	return ok
}

// Get returns the named style, or a plain style when it is not defined
func (r *Registry) Get(name string) lipgloss.Style {
	if style, ok := r.styles[name]; ok {
		return style
	}
	return lipgloss.NewStyle()
}

// Render applies the named style to s
func (r *Registry) Render(name, s string) string {
	return r.Get(name).Render(s)
}

// Len returns the number of defined styles
func (r *Registry) Len() int {
	return len(r.styles)
}
