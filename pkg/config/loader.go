package config

import (
	"os"
	"path/filepath"
	"reflect"
	"strings"

	"github.com/go-viper/mapstructure/v2"
	koanfjson "github.com/knadh/koanf/parsers/json"
	"github.com/knadh/koanf/parsers/toml"
	koanfyaml "github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

// EnvPrefix prefixes environment variables that override settings
const EnvPrefix = "PATHTITLE_"

// envKeys are the settings keys that may be set from the environment
var envKeys = map[string]bool{
	"fontSize": true,
}

// Format is a settings file encoding
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFor picks the encoding from the file extension; TOML by default
func FormatFor(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON
	case ".yaml", ".yml":
		return FormatYAML
	default:
		return FormatTOML
	}
}

func parserFor(f Format) koanf.Parser {
	switch f {
	case FormatJSON:
		return koanfjson.Parser()
	case FormatYAML:
		return koanfyaml.Parser()
	default:
		return toml.Parser()
	}
}

// LoadOption configures Load
type LoadOption func(*loadOptions)

type loadOptions struct {
	overrides map[string]interface{}
	env       bool
}

// WithOverrides applies values on top of every other layer
func WithOverrides(overrides map[string]interface{}) LoadOption {
	return func(o *loadOptions) {
		o.overrides = overrides
	}
}

// WithoutEnv ignores PATHTITLE_* variables
func WithoutEnv() LoadOption {
	return func(o *loadOptions) {
		o.env = false
	}
}

// Load reads settings from path layered over the embedded defaults.
// A missing file is not an error: the defaults are returned.
func Load(path string, opts ...LoadOption) (*Settings, error) {
	o := &loadOptions{env: true}
	for _, opt := range opts {
		opt(o)
	}
	logger := logging.GetLogger("config.loader")

	k := koanf.New(".")

	// 1. Embedded defaults
	if err := k.Load(&rawBytesProvider{bytes: defaultSettings}, toml.Parser()); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load default settings")
	}

	// 2. Settings file
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			if err := k.Load(file.Provider(path), parserFor(FormatFor(path))); err != nil {
				return nil, errors.Wrapf(err, errors.ErrConfigParse, "failed to parse settings from %s", path).
					WithDetail("path", path)
			}
			logger.Debug().Str("path", path).Msg("Loaded settings file")
		} else if os.IsNotExist(err) {
			logger.Debug().Str("path", path).Msg("Settings file not found, using defaults")
		} else {
			return nil, errors.Wrapf(err, errors.ErrConfigLoad, "cannot read settings file %s", path).
				WithDetail("path", path)
		}
	}

	// 3. Environment
	if o.env {
		if err := k.Load(env.ProviderWithValue(EnvPrefix, ".", envKey), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load environment overrides")
		}
	}

	// 4. Explicit overrides
	if len(o.overrides) > 0 {
		if err := k.Load(confmap.Provider(o.overrides, "."), nil); err != nil {
			return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to load overrides")
		}
	}

	// 5. Unmarshal
	var cfg Settings
	unmarshalConf := koanf.UnmarshalConf{
		Tag: "koanf",
		DecoderConfig: &mapstructure.DecoderConfig{
			Result:           &cfg,
			WeaklyTypedInput: true,
			DecodeHook: mapstructure.ComposeDecodeHookFunc(
				ruleKindHookFunc(),
			),
		},
	}
	if err := k.UnmarshalWithConf("", &cfg, unmarshalConf); err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigParse, "failed to decode settings").
			WithDetail("path", path)
	}

	postProcess(&cfg, path)
	return &cfg, nil
}

// envKey maps PATHTITLE_FONT_SIZE to fontSize and drops anything that is
// not a settings key or has no value
func envKey(key, value string) (string, interface{}) {
	if value == "" {
		return "", nil
	}
	name := snakeToCamel(strings.ToLower(strings.TrimPrefix(key, EnvPrefix)))
	if !envKeys[name] {
		return "", nil
	}
	return name, value
}

func snakeToCamel(s string) string {
	parts := strings.Split(s, "_")
	for i := 1; i < len(parts); i++ {
		if parts[i] != "" {
			parts[i] = strings.ToUpper(parts[i][:1]) + parts[i][1:]
		}
	}
	return strings.Join(parts, "")
}

// ruleKindHookFunc tolerates case and surrounding space in rule kinds
func ruleKindHookFunc() mapstructure.DecodeHookFunc {
	kindType := reflect.TypeOf(rules.Kind(""))
	return func(f reflect.Type, t reflect.Type, data interface{}) (interface{}, error) {
		if f.Kind() != reflect.String || t != kindType {
			return data, nil
		}
		s := reflect.ValueOf(data).String()
		return rules.Kind(strings.ToLower(strings.TrimSpace(s))), nil
	}
}

func postProcess(cfg *Settings, path string) {
	if cfg.FontSize == "" {
		cfg.FontSize = DefaultFontSize
	}
	if cfg.PathSettings == nil {
		cfg.PathSettings = []rules.Rule{}
	}

	logger := logging.GetLogger("config.loader")
	for i, r := range cfg.PathSettings {
		if !r.Kind.Valid() {
			logger.Warn().
				Int("rule", i+1).
				Str("type", string(r.Kind)).
				Str("path", path).
				Msg("Unknown rule type, rule will never match")
		}
	}
}
