package config

import (
	"bytes"
	"encoding/json"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"
	"gopkg.in/yaml.v3"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/filesystem"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

// Store loads and saves the settings blob
type Store interface {
	Load() (*Settings, error)
	Save(s *Settings) error
}

// FileStore keeps settings in a single file whose extension picks the format
type FileStore struct {
	path     string
	fs       afero.Fs
	loadOpts []LoadOption
}

// NewFileStore creates a store for path. Load options are applied on
// every Load.
func NewFileStore(path string, opts ...LoadOption) *FileStore {
	return &FileStore{
		path:     path,
		fs:       filesystem.NewOS(),
		loadOpts: opts,
	}
}

// Path returns the settings file location
func (s *FileStore) Path() string {
	return s.path
}

// Load reads the settings, falling back to defaults when the file is missing
func (s *FileStore) Load() (*Settings, error) {
	return Load(s.path, s.loadOpts...)
}

// Save replaces the settings file atomically
func (s *FileStore) Save(settings *Settings) error {
	data, err := Marshal(settings, FormatFor(s.path))
	if err != nil {
		return err
	}
	if err := filesystem.WriteFileAtomic(s.fs, s.path, data, 0644); err != nil {
		return errors.Wrapf(err, errors.ErrConfigSave, "failed to save settings to %s", s.path).
			WithDetail("path", s.path)
	}

	logger := logging.GetLogger("config.store")
	logger.Debug().
		Str("path", s.path).
		Int("rules", len(settings.PathSettings)).
		Msg("Saved settings")
	return nil
}

// Marshal encodes settings in format f
func Marshal(settings *Settings, f Format) ([]byte, error) {
	out := settings.Clone()
	if out.PathSettings == nil {
		out.PathSettings = []rules.Rule{}
	}

	var (
		data []byte
		err  error
	)
	switch f {
	case FormatJSON:
		var buf bytes.Buffer
		enc := json.NewEncoder(&buf)
		enc.SetEscapeHTML(false)
		enc.SetIndent("", "  ")
		err = enc.Encode(out)
		data = buf.Bytes()
	case FormatYAML:
		data, err = yaml.Marshal(out)
	default:
		data, err = toml.Marshal(out)
	}
	if err != nil {
		return nil, errors.Wrapf(err, errors.ErrConfigSave, "failed to encode settings as %s", f)
	}
	return data, nil
}
