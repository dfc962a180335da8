package state

import (
	"os"

	toml "github.com/pelletier/go-toml/v2"
	"github.com/spf13/afero"

	"github.com/arthur-debert/pathtitle/pkg/editor"
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/filesystem"
	"github.com/arthur-debert/pathtitle/pkg/logging"
)

// undoFile is the on-disk layout of the undo state
type undoFile struct {
	Settings string           `toml:"settings"`
	Entry    editor.UndoEntry `toml:"entry"`
}

// UndoStore persists the editor's undo slot
type UndoStore struct {
	fs   afero.Fs
	path string
}

// NewUndoStore creates a store writing to path on fs
func NewUndoStore(fs afero.Fs, path string) *UndoStore {
	return &UndoStore{fs: fs, path: path}
}

// Load returns the pending entry recorded for settingsPath.
// Entries recorded for another settings file are ignored.
func (s *UndoStore) Load(settingsPath string) (editor.UndoEntry, bool, error) {
	data, err := afero.ReadFile(s.fs, s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return editor.UndoEntry{}, false, nil
		}
		return editor.UndoEntry{}, false, errors.Wrapf(err, errors.ErrFileAccess, "failed to read %s", s.path)
	}

	var f undoFile
	if err := toml.Unmarshal(data, &f); err != nil {
		logger := logging.GetLogger("state.undo")
		logger.Warn().Err(err).Str("path", s.path).Msg("Ignoring unreadable undo state")
		return editor.UndoEntry{}, false, nil
	}
	if f.Settings != settingsPath {
		return editor.UndoEntry{}, false, nil
	}
	return f.Entry, true, nil
}

// Save records entry as pending for settingsPath
func (s *UndoStore) Save(settingsPath string, entry editor.UndoEntry) error {
	data, err := toml.Marshal(undoFile{Settings: settingsPath, Entry: entry})
	if err != nil {
		return errors.Wrap(err, errors.ErrInternal, "failed to encode undo state")
	}
	return filesystem.WriteFileAtomic(s.fs, s.path, data, 0644)
}

// Clear forgets any pending entry
func (s *UndoStore) Clear() error {
	if err := s.fs.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return errors.Wrapf(err, errors.ErrFileWrite, "failed to remove %s", s.path)
	}
	return nil
}

// Sync makes the store mirror the editor's undo slot
func (s *UndoStore) Sync(settingsPath string, e *editor.Editor) error {
	if entry, ok := e.Pending(); ok {
		return s.Save(settingsPath, entry)
	}
	return s.Clear()
}
