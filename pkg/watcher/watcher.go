// Package watcher turns filesystem activity in a vault into the two
// notifications the add-on cares about: the folder tree changed (a
// document or folder was created, renamed or removed) and the settings
// file changed. Bursts of events are coalesced with a trailing debounce.
package watcher

import (
	"context"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/vault"
)

// DefaultDebounce is the quiet period after the last event before a
// notification fires
const DefaultDebounce = 100 * time.Millisecond

// Handler receives debounced notifications. Calls come from the watcher
// goroutine, one at a time.
type Handler interface {
	OnRename()
	OnSettingsChanged()
}

// Stats counts watcher activity
type Stats struct {
	Events          int
	Renames         int
	SettingsChanges int
	Errors          int
}

// Option configures a Watcher
type Option func(*Watcher)

// WithDebounce overrides DefaultDebounce
func WithDebounce(d time.Duration) Option {
	return func(w *Watcher) {
		w.debounce = d
	}
}

// Watcher watches a vault tree and a settings file
type Watcher struct {
	mu           sync.Mutex
	fsw          *fsnotify.Watcher
	vault        *vault.Vault
	settingsPath string
	handler      Handler
	debounce     time.Duration
	stopCh       chan struct{}
	doneCh       chan struct{}
	running      bool
	closed       bool
	stats        Stats
}

// New creates a watcher. settingsPath may be empty.
func New(v *vault.Vault, settingsPath string, h Handler, opts ...Option) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrWatch, "failed to create filesystem watcher")
	}

	w := &Watcher{
		fsw:      fsw,
		vault:    v,
		handler:  h,
		debounce: DefaultDebounce,
		stopCh:   make(chan struct{}),
		doneCh:   make(chan struct{}),
	}
	if settingsPath != "" {
		w.settingsPath = filepath.Clean(settingsPath)
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// Start adds every vault folder and the settings directory to the watch
// list and begins delivering notifications. It does not block.
// A watcher whose Start failed is closed and cannot be started again.
func (w *Watcher) Start(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.running {
		return nil
	}
	if w.closed {
		return errors.New(errors.ErrWatch, "watcher is closed")
	}

	logger := logging.GetLogger("watcher")

	folders, err := w.vault.FolderPaths()
	if err != nil {
		w.closeLocked()
		return err
	}
	for _, folder := range folders {
		w.addDir(w.absFolder(folder))
	}

	if w.settingsPath != "" {
		dir := filepath.Dir(w.settingsPath)
		if err := w.fsw.Add(dir); err != nil {
			logger.Warn().Err(err).Str("dir", dir).Msg("Cannot watch settings directory, settings changes will be missed")
		}
	}

	logger.Info().
		Str("vault", w.vault.Root()).
		Str("settings", w.settingsPath).
		Int("dirs", len(w.fsw.WatchList())).
		Msg("Watching for changes")

	w.running = true
	go w.run(ctx)
	return nil
}

// Stop stops the event loop, waits for it to exit and releases the
// underlying watcher. It is safe to call more than once, and before Start.
func (w *Watcher) Stop() {
	w.mu.Lock()
	running := w.running
	w.running = false
	w.mu.Unlock()

	if running {
		close(w.stopCh)
		<-w.doneCh
	}

	w.mu.Lock()
	w.closeLocked()
	w.mu.Unlock()
}

func (w *Watcher) closeLocked() {
	if w.closed {
		return
	}
	w.closed = true
	if err := w.fsw.Close(); err != nil {
		logger := logging.GetLogger("watcher")
		logger.Error().Err(err).Msg("Error closing watcher")
	}
}

// Done is closed once the event loop has exited
func (w *Watcher) Done() <-chan struct{} {
	return w.doneCh
}

// Stats returns a snapshot of the counters
func (w *Watcher) Stats() Stats {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stats
}

func (w *Watcher) run(ctx context.Context) {
	defer close(w.doneCh)
	logger := logging.GetLogger("watcher")

	rename := newDebouncer(w.debounce)
	settings := newDebouncer(w.debounce)
	defer rename.stop()
	defer settings.stop()

	for {
		select {
		case <-ctx.Done():
			logger.Debug().Msg("Context cancelled")
			return

		case <-w.stopCh:
			logger.Debug().Msg("Stop signal received")
			return

		case event, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			w.count(func(s *Stats) { s.Events++ })
			switch w.classify(event) {
			case eventSettings:
				settings.poke()
			case eventTree:
				rename.poke()
			}

		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logger.Error().Err(err).Msg("Watcher error")
			w.count(func(s *Stats) { s.Errors++ })

		case <-rename.fired():
			rename.reset()
			w.count(func(s *Stats) { s.Renames++ })
			logger.Debug().Msg("Vault tree changed")
			w.handler.OnRename()

		case <-settings.fired():
			settings.reset()
			w.count(func(s *Stats) { s.SettingsChanges++ })
			logger.Debug().Str("path", w.settingsPath).Msg("Settings file changed")
			w.handler.OnSettingsChanged()
		}
	}
}

type eventKind int

const (
	eventIgnored eventKind = iota
	eventTree
	eventSettings
)

func (w *Watcher) classify(event fsnotify.Event) eventKind {
	name := filepath.Clean(event.Name)

	if w.settingsPath != "" && name == w.settingsPath {
		if event.Has(fsnotify.Write) || event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) {
			return eventSettings
		}
		return eventIgnored
	}

	rel, err := filepath.Rel(w.vault.Root(), name)
	if err != nil || rel == "." || strings.HasPrefix(rel, "..") || hidden(rel) {
		return eventIgnored
	}

	if !(event.Has(fsnotify.Create) || event.Has(fsnotify.Rename) || event.Has(fsnotify.Remove)) {
		return eventIgnored
	}

	// New folders need their own watch
	if event.Has(fsnotify.Create) {
		w.addTree(name)
	}
	logger := logging.GetLogger("watcher")
	logger.Trace().Str("event", event.Op.String()).Str("path", rel).Msg("Tree event")
	return eventTree
}

func (w *Watcher) addTree(dir string) {
	sub := vault.New(w.vault.Fs(), dir)
	folders, err := sub.FolderPaths()
	if err != nil {
		return
	}
	for _, folder := range folders {
		if folder == vault.RootPath {
			w.addDir(dir)
			continue
		}
		w.addDir(filepath.Join(dir, filepath.FromSlash(folder)))
	}
}

func (w *Watcher) addDir(dir string) {
	if err := w.fsw.Add(dir); err != nil {
		logger := logging.GetLogger("watcher")
		logger.Warn().Err(err).Str("dir", dir).Msg("Cannot watch folder")
	}
}

func (w *Watcher) absFolder(folder string) string {
	if folder == vault.RootPath {
		return w.vault.Root()
	}
	return filepath.Join(w.vault.Root(), filepath.FromSlash(folder))
}

func (w *Watcher) count(f func(*Stats)) {
	w.mu.Lock()
	f(&w.stats)
	w.mu.Unlock()
}

func hidden(rel string) bool {
	for _, part := range strings.Split(filepath.ToSlash(rel), "/") {
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
