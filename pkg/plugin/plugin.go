// Package plugin is the add-on's state object. It owns the settings, the
// path cache and the rule editor, answers host lifecycle notifications and
// renders the transformed folder path of every open document through a
// Host.
package plugin

import (
	"sync"
	"time"

	"github.com/arthur-debert/pathtitle/pkg/cache"
	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/editor"
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/rules"
	"github.com/arthur-debert/pathtitle/pkg/vault"
)

// Option configures a Plugin
type Option func(*Plugin)

// WithMatchTimeout bounds each regexp replacement
func WithMatchTimeout(d time.Duration) Option {
	return func(p *Plugin) {
		p.matchTimeout = d
	}
}

// Plugin ties settings, cache, editor and host together.
//
// Lock order is editMu then mu: editMu serialises editor access, mu guards
// settings, cache and rendering.
type Plugin struct {
	editMu sync.Mutex
	mu     sync.Mutex

	store        config.Store
	host         Host
	matchTimeout time.Duration

	settings *config.Settings
	cache    *cache.PathCache
	pipeline *rules.Pipeline
	editor   *editor.Editor
	loaded   bool
}

// New creates an unloaded plugin
func New(store config.Store, host Host, opts ...Option) *Plugin {
	p := &Plugin{
		store:        store,
		host:         host,
		matchTimeout: rules.DefaultMatchTimeout,
	}
	for _, opt := range opts {
		opt(p)
	}
	p.cache = cache.New(p.resolve)
	return p
}

// Load reads the settings and renders every pane
func (p *Plugin) Load() error {
	p.editMu.Lock()
	defer p.editMu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	settings, err := p.store.Load()
	if err != nil {
		return err
	}

	p.settings = settings
	p.editor = editor.New(settings.PathSettings, editor.CommitFunc(p.CommitRules))
	p.invalidateLocked()
	p.loaded = true

	logger := logging.GetLogger("plugin")
	logger.Info().
		Int("rules", len(settings.PathSettings)).
		Str("fontSize", settings.FontSize).
		Msg("Plugin loaded")

	p.setPaneTitlesLocked()
	return nil
}

// Unload removes every rendered title and drops the cache
func (p *Plugin) Unload() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if !p.loaded {
		return nil
	}
	for _, pane := range p.host.Panes() {
		if pane.Document != "" {
			p.host.ClearTitle(pane)
		}
	}
	p.invalidateLocked()
	p.loaded = false

	logger := logging.GetLogger("plugin")
	logger.Info().Msg("Plugin unloaded")
	return nil
}

// Loaded reports whether Load succeeded and Unload was not called since
func (p *Plugin) Loaded() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Settings returns a copy of the current settings
func (p *Plugin) Settings() *config.Settings {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.settings == nil {
		return config.Default()
	}
	return p.settings.Clone()
}

// SetPaneTitles recomputes the title of every pane showing a document
func (p *Plugin) SetPaneTitles() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.setPaneTitlesLocked()
}

// OnFileOpen is called when the host opens a document
func (p *Plugin) OnFileOpen() {
	p.SetPaneTitles()
}

// OnRename is called after files or folders were renamed
func (p *Plugin) OnRename() {
	p.SetPaneTitles()
}

// OnSettingsChanged is called when the settings changed outside the plugin
func (p *Plugin) OnSettingsChanged() {
	if err := p.Reload(); err != nil {
		logger := logging.GetLogger("plugin")
		logger.Error().Err(err).Msg("Failed to reload settings")
	}
}

// Transform returns the cached transformation of folderPath
func (p *Plugin) Transform(folderPath string) (string, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return "", errors.New(errors.ErrInternal, "plugin is not loaded")
	}
	return p.cache.Get(folderPath)
}

// SetFontSize persists a new font size and re-renders
func (p *Plugin) SetFontSize(size string) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return errors.New(errors.ErrInternal, "plugin is not loaded")
	}

	next := p.settings.Clone()
	next.FontSize = size
	return p.saveLocked(next)
}

// Editor returns the rule editor. Hosts that also run a watcher should
// go through Edit instead.
func (p *Plugin) Editor() *editor.Editor {
	return p.editor
}

// Edit runs fn with exclusive access to the editor
func (p *Plugin) Edit(fn func(e *editor.Editor) error) error {
	p.editMu.Lock()
	defer p.editMu.Unlock()
	if p.editor == nil {
		return errors.New(errors.ErrInternal, "plugin is not loaded")
	}
	return fn(p.editor)
}

// CommitRules persists list, invalidates the cache and re-renders
func (p *Plugin) CommitRules(list []rules.Rule) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.settings == nil {
		return errors.New(errors.ErrInternal, "plugin is not loaded")
	}

	next := p.settings.Clone()
	next.PathSettings = list
	return p.saveLocked(next)
}

// Reload re-reads the settings from the store
func (p *Plugin) Reload() error {
	p.editMu.Lock()
	defer p.editMu.Unlock()
	p.mu.Lock()
	defer p.mu.Unlock()

	settings, err := p.store.Load()
	if err != nil {
		return err
	}
	p.settings = settings
	if p.editor != nil {
		p.editor.Reset(settings.PathSettings)
	}
	p.invalidateLocked()

	logger := logging.GetLogger("plugin")
	logger.Debug().Int("rules", len(settings.PathSettings)).Msg("Settings reloaded")
	if p.loaded {
		p.setPaneTitlesLocked()
	}
	return nil
}

func (p *Plugin) saveLocked(next *config.Settings) error {
	if err := p.store.Save(next); err != nil {
		return err
	}
	p.settings = next
	p.invalidateLocked()
	p.setPaneTitlesLocked()
	return nil
}

func (p *Plugin) invalidateLocked() {
	p.cache.Invalidate()
	p.pipeline = nil
}

// resolve is the cache's miss path; it runs with mu held
func (p *Plugin) resolve(folderPath string) (string, error) {
	if p.pipeline == nil {
		pipeline, err := rules.Compile(p.settings.PathSettings, rules.WithMatchTimeout(p.matchTimeout))
		if err != nil {
			return "", err
		}
		p.pipeline = pipeline
	}
	return p.pipeline.Apply(folderPath)
}

func (p *Plugin) setPaneTitlesLocked() {
	if !p.loaded {
		return
	}
	logger := logging.GetLogger("plugin")
	defer logging.LogOperationStart(logger, "set-pane-titles")()

	fontSize := p.settings.FontSize
	if fontSize == "" {
		fontSize = config.DefaultFontSize
	}

	for _, pane := range p.host.Panes() {
		if pane.Document == "" {
			continue
		}

		folder := vault.ParentPath(pane.Document)
		title, err := p.cache.Get(folder)
		if err != nil {
			logger.Error().Err(err).
				Str("pane", pane.ID).
				Str("folder", folder).
				Msg("Cannot transform folder path")
			p.host.ClearTitle(pane)
			continue
		}

		if title == "" {
			p.host.ClearTitle(pane)
			continue
		}
		p.host.ShowTitle(pane, Title{Path: title, FontSize: fontSize})
	}
}
