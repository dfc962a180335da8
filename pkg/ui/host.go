package ui

import (
	"sync"

	"github.com/arthur-debert/pathtitle/pkg/plugin"
	"github.com/arthur-debert/pathtitle/pkg/ui/display"
	"github.com/arthur-debert/pathtitle/pkg/vault"
)

// PaneHost hosts the plugin on the command line.
// Each document passed in is one pane; titles are collected until Flush.
type PaneHost struct {
	mu     sync.Mutex
	panes  []plugin.Pane
	titles map[string]plugin.Title
}

// NewPaneHost opens one pane per vault-relative document
func NewPaneHost(documents []string) *PaneHost {
	h := &PaneHost{titles: make(map[string]plugin.Title)}
	for _, doc := range documents {
		h.panes = append(h.panes, plugin.Pane{ID: doc, Document: doc})
	}
	return h
}

// Panes implements plugin.Host
func (h *PaneHost) Panes() []plugin.Pane {
	h.mu.Lock()
	defer h.mu.Unlock()
	out := make([]plugin.Pane, len(h.panes))
	copy(out, h.panes)
	return out
}

// ShowTitle implements plugin.Host
func (h *PaneHost) ShowTitle(pane plugin.Pane, title plugin.Title) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.titles[pane.ID] = title
}

// ClearTitle implements plugin.Host
func (h *PaneHost) ClearTitle(pane plugin.Pane) {
	h.mu.Lock()
	defer h.mu.Unlock()
	delete(h.titles, pane.ID)
}

// Result snapshots the current titles in pane order
func (h *PaneHost) Result(command string) *display.TitlesResult {
	h.mu.Lock()
	defer h.mu.Unlock()

	res := &display.TitlesResult{Command: command, Titles: make([]display.TitleLine, 0, len(h.panes))}
	for _, pane := range h.panes {
		line := display.TitleLine{Input: pane.Document, Folder: vault.ParentPath(pane.Document)}
		if title, ok := h.titles[pane.ID]; ok {
			line.Title = title.Path
			line.FontSize = title.FontSize
		}
		res.Titles = append(res.Titles, line)
	}
	return res
}

// Flush renders the current titles
func (h *PaneHost) Flush(r Renderer, command string) error {
	return r.RenderResult(h.Result(command))
}
