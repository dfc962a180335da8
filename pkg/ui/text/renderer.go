// Package text provides plain text output without any styling
package text

import (
	"fmt"
	"io"

	"github.com/arthur-debert/pathtitle/pkg/ui/display"
)

// Renderer writes unstyled, line-oriented output that is easy to pipe
type Renderer struct {
	output io.Writer
}

// New creates a new text renderer
func New(output io.Writer) (*Renderer, error) {
	return &Renderer{output: output}, nil
}

// RenderResult renders the display types; anything else is printed with %+v
func (r *Renderer) RenderResult(result interface{}) error {
	switch v := result.(type) {
	case *display.TitlesResult:
		return r.renderTitles(v)
	case *display.RulesResult:
		return r.renderRules(v)
	case *display.FoldersResult:
		return r.renderFolders(v)
	case *display.FontSizeResult:
		return r.renderFontSize(v)
	default:
		_, err := fmt.Fprintf(r.output, "%+v\n", result)
		return err
	}
}

// renderTitles prints the bare title for a single input, and
// "input: title" lines otherwise
func (r *Renderer) renderTitles(res *display.TitlesResult) error {
	single := len(res.Titles) == 1
	for _, line := range res.Titles {
		var err error
		switch {
		case line.Failed():
			_, err = fmt.Fprintf(r.output, "%s: error: %s\n", line.Input, line.Error)
		case single:
			_, err = fmt.Fprintln(r.output, line.Title)
		default:
			_, err = fmt.Fprintf(r.output, "%s: %s\n", line.Input, line.Title)
		}
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRules(res *display.RulesResult) error {
	if res.Message != "" {
		if _, err := fmt.Fprintf(r.output, "%s\n\n", res.Message); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprintf(r.output, "Settings: %s\nFont size: %s\n\n",
		res.SettingsPath, display.NewFontSizeResult(res.FontSize, "").String()); err != nil {
		return err
	}

	if len(res.Rules) == 0 {
		if _, err := fmt.Fprintln(r.output, "No rules"); err != nil {
			return err
		}
	}
	for _, line := range res.Rules {
		if _, err := fmt.Fprintf(r.output, "%d. %s\n   %s: %q -> %q\n",
			line.Index, line.Heading, line.Kind, line.Match, line.Replace); err != nil {
			return err
		}
	}

	if res.Undo != nil {
		if _, err := fmt.Fprintf(r.output, "\nRemoved: %s (restore with \"rules undo\")\n", res.Undo.Heading); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderFolders(res *display.FoldersResult) error {
	for _, f := range res.Folders {
		if _, err := fmt.Fprintln(r.output, f); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderFontSize(res *display.FontSizeResult) error {
	if res.Message != "" {
		if _, err := fmt.Fprintln(r.output, res.Message); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.output, "Font size: %s\n", res.String())
	return err
}

// RenderError renders an error as plain text
func (r *Renderer) RenderError(err error) error {
	_, err2 := fmt.Fprintf(r.output, "Error: %v\n", err)
	return err2
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
