// Package terminal provides rich terminal output with colors and styling
package terminal

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pterm/pterm"

	"github.com/arthur-debert/pathtitle/pkg/ui/display"
	"github.com/arthur-debert/pathtitle/pkg/ui/styles"
)

// Renderer styles output with lipgloss and lays rule lists out with pterm
type Renderer struct {
	output io.Writer
	styles *styles.Registry
}

// New creates a new terminal renderer
func New(w io.Writer) (*Renderer, error) {
	return &Renderer{
		output: w,
		styles: styles.Default(),
	}, nil
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

// titleStyle maps the stored font size onto the closest terminal emphasis
func titleStyle(fontSize string) string {
	switch fontSize {
	case "100%":
		return "TitleLarge"
	case "63%":
		return "TitleSmall"
	default:
		return "TitleMedium"
	}
}

func (r *Renderer) renderTitles(res *display.TitlesResult) error {
	for _, line := range res.Titles {
		var body string
		switch {
		case line.Failed():
			body = r.styles.Render("Error", "error: "+line.Error)
		case line.Title == "":
			body = r.styles.Render("Muted", "(no title)")
		default:
			body = r.styles.Render(titleStyle(line.FontSize), line.Title)
		}
		if _, err := fmt.Fprintf(r.output, "%s\n  %s\n",
			r.styles.Render("Document", line.Input), body); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderRules(res *display.RulesResult) error {
	if res.Message != "" {
		if _, err := fmt.Fprintf(r.output, "%s\n\n", r.styles.Render("Success", res.Message)); err != nil {
			return err
		}
	}

	fontSize := display.NewFontSizeResult(res.FontSize, "").String()
	if _, err := fmt.Fprintf(r.output, "%s %s\n%s %s\n\n",
		r.styles.Render("Header", "Settings"), r.styles.Render("Muted", res.SettingsPath),
		r.styles.Render("Header", "Font size"), fontSize); err != nil {
		return err
	}

	if len(res.Rules) == 0 {
		if _, err := fmt.Fprintln(r.output, r.styles.Render("Muted", "No rules yet. Add one with \"rules add\".")); err != nil {
			return err
		}
	} else {
		table, err := r.rulesTable(res.Rules)
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintln(r.output, table); err != nil {
			return err
		}
	}

	if res.Undo != nil {
		notice := fmt.Sprintf("Removed: %s. Restore it with \"rules undo\".", res.Undo.Heading)
		if _, err := fmt.Fprintf(r.output, "\n%s\n", r.styles.Render("Undo", notice)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) rulesTable(lines []display.RuleLine) (string, error) {
	data := [][]string{{"#", "Type", "Match", "Replace", "Description"}}
	for _, line := range lines {
		data = append(data, []string{
			strconv.Itoa(line.Index),
			r.styles.Render("Kind", line.Kind),
			r.styles.Render("Pattern", line.Match),
			line.Replace,
			r.styles.Render("Heading", line.Heading),
		})
	}
	return pterm.DefaultTable.WithHasHeader().WithData(data).Srender()
}

func (r *Renderer) renderFolders(res *display.FoldersResult) error {
	for _, f := range res.Folders {
		if _, err := fmt.Fprintln(r.output, r.styles.Render("Folder", f)); err != nil {
			return err
		}
	}
	return nil
}

func (r *Renderer) renderFontSize(res *display.FontSizeResult) error {
	if res.Message != "" {
		if _, err := fmt.Fprintln(r.output, r.styles.Render("Success", res.Message)); err != nil {
			return err
		}
	}
	_, err := fmt.Fprintf(r.output, "%s %s\n",
		r.styles.Render("Header", "Font size"), r.styles.Render(titleStyle(res.Value), res.String()))
	return err
}

// RenderError renders an error in the error style
func (r *Renderer) RenderError(err error) error {
	_, werr := fmt.Fprintf(r.output, "%s %v\n", r.styles.Render("Error", "Error:"), err)
	return werr
}

// RenderMessage renders a simple message
func (r *Renderer) RenderMessage(msg string) error {
	_, err := fmt.Fprintln(r.output, msg)
	return err
}
