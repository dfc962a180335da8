// Package display defines the results commands hand to renderers.
// Every type carries json tags so the JSON renderer can emit it directly.
package display

import (
	"fmt"

	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/rules"
)

// TitleLine is the title computed for one input
type TitleLine struct {
	// Input is what the user passed: a folder path or a document
	Input string `json:"input"`
	// Folder is the folder path the rules ran against
	Folder   string `json:"folder"`
	Title    string `json:"title"`
	FontSize string `json:"fontSize,omitempty"`
	Error    string `json:"error,omitempty"`
}

// Failed reports whether the transform failed for this line
func (l TitleLine) Failed() bool {
	return l.Error != ""
}

// TitlesResult is produced by transform, title and watch
type TitlesResult struct {
	Command string      `json:"command"`
	Titles  []TitleLine `json:"titles"`
}

// RuleLine is one rule as shown to users
type RuleLine struct {
	// Index is 1-based, matching the numbers commands accept
	Index   int    `json:"index"`
	Kind    string `json:"type"`
	Label   string `json:"label"`
	Match   string `json:"match"`
	Replace string `json:"replace"`
	Heading string `json:"heading"`
}

// NewRuleLine describes the rule stored at 0-based position i
func NewRuleLine(i int, r rules.Rule) RuleLine {
	return RuleLine{
		Index:   i + 1,
		Kind:    string(r.Kind),
		Label:   rules.Describe(r.Kind).Label,
		Match:   r.Match,
		Replace: r.Replace,
		Heading: rules.Heading(r),
	}
}

// RuleLines describes a whole list
func RuleLines(list []rules.Rule) []RuleLine {
	lines := make([]RuleLine, 0, len(list))
	for i, r := range list {
		lines = append(lines, NewRuleLine(i, r))
	}
	return lines
}

// RulesResult is produced by the rules subcommands
type RulesResult struct {
	Command      string     `json:"command"`
	SettingsPath string     `json:"settingsPath"`
	FontSize     string     `json:"fontSize"`
	Rules        []RuleLine `json:"rules"`
	// Undo is the last removed rule, positioned where undo would put it back
	Undo    *RuleLine `json:"undo,omitempty"`
	Message string    `json:"message,omitempty"`
}

// FoldersResult lists vault folders, or their names with --names
type FoldersResult struct {
	Names   bool     `json:"names"`
	Folders []string `json:"folders"`
}

// FontSizeResult reports the stored font size
type FontSizeResult struct {
	Value   string `json:"value"`
	Label   string `json:"label"`
	Message string `json:"message,omitempty"`
}

// NewFontSizeResult describes the stored value v
func NewFontSizeResult(v, message string) *FontSizeResult {
	return &FontSizeResult{Value: v, Label: config.FontSizeLabel(v), Message: message}
}

// String renders "Label (value)" for named sizes and the raw value otherwise
func (r FontSizeResult) String() string {
	if r.Label == r.Value {
		return r.Value
	}
	return fmt.Sprintf("%s (%s)", r.Label, r.Value)
}
