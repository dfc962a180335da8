package rules

import (
	"strings"

	"github.com/arthur-debert/pathtitle/pkg/errors"
)

// Kind identifies how a rule matches a path
type Kind string

const (
	// KindExact replaces the whole path when it equals the match
	KindExact Kind = "exact"

	// KindFolder replaces every path segment equal to the match
	KindFolder Kind = "folder"

	// KindText replaces the first literal occurrence of the match
	KindText Kind = "text"

	// KindRegexp replaces every match of a regular expression
	KindRegexp Kind = "regexp"

	// KindFuzzy is the legacy name of KindRegexp
	KindFuzzy Kind = "fuzzy"
)

// Kinds lists the selectable kinds in the order they are offered to users
var Kinds = []Kind{KindExact, KindFolder, KindText, KindRegexp}

// Canonical folds legacy aliases onto the kind they behave as
func (k Kind) Canonical() Kind {
	if k == KindFuzzy {
		return KindRegexp
	}
	return k
}

// Valid reports whether k is one of the known kinds, aliases included
func (k Kind) Valid() bool {
	switch k.Canonical() {
	case KindExact, KindFolder, KindText, KindRegexp:
		return true
	}
	return false
}

// ParseKind parses user input into a Kind.
// Matching is case-insensitive and accepts the fuzzy alias.
func ParseKind(s string) (Kind, error) {
	k := Kind(strings.ToLower(strings.TrimSpace(s)))
	if !k.Valid() {
		return "", errors.Newf(errors.ErrRuleKind, "unknown rule kind %q (want one of exact, folder, text, regexp)", s).
			WithDetail("kind", s)
	}
	return k, nil
}

// Rule is one match/replace directive.
// The struct tags match the settings blob written by the note-taking app.
type Rule struct {
	Kind    Kind   `koanf:"type" toml:"type" yaml:"type" json:"type"`
	Match   string `koanf:"match" toml:"match" yaml:"match" json:"match"`
	Replace string `koanf:"replace" toml:"replace" yaml:"replace" json:"replace"`
}

// IsNoop reports whether the rule can never change a path
func (r Rule) IsNoop() bool {
	return r.Match == "" || !r.Kind.Valid()
}
