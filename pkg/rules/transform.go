package rules

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dlclark/regexp2"

	"github.com/arthur-debert/pathtitle/pkg/errors"
)

// DefaultMatchTimeout bounds a single regexp replacement
const DefaultMatchTimeout = time.Second

// step is one compiled rule
type step interface {
	apply(path string) (string, error)
}

type noopStep struct{}

func (noopStep) apply(path string) (string, error) { return path, nil }

type exactStep struct{ match, replace string }

func (s exactStep) apply(path string) (string, error) {
	if path == s.match {
		return s.replace, nil
	}
	return path, nil
}

type folderStep struct{ match, replace string }

func (s folderStep) apply(path string) (string, error) {
	segments := strings.Split(path, "/")
	for i, segment := range segments {
		if segment == s.match {
			segments[i] = s.replace
		}
	}
	return strings.Join(segments, "/"), nil
}

type textStep struct{ match, replace string }

func (s textStep) apply(path string) (string, error) {
	return strings.Replace(path, s.match, s.replace, 1), nil
}

type regexpStep struct {
	re      *regexp2.Regexp
	replace template
}

// apply replaces every match. regexp2 works on runes, so a path that is not
// valid UTF-8 is returned as-is rather than re-encoded.
func (s regexpStep) apply(path string) (string, error) {
	if !utf8.ValidString(path) {
		return path, nil
	}
	input := []rune(path)
	out, err := s.re.ReplaceFunc(path, func(m regexp2.Match) string {
		return s.replace.expand(&m, input)
	}, -1, -1)
	if err != nil {
		return "", errors.Wrapf(err, errors.ErrPatternInvalid,
			"regular expression /%s/ failed on %q", s.re.String(), path)
	}
	return out, nil
}

// Option configures Compile
type Option func(*options)

type options struct {
	matchTimeout time.Duration
}

// WithMatchTimeout sets the time limit of each regexp replacement
func WithMatchTimeout(d time.Duration) Option {
	return func(o *options) {
		o.matchTimeout = d
	}
}

// Pipeline is a compiled rule list
type Pipeline struct {
	steps []step
}

// Compile prepares rules for repeated application.
// It fails on the first regexp rule whose pattern does not compile.
func Compile(rules []Rule, opts ...Option) (*Pipeline, error) {
	o := &options{matchTimeout: DefaultMatchTimeout}
	for _, opt := range opts {
		opt(o)
	}

	p := &Pipeline{steps: make([]step, 0, len(rules))}
	for i, rule := range rules {
		s, err := compileStep(rule, o)
		if err != nil {
			return nil, errors.Wrapf(err, errors.ErrPatternInvalid,
				"rule %d has an invalid regular expression", i+1).
				WithDetail("index", i).
				WithDetail("pattern", rule.Match)
		}
		p.steps = append(p.steps, s)
	}
	return p, nil
}

func compileStep(rule Rule, o *options) (step, error) {
	if rule.Match == "" {
		return noopStep{}, nil
	}

	switch rule.Kind.Canonical() {
	case KindExact:
		return exactStep{match: rule.Match, replace: rule.Replace}, nil
	case KindFolder:
		return folderStep{match: rule.Match, replace: rule.Replace}, nil
	case KindText:
		return textStep{match: rule.Match, replace: rule.Replace}, nil
	case KindRegexp:
		re, err := regexp2.Compile(rule.Match, regexp2.ECMAScript)
		if err != nil {
			return nil, err
		}
		if o.matchTimeout > 0 {
			re.MatchTimeout = o.matchTimeout
		}
		return regexpStep{re: re, replace: newTemplate(re, rule.Replace)}, nil
	default:
		return noopStep{}, nil
	}
}

// Apply runs path through every step in order.
// On failure no partially transformed path is returned.
func (p *Pipeline) Apply(path string) (string, error) {
	current := path
	for i, s := range p.steps {
		next, err := s.apply(current)
		if err != nil {
			if pe, ok := err.(*errors.PathTitleError); ok {
				pe.WithDetail("index", i)
			}
			return "", err
		}
		current = next
	}
	return current, nil
}

// Len returns the number of compiled rules
func (p *Pipeline) Len() int {
	return len(p.steps)
}

// Transform applies rules to path, left to right.
// With no rules the path is returned unchanged.
func Transform(rules []Rule, path string) (string, error) {
	p, err := Compile(rules)
	if err != nil {
		return "", err
	}
	return p.Apply(path)
}
