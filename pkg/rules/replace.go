package rules

import (
	"strconv"
	"strings"

	"github.com/dlclark/regexp2"
)

// template is a regexp replacement string read with the note-taking app's
// String.prototype.replace rules: $$, $&, $`, $', $n, $nn and, when the
// pattern names a group, $<name>. Any other "$" is literal.
type template struct {
	text   string
	groups int
	names  map[string]bool
}

func newTemplate(re *regexp2.Regexp, text string) template {
	t := template{text: text, groups: len(re.GetGroupNumbers()) - 1}
	for _, name := range re.GetGroupNames() {
		if _, err := strconv.Atoi(name); err != nil {
			if t.names == nil {
				t.names = make(map[string]bool)
			}
			t.names[name] = true
		}
	}
	return t
}

// expand returns the replacement for m; input is the text m was found in
func (t template) expand(m *regexp2.Match, input []rune) string {
	if !strings.Contains(t.text, "$") {
		return t.text
	}

	s := t.text
	var b strings.Builder
	for i := 0; i < len(s); i++ {
		if s[i] != '$' || i+1 == len(s) {
			b.WriteByte(s[i])
			continue
		}

		switch next := s[i+1]; {
		case next == '$':
			b.WriteByte('$')
			i++
		case next == '&':
			b.WriteString(m.String())
			i++
		case next == '`':
			b.WriteString(string(input[:m.Index]))
			i++
		case next == '\'':
			b.WriteString(string(input[m.Index+m.Length:]))
			i++
		case next >= '0' && next <= '9':
			n, width := t.groupRef(s[i+1:])
			if width == 0 {
				b.WriteByte('$')
				continue
			}
			b.WriteString(groupText(m.GroupByNumber(n)))
			i += width
		case next == '<' && t.names != nil:
			end := strings.IndexByte(s[i+2:], '>')
			if end < 0 {
				b.WriteByte('$')
				continue
			}
			if name := s[i+2 : i+2+end]; t.names[name] {
				b.WriteString(groupText(m.GroupByName(name)))
			}
			i += 2 + end
		default:
			b.WriteByte('$')
		}
	}
	return b.String()
}

// groupRef reads the group number after a "$". Two digits win when they name
// an existing group; width is 0 when no group is named ($0, or too large).
func (t template) groupRef(s string) (n, width int) {
	if len(s) >= 2 && s[1] >= '0' && s[1] <= '9' {
		if nn := int(s[0]-'0')*10 + int(s[1]-'0'); nn >= 1 && nn <= t.groups {
			return nn, 2
		}
	}
	if d := int(s[0] - '0'); d >= 1 && d <= t.groups {
		return d, 1
	}
	return 0, 0
}

// groupText is "" for groups that did not take part in the match
func groupText(g *regexp2.Group) string {
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}
