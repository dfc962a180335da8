package rules

import (
	"fmt"
	"strings"
)

// EmptyMatchNotice is appended to headings of rules that cannot match
const EmptyMatchNotice = " (will not match any path)"

// Descriptor holds the user-facing wording for a rule kind
type Descriptor struct {
	Label       string
	MatchName   string
	MatchDesc   string
	ReplaceName string
	ReplaceDesc string

	heading func(match string) string
}

// Heading describes a rule of this kind with the given match
func (d Descriptor) Heading(match string) string {
	return d.heading(match)
}

var descriptors = map[Kind]Descriptor{
	KindExact: {
		Label:       "Exact Path",
		MatchName:   "Matching Path",
		MatchDesc:   "Exact path that will be replaced",
		ReplaceName: "Replacement Path",
		ReplaceDesc: "Path that will replace matching path",
		heading: func(match string) string {
			return fmt.Sprintf(`Path exactly matches "%s"`, escapeQuotes(match))
		},
	},
	KindFolder: {
		Label:       "Exact Folder in Path",
		MatchName:   "Matching Folder",
		MatchDesc:   "Exact folder in path that will be replaced",
		ReplaceName: "Replacement Folder",
		ReplaceDesc: "Folder that will replace matching folder",
		heading: func(match string) string {
			return fmt.Sprintf(`Folder in path exactly matches "%s"`, escapeQuotes(match))
		},
	},
	KindText: {
		Label:       "Exact Text in Path",
		MatchName:   "Matching Text",
		MatchDesc:   "Text anywhere in path that will be replaced",
		ReplaceName: "Replacement Text",
		ReplaceDesc: "Text that will replace matching text",
		heading: func(match string) string {
			return fmt.Sprintf(`Text anywhere in path matches "%s"`, escapeQuotes(match))
		},
	},
	KindRegexp: {
		Label:       "Regular Expression in Path",
		MatchName:   "Matching Regular Expression",
		MatchDesc:   "Regular expression to match part of path (or full path) that will be replaced",
		ReplaceName: "Replacement Text",
		ReplaceDesc: "Text that will replace the text that matches the regular expression, can use $1, $2, etc. for groups found in match",
		heading: func(match string) string {
			return fmt.Sprintf("Path matches regular expression /%s/", escapeSlashes(match))
		},
	},
}

// Describe returns the wording for kind k.
// Unknown kinds get a generic descriptor rather than an error.
func Describe(k Kind) Descriptor {
	if d, ok := descriptors[k.Canonical()]; ok {
		return d
	}
	return Descriptor{
		Label:       string(k),
		MatchName:   "Match",
		ReplaceName: "Replacement",
		heading: func(match string) string {
			return fmt.Sprintf(`Unknown replacement type "%s" matching "%s"`, escapeQuotes(string(k)), escapeQuotes(match))
		},
	}
}

// Heading describes r, flagging rules with an empty match
func Heading(r Rule) string {
	h := Describe(r.Kind).Heading(r.Match)
	if r.Match == "" {
		h += EmptyMatchNotice
	}
	return h
}

func escapeQuotes(s string) string {
	return strings.ReplaceAll(s, `"`, `\"`)
}

func escapeSlashes(s string) string {
	return strings.ReplaceAll(s, "/", `\/`)
}
