// Package rules implements the path replacement pipeline behind pathtitle.
//
// A rule list is an ordered set of match/replace directives. Rules are applied
// strictly in list order and every rule sees the output of the rules before it,
// never the original path. There is no reordering by kind or specificity.
//
// # Rule Kinds
//
//   - exact: the whole path must equal the match; it is replaced as a whole.
//   - folder: every "/"-separated segment equal to the match is replaced.
//   - text: the first literal occurrence of the match is replaced.
//   - regexp: the match is an ECMAScript regular expression applied globally.
//     The replacement follows the app's String.prototype.replace: $1 to $99,
//     $&, $`, $', $<name> and $$; any other "$" is literal. Paths that are
//     not valid UTF-8 are left untouched by regexp rules.
//
// The legacy kind "fuzzy" is an alias of regexp. A rule with an empty match
// never matches, whatever its kind, and a rule of an unknown kind leaves the
// path untouched.
//
// Folder and text replacements are literal: a "$" in their replacement is
// copied as-is.
//
// # Configuration
//
// Rules are stored in the settings file under pathSettings:
//
//	[[pathSettings]]
//	type = "folder"
//	match = "daily"
//	replace = "🗓"
//
//	[[pathSettings]]
//	type = "regexp"
//	match = "/([0-9]{4})([0-9]{2})([0-9]{2})$"
//	replace = " $1-$2-$3"
//
// # Errors
//
// Only a regexp rule can fail, either because its pattern does not compile or
// because matching exceeded the match timeout. The failure aborts the whole
// transform and is reported with the ErrPatternInvalid code; no partially
// transformed path is returned.
package rules
