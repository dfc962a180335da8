package pathtitle

import (
	_ "embed"
	"strings"
)

// Short messages (one-liners)
const (
	// Command descriptions
	MsgRootShort        = "Show a note's folder path above its title"
	MsgTransformShort   = "Transform folder paths with the configured rules"
	MsgTitleShort       = "Compute the title shown above documents"
	MsgWatchShort       = "Keep document titles up to date while the vault changes"
	MsgRulesShort       = "List and edit path rules"
	MsgRulesListShort   = "List the rules"
	MsgRulesAddShort    = "Append a rule"
	MsgRulesAddPath     = "Append an exact path rule for a folder"
	MsgRulesAddFolder   = "Append a folder rule for a folder name"
	MsgRulesSetShort    = "Change a rule"
	MsgRulesRemoveShort = "Remove a rule"
	MsgRulesUndoShort   = "Restore the last removed rule"
	MsgRulesDismiss     = "Forget the last removed rule"
	MsgRulesUpShort     = "Move a rule up"
	MsgRulesDownShort   = "Move a rule down"
	MsgFoldersShort     = "List vault folders"
	MsgFontSizeShort    = "Show or set the title font size"
	MsgGenConfigShort   = "Print a commented settings template"
	MsgVersionShort     = "Print version information"
	MsgCompletionShort  = "Generate shell completion script"
	MsgManShort         = "Generate man pages"
	MsgTopicsShort      = "Display available documentation topics"

	// Result messages
	MsgRuleAdded        = "Added rule %d"
	MsgRuleUpdated      = "Updated rule %d"
	MsgRuleRemoved      = "Removed rule %d"
	MsgRuleRestored     = "Restored the removed rule"
	MsgNothingToUndo    = "Nothing to undo"
	MsgUndoDismissed    = "Dismissed the removed rule"
	MsgRuleMoved        = "Moved rule %d to position %d"
	MsgRuleNotMoved     = "Rule %d is already at the %s"
	MsgFontSizeUpdated  = "Font size updated"
	MsgConfigWritten    = "Wrote %s\n"
	MsgManWritten       = "Man pages written to %s\n"
	MsgWatching         = "Watching %s"
	MsgTransformsFailed = "%d of %d paths failed to transform"

	// Flag descriptions
	MsgFlagVerbose  = "Increase verbosity (-v INFO, -vv DEBUG, -vvv TRACE)"
	MsgFlagVault    = "Vault directory (default: $PATHTITLE_VAULT or the nearest folder holding .obsidian)"
	MsgFlagSettings = "Settings file (.json, .toml or .yaml)"
	MsgFlagFormat   = "Output format: auto, term, text or json"
	MsgFlagNames    = "List unique folder names instead of paths"
	MsgFlagWrite    = "Write the template to the default settings file"
	MsgFlagForce    = "Overwrite an existing file"
	MsgFlagManDir   = "Directory to write man pages to"
	MsgFlagDebounce = "Quiet period before reacting to changes"
	MsgFlagType     = "New rule type"
	MsgFlagMatch    = "New match value"
	MsgFlagReplace  = "New replacement value"
)

// Long messages from embedded files
var (
	//go:embed msgs/root-long.txt
	msgRootLongRaw string
	MsgRootLong    = strings.TrimSpace(msgRootLongRaw)

	//go:embed msgs/transform-long.txt
	msgTransformLongRaw string
	MsgTransformLong    = strings.TrimSpace(msgTransformLongRaw)

	//go:embed msgs/transform-example.txt
	msgTransformExampleRaw string
	MsgTransformExample    = strings.TrimRight(msgTransformExampleRaw, "\n")

	//go:embed msgs/title-long.txt
	msgTitleLongRaw string
	MsgTitleLong    = strings.TrimSpace(msgTitleLongRaw)

	//go:embed msgs/watch-long.txt
	msgWatchLongRaw string
	MsgWatchLong    = strings.TrimSpace(msgWatchLongRaw)

	//go:embed msgs/rules-long.txt
	msgRulesLongRaw string
	MsgRulesLong    = strings.TrimSpace(msgRulesLongRaw)

	//go:embed msgs/rules-example.txt
	msgRulesExampleRaw string
	MsgRulesExample    = strings.TrimRight(msgRulesExampleRaw, "\n")

	//go:embed msgs/completion-long.txt
	msgCompletionLongRaw string
	MsgCompletionLong    = strings.TrimSpace(msgCompletionLongRaw)

	//go:embed msgs/fallback-warning.txt
	msgFallbackWarningRaw string
	MsgFallbackWarning    = strings.TrimSpace(msgFallbackWarningRaw) + "\n"
)
