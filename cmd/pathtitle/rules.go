package pathtitle

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/editor"
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/rules"
	"github.com/arthur-debert/pathtitle/pkg/ui"
	"github.com/arthur-debert/pathtitle/pkg/ui/display"
)

// editFunc changes the rule list and returns the message to show
type editFunc func(e *editor.Editor) (string, error)

func newRulesCmd(opts *globalOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "rules",
		Short:   MsgRulesShort,
		Long:    MsgRulesLong,
		Example: MsgRulesExample,
		GroupID: "settings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return listRules(cmd, opts)
		},
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "list",
			Short: MsgRulesListShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return listRules(cmd, opts)
			},
		},
		newRulesAddCmd(opts),
		&cobra.Command{
			Use:               "add-path <folder-path>",
			Short:             MsgRulesAddPath,
			Args:              cobra.ExactArgs(1),
			ValidArgsFunction: firstArgOnly(folderPathCompletion(opts)),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
					if err := e.AddPath(args[0]); err != nil {
						return "", err
					}
					return fmt.Sprintf(MsgRuleAdded, e.Len()), nil
				})
			},
		},
		&cobra.Command{
			Use:               "add-folder <name>",
			Short:             MsgRulesAddFolder,
			Args:              cobra.ExactArgs(1),
			ValidArgsFunction: firstArgOnly(folderNameCompletion(opts)),
			RunE: func(cmd *cobra.Command, args []string) error {
				return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
					if err := e.AddFolder(args[0]); err != nil {
						return "", err
					}
					return fmt.Sprintf(MsgRuleAdded, e.Len()), nil
				})
			},
		},
		newRulesSetCmd(opts),
		&cobra.Command{
			Use:   "remove <n>",
			Short: MsgRulesRemoveShort,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				i, err := parseIndex(args[0])
				if err != nil {
					return err
				}
				return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
					if _, err := e.RemoveAt(i); err != nil {
						return "", err
					}
					return fmt.Sprintf(MsgRuleRemoved, i+1), nil
				})
			},
		},
		&cobra.Command{
			Use:   "undo",
			Short: MsgRulesUndoShort,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
					restored, err := e.UndoLastRemoval()
					if err != nil {
						return "", err
					}
					if !restored {
						return MsgNothingToUndo, nil
					}
					return MsgRuleRestored, nil
				})
			},
		},
		&cobra.Command{
			Use:   "dismiss",
			Short: MsgRulesDismiss,
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
					if _, ok := e.Pending(); !ok {
						return MsgNothingToUndo, nil
					}
					e.DismissUndo()
					return MsgUndoDismissed, nil
				})
			},
		},
		newRulesMoveCmd(opts, "up <n>", MsgRulesUpShort, -1),
		newRulesMoveCmd(opts, "down <n>", MsgRulesDownShort, 1),
	)

	return cmd
}

func newRulesAddCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "add <type> [match] [replace]",
		Short: MsgRulesAddShort,
		Args:  cobra.RangeArgs(1, 3),
		ValidArgsFunction: func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
			switch len(args) {
			case 0:
				return kindNames(), cobra.ShellCompDirectiveNoFileComp
			case 1:
				kind, err := rules.ParseKind(args[0])
				if err != nil {
					return nil, cobra.ShellCompDirectiveNoFileComp
				}
				switch kind {
				case rules.KindFolder:
					return folderNameCompletion(opts)(cmd, args, toComplete)
				case rules.KindExact, rules.KindText:
					return folderPathCompletion(opts)(cmd, args, toComplete)
				}
			}
			return nil, cobra.ShellCompDirectiveNoFileComp
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			kind, err := rules.ParseKind(args[0])
			if err != nil {
				return err
			}
			rule := rules.Rule{Kind: kind}
			if len(args) > 1 {
				rule.Match = args[1]
			}
			if len(args) > 2 {
				rule.Replace = args[2]
			}

			return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
				if err := e.Append(rule); err != nil {
					return "", err
				}
				return fmt.Sprintf(MsgRuleAdded, e.Len()), nil
			})
		},
	}
}

func newRulesSetCmd(opts *globalOptions) *cobra.Command {
	var kind, match, replace string

	cmd := &cobra.Command{
		Use:   "set <n>",
		Short: MsgRulesSetShort,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			var parsedKind rules.Kind
			if flags.Changed("type") {
				if parsedKind, err = rules.ParseKind(kind); err != nil {
					return err
				}
			}

			return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
				rule, err := e.At(i)
				if err != nil {
					return "", err
				}
				if flags.Changed("type") {
					rule.Kind = parsedKind
				}
				if flags.Changed("match") {
					rule.Match = match
				}
				if flags.Changed("replace") {
					rule.Replace = replace
				}
				if err := e.Update(i, rule); err != nil {
					return "", err
				}
				return fmt.Sprintf(MsgRuleUpdated, i+1), nil
			})
		},
	}

	cmd.Flags().StringVarP(&kind, "type", "t", "", MsgFlagType)
	cmd.Flags().StringVarP(&match, "match", "m", "", MsgFlagMatch)
	cmd.Flags().StringVarP(&replace, "replace", "r", "", MsgFlagReplace)
	_ = cmd.RegisterFlagCompletionFunc("type", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return kindNames(), cobra.ShellCompDirectiveNoFileComp
	})
	cmd.MarkFlagsOneRequired("type", "match", "replace")
	return cmd
}

// newRulesMoveCmd builds "up" (delta -1) and "down" (delta 1)
func newRulesMoveCmd(opts *globalOptions, use, short string, delta int) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			i, err := parseIndex(args[0])
			if err != nil {
				return err
			}
			return editRules(cmd, opts, func(e *editor.Editor) (string, error) {
				if err := checkIndex(e, i); err != nil {
					return "", err
				}

				var moved bool
				edge := "top"
				if delta < 0 {
					moved, err = e.MoveUp(i)
				} else {
					moved, err = e.MoveDown(i)
					edge = "bottom"
				}
				if err != nil {
					return "", err
				}
				if !moved {
					return fmt.Sprintf(MsgRuleNotMoved, i+1, edge), nil
				}
				return fmt.Sprintf(MsgRuleMoved, i+1, i+1+delta), nil
			})
		},
	}
}

func listRules(cmd *cobra.Command, opts *globalOptions) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	settings, err := a.store.Load()
	if err != nil {
		return err
	}

	var pending *editor.UndoEntry
	if entry, ok := pendingUndo(a, a.paths.SettingsPath()); ok {
		pending = &entry
	}
	return a.renderer.RenderResult(rulesResult(a, cmd.Name(), settings, settings.PathSettings, pending, ""))
}

// editRules loads the plugin, restores the pending undo entry, applies fn
// and records the resulting undo state before printing the list
func editRules(cmd *cobra.Command, opts *globalOptions, fn editFunc) error {
	a, err := newApp(cmd, opts)
	if err != nil {
		return err
	}
	p, err := a.loadPlugin(ui.NewPaneHost(nil))
	if err != nil {
		return err
	}

	settingsPath := a.paths.SettingsPath()
	var res *display.RulesResult
	err = p.Edit(func(e *editor.Editor) error {
		if entry, ok := pendingUndo(a, settingsPath); ok {
			e.Restore(entry)
		}

		message, err := fn(e)
		if err != nil {
			return err
		}
		// the edit is already saved; only the undo slot is lost
		if err := a.undo.Sync(settingsPath, e); err != nil {
			logger := logging.GetLogger("cmd.rules")
			logger.Warn().Err(err).Str("path", a.paths.UndoPath()).
				Msg("Rules saved, but the undo state could not be recorded")
		}

		var pending *editor.UndoEntry
		if entry, ok := e.Pending(); ok {
			pending = &entry
		}
		res = rulesResult(a, cmd.Name(), p.Settings(), e.Rules(), pending, message)
		return nil
	})
	if err != nil {
		return err
	}
	return a.renderer.RenderResult(res)
}

// pendingUndo returns the undo entry recorded for settingsPath. Undo state
// is best effort: an unreadable file is logged and treated as empty.
func pendingUndo(a *app, settingsPath string) (editor.UndoEntry, bool) {
	entry, ok, err := a.undo.Load(settingsPath)
	if err != nil {
		logger := logging.GetLogger("cmd.rules")
		logger.Warn().Err(err).Str("path", a.paths.UndoPath()).Msg("Ignoring unreadable undo state")
		return editor.UndoEntry{}, false
	}
	return entry, ok
}

func rulesResult(a *app, command string, settings *config.Settings, list []rules.Rule, pending *editor.UndoEntry, message string) *display.RulesResult {
	res := &display.RulesResult{
		Command:      command,
		SettingsPath: a.paths.SettingsPath(),
		FontSize:     settings.FontSize,
		Rules:        display.RuleLines(list),
		Message:      message,
	}
	if pending != nil {
		line := display.NewRuleLine(min(pending.Index, len(list)), pending.Rule)
		res.Undo = &line
	}
	return res
}

// parseIndex turns a 1-based rule number into an editor index
func parseIndex(arg string) (int, error) {
	n, err := strconv.Atoi(arg)
	if err != nil || n < 1 {
		return 0, errors.Newf(errors.ErrInvalidInput, "rule number must be a positive integer, got %q", arg).
			WithDetail("arg", arg)
	}
	return n - 1, nil
}

func checkIndex(e *editor.Editor, i int) error {
	_, err := e.At(i)
	return err
}

func kindNames() []string {
	names := make([]string, 0, len(rules.Kinds))
	for _, k := range rules.Kinds {
		names = append(names, string(k))
	}
	return names
}

// firstArgOnly stops completing once the single argument is given
func firstArgOnly(f completionFunc) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		if len(args) > 0 {
			return nil, cobra.ShellCompDirectiveNoFileComp
		}
		return f(cmd, args, toComplete)
	}
}
