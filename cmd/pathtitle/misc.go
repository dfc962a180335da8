package pathtitle

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/arthur-debert/pathtitle/internal/version"
	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/filesystem"
	"github.com/arthur-debert/pathtitle/pkg/ui"
	"github.com/arthur-debert/pathtitle/pkg/ui/display"
	"github.com/arthur-debert/pathtitle/pkg/vault"
)

func newFoldersCmd(opts *globalOptions) *cobra.Command {
	var names bool

	cmd := &cobra.Command{
		Use:     "folders",
		Short:   MsgFoldersShort,
		GroupID: "titles",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			folders, err := a.vault().FolderPaths()
			if err != nil {
				return err
			}
			if names {
				folders = vault.FolderNames(folders)
			}
			return a.renderer.RenderResult(&display.FoldersResult{Names: names, Folders: folders})
		},
	}

	cmd.Flags().BoolVar(&names, "names", false, MsgFlagNames)
	return cmd
}

func newFontSizeCmd(opts *globalOptions) *cobra.Command {
	choices := make([]string, 0, len(config.FontSizeChoices))
	for _, c := range config.FontSizeChoices {
		choices = append(choices, c.Name)
	}

	return &cobra.Command{
		Use:       fmt.Sprintf("font-size [%s|<css size>]", strings.Join(choices, "|")),
		Short:     MsgFontSizeShort,
		GroupID:   "settings",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: choices,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			if len(args) == 0 {
				settings, err := a.store.Load()
				if err != nil {
					return err
				}
				return a.renderer.RenderResult(display.NewFontSizeResult(settings.FontSize, ""))
			}

			size, err := config.ParseFontSize(args[0])
			if err != nil {
				return err
			}
			p, err := a.loadPlugin(ui.NewPaneHost(nil))
			if err != nil {
				return err
			}
			if err := p.SetFontSize(size); err != nil {
				return err
			}
			return a.renderer.RenderResult(display.NewFontSizeResult(p.Settings().FontSize, MsgFontSizeUpdated))
		},
	}
}

func newGenConfigCmd(opts *globalOptions) *cobra.Command {
	var write, force bool

	cmd := &cobra.Command{
		Use:     "gen-config",
		Short:   MsgGenConfigShort,
		GroupID: "settings",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content := config.GenerateConfigContent()
			if !write {
				_, err := fmt.Fprint(cmd.OutOrStdout(), content)
				return err
			}

			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			target := a.paths.DefaultSettingsPath()
			if filesystem.Exists(a.fs, target) && !force {
				return errors.Newf(errors.ErrInvalidInput, "%s already exists, use --force to overwrite", target).
					WithDetail("path", target)
			}
			if err := filesystem.WriteFileAtomic(a.fs, target, []byte(content), 0644); err != nil {
				return err
			}
			_, err = fmt.Fprintf(cmd.ErrOrStderr(), MsgConfigWritten, target)
			return err
		},
	}

	cmd.Flags().BoolVarP(&write, "write", "w", false, MsgFlagWrite)
	cmd.Flags().BoolVar(&force, "force", false, MsgFlagForce)
	return cmd
}

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "version",
		Short:   MsgVersionShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprint(cmd.OutOrStdout(), version.String())
			return err
		},
	}
}

func newCompletionCmd() *cobra.Command {
	return &cobra.Command{
		Use:                   "completion [bash|zsh|fish|powershell]",
		Short:                 MsgCompletionShort,
		Long:                  MsgCompletionLong,
		DisableFlagsInUseLine: true,
		ValidArgs:             []string{"bash", "zsh", "fish", "powershell"},
		Args:                  cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		GroupID:               "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			switch args[0] {
			case "bash":
				return cmd.Root().GenBashCompletionV2(out, true)
			case "zsh":
				return cmd.Root().GenZshCompletion(out)
			case "fish":
				return cmd.Root().GenFishCompletion(out, true)
			default:
				return cmd.Root().GenPowerShellCompletionWithDesc(out)
			}
		},
	}
}

func newManCmd() *cobra.Command {
	var dir string

	cmd := &cobra.Command{
		Use:     "man",
		Short:   MsgManShort,
		GroupID: "misc",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := filesystem.NewOS().MkdirAll(dir, 0755); err != nil {
				return errors.Wrapf(err, errors.ErrDirCreate, "failed to create %s", dir)
			}
			header := &doc.GenManHeader{
				Title:   "PATHTITLE",
				Section: "1",
				Source:  "pathtitle " + version.Version,
			}
			if err := doc.GenManTree(cmd.Root(), header, dir); err != nil {
				return errors.Wrap(err, errors.ErrFileWrite, "failed to write man pages")
			}
			_, err := fmt.Fprintf(cmd.ErrOrStderr(), MsgManWritten, dir)
			return err
		},
	}

	cmd.Flags().StringVar(&dir, "dir", ".", MsgFlagManDir)
	return cmd
}
