package pathtitle

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/arthur-debert/pathtitle/internal/version"
	"github.com/arthur-debert/pathtitle/pkg/cobrax/topics"
	"github.com/arthur-debert/pathtitle/pkg/config"
	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/filesystem"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/paths"
	"github.com/arthur-debert/pathtitle/pkg/plugin"
	"github.com/arthur-debert/pathtitle/pkg/state"
	"github.com/arthur-debert/pathtitle/pkg/ui"
	"github.com/arthur-debert/pathtitle/pkg/vault"
)

//go:embed topics
var topicsFS embed.FS

// globalOptions are the persistent flags shared by every command
type globalOptions struct {
	verbosity int
	vault     string
	settings  string
	format    string
}

// NewRootCmd creates and returns the root command
func NewRootCmd() *cobra.Command {
	opts := &globalOptions{}

	rootCmd := &cobra.Command{
		Use:     "pathtitle",
		Short:   MsgRootShort,
		Long:    MsgRootLong,
		Version: version.Version,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			logging.SetupLogger(opts.verbosity)
			logging.LogCommand(cmd.CommandPath(), args)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			_ = cmd.Help()
			return errors.New(errors.ErrInvalidInput, "no command specified")
		},
		SilenceUsage:      true,
		SilenceErrors:     true,
		DisableAutoGenTag: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.CountVarP(&opts.verbosity, "verbose", "v", MsgFlagVerbose)
	flags.StringVar(&opts.vault, "vault", "", MsgFlagVault)
	flags.StringVar(&opts.settings, "settings", "", MsgFlagSettings)
	flags.StringVar(&opts.format, "format", "auto", MsgFlagFormat)
	_ = rootCmd.MarkPersistentFlagDirname("vault")
	_ = rootCmd.MarkPersistentFlagFilename("settings", "json", "toml", "yaml", "yml")
	_ = rootCmd.RegisterFlagCompletionFunc("format", func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		return ui.FormatNames, cobra.ShellCompDirectiveNoFileComp
	})

	rootCmd.AddGroup(&cobra.Group{ID: "titles", Title: "TITLES:"})
	rootCmd.AddGroup(&cobra.Group{ID: "settings", Title: "SETTINGS:"})
	rootCmd.AddGroup(&cobra.Group{ID: "misc", Title: "MISC:"})

	rootCmd.AddCommand(newTransformCmd(opts))
	rootCmd.AddCommand(newTitleCmd(opts))
	rootCmd.AddCommand(newWatchCmd(opts))
	rootCmd.AddCommand(newRulesCmd(opts))
	rootCmd.AddCommand(newFoldersCmd(opts))
	rootCmd.AddCommand(newFontSizeCmd(opts))
	rootCmd.AddCommand(newGenConfigCmd(opts))
	rootCmd.AddCommand(newVersionCmd())
	rootCmd.AddCommand(newCompletionCmd())
	rootCmd.AddCommand(newManCmd())
	rootCmd.AddCommand(newTopicsCmd())

	sub, err := fs.Sub(topicsFS, "topics")
	if err == nil {
		err = topics.InitializeWithOptions(rootCmd, sub, topics.Options{
			Renderer: topics.NewGlamourRenderer(),
		})
	}
	if err != nil {
		logger := logging.GetLogger("cmd")
		logger.Warn().Err(err).Msg("Help topics are unavailable")
	}

	return rootCmd
}

// app holds what a command needs once the global flags are resolved
type app struct {
	cmd      *cobra.Command
	paths    paths.Paths
	fs       afero.Fs
	store    *config.FileStore
	undo     *state.UndoStore
	renderer ui.Renderer
}

func newApp(cmd *cobra.Command, opts *globalOptions) (*app, error) {
	format, err := ui.ParseFormat(opts.format)
	if err != nil {
		return nil, err
	}

	p, err := paths.New(opts.vault, opts.settings)
	if err != nil {
		return nil, errors.Wrap(err, errors.ErrConfigLoad, "failed to resolve paths")
	}

	renderer, err := ui.NewRenderer(format, cmd.OutOrStdout())
	if err != nil {
		return nil, err
	}

	logger := logging.GetLogger("cmd")
	logger.Debug().
		Str("vault", p.VaultRoot()).
		Str("settings", p.SettingsPath()).
		Str("source", string(p.SettingsSource())).
		Msg("Paths resolved")

	osFs := filesystem.NewOS()
	return &app{
		cmd:      cmd,
		paths:    p,
		fs:       osFs,
		store:    config.NewFileStore(p.SettingsPath()),
		undo:     state.NewUndoStore(osFs, p.UndoPath()),
		renderer: renderer,
	}, nil
}

// vault opens the vault, warning when it was guessed from the working directory
func (a *app) vault() *vault.Vault {
	if a.paths.UsedFallback() {
		_, _ = fmt.Fprintf(a.cmd.ErrOrStderr(), MsgFallbackWarning, a.paths.VaultRoot())
	}
	return vault.New(a.fs, a.paths.VaultRoot())
}

// loadPlugin creates and loads a plugin rendering into host
func (a *app) loadPlugin(host plugin.Host) (*plugin.Plugin, error) {
	p := plugin.New(a.store, host)
	if err := p.Load(); err != nil {
		return nil, err
	}
	return p, nil
}

// documents turns document arguments into vault-relative paths
func (a *app) documents(args []string) ([]string, error) {
	docs := make([]string, 0, len(args))
	for _, arg := range args {
		doc, err := a.paths.DocumentPath(arg)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// completionApp resolves paths for shell completion; output goes nowhere
func completionApp(cmd *cobra.Command, opts *globalOptions) *app {
	a, err := newApp(cmd, &globalOptions{vault: opts.vault, settings: opts.settings, format: "text"})
	if err != nil {
		return nil
	}
	return a
}

type completionFunc func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective)

// folderPathCompletion completes vault folder paths
func folderPathCompletion(opts *globalOptions) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a := completionApp(cmd, opts)
		if a == nil {
			return nil, cobra.ShellCompDirectiveError
		}
		folders, err := vault.New(a.fs, a.paths.VaultRoot()).FolderPaths()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}

		out := make([]string, 0, len(folders))
		for _, f := range folders {
			if f != vault.RootPath {
				out = append(out, f)
			}
		}
		return out, cobra.ShellCompDirectiveNoFileComp
	}
}

// folderNameCompletion completes unique vault folder names
func folderNameCompletion(opts *globalOptions) completionFunc {
	return func(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
		a := completionApp(cmd, opts)
		if a == nil {
			return nil, cobra.ShellCompDirectiveError
		}
		folders, err := vault.New(a.fs, a.paths.VaultRoot()).FolderPaths()
		if err != nil {
			return nil, cobra.ShellCompDirectiveError
		}
		return vault.FolderNames(folders), cobra.ShellCompDirectiveNoFileComp
	}
}

func newTopicsCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "topics",
		Short:   MsgTopicsShort,
		GroupID: "misc",
		RunE: func(cmd *cobra.Command, args []string) error {
			if helpCmd, _, err := cmd.Root().Find([]string{"help"}); err == nil && helpCmd.Name() == "help" {
				if helpCmd.Run != nil {
					helpCmd.Run(helpCmd, []string{"topics"})
					return nil
				}
			}
			return errors.New(errors.ErrNotFound, "help command not found")
		},
	}
}
