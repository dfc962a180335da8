package pathtitle

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/arthur-debert/pathtitle/pkg/errors"
	"github.com/arthur-debert/pathtitle/pkg/logging"
	"github.com/arthur-debert/pathtitle/pkg/plugin"
	"github.com/arthur-debert/pathtitle/pkg/ui"
	"github.com/arthur-debert/pathtitle/pkg/ui/display"
	"github.com/arthur-debert/pathtitle/pkg/watcher"
)

func newTransformCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:               "transform <folder-path>...",
		Short:             MsgTransformShort,
		Long:              MsgTransformLong,
		Example:           MsgTransformExample,
		GroupID:           "titles",
		Args:              cobra.MinimumNArgs(1),
		ValidArgsFunction: folderPathCompletion(opts),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			return runTransform(a, args)
		},
	}
}

func runTransform(a *app, folderPaths []string) error {
	logger := logging.GetLogger("cmd.transform")

	p, err := a.loadPlugin(ui.NewPaneHost(nil))
	if err != nil {
		return err
	}
	fontSize := p.Settings().FontSize

	res := &display.TitlesResult{Command: "transform", Titles: make([]display.TitleLine, 0, len(folderPaths))}
	var firstErr error
	failed := 0
	for _, folder := range folderPaths {
		line := display.TitleLine{Input: folder, Folder: folder, FontSize: fontSize}
		title, err := p.Transform(folder)
		if err != nil {
			logger.Debug().Err(err).Str("path", folder).Msg("Transform failed")
			line.Error = err.Error()
			if firstErr == nil {
				firstErr = err
			}
			failed++
		} else {
			line.Title = title
		}
		res.Titles = append(res.Titles, line)
	}

	if err := a.renderer.RenderResult(res); err != nil {
		return err
	}
	if failed > 0 {
		return errors.Newf(errors.GetErrorCode(firstErr), MsgTransformsFailed, failed, len(folderPaths))
	}
	return nil
}

func newTitleCmd(opts *globalOptions) *cobra.Command {
	return &cobra.Command{
		Use:     "title <document>...",
		Short:   MsgTitleShort,
		Long:    MsgTitleLong,
		GroupID: "titles",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}

			docs, err := a.documents(args)
			if err != nil {
				return err
			}
			warnMissing(a, docs)

			host := ui.NewPaneHost(docs)
			p, err := a.loadPlugin(host)
			if err != nil {
				return err
			}
			if err := host.Flush(a.renderer, "title"); err != nil {
				return err
			}
			return p.Unload()
		},
	}
}

// warnMissing logs documents that are not in the vault; their titles are
// still computed from the path alone
func warnMissing(a *app, docs []string) {
	v := a.vault()
	logger := logging.GetLogger("cmd")
	for _, doc := range docs {
		if !v.HasDocument(doc) {
			logger.Warn().Str("document", doc).Str("vault", v.Root()).Msg("Document not found in vault")
		}
	}
}

// refreshingHandler forwards watcher notifications to the plugin and
// prints the titles again after each one
type refreshingHandler struct {
	plugin *plugin.Plugin
	flush  func()
}

func (h *refreshingHandler) OnRename() {
	h.plugin.OnRename()
	h.flush()
}

func (h *refreshingHandler) OnSettingsChanged() {
	h.plugin.OnSettingsChanged()
	h.flush()
}

func newWatchCmd(opts *globalOptions) *cobra.Command {
	var debounce time.Duration

	cmd := &cobra.Command{
		Use:     "watch <document>...",
		Short:   MsgWatchShort,
		Long:    MsgWatchLong,
		GroupID: "titles",
		Args:    cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, opts)
			if err != nil {
				return err
			}
			docs, err := a.documents(args)
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			return runWatch(ctx, a, docs, debounce)
		},
	}

	cmd.Flags().DurationVar(&debounce, "debounce", watcher.DefaultDebounce, MsgFlagDebounce)
	return cmd
}

func runWatch(ctx context.Context, a *app, docs []string, debounce time.Duration) error {
	logger := logging.GetLogger("cmd.watch")
	v := a.vault()

	host := ui.NewPaneHost(docs)
	p, err := a.loadPlugin(host)
	if err != nil {
		return err
	}
	flush := func() {
		if err := host.Flush(a.renderer, "watch"); err != nil {
			logger.Error().Err(err).Msg("Failed to print titles")
		}
	}
	flush()

	w, err := watcher.New(v, a.paths.SettingsPath(), &refreshingHandler{plugin: p, flush: flush},
		watcher.WithDebounce(debounce))
	if err != nil {
		return err
	}
	if err := w.Start(ctx); err != nil {
		_ = p.Unload()
		return err
	}
	logger.Info().Str("vault", v.Root()).Strs("documents", docs).Msgf(MsgWatching, v.Root())

	<-ctx.Done()
	w.Stop()

	stats := w.Stats()
	logger.Info().
		Int("events", stats.Events).
		Int("renames", stats.Renames).
		Int("settingsChanges", stats.SettingsChanges).
		Int("errors", stats.Errors).
		Msg("Watch stopped")
	return p.Unload()
}
