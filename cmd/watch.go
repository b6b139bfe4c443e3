package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	application "github.com/zjrosen/grimoire/internal/catalog/application"
	"github.com/zjrosen/grimoire/internal/log"
	"github.com/zjrosen/grimoire/internal/presentation"
	"github.com/zjrosen/grimoire/internal/watcher"
)

var watchDiff bool

var watchCmd = &cobra.Command{
	Use:   "watch",
	Short: "Rebuild the catalog whenever content changes",
	Long: `Build the catalog, then watch the content directories and
rebuild on every change. Bursts of filesystem events are debounced so
an editor save triggers a single rebuild.

Each rebuild prints a fresh build report. With --diff, the entries
that were added, removed, or modified since the previous build are
printed as well.

Stop with Ctrl+C.`,
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().BoolVarP(&watchDiff, "diff", "d", false,
		"print per-entry diffs after each rebuild")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	cleanup, err := initLogging()
	if err != nil {
		return err
	}
	defer cleanup()

	if !cfg.Watch.AutoReload {
		return fmt.Errorf("watch.auto_reload is disabled in the configuration")
	}

	svc, closeSvc, err := newService()
	if err != nil {
		return err
	}
	defer closeSvc()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	formatter := presentation.NewFormatter(os.Stdout)
	roots := contentRoots()

	current, rep, err := svc.Reload(ctx, roots...)
	if err != nil {
		return fmt.Errorf("building catalog: %w", err)
	}
	if err := formatter.FormatReport(presentation.FromReport(rep)); err != nil {
		return err
	}

	w, err := watcher.New(watcher.Config{
		Roots:       cfg.Content.Dirs(),
		DebounceDur: time.Duration(cfg.Watch.DebounceMs) * time.Millisecond,
	})
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	changes, err := w.Start()
	if err != nil {
		return fmt.Errorf("starting watcher: %w", err)
	}
	defer func() { _ = w.Stop() }()

	log.Info(log.CatWatcher, "Watching content directories", "roots", cfg.Content.Dirs())

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-changes:
			rebuilt, rep, err := svc.Reload(ctx, roots...)
			if err != nil {
				// Keep serving the previous catalog; a root may
				// reappear on the next change.
				fmt.Fprintf(os.Stderr, "reload failed: %v\n", err)
				continue
			}
			if err := formatter.FormatReport(presentation.FromReport(rep)); err != nil {
				return err
			}
			if watchDiff {
				diff := application.DiffCatalogs(current, rebuilt)
				if err := formatter.FormatChanges(presentation.FromChanges(diff)); err != nil {
					return err
				}
			}
			current = rebuilt
		}
	}
}
