package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/aretw0/sail"
	"github.com/aretw0/sail/internal/logging"
	"github.com/aretw0/sail/internal/presentation/tui"
	"github.com/fsnotify/fsnotify"
)

// reloadDelay lets editors finish writing before the file is read.
const reloadDelay = 100 * time.Millisecond

// Watch re-runs the playground's cycle whenever the file at path changes,
// calling onFrame with each new frame. It returns when ctx is done.
// The directory is watched rather than the file so that editors that
// replace files on save keep triggering reloads.
func Watch(ctx context.Context, path string, pg *sail.Playground, logger *slog.Logger, onFrame func(*sail.Frame)) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("failed to watch %s: %w", path, err)
	}
	logger.Info("Starting Watcher", "path", abs)

	var timer <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watcher")
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || !event.Has(fsnotify.Write|fsnotify.Create) {
				continue
			}
			logger.Debug("Change detected", "event", event.String())
			timer = time.After(reloadDelay)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Error("Watcher error", "err", err)
		case <-timer:
			timer = nil
			data, err := os.ReadFile(abs)
			if err != nil {
				logger.Warn("Reload skipped", "path", abs, "err", err)
				continue
			}
			onFrame(pg.Edit(ctx, string(data)))
		}
	}
}

// RunWatch renders the document at path and re-renders it on every save
// until ctx is done.
func RunWatch(ctx context.Context, w io.Writer, path string, opts EvalOptions) error {
	source, err := ReadSource(path, nil)
	if err != nil {
		return err
	}
	if opts.Logger == nil {
		opts.Logger = logging.NewNop()
	}
	printer := tui.NewPrinter(w)
	tui.PrintBanner(w, sail.Version)
	printer.System("Watching '%s'. Press Ctrl+C to stop.", path)

	pg := sail.New(ctx, source,
		sail.WithLogger(opts.Logger),
		sail.WithInitialState(opts.State),
	)
	printFrame(printer, pg)

	return Watch(ctx, path, pg, opts.Logger, func(f *sail.Frame) {
		printer.System("Change detected in '%s'.", path)
		printFrame(printer, pg)
	})
}
