// CLAUDE:SUMMARY Watch mode: re-runs the clean command each time the input CSV is written or replaced.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
)

// settle lets an editor finish writing before the file is re-read.
const settle = 300 * time.Millisecond

func cmdWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	f := registerFlags(fs)
	fs.Parse(args)

	cfg, err := f.resolve()
	if err != nil {
		return err
	}
	logger := newLogger(cfg.LogLevel)
	return runWatch(ctx, cfg, logger, nil)
}

// runWatch cleans cfg.Input once, then again after every change until ctx
// is cancelled. Failed runs are logged and the watch continues. done, when
// non-nil, receives the outcome of each run.
func runWatch(ctx context.Context, cfg config, logger *slog.Logger, done chan<- error) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	// Watch the directory: editors often replace the file instead of writing it.
	input, err := filepath.Abs(cfg.Input)
	if err != nil {
		return fmt.Errorf("resolve input: %w", err)
	}
	if err := watcher.Add(filepath.Dir(input)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(input), err)
	}

	run := func() {
		_, err := runClean(ctx, cfg, logger)
		if err != nil {
			logger.Error("clean failed", "input", cfg.Input, "error", err)
		}
		if done != nil {
			select {
			case done <- err:
			case <-ctx.Done():
			}
		}
	}

	run()
	logger.Info("watching", "input", input)

	timer := time.NewTimer(settle)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(evt.Name) != input {
				continue
			}
			if evt.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) != 0 {
				logger.Debug("input changed", "op", evt.Op.String())
				timer.Reset(settle)
			}
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watcher error", "error", err)
		case <-timer.C:
			run()
		}
	}
}
