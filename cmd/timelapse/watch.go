package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/panbanda/timelapse/internal/output"
	"github.com/panbanda/timelapse/internal/service/timeline"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/panbanda/timelapse/pkg/watch"
	"github.com/urfave/cli/v2"
)

func watchCmd() *cli.Command {
	return &cli.Command{
		Name:      "watch",
		Usage:     "Rebuild the timeline whenever a ref of the repository moves",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			intervalFlag(),
			&cli.DurationFlag{
				Name:  "debounce",
				Value: watch.DefaultDebounce,
				Usage: "Quiet period after the last ref change before rebuilding",
			},
		},
		Action: runWatchCmd,
	}
}

func runWatchCmd(c *cli.Context) error {
	interval, err := parseInterval(c)
	if err != nil {
		return err
	}

	cfg := sessionConfig(c)
	logger := appLogger(c)

	sess, err := newSession(c, cfg)
	if err != nil {
		return err
	}
	defer sess.Close()

	watcher, err := watch.NewWatcher(getPath(c), c.Duration("debounce"), watch.WithLogger(logger))
	if err != nil {
		return fmt.Errorf("failed to create watcher: %w", err)
	}
	defer watcher.Stop()

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	status := output.NewWriterFormatter(output.FormatText, os.Stdout, true)
	rebuild := func(reason string) {
		tl, err := sess.Rebuild(ctx, interval)
		switch {
		case errors.Is(err, timeline.ErrSuperseded), errors.Is(err, timeline.ErrClosed):
			return
		case err != nil:
			status.Error("Rebuild failed: %v", err)
			return
		}
		printSummary(status, tl, reason)
	}

	watcher.SetCallback(func(refs []string) {
		rebuild(strings.Join(refs, ", "))
	})

	rebuild("initial build")

	status.Info("Watching %s for new commits (Ctrl+C to stop)", watcher.GitDir())
	if err := watcher.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func printSummary(formatter *output.Formatter, tl *models.Timeline, reason string) {
	if tl.Empty() {
		formatter.Warning("%s: no commits", reason)
		return
	}
	last := tl.Frames[len(tl.Frames)-1]
	formatter.Success("%s: %d frames, %s", reason, len(tl.Frames), frameLine(last))
}
