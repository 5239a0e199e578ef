package main

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/panbanda/timelapse/internal/progress"
	"github.com/panbanda/timelapse/internal/service/timeline"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/urfave/cli/v2"
)

func playCmd() *cli.Command {
	return &cli.Command{
		Name:      "play",
		Usage:     "Step through the frames of a repository on a timer",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			intervalFlag(),
			&cli.DurationFlag{
				Name:  "delay",
				Usage: "Delay between frames at speed 1 (default from config)",
			},
			&cli.Float64Flag{
				Name:  "speed",
				Usage: "Playback speed multiplier (default from config)",
			},
			&cli.BoolFlag{
				Name:  "loop",
				Usage: "Restart from the first frame after the last one",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the history cache",
			},
		},
		Action: runPlayCmd,
	}
}

// frameLine summarizes one frame on a single line.
func frameLine(f models.TimelineFrame) string {
	return fmt.Sprintf("%s  %s files  %s lines  +%d ~%d -%d  (%d commits)",
		f.Label,
		humanize.Comma(int64(f.Stats.TotalFiles)),
		humanize.Comma(int64(f.Stats.TotalLines)),
		len(f.NewFiles), len(f.ModifiedFiles), len(f.DeletedFiles),
		len(f.Commits))
}

func runPlayCmd(c *cli.Context) error {
	interval, err := parseInterval(c)
	if err != nil {
		return err
	}

	cfg := sessionConfig(c)
	if d := c.Duration("delay"); d > 0 {
		cfg.Playback.FrameDelayMS = int(d.Milliseconds())
	}
	if s := c.Float64("speed"); s > 0 {
		cfg.Playback.Speed = s
	}
	if c.Bool("loop") {
		cfg.Playback.Loop = true
	}

	done := make(chan struct{})
	var once sync.Once
	var bar *progress.Tracker
	var mu sync.Mutex

	sess, err := newSession(c, cfg,
		timeline.WithOnFrame(func(i int, f models.TimelineFrame) {
			mu.Lock()
			defer mu.Unlock()
			bar.Set(i + 1)
			bar.Describe(frameLine(f))
		}),
		timeline.WithOnFinish(func() {
			once.Do(func() { close(done) })
		}),
	)
	if err != nil {
		return err
	}
	defer sess.Close()

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	tl, err := sess.Rebuild(ctx, interval)
	if err != nil {
		return err
	}
	if tl.Empty() {
		color.Yellow("No commits found in %s", getPath(c))
		return nil
	}

	player := sess.Player()
	first, _ := player.Frame()

	mu.Lock()
	bar = progress.NewBar(os.Stderr, frameLine(first), player.Len())
	bar.Set(1)
	mu.Unlock()

	if !player.Play() {
		bar.FinishSuccess()
		printFrame(os.Stdout, first)
		return nil
	}

	select {
	case <-done:
	case <-ctx.Done():
		player.Pause()
	}

	mu.Lock()
	bar.FinishSuccess()
	mu.Unlock()

	if last, ok := player.Frame(); ok {
		printFrame(os.Stdout, last)
	}
	return nil
}

func printFrame(w io.Writer, f models.TimelineFrame) {
	color.New(color.Bold).Fprintln(w, frameLine(f))
}
