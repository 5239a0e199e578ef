package main

import (
	"fmt"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/panbanda/timelapse/internal/cache"
	"github.com/panbanda/timelapse/internal/output"
	analyzer "github.com/panbanda/timelapse/pkg/analyzer/timeline"
	"github.com/urfave/cli/v2"
)

func cacheCmd() *cli.Command {
	return &cli.Command{
		Name:  "cache",
		Usage: "Inspect or clear the history cache of a repository",
		Subcommands: []*cli.Command{
			{
				Name:      "stats",
				Usage:     "Show cache entry count, size and age",
				ArgsUsage: "[path]",
				Flags:     outputFlags(),
				Action:    runCacheStatsCmd,
			},
			{
				Name:      "clear",
				Usage:     "Remove the cached history of a repository",
				ArgsUsage: "[path]",
				Flags: []cli.Flag{
					&cli.BoolFlag{
						Name:  "all",
						Usage: "Remove every entry in the cache directory",
					},
				},
				Action: runCacheClearCmd,
			},
		},
	}
}

// openCache opens the configured cache directory, resolved against the
// repository path like the timeline session does.
func openCache(c *cli.Context) (*cache.Cache, error) {
	cfg := appConfig(c)
	dir := cfg.Cache.Dir
	if !filepath.IsAbs(dir) {
		dir = filepath.Join(getPath(c), dir)
	}
	return cache.New(dir, cfg.CacheTTL(), true)
}

func runCacheStatsCmd(c *cli.Context) error {
	ch, err := openCache(c)
	if err != nil {
		return err
	}
	stats, err := ch.GetStats()
	if err != nil {
		return fmt.Errorf("failed to read cache: %w", err)
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	rows := [][]string{
		{"Directory", ch.Dir()},
		{"Entries", humanize.Comma(int64(stats.Entries))},
		{"Size", humanize.Bytes(uint64(stats.TotalSize))},
	}
	if stats.Entries > 0 {
		rows = append(rows,
			[]string{"Oldest", stats.OldestAge.Round(time.Second).String()},
			[]string{"Newest", stats.NewestAge.Round(time.Second).String()},
		)
	}
	return formatter.Output(output.NewTable("Cache", []string{"Property", "Value"}, rows, nil, stats))
}

func runCacheClearCmd(c *cli.Context) error {
	ch, err := openCache(c)
	if err != nil {
		return err
	}
	if c.Bool("all") {
		if err := ch.Clear(); err != nil {
			return fmt.Errorf("failed to clear cache: %w", err)
		}
		color.Green("Cache cleared: %s", ch.Dir())
		return nil
	}

	if err := analyzer.Forget(ch, getPath(c)); err != nil {
		return fmt.Errorf("failed to clear cache: %w", err)
	}
	color.Green("Cached history of %s removed from %s", getPath(c), ch.Dir())
	return nil
}
