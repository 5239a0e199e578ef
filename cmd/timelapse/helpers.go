package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/panbanda/timelapse/internal/logging"
	"github.com/panbanda/timelapse/internal/output"
	"github.com/panbanda/timelapse/internal/service/timeline"
	"github.com/panbanda/timelapse/pkg/config"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/urfave/cli/v2"
)

// setup loads the configuration and builds the logger once per run. A config
// file that fails validation aborts every command except config validate,
// which reports the failure itself.
func setup(c *cli.Context) error {
	var opts []config.LoadOption
	if path := c.String("config"); path != "" {
		opts = append(opts, config.WithPath(path))
	}

	result, err := config.LoadConfig(opts...)
	if err != nil {
		if isConfigValidate(c) {
			result = &config.LoadResult{Config: config.DefaultConfig()}
		} else {
			return err
		}
	}
	c.App.Metadata["config"] = result.Config
	c.App.Metadata["configSource"] = result.Source

	logger, err := newLogger(result.Config, c.Bool("verbose"), c.String("log-format"))
	if err != nil {
		return err
	}
	c.App.Metadata["logger"] = logger
	return nil
}

func isConfigValidate(c *cli.Context) bool {
	args := c.Args().Slice()
	return len(args) >= 2 && args[0] == "config" && args[1] == "validate"
}

// newLogger builds the stderr logger from config, letting flags win.
func newLogger(cfg *config.Config, verbose bool, format string) (*slog.Logger, error) {
	level, err := logging.ParseLevel(cfg.Log.Level)
	if err != nil {
		return nil, err
	}
	if verbose {
		level = slog.LevelDebug
	}
	if format == "" {
		format = cfg.Log.Format
	}
	return logging.New(os.Stderr, logging.Config{
		Level:  level,
		Format: logging.ParseFormat(format),
	}), nil
}

// appConfig returns the configuration loaded by setup.
func appConfig(c *cli.Context) *config.Config {
	if cfg, ok := c.App.Metadata["config"].(*config.Config); ok {
		return cfg
	}
	return config.DefaultConfig()
}

// appLogger returns the logger built by setup.
func appLogger(c *cli.Context) *slog.Logger {
	if logger, ok := c.App.Metadata["logger"].(*slog.Logger); ok {
		return logger
	}
	return logging.Discard()
}

// getPath returns the repository path from positional args, defaulting to ".".
func getPath(c *cli.Context) string {
	if c.Args().Len() > 0 {
		return c.Args().First()
	}
	return "."
}

// outputFlags returns the flags shared by every command that prints a result.
func outputFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:    "format",
			Aliases: []string{"f"},
			Usage:   "Output format: text, json, markdown, toon (default from config)",
		},
		&cli.StringFlag{
			Name:    "output",
			Aliases: []string{"o"},
			Usage:   "Write output to file",
		},
		&cli.BoolFlag{
			Name:  "no-cache",
			Usage: "Disable the history cache",
		},
	}
}

func intervalFlag() cli.Flag {
	return &cli.StringFlag{
		Name:    "interval",
		Aliases: []string{"i"},
		Usage:   "Bucket interval: day, week or month (default from config)",
	}
}

// outputFormat returns --format, falling back to the configured format.
func outputFormat(c *cli.Context) output.Format {
	if format := c.String("format"); format != "" {
		return output.ParseFormat(format)
	}
	return output.ParseFormat(appConfig(c).Output.Format)
}

// newFormatter builds the formatter selected by --format and --output.
func newFormatter(c *cli.Context) (*output.Formatter, error) {
	return output.NewFormatter(outputFormat(c), c.String("output"), appConfig(c).Output.Color)
}

// parseInterval reads --interval, falling back to the configured interval.
func parseInterval(c *cli.Context) (models.Interval, error) {
	if v := c.String("interval"); v != "" {
		return models.ParseInterval(v)
	}
	return appConfig(c).Interval(), nil
}

// sessionConfig applies per-command overrides to a copy of the config.
func sessionConfig(c *cli.Context) *config.Config {
	cfg := *appConfig(c)
	if c.Bool("no-cache") {
		cfg.Cache.Enabled = false
	}
	return &cfg
}

// newSession opens a timeline session for the repository named on the
// command line.
func newSession(c *cli.Context, cfg *config.Config, opts ...timeline.Option) (*timeline.Session, error) {
	logger := appLogger(c)
	path := getPath(c)
	base := []timeline.Option{
		timeline.WithConfig(cfg),
		timeline.WithLogger(logger.With("repo", path)),
	}
	return timeline.New(path, append(base, opts...)...)
}

// signalContext is cancelled on SIGINT or SIGTERM.
func signalContext(parent context.Context) (context.Context, context.CancelFunc) {
	return signal.NotifyContext(parent, os.Interrupt, syscall.SIGTERM)
}

// frameIndex resolves a possibly negative index against n frames.
func frameIndex(index, n int) (int, error) {
	if n == 0 {
		return 0, fmt.Errorf("repository has no commits")
	}
	i := index
	if i < 0 {
		i += n
	}
	if i < 0 || i >= n {
		return 0, fmt.Errorf("frame %d out of range (timeline has %d frames)", index, n)
	}
	return i, nil
}
