// Package timeline reconstructs the file tree of a repository over time.
//
// A commit log is partitioned into fixed calendar buckets (day, week or
// month). Commits are replayed in order into a mutable tree and, as each
// bucket closes, the tree is captured into an immutable frame carrying
// statistics and a diff against the previous frame.
package timeline

import (
	"context"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/panbanda/timelapse/internal/cache"
	"github.com/panbanda/timelapse/internal/logging"
	"github.com/panbanda/timelapse/internal/progress"
	"github.com/panbanda/timelapse/internal/vcs"
	"github.com/panbanda/timelapse/pkg/models"
)

// DefaultGitTimeout is the default timeout for history extraction.
const DefaultGitTimeout = 5 * time.Minute

// Build turns a chronologically ordered commit log into a timeline. It
// performs no I/O and returns identical results for identical input.
// An empty log yields a timeline without frames and without a date range.
func Build(commits []models.Commit, interval models.Interval) *models.Timeline {
	if iv, err := models.ParseInterval(string(interval)); err == nil {
		interval = iv
	} else {
		interval = models.IntervalWeek
	}

	tl := &models.Timeline{
		Interval:     interval,
		DateRange:    DateRange(commits),
		Contributors: Contributors(commits),
		Frames:       []models.TimelineFrame{},
	}

	buckets := Buckets(commits, interval)
	groups := groupCommits(commits, buckets)

	tree := NewTree()
	frames := NewFrameBuilder()
	seen := make(map[string]struct{})
	var totalCommits int

	for i, b := range buckets {
		for _, c := range groups[i] {
			tl.Diagnostics = append(tl.Diagnostics, tree.Apply(c)...)
			totalCommits++
			if id := c.Identity(); id != "" {
				seen[id] = struct{}{}
			}
		}
		tl.Frames = append(tl.Frames, frames.Snapshot(tree, b, groups[i], Totals{
			Commits:      totalCommits,
			Contributors: len(seen),
		}))
	}

	tl.Summary = Summarize(tl.Frames)
	return tl
}

// Analyzer extracts repository history and builds timelines from it.
type Analyzer struct {
	opener    vcs.Opener
	useNative bool
	cache     *cache.Cache
	exclude   []string
	logger    *slog.Logger
	spinner   *progress.Tracker
	timeout   time.Duration
	workers   int
}

// Option is a functional option for configuring Analyzer.
type Option func(*Analyzer)

// WithOpener sets the VCS opener (useful for testing).
// Using this option disables native git and falls back to go-git.
func WithOpener(opener vcs.Opener) Option {
	return func(a *Analyzer) {
		a.opener = opener
		a.useNative = false
	}
}

// WithNativeGit selects the git executable (default) or go-git.
func WithNativeGit(use bool) Option {
	return func(a *Analyzer) {
		a.useNative = use
	}
}

// WithCache stores extracted logs keyed by repository and HEAD.
func WithCache(c *cache.Cache) Option {
	return func(a *Analyzer) {
		a.cache = c
	}
}

// WithExclude drops changes whose path matches any of the glob patterns.
// Patterns use doublestar syntax, e.g. "vendor/**" or "**/*.lock".
func WithExclude(patterns ...string) Option {
	return func(a *Analyzer) {
		a.exclude = append(a.exclude, patterns...)
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(a *Analyzer) {
		if logger != nil {
			a.logger = logger
		}
	}
}

// WithSpinner sets a progress spinner ticked once per commit read.
func WithSpinner(spinner *progress.Tracker) Option {
	return func(a *Analyzer) {
		a.spinner = spinner
	}
}

// WithTimeout bounds history extraction.
func WithTimeout(d time.Duration) Option {
	return func(a *Analyzer) {
		if d > 0 {
			a.timeout = d
		}
	}
}

// WithWorkers sets the number of goroutines parsing log records.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// New creates a new timeline analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{
		opener:    vcs.DefaultOpener(),
		useNative: true,
		cache:     cache.Disabled(),
		logger:    logging.Discard(),
		timeout:   DefaultGitTimeout,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Source returns the history source the analyzer reads from.
func (a *Analyzer) Source() Source {
	var src Source
	if a.useNative {
		src = &NativeSource{Workers: a.workers, Spinner: a.spinner}
	} else {
		src = &GoGitSource{Opener: a.opener, Spinner: a.spinner}
	}
	if a.cache.Enabled() {
		src = &CachedSource{Source: src, Cache: a.cache, Opener: a.opener}
	}
	return src
}

// Log extracts the commit log of the repository at repoPath, oldest
// first, with excluded paths removed. Failures to read the repository are
// returned as *RepositoryError.
func (a *Analyzer) Log(ctx context.Context, repoPath string) ([]models.Commit, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	ctx, cancel := context.WithTimeout(ctx, a.timeout)
	defer cancel()

	for _, p := range a.exclude {
		if !doublestar.ValidatePattern(p) {
			return nil, fmt.Errorf("invalid exclude pattern %q", p)
		}
	}

	src := a.Source()
	start := time.Now()
	commits, err := src.Commits(ctx, repoPath)
	if err != nil {
		return nil, repoError(repoPath, "read history", err)
	}

	commits = a.filter(commits)
	sort.SliceStable(commits, func(i, j int) bool {
		return commits[i].Timestamp.Before(commits[j].Timestamp)
	})

	a.logger.Debug("history extracted",
		"path", repoPath,
		"source", src.Name(),
		"commits", len(commits),
		"elapsed", time.Since(start))
	return commits, nil
}

// filter removes excluded paths. Commits left without changes are kept:
// they still count towards commit and contributor totals.
func (a *Analyzer) filter(commits []models.Commit) []models.Commit {
	if len(a.exclude) == 0 {
		return commits
	}
	out := make([]models.Commit, len(commits))
	for i, c := range commits {
		kept := make([]models.FileChange, 0, len(c.Changes))
		for _, ch := range c.Changes {
			if !a.excluded(ch.Path) {
				kept = append(kept, ch)
			}
		}
		c.Changes = kept
		out[i] = c
	}
	return out
}

func (a *Analyzer) excluded(path string) bool {
	for _, p := range a.exclude {
		if ok, _ := doublestar.Match(p, path); ok {
			return true
		}
	}
	return false
}

// Analyze extracts history and builds a timeline at the given interval.
func (a *Analyzer) Analyze(ctx context.Context, repoPath string, interval models.Interval) (*models.Timeline, error) {
	commits, err := a.Log(ctx, repoPath)
	if err != nil {
		return nil, err
	}

	tl := Build(commits, interval)
	tl.GeneratedAt = time.Now().UTC()
	if abs, err := filepath.Abs(repoPath); err == nil {
		tl.RepositoryRoot = abs
	} else {
		tl.RepositoryRoot = repoPath
	}

	a.Report(tl)
	return tl, nil
}

// Report logs the outcome of a build, including skipped changes.
func (a *Analyzer) Report(tl *models.Timeline) {
	for _, d := range tl.Diagnostics {
		a.logger.Debug("skipped malformed change", "commit", d.Commit, "path", d.Path, "reason", d.Reason)
	}
	if n := len(tl.Diagnostics); n > 0 {
		a.logger.Warn("malformed changes skipped", "count", n)
	}
	a.logger.Info("timeline built",
		"interval", string(tl.Interval),
		"frames", len(tl.Frames),
		"contributors", len(tl.Contributors))
}
