// Package timeline serves timelines to interactive consumers. A Session
// owns the adopted build for one repository and a Player stepping through
// its frames; rebuilds supersede each other instead of merging.
package timeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/panbanda/timelapse/internal/cache"
	"github.com/panbanda/timelapse/internal/logging"
	"github.com/panbanda/timelapse/internal/vcs"
	analyzer "github.com/panbanda/timelapse/pkg/analyzer/timeline"
	"github.com/panbanda/timelapse/pkg/config"
	"github.com/panbanda/timelapse/pkg/models"
)

var (
	// ErrSuperseded is returned by a rebuild whose result was discarded
	// because a newer rebuild was issued while it ran.
	ErrSuperseded = errors.New("timeline build superseded")

	// ErrClosed is returned by a rebuild on a closed session.
	ErrClosed = errors.New("session closed")

	// ErrFrameOutOfRange is returned for a frame index outside the adopted
	// timeline.
	ErrFrameOutOfRange = errors.New("frame index out of range")
)

// HistoryReader extracts the ordered commit log of a repository.
type HistoryReader interface {
	Log(ctx context.Context, repoPath string) ([]models.Commit, error)
}

// Session holds the most recently adopted timeline of one repository.
type Session struct {
	repoPath string
	config   *config.Config
	logger   *slog.Logger
	reader   HistoryReader
	extra    []analyzer.Option
	onFrame  FrameFunc
	onFinish func()
	player   *Player

	mu       sync.Mutex
	version  uint64
	closed   bool
	commits  []models.Commit
	timeline *models.Timeline
}

// Option configures a Session.
type Option func(*Session)

// WithConfig sets the configuration.
func WithConfig(cfg *config.Config) Option {
	return func(s *Session) {
		if cfg != nil {
			s.config = cfg
		}
	}
}

// WithOpener reads history through go-git with the given opener (for
// testing).
func WithOpener(opener vcs.Opener) Option {
	return func(s *Session) {
		s.extra = append(s.extra, analyzer.WithOpener(opener))
	}
}

// WithAnalyzerOptions passes extra options to the history analyzer.
func WithAnalyzerOptions(opts ...analyzer.Option) Option {
	return func(s *Session) {
		s.extra = append(s.extra, opts...)
	}
}

// WithReader replaces the history analyzer entirely.
func WithReader(r HistoryReader) Option {
	return func(s *Session) {
		s.reader = r
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Session) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// WithOnFrame sets the callback invoked on every playback tick.
func WithOnFrame(fn FrameFunc) Option {
	return func(s *Session) {
		s.onFrame = fn
	}
}

// WithOnFinish sets the callback invoked when playback reaches the last
// frame without looping.
func WithOnFinish(fn func()) Option {
	return func(s *Session) {
		s.onFinish = fn
	}
}

// New creates a session for the repository at repoPath. Nothing is read
// until the first Rebuild.
func New(repoPath string, opts ...Option) (*Session, error) {
	s := &Session{
		repoPath: repoPath,
		config:   config.LoadOrDefault(),
		logger:   logging.Discard(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.reader == nil {
		a, err := s.newAnalyzer()
		if err != nil {
			return nil, err
		}
		s.reader = a
	}

	s.player = NewPlayer(PlayerConfig{
		Delay:    s.config.FrameDelay(),
		Speed:    s.config.Playback.Speed,
		Loop:     s.config.Playback.Loop,
		OnFrame:  s.onFrame,
		OnFinish: s.onFinish,
	})
	return s, nil
}

func (s *Session) newAnalyzer() (*analyzer.Analyzer, error) {
	cfg := s.config
	opts := []analyzer.Option{
		analyzer.WithNativeGit(cfg.Timeline.NativeGit),
		analyzer.WithTimeout(cfg.GitTimeout()),
		analyzer.WithWorkers(cfg.Timeline.Workers),
		analyzer.WithExclude(cfg.Exclude.Patterns...),
		analyzer.WithLogger(s.logger),
	}
	if cfg.Cache.Enabled {
		dir := cfg.Cache.Dir
		if !filepath.IsAbs(dir) {
			dir = filepath.Join(s.repoPath, dir)
		}
		c, err := cache.New(dir, cfg.CacheTTL(), true)
		if err != nil {
			return nil, fmt.Errorf("open cache: %w", err)
		}
		opts = append(opts, analyzer.WithCache(c))
	}
	return analyzer.New(append(opts, s.extra...)...), nil
}

// Rebuild reads the history again and builds a timeline at interval.
//
// Playback is paused before the read starts. Each call is tagged with a
// version; when a newer call was issued while this one was reading, the
// result is discarded and ErrSuperseded is returned. A session closed during
// the read returns ErrClosed instead. An adopted result
// replaces the frame array and rewinds the player to the first frame.
func (s *Session) Rebuild(ctx context.Context, interval models.Interval) (*models.Timeline, error) {
	s.player.Pause()

	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil, ErrClosed
	}
	s.version++
	version := s.version
	s.mu.Unlock()

	start := time.Now()
	commits, err := s.reader.Log(ctx, s.repoPath)

	var tl *models.Timeline
	if err == nil {
		tl = analyzer.Build(commits, interval)
		tl.GeneratedAt = time.Now().UTC()
		tl.RepositoryRoot = s.root()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, ErrClosed
	}
	if version != s.version {
		s.logger.Debug("discarding superseded build", "version", version, "current", s.version)
		return nil, ErrSuperseded
	}
	if err != nil {
		return nil, err
	}

	s.commits = commits
	s.timeline = tl
	s.player.Load(tl.Frames)

	for _, d := range tl.Diagnostics {
		s.logger.Debug("skipped malformed change", "commit", d.Commit, "path", d.Path, "reason", d.Reason)
	}
	if n := len(tl.Diagnostics); n > 0 {
		s.logger.Warn("malformed changes skipped", "count", n)
	}
	s.logger.Info("timeline adopted",
		"version", version,
		"interval", string(tl.Interval),
		"frames", len(tl.Frames),
		"diagnostics", len(tl.Diagnostics),
		"elapsed", time.Since(start))
	return tl, nil
}

// BuildTimeline rebuilds at interval and returns the adopted frames.
func (s *Session) BuildTimeline(ctx context.Context, interval models.Interval) ([]models.TimelineFrame, error) {
	tl, err := s.Rebuild(ctx, interval)
	if err != nil {
		return nil, err
	}
	return tl.Frames, nil
}

// Timeline returns the adopted timeline, or nil before the first
// successful build.
func (s *Session) Timeline() *models.Timeline {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.timeline
}

// DateRange returns the span of the adopted log, nil when it is empty.
func (s *Session) DateRange() *models.DateRange {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analyzer.DateRange(s.commits)
}

// Contributors returns the contributors of the adopted log in order of
// first appearance.
func (s *Session) Contributors() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return analyzer.Contributors(s.commits)
}

// TreeToNodes flattens the tree of the frame at index.
func (s *Session) TreeToNodes(index int) ([]models.Node, error) {
	s.mu.Lock()
	tl := s.timeline
	s.mu.Unlock()

	if tl == nil || index < 0 || index >= len(tl.Frames) {
		return nil, fmt.Errorf("%w: %d", ErrFrameOutOfRange, index)
	}
	return analyzer.TreeToNodes(tl.Frames[index].Tree), nil
}

// CurrentNodes flattens the tree of the frame under the player cursor.
func (s *Session) CurrentNodes() []models.Node {
	f, ok := s.player.Frame()
	if !ok {
		return []models.Node{}
	}
	return analyzer.TreeToNodes(f.Tree)
}

// Player returns the session's playback controller.
func (s *Session) Player() *Player {
	return s.player
}

// RepoPath returns the repository path the session reads.
func (s *Session) RepoPath() string {
	return s.repoPath
}

// Close stops playback and discards any in-flight rebuild.
func (s *Session) Close() {
	s.player.Close()
	s.mu.Lock()
	s.closed = true
	s.mu.Unlock()
}

func (s *Session) root() string {
	if abs, err := filepath.Abs(s.repoPath); err == nil {
		return abs
	}
	return s.repoPath
}
