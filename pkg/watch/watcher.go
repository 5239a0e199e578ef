// Package watch reports changes to the refs of a git repository, so a
// timeline can be rebuilt when new commits land.
package watch

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/panbanda/timelapse/internal/logging"
)

// DefaultDebounce is the quiet period after the last ref change before the
// callback runs.
const DefaultDebounce = 500 * time.Millisecond

// ErrNoGitDir is returned when the path holds no .git directory or file.
var ErrNoGitDir = errors.New("no git directory found")

// Watcher monitors HEAD and refs of a repository and triggers a callback
// once a burst of changes has settled.
type Watcher struct {
	fsWatcher *fsnotify.Watcher
	repoPath  string
	gitDir    string
	debounce  time.Duration
	logger    *slog.Logger
	callback  func(refs []string)
	mu        sync.Mutex
	pending   map[string]time.Time
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(w *Watcher) {
		if logger != nil {
			w.logger = logger
		}
	}
}

// NewWatcher creates a watcher for the repository at repoPath. A
// non-positive debounce uses DefaultDebounce.
func NewWatcher(repoPath string, debounce time.Duration, opts ...Option) (*Watcher, error) {
	gitDir, err := FindGitDir(repoPath)
	if err != nil {
		return nil, err
	}

	fsWatcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	if debounce <= 0 {
		debounce = DefaultDebounce
	}

	w := &Watcher{
		fsWatcher: fsWatcher,
		repoPath:  repoPath,
		gitDir:    gitDir,
		debounce:  debounce,
		logger:    logging.Discard(),
		pending:   make(map[string]time.Time),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w, nil
}

// FindGitDir resolves the git directory of a working tree, following the
// "gitdir:" indirection used by linked worktrees and submodules.
func FindGitDir(repoPath string) (string, error) {
	dotGit := filepath.Join(repoPath, ".git")
	info, err := os.Stat(dotGit)
	if err != nil {
		return "", fmt.Errorf("%w in %s", ErrNoGitDir, repoPath)
	}
	if info.IsDir() {
		return dotGit, nil
	}

	data, err := os.ReadFile(dotGit)
	if err != nil {
		return "", err
	}
	line := strings.TrimSpace(string(data))
	target, ok := strings.CutPrefix(line, "gitdir:")
	if !ok {
		return "", fmt.Errorf("%w: malformed %s", ErrNoGitDir, dotGit)
	}
	target = strings.TrimSpace(target)
	if !filepath.IsAbs(target) {
		target = filepath.Join(repoPath, target)
	}
	return filepath.Clean(target), nil
}

// SetCallback sets the function called with the changed refs, relative to
// the git directory, once changes settle.
func (w *Watcher) SetCallback(cb func(refs []string)) {
	w.callback = cb
}

// Start watches until ctx is cancelled or the watcher is stopped.
func (w *Watcher) Start(ctx context.Context) error {
	if err := w.fsWatcher.Add(w.gitDir); err != nil {
		return err
	}
	if err := w.addTree(filepath.Join(w.gitDir, "refs")); err != nil {
		return err
	}

	w.logger.Info("watching repository", "path", w.repoPath, "git_dir", w.gitDir)

	// Start debounce processor
	go w.processDebounced(ctx)

	// Process events
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()

		case event, ok := <-w.fsWatcher.Events:
			if !ok {
				return nil
			}
			w.handleEvent(event)

		case err, ok := <-w.fsWatcher.Errors:
			if !ok {
				return nil
			}
			w.logger.Warn("watch error", "error", err)
		}
	}
}

// addTree watches dir and every directory below it.
func (w *Watcher) addTree(dir string) error {
	return filepath.WalkDir(dir, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil // Skip errors
		}
		if d.IsDir() {
			return w.fsWatcher.Add(path)
		}
		return nil
	})
}

// ref returns the path of name relative to the git directory, or "" when
// the file does not affect the commit graph.
func (w *Watcher) ref(name string) string {
	rel, err := filepath.Rel(w.gitDir, name)
	if err != nil || strings.HasPrefix(rel, "..") {
		return ""
	}
	rel = filepath.ToSlash(rel)
	if strings.HasSuffix(rel, ".lock") {
		return ""
	}
	switch {
	case rel == "HEAD", rel == "packed-refs":
		return rel
	case strings.HasPrefix(rel, "refs/"):
		return rel
	}
	return ""
}

// handleEvent processes a filesystem event.
func (w *Watcher) handleEvent(event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
		return
	}

	ref := w.ref(event.Name)
	if ref == "" {
		return
	}

	// New ref namespaces (refs/heads/feature/) need their own watch
	if event.Op&fsnotify.Create != 0 {
		if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
			if err := w.addTree(event.Name); err != nil {
				w.logger.Warn("watch ref directory", "path", event.Name, "error", err)
			}
			return
		}
	}

	w.mu.Lock()
	w.pending[ref] = time.Now()
	w.mu.Unlock()
}

// processDebounced processes pending changes after debounce period.
func (w *Watcher) processDebounced(ctx context.Context) {
	ticker := time.NewTicker(100 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			w.processPending()
		}
	}
}

// processPending fires the callback once no ref has changed for the
// debounce period. All refs of the burst are reported together.
func (w *Watcher) processPending() {
	w.mu.Lock()
	defer w.mu.Unlock()

	if len(w.pending) == 0 {
		return
	}

	now := time.Now()
	for _, lastMod := range w.pending {
		if now.Sub(lastMod) < w.debounce {
			return
		}
	}

	refs := make([]string, 0, len(w.pending))
	for ref := range w.pending {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	w.pending = make(map[string]time.Time)

	w.logger.Debug("refs changed", "refs", refs)
	if w.callback != nil {
		go w.callback(refs)
	}
}

// Stop stops the watcher.
func (w *Watcher) Stop() error {
	return w.fsWatcher.Close()
}

// WatchedFiles returns the list of watched directories.
func (w *Watcher) WatchedFiles() []string {
	return w.fsWatcher.WatchList()
}

// GitDir returns the watched git directory.
func (w *Watcher) GitDir() string {
	return w.gitDir
}
