package timeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strconv"
	"strings"
	"time"

	"github.com/panbanda/timelapse/internal/cache"
	"github.com/panbanda/timelapse/internal/progress"
	"github.com/panbanda/timelapse/internal/vcs"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/sourcegraph/conc/pool"
)

// Source extracts the commit log of a repository, oldest first.
type Source interface {
	Name() string
	Commits(ctx context.Context, repoPath string) ([]models.Commit, error)
}

const (
	recordSep = "\x1e"
	fieldSep  = "\x1f"
	// hash, author name, author email, author date, subject
	logFormat = "--format=%x1e%H%x1f%aN%x1f%aE%x1f%aI%x1f%s"
)

// NativeSource reads history with the git executable.
// git log --raw --numstat is much faster than go-git tree diffs.
type NativeSource struct {
	Workers int
	Spinner *progress.Tracker
}

func (s *NativeSource) Name() string { return "native" }

// Commits runs git log and parses its output. Records are parsed in
// parallel once the output has been read.
func (s *NativeSource) Commits(ctx context.Context, repoPath string) ([]models.Commit, error) {
	if _, err := os.Stat(repoPath); err != nil {
		return nil, repoError(repoPath, "open", err)
	}

	args := []string{
		"-c", "core.quotepath=off",
		"log",
		"--reverse",
		"--no-renames",
		"--no-color",
		"--raw",
		"--numstat",
		logFormat,
	}

	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = repoPath

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		switch {
		case errors.Is(err, exec.ErrNotFound):
			return nil, repoError(repoPath, "git log", ErrGitUnavailable)
		case ctx.Err() != nil:
			return nil, repoError(repoPath, "git log", ctx.Err())
		case strings.Contains(msg, "does not have any commits"):
			return []models.Commit{}, nil
		case strings.Contains(msg, "not a git repository"):
			return nil, repoError(repoPath, "git log", ErrNotRepository)
		}
		return nil, repoError(repoPath, "git log", fmt.Errorf("%w: %s", err, msg))
	}

	return parseLog(ctx, stdout.String(), s.Workers, s.Spinner)
}

// parseLog parses the output of git log in the format produced by NativeSource.
func parseLog(ctx context.Context, out string, workers int, spinner *progress.Tracker) ([]models.Commit, error) {
	records := strings.Split(out, recordSep)
	if len(records) > 0 && strings.TrimSpace(records[0]) == "" {
		records = records[1:]
	}
	if len(records) == 0 {
		return []models.Commit{}, nil
	}

	if workers <= 0 {
		workers = runtime.NumCPU()
	}

	commits := make([]models.Commit, len(records))
	p := pool.New().WithMaxGoroutines(workers).WithContext(ctx).WithCancelOnError()
	for i, rec := range records {
		p.Go(func(ctx context.Context) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}
			c, err := parseRecord(rec)
			if err != nil {
				return err
			}
			commits[i] = c
			spinner.Tick()
			return nil
		})
	}
	if err := p.Wait(); err != nil {
		return nil, err
	}
	return commits, nil
}

// parseRecord parses one commit: a header line followed by raw status
// lines (":100644 100644 <sha> <sha> M\tpath") and numstat lines
// ("added\tremoved\tpath").
func parseRecord(rec string) (models.Commit, error) {
	lines := strings.Split(rec, "\n")
	fields := strings.Split(lines[0], fieldSep)
	if len(fields) < 5 {
		return models.Commit{}, fmt.Errorf("malformed log header %q", lines[0])
	}

	when, err := time.Parse(time.RFC3339, fields[3])
	if err != nil {
		return models.Commit{}, fmt.Errorf("commit %s: %w", fields[0], err)
	}

	c := models.Commit{
		Hash:      fields[0],
		Author:    fields[1],
		Email:     fields[2],
		Timestamp: when,
		Message:   strings.Join(fields[4:], fieldSep),
		Changes:   []models.FileChange{},
	}

	index := make(map[string]int)
	skipped := make(map[string]bool)
	for _, line := range lines[1:] {
		if line == "" {
			continue
		}

		if strings.HasPrefix(line, ":") {
			tab := strings.IndexByte(line, '\t')
			if tab < 0 {
				continue
			}
			meta := strings.Fields(line[:tab])
			path := unquotePath(line[tab+1:])
			if len(meta) < 5 {
				continue
			}
			if meta[0] == ":160000" || meta[1] == "160000" {
				skipped[path] = true // submodule
				continue
			}
			index[path] = len(c.Changes)
			c.Changes = append(c.Changes, models.FileChange{
				Path: path,
				Kind: kindFromStatus(meta[len(meta)-1]),
			})
			continue
		}

		parts := strings.SplitN(line, "\t", 3)
		if len(parts) != 3 {
			continue
		}
		path := unquotePath(parts[2])
		if skipped[path] {
			continue
		}
		added, removed := parseCount(parts[0]), parseCount(parts[1])

		i, ok := index[path]
		if !ok {
			index[path] = len(c.Changes)
			c.Changes = append(c.Changes, models.FileChange{Path: path, Kind: models.ChangeModified})
			i = len(c.Changes) - 1
		}
		c.Changes[i].LinesAdded = added
		c.Changes[i].LinesRemoved = removed
	}
	return c, nil
}

func kindFromStatus(status string) models.ChangeKind {
	switch status {
	case "A":
		return models.ChangeAdded
	case "D":
		return models.ChangeDeleted
	case "M", "T":
		return models.ChangeModified
	default:
		return models.ChangeKind(strings.ToLower(status))
	}
}

// parseCount parses a numstat column. Binary files report "-".
func parseCount(s string) int {
	if s == "-" {
		return 0
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0
	}
	return n
}

// unquotePath decodes the C-style quoting git applies to unusual paths.
func unquotePath(p string) string {
	if len(p) >= 2 && p[0] == '"' && p[len(p)-1] == '"' {
		if s, err := strconv.Unquote(p); err == nil {
			return s
		}
	}
	return p
}

// GoGitSource reads history through go-git. It is slower than
// NativeSource but needs no git executable and works with mocked
// repositories.
type GoGitSource struct {
	Opener  vcs.Opener
	Spinner *progress.Tracker
}

func (s *GoGitSource) Name() string { return "gogit" }

// Commits walks the log from HEAD and diffs every commit against its first
// parent. Merge commits carry no changes, matching git log's default.
// repoPath may name any directory inside the work tree.
func (s *GoGitSource) Commits(ctx context.Context, repoPath string) ([]models.Commit, error) {
	repo, err := s.Opener.PlainOpenWithDetect(repoPath)
	if err != nil {
		if vcs.IsNotRepository(err) {
			return nil, repoError(repoPath, "open", ErrNotRepository)
		}
		return nil, repoError(repoPath, "open", err)
	}

	if _, err := repo.Head(); err != nil {
		if vcs.IsEmptyRepository(err) {
			return []models.Commit{}, nil
		}
		return nil, repoError(repoPath, "head", err)
	}

	iter, err := repo.Log()
	if err != nil {
		return nil, repoError(repoPath, "log", err)
	}
	defer iter.Close()

	var handles []vcs.Commit
	err = iter.ForEach(func(c vcs.Commit) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		handles = append(handles, c)
		return nil
	})
	if err != nil {
		return nil, repoError(repoPath, "log", err)
	}

	commits := make([]models.Commit, len(handles))
	for i := range handles {
		if err := ctx.Err(); err != nil {
			return nil, repoError(repoPath, "diff", err)
		}
		h := handles[len(handles)-1-i]
		changes, err := commitChanges(h)
		if err != nil {
			return nil, repoError(repoPath, "diff "+h.Hash().String(), err)
		}
		author := h.Author()
		commits[i] = models.Commit{
			Hash:      h.Hash().String(),
			Author:    author.Name,
			Email:     author.Email,
			Timestamp: author.When,
			Message:   firstLine(h.Message()),
			Changes:   changes,
		}
		s.Spinner.Tick()
	}
	return commits, nil
}

// commitChanges lists the file changes a commit introduced.
func commitChanges(commit vcs.Commit) ([]models.FileChange, error) {
	changes := []models.FileChange{}
	if commit.NumParents() > 1 {
		return changes, nil
	}

	commitTree, err := commit.Tree()
	if err != nil {
		return nil, err
	}

	if commit.NumParents() == 0 {
		entries, err := commitTree.Entries()
		if err != nil {
			return nil, err
		}
		for _, e := range entries {
			if e.IsDir {
				continue
			}
			content, err := commitTree.File(e.Path)
			if err != nil {
				return nil, err
			}
			changes = append(changes, models.FileChange{
				Path:       e.Path,
				Kind:       models.ChangeAdded,
				LinesAdded: countContentLines(content),
			})
		}
		return changes, nil
	}

	parent, err := commit.Parent(0)
	if err != nil {
		return nil, err
	}
	parentTree, err := parent.Tree()
	if err != nil {
		return nil, err
	}

	diff, err := parentTree.Diff(commitTree)
	if err != nil {
		return nil, err
	}

	for _, change := range diff {
		from, to := change.FromName(), change.ToName()
		added, removed, err := patchLines(change)
		if err != nil {
			return nil, err
		}

		switch {
		case from == "":
			changes = append(changes, models.FileChange{Path: to, Kind: models.ChangeAdded, LinesAdded: added})
		case to == "":
			changes = append(changes, models.FileChange{Path: from, Kind: models.ChangeDeleted, LinesRemoved: removed})
		case from != to:
			changes = append(changes,
				models.FileChange{Path: from, Kind: models.ChangeDeleted, LinesRemoved: removed},
				models.FileChange{Path: to, Kind: models.ChangeAdded, LinesAdded: added},
			)
		default:
			changes = append(changes, models.FileChange{
				Path:         to,
				Kind:         models.ChangeModified,
				LinesAdded:   added,
				LinesRemoved: removed,
			})
		}
	}
	return changes, nil
}

// patchLines counts added and removed lines in a change's patch.
func patchLines(change vcs.Change) (int, int, error) {
	patch, err := change.Patch()
	if err != nil {
		return 0, 0, err
	}

	var added, removed int
	for _, filePatch := range patch.FilePatches() {
		if filePatch.IsBinary() {
			continue
		}
		for _, chunk := range filePatch.Chunks() {
			switch chunk.Type() {
			case vcs.ChunkAdd:
				added += countLines(chunk.Content())
			case vcs.ChunkDelete:
				removed += countLines(chunk.Content())
			}
		}
	}
	return added, removed, nil
}

// countLines counts lines in content, including a final line without a
// trailing newline.
func countLines(content string) int {
	n := strings.Count(content, "\n")
	if content != "" && !strings.HasSuffix(content, "\n") {
		n++
	}
	return n
}

func countContentLines(content []byte) int {
	if bytes.IndexByte(content, 0) >= 0 {
		return 0 // binary
	}
	return countLines(string(content))
}

func firstLine(msg string) string {
	if i := strings.IndexByte(msg, '\n'); i >= 0 {
		return msg[:i]
	}
	return msg
}

// CachedSource memoizes another source per repository and HEAD commit.
type CachedSource struct {
	Source Source
	Cache  *cache.Cache
	Opener vcs.Opener
}

func (s *CachedSource) Name() string { return s.Source.Name() }

// Commits returns the cached log when HEAD has not moved since it was
// stored, and refreshes the entry otherwise.
func (s *CachedSource) Commits(ctx context.Context, repoPath string) ([]models.Commit, error) {
	if !s.Cache.Enabled() {
		return s.Source.Commits(ctx, repoPath)
	}

	head := s.headHash(repoPath)
	if head == "" {
		return s.Source.Commits(ctx, repoPath)
	}

	key := cacheKey(repoPath, s.Source.Name())

	var commits []models.Commit
	if s.Cache.GetWithHash(key, head, &commits) {
		return commits, nil
	}

	commits, err := s.Source.Commits(ctx, repoPath)
	if err != nil {
		return nil, err
	}
	_ = s.Cache.SetWithHash(key, head, commits)
	return commits, nil
}

func (s *CachedSource) headHash(repoPath string) string {
	repo, err := s.Opener.PlainOpenWithDetect(repoPath)
	if err != nil {
		return ""
	}
	ref, err := repo.Head()
	if err != nil {
		return ""
	}
	return ref.Hash().String()
}

func cacheKey(repoPath, source string) string {
	abs, err := filepath.Abs(repoPath)
	if err != nil {
		abs = repoPath
	}
	return cache.Key("commits", abs, source)
}

// Forget removes the cached logs of repoPath written by any source, leaving
// entries of other repositories sharing the cache directory in place.
func Forget(c *cache.Cache, repoPath string) error {
	for _, source := range []Source{&NativeSource{}, &GoGitSource{}} {
		if err := c.Invalidate(cacheKey(repoPath, source.Name())); err != nil {
			return err
		}
	}
	return nil
}
