package testutil

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// WriteFile writes content to a file in the real filesystem.
func WriteFile(t *testing.T, path, content string) {
	t.Helper()
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		t.Fatalf("MkdirAll(%s) error: %v", dir, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("WriteFile(%s) error: %v", path, err)
	}
}

// TempDir creates a temporary directory and returns its path.
// The directory is automatically cleaned up when the test ends.
func TempDir(t *testing.T) string {
	t.Helper()
	dir, err := os.MkdirTemp("", "timelapse-test-*")
	if err != nil {
		t.Fatalf("MkdirTemp error: %v", err)
	}
	t.Cleanup(func() {
		os.RemoveAll(dir)
	})
	return dir
}

// Lines returns n newline-terminated lines of text.
func Lines(n int) string {
	return strings.Repeat("line\n", n)
}

// Repo is a temporary git repository for tests.
type Repo struct {
	Path string
	repo *git.Repository
}

// InitRepo creates an empty git repository in a temporary directory.
func InitRepo(t *testing.T) *Repo {
	t.Helper()
	dir := TempDir(t)
	repo, err := git.PlainInit(dir, false)
	if err != nil {
		t.Fatalf("PlainInit error: %v", err)
	}
	return &Repo{Path: dir, repo: repo}
}

// Change describes the working tree edits of one test commit. A nil
// content in Files deletes the file.
type Change struct {
	Author string
	Email  string
	When   time.Time
	Files  map[string]*string
}

// Content returns a pointer to s, for use in Change.Files.
func Content(s string) *string {
	return &s
}

// Commit applies the change to the working tree and commits it.
// Returns the commit hash.
func (r *Repo) Commit(t *testing.T, msg string, c Change) string {
	t.Helper()
	w, err := r.repo.Worktree()
	if err != nil {
		t.Fatalf("Worktree error: %v", err)
	}

	for name, content := range c.Files {
		if content == nil {
			if _, err := w.Remove(name); err != nil {
				t.Fatalf("Remove(%s) error: %v", name, err)
			}
			continue
		}
		WriteFile(t, filepath.Join(r.Path, filepath.FromSlash(name)), *content)
		if _, err := w.Add(name); err != nil {
			t.Fatalf("Add(%s) error: %v", name, err)
		}
	}

	author := c.Author
	if author == "" {
		author = "Test"
	}
	email := c.Email
	if email == "" {
		email = strings.ToLower(author) + "@example.com"
	}
	when := c.When
	if when.IsZero() {
		when = time.Now()
	}

	hash, err := w.Commit(msg, &git.CommitOptions{
		Author: &object.Signature{
			Name:  author,
			Email: email,
			When:  when,
		},
		AllowEmptyCommits: true,
	})
	if err != nil {
		t.Fatalf("Commit error: %v", err)
	}
	return hash.String()
}
