package vcs

import (
	"os"
	"path/filepath"
	"sort"
	"testing"
	"time"

	"github.com/panbanda/timelapse/internal/testutil"
)

func when(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

// historyRepo commits a root file and a nested file, then edits the root
// file and deletes the nested one.
func historyRepo(t *testing.T) *testutil.Repo {
	t.Helper()
	repo := testutil.InitRepo(t)
	repo.Commit(t, "init\n\nbody", testutil.Change{
		Author: "Alice",
		When:   when(1),
		Files: map[string]*string{
			"a.txt":          testutil.Content("one\ntwo\n"),
			"src/pkg/b.go":   testutil.Content("package pkg\n"),
			"src/pkg/bin.db": testutil.Content("\x00\x01"),
		},
	})
	repo.Commit(t, "edit", testutil.Change{
		Author: "Bob",
		When:   when(2),
		Files: map[string]*string{
			"a.txt":        testutil.Content("one\nthree\nfour"),
			"src/pkg/b.go": nil,
		},
	})
	return repo
}

func openRepo(t *testing.T, path string) Repository {
	t.Helper()
	repo, err := NewGitOpener().PlainOpenWithDetect(path)
	if err != nil {
		t.Fatalf("PlainOpenWithDetect(%s) error = %v", path, err)
	}
	return repo
}

// logCommits returns the commits of repo, newest first.
func logCommits(t *testing.T, repo Repository) []Commit {
	t.Helper()
	iter, err := repo.Log()
	if err != nil {
		t.Fatalf("Log() error = %v", err)
	}
	defer iter.Close()

	var commits []Commit
	if err := iter.ForEach(func(c Commit) error {
		commits = append(commits, c)
		return nil
	}); err != nil {
		t.Fatalf("ForEach() error = %v", err)
	}
	return commits
}

func TestGitOpener_PlainOpenWithDetect(t *testing.T) {
	repo := historyRepo(t)
	head := openRepo(t, repo.Path)
	rootRef, err := head.Head()
	if err != nil {
		t.Fatalf("Head() error = %v", err)
	}

	sub := filepath.Join(repo.Path, "src", "pkg")
	subRef, err := openRepo(t, sub).Head()
	if err != nil {
		t.Fatalf("Head() from subdirectory error = %v", err)
	}
	if subRef.Hash() != rootRef.Hash() {
		t.Errorf("subdirectory HEAD = %s, want %s", subRef.Hash(), rootRef.Hash())
	}
}

func TestGitOpener_NotRepository(t *testing.T) {
	_, err := NewGitOpener().PlainOpenWithDetect(t.TempDir())
	if !IsNotRepository(err) {
		t.Errorf("IsNotRepository(%v) = false, want true", err)
	}
	if IsNotRepository(nil) {
		t.Error("IsNotRepository(nil) = true")
	}
}

func TestIsEmptyRepository(t *testing.T) {
	repo := testutil.InitRepo(t)

	_, err := openRepo(t, repo.Path).Head()
	if !IsEmptyRepository(err) {
		t.Errorf("IsEmptyRepository(%v) = false, want true", err)
	}
}

func TestGitRepository_Log(t *testing.T) {
	commits := logCommits(t, openRepo(t, historyRepo(t).Path))
	if len(commits) != 2 {
		t.Fatalf("Log() returned %d commits, want 2", len(commits))
	}

	edit, root := commits[0], commits[1]
	if edit.Message() != "edit" || edit.Author().Name != "Bob" {
		t.Errorf("newest commit = %q by %q", edit.Message(), edit.Author().Name)
	}
	if !edit.Author().When.Equal(when(2)) {
		t.Errorf("author time = %v, want %v", edit.Author().When, when(2))
	}
	if root.NumParents() != 0 || edit.NumParents() != 1 {
		t.Errorf("parents = %d, %d, want 0, 1", root.NumParents(), edit.NumParents())
	}

	parent, err := edit.Parent(0)
	if err != nil {
		t.Fatalf("Parent(0) error = %v", err)
	}
	if parent.Hash() != root.Hash() {
		t.Errorf("Parent(0) = %s, want %s", parent.Hash(), root.Hash())
	}
	if _, err := root.Parent(0); err == nil {
		t.Error("Parent(0) of a root commit should fail")
	}
}

func TestGitTree_Entries(t *testing.T) {
	commits := logCommits(t, openRepo(t, historyRepo(t).Path))
	tree, err := commits[1].Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}

	entries, err := tree.Entries()
	if err != nil {
		t.Fatalf("Entries() error = %v", err)
	}

	var files, dirs []string
	for _, e := range entries {
		if e.IsDir {
			dirs = append(dirs, e.Path)
		} else {
			files = append(files, e.Path)
		}
	}
	sort.Strings(files)
	sort.Strings(dirs)

	wantFiles := []string{"a.txt", "src/pkg/b.go", "src/pkg/bin.db"}
	if len(files) != len(wantFiles) {
		t.Fatalf("files = %v, want %v", files, wantFiles)
	}
	for i := range wantFiles {
		if files[i] != wantFiles[i] {
			t.Errorf("files[%d] = %q, want %q", i, files[i], wantFiles[i])
		}
	}
	if len(dirs) != 2 || dirs[0] != "src" || dirs[1] != "src/pkg" {
		t.Errorf("dirs = %v, want [src src/pkg]", dirs)
	}

	content, err := tree.File("a.txt")
	if err != nil {
		t.Fatalf("File() error = %v", err)
	}
	if string(content) != "one\ntwo\n" {
		t.Errorf("File(a.txt) = %q", content)
	}
	if _, err := tree.File("missing.txt"); err == nil {
		t.Error("File() should fail for a missing path")
	}
}

func TestGitTree_Diff(t *testing.T) {
	commits := logCommits(t, openRepo(t, historyRepo(t).Path))
	to, err := commits[0].Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	from, err := commits[1].Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}

	changes, err := from.Diff(to)
	if err != nil {
		t.Fatalf("Diff() error = %v", err)
	}

	type counts struct{ added, deleted int }
	got := make(map[string]counts)
	for _, c := range changes {
		name := c.ToName()
		if name == "" {
			name = c.FromName() + " (deleted)"
		}
		patch, err := c.Patch()
		if err != nil {
			t.Fatalf("Patch() error = %v", err)
		}
		var n counts
		for _, fp := range patch.FilePatches() {
			if fp.IsBinary() {
				continue
			}
			for _, chunk := range fp.Chunks() {
				switch chunk.Type() {
				case ChunkAdd:
					n.added += len(chunk.Content())
				case ChunkDelete:
					n.deleted += len(chunk.Content())
				}
			}
		}
		got[name] = n
	}

	if len(got) != 2 {
		t.Fatalf("changes = %v, want a.txt and the deleted b.go", got)
	}
	if got["a.txt"].added == 0 || got["a.txt"].deleted == 0 {
		t.Errorf("a.txt chunks = %+v, want additions and deletions", got["a.txt"])
	}
	if n := got["src/pkg/b.go (deleted)"]; n.added != 0 || n.deleted != len("package pkg\n") {
		t.Errorf("b.go chunks = %+v", n)
	}
}

type otherTree struct{ Tree }

func TestGitTree_DiffForeignTree(t *testing.T) {
	commits := logCommits(t, openRepo(t, historyRepo(t).Path))
	tree, err := commits[0].Tree()
	if err != nil {
		t.Fatalf("Tree() error = %v", err)
	}
	if _, err := tree.Diff(otherTree{}); err != ErrInvalidType {
		t.Errorf("Diff() error = %v, want ErrInvalidType", err)
	}
}

func TestDefaultOpener(t *testing.T) {
	repo := historyRepo(t)
	if err := os.MkdirAll(filepath.Join(repo.Path, "empty"), 0o755); err != nil {
		t.Fatal(err)
	}
	if _, err := DefaultOpener().PlainOpenWithDetect(filepath.Join(repo.Path, "empty")); err != nil {
		t.Errorf("DefaultOpener() cannot open from an untracked directory: %v", err)
	}
}
