package timeline

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/panbanda/timelapse/pkg/models"
)

// Reasons attached to diagnostics for changes that could not be applied.
const (
	ReasonEmptyPath        = "empty path"
	ReasonAbsolutePath     = "absolute path"
	ReasonInvalidSegment   = "path contains an empty, '.' or '..' segment"
	ReasonTrailingSlash    = "path ends with a separator"
	ReasonNegativeCount    = "negative line count"
	ReasonUnknownKind      = "unknown change kind"
	ReasonDeleteMissing    = "delete of a path that does not exist"
	ReasonDeleteDirectory  = "delete of a directory"
	ReasonPathIsDirectory  = "path is an existing directory"
	ReasonParentIsFile     = "an ancestor of the path is a file"
	ReasonClampedLineCount = "line count would go negative, clamped to 0"
)

// node is one entry of the accumulated tree. Directories hold children,
// files hold per-file state.
type node struct {
	name     string
	path     string
	dir      bool
	parent   *node
	children map[string]*node

	lines        int
	changeCount  int
	lastAuthor   string
	lastModified time.Time
	addedAt      time.Time
}

func newDir(name, path string, parent *node) *node {
	return &node{
		name:     name,
		path:     path,
		dir:      true,
		parent:   parent,
		children: make(map[string]*node),
	}
}

// Tree accumulates the file tree by replaying commits in chronological
// order. It is mutable and owned by a single build; frames receive deep
// copies through Files.
type Tree struct {
	root    *node
	files   map[string]*node
	deleted map[string]struct{}
	version uint64
	lines   int
}

// NewTree returns an empty tree.
func NewTree() *Tree {
	return &Tree{
		root:    newDir("", "", nil),
		files:   make(map[string]*node),
		deleted: make(map[string]struct{}),
	}
}

// Len returns the number of files in the tree.
func (t *Tree) Len() int {
	return len(t.files)
}

// TotalLines returns the sum of lines over all files.
func (t *Tree) TotalLines() int {
	return t.lines
}

// Version increases with every applied change.
func (t *Tree) Version() uint64 {
	return t.version
}

// Has reports whether path is a file in the tree.
func (t *Tree) Has(path string) bool {
	_, ok := t.files[path]
	return ok
}

// Apply replays the changes of one commit. Malformed changes are skipped
// and reported; they never abort the commit.
func (t *Tree) Apply(c models.Commit) []models.Diagnostic {
	var diags []models.Diagnostic
	report := func(path, reason string) {
		diags = append(diags, models.Diagnostic{Commit: c.Hash, Path: path, Reason: reason})
	}

	for _, ch := range c.Changes {
		segments, reason := splitPath(ch.Path)
		if reason != "" {
			report(ch.Path, reason)
			continue
		}
		if ch.LinesAdded < 0 || ch.LinesRemoved < 0 {
			report(ch.Path, ReasonNegativeCount)
			continue
		}

		switch ch.Kind {
		case models.ChangeAdded, models.ChangeModified:
			if reason := t.upsert(segments, ch, c); reason != "" {
				report(ch.Path, reason)
			}
		case models.ChangeDeleted:
			if reason := t.remove(ch.Path); reason != "" {
				report(ch.Path, reason)
			}
		default:
			report(ch.Path, fmt.Sprintf("%s %q", ReasonUnknownKind, ch.Kind))
		}
	}
	return diags
}

// upsert creates or updates the file at segments. Returns a diagnostic
// reason when the change conflicts with the existing tree.
func (t *Tree) upsert(segments []string, ch models.FileChange, c models.Commit) string {
	// Validate the whole path before creating any directory.
	cur := t.root
	depth := 0
	for ; depth < len(segments)-1; depth++ {
		next, ok := cur.children[segments[depth]]
		if !ok {
			break
		}
		if !next.dir {
			return ReasonParentIsFile
		}
		cur = next
	}
	if depth == len(segments)-1 {
		if existing, ok := cur.children[segments[depth]]; ok && existing.dir {
			return ReasonPathIsDirectory
		}
	}

	for ; depth < len(segments)-1; depth++ {
		name := segments[depth]
		dir := newDir(name, strings.Join(segments[:depth+1], "/"), cur)
		cur.children[name] = dir
		cur = dir
	}

	name := segments[len(segments)-1]
	f, ok := cur.children[name]
	if !ok {
		f = &node{name: name, path: ch.Path, parent: cur, addedAt: c.Timestamp}
		cur.children[name] = f
		t.files[ch.Path] = f
	}

	var reason string
	lines := f.lines + ch.LinesAdded - ch.LinesRemoved
	if lines < 0 {
		lines = 0
		reason = ReasonClampedLineCount
	}
	t.lines += lines - f.lines
	f.lines = lines
	f.changeCount++
	f.lastAuthor = c.Identity()
	f.lastModified = c.Timestamp
	t.version++
	return reason
}

// remove deletes the file at path and prunes directories left empty.
func (t *Tree) remove(path string) string {
	f, ok := t.files[path]
	if !ok {
		if t.isDir(path) {
			return ReasonDeleteDirectory
		}
		return ReasonDeleteMissing
	}

	delete(t.files, path)
	delete(f.parent.children, f.name)
	t.lines -= f.lines
	t.deleted[path] = struct{}{}
	t.version++

	for dir := f.parent; dir != t.root && len(dir.children) == 0; dir = dir.parent {
		delete(dir.parent.children, dir.name)
	}
	return ""
}

func (t *Tree) isDir(path string) bool {
	cur := t.root
	for _, seg := range strings.Split(path, "/") {
		next, ok := cur.children[seg]
		if !ok {
			return false
		}
		cur = next
	}
	return cur.dir
}

// Files returns a deep copy of every file in the tree keyed by path.
func (t *Tree) Files() map[string]models.FileNode {
	out := make(map[string]models.FileNode, len(t.files))
	for path, f := range t.files {
		out[path] = models.FileNode{
			Path:           path,
			Lines:          f.lines,
			LastAuthor:     f.lastAuthor,
			LastModifiedAt: f.lastModified,
			AddedAt:        f.addedAt,
			ChangeCount:    f.changeCount,
		}
	}
	return out
}

// TakeDeleted returns the paths deleted since the previous call, sorted,
// and resets the set.
func (t *Tree) TakeDeleted() []string {
	if len(t.deleted) == 0 {
		return nil
	}
	out := make([]string, 0, len(t.deleted))
	for p := range t.deleted {
		out = append(out, p)
	}
	sort.Strings(out)
	t.deleted = make(map[string]struct{})
	return out
}

// splitPath validates a repository-relative path and returns its segments.
func splitPath(path string) ([]string, string) {
	switch {
	case path == "":
		return nil, ReasonEmptyPath
	case strings.HasPrefix(path, "/"):
		return nil, ReasonAbsolutePath
	case strings.HasSuffix(path, "/"):
		return nil, ReasonTrailingSlash
	}
	segments := strings.Split(path, "/")
	for _, seg := range segments {
		if seg == "" || seg == "." || seg == ".." {
			return nil, ReasonInvalidSegment
		}
	}
	return segments, ""
}
