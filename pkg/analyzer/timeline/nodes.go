package timeline

import (
	"sort"
	"strings"
	"time"

	"github.com/panbanda/timelapse/pkg/models"
)

// dirEntry is a directory reconstructed from file paths while flattening.
type dirEntry struct {
	name  string
	path  string
	dirs  map[string]*dirEntry
	files []models.FileNode

	fileCount    int
	lineCount    int
	lastAuthor   string
	lastModified time.Time
	addedAt      time.Time
}

func (d *dirEntry) child(name string) *dirEntry {
	if c, ok := d.dirs[name]; ok {
		return c
	}
	path := name
	if d.path != "" {
		path = d.path + "/" + name
	}
	c := &dirEntry{name: name, path: path, dirs: make(map[string]*dirEntry)}
	d.dirs[name] = c
	return c
}

// aggregate fills directory totals bottom-up.
func (d *dirEntry) aggregate() {
	for _, sub := range d.dirs {
		sub.aggregate()
		d.fileCount += sub.fileCount
		d.lineCount += sub.lineCount
		d.observe(sub.lastAuthor, sub.lastModified, sub.addedAt)
	}
	for _, f := range d.files {
		d.fileCount++
		d.lineCount += f.Lines
		d.observe(f.LastAuthor, f.LastModifiedAt, f.AddedAt)
	}
}

func (d *dirEntry) observe(author string, modified, added time.Time) {
	if d.lastAuthor == "" || modified.After(d.lastModified) {
		d.lastAuthor = author
		d.lastModified = modified
	}
	if d.addedAt.IsZero() || added.Before(d.addedAt) {
		d.addedAt = added
	}
}

// TreeToNodes flattens a frame tree into a node list suitable for
// hierarchical rendering. Order is depth first with directories before
// files at each level, names ascending. The root is never emitted;
// top-level nodes have models.RootParentID as parent.
func TreeToNodes(tree map[string]models.FileNode) []models.Node {
	root := &dirEntry{dirs: make(map[string]*dirEntry)}
	for path, f := range tree {
		segments := strings.Split(path, "/")
		dir := root
		for _, seg := range segments[:len(segments)-1] {
			dir = dir.child(seg)
		}
		f.Path = path
		dir.files = append(dir.files, f)
	}
	root.aggregate()

	nodes := make([]models.Node, 0, len(tree))
	var walk func(d *dirEntry, depth int)
	walk = func(d *dirEntry, depth int) {
		names := make([]string, 0, len(d.dirs))
		for name := range d.dirs {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			sub := d.dirs[name]
			nodes = append(nodes, models.Node{
				ID:          sub.path,
				Path:        sub.path,
				ParentID:    d.path,
				Name:        sub.name,
				IsDirectory: true,
				Depth:       depth,
				FileCount:   sub.fileCount,
				LineCount:   sub.lineCount,
				LastAuthor:  sub.lastAuthor,
				AddedAt:     sub.addedAt,
			})
			walk(sub, depth+1)
		}

		sort.Slice(d.files, func(i, j int) bool {
			return d.files[i].Path < d.files[j].Path
		})
		for _, f := range d.files {
			nodes = append(nodes, models.Node{
				ID:          f.Path,
				Path:        f.Path,
				ParentID:    d.path,
				Name:        f.Path[strings.LastIndex(f.Path, "/")+1:],
				Depth:       depth,
				FileCount:   1,
				LineCount:   f.Lines,
				LastAuthor:  f.LastAuthor,
				AddedAt:     f.AddedAt,
				ChangeCount: f.ChangeCount,
			})
		}
	}
	walk(root, 0)
	return nodes
}
