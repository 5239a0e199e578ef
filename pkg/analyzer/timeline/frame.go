package timeline

import (
	"sort"
	"strconv"

	"github.com/RoaringBitmap/roaring/v2"
	"github.com/cespare/xxhash/v2"
	"github.com/panbanda/timelapse/pkg/models"
)

// Totals carries the running counts a frame reports alongside its tree.
type Totals struct {
	Commits      int
	Contributors int
}

// FrameBuilder turns accumulator states into immutable frames and diffs
// each frame against the previous one. Paths are interned to dense ids so
// that file sets can be compared as bitmaps.
type FrameBuilder struct {
	ids   map[string]uint32
	paths []string

	prev        *models.TimelineFrame
	prevSet     *roaring.Bitmap
	prevVersion uint64
}

// NewFrameBuilder creates a builder with no previous frame.
func NewFrameBuilder() *FrameBuilder {
	return &FrameBuilder{
		ids:     make(map[string]uint32),
		prevSet: roaring.New(),
	}
}

func (fb *FrameBuilder) intern(path string) uint32 {
	if id, ok := fb.ids[path]; ok {
		return id
	}
	id := uint32(len(fb.paths))
	fb.ids[path] = id
	fb.paths = append(fb.paths, path)
	return id
}

func (fb *FrameBuilder) sortedPaths(bm *roaring.Bitmap) []string {
	out := make([]string, 0, bm.GetCardinality())
	it := bm.Iterator()
	for it.HasNext() {
		out = append(out, fb.paths[it.Next()])
	}
	sort.Strings(out)
	return out
}

// Snapshot captures the tree at the end of bucket b. commits are the
// commits inside the bucket window. The tree's pending deletions are
// consumed.
func (fb *FrameBuilder) Snapshot(tree *Tree, b models.Bucket, commits []models.Commit, totals Totals) models.TimelineFrame {
	deletedInBucket := tree.TakeDeleted()

	frame := models.TimelineFrame{
		Label:         b.Label,
		Start:         b.Start,
		End:           b.End,
		Commits:       commits,
		NewFiles:      []string{},
		ModifiedFiles: []string{},
		DeletedFiles:  []string{},
	}
	if frame.Commits == nil {
		frame.Commits = []models.Commit{}
	}

	var nowSet *roaring.Bitmap
	if fb.prev != nil && tree.Version() == fb.prevVersion {
		// Nothing changed: frames are read-only, so the previous tree is shared.
		frame.Tree = fb.prev.Tree
		frame.Digest = fb.prev.Digest
		nowSet = fb.prevSet
	} else {
		frame.Tree = tree.Files()
		nowSet = roaring.New()
		for path := range frame.Tree {
			nowSet.Add(fb.intern(path))
		}
		frame.Digest = digest(frame.Tree)

		frame.NewFiles = fb.sortedPaths(roaring.AndNot(nowSet, fb.prevSet))

		if fb.prev != nil {
			for _, path := range fb.sortedPaths(roaring.And(nowSet, fb.prevSet)) {
				before, after := fb.prev.Tree[path], frame.Tree[path]
				if after.ChangeCount != before.ChangeCount || !after.AddedAt.Equal(before.AddedAt) {
					frame.ModifiedFiles = append(frame.ModifiedFiles, path)
				}
			}
		}

		deleted := roaring.AndNot(fb.prevSet, nowSet)
		for _, path := range deletedInBucket {
			if id := fb.intern(path); !nowSet.Contains(id) {
				deleted.Add(id)
			}
		}
		frame.DeletedFiles = fb.sortedPaths(deleted)
	}

	frame.Stats = models.FrameStats{
		TotalFiles:        len(frame.Tree),
		TotalCommits:      totals.Commits,
		TotalContributors: totals.Contributors,
	}
	for _, f := range frame.Tree {
		frame.Stats.TotalLines += f.Lines
	}

	fb.prev = &frame
	fb.prevSet = nowSet
	fb.prevVersion = tree.Version()
	return frame
}

// digest hashes the tree contents in path order. Equal digests mean equal
// trees for every field a frame diff looks at.
func digest(tree map[string]models.FileNode) string {
	paths := make([]string, 0, len(tree))
	for p := range tree {
		paths = append(paths, p)
	}
	sort.Strings(paths)

	h := xxhash.New()
	buf := make([]byte, 0, 64)
	for _, p := range paths {
		f := tree[p]
		buf = buf[:0]
		buf = append(buf, p...)
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, int64(f.Lines), 10)
		buf = append(buf, 0)
		buf = strconv.AppendInt(buf, int64(f.ChangeCount), 10)
		buf = append(buf, '\n')
		_, _ = h.Write(buf)
	}
	return strconv.FormatUint(h.Sum64(), 16)
}
