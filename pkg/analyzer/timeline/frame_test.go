package timeline

import (
	"testing"

	"github.com/panbanda/timelapse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func bucket(label string) models.Bucket {
	return models.Bucket{Label: label}
}

func TestFrameBuilder_FirstFrame(t *testing.T) {
	tree := NewTree()
	c := commitAt("c1", "alice", date(2024, 1, 1, 0), added("b.txt", 2), added("a.txt", 3))
	tree.Apply(c)

	fb := NewFrameBuilder()
	f := fb.Snapshot(tree, bucket("2024-01-01"), []models.Commit{c}, Totals{Commits: 1, Contributors: 1})

	assert.Equal(t, "2024-01-01", f.Label)
	assert.Equal(t, []string{"a.txt", "b.txt"}, f.NewFiles)
	assert.Empty(t, f.ModifiedFiles)
	assert.Empty(t, f.DeletedFiles)
	assert.Equal(t, models.FrameStats{TotalFiles: 2, TotalLines: 5, TotalCommits: 1, TotalContributors: 1}, f.Stats)
	assert.NotEmpty(t, f.Digest)
	require.Len(t, f.Commits, 1)
}

func TestFrameBuilder_DiffSetsAreNeverNil(t *testing.T) {
	fb := NewFrameBuilder()
	f := fb.Snapshot(NewTree(), bucket("x"), nil, Totals{})

	assert.NotNil(t, f.NewFiles)
	assert.NotNil(t, f.ModifiedFiles)
	assert.NotNil(t, f.DeletedFiles)
	assert.NotNil(t, f.Commits)
	assert.NotNil(t, f.Tree)
	assert.Zero(t, f.Stats.TotalFiles)
}

func TestFrameBuilder_ModifiedAndDeleted(t *testing.T) {
	tree := NewTree()
	fb := NewFrameBuilder()
	when := date(2024, 1, 1, 0)

	tree.Apply(commitAt("c1", "a", when, added("keep.txt", 1), added("edit.txt", 1), added("drop.txt", 1)))
	fb.Snapshot(tree, bucket("1"), nil, Totals{})

	tree.Apply(commitAt("c2", "a", when, modified("edit.txt", 1, 0), deleted("drop.txt"), added("new.txt", 1)))
	f := fb.Snapshot(tree, bucket("2"), nil, Totals{})

	assert.Equal(t, []string{"new.txt"}, f.NewFiles)
	assert.Equal(t, []string{"edit.txt"}, f.ModifiedFiles)
	assert.Equal(t, []string{"drop.txt"}, f.DeletedFiles)
	assert.Equal(t, 3, f.Stats.TotalFiles)
}

func TestFrameBuilder_TransientFileIsDeletedNotNew(t *testing.T) {
	tree := NewTree()
	fb := NewFrameBuilder()
	when := date(2024, 1, 1, 0)

	tree.Apply(commitAt("c1", "a", when, added("tmp.txt", 1)))
	tree.Apply(commitAt("c2", "a", when, deleted("tmp.txt")))
	f := fb.Snapshot(tree, bucket("1"), nil, Totals{})

	assert.Empty(t, f.NewFiles)
	assert.Equal(t, []string{"tmp.txt"}, f.DeletedFiles)
	assert.Empty(t, f.Tree)
}

func TestFrameBuilder_DeletedAndReAddedIsModified(t *testing.T) {
	tree := NewTree()
	fb := NewFrameBuilder()

	tree.Apply(commitAt("c1", "a", date(2024, 1, 1, 0), added("a.txt", 1)))
	fb.Snapshot(tree, bucket("1"), nil, Totals{})

	tree.Apply(commitAt("c2", "a", date(2024, 1, 2, 0), deleted("a.txt")))
	tree.Apply(commitAt("c3", "a", date(2024, 1, 2, 1), added("a.txt", 1)))
	f := fb.Snapshot(tree, bucket("2"), nil, Totals{})

	assert.Empty(t, f.NewFiles)
	assert.Empty(t, f.DeletedFiles, "the file exists at the end of the bucket")
	assert.Equal(t, []string{"a.txt"}, f.ModifiedFiles)
}

func TestFrameBuilder_UnchangedBucketSharesTree(t *testing.T) {
	tree := NewTree()
	fb := NewFrameBuilder()

	tree.Apply(commitAt("c1", "a", date(2024, 1, 1, 0), added("a.txt", 1)))
	first := fb.Snapshot(tree, bucket("1"), nil, Totals{Commits: 1})
	second := fb.Snapshot(tree, bucket("2"), nil, Totals{Commits: 1})

	assert.Equal(t, first.Digest, second.Digest)
	assert.Equal(t, first.Tree, second.Tree)
	assert.Empty(t, second.NewFiles)
	assert.Empty(t, second.ModifiedFiles)
	assert.Empty(t, second.DeletedFiles)
	assert.Equal(t, first.Stats, second.Stats)
}

func TestFrameBuilder_EarlierFramesAreImmutable(t *testing.T) {
	tree := NewTree()
	fb := NewFrameBuilder()
	when := date(2024, 1, 1, 0)

	tree.Apply(commitAt("c1", "a", when, added("a.txt", 1)))
	first := fb.Snapshot(tree, bucket("1"), nil, Totals{})
	want := first.Digest

	tree.Apply(commitAt("c2", "a", when, modified("a.txt", 9, 0), added("b.txt", 1)))
	fb.Snapshot(tree, bucket("2"), nil, Totals{})

	assert.Len(t, first.Tree, 1)
	assert.Equal(t, 1, first.Tree["a.txt"].Lines)
	assert.Equal(t, want, digest(first.Tree))
}

func TestDigest(t *testing.T) {
	a := map[string]models.FileNode{
		"a.txt": {Path: "a.txt", Lines: 1, ChangeCount: 1},
		"b.txt": {Path: "b.txt", Lines: 2, ChangeCount: 1},
	}
	b := map[string]models.FileNode{
		"b.txt": {Path: "b.txt", Lines: 2, ChangeCount: 1},
		"a.txt": {Path: "a.txt", Lines: 1, ChangeCount: 1},
	}
	c := map[string]models.FileNode{
		"a.txt": {Path: "a.txt", Lines: 1, ChangeCount: 2},
		"b.txt": {Path: "b.txt", Lines: 2, ChangeCount: 1},
	}

	assert.Equal(t, digest(a), digest(b), "digest does not depend on map order")
	assert.NotEqual(t, digest(a), digest(c))
	assert.NotEqual(t, digest(a), digest(map[string]models.FileNode{}))
}
