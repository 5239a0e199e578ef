package timeline

import (
	"testing"

	"github.com/panbanda/timelapse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleTree() map[string]models.FileNode {
	return map[string]models.FileNode{
		"README.md": {
			Lines: 3, ChangeCount: 1, LastAuthor: "alice",
			AddedAt: date(2024, 1, 1, 0), LastModifiedAt: date(2024, 1, 1, 0),
		},
		"src/a.go": {
			Lines: 10, ChangeCount: 4, LastAuthor: "bob",
			AddedAt: date(2024, 1, 2, 0), LastModifiedAt: date(2024, 1, 9, 0),
		},
		"src/lib/b.go": {
			Lines: 5, ChangeCount: 2, LastAuthor: "carol",
			AddedAt: date(2024, 1, 3, 0), LastModifiedAt: date(2024, 1, 5, 0),
		},
	}
}

func TestTreeToNodes_Order(t *testing.T) {
	nodes := TreeToNodes(sampleTree())

	paths := make([]string, len(nodes))
	for i, n := range nodes {
		paths[i] = n.Path
	}
	assert.Equal(t, []string{"src", "src/lib", "src/lib/b.go", "src/a.go", "README.md"}, paths)
}

func TestTreeToNodes_Fields(t *testing.T) {
	nodes := TreeToNodes(sampleTree())
	byPath := make(map[string]models.Node, len(nodes))
	for _, n := range nodes {
		byPath[n.Path] = n
	}

	src := byPath["src"]
	assert.True(t, src.IsDirectory)
	assert.Equal(t, "src", src.ID)
	assert.Equal(t, "src", src.Name)
	assert.Equal(t, models.RootParentID, src.ParentID)
	assert.Equal(t, 0, src.Depth)
	assert.Equal(t, 2, src.FileCount)
	assert.Equal(t, 15, src.LineCount)
	assert.Equal(t, "bob", src.LastAuthor, "latest modification below the directory")
	assert.Equal(t, date(2024, 1, 2, 0), src.AddedAt, "earliest addition below the directory")
	assert.Zero(t, src.ChangeCount)

	lib := byPath["src/lib"]
	assert.Equal(t, "src", lib.ParentID)
	assert.Equal(t, 1, lib.Depth)
	assert.Equal(t, 1, lib.FileCount)
	assert.Equal(t, 5, lib.LineCount)

	b := byPath["src/lib/b.go"]
	assert.False(t, b.IsDirectory)
	assert.Equal(t, "b.go", b.Name)
	assert.Equal(t, "src/lib", b.ParentID)
	assert.Equal(t, 2, b.Depth)
	assert.Equal(t, 5, b.LineCount)
	assert.Equal(t, 2, b.ChangeCount)
	assert.Equal(t, "carol", b.LastAuthor)

	readme := byPath["README.md"]
	assert.Equal(t, models.RootParentID, readme.ParentID)
	assert.Equal(t, 0, readme.Depth)
}

func TestTreeToNodes_ParentsResolve(t *testing.T) {
	nodes := TreeToNodes(sampleTree())
	ids := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		require.False(t, ids[n.ID], "duplicate id %q", n.ID)
		ids[n.ID] = true
	}
	for _, n := range nodes {
		if n.ParentID == models.RootParentID {
			continue
		}
		assert.True(t, ids[n.ParentID], "dangling parent %q of %q", n.ParentID, n.ID)
	}
}

func TestTreeToNodes_Deterministic(t *testing.T) {
	first := TreeToNodes(sampleTree())
	for i := 0; i < 20; i++ {
		assert.Equal(t, first, TreeToNodes(sampleTree()))
	}
}

func TestTreeToNodes_Empty(t *testing.T) {
	nodes := TreeToNodes(map[string]models.FileNode{})
	assert.NotNil(t, nodes)
	assert.Empty(t, nodes)
}

func TestTreeToNodes_DirectoriesBeforeFiles(t *testing.T) {
	tree := map[string]models.FileNode{
		"a.txt":   {Lines: 1},
		"z/b.txt": {Lines: 1},
	}
	nodes := TreeToNodes(tree)
	require.Len(t, nodes, 3)
	assert.Equal(t, "z", nodes[0].Path)
	assert.Equal(t, "z/b.txt", nodes[1].Path)
	assert.Equal(t, "a.txt", nodes[2].Path)
}
