package timeline

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/panbanda/timelapse/internal/output"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_RenderText(t *testing.T) {
	tl := Build(scenarioLog(), models.IntervalDay)

	var buf bytes.Buffer
	require.NoError(t, NewReport(tl).RenderText(&buf, false))

	out := buf.String()
	for _, want := range []string{"Timeline (3 frames, day)", "2024-01-01", "2024-01-03", "Contributors:  2", "Commits:       3"} {
		assert.Contains(t, out, want)
	}
	assert.NotContains(t, out, "Skipped")
}

func TestReport_RenderTextDiagnostics(t *testing.T) {
	commits := append(scenarioLog(), commitAt("c4", "bob", date(2024, 1, 3, 13), deleted("ghost")))
	tl := Build(commits, models.IntervalDay)

	var buf bytes.Buffer
	require.NoError(t, NewReport(tl).RenderText(&buf, true))
	assert.Contains(t, buf.String(), "1 malformed changes")
}

func TestReport_RenderEmpty(t *testing.T) {
	tl := Build(nil, models.IntervalWeek)

	var text, md bytes.Buffer
	require.NoError(t, NewReport(tl).RenderText(&text, false))
	require.NoError(t, NewReport(tl).RenderMarkdown(&md))
	assert.Equal(t, "No commits found\n", text.String())
	assert.Equal(t, "No commits found\n", md.String())
}

func TestReport_RenderMarkdown(t *testing.T) {
	tl := Build(scenarioLog(), models.IntervalDay)

	var buf bytes.Buffer
	require.NoError(t, NewReport(tl).RenderMarkdown(&buf))

	out := buf.String()
	assert.True(t, strings.HasPrefix(out, "## Timeline (3 frames, day)"))
	assert.Contains(t, out, "| Frame | Files | Lines |")
	assert.Contains(t, out, "| 2024-01-02 | 1 | 80 |")
}

func TestReport_RenderData(t *testing.T) {
	tl := Build(scenarioLog(), models.IntervalDay)

	data, err := json.Marshal(NewReport(tl).RenderData())
	require.NoError(t, err)

	var decoded struct {
		Interval string `json:"interval"`
		Frames   []struct {
			Label   string         `json:"label"`
			Commits int            `json:"commits"`
			Tree    map[string]any `json:"tree"`
		} `json:"frames"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "day", decoded.Interval)
	require.Len(t, decoded.Frames, 3)
	assert.Equal(t, 1, decoded.Frames[0].Commits)
	assert.Nil(t, decoded.Frames[0].Tree, "trees are omitted by default")

	full := &Report{Timeline: tl, IncludeTrees: true}
	assert.Same(t, tl, full.RenderData())
}

func TestReport_TOON(t *testing.T) {
	tl := Build(scenarioLog(), models.IntervalDay)

	var buf bytes.Buffer
	f := output.NewWriterFormatter(output.FormatTOON, &buf, false)
	require.NoError(t, f.Output(NewReport(tl)))
	assert.Contains(t, buf.String(), "2024-01-02")
}

func TestNodesReport(t *testing.T) {
	r := &NodesReport{Label: "2024-W02", Nodes: TreeToNodes(sampleTree())}

	var text bytes.Buffer
	require.NoError(t, r.RenderText(&text, false))
	assert.Contains(t, text.String(), "Frame 2024-W02")
	assert.Contains(t, text.String(), "src/  2 files, 15 lines")
	assert.Contains(t, text.String(), "    b.go  5 lines, 2 changes, carol")

	var md bytes.Buffer
	require.NoError(t, r.RenderMarkdown(&md))
	assert.Contains(t, md.String(), "| src/lib/b.go | file | 1 | 5 | 2 | carol |")

	assert.Equal(t, r.Nodes, r.RenderData())

	var empty bytes.Buffer
	require.NoError(t, (&NodesReport{Label: "x"}).RenderText(&empty, false))
	assert.Equal(t, "Frame x is empty\n", empty.String())
}
