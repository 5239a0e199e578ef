package timeline

import (
	"bytes"
	"testing"

	"github.com/panbanda/timelapse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderChart(t *testing.T) {
	tl := Build(scenarioLog(), models.IntervalDay)

	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, tl))

	html := buf.String()
	assert.Contains(t, html, "<html")
	assert.Contains(t, html, "Repository growth")
	assert.Contains(t, html, "Activity per frame")
	assert.Contains(t, html, "2024-01-02")
}

func TestRenderChart_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, RenderChart(&buf, Build(nil, models.IntervalWeek)))
	assert.Positive(t, buf.Len())
}

func TestSubtitle(t *testing.T) {
	assert.Equal(t, "no commits", subtitle(nil))
	assert.Equal(t, "2024-01-01 to 2024-01-03, 2 contributors, by day",
		subtitle(Build(scenarioLog(), models.IntervalDay)))
}
