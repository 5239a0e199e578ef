package timeline

import (
	"math"

	"github.com/panbanda/timelapse/pkg/models"
	"gonum.org/v1/gonum/stat"
)

// Summarize computes growth statistics over a frame sequence. Regression
// fields are zero with fewer than two frames.
func Summarize(frames []models.TimelineFrame) models.TimelineSummary {
	s := models.TimelineSummary{Frames: len(frames)}
	if len(frames) == 0 {
		return s
	}

	xs := make([]float64, len(frames))
	lines := make([]float64, len(frames))
	files := make([]float64, len(frames))
	commits := make([]float64, len(frames))
	for i, f := range frames {
		xs[i] = float64(i)
		lines[i] = float64(f.Stats.TotalLines)
		files[i] = float64(f.Stats.TotalFiles)
		commits[i] = float64(len(f.Commits))
		if len(f.Commits) > 0 {
			s.ActiveFrames++
		}
		if s.PeakLabel == "" || f.Stats.TotalLines > s.PeakLines {
			s.PeakLines = f.Stats.TotalLines
			s.PeakLabel = f.Label
		}
	}
	s.MeanCommitsPerFrame = stat.Mean(commits, nil)

	if len(frames) < 2 {
		return s
	}

	intercept, slope := stat.LinearRegression(xs, lines, nil, false)
	s.LineGrowthPerFrame = slope
	s.RSquared = finite(stat.RSquared(xs, lines, nil, intercept, slope))

	_, s.FileGrowthPerFrame = stat.LinearRegression(xs, files, nil, false)
	return s
}

// finite maps NaN and infinities to zero. A flat series has no variance
// and yields NaN for R².
func finite(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}
