package timeline

import (
	"fmt"
	"io"

	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/components"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/panbanda/timelapse/pkg/models"
)

const (
	chartWidth  = "100%"
	chartHeight = "480px"
)

// GrowthChart plots file and line totals per frame.
func GrowthChart(tl *models.Timeline) *charts.Line {
	line := charts.NewLine()
	line.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			PageTitle: "Repository timeline",
			Width:     chartWidth,
			Height:    chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{
			Title:    "Repository growth",
			Subtitle: subtitle(tl),
		}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
		charts.WithYAxisOpts(opts.YAxis{Name: "Lines"}),
	)
	if tl.Empty() {
		return line
	}

	labels := make([]string, len(tl.Frames))
	lines := make([]opts.LineData, len(tl.Frames))
	files := make([]opts.LineData, len(tl.Frames))
	for i, f := range tl.Frames {
		labels[i] = f.Label
		lines[i] = opts.LineData{Value: f.Stats.TotalLines}
		files[i] = opts.LineData{Value: f.Stats.TotalFiles}
	}

	line.SetXAxis(labels).
		AddSeries("Lines", lines,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
			charts.WithAreaStyleOpts(opts.AreaStyle{Opacity: opts.Float(0.2)}),
		).
		AddSeries("Files", files,
			charts.WithLineChartOpts(opts.LineChart{Smooth: opts.Bool(true)}),
		)
	return line
}

// ActivityChart plots commits and file churn per frame.
func ActivityChart(tl *models.Timeline) *charts.Bar {
	bar := charts.NewBar()
	bar.SetGlobalOptions(
		charts.WithInitializationOpts(opts.Initialization{
			Width:  chartWidth,
			Height: chartHeight,
		}),
		charts.WithTitleOpts(opts.Title{Title: "Activity per frame"}),
		charts.WithTooltipOpts(opts.Tooltip{Show: opts.Bool(true), Trigger: "axis"}),
		charts.WithLegendOpts(opts.Legend{Show: opts.Bool(true), Top: "bottom"}),
		charts.WithDataZoomOpts(opts.DataZoom{Type: "slider", Start: 0, End: 100}),
	)
	if tl.Empty() {
		return bar
	}

	labels := make([]string, len(tl.Frames))
	commits := make([]opts.BarData, len(tl.Frames))
	added := make([]opts.BarData, len(tl.Frames))
	modified := make([]opts.BarData, len(tl.Frames))
	deleted := make([]opts.BarData, len(tl.Frames))
	for i, f := range tl.Frames {
		labels[i] = f.Label
		commits[i] = opts.BarData{Value: len(f.Commits)}
		added[i] = opts.BarData{Value: len(f.NewFiles)}
		modified[i] = opts.BarData{Value: len(f.ModifiedFiles)}
		deleted[i] = opts.BarData{Value: len(f.DeletedFiles)}
	}

	bar.SetXAxis(labels).
		AddSeries("Commits", commits).
		AddSeries("New", added, charts.WithBarChartOpts(opts.BarChart{Stack: "files"})).
		AddSeries("Modified", modified, charts.WithBarChartOpts(opts.BarChart{Stack: "files"})).
		AddSeries("Deleted", deleted, charts.WithBarChartOpts(opts.BarChart{Stack: "files"}))
	return bar
}

// RenderChart writes an HTML page with the growth and activity charts.
func RenderChart(w io.Writer, tl *models.Timeline) error {
	page := components.NewPage()
	page.PageTitle = "Repository timeline"
	page.AddCharts(GrowthChart(tl), ActivityChart(tl))
	if err := page.Render(w); err != nil {
		return fmt.Errorf("rendering chart: %w", err)
	}
	return nil
}

func subtitle(tl *models.Timeline) string {
	if tl == nil || tl.DateRange == nil {
		return "no commits"
	}
	return fmt.Sprintf("%s to %s, %d contributors, by %s",
		tl.DateRange.Start.Format("2006-01-02"),
		tl.DateRange.End.Format("2006-01-02"),
		len(tl.Contributors),
		tl.Interval)
}
