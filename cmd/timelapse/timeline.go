package main

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/panbanda/timelapse/internal/output"
	"github.com/panbanda/timelapse/internal/progress"
	"github.com/panbanda/timelapse/internal/service/timeline"
	analyzer "github.com/panbanda/timelapse/pkg/analyzer/timeline"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/urfave/cli/v2"
)

func timelineCmd() *cli.Command {
	return &cli.Command{
		Name:      "timeline",
		Aliases:   []string{"tl"},
		Usage:     "Build the frame timeline of a repository",
		ArgsUsage: "[path]",
		Flags: append(outputFlags(),
			intervalFlag(),
			&cli.BoolFlag{
				Name:  "include-trees",
				Usage: "Include the full file tree of every frame in json/toon output",
			},
		),
		Action: runTimelineCmd,
	}
}

// buildTimeline rebuilds the session's timeline, showing a spinner on
// interactive text output.
func buildTimeline(c *cli.Context) (*timeline.Session, *models.Timeline, error) {
	interval, err := parseInterval(c)
	if err != nil {
		return nil, nil, err
	}

	var spinner *progress.Tracker
	if c.String("output") == "" && outputFormat(c) == output.FormatText {
		spinner = progress.NewSpinner("Reading history...")
	}

	sess, err := newSession(c, sessionConfig(c),
		timeline.WithAnalyzerOptions(analyzer.WithSpinner(spinner)))
	if err != nil {
		return nil, nil, err
	}

	ctx, cancel := signalContext(c.Context)
	defer cancel()

	tl, err := sess.Rebuild(ctx, interval)
	if err != nil {
		spinner.FinishError(err)
		sess.Close()
		return nil, nil, err
	}
	spinner.FinishSuccess()
	return sess, tl, nil
}

func runTimelineCmd(c *cli.Context) error {
	sess, tl, err := buildTimeline(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	if tl.Empty() {
		color.Yellow("No commits found in %s", getPath(c))
		return nil
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	report := analyzer.NewReport(tl)
	report.IncludeTrees = c.Bool("include-trees")
	return formatter.Output(report)
}

func frameCmd() *cli.Command {
	return &cli.Command{
		Name:      "frame",
		Usage:     "Print the file tree of one frame as a node list",
		ArgsUsage: "[path]",
		Flags: append(outputFlags(),
			intervalFlag(),
			&cli.IntFlag{
				Name:  "index",
				Value: -1,
				Usage: "Zero-based frame index; negative values count from the end",
			},
		),
		Action: runFrameCmd,
	}
}

func runFrameCmd(c *cli.Context) error {
	sess, tl, err := buildTimeline(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	index, err := frameIndex(c.Int("index"), len(tl.Frames))
	if err != nil {
		return err
	}
	nodes, err := sess.TreeToNodes(index)
	if err != nil {
		return err
	}

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	return formatter.Output(&analyzer.NodesReport{
		Label: tl.Frames[index].Label,
		Nodes: nodes,
	})
}

type dateRangeData struct {
	Empty    bool       `json:"empty" toon:"empty"`
	Start    *time.Time `json:"start,omitempty" toon:"start,omitempty"`
	End      *time.Time `json:"end,omitempty" toon:"end,omitempty"`
	Duration string     `json:"duration,omitempty" toon:"duration,omitempty"`
}

func rangeCmd() *cli.Command {
	return &cli.Command{
		Name:      "range",
		Usage:     "Print the first and last commit timestamps",
		ArgsUsage: "[path]",
		Flags:     outputFlags(),
		Action:    runRangeCmd,
	}
}

func runRangeCmd(c *cli.Context) error {
	sess, _, err := buildTimeline(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	r := sess.DateRange()
	if r == nil {
		return formatter.Output(output.NewTable("Date Range", []string{"First", "Last", "Span"},
			[][]string{{"-", "-", "-"}}, nil, dateRangeData{Empty: true}))
	}

	span := humanize.RelTime(r.Start, r.End, "", "")
	rows := [][]string{{
		r.Start.UTC().Format(time.RFC3339),
		r.End.UTC().Format(time.RFC3339),
		span,
	}}
	return formatter.Output(output.NewTable("Date Range", []string{"First", "Last", "Span"}, rows, nil,
		dateRangeData{Start: &r.Start, End: &r.End, Duration: span}))
}

func contributorsCmd() *cli.Command {
	return &cli.Command{
		Name:      "contributors",
		Aliases:   []string{"authors"},
		Usage:     "List commit authors in order of first appearance",
		ArgsUsage: "[path]",
		Flags:     outputFlags(),
		Action:    runContributorsCmd,
	}
}

func runContributorsCmd(c *cli.Context) error {
	sess, _, err := buildTimeline(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	formatter, err := newFormatter(c)
	if err != nil {
		return err
	}
	defer formatter.Close()

	names := sess.Contributors()
	rows := make([]string, 0, len(names))
	table := make([][]string, 0, len(names))
	for i, name := range names {
		rows = append(rows, name)
		table = append(table, []string{fmt.Sprintf("%d", i+1), name})
	}
	footer := []string{"", fmt.Sprintf("%d contributors", len(names))}
	return formatter.Output(output.NewTable("Contributors", []string{"#", "Name"}, table, footer, rows))
}

func chartCmd() *cli.Command {
	return &cli.Command{
		Name:      "chart",
		Usage:     "Render growth and activity charts to an HTML page",
		ArgsUsage: "[path]",
		Flags: []cli.Flag{
			intervalFlag(),
			&cli.StringFlag{
				Name:  "out",
				Value: "timeline.html",
				Usage: "HTML file to write",
			},
			&cli.BoolFlag{
				Name:  "no-cache",
				Usage: "Disable the history cache",
			},
		},
		Action: runChartCmd,
	}
}

func runChartCmd(c *cli.Context) error {
	sess, tl, err := buildTimeline(c)
	if err != nil {
		return err
	}
	defer sess.Close()

	if tl.Empty() {
		color.Yellow("No commits found in %s", getPath(c))
		return nil
	}

	out := c.String("out")
	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create %s: %w", dir, err)
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return fmt.Errorf("failed to create %s: %w", out, err)
	}
	defer f.Close()

	if err := analyzer.RenderChart(f, tl); err != nil {
		return fmt.Errorf("failed to render chart: %w", err)
	}
	color.Green("Chart written to %s (%d frames)", out, len(tl.Frames))
	return nil
}
