package timeline

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/panbanda/timelapse/internal/output"
	"github.com/panbanda/timelapse/pkg/models"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

var numbers = message.NewPrinter(language.English)

// Report renders a timeline as a frame table.
type Report struct {
	Timeline *models.Timeline
	// IncludeTrees keeps per-frame trees in structured output.
	IncludeTrees bool
}

// NewReport wraps a timeline for rendering.
func NewReport(tl *models.Timeline) *Report {
	return &Report{Timeline: tl}
}

func (r *Report) table() *output.Table {
	headers := []string{"Frame", "Files", "Lines", "Commits", "Authors", "+", "~", "-"}
	rows := make([][]string, 0, len(r.Timeline.Frames))
	for _, f := range r.Timeline.Frames {
		rows = append(rows, []string{
			f.Label,
			numbers.Sprintf("%d", f.Stats.TotalFiles),
			numbers.Sprintf("%d", f.Stats.TotalLines),
			numbers.Sprintf("%d", len(f.Commits)),
			numbers.Sprintf("%d", f.Stats.TotalContributors),
			fmt.Sprintf("%d", len(f.NewFiles)),
			fmt.Sprintf("%d", len(f.ModifiedFiles)),
			fmt.Sprintf("%d", len(f.DeletedFiles)),
		})
	}
	return output.NewTable("", headers, rows, nil, nil)
}

func (r *Report) span() string {
	dr := r.Timeline.DateRange
	if dr == nil {
		return ""
	}
	return fmt.Sprintf("%s to %s (%s)",
		dr.Start.Format("2006-01-02"),
		dr.End.Format("2006-01-02"),
		humanize.RelTime(dr.Start, dr.End, "", ""))
}

// RenderText implements output.Renderable for text output.
func (r *Report) RenderText(w io.Writer, colored bool) error {
	tl := r.Timeline
	if tl.Empty() {
		fmt.Fprintln(w, "No commits found")
		return nil
	}

	title := fmt.Sprintf("Timeline (%d frames, %s)", len(tl.Frames), tl.Interval)
	if colored {
		color.New(color.Bold).Fprintln(w, title)
	} else {
		fmt.Fprintln(w, title)
	}
	fmt.Fprintln(w, strings.Repeat("=", len(title)))
	fmt.Fprintln(w)

	last := tl.Frames[len(tl.Frames)-1]
	fmt.Fprintf(w, "Span:          %s\n", r.span())
	fmt.Fprintf(w, "Contributors:  %s\n", numbers.Sprintf("%d", len(tl.Contributors)))
	fmt.Fprintf(w, "Commits:       %s\n", numbers.Sprintf("%d", last.Stats.TotalCommits))
	fmt.Fprintf(w, "Final tree:    %s files, %s lines\n",
		numbers.Sprintf("%d", last.Stats.TotalFiles),
		numbers.Sprintf("%d", last.Stats.TotalLines))
	growth := numbers.Sprintf("%+.1f lines/frame", tl.Summary.LineGrowthPerFrame)
	if colored {
		if tl.Summary.LineGrowthPerFrame < 0 {
			growth = color.RedString(growth)
		} else {
			growth = color.GreenString(growth)
		}
	}
	fmt.Fprintf(w, "Growth:        %s (R² %.2f)\n", growth, tl.Summary.RSquared)
	if len(tl.Diagnostics) > 0 {
		msg := fmt.Sprintf("Skipped:       %d malformed changes", len(tl.Diagnostics))
		if colored {
			msg = color.YellowString(msg)
		}
		fmt.Fprintln(w, msg)
	}
	fmt.Fprintln(w)

	return r.table().RenderText(w, colored)
}

// RenderMarkdown implements output.Renderable for markdown output.
func (r *Report) RenderMarkdown(w io.Writer) error {
	tl := r.Timeline
	if tl.Empty() {
		fmt.Fprintln(w, "No commits found")
		return nil
	}

	last := tl.Frames[len(tl.Frames)-1]
	fmt.Fprintf(w, "## Timeline (%d frames, %s)\n\n", len(tl.Frames), tl.Interval)
	fmt.Fprintf(w, "**Span:** %s\n\n", r.span())
	fmt.Fprintf(w, "**Contributors:** %d | **Commits:** %d | **Files:** %d | **Lines:** %d\n\n",
		len(tl.Contributors), last.Stats.TotalCommits, last.Stats.TotalFiles, last.Stats.TotalLines)

	return r.table().RenderMarkdown(w)
}

// RenderData implements output.Renderable for JSON/TOON output.
func (r *Report) RenderData() any {
	if r.IncludeTrees {
		return r.Timeline
	}

	type frameData struct {
		Label         string            `json:"label" toon:"label"`
		Start         time.Time         `json:"start" toon:"start"`
		End           time.Time         `json:"end" toon:"end"`
		Commits       int               `json:"commits" toon:"commits"`
		Stats         models.FrameStats `json:"stats" toon:"stats"`
		NewFiles      []string          `json:"new_files" toon:"new_files"`
		ModifiedFiles []string          `json:"modified_files" toon:"modified_files"`
		DeletedFiles  []string          `json:"deleted_files" toon:"deleted_files"`
		Digest        string            `json:"digest" toon:"digest"`
	}
	type timelineData struct {
		Interval     models.Interval        `json:"interval" toon:"interval"`
		DateRange    *models.DateRange      `json:"date_range,omitempty" toon:"date_range,omitempty"`
		Contributors []string               `json:"contributors" toon:"contributors"`
		Summary      models.TimelineSummary `json:"summary" toon:"summary"`
		Frames       []frameData            `json:"frames" toon:"frames"`
		Diagnostics  []models.Diagnostic    `json:"diagnostics,omitempty" toon:"diagnostics,omitempty"`
	}

	tl := r.Timeline
	data := timelineData{
		Interval:     tl.Interval,
		DateRange:    tl.DateRange,
		Contributors: tl.Contributors,
		Summary:      tl.Summary,
		Frames:       make([]frameData, 0, len(tl.Frames)),
		Diagnostics:  tl.Diagnostics,
	}
	for _, f := range tl.Frames {
		data.Frames = append(data.Frames, frameData{
			Label:         f.Label,
			Start:         f.Start,
			End:           f.End,
			Commits:       len(f.Commits),
			Stats:         f.Stats,
			NewFiles:      f.NewFiles,
			ModifiedFiles: f.ModifiedFiles,
			DeletedFiles:  f.DeletedFiles,
			Digest:        f.Digest,
		})
	}
	return data
}

// NodesReport renders the flattened tree of one frame.
type NodesReport struct {
	Label string
	Nodes []models.Node
}

// RenderText implements output.Renderable for text output.
func (r *NodesReport) RenderText(w io.Writer, colored bool) error {
	if len(r.Nodes) == 0 {
		fmt.Fprintf(w, "Frame %s is empty\n", r.Label)
		return nil
	}
	fmt.Fprintf(w, "Frame %s\n\n", r.Label)
	for _, n := range r.Nodes {
		indent := strings.Repeat("  ", n.Depth)
		if n.IsDirectory {
			name := n.Name + "/"
			if colored {
				name = color.New(color.Bold, color.FgBlue).Sprint(name)
			}
			fmt.Fprintf(w, "%s%s  %s files, %s lines\n", indent, name,
				numbers.Sprintf("%d", n.FileCount), numbers.Sprintf("%d", n.LineCount))
			continue
		}
		fmt.Fprintf(w, "%s%s  %s lines, %d changes, %s\n", indent, n.Name,
			numbers.Sprintf("%d", n.LineCount), n.ChangeCount, n.LastAuthor)
	}
	return nil
}

// RenderMarkdown implements output.Renderable for markdown output.
func (r *NodesReport) RenderMarkdown(w io.Writer) error {
	fmt.Fprintf(w, "## Frame %s\n\n", r.Label)
	fmt.Fprintln(w, "| Path | Type | Files | Lines | Changes | Last Author |")
	fmt.Fprintln(w, "|------|------|-------|-------|---------|-------------|")
	for _, n := range r.Nodes {
		kind := "file"
		if n.IsDirectory {
			kind = "dir"
		}
		fmt.Fprintf(w, "| %s | %s | %d | %d | %d | %s |\n",
			n.Path, kind, n.FileCount, n.LineCount, n.ChangeCount, n.LastAuthor)
	}
	fmt.Fprintln(w)
	return nil
}

// RenderData implements output.Renderable for JSON/TOON output.
func (r *NodesReport) RenderData() any {
	return r.Nodes
}
