package mcpserver

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/panbanda/timelapse/internal/output"
	"github.com/panbanda/timelapse/internal/service/timeline"
	analyzer "github.com/panbanda/timelapse/pkg/analyzer/timeline"
	"github.com/panbanda/timelapse/pkg/models"
)

// Common input structures for tools

// RepoInput is the base input for all timeline tools.
type RepoInput struct {
	Path   string `json:"path,omitempty" jsonschema:"Repository path. Defaults to current directory if empty."`
	Format string `json:"format,omitempty" jsonschema:"Output format: toon (default), json, or markdown."`
}

// BuildTimelineInput selects the bucket interval of a build.
type BuildTimelineInput struct {
	RepoInput
	Interval     string `json:"interval,omitempty" jsonschema:"Bucket interval: day, week or month. Default from config (week)."`
	IncludeTrees bool   `json:"include_trees,omitempty" jsonschema:"Include the full file tree of every frame. Large for big repositories."`
}

// MetadataInput reads metadata of the last build.
type MetadataInput struct {
	RepoInput
	Refresh bool `json:"refresh,omitempty" jsonschema:"Rebuild from the repository before answering instead of using the last build."`
}

// TreeToNodesInput selects the frame to flatten.
type TreeToNodesInput struct {
	RepoInput
	Frame    int    `json:"frame,omitempty" jsonschema:"Zero-based frame index. Negative values count from the end; -1 is the latest frame. Default 0."`
	Interval string `json:"interval,omitempty" jsonschema:"Rebuild at this interval first when it differs from the last build."`
}

// Helper functions

func getFormat(input RepoInput) output.Format {
	switch input.Format {
	case "json":
		return output.FormatJSON
	case "markdown", "md":
		return output.FormatMarkdown
	default:
		return output.FormatTOON
	}
}

func toolResult(data any, format output.Format) (*mcp.CallToolResult, any, error) {
	text, err := output.Marshal(data, format)
	if err != nil {
		return nil, nil, err
	}
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: text},
		},
	}, nil, nil
}

func toolError(msg string) (*mcp.CallToolResult, any, error) {
	return &mcp.CallToolResult{
		Content: []mcp.Content{
			&mcp.TextContent{Text: "Error: " + msg},
		},
		IsError: true,
	}, nil, nil
}

func buildError(err error) (*mcp.CallToolResult, any, error) {
	var re *analyzer.RepositoryError
	switch {
	case errors.Is(err, timeline.ErrSuperseded):
		return toolError("build superseded by a newer request for the same repository")
	case errors.As(err, &re):
		return toolError(fmt.Sprintf("cannot read repository %s: %v", re.Path, re.Err))
	default:
		return toolError(err.Error())
	}
}

// interval parses s, falling back to the configured interval when empty.
func (s *Server) interval(v string) (models.Interval, error) {
	if v == "" {
		return s.config.Interval(), nil
	}
	return models.ParseInterval(v)
}

// ensureBuilt rebuilds when nothing was adopted yet or a refresh is asked
// for, and returns the adopted timeline.
func (s *Server) ensureBuilt(ctx context.Context, sess *timeline.Session, refresh bool, interval models.Interval) (*models.Timeline, error) {
	tl := sess.Timeline()
	if tl != nil && !refresh && (interval == "" || tl.Interval == interval) {
		return tl, nil
	}
	if interval == "" {
		if tl != nil {
			interval = tl.Interval
		} else {
			interval = s.config.Interval()
		}
	}
	return sess.Rebuild(ctx, interval)
}

// Tool handlers

func (s *Server) handleBuildTimeline(ctx context.Context, req *mcp.CallToolRequest, input BuildTimelineInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.RepoInput)
	interval, err := s.interval(input.Interval)
	if err != nil {
		return toolError(err.Error())
	}

	sess, err := s.session(input.Path)
	if err != nil {
		return toolError(err.Error())
	}
	tl, err := sess.Rebuild(ctx, interval)
	if err != nil {
		return buildError(err)
	}

	report := analyzer.NewReport(tl)
	report.IncludeTrees = input.IncludeTrees
	return toolResult(report.RenderData(), format)
}

type dateRangeData struct {
	Empty    bool       `json:"empty" toon:"empty"`
	Start    *time.Time `json:"start,omitempty" toon:"start,omitempty"`
	End      *time.Time `json:"end,omitempty" toon:"end,omitempty"`
	Days     int        `json:"days" toon:"days"`
	Duration string     `json:"duration,omitempty" toon:"duration,omitempty"`
}

func (s *Server) handleDateRange(ctx context.Context, req *mcp.CallToolRequest, input MetadataInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.RepoInput)
	sess, err := s.session(input.Path)
	if err != nil {
		return toolError(err.Error())
	}
	if _, err := s.ensureBuilt(ctx, sess, input.Refresh, ""); err != nil {
		return buildError(err)
	}

	r := sess.DateRange()
	if r == nil {
		return toolResult(dateRangeData{Empty: true}, format)
	}
	return toolResult(dateRangeData{
		Start:    &r.Start,
		End:      &r.End,
		Days:     int(r.Duration().Hours() / 24),
		Duration: humanize.RelTime(r.Start, r.End, "", ""),
	}, format)
}

type contributorsData struct {
	Count        int      `json:"count" toon:"count"`
	Contributors []string `json:"contributors" toon:"contributors"`
}

func (s *Server) handleContributors(ctx context.Context, req *mcp.CallToolRequest, input MetadataInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.RepoInput)
	sess, err := s.session(input.Path)
	if err != nil {
		return toolError(err.Error())
	}
	if _, err := s.ensureBuilt(ctx, sess, input.Refresh, ""); err != nil {
		return buildError(err)
	}

	names := sess.Contributors()
	return toolResult(contributorsData{Count: len(names), Contributors: names}, format)
}

type nodesData struct {
	Frame int           `json:"frame" toon:"frame"`
	Label string        `json:"label" toon:"label"`
	Nodes []models.Node `json:"nodes" toon:"nodes"`
}

func (s *Server) handleTreeToNodes(ctx context.Context, req *mcp.CallToolRequest, input TreeToNodesInput) (*mcp.CallToolResult, any, error) {
	format := getFormat(input.RepoInput)
	var interval models.Interval
	if input.Interval != "" {
		iv, err := models.ParseInterval(input.Interval)
		if err != nil {
			return toolError(err.Error())
		}
		interval = iv
	}

	sess, err := s.session(input.Path)
	if err != nil {
		return toolError(err.Error())
	}
	tl, err := s.ensureBuilt(ctx, sess, false, interval)
	if err != nil {
		return buildError(err)
	}
	if tl.Empty() {
		return toolError("repository has no commits")
	}

	index := input.Frame
	if index < 0 {
		index += len(tl.Frames)
	}
	if index < 0 || index >= len(tl.Frames) {
		return toolError(fmt.Sprintf("frame %d out of range (timeline has %d frames)", input.Frame, len(tl.Frames)))
	}
	frame := tl.Frames[index]
	return toolResult(nodesData{
		Frame: index,
		Label: frame.Label,
		Nodes: analyzer.TreeToNodes(frame.Tree),
	}, format)
}
