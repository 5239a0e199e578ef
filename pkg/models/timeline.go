package models

import (
	"fmt"
	"strings"
	"time"
)

// ChangeKind is the kind of change a commit made to a single path.
type ChangeKind string

const (
	ChangeAdded    ChangeKind = "added"
	ChangeModified ChangeKind = "modified"
	ChangeDeleted  ChangeKind = "deleted"
)

// Valid reports whether k is one of the known change kinds.
func (k ChangeKind) Valid() bool {
	switch k {
	case ChangeAdded, ChangeModified, ChangeDeleted:
		return true
	}
	return false
}

// FileChange is one path touched by a commit.
type FileChange struct {
	Path         string     `json:"path" toon:"path"`
	Kind         ChangeKind `json:"kind" toon:"kind"`
	LinesAdded   int        `json:"lines_added" toon:"lines_added"`
	LinesRemoved int        `json:"lines_removed" toon:"lines_removed"`
}

// Commit is a single entry of the repository log.
// Commits are immutable once extracted.
type Commit struct {
	Hash      string       `json:"hash" toon:"hash"`
	Author    string       `json:"author" toon:"author"`
	Email     string       `json:"email,omitempty" toon:"email,omitempty"`
	Timestamp time.Time    `json:"timestamp" toon:"timestamp"`
	Message   string       `json:"message,omitempty" toon:"message,omitempty"`
	Changes   []FileChange `json:"changes" toon:"changes"`
}

// Identity returns the contributor identity used for aggregation:
// the trimmed author name, or the email when the name is empty.
func (c Commit) Identity() string {
	if name := strings.TrimSpace(c.Author); name != "" {
		return name
	}
	return strings.TrimSpace(c.Email)
}

// Interval is the bucket granularity of a timeline.
type Interval string

const (
	IntervalDay   Interval = "day"
	IntervalWeek  Interval = "week"
	IntervalMonth Interval = "month"
)

// ParseInterval converts a string to an Interval.
func ParseInterval(s string) (Interval, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "day", "daily", "d":
		return IntervalDay, nil
	case "week", "weekly", "w", "":
		return IntervalWeek, nil
	case "month", "monthly", "m":
		return IntervalMonth, nil
	default:
		return "", fmt.Errorf("unknown interval %q (want day, week or month)", s)
	}
}

// Bucket is one time window of a timeline. Start is inclusive. End is
// exclusive except for the final bucket, whose End is the timestamp of the
// last commit and is inclusive.
type Bucket struct {
	Label string    `json:"label" toon:"label"`
	Start time.Time `json:"start" toon:"start"`
	End   time.Time `json:"end" toon:"end"`
	Last  bool      `json:"-" toon:"-"`
}

// Contains reports whether t falls inside the bucket window.
func (b Bucket) Contains(t time.Time) bool {
	if t.Before(b.Start) {
		return false
	}
	if b.Last {
		return !t.After(b.End)
	}
	return t.Before(b.End)
}

// FileNode is the state of one path in a reconstructed tree.
// Lines and ChangeCount are meaningful for files only.
type FileNode struct {
	Path           string    `json:"path" toon:"path"`
	IsDirectory    bool      `json:"is_directory,omitempty" toon:"is_directory,omitempty"`
	Lines          int       `json:"lines" toon:"lines"`
	LastAuthor     string    `json:"last_author" toon:"last_author"`
	LastModifiedAt time.Time `json:"last_modified_at" toon:"last_modified_at"`
	AddedAt        time.Time `json:"added_at" toon:"added_at"`
	ChangeCount    int       `json:"change_count" toon:"change_count"`
}

// FrameStats summarizes one frame.
type FrameStats struct {
	TotalFiles        int `json:"total_files" toon:"total_files"`
	TotalLines        int `json:"total_lines" toon:"total_lines"`
	TotalCommits      int `json:"total_commits" toon:"total_commits"`
	TotalContributors int `json:"total_contributors" toon:"total_contributors"`
}

// TimelineFrame is a snapshot of the file tree at the end of one bucket.
//
// Tree holds every file present at the bucket end keyed by path. Directories
// are implied by file paths and reconstructed when converting to nodes.
// Commits holds only the commits inside the bucket window.
type TimelineFrame struct {
	Label         string              `json:"label" toon:"label"`
	Start         time.Time           `json:"start" toon:"start"`
	End           time.Time           `json:"end" toon:"end"`
	Tree          map[string]FileNode `json:"tree" toon:"tree"`
	Commits       []Commit            `json:"commits" toon:"commits"`
	Stats         FrameStats          `json:"stats" toon:"stats"`
	NewFiles      []string            `json:"new_files" toon:"new_files"`
	ModifiedFiles []string            `json:"modified_files" toon:"modified_files"`
	DeletedFiles  []string            `json:"deleted_files" toon:"deleted_files"`
	Digest        string              `json:"digest" toon:"digest"`
}

// RootParentID is the parent id of top-level nodes.
const RootParentID = ""

// Node is a flattened tree entry suitable for hierarchical rendering.
type Node struct {
	ID          string    `json:"id" toon:"id"`
	Path        string    `json:"path" toon:"path"`
	ParentID    string    `json:"parent_id" toon:"parent_id"`
	Name        string    `json:"name" toon:"name"`
	IsDirectory bool      `json:"is_directory" toon:"is_directory"`
	Depth       int       `json:"depth" toon:"depth"`
	FileCount   int       `json:"file_count" toon:"file_count"`
	LineCount   int       `json:"line_count" toon:"line_count"`
	LastAuthor  string    `json:"last_author,omitempty" toon:"last_author,omitempty"`
	AddedAt     time.Time `json:"added_at" toon:"added_at"`
	ChangeCount int       `json:"change_count,omitempty" toon:"change_count,omitempty"`
}

// DateRange spans the first and last commit of a log.
type DateRange struct {
	Start time.Time `json:"start" toon:"start"`
	End   time.Time `json:"end" toon:"end"`
}

// Duration returns the span of the range.
func (r DateRange) Duration() time.Duration {
	return r.End.Sub(r.Start)
}

// Diagnostic reports a malformed change that was skipped while replaying
// history. Diagnostics never abort a build.
type Diagnostic struct {
	Commit string `json:"commit" toon:"commit"`
	Path   string `json:"path" toon:"path"`
	Reason string `json:"reason" toon:"reason"`
}

func (d Diagnostic) String() string {
	commit := d.Commit
	if len(commit) > 8 {
		commit = commit[:8]
	}
	return fmt.Sprintf("%s %s: %s", commit, d.Path, d.Reason)
}

// TimelineSummary holds growth statistics over the frame sequence.
type TimelineSummary struct {
	Frames              int     `json:"frames" toon:"frames"`
	ActiveFrames        int     `json:"active_frames" toon:"active_frames"`
	MeanCommitsPerFrame float64 `json:"mean_commits_per_frame" toon:"mean_commits_per_frame"`
	LineGrowthPerFrame  float64 `json:"line_growth_per_frame" toon:"line_growth_per_frame"`
	FileGrowthPerFrame  float64 `json:"file_growth_per_frame" toon:"file_growth_per_frame"`
	RSquared            float64 `json:"r_squared" toon:"r_squared"`
	PeakLines           int     `json:"peak_lines" toon:"peak_lines"`
	PeakLabel           string  `json:"peak_label,omitempty" toon:"peak_label,omitempty"`
}

// Timeline is the complete result of a build.
type Timeline struct {
	RepositoryRoot string          `json:"repository_root,omitempty" toon:"repository_root,omitempty"`
	Interval       Interval        `json:"interval" toon:"interval"`
	GeneratedAt    time.Time       `json:"generated_at" toon:"generated_at"`
	DateRange      *DateRange      `json:"date_range,omitempty" toon:"date_range,omitempty"`
	Contributors   []string        `json:"contributors" toon:"contributors"`
	Frames         []TimelineFrame `json:"frames" toon:"frames"`
	Diagnostics    []Diagnostic    `json:"diagnostics,omitempty" toon:"diagnostics,omitempty"`
	Summary        TimelineSummary `json:"summary" toon:"summary"`
}

// Empty reports whether the timeline has no frames.
func (t *Timeline) Empty() bool {
	return t == nil || len(t.Frames) == 0
}
