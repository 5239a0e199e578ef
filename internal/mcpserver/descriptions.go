package mcpserver

// Tool descriptions with interpretation guidance for LLMs.
// Each description explains what the tool does, when to use it,
// how to interpret results, and what is returned.

func describeBuildTimeline() string {
	return `Replays the git history of a repository into a sequence of file-tree snapshots (frames), one per day, week or month.

USE WHEN:
- Understanding how a codebase grew over time
- Finding the periods when large parts of the tree were added or removed
- Preparing a walkthrough of a project's history
- Comparing activity levels between periods

INTERPRETING RESULTS:
- Every calendar bucket between the first and last commit has a frame, even without commits
- A frame with commits=0 repeats the previous tree and has empty diff lists
- new_files/modified_files/deleted_files are relative to the previous frame
- A file added and deleted inside one frame appears in none of the lists
- Renames show as a delete plus an add
- stats.total_commits and stats.total_contributors are running totals
- summary.line_growth_per_frame is the regression slope of total lines; r_squared near 1 means steady growth
- diagnostics lists changes that could not be applied; they never abort the build

METRICS RETURNED:
- Per frame: label, start, end, commits in the frame, stats, diff lists, digest
- Timeline: interval, date_range, contributors, summary, diagnostics
- Full trees per frame only with include_trees=true`
}

func describeDateRange() string {
	return `Returns the timestamps of the first and last commit of a repository.

USE WHEN:
- Sizing a history before choosing a day, week or month interval
- Reporting the age of a project

INTERPRETING RESULTS:
- empty=true means the repository has no commits; this is not an error
- Answers from the last build_timeline call unless refresh=true
- days is the whole number of days between the two commits

METRICS RETURNED:
- start, end, days, and a human readable duration`
}

func describeContributors() string {
	return `Lists the distinct commit authors of a repository in order of first appearance.

USE WHEN:
- Finding who started a project and who joined later
- Counting contributors before building a timeline

INTERPRETING RESULTS:
- Order is chronological by first commit, not by volume of work
- Identity is the author name; the email is used only when the name is empty
- Answers from the last build_timeline call unless refresh=true

METRICS RETURNED:
- count and the ordered contributors list`
}

func describeTreeToNodes() string {
	return `Flattens the file tree of one timeline frame into an ordered node list with directory aggregates.

USE WHEN:
- Inspecting what the repository looked like at a point in time
- Finding the largest directories of a given period
- Rendering a tree view of a frame

INTERPRETING RESULTS:
- Order is depth first, directories before files, names ascending
- parent_id is empty for top-level entries and otherwise the containing directory path
- Directory file_count and line_count aggregate everything below them
- change_count counts the commits that touched a file up to that frame
- frame=-1 selects the latest frame

METRICS RETURNED:
- frame index and label
- Per node: id, path, parent_id, name, is_directory, depth, file_count, line_count, last_author, added_at, change_count`
}
