package timeline

import "github.com/panbanda/timelapse/pkg/models"

// DateRange returns the timestamps of the first and last commit of the
// log, or nil for an empty log.
func DateRange(commits []models.Commit) *models.DateRange {
	if len(commits) == 0 {
		return nil
	}
	return &models.DateRange{
		Start: commits[0].Timestamp,
		End:   commits[len(commits)-1].Timestamp,
	}
}

// Contributors returns the distinct author identities of the log in order
// of first appearance.
func Contributors(commits []models.Commit) []string {
	seen := make(map[string]struct{})
	out := make([]string, 0)
	for _, c := range commits {
		id := c.Identity()
		if id == "" {
			continue
		}
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}
