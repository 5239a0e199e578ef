package timeline

import (
	"fmt"
	"sort"
	"time"

	"github.com/panbanda/timelapse/pkg/models"
)

// PeriodStart returns the start of the bucket containing t.
// Boundaries are computed in UTC: days start at midnight, weeks on the ISO
// Monday and months on the first.
func PeriodStart(t time.Time, interval models.Interval) time.Time {
	t = t.UTC()
	switch interval {
	case models.IntervalDay:
		return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	case models.IntervalMonth:
		return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
	default:
		weekday := int(t.Weekday())
		if weekday == 0 {
			weekday = 7 // Sunday
		}
		return time.Date(t.Year(), t.Month(), t.Day()-weekday+1, 0, 0, 0, 0, time.UTC)
	}
}

// nextPeriod returns the start of the bucket following the one starting at start.
func nextPeriod(start time.Time, interval models.Interval) time.Time {
	switch interval {
	case models.IntervalDay:
		return start.AddDate(0, 0, 1)
	case models.IntervalMonth:
		return start.AddDate(0, 1, 0)
	default:
		return start.AddDate(0, 0, 7)
	}
}

// Label formats the bucket starting at start.
func Label(start time.Time, interval models.Interval) string {
	switch interval {
	case models.IntervalDay:
		return start.Format("2006-01-02")
	case models.IntervalMonth:
		return start.Format("2006-01")
	default:
		year, week := start.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
}

// Buckets partitions the span of the log into contiguous buckets, from the
// bucket of the earliest commit to the bucket of the latest one. Periods
// without commits still get a bucket. The final bucket ends at the latest
// commit timestamp, inclusive.
func Buckets(commits []models.Commit, interval models.Interval) []models.Bucket {
	if len(commits) == 0 {
		return nil
	}

	first, last := commits[0].Timestamp, commits[0].Timestamp
	for _, c := range commits[1:] {
		if c.Timestamp.Before(first) {
			first = c.Timestamp
		}
		if c.Timestamp.After(last) {
			last = c.Timestamp
		}
	}

	lastStart := PeriodStart(last, interval)
	var buckets []models.Bucket
	for start := PeriodStart(first, interval); !start.After(lastStart); start = nextPeriod(start, interval) {
		b := models.Bucket{
			Label: Label(start, interval),
			Start: start,
			End:   nextPeriod(start, interval),
		}
		if start.Equal(lastStart) {
			b.End = last.UTC()
			b.Last = true
		}
		buckets = append(buckets, b)
	}
	return buckets
}

// BucketIndex returns the index of the bucket containing t, or -1 when t
// falls outside every bucket.
func BucketIndex(buckets []models.Bucket, t time.Time) int {
	i := sort.Search(len(buckets), func(i int) bool {
		return buckets[i].Start.After(t)
	}) - 1
	if i < 0 || !buckets[i].Contains(t) {
		return -1
	}
	return i
}

// groupCommits assigns every commit to its bucket, keeping log order
// within each bucket.
func groupCommits(commits []models.Commit, buckets []models.Bucket) [][]models.Commit {
	groups := make([][]models.Commit, len(buckets))
	for _, c := range commits {
		if i := BucketIndex(buckets, c.Timestamp); i >= 0 {
			groups[i] = append(groups[i], c)
		}
	}
	return groups
}
