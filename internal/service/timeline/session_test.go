package timeline

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/panbanda/timelapse/internal/testutil"
	analyzer "github.com/panbanda/timelapse/pkg/analyzer/timeline"
	"github.com/panbanda/timelapse/pkg/config"
	"github.com/panbanda/timelapse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// readerFunc adapts a function to HistoryReader.
type readerFunc func(ctx context.Context, repoPath string) ([]models.Commit, error)

func (f readerFunc) Log(ctx context.Context, repoPath string) ([]models.Commit, error) {
	return f(ctx, repoPath)
}

func staticReader(commits []models.Commit) HistoryReader {
	return readerFunc(func(context.Context, string) ([]models.Commit, error) {
		return commits, nil
	})
}

func day(d int) time.Time {
	return time.Date(2024, 1, d, 12, 0, 0, 0, time.UTC)
}

func sampleLog() []models.Commit {
	return []models.Commit{
		{Hash: "c1", Author: "alice", Timestamp: day(1), Changes: []models.FileChange{
			{Path: "a.txt", Kind: models.ChangeAdded, LinesAdded: 50},
		}},
		{Hash: "c2", Author: "bob", Timestamp: day(2), Changes: []models.FileChange{
			{Path: "a.txt", Kind: models.ChangeModified, LinesAdded: 30},
		}},
		{Hash: "c3", Author: "alice", Timestamp: day(3), Changes: []models.FileChange{
			{Path: "a.txt", Kind: models.ChangeDeleted},
		}},
	}
}

func testConfig() *config.Config {
	cfg := config.DefaultConfig()
	cfg.Cache.Enabled = false
	cfg.Playback.FrameDelayMS = 10
	return cfg
}

func newSession(t *testing.T, r HistoryReader, opts ...Option) *Session {
	t.Helper()
	opts = append([]Option{WithConfig(testConfig()), WithReader(r)}, opts...)
	s, err := New("/repo", opts...)
	require.NoError(t, err)
	t.Cleanup(s.Close)
	return s
}

func TestSession_Rebuild(t *testing.T) {
	s := newSession(t, staticReader(sampleLog()))
	assert.Nil(t, s.Timeline())

	tl, err := s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)
	require.Len(t, tl.Frames, 3)
	assert.Equal(t, models.IntervalDay, tl.Interval)
	assert.False(t, tl.GeneratedAt.IsZero())
	assert.Same(t, tl, s.Timeline())

	assert.Equal(t, 3, s.Player().Len())
	assert.Equal(t, 0, s.Player().Cursor())
}

func TestSession_BuildTimeline(t *testing.T) {
	s := newSession(t, staticReader(sampleLog()))

	frames, err := s.BuildTimeline(context.Background(), models.IntervalWeek)
	require.NoError(t, err)
	require.Len(t, frames, 1)
	assert.Len(t, frames[0].Commits, 3)
	assert.Equal(t, []string{"a.txt"}, frames[0].DeletedFiles)
}

func TestSession_Metadata(t *testing.T) {
	s := newSession(t, staticReader(sampleLog()))
	assert.Nil(t, s.DateRange(), "no range before the first build")
	assert.Empty(t, s.Contributors())

	_, err := s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)

	r := s.DateRange()
	require.NotNil(t, r)
	assert.Equal(t, day(1), r.Start)
	assert.Equal(t, day(3), r.End)
	assert.Equal(t, []string{"alice", "bob"}, s.Contributors())
}

func TestSession_TreeToNodes(t *testing.T) {
	s := newSession(t, staticReader(sampleLog()))
	_, err := s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)

	nodes, err := s.TreeToNodes(1)
	require.NoError(t, err)
	require.Len(t, nodes, 1)
	assert.Equal(t, "a.txt", nodes[0].ID)
	assert.Equal(t, 80, nodes[0].LineCount)
	assert.Equal(t, models.RootParentID, nodes[0].ParentID)

	nodes, err = s.TreeToNodes(2)
	require.NoError(t, err)
	assert.Empty(t, nodes)

	for _, i := range []int{-1, 3} {
		_, err := s.TreeToNodes(i)
		assert.ErrorIs(t, err, ErrFrameOutOfRange)
	}

	assert.Len(t, s.CurrentNodes(), 1)
	s.Player().Seek(2)
	assert.Empty(t, s.CurrentNodes())
}

func TestSession_EmptyHistory(t *testing.T) {
	s := newSession(t, staticReader(nil))

	tl, err := s.Rebuild(context.Background(), models.IntervalWeek)
	require.NoError(t, err)
	assert.Empty(t, tl.Frames)
	assert.Nil(t, s.DateRange())
	assert.Empty(t, s.Contributors())
	assert.False(t, s.Player().Play())

	_, err = s.TreeToNodes(0)
	assert.ErrorIs(t, err, ErrFrameOutOfRange)
	assert.Empty(t, s.CurrentNodes())
}

func TestSession_RepositoryErrorKeepsState(t *testing.T) {
	fail := errors.New("boom")
	var calls atomic.Int32
	r := readerFunc(func(context.Context, string) ([]models.Commit, error) {
		if calls.Add(1) == 1 {
			return sampleLog(), nil
		}
		return nil, fail
	})
	s := newSession(t, r)

	first, err := s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)

	tl, err := s.Rebuild(context.Background(), models.IntervalWeek)
	assert.ErrorIs(t, err, fail)
	assert.Nil(t, tl)
	assert.Same(t, first, s.Timeline())
	assert.Equal(t, 3, s.Player().Len())
}

func TestSession_Supersession(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	var calls atomic.Int32

	r := readerFunc(func(ctx context.Context, _ string) ([]models.Commit, error) {
		if calls.Add(1) == 1 {
			close(started)
			<-release
			return sampleLog()[:1], nil
		}
		return sampleLog(), nil
	})
	s := newSession(t, r)

	type result struct {
		tl  *models.Timeline
		err error
	}
	stale := make(chan result, 1)
	go func() {
		tl, err := s.Rebuild(context.Background(), models.IntervalDay)
		stale <- result{tl, err}
	}()
	<-started

	current, err := s.Rebuild(context.Background(), models.IntervalWeek)
	require.NoError(t, err)
	require.Len(t, current.Frames, 1)

	close(release)
	res := <-stale
	assert.ErrorIs(t, res.err, ErrSuperseded)
	assert.Nil(t, res.tl)

	// The newer result stays adopted.
	assert.Same(t, current, s.Timeline())
	assert.Equal(t, models.IntervalWeek, s.Timeline().Interval)
	assert.Equal(t, 1, s.Player().Len())
}

func TestSession_RebuildStopsPlaybackAndRewinds(t *testing.T) {
	s := newSession(t, staticReader(sampleLog()))
	s.Player().SetSpeed(0.001)

	_, err := s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)
	s.Player().Seek(1)
	require.True(t, s.Player().Play())

	_, err = s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)
	assert.False(t, s.Player().Playing())
	assert.Equal(t, 0, s.Player().Cursor())
}

func TestSession_Close(t *testing.T) {
	s := newSession(t, staticReader(sampleLog()))
	s.Close()
	s.Close()

	_, err := s.Rebuild(context.Background(), models.IntervalDay)
	assert.ErrorIs(t, err, ErrClosed)
}

func TestSession_CloseDuringRebuild(t *testing.T) {
	started := make(chan struct{})
	release := make(chan struct{})
	r := readerFunc(func(context.Context, string) ([]models.Commit, error) {
		close(started)
		<-release
		return sampleLog(), nil
	})
	s := newSession(t, r)

	done := make(chan error, 1)
	go func() {
		_, err := s.Rebuild(context.Background(), models.IntervalDay)
		done <- err
	}()
	<-started

	s.Close()
	close(release)

	err := <-done
	assert.ErrorIs(t, err, ErrClosed)
	assert.NotErrorIs(t, err, ErrSuperseded)
	assert.Nil(t, s.Timeline())
}

func TestSession_OnFrame(t *testing.T) {
	got := make(chan string, 8)
	s := newSession(t, staticReader(sampleLog()), WithOnFrame(func(_ int, f models.TimelineFrame) {
		got <- f.Label
	}))
	_, err := s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)
	require.True(t, s.Player().Play())

	select {
	case label := <-got:
		assert.Equal(t, "2024-01-02", label)
	case <-time.After(time.Second):
		t.Fatal("no frame delivered")
	}
}

func TestSession_PlayerFromConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Playback.FrameDelayMS = 400
	cfg.Playback.Speed = 2
	s, err := New("/repo", WithConfig(cfg), WithReader(staticReader(nil)))
	require.NoError(t, err)
	defer s.Close()

	assert.Equal(t, 200*time.Millisecond, s.Player().Delay())
	assert.Equal(t, "/repo", s.RepoPath())
}

func TestSession_GitRepository(t *testing.T) {
	repo := testutil.InitRepo(t)
	repo.Commit(t, "add", testutil.Change{
		Author: "alice",
		When:   day(1),
		Files:  map[string]*string{"src/a.go": testutil.Content(testutil.Lines(10))},
	})
	repo.Commit(t, "more", testutil.Change{
		Author: "bob",
		When:   day(9),
		Files:  map[string]*string{"README.md": testutil.Content(testutil.Lines(3))},
	})

	cfg := testConfig()
	cfg.Timeline.NativeGit = false
	s, err := New(repo.Path, WithConfig(cfg))
	require.NoError(t, err)
	defer s.Close()

	tl, err := s.Rebuild(context.Background(), models.IntervalWeek)
	require.NoError(t, err)
	require.Len(t, tl.Frames, 2)
	assert.Equal(t, 13, tl.Frames[1].Stats.TotalLines)
	assert.Equal(t, []string{"alice", "bob"}, s.Contributors())

	nodes, err := s.TreeToNodes(1)
	require.NoError(t, err)
	ids := make([]string, len(nodes))
	for i, n := range nodes {
		ids[i] = n.ID
	}
	assert.Equal(t, []string{"src", "src/a.go", "README.md"}, ids)
}

func TestSession_NotARepository(t *testing.T) {
	cfg := testConfig()
	cfg.Timeline.NativeGit = false
	s, err := New(t.TempDir(), WithConfig(cfg))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Rebuild(context.Background(), models.IntervalDay)
	var re *analyzer.RepositoryError
	assert.ErrorAs(t, err, &re)
}

func TestSession_CacheDirRelativeToRepo(t *testing.T) {
	repo := testutil.InitRepo(t)
	repo.Commit(t, "add", testutil.Change{
		When:  day(1),
		Files: map[string]*string{"a.txt": testutil.Content("x\n")},
	})

	cfg := config.DefaultConfig()
	cfg.Timeline.NativeGit = false
	cfg.Cache.Dir = ".cache"
	s, err := New(repo.Path, WithConfig(cfg))
	require.NoError(t, err)
	defer s.Close()

	_, err = s.Rebuild(context.Background(), models.IntervalDay)
	require.NoError(t, err)
	assert.DirExists(t, repo.Path+"/.cache")
}
