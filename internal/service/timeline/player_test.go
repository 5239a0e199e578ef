package timeline

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/panbanda/timelapse/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func framesN(n int) []models.TimelineFrame {
	frames := make([]models.TimelineFrame, n)
	for i := range frames {
		frames[i] = models.TimelineFrame{Label: fmt.Sprintf("f%d", i)}
	}
	return frames
}

// recorder collects playback callbacks.
type recorder struct {
	mu       sync.Mutex
	indexes  []int
	finished int
}

func (r *recorder) onFrame(i int, _ models.TimelineFrame) {
	r.mu.Lock()
	r.indexes = append(r.indexes, i)
	r.mu.Unlock()
}

func (r *recorder) onFinish() {
	r.mu.Lock()
	r.finished++
	r.mu.Unlock()
}

func (r *recorder) snapshot() ([]int, int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]int(nil), r.indexes...), r.finished
}

func newRecordedPlayer(delay time.Duration, loop bool) (*Player, *recorder) {
	rec := &recorder{}
	p := NewPlayer(PlayerConfig{
		Delay:    delay,
		Loop:     loop,
		OnFrame:  rec.onFrame,
		OnFinish: rec.onFinish,
	})
	return p, rec
}

func TestNewPlayer_Defaults(t *testing.T) {
	p := NewPlayer(PlayerConfig{})
	assert.Equal(t, DefaultFrameDelay, p.Delay())
	assert.Equal(t, 1.0, p.Speed())
	assert.False(t, p.Playing())
	assert.Equal(t, 0, p.Len())

	p = NewPlayer(PlayerConfig{Delay: time.Second, Speed: 4})
	assert.Equal(t, 250*time.Millisecond, p.Delay())
}

func TestPlayer_EmptyIsNoOp(t *testing.T) {
	p := NewPlayer(PlayerConfig{Delay: time.Millisecond})

	assert.False(t, p.Play())
	assert.Equal(t, 0, p.Next())
	assert.Equal(t, 0, p.Prev())
	assert.Equal(t, 0, p.Seek(5))
	p.SetSpeed(2)
	p.Pause()
	p.Stop()

	_, ok := p.Frame()
	assert.False(t, ok)
	assert.Equal(t, 0, p.Cursor())
}

func TestPlayer_Stepping(t *testing.T) {
	p := NewPlayer(PlayerConfig{})
	p.Load(framesN(3))

	assert.Equal(t, 0, p.Prev(), "prev clamps at first frame")
	assert.Equal(t, 1, p.Next())
	assert.Equal(t, 2, p.Next())
	assert.Equal(t, 2, p.Next(), "next clamps at last frame")
	assert.Equal(t, 1, p.Prev())

	tests := []struct {
		seek int
		want int
	}{
		{0, 0},
		{2, 2},
		{-4, 0},
		{99, 2},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, p.Seek(tt.seek), "Seek(%d)", tt.seek)
	}

	p.Seek(1)
	f, ok := p.Frame()
	require.True(t, ok)
	assert.Equal(t, "f1", f.Label)
}

func TestPlayer_SetSpeed(t *testing.T) {
	p := NewPlayer(PlayerConfig{Delay: 800 * time.Millisecond})

	tests := []struct {
		name  string
		speed float64
		want  float64
	}{
		{"double", 2, 2},
		{"zero ignored", 0, 2},
		{"negative ignored", -1, 2},
		{"clamped", 1000, MaxSpeed},
		{"half", 0.5, 0.5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p.SetSpeed(tt.speed)
			assert.Equal(t, tt.want, p.Speed())
		})
	}
	assert.Equal(t, 1600*time.Millisecond, p.Delay())
}

func TestPlayer_PlaysToEnd(t *testing.T) {
	p, rec := newRecordedPlayer(2*time.Millisecond, false)
	p.Load(framesN(4))

	require.True(t, p.Play())
	assert.False(t, p.Play(), "second Play while running")

	require.Eventually(t, func() bool {
		_, finished := rec.snapshot()
		return finished == 1
	}, time.Second, time.Millisecond)

	indexes, _ := rec.snapshot()
	assert.Equal(t, []int{1, 2, 3}, indexes)
	assert.False(t, p.Playing())
	assert.Equal(t, 3, p.Cursor())
}

func TestPlayer_PlayFromEndRestarts(t *testing.T) {
	p, rec := newRecordedPlayer(2*time.Millisecond, false)
	p.Load(framesN(2))
	p.Seek(1)

	require.True(t, p.Play())
	require.Eventually(t, func() bool {
		_, finished := rec.snapshot()
		return finished == 1
	}, time.Second, time.Millisecond)

	indexes, _ := rec.snapshot()
	assert.Equal(t, []int{1}, indexes)
}

func TestPlayer_SingleFrameDoesNotPlay(t *testing.T) {
	p := NewPlayer(PlayerConfig{Delay: time.Millisecond})
	p.Load(framesN(1))
	assert.False(t, p.Play())
}

func TestPlayer_Loop(t *testing.T) {
	p, rec := newRecordedPlayer(time.Millisecond, true)
	p.Load(framesN(3))
	require.True(t, p.Play())

	require.Eventually(t, func() bool {
		indexes, _ := rec.snapshot()
		return len(indexes) >= 5
	}, time.Second, time.Millisecond)
	p.Stop()

	indexes, finished := rec.snapshot()
	assert.Equal(t, []int{1, 2, 0, 1, 2}, indexes[:5])
	assert.Zero(t, finished)
}

func TestPlayer_StopCancelsTimer(t *testing.T) {
	p, rec := newRecordedPlayer(20*time.Millisecond, false)
	p.Load(framesN(5))
	require.True(t, p.Play())

	p.Stop()
	p.Stop()
	assert.False(t, p.Playing())
	assert.Equal(t, 0, p.Cursor())

	time.Sleep(60 * time.Millisecond)
	indexes, finished := rec.snapshot()
	assert.Empty(t, indexes)
	assert.Zero(t, finished)
}

func TestPlayer_PauseKeepsCursor(t *testing.T) {
	p := NewPlayer(PlayerConfig{Delay: time.Hour})
	p.Load(framesN(5))
	p.Seek(3)
	p.Play()
	p.Pause()

	assert.False(t, p.Playing())
	assert.Equal(t, 3, p.Cursor())
}

func TestPlayer_LoadResets(t *testing.T) {
	p := NewPlayer(PlayerConfig{Delay: time.Hour})
	p.Load(framesN(5))
	p.Seek(4)
	p.Seek(2)
	require.True(t, p.Play())

	p.Load(framesN(2))
	assert.False(t, p.Playing())
	assert.Equal(t, 0, p.Cursor())
	assert.Equal(t, 2, p.Len())
}

func TestPlayer_Close(t *testing.T) {
	p := NewPlayer(PlayerConfig{Delay: time.Hour})
	p.Load(framesN(3))
	require.True(t, p.Play())

	p.Close()
	p.Close()
	assert.False(t, p.Playing())
	assert.False(t, p.Play())
}

func TestPlayer_CallbackMayUsePlayer(t *testing.T) {
	var p *Player
	done := make(chan int, 1)
	p = NewPlayer(PlayerConfig{
		Delay: time.Millisecond,
		OnFrame: func(i int, _ models.TimelineFrame) {
			p.Pause()
			done <- p.Cursor()
		},
	})
	p.Load(framesN(3))
	require.True(t, p.Play())

	select {
	case cursor := <-done:
		assert.Equal(t, 1, cursor)
	case <-time.After(time.Second):
		t.Fatal("callback not invoked")
	}
	assert.False(t, p.Playing())
}
