package timeline

import (
	"math"
	"sync"
	"time"

	"github.com/panbanda/timelapse/pkg/models"
)

const (
	// DefaultFrameDelay is the delay between frames at speed 1.
	DefaultFrameDelay = 500 * time.Millisecond

	// MaxSpeed bounds SetSpeed.
	MaxSpeed = 64.0

	minFrameDelay = time.Millisecond
)

// FrameFunc receives the cursor and frame each time playback advances.
type FrameFunc func(index int, frame models.TimelineFrame)

// PlayerConfig configures a Player.
type PlayerConfig struct {
	Delay   time.Duration
	Speed   float64
	Loop    bool
	OnFrame FrameFunc
	// OnFinish runs when playback reaches the last frame without looping.
	OnFinish func()
}

// Player advances a cursor over an immutable frame array on a timer.
//
// Every method is safe for concurrent use and safe on an empty frame array.
// Callbacks run without the player lock held, so they may call back into
// the player.
type Player struct {
	mu     sync.Mutex
	frames []models.TimelineFrame
	cursor int

	delay time.Duration
	speed float64
	loop  bool

	playing bool
	closed  bool
	timer   *time.Timer
	// gen invalidates timer callbacks that fired after a stop.
	gen uint64

	onFrame  FrameFunc
	onFinish func()
}

// NewPlayer creates a stopped player with no frames.
func NewPlayer(cfg PlayerConfig) *Player {
	p := &Player{
		delay:    cfg.Delay,
		speed:    1,
		loop:     cfg.Loop,
		onFrame:  cfg.OnFrame,
		onFinish: cfg.OnFinish,
	}
	if p.delay <= 0 {
		p.delay = DefaultFrameDelay
	}
	if validSpeed(cfg.Speed) {
		p.speed = cfg.Speed
	}
	return p
}

// Load stops playback and replaces the frame array. The cursor resets to
// the first frame.
func (p *Player) Load(frames []models.TimelineFrame) {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haltLocked()
	p.frames = frames
	p.cursor = 0
}

// Play starts periodic playback from the current cursor. Playing from the
// last frame restarts at the first. Returns false when there is nothing to
// play or playback is already running.
func (p *Player) Play() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.closed || p.playing || len(p.frames) == 0 {
		return false
	}
	if p.cursor >= len(p.frames)-1 {
		if len(p.frames) == 1 {
			return false
		}
		p.cursor = 0
	}
	p.playing = true
	p.scheduleLocked()
	return true
}

// Pause stops playback and keeps the cursor.
func (p *Player) Pause() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haltLocked()
}

// Stop stops playback and rewinds to the first frame. Calling Stop on a
// stopped player is a no-op.
func (p *Player) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haltLocked()
	p.cursor = 0
}

// Close stops playback for good. Play is a no-op afterwards.
func (p *Player) Close() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.haltLocked()
	p.closed = true
}

// Seek moves the cursor to i, clamped to the frame array.
func (p *Player) Seek(i int) int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return 0
	}
	p.cursor = max(0, min(i, len(p.frames)-1))
	return p.cursor
}

// Next steps one frame forward, stopping at the last frame.
func (p *Player) Next() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursor < len(p.frames)-1 {
		p.cursor++
	}
	return p.cursor
}

// Prev steps one frame back, stopping at the first frame.
func (p *Player) Prev() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cursor > 0 {
		p.cursor--
	}
	return p.cursor
}

// SetSpeed changes the playback multiplier. Non-positive and non-finite
// values are ignored; values above MaxSpeed are clamped. A running timer is
// rescheduled with the new delay.
func (p *Player) SetSpeed(speed float64) {
	if !validSpeed(speed) {
		return
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.speed = min(speed, MaxSpeed)
	if p.playing {
		p.cancelLocked()
		p.scheduleLocked()
	}
}

// SetLoop controls whether playback wraps to the first frame.
func (p *Player) SetLoop(loop bool) {
	p.mu.Lock()
	p.loop = loop
	p.mu.Unlock()
}

// Speed returns the playback multiplier.
func (p *Player) Speed() float64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.speed
}

// Delay returns the effective delay between frames.
func (p *Player) Delay() time.Duration {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.frameDelay()
}

// Cursor returns the current frame index.
func (p *Player) Cursor() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cursor
}

// Frame returns the frame under the cursor.
func (p *Player) Frame() (models.TimelineFrame, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if len(p.frames) == 0 {
		return models.TimelineFrame{}, false
	}
	return p.frames[p.cursor], true
}

// Len returns the number of loaded frames.
func (p *Player) Len() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.frames)
}

// Playing reports whether the timer is running.
func (p *Player) Playing() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.playing
}

func (p *Player) frameDelay() time.Duration {
	d := time.Duration(float64(p.delay) / p.speed)
	return max(d, minFrameDelay)
}

func (p *Player) scheduleLocked() {
	gen := p.gen
	p.timer = time.AfterFunc(p.frameDelay(), func() { p.tick(gen) })
}

func (p *Player) cancelLocked() {
	p.gen++
	if p.timer != nil {
		p.timer.Stop()
		p.timer = nil
	}
}

func (p *Player) haltLocked() {
	p.cancelLocked()
	p.playing = false
}

func (p *Player) tick(gen uint64) {
	p.mu.Lock()
	if gen != p.gen || !p.playing {
		p.mu.Unlock()
		return
	}

	last := len(p.frames) - 1
	switch {
	case p.cursor < last:
		p.cursor++
	case p.loop:
		p.cursor = 0
	default:
		p.haltLocked()
		onFinish := p.onFinish
		p.mu.Unlock()
		if onFinish != nil {
			onFinish()
		}
		return
	}

	index, frame := p.cursor, p.frames[p.cursor]
	done := index == last && !p.loop
	if done {
		p.haltLocked()
	}
	onFrame, onFinish := p.onFrame, p.onFinish
	p.mu.Unlock()

	if onFrame != nil {
		onFrame(index, frame)
	}
	if done {
		if onFinish != nil {
			onFinish()
		}
		return
	}

	// Ticks never overlap: the next one is armed after the callback.
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen == p.gen && p.playing {
		p.scheduleLocked()
	}
}

func validSpeed(s float64) bool {
	return s > 0 && !math.IsInf(s, 0) && !math.IsNaN(s)
}
