package progress

import (
	"bytes"
	"errors"
	"strings"
	"sync"
	"testing"
)

func TestNilTrackerIsNoop(t *testing.T) {
	var tracker *Tracker
	tracker.Tick()
	tracker.Set(3)
	tracker.Describe("ignored")
	tracker.FinishSuccess()
	tracker.FinishError(errors.New("ignored"))
}

func TestNewBar(t *testing.T) {
	tests := []struct {
		name  string
		total int
	}{
		{name: "single frame", total: 1},
		{name: "many frames", total: 500},
		{name: "zero frames", total: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tracker := NewBar(&buf, "frames", tt.total)
			if tracker == nil {
				t.Fatal("NewBar() returned nil")
			}
			tracker.Set(tt.total)
			tracker.FinishSuccess()
		})
	}
}

func TestSpinnerConcurrentTicks(t *testing.T) {
	var buf bytes.Buffer
	tracker := newSpinner(&buf, "Reading history")

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 50; j++ {
				tracker.Tick()
			}
		}()
	}
	wg.Wait()
	tracker.FinishSuccess()
}

func TestFinishError(t *testing.T) {
	var buf bytes.Buffer
	tracker := newSpinner(&buf, "Reading history")
	tracker.FinishError(errors.New("boom"))

	if !strings.Contains(buf.String(), "Reading history error: boom") {
		t.Errorf("FinishError() output = %q", buf.String())
	}
}
