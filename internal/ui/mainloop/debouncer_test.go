package mainloop

import (
	"testing"
	"time"
)

// manualTimers collects scheduled deadlines so tests fire them by hand.
type manualTimers struct {
	scheduled []*manualTimer
}

type manualTimer struct {
	fn      func()
	stopped bool
}

func (m *manualTimer) Stop() bool {
	was := !m.stopped
	m.stopped = true
	return was
}

func (m *manualTimers) factory(_ time.Duration, fn func()) Timer {
	timer := &manualTimer{fn: fn}
	m.scheduled = append(m.scheduled, timer)
	return timer
}

// fireAll invokes every armed deadline, including stopped ones: the debouncer
// must ignore stale fires on its own.
func (m *manualTimers) fireAll() {
	pending := m.scheduled
	m.scheduled = nil
	for _, timer := range pending {
		timer.fn()
	}
}

func TestDebouncerRunsLatestCallbackOnce(t *testing.T) {
	timers := &manualTimers{}
	d := NewDebouncerWithTimer(DefaultDebounceDelay, timers.factory)

	runs := 0
	value := 0
	for i := 1; i <= 4; i++ {
		v := i
		d.Trigger("urlbar", func() { runs++; value = v })
	}

	timers.fireAll()

	if runs != 1 {
		t.Fatalf("expected exactly one run, got %d", runs)
	}
	if value != 4 {
		t.Fatalf("expected latest callback to win, got %d", value)
	}
}

func TestDebouncerRetriggerAfterFireRunsAgain(t *testing.T) {
	timers := &manualTimers{}
	d := NewDebouncerWithTimer(DefaultDebounceDelay, timers.factory)

	runs := 0
	d.Trigger("title", func() { runs++ })
	timers.fireAll()
	d.Trigger("title", func() { runs++ })
	timers.fireAll()

	if runs != 2 {
		t.Fatalf("expected two separate runs, got %d", runs)
	}
}

func TestDebouncerCancelDropsPendingWork(t *testing.T) {
	timers := &manualTimers{}
	d := NewDebouncerWithTimer(DefaultDebounceDelay, timers.factory)

	ran := false
	d.Trigger("security-indicator", func() { ran = true })
	d.Cancel("security-indicator")
	timers.fireAll()

	if ran {
		t.Fatalf("expected cancelled callback not to run")
	}
}

func TestDebouncerFlushRunsImmediately(t *testing.T) {
	timers := &manualTimers{}
	d := NewDebouncerWithTimer(DefaultDebounceDelay, timers.factory)

	ran := false
	d.Trigger("nav-buttons", func() { ran = true })
	d.Flush("nav-buttons")

	if !ran {
		t.Fatalf("expected flush to run the callback immediately")
	}

	// The stale deadline must not run it a second time.
	ran = false
	timers.fireAll()
	if ran {
		t.Fatalf("expected stale deadline to be ignored after flush")
	}
}

func TestDebouncerFlushAll(t *testing.T) {
	timers := &manualTimers{}
	d := NewDebouncerWithTimer(DefaultDebounceDelay, timers.factory)

	ranA, ranB := false, false
	d.Trigger("a", func() { ranA = true })
	d.Trigger("b", func() { ranB = true })
	d.FlushAll()

	if !ranA || !ranB {
		t.Fatalf("expected all pending callbacks to run, got a=%v b=%v", ranA, ranB)
	}
}

func TestDebouncerKeysAreIndependent(t *testing.T) {
	timers := &manualTimers{}
	d := NewDebouncerWithTimer(DefaultDebounceDelay, timers.factory)

	ranA, ranB := 0, 0
	d.Trigger("a", func() { ranA++ })
	d.Trigger("b", func() { ranB++ })
	d.Trigger("a", func() { ranA++ })
	timers.fireAll()

	if ranA != 1 || ranB != 1 {
		t.Fatalf("expected one run per key, got a=%d b=%d", ranA, ranB)
	}
}

func TestDebouncerDestroyDropsEverything(t *testing.T) {
	timers := &manualTimers{}
	d := NewDebouncerWithTimer(DefaultDebounceDelay, timers.factory)

	ran := false
	d.Trigger("a", func() { ran = true })
	d.Destroy()
	timers.fireAll()

	if ran {
		t.Fatalf("expected no work after destroy")
	}

	d.Trigger("a", func() { ran = true })
	timers.fireAll()
	if ran {
		t.Fatalf("expected triggers after destroy to be ignored")
	}
}

func TestNewDebouncerDefaultsDelay(t *testing.T) {
	d := NewDebouncer(0)
	if d.delay != DefaultDebounceDelay {
		t.Fatalf("expected default delay %v, got %v", DefaultDebounceDelay, d.delay)
	}
}
