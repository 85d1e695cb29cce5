package mainloop

import (
	"sync"
	"time"
)

// DefaultDebounceDelay is the settle window for UI refreshers.
const DefaultDebounceDelay = 80 * time.Millisecond

// Timer is the subset of time.Timer the debouncer needs. Tests substitute a
// manual implementation to fire deadlines deterministically.
type Timer interface {
	Stop() bool
}

// TimerFactory schedules fn after d and returns a handle to cancel it.
type TimerFactory func(d time.Duration, fn func()) Timer

func realTimerFactory(d time.Duration, fn func()) Timer {
	return time.AfterFunc(d, fn)
}

// Debouncer runs the latest callback per key once triggers stop arriving for
// the delay window (trailing edge). Re-triggering a key before its deadline
// replaces the callback and restarts the window.
type Debouncer struct {
	mu        sync.Mutex
	delay     time.Duration
	newTimer  TimerFactory
	pending   map[string]*debounceEntry
	destroyed bool
}

type debounceEntry struct {
	fn    func()
	timer Timer
	gen   uint64
}

// NewDebouncer creates a debouncer with the given settle delay.
// A non-positive delay falls back to DefaultDebounceDelay.
func NewDebouncer(delay time.Duration) *Debouncer {
	return NewDebouncerWithTimer(delay, realTimerFactory)
}

// NewDebouncerWithTimer is like NewDebouncer with an injectable timer source.
func NewDebouncerWithTimer(delay time.Duration, newTimer TimerFactory) *Debouncer {
	if newTimer == nil {
		panic("mainloop.NewDebouncerWithTimer: timer factory cannot be nil")
	}
	if delay <= 0 {
		delay = DefaultDebounceDelay
	}
	return &Debouncer{
		delay:    delay,
		newTimer: newTimer,
		pending:  make(map[string]*debounceEntry),
	}
}

// Trigger schedules fn to run after the settle delay, replacing any pending
// callback for the same key and restarting its window.
func (d *Debouncer) Trigger(key string, fn func()) {
	if fn == nil || key == "" {
		return
	}

	d.mu.Lock()
	if d.destroyed {
		d.mu.Unlock()
		return
	}

	if entry, ok := d.pending[key]; ok {
		entry.timer.Stop()
	}

	entry := &debounceEntry{fn: fn}
	if prev := d.pending[key]; prev != nil {
		entry.gen = prev.gen + 1
	}
	d.pending[key] = entry
	gen := entry.gen

	entry.timer = d.newTimer(d.delay, func() {
		d.fire(key, gen)
	})
	d.mu.Unlock()
}

// fire runs the pending callback for key if it is still the scheduled one.
// A stale generation means the key was re-triggered, cancelled, or flushed
// after this deadline was armed.
func (d *Debouncer) fire(key string, gen uint64) {
	d.mu.Lock()
	entry, ok := d.pending[key]
	if !ok || entry.gen != gen || d.destroyed {
		d.mu.Unlock()
		return
	}
	delete(d.pending, key)
	fn := entry.fn
	d.mu.Unlock()

	fn()
}

// Cancel drops the pending callback for key without running it.
func (d *Debouncer) Cancel(key string) {
	d.mu.Lock()
	if entry, ok := d.pending[key]; ok {
		entry.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()
}

// Flush runs the pending callback for key immediately, if any.
func (d *Debouncer) Flush(key string) {
	d.mu.Lock()
	entry, ok := d.pending[key]
	if ok {
		entry.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()

	if ok {
		entry.fn()
	}
}

// FlushAll runs every pending callback immediately.
func (d *Debouncer) FlushAll() {
	d.mu.Lock()
	entries := make([]*debounceEntry, 0, len(d.pending))
	for key, entry := range d.pending {
		entry.timer.Stop()
		entries = append(entries, entry)
		delete(d.pending, key)
	}
	d.mu.Unlock()

	for _, entry := range entries {
		entry.fn()
	}
}

// Destroy cancels all pending work and rejects further triggers.
func (d *Debouncer) Destroy() {
	d.mu.Lock()
	d.destroyed = true
	for key, entry := range d.pending {
		entry.timer.Stop()
		delete(d.pending, key)
	}
	d.mu.Unlock()
}
