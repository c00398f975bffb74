package sched

import (
	"sync/atomic"
	"time"
)

// Clock supplies the scheduler's monotonic microsecond tick source. All
// deadlines are 32-bit wrap-aware counters: ticksDiff, not plain
// subtraction, must be used for ordering comparisons.
type Clock interface {
	// NowMicros returns the current tick count, in microseconds, as a
	// wrapping 32-bit counter.
	NowMicros() uint32
}

// realClock implements Clock against the process's monotonic clock.
type realClock struct {
	start time.Time
}

// NewRealClock returns a Clock backed by time.Now, with its epoch fixed at
// construction time so NowMicros wraps the same way the reference
// implementation's utime.ticks_us() does.
func NewRealClock() Clock {
	return &realClock{start: time.Now()}
}

func (c *realClock) NowMicros() uint32 {
	return uint32(time.Since(c.start).Microseconds())
}

// manualClock is a test/emulator clock advanced explicitly, grounded on the
// timeNow package-var override pattern used in catrate/limiter.go for
// deterministic rate-limiter tests.
type manualClock struct {
	now atomic.Uint32
}

// NewManualClock returns a Clock whose value is advanced only by calls to
// Advance, for deterministic tests of wrap-around and ordering behavior.
func NewManualClock(start uint32) *manualClock {
	c := &manualClock{}
	c.now.Store(start)
	return c
}

func (c *manualClock) NowMicros() uint32 { return c.now.Load() }

// Advance moves the clock forward by delta microseconds (wrapping).
func (c *manualClock) Advance(delta uint32) uint32 {
	return c.now.Add(delta)
}

// Set pins the clock to an exact value, for wrap-boundary tests.
func (c *manualClock) Set(v uint32) { c.now.Store(v) }

// ticksDiff returns the signed distance from b to a, wrap-aware: the result
// of subtracting two 32-bit counters, reinterpreted as signed. This mirrors
// utime.ticks_diff from original_source/src/trezor/loop.py exactly, and is
// the only correct way to compare two deadlines that may have wrapped.
func ticksDiff(a, b uint32) int32 {
	return int32(a - b)
}

// ticksAdd adds a microsecond delay to a deadline, wrapping as uint32
// arithmetic naturally does (mirrors utime.ticks_add).
func ticksAdd(base uint32, delay uint32) uint32 {
	return base + delay
}
