package sched

import (
	"fmt"
	"runtime"
	"strconv"
	"sync/atomic"
)

// goroutineGuard asserts that all scheduler mutation happens from a single
// goroutine, the same safety property kernels like gVisor enforce per-task
// with assertTaskGoroutine — here there is only one logical executor, so one
// guard suffices for the whole Scheduler.
type goroutineGuard struct {
	id atomic.Int64 // 0 = unbound
}

func currentGoroutineID() int64 {
	var buf [64]byte
	n := runtime.Stack(buf[:], false)
	// "goroutine 123 [running]:" — field[1] is the id.
	fields := splitFields(buf[:n])
	if len(fields) < 2 {
		return -1
	}
	id, err := strconv.ParseInt(string(fields[1]), 10, 64)
	if err != nil {
		return -1
	}
	return id
}

func splitFields(b []byte) [][]byte {
	var fields [][]byte
	start := -1
	for i, c := range b {
		isSpace := c == ' ' || c == '\t' || c == '\n'
		if !isSpace && start < 0 {
			start = i
		} else if isSpace && start >= 0 {
			fields = append(fields, b[start:i])
			start = -1
		}
	}
	if start >= 0 {
		fields = append(fields, b[start:])
	}
	return fields
}

// bind records the calling goroutine as the sole owner, if not already
// bound, and panics if a different goroutine attempts to bind or use the
// scheduler afterwards.
func (g *goroutineGuard) bind() {
	id := currentGoroutineID()
	if !g.id.CompareAndSwap(0, id) {
		if bound := g.id.Load(); bound != id {
			panic(fmt.Sprintf("sched: used from goroutine %d, bound to %d", id, bound))
		}
	}
}

func (g *goroutineGuard) assert() {
	if bound := g.id.Load(); bound != 0 {
		if id := currentGoroutineID(); id != bound {
			panic(fmt.Sprintf("sched: used from goroutine %d, bound to %d", id, bound))
		}
	}
}
