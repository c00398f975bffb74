package sched

import (
	"errors"
	"fmt"
)

// Sentinel errors for the four failure kinds in the error handling design.
var (
	// ErrQueueFull is returned by the time queue when pushing onto an
	// already-full queue. Capacity exhaustion has no safe recovery: an
	// unschedulable task means a livelocked system, so callers should treat
	// this as fatal rather than attempt to continue.
	ErrQueueFull = errors.New("sched: time queue is full")

	// ErrTaskClosed is the resume failure delivered to a task's in-flight
	// Await call when Close is invoked on it. It is not a task failure; it
	// is cooperative cancellation, and tasks are expected to let it
	// propagate.
	ErrTaskClosed = errors.New("sched: task closed")

	// ErrUnknownSyscall is logged (and the offending task dropped) when a
	// task's step returns a value that is neither a known Syscall nor the
	// bare-yield sentinel.
	ErrUnknownSyscall = errors.New("sched: unknown syscall")
)

// TaskPanicError wraps a value recovered from a task goroutine panic,
// preserving the original value for errors.Is/errors.As when it is itself an
// error. Grounded on the PanicError type in the eventloop package, which
// does the same for recovered Promisify panics.
type TaskPanicError struct {
	Task  string
	Value any
}

func (e *TaskPanicError) Error() string {
	return fmt.Sprintf("sched: task %s panicked: %v", e.Task, e.Value)
}

// Unwrap returns the recovered value if it is itself an error, so that
// errors.Is/errors.As can see through to the original cause.
func (e *TaskPanicError) Unwrap() error {
	if err, ok := e.Value.(error); ok {
		return err
	}
	return nil
}
