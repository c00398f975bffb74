package sched

import (
	"fmt"
	"sync/atomic"
)

// Func is a task body. It receives a Ctx used to yield Syscalls back to the
// scheduler, and returns either a final value or an error (a raised
// failure, in the reference implementation's terms).
type Func func(ctx *Ctx) (any, error)

// resumeMsg is sent from the loop goroutine to a parked task goroutine to
// resume it, mirroring Coroutine.send/Coroutine.throw in the reference
// implementation.
type resumeMsg struct {
	value any
	err   error
}

// yieldMsg is sent from a task goroutine back to the loop goroutine: either
// a Syscall (the task suspended itself), a bare yield (reschedule at now),
// or completion (done, with a result or error).
type yieldMsg struct {
	syscall Syscall
	bare    bool
	done    bool
	result  any
	err     error
}

// Task is an opaque suspendable computation, identified by a stable handle.
// The scheduler never inspects a task's interior: it only resumes, fails, or
// closes it, and reacts to what it yields.
type Task struct {
	id   uint64
	name string

	resumeCh chan resumeMsg
	yieldCh  chan yieldMsg
	closeCh  chan struct{}
	closed   atomic.Bool
	started  atomic.Bool

	// set only by the loop goroutine; never read concurrently with a write.
	inTimeQueue  bool
	pausedOnIface uint16
	isPaused      bool

	// onDone, when set, replaces the Step Engine's default finish/fail
	// logging for this task. Used by Wait to learn when a child it is
	// watching completes — the Go analogue of the reference implementation's
	// `_wait` coroutine, which delegates to the child via `await child` and
	// catches its StopIteration/exception. A goroutine-per-task model has no
	// generator delegation to borrow, so Wait hangs a callback here instead.
	onDone func(result any, err error)
}

// String identifies the task for logging, matching the reference
// implementation's "%s" formatting of a coroutine object.
func (t *Task) String() string {
	return fmt.Sprintf("%s#%d", t.name, t.id)
}

var taskIDCounter atomic.Uint64

// NewTask creates a task from a Func, running on its own goroutine, parked
// until the scheduler delivers its first resume via Step. Creating a Task
// does not schedule it; see Scheduler.Schedule.
func NewTask(name string, fn Func) *Task {
	t := &Task{
		id:       taskIDCounter.Add(1),
		name:     name,
		resumeCh: make(chan resumeMsg),
		yieldCh:  make(chan yieldMsg, 1),
		closeCh:  make(chan struct{}),
	}
	go t.run(fn)
	return t
}

func (t *Task) run(fn Func) {
	var first resumeMsg
	select {
	case first = <-t.resumeCh:
	case <-t.closeCh:
		t.yieldCh <- yieldMsg{done: true, err: ErrTaskClosed}
		return
	}
	if first.err != nil {
		// Closed/failed before ever running: still honor the failure.
		t.yieldCh <- yieldMsg{done: true, err: first.err}
		return
	}

	ctx := &Ctx{task: t}
	result, err := t.runBody(ctx, fn)
	select {
	case t.yieldCh <- yieldMsg{done: true, result: result, err: err}:
	case <-t.closeCh:
	}
}

func (t *Task) runBody(ctx *Ctx, fn Func) (result any, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = &TaskPanicError{Task: t.String(), Value: r}
		}
	}()
	return fn(ctx)
}

// OnDone registers fn to run, on the loop goroutine, in place of the Step
// Engine's default finish/fail logging the next time this task completes.
// Exported for callers outside this package that need to react to a task's
// result directly, such as the workflow supervisor restarting the default
// workflow once a foreground one exits.
func (t *Task) OnDone(fn func(result any, err error)) {
	t.onDone = fn
}

// Closed reports whether Close has been called on this task.
func (t *Task) Closed() bool { return t.closed.Load() }

// Close forcibly terminates the task, releasing any scoped resources its
// current suspend point owns (via the ErrTaskClosed failure unwinding
// through its deferred cleanups). Safe to call more than once; only the
// first call has effect.
func (t *Task) Close() {
	if !t.closed.CompareAndSwap(false, true) {
		return
	}
	close(t.closeCh)
}

// Ctx is the handle a running task body uses to suspend itself by awaiting
// a Syscall. It is the Go analogue of Python's `await`/`yield` on a Syscall
// instance.
type Ctx struct {
	task *Task
}

// Task returns the handle identifying the calling task.
func (c *Ctx) Task() *Task { return c.task }

// Await suspends the calling task, yielding s to the scheduler, and blocks
// until the scheduler resumes it (or it is closed). The resume value is
// whatever the Syscall's handler later delivers; the error is non-nil only
// on cancellation (ErrTaskClosed) or an explicit resume-with-failure.
func (c *Ctx) Await(s Syscall) (any, error) {
	select {
	case c.task.yieldCh <- yieldMsg{syscall: s}:
	case <-c.task.closeCh:
		return nil, ErrTaskClosed
	}
	select {
	case r := <-c.task.resumeCh:
		return r.value, r.err
	case <-c.task.closeCh:
		return nil, ErrTaskClosed
	}
}

// Yield is a bare suspend with no syscall: the scheduler reschedules the
// task immediately (deadline = now), the equivalent of a Python generator
// doing a plain `yield` with no Syscall.
func (c *Ctx) Yield() (any, error) {
	select {
	case c.task.yieldCh <- yieldMsg{bare: true}:
	case <-c.task.closeCh:
		return nil, ErrTaskClosed
	}
	select {
	case r := <-c.task.resumeCh:
		return r.value, r.err
	case <-c.task.closeCh:
		return nil, ErrTaskClosed
	}
}
