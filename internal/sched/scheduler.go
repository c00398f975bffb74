package sched

import "github.com/hwvault/coreloop/internal/logging"

// Syscall is a value a task yields to suspend itself, describing how the
// scheduler should re-arm it. Implementations are a closed, tagged set
// (Sleep, Select, Signal, Wait) dispatched by the Step Engine.
type Syscall interface {
	// handle lets the syscall register task with the scheduler — in the
	// time queue, the paused table, or neither (Signal/Wait bookkeeping).
	handle(sch *Scheduler, task *Task)
}

// Scheduler owns the Time Queue, Paused Table and the logger used by the
// Step Engine. All of its state is touched only from the goroutine that
// calls RunForever; see task.go and loop.go.
type Scheduler struct {
	queue   *timeQueue
	paused  *pausedTable
	clock   Clock
	log     *logging.Logger
	afterStep func()

	loopGoroutine goroutineGuard
}

// Option configures a Scheduler at construction, grounded on the functional
// options pattern in eventloop/options.go.
type Option func(*Scheduler)

// WithClock overrides the scheduler's tick source (default: NewRealClock()).
func WithClock(c Clock) Option {
	return func(s *Scheduler) { s.clock = c }
}

// WithLogger overrides the scheduler's logger (default: a logger at
// logging.Error threshold writing to stderr).
func WithLogger(l *logging.Logger) Option {
	return func(s *Scheduler) { s.log = l }
}

// WithAfterStepHook installs the optional per-step frame hook, invoked once
// after every task step (used on the host emulator to refresh a display).
func WithAfterStepHook(hook func()) Option {
	return func(s *Scheduler) { s.afterStep = hook }
}

// New constructs a Scheduler with an empty time queue and paused table.
func New(opts ...Option) *Scheduler {
	s := &Scheduler{
		queue:  newTimeQueue(),
		paused: newPausedTable(),
		clock:  NewRealClock(),
		log:    logging.New(logging.Error),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Now returns the scheduler's current tick, in wrap-aware microseconds.
func (s *Scheduler) Now() uint32 { return s.clock.NowMicros() }

// Schedule pushes task onto the time queue to resume with value at
// deadline; use ScheduleNow for a deadline of now. Mirrors
// loop.schedule_task in the reference implementation. Panics on capacity
// exhaustion: a fixed-size queue with no room left has no safe recovery.
func (s *Scheduler) Schedule(task *Task, value any, deadline uint32) {
	if err := s.queue.push(deadline, task, value); err != nil {
		panic(err)
	}
}

// ScheduleNow is Schedule with deadline = now.
func (s *Scheduler) ScheduleNow(task *Task, value any) {
	s.Schedule(task, value, s.Now())
}

// Unschedule removes task from the time queue, cancelling a previous
// Schedule. A no-op if task is not currently queued.
func (s *Scheduler) Unschedule(task *Task) {
	s.queue.unschedule(task)
}

// PauseOn registers task as awaiting a message on iface.
func (s *Scheduler) PauseOn(task *Task, iface uint16) {
	s.paused.pause(task, iface)
}

// Unpause removes task from whichever interface it is paused on, if any.
func (s *Scheduler) Unpause(task *Task) {
	s.paused.remove(task)
}

// QueueLen reports the number of live time-queue entries, for tests and
// capacity-aware callers.
func (s *Scheduler) QueueLen() int { return s.queue.len() }

// StepNextDue pops the earliest-deadline task off the time queue and steps
// it, ignoring the clock — a synchronous driver for callers that do not want
// to wire a real transport.MessageSource, such as tests of code built atop
// Scheduler from outside this package. Reports false if the queue is empty.
func (s *Scheduler) StepNextDue() bool {
	_, task, value, ok := s.queue.pop()
	if !ok {
		return false
	}
	if failure, isErr := value.(error); isErr {
		s.Step(task, nil, failure)
	} else {
		s.Step(task, value, nil)
	}
	return true
}

// Deliver steps every task currently paused on iface with value, draining
// the paused table's entry for it exactly once. Used by RunForever for
// inbound messages, and equally usable by callers driving a Scheduler
// without a transport.MessageSource (e.g. tests). Returns the number of
// tasks stepped.
func (s *Scheduler) Deliver(iface uint16, value any) int {
	drained := s.paused.drain(iface)
	for _, task := range drained {
		s.Step(task, value, nil)
	}
	return len(drained)
}
