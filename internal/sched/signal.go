package sched

// noValue marks a Signal's value slot empty, distinguishing "not armed yet"
// from "armed with nil" — mirrors the reference implementation's
// `_NO_VALUE = ()` sentinel, since a plain nil can't carry that distinction
// in Go either.
var noValue = &struct{}{}

// Signal lets one task wake another with a result it chooses, independent
// of the time queue or paused table. Whichever of handle or Send runs first
// just records its half of the rendezvous; the second delivers.
//
// A Signal is single-use per delivery: once delivered it reverts to empty,
// and a task that awaits it again blocks until the next Send.
//
// To deliver a failure rather than a value, Send an error — StepNextDue
// (see scheduler.go) treats any value popped from the time queue that implements
// error as a throw rather than a send, the same `isinstance(value,
// Exception)` check the reference implementation makes in `_step_task`.
type Signal struct {
	value any
	task  *Task
}

// NewSignal returns an empty, unarmed Signal.
func NewSignal() *Signal {
	return &Signal{value: noValue}
}

func (s *Signal) handle(sch *Scheduler, task *Task) {
	s.task = task
	s.deliver(sch)
}

// Send arms the Signal with value, delivering it immediately if a task is
// already awaiting it. value may be an error, to deliver a failure.
func (s *Signal) Send(sch *Scheduler, value any) {
	s.value = value
	s.deliver(sch)
}

func (s *Signal) deliver(sch *Scheduler) {
	if s.task == nil || s.value == noValue {
		return
	}
	task, value := s.task, s.value
	s.task = nil
	s.value = noValue
	sch.ScheduleNow(task, value)
}
