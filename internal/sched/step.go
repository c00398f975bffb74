package sched

// Step advances task by one step: resumes it with value (or, if failure is
// non-nil, throws that failure into it), then interprets whatever it
// produces. A task that terminates (normally, by raising, or by yielding an
// unknown value) is dropped — a crashed task must never take down the loop.
// The optional after-step hook runs once this step is fully resolved.
func (s *Scheduler) Step(task *Task, value any, failure error) {
	s.loopGoroutine.bind()

	if task.Closed() {
		return
	}

	// A task handed to Step is always parked at exactly one of two receives
	// on resumeCh: its initial one (never yet stepped) or the second half of
	// Ctx.Await (just yielded). Both are unconditional blocking receives, so
	// a plain send here always rendezvous — there is never a third party
	// that could have raced ahead of it, since this Scheduler is the only
	// goroutine driving the task.
	task.resumeCh <- resumeMsg{value: value, err: failure}

	y := <-task.yieldCh

	switch {
	case y.done && task.onDone != nil:
		task.onDone(y.result, y.err)

	case y.done && y.err == nil:
		s.log.Debug("sched", "%s finished", task)

	case y.done:
		s.log.Error("sched", "%s raised: %v", task, y.err)

	case y.syscall != nil:
		y.syscall.handle(s, task)

	case y.bare:
		s.ScheduleNow(task, nil)

	default:
		s.log.Error("sched", "%s: %v", task, ErrUnknownSyscall)
	}

	if s.afterStep != nil {
		s.afterStep()
	}
}
