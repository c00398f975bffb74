package sched

// Wait runs one or more child tasks and suspends the calling task until
// WaitFor of them exit. Its result is the return value (or error) of
// whichever child triggered completion. With WaitFor left at its default of
// 1 the first child to finish wins; with ExitOthers set every other child is
// then cancelled — pending schedules dropped, paused-table registrations
// removed, and the task itself closed.
type Wait struct {
	Children   []*Task
	WaitFor    int  // default 1 if zero
	ExitOthers bool // reference implementation's default is true; set explicitly

	scheduled []*Task
	finished  map[*Task]bool
	task      *Task
}

func (w *Wait) handle(sch *Scheduler, task *Task) {
	w.task = task
	w.finished = make(map[*Task]bool, len(w.Children))
	w.scheduled = append([]*Task(nil), w.Children...)

	waitFor := w.WaitFor
	if waitFor <= 0 {
		waitFor = 1
	}

	for _, child := range w.scheduled {
		child := child
		child.onDone = func(result any, err error) {
			w.finish(sch, child, result, err, waitFor)
		}
		sch.ScheduleNow(child, nil)
	}
}

// Finished reports whether child was the one that triggered this Wait's
// completion (or had already finished before it), for callers that need to
// know which child won a race rather than just its return value.
func (w *Wait) Finished(child *Task) bool {
	return w.finished[child]
}

func (w *Wait) finish(sch *Scheduler, child *Task, result any, err error, waitFor int) {
	w.finished[child] = true
	if len(w.finished) == waitFor || err != nil {
		if w.ExitOthers {
			w.exit(sch)
		}
		if w.task != nil {
			task := w.task
			w.task = nil
			if err != nil {
				sch.Step(task, nil, err)
			} else {
				sch.ScheduleNow(task, result)
			}
		}
	}
}

// exit cancels every child that has not yet finished: unpauses it if it was
// waiting on an interface, drops any pending time-queue schedule, and closes
// it outright. Called only when Wait itself completes (to kill the losers);
// closing Wait's own waiting task does not call it, so its children keep
// running after the waiting task is closed.
func (w *Wait) exit(sch *Scheduler) {
	for _, child := range w.scheduled {
		if w.finished[child] {
			continue
		}
		sch.Unpause(child)
		sch.Unschedule(child)
		child.onDone = nil
		child.Close()
	}
}
