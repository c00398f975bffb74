package sched

// pausedTable maps an interface id to the ordered list of tasks currently
// awaiting a message on it. Tasks are appended in registration order and
// drained in that same order, so the first task to start waiting is the
// first woken. A task appears in at most one interface's list at a time.
type pausedTable struct {
	byIface map[uint16][]*Task
}

func newPausedTable() *pausedTable {
	return &pausedTable{byIface: make(map[uint16][]*Task)}
}

// pause appends task to iface's waiter list.
func (p *pausedTable) pause(task *Task, iface uint16) {
	p.byIface[iface] = append(p.byIface[iface], task)
	task.isPaused = true
	task.pausedOnIface = iface
}

// drain removes and returns every task paused on iface, in registration
// order. The entry is deleted atomically: a task re-pausing on the same
// iface during its own step (e.g. re-awaiting Select) lands in a fresh
// slice and is not re-delivered the message that just woke it.
func (p *pausedTable) drain(iface uint16) []*Task {
	tasks := p.byIface[iface]
	if len(tasks) == 0 {
		return nil
	}
	delete(p.byIface, iface)
	for _, t := range tasks {
		t.isPaused = false
	}
	return tasks
}

// remove removes the first occurrence of task from the list of the
// interface it is paused on (a no-op if it is not paused), used by
// Wait.exit to cancel a still-paused child.
func (p *pausedTable) remove(task *Task) {
	if !task.isPaused {
		return
	}
	tasks := p.byIface[task.pausedOnIface]
	for i, t := range tasks {
		if t == task {
			p.byIface[task.pausedOnIface] = append(tasks[:i], tasks[i+1:]...)
			break
		}
	}
	if len(p.byIface[task.pausedOnIface]) == 0 {
		delete(p.byIface, task.pausedOnIface)
	}
	task.isPaused = false
}
