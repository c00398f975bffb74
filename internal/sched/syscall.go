package sched

// Sleep suspends the calling task for delay_us microseconds. The resume
// value handed back to the task is the deadline itself, as in the reference
// implementation, where `loop.sleep` resumes its waiter with the tick it was
// scheduled for, not the requested delay — so a caller can compare it with
// the current tick to measure scheduling latency.
type Sleep struct {
	DelayUs uint32
}

func (s Sleep) handle(sch *Scheduler, task *Task) {
	deadline := ticksAdd(sch.Now(), s.DelayUs)
	sch.Schedule(task, deadline, deadline)
}

// Select suspends the calling task until a message arrives on Iface. The
// resume value is whatever value the sender of that message provides, set
// by whichever component delivers the message (see pausedtable.go / loop.go).
type Select struct {
	Iface uint16
}

func (s Select) handle(sch *Scheduler, task *Task) {
	sch.PauseOn(task, s.Iface)
}
