// Package workflow implements the supervisor that decides which task owns
// the device's attention: a long-running default workflow, preempted by one
// or more foreground workflows, falling back to the default again
// once every foreground workflow has exited.
package workflow

import (
	"github.com/hwvault/coreloop/internal/logging"
	"github.com/hwvault/coreloop/internal/sched"
)

// Supervisor mirrors trezor.workflow's module-level state as an instance,
// so a process can run more than one independent device emulation.
type Supervisor struct {
	sch *sched.Scheduler
	log *logging.Logger

	// OnActivate is called whenever a workflow (default or foreground)
	// becomes the one running, replacing the reference implementation's
	// direct ui.display.backlight(ui.BACKLIGHT_NORMAL) call — this package
	// has no UI dependency, so callers wire their own display logic here.
	OnActivate func()

	defaultFactory func() *sched.Task
	defaultTask    *sched.Task
	started        []*sched.Task
}

// New constructs a Supervisor bound to sch, logging through log.
func New(sch *sched.Scheduler, log *logging.Logger) *Supervisor {
	return &Supervisor{sch: sch, log: log}
}

// StartDefault installs genfunc as the default workflow factory, creates and
// schedules its task, and fires OnActivate.
func (s *Supervisor) StartDefault(genfunc func() *sched.Task) {
	s.defaultFactory = genfunc
	s.defaultTask = genfunc()
	s.log.Info("workflow", "start default %s", s.defaultTask)
	s.sch.ScheduleNow(s.defaultTask, nil)
	s.activate()
}

// CloseDefault cancels the running default workflow task, if any.
func (s *Supervisor) CloseDefault() {
	if s.defaultTask == nil {
		return
	}
	s.log.Info("workflow", "close default %s", s.defaultTask)
	s.defaultTask.Close()
	s.defaultTask = nil
}

// Start closes the default workflow and schedules task as a foreground
// workflow. Once task exits (successfully or not), it is dropped from the
// started set, and the default workflow restarts if nothing else is
// running in the foreground — mirroring _wrap in the reference
// implementation, minus the extra wrapper coroutine: OnDone plays that role
// directly.
func (s *Supervisor) Start(task *sched.Task) {
	s.CloseDefault()
	s.started = append(s.started, task)
	s.log.Info("workflow", "start %s", task)
	s.activate()

	task.OnDone(func(result any, err error) {
		s.remove(task)
		if err != nil {
			s.log.Error("workflow", "%s raised: %v", task, err)
		} else {
			s.log.Debug("workflow", "%s finished", task)
		}
		if len(s.started) == 0 && s.defaultFactory != nil {
			s.StartDefault(s.defaultFactory)
		}
	})
	s.sch.ScheduleNow(task, nil)
}

func (s *Supervisor) remove(task *sched.Task) {
	for i, t := range s.started {
		if t == task {
			s.started = append(s.started[:i], s.started[i+1:]...)
			return
		}
	}
}

func (s *Supervisor) activate() {
	if s.OnActivate != nil {
		s.OnActivate()
	}
}
