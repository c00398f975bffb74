package sched

import (
	"context"
	"time"

	"github.com/hwvault/coreloop/internal/transport"
)

// maxSelectDelay bounds how long RunForever ever blocks in one iteration of
// MessageSource.Select when the time queue is empty, matching the
// reference implementation's _MAX_SELECT_DELAY (1 second).
const maxSelectDelay = time.Second

// RunForever drives the scheduler: repeatedly compute how long until the
// next scheduled task is due, poll source for a message in that window, and
// either step every task paused on the message's interface or step the due
// task. It returns when ctx is cancelled — the one addition the reference
// implementation's run_forever does not have, since MicroPython firmware
// never needs a graceful exit.
func (s *Scheduler) RunForever(ctx context.Context, source transport.MessageSource) error {
	s.loopGoroutine.bind()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		delay := maxSelectDelay
		if deadline, ok := s.queue.peektime(); ok {
			if d := ticksDiff(deadline, s.Now()); d > 0 {
				delay = time.Duration(d) * time.Microsecond
			} else {
				delay = 0
			}
		}

		msg, err := source.Select(ctx, delay)
		if err != nil {
			if ctx.Err() != nil {
				return ctx.Err()
			}
			s.log.Error("sched", "message source error: %v", err)
			continue
		}

		if msg != nil {
			s.Deliver(msg.Iface, msg.Values)
			continue
		}

		// Timeout: the due task, if any, is ready to run.
		s.StepNextDue()
	}
}
