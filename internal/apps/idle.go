package apps

import (
	"time"

	"github.com/hwvault/coreloop/internal/sched"
)

// IdleInterval is how often the default workflow wakes to refresh the idle
// screen, standing in for the reference implementation's idle-screen
// animation tick.
const IdleInterval = 200 * time.Millisecond

// NewIdleWorkflow returns a factory for the default (idle) workflow: a task
// that does nothing but sleep and call tick on a fixed interval, forever,
// until closed by the workflow supervisor when a foreground workflow
// starts. tick is typically wired to a display refresh.
func NewIdleWorkflow(tick func()) func() *sched.Task {
	return func() *sched.Task {
		return sched.NewTask("idle", func(ctx *sched.Ctx) (any, error) {
			for {
				if tick != nil {
					tick()
				}
				if _, err := ctx.Await(sched.Sleep{DelayUs: uint32(IdleInterval / time.Microsecond)}); err != nil {
					return nil, err
				}
			}
		})
	}
}
