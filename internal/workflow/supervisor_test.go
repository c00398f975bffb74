package workflow

import (
	"testing"

	"github.com/hwvault/coreloop/internal/logging"
	"github.com/hwvault/coreloop/internal/sched"
	"github.com/stretchr/testify/require"
)

func quietLogger() *logging.Logger { return logging.New(logging.Critical) }

// TestSupervisor_ForegroundHandover is seed scenario 5: StartDefault
// schedules the idle workflow; Start on a foreground task closes the
// default and activates the foreground task; once the foreground task
// exits, the default workflow restarts automatically.
func TestSupervisor_ForegroundHandover(t *testing.T) {
	sch := sched.New(sched.WithLogger(quietLogger()))
	sup := New(sch, quietLogger())

	var activations int
	sup.OnActivate = func() { activations++ }

	defaultFactory := func() *sched.Task {
		return sched.NewTask("default", func(ctx *sched.Ctx) (any, error) {
			_, err := ctx.Await(sched.Select{Iface: 1})
			return nil, err
		})
	}

	sup.StartDefault(defaultFactory)
	require.Equal(t, 1, activations)
	firstDefault := sup.defaultTask
	require.NotNil(t, firstDefault)

	// drive the default task to its await point so it is parked, not pending
	// in the queue, before the foreground workflow preempts it.
	stepAll(t, sch)

	fgDone := make(chan struct{})
	fg := sched.NewTask("fg", func(ctx *sched.Ctx) (any, error) {
		close(fgDone)
		return "result", nil
	})
	sup.Start(fg)

	require.Equal(t, 2, activations)
	require.True(t, firstDefault.Closed())
	require.Nil(t, sup.defaultTask)

	stepAll(t, sch)
	<-fgDone

	// the foreground task's completion should have restarted the default
	// workflow and fired a third activation.
	require.Equal(t, 3, activations)
	require.NotNil(t, sup.defaultTask)
	require.NotSame(t, firstDefault, sup.defaultTask)
}

// stepAll steps queued tasks, including ones scheduled by those steps, until
// the queue is empty or eight steps have run.
func stepAll(t *testing.T, sch *sched.Scheduler) {
	t.Helper()
	for i := 0; i < 8 && sch.QueueLen() > 0; i++ {
		sch.StepNextDue()
	}
}
