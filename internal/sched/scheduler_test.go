package sched

import (
	"errors"
	"testing"

	"github.com/hwvault/coreloop/internal/logging"
	"github.com/stretchr/testify/require"
)

func quietScheduler(opts ...Option) *Scheduler {
	return New(append([]Option{WithLogger(logging.New(logging.Critical))}, opts...)...)
}

// TestScheduler_TwoSleepers is seed scenario 1: A = Sleep(1000), B =
// Sleep(500) scheduled at t=0; B resumes at t>=500 with value 500, A at
// t>=1000 with value 1000.
func TestScheduler_TwoSleepers(t *testing.T) {
	clock := NewManualClock(0)
	sch := quietScheduler(WithClock(clock))

	var resumedA, resumedB uint32
	aDone := make(chan struct{})
	bDone := make(chan struct{})

	a := NewTask("A", func(ctx *Ctx) (any, error) {
		v, err := ctx.Await(Sleep{DelayUs: 1000})
		require.NoError(t, err)
		resumedA = v.(uint32)
		close(aDone)
		return nil, nil
	})
	b := NewTask("B", func(ctx *Ctx) (any, error) {
		v, err := ctx.Await(Sleep{DelayUs: 500})
		require.NoError(t, err)
		resumedB = v.(uint32)
		close(bDone)
		return nil, nil
	})

	sch.ScheduleNow(a, nil)
	sch.ScheduleNow(b, nil)

	// first steps: both tasks run to their Sleep await point, landing in
	// the time queue at deadlines 1000 and 500 respectively.
	for i := 0; i < 2; i++ {
		_, task, value, ok := sch.queue.pop()
		require.True(t, ok)
		sch.Step(task, value, nil)
	}
	require.Equal(t, 2, sch.QueueLen())

	clock.Set(500)
	deadline, task, value, ok := sch.queue.pop()
	require.True(t, ok)
	require.EqualValues(t, 500, deadline)
	sch.Step(task, value, nil)
	<-bDone
	require.EqualValues(t, 500, resumedB)

	clock.Set(1000)
	deadline, task, value, ok = sch.queue.pop()
	require.True(t, ok)
	require.EqualValues(t, 1000, deadline)
	sch.Step(task, value, nil)
	<-aDone
	require.EqualValues(t, 1000, resumedA)

	require.Equal(t, 0, sch.QueueLen())
}

// TestScheduler_MultiWaiterFanIn is seed scenario 2: three tasks Select(42);
// one message delivered; all three resume in await order with the same
// payload, and the paused-table entry empties.
func TestScheduler_MultiWaiterFanIn(t *testing.T) {
	sch := quietScheduler()

	var order []string
	var payloads [][]any
	done := make(chan struct{}, 3)

	spawn := func(name string) *Task {
		return NewTask(name, func(ctx *Ctx) (any, error) {
			v, err := ctx.Await(Select{Iface: 42})
			require.NoError(t, err)
			order = append(order, name)
			payloads = append(payloads, v.([]any))
			done <- struct{}{}
			return nil, nil
		})
	}

	tasks := []*Task{spawn("one"), spawn("two"), spawn("three")}
	for _, task := range tasks {
		sch.ScheduleNow(task, nil)
		_, t2, v, ok := sch.queue.pop()
		require.True(t, ok)
		sch.Step(t2, v, nil)
	}

	drained := sch.paused.drain(42)
	require.Len(t, drained, 3)
	for _, task := range drained {
		sch.Step(task, []any{"x"}, nil)
	}
	for range tasks {
		<-done
	}

	require.Equal(t, []string{"one", "two", "three"}, order)
	for _, p := range payloads {
		require.Equal(t, []any{"x"}, p)
	}
	require.Nil(t, sch.paused.drain(42))
}

// TestScheduler_WaitRace is seed scenario 3: Wait((Sleep(1000),
// Select(TOUCH)), wait_for=1, exit_others=true). The Select child winning
// removes the Sleep child from the time queue.
func TestScheduler_WaitRace(t *testing.T) {
	sch := quietScheduler()

	sleepChild := NewTask("sleep-child", func(ctx *Ctx) (any, error) {
		_, err := ctx.Await(Sleep{DelayUs: 1000})
		return nil, err
	})
	selectChild := NewTask("select-child", func(ctx *Ctx) (any, error) {
		v, err := ctx.Await(Select{Iface: 255})
		return v, err
	})

	var result any
	done := make(chan struct{})
	parent := NewTask("parent", func(ctx *Ctx) (any, error) {
		v, err := ctx.Await(&Wait{
			Children:   []*Task{sleepChild, selectChild},
			WaitFor:    1,
			ExitOthers: true,
		})
		result = v
		close(done)
		return v, err
	})

	sch.ScheduleNow(parent, nil)
	_, task, v, ok := sch.queue.pop()
	require.True(t, ok)
	sch.Step(task, v, nil) // parent runs Wait.handle, schedules both children

	require.Equal(t, 2, sch.QueueLen())
	// Step each child exactly once: their first await registers sleep-child
	// in the time queue (real deadline ~1000us out) and select-child in the
	// paused table. Draining the time queue any further here would let
	// sleep-child's own timer actually fire and win the race before the
	// touch below ever gets a chance to.
	for i := 0; i < 2; i++ {
		_, task, v, ok = sch.queue.pop()
		require.True(t, ok)
		sch.Step(task, v, nil)
	}

	// select-child is now paused on TOUCH; deliver the touch payload.
	drained := sch.paused.drain(255)
	require.Len(t, drained, 1)
	sch.Step(drained[0], []any{"touch"}, nil)

	// the wait's completion reschedules the parent; step it to completion.
	_, task, v, ok = sch.queue.pop()
	require.True(t, ok)
	sch.Step(task, v, nil)

	<-done
	require.Equal(t, []any{"touch"}, result)
	require.Equal(t, 0, sch.QueueLen())
	require.True(t, sleepChild.Closed())
}

// TestScheduler_SignalOrdering is seed scenario 4: task A awaits a Signal;
// task B sends it a value; A resumes with that value next iteration, and
// the Signal reverts to empty.
func TestScheduler_SignalOrdering(t *testing.T) {
	sch := quietScheduler()
	sig := NewSignal()

	var resumed any
	done := make(chan struct{})
	a := NewTask("A", func(ctx *Ctx) (any, error) {
		v, err := ctx.Await(sig)
		require.NoError(t, err)
		resumed = v
		close(done)
		return nil, nil
	})

	sch.ScheduleNow(a, nil)
	_, task, v, ok := sch.queue.pop()
	require.True(t, ok)
	sch.Step(task, v, nil) // A awaits the signal; armed-with-task, not delivered

	require.Equal(t, 0, sch.QueueLen())

	sig.Send(sch, 7)
	require.Equal(t, 1, sch.QueueLen())

	_, task, v, ok = sch.queue.pop()
	require.True(t, ok)
	sch.Step(task, v, nil)

	<-done
	require.Equal(t, 7, resumed)
	require.Same(t, noValue, sig.value)
}

// TestScheduler_TaskCrash is seed scenario 6: a scheduled task raises on its
// first step; it is logged and dropped, and the loop continues.
func TestScheduler_TaskCrash(t *testing.T) {
	sch := quietScheduler()

	boom := errors.New("boom")
	crasher := NewTask("crasher", func(ctx *Ctx) (any, error) {
		return nil, boom
	})
	survivor := NewTask("survivor", func(ctx *Ctx) (any, error) {
		return "ok", nil
	})

	sch.ScheduleNow(crasher, nil)
	sch.ScheduleNow(survivor, nil)

	for sch.QueueLen() > 0 {
		_, task, v, ok := sch.queue.pop()
		require.True(t, ok)
		require.NotPanics(t, func() { sch.Step(task, v, nil) })
	}
}
