// Package sched implements a single-threaded, preemption-free cooperative
// task scheduler: a bounded time queue, a paused-interface table, a step
// engine that advances one task at a time, and the four await primitives
// (Sleep, Select, Signal, Wait) tasks use to suspend themselves.
//
// There is exactly one logical executor. Task bodies run on their own
// goroutine, but are synchronized with the loop goroutine over a pair of
// handshake channels (see task.go), so only one task's code ever executes
// between two of its own suspension points — the same guarantee the
// reference implementation gets for free from single-threaded Python
// generators.
package sched
