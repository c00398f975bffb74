// Package transport supplies the scheduler's one external input: a
// MessageSource that blocks for at most a given timeout and returns the next
// inbound message, grounded on trezor.msg's select(timeout_us) -> tuple.
package transport

import (
	"context"
	"time"
)

// TouchIface is the reserved interface id for touch-display events.
const TouchIface = 255

// Touch event kinds.
const (
	TouchStart = 1
	TouchMove  = 2
	TouchEnd   = 4
)

// Message is one inbound event: an interface id and the tuple of values
// that arrived on it (e.g. a single HID report, or event/x/y for touch).
type Message struct {
	Iface  uint16
	Values []any
}

// MessageSource is polled by the scheduler's main loop (sched.RunForever)
// once per iteration, for at most timeout. A nil Message with a nil error
// means the timeout elapsed with nothing to deliver.
type MessageSource interface {
	Select(ctx context.Context, timeout time.Duration) (*Message, error)
}
