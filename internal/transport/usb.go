package transport

import (
	"context"
	"time"

	"github.com/joeycumines/go-microbatch"
)

// USBTransport is a MessageSource backed by a single USB HID interface: one
// goroutine external to this type (the real USB read loop) feeds inbound
// reports in via DeliverReport, while outbound reports are coalesced into
// batches before being written, grounded on trezor.msg's single
// select/send pair but split so the outgoing side can exploit batching —
// the reference firmware writes one report per syscall, but a host-side
// USB stack amortizes far better with small batches of writes.
type USBTransport struct {
	iface    uint16
	incoming chan []byte
	batcher  *microbatch.Batcher[[]byte]
}

// WriteFunc sends a batch of outgoing HID reports to the real device/host
// USB stack.
type WriteFunc func(ctx context.Context, reports [][]byte) error

// NewUSBTransport constructs a USBTransport for the given interface id,
// batching outgoing reports with cfg (nil for microbatch's defaults) and
// flushing them through write.
func NewUSBTransport(iface uint16, write WriteFunc, cfg *microbatch.BatcherConfig) *USBTransport {
	t := &USBTransport{
		iface:    iface,
		incoming: make(chan []byte, 64),
	}
	t.batcher = microbatch.NewBatcher[[]byte](cfg, func(ctx context.Context, reports [][]byte) error {
		return write(ctx, reports)
	})
	return t
}

// DeliverReport is called by the USB read loop for every report received on
// this interface.
func (t *USBTransport) DeliverReport(report []byte) {
	t.incoming <- report
}

// Send queues report for the next outgoing batch and waits for it to be
// flushed.
func (t *USBTransport) Send(ctx context.Context, report []byte) error {
	result, err := t.batcher.Submit(ctx, report)
	if err != nil {
		return err
	}
	return result.Wait(ctx)
}

// Select implements MessageSource, delivering at most one inbound report as
// a single-value Message.
func (t *USBTransport) Select(ctx context.Context, timeout time.Duration) (*Message, error) {
	timer := time.NewTimer(timeout)
	defer timer.Stop()
	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case report := <-t.incoming:
		return &Message{Iface: t.iface, Values: []any{report}}, nil
	case <-timer.C:
		return nil, nil
	}
}

// Close releases the outgoing batcher's resources.
func (t *USBTransport) Close() error {
	return t.batcher.Close()
}
