package transport

import (
	"context"
	"errors"
	"io"
	"time"

	"github.com/joeycumines/go-longpoll"
)

// HostEvent is one simulated input event fed into a HostSource — a touch
// event (Iface == TouchIface) or a raw HID report on some other interface.
type HostEvent struct {
	Iface  uint16
	Values []any
}

// HostSource is a MessageSource for the host emulator: input events (mouse
// clicks standing in for touch, injected USB reports) arrive on a Go
// channel, and HostSource receives bursts of them in one longpoll.Channel
// call and buffers them, still handing out one Message per Select call, so
// a burst of quick touch-move events costs one channel poll rather than one
// each.
//
// Coalesced events that land on different interfaces are delivered as
// separate Messages, preserving per-interface ordering, but events on the
// TOUCH interface are typically the only thing bursty enough for this to
// matter in practice.
type HostSource struct {
	events  chan HostEvent
	cfg     *longpoll.ChannelConfig
	pending []Message
}

// NewHostSource constructs a HostSource with the given longpoll coalescing
// config (nil for its defaults) and buffered input channel.
func NewHostSource(cfg *longpoll.ChannelConfig) *HostSource {
	return &HostSource{
		events: make(chan HostEvent, 64),
		cfg:    cfg,
	}
}

// Inject feeds one simulated input event into the source, called by
// whatever drives the emulator (a GUI event handler, a script, a test).
func (s *HostSource) Inject(ev HostEvent) {
	s.events <- ev
}

// Close signals no further events will be injected.
func (s *HostSource) Close() {
	close(s.events)
}

// Select implements MessageSource. If a previous call already collected a
// burst of events, it returns the next one immediately. Otherwise it waits
// up to timeout for the first event, then drains whatever additional events
// longpoll.Channel judges belong to the same burst, buffering all but the
// first for subsequent calls — matching msg.select's one-event-at-a-time
// contract while still amortizing the channel receive over a burst.
func (s *HostSource) Select(ctx context.Context, timeout time.Duration) (*Message, error) {
	if len(s.pending) > 0 {
		msg := s.pending[0]
		s.pending = s.pending[1:]
		return &msg, nil
	}

	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	err := longpoll.Channel(ctx, s.cfg, s.events, func(ev HostEvent) error {
		s.pending = append(s.pending, Message{Iface: ev.Iface, Values: ev.Values})
		return nil
	})

	switch {
	case err == nil, errors.Is(err, io.EOF), errors.Is(err, context.DeadlineExceeded):
		// fall through to drain whatever was collected, if anything
	default:
		return nil, err
	}

	if len(s.pending) == 0 {
		return nil, nil
	}
	msg := s.pending[0]
	s.pending = s.pending[1:]
	return &msg, nil
}
