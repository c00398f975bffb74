package apps

import (
	"errors"

	"github.com/hwvault/coreloop/internal/sched"
	"github.com/hwvault/coreloop/internal/security"
)

// ErrPinCancelled is raised when the user taps cancel on an empty PIN
// buffer — a local, no-wire-traffic cancellation.
var ErrPinCancelled = errors.New("apps: pin entry cancelled")

// ErrPinWireFailure is raised when a PIN is submitted but rejected by the
// attempt guard — the reference implementation's other cancellation
// variant, a wire-level failure rather than a local one. Left distinct from
// ErrPinCancelled per the two call sites in request_pin.py: which one a
// caller should treat as "the" cancellation is a UI-layer decision this
// package does not make for them.
var ErrPinWireFailure = errors.New("apps: pin rejected")

// Digit is one key of the PIN matrix: a hit region and the digit it enters.
type Digit struct {
	Rect  Rect
	Value byte
}

// pinEvent is the tagged result a PIN-entry child task reports: exactly one
// of Digit, Confirm or Cancel is meaningful.
type pinEvent struct {
	digit    byte
	hasDigit bool
	confirm  bool
	cancel   bool
}

// RequestPin runs the PIN-matrix / confirm / cancel dialog to completion,
// returning the entered PIN on success. Tapping cancel on a non-empty
// buffer clears it and continues (matrix.change('')); tapping cancel on an
// empty buffer raises ErrPinCancelled. Tapping confirm checks the attempt
// guard for category sessionID before returning the PIN, raising
// ErrPinWireFailure if attempts are currently locked out.
func RequestPin(ctx *sched.Ctx, digits []Digit, confirmRect, cancelRect Rect, guard *security.PinGuard, sessionID any) (string, error) {
	var pin []byte

	for {
		ev, err := awaitPinEvent(ctx, digits, confirmRect, cancelRect)
		if err != nil {
			return "", err
		}

		switch {
		case ev.hasDigit:
			pin = append(pin, ev.digit)

		case ev.confirm:
			if guard != nil {
				if _, ok := guard.Attempt(sessionID); !ok {
					return "", ErrPinWireFailure
				}
			}
			return string(pin), nil

		case ev.cancel:
			if len(pin) > 0 {
				pin = pin[:0]
				continue
			}
			return "", ErrPinCancelled
		}
	}
}

func awaitPinEvent(ctx *sched.Ctx, digits []Digit, confirmRect, cancelRect Rect) (pinEvent, error) {
	children := make([]*sched.Task, 0, len(digits)+2)

	for _, d := range digits {
		d := d
		children = append(children, sched.NewTask("pin-digit", func(c *sched.Ctx) (any, error) {
			if err := watchTap(c, d.Rect); err != nil {
				return nil, err
			}
			return pinEvent{digit: d.Value, hasDigit: true}, nil
		}))
	}
	children = append(children,
		sched.NewTask("pin-confirm", func(c *sched.Ctx) (any, error) {
			if err := watchTap(c, confirmRect); err != nil {
				return nil, err
			}
			return pinEvent{confirm: true}, nil
		}),
		sched.NewTask("pin-cancel", func(c *sched.Ctx) (any, error) {
			if err := watchTap(c, cancelRect); err != nil {
				return nil, err
			}
			return pinEvent{cancel: true}, nil
		}),
	)

	w := &sched.Wait{Children: children, WaitFor: 1, ExitOthers: true}
	result, err := ctx.Await(w)
	if err != nil {
		return pinEvent{}, err
	}
	ev, _ := result.(pinEvent)
	return ev, nil
}
