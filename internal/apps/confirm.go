// Package apps holds example application workflows composed entirely out
// of internal/sched's await primitives: PIN entry and a touch confirm/cancel
// dialog. None of them render anything — a real UI layer would observe the
// same touch stream and draw accordingly, but drawing is out of scope here.
package apps

import (
	"github.com/hwvault/coreloop/internal/sched"
	"github.com/hwvault/coreloop/internal/transport"
)

// Rect is an axis-aligned hit region in display coordinates.
type Rect struct {
	X, Y, W, H int
}

func (r Rect) contains(x, y int) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Confirm races a confirm region against a cancel region: whichever the
// user lifts their finger inside of first wins. It returns true if the
// confirm region won, grounded on ui.confirm.ConfirmDialog, minus its
// widget rendering.
func Confirm(ctx *sched.Ctx, confirmRect, cancelRect Rect) (bool, error) {
	confirmTask := sched.NewTask("confirm-watch", func(c *sched.Ctx) (any, error) {
		return nil, watchTap(c, confirmRect)
	})
	cancelTask := sched.NewTask("cancel-watch", func(c *sched.Ctx) (any, error) {
		return nil, watchTap(c, cancelRect)
	})

	w := &sched.Wait{
		Children:   []*sched.Task{confirmTask, cancelTask},
		WaitFor:    1,
		ExitOthers: true,
	}
	if _, err := ctx.Await(w); err != nil {
		return false, err
	}
	return w.Finished(confirmTask), nil
}

// watchTap blocks until a TouchEnd lands inside rect, then returns nil —
// its completion (not its return value) is the signal Confirm races on.
func watchTap(ctx *sched.Ctx, rect Rect) error {
	for {
		v, err := ctx.Await(sched.Select{Iface: transport.TouchIface})
		if err != nil {
			return err
		}
		values, ok := v.([]any)
		if !ok || len(values) < 3 {
			continue
		}
		event, _ := values[0].(int)
		x, _ := values[1].(int)
		y, _ := values[2].(int)
		if event == transport.TouchEnd && rect.contains(x, y) {
			return nil
		}
	}
}
