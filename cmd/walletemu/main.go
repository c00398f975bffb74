// Command walletemu runs a host emulation of the scheduler core: a
// HostSource standing in for the real USB/touch hardware, a default idle
// workflow, and a single PIN-entry foreground workflow triggered by an
// injected touch tap, grounded on trezor.main's construct/start-default/
// run-forever sequence.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/hwvault/coreloop/internal/apps"
	"github.com/hwvault/coreloop/internal/logging"
	"github.com/hwvault/coreloop/internal/sched"
	"github.com/hwvault/coreloop/internal/security"
	"github.com/hwvault/coreloop/internal/transport"
	"github.com/hwvault/coreloop/internal/workflow"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	log := logging.New(logging.Info)

	source := transport.NewHostSource(nil)
	defer source.Close()

	frame := 0
	sch := sched.New(
		sched.WithLogger(log),
		sched.WithAfterStepHook(func() { frame++ }),
	)

	sup := workflow.New(sch, log)
	sup.OnActivate = func() {
		log.Debug("walletemu", "activate, frame=%d", frame)
	}

	guard := security.NewPinGuard()
	digits := pinMatrix()

	sup.StartDefault(apps.NewIdleWorkflow(nil))

	sch.ScheduleNow(sched.NewTask("touch-trigger", func(c *sched.Ctx) (any, error) {
		if _, err := c.Await(sched.Select{Iface: transport.TouchIface}); err != nil {
			return nil, err
		}
		sup.Start(sched.NewTask("pin-entry", func(c *sched.Ctx) (any, error) {
			pin, err := apps.RequestPin(c, digits, confirmRect, cancelRect, guard, "emulator-session")
			if err != nil {
				fmt.Fprintf(os.Stderr, "pin entry: %v\n", err)
				return nil, err
			}
			fmt.Fprintf(os.Stderr, "pin entered: %s\n", pin)
			return pin, nil
		}))
		return nil, nil
	}), nil)

	if err := sch.RunForever(ctx, source); err != nil && ctx.Err() == nil {
		fmt.Fprintf(os.Stderr, "walletemu: %v\n", err)
		os.Exit(1)
	}
}

var confirmRect = apps.Rect{X: 121, Y: 192, W: 119, H: 48}
var cancelRect = apps.Rect{X: 0, Y: 192, W: 119, H: 48}

// pinMatrix lays out a 3x4 digit grid (nine digits, then zero, then two
// unused cells) matching the reference PinMatrix's on-screen arrangement,
// sized to leave the bottom confirm/cancel row clear.
func pinMatrix() []apps.Digit {
	const cols = 3
	const cellW, cellH = 80, 48
	keys := []byte("1234567890")
	digits := make([]apps.Digit, 0, len(keys))
	for i, value := range keys {
		row, col := i/cols, i%cols
		digits = append(digits, apps.Digit{
			Rect:  apps.Rect{X: col * cellW, Y: row * cellH, W: cellW, H: cellH},
			Value: value,
		})
	}
	return digits
}
