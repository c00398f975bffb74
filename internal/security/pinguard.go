// Package security provides the PIN-entry lockout guard: a sliding-window
// limiter over consecutive attempts, standing in for the growing delay a
// real device enforces after repeated wrong PINs.
package security

import (
	"time"

	"github.com/joeycumines/go-catrate"
)

// pinAttemptRates approximates the standard escalating PIN lockout: fast
// retries are cut off almost immediately, but the allowance widens as the
// window grows, so a device left alone for a while recovers its attempts.
var pinAttemptRates = map[time.Duration]int{
	time.Second:      1,
	10 * time.Second: 3,
	time.Minute:      5,
	10 * time.Minute: 10,
}

// PinGuard rate-limits PIN submission attempts per session/device.
type PinGuard struct {
	limiter *catrate.Limiter
}

// NewPinGuard constructs a PinGuard using the standard lockout schedule.
func NewPinGuard() *PinGuard {
	return &PinGuard{limiter: catrate.NewLimiter(pinAttemptRates)}
}

// Attempt registers one PIN submission for category (typically a session or
// device id). ok is false if the category is currently locked out; retryAt
// is when the next attempt will be allowed (zero if not currently limited).
func (g *PinGuard) Attempt(category any) (retryAt time.Time, ok bool) {
	return g.limiter.Allow(category)
}
