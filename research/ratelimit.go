package research

import (
	"context"

	"github.com/sitescout/sitescout"
	"golang.org/x/time/rate"
)

var _ sitescout.CallLimiter = (*CallLimiter)(nil)

// DefaultCallsPerMinute is the inference call budget when none is configured.
const DefaultCallsPerMinute = 50

// CallLimiter gates inference calls with a token bucket shared by all
// workers. Burst is 1, so calls spread evenly over the window instead of
// clustering at its start.
type CallLimiter struct {
	limiter *rate.Limiter
}

// NewCallLimiter creates a limiter allowing callsPerMinute calls.
// A non-positive value means DefaultCallsPerMinute.
func NewCallLimiter(callsPerMinute float64) *CallLimiter {
	if callsPerMinute <= 0 {
		callsPerMinute = DefaultCallsPerMinute
	}
	return &CallLimiter{
		limiter: rate.NewLimiter(rate.Limit(callsPerMinute/60), 1),
	}
}

// Wait blocks until the limiter allows a call or the context is done.
func (l *CallLimiter) Wait(ctx context.Context) error {
	return l.limiter.Wait(ctx)
}
