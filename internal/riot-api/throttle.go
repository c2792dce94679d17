package riotapi

import (
	"context"

	"golang.org/x/time/rate"
)

// Throttle smooths calls to the static CDNs, which are not covered by the
// Riot application budget.
type Throttle struct {
	limiter *rate.Limiter
}

func NewThrottle(requestsPerSecond float64, burstSize int) *Throttle {
	return &Throttle{
		limiter: rate.NewLimiter(rate.Limit(requestsPerSecond), burstSize),
	}
}

func (t *Throttle) Wait(ctx context.Context) error {
	return t.limiter.Wait(ctx)
}
