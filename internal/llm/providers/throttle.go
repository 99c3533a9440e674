// File path: internal/llm/providers/throttle.go
package providers

import (
	"context"
	"fmt"

	"golang.org/x/time/rate"
)

// Throttled spaces outbound calls of the wrapped provider with a token
// bucket shared by every caller in the process.
type Throttled struct {
	next    Provider
	limiter *rate.Limiter
}

// NewThrottled returns next unchanged when rps is not positive.
func NewThrottled(next Provider, rps float64, burst int) Provider {
	if next == nil || rps <= 0 {
		return next
	}
	if burst <= 0 {
		burst = 1
	}
	return &Throttled{next: next, limiter: rate.NewLimiter(rate.Limit(rps), burst)}
}

func (t *Throttled) Chat(ctx context.Context, req Request) (string, error) {
	if err := t.limiter.Wait(ctx); err != nil {
		return "", fmt.Errorf("model throttle: %w", err)
	}
	return t.next.Chat(ctx, req)
}

func (t *Throttled) Name() string {
	return t.next.Name()
}
