package service

import (
	"context"
	"time"
)

// simulateLatency blocks for d unless ctx ends first.
func simulateLatency(ctx context.Context, d time.Duration) error {
	if d <= 0 {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-t.C:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
