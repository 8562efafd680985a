// Package submit simulates the latency of a form submission.
package submit

import (
	"context"
	"time"
)

// Delay waits for d and reports success. The only failure is ctx ending first.
func Delay(ctx context.Context, d time.Duration) error {
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
