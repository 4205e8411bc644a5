// Package retry provides a bounded retry loop with a fixed delay between
// attempts. It replaces the per-route ad hoc loops around model calls.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Do runs fn up to attempts times, waiting delay between attempts. Each
// attempt is expected to perform its own validation and return an error for
// a non-conforming result. The first successful value is returned; once all
// attempts are exhausted the last error is wrapped and returned. The context
// is checked while waiting, so cancellation cuts the loop short.
func Do[T any](ctx context.Context, attempts int, delay time.Duration, fn func(ctx context.Context) (T, error)) (T, error) {
	var zero T
	if attempts < 1 {
		attempts = 1
	}

	var lastErr error
	for i := 0; i < attempts; i++ {
		if i > 0 {
			select {
			case <-ctx.Done():
				return zero, ctx.Err()
			case <-time.After(delay):
			}
		}
		v, err := fn(ctx)
		if err == nil {
			return v, nil
		}
		lastErr = err
	}
	return zero, fmt.Errorf("exhausted %d attempts: %w", attempts, lastErr)
}
