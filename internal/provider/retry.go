package provider

import (
	"context"
	"time"

	"lyrebird/internal/services"
)

const retryBaseDelay = 500 * time.Millisecond

// withRetry runs op up to attempts times, backing off between tries.
// Only transient and timeout failures are retried; deterministic provider
// errors surface immediately. Cancellation wins over the backoff sleep.
func withRetry(ctx context.Context, attempts int, op func() error) error {
	if attempts < 1 {
		attempts = 1
	}
	var err error
	for attempt := 0; attempt < attempts; attempt++ {
		if attempt > 0 {
			delay := retryBaseDelay << (attempt - 1)
			select {
			case <-ctx.Done():
				return ctx.Err()
			case <-time.After(delay):
			}
		}
		if err = op(); err == nil {
			return nil
		}
		if !services.Retryable(err) {
			return err
		}
	}
	return err
}
