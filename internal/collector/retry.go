package collector

import (
	"context"
	"fmt"
	"log"
	"time"
)

// retryPolicy runs an operation with exponential back-off.
type retryPolicy struct {
	MaxAttempts int
	BaseDelay   time.Duration
}

func (r retryPolicy) do(ctx context.Context, op string, fn func() error) error {
	var lastErr error
	delay := r.BaseDelay
	attempts := r.MaxAttempts
	if attempts < 1 {
		attempts = 1
	}

	for attempt := 1; attempt <= attempts; attempt++ {
		if lastErr = fn(); lastErr == nil {
			return nil
		}
		if attempt == attempts {
			break
		}
		log.Printf("[WARN] %s failed (attempt %d/%d): %v, retrying in %v", op, attempt, attempts, lastErr, delay)
		select {
		case <-ctx.Done():
			return fmt.Errorf("%s: %w", op, ctx.Err())
		case <-time.After(delay):
		}
		delay *= 2
	}
	return fmt.Errorf("%s failed after %d attempts: %w", op, attempts, lastErr)
}
