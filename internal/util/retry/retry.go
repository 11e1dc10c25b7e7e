// Package retry provides bounded retry with backoff and explicit error
// classification.
//
// A Policy is a plain value scoped to a single call: there is no process-wide
// default configuration. Errors are classified three ways: retryable errors
// sleep the policy backoff and try again, errors the Classify hook resolves
// decide their own fate (including retrying without the default backoff when
// the hook already performed its own wait), and everything else aborts the
// remaining attempts immediately.
package retry

import (
	"context"
	"fmt"
	"time"
)

// Decision is the outcome of classifying an error that is not plainly retryable.
type Decision int

const (
	// Abort stops retrying and surfaces the error immediately.
	Abort Decision = iota
	// Retry sleeps the policy backoff and retries.
	Retry
	// RetryNow retries without the default backoff sleep. Used when the
	// classifier performed its own remedial wait (rate-limit hints) or when
	// the caller must rebuild its input before resubmitting (label conflicts).
	RetryNow
)

// Policy describes one bounded retry loop.
type Policy struct {
	// MaxAttempts is the total number of attempts, including the first.
	MaxAttempts int

	// Backoff computes the delay slept before retrying after the given
	// 1-based failed attempt. Nil means ExponentialBackoff.
	Backoff func(attempt int) time.Duration

	// Retryable reports whether an error is plainly transient. Nil means
	// nothing is retryable without classification.
	Retryable func(err error) bool

	// Classify decides the fate of errors Retryable rejects. Nil means Abort.
	Classify func(err error) Decision

	// OnRetry is invoked before every retry with the 1-based attempt number
	// that just failed and its error.
	OnRetry func(attempt int, err error)
}

// ExponentialBackoff is the default backoff: 2^attempt seconds.
func ExponentialBackoff(attempt int) time.Duration {
	return time.Duration(1<<uint(attempt)) * time.Second
}

// Do runs op under the policy, returning nil on the first success or the last
// error once the attempt budget is spent. Backoff sleeps are interruptible
// through ctx.
func Do(ctx context.Context, p Policy, op func() error) error {
	_, err := DoValue(ctx, p, func() (struct{}, error) {
		return struct{}{}, op()
	})
	return err
}

// DoValue is Do for operations that produce a value.
func DoValue[T any](ctx context.Context, p Policy, op func() (T, error)) (T, error) {
	var zero T
	if p.MaxAttempts < 1 {
		p.MaxAttempts = 1
	}
	backoff := p.Backoff
	if backoff == nil {
		backoff = ExponentialBackoff
	}

	var lastErr error
	for attempt := 1; attempt <= p.MaxAttempts; attempt++ {
		v, err := op()
		if err == nil {
			return v, nil
		}
		lastErr = err

		decision := Abort
		if p.Retryable != nil && p.Retryable(err) {
			decision = Retry
		} else if p.Classify != nil {
			decision = p.Classify(err)
		}
		if decision == Abort {
			return zero, err
		}
		if attempt == p.MaxAttempts {
			break
		}

		if p.OnRetry != nil {
			p.OnRetry(attempt, err)
		}
		if decision == Retry {
			select {
			case <-ctx.Done():
				return zero, fmt.Errorf("aborted after %d attempts: %w", attempt, ctx.Err())
			case <-time.After(backoff(attempt)):
			}
		}
	}
	return zero, fmt.Errorf("giving up after %d attempts: %w", p.MaxAttempts, lastErr)
}
